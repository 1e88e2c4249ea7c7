package document

import (
	"strconv"
	"strings"
	"time"
)

// Date and time layouts used in every report.
const (
	DateLayout      = "January 2, 2006"
	TimeLayout      = "15:04"
	TimestampLayout = "2006-01-02 15:04:05 UTC"
)

// notSpecified is printed for empty optional fields.
const notSpecified = "Not specified"

// FormatDate formats t with DateLayout in UTC.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// FormatTimestamp formats t with TimestampLayout in UTC.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

func formatOptionalDate(t *time.Time, absent string) string {
	if t == nil || t.IsZero() {
		return absent
	}
	return FormatDate(*t)
}

func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.UTC().Format(TimeLayout)
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

// label turns an enumeration value such as "in-progress" into "In Progress".
func label(value string) string {
	words := strings.FieldsFunc(value, func(r rune) bool { return r == '-' || r == '_' || r == ' ' })
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

func percent(rate string) string {
	return rate + "%"
}

func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return itoa(n) + " " + singular
	}
	return itoa(n) + " " + pluralForm
}
