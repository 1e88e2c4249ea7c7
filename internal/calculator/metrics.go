package calculator

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/sitcouncil/councilreports/internal/models"
)

// Breakdown partitions action items by their effective status.
type Breakdown struct {
	Pending    int
	InProgress int
	Completed  int
	Overdue    int
}

// Total returns the number of items counted in the breakdown.
func (b Breakdown) Total() int {
	return b.Pending + b.InProgress + b.Completed + b.Overdue
}

// Open returns the number of items that are neither completed nor overdue.
func (b Breakdown) Open() int {
	return b.Pending + b.InProgress
}

// AttendancePercent returns attended/total*100 rounded to one decimal place.
// A zero total yields 0 instead of dividing by zero.
func AttendancePercent(attended, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(attended)/float64(total)*1000) / 10
}

// AttendanceRate formats AttendancePercent with exactly one fractional digit, e.g. "66.7".
func AttendanceRate(attended, total int) string {
	return strconv.FormatFloat(AttendancePercent(attended, total), 'f', 1, 64)
}

// CompletionRate returns the share of completed items as a one-decimal percentage.
func CompletionRate(b Breakdown) string {
	return AttendanceRate(b.Completed, b.Total())
}

// IsOverdue reports whether an item with the given deadline and stored status
// is past due at now. Completed items are never overdue.
func IsOverdue(deadline *time.Time, status models.TaskStatus, now time.Time) bool {
	if deadline == nil || status == models.TaskCompleted {
		return false
	}
	return deadline.Before(now)
}

// EffectiveStatus recomputes an item's status at now. A stored overdue status
// that no longer holds falls back to pending.
func EffectiveStatus(item models.ActionItem, now time.Time) models.TaskStatus {
	if IsOverdue(item.Deadline, item.Status, now) {
		return models.TaskOverdue
	}
	switch item.Status {
	case models.TaskCompleted:
		return models.TaskCompleted
	case models.TaskInProgress:
		return models.TaskInProgress
	case models.TaskPending, models.TaskOverdue:
		return models.TaskPending
	default:
		return models.TaskPending
	}
}

// TaskStatusBreakdown counts items by effective status. The counts always sum
// to len(items).
func TaskStatusBreakdown(items []models.ActionItem, now time.Time) Breakdown {
	var b Breakdown
	for _, item := range items {
		switch EffectiveStatus(item, now) {
		case models.TaskOverdue:
			b.Overdue++
		case models.TaskCompleted:
			b.Completed++
		case models.TaskInProgress:
			b.InProgress++
		case models.TaskPending:
			b.Pending++
		}
	}
	return b
}

// AvatarInitials returns up to two upper-cased initials from a full name.
func AvatarInitials(fullName string) string {
	var initials []rune
	for _, token := range strings.Fields(fullName) {
		r, _ := utf8.DecodeRuneInString(token)
		initials = append(initials, unicode.ToUpper(r))
		if len(initials) == 2 {
			break
		}
	}
	return string(initials)
}
