// Package report exposes the three report entry points. Each one aggregates
// a scope, lays it out as a document model and stamps the footer.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sitcouncil/councilreports/internal/aggregator"
	"github.com/sitcouncil/councilreports/internal/document"
)

// documentNamespace seeds the name-based document ids.
var documentNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://council.sit.edu/reports"))

// Caller identifies who asked for a report. It is used for display only.
type Caller struct {
	ID   string
	Name string
}

// Report is a finished document and the artifact name renderers should use.
type Report struct {
	Kind     document.Kind
	Scope    string
	Filename string
	Model    *document.Model
}

// Engine builds reports. It holds no per-request state and is safe for
// concurrent use.
type Engine struct {
	agg          *aggregator.Aggregator
	now          func() time.Time
	organization string
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the time source used for generation timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithOrganization sets the name printed in document headers.
func WithOrganization(name string) Option {
	return func(e *Engine) {
		if name != "" {
			e.organization = name
		}
	}
}

// NewEngine creates an engine over the given aggregator.
func NewEngine(agg *aggregator.Aggregator, opts ...Option) *Engine {
	e := &Engine{
		agg:          agg,
		now:          time.Now,
		organization: "SIT Council",
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// BuildMeetingMinutes produces the minutes of one meeting.
func (e *Engine) BuildMeetingMinutes(ctx context.Context, meetingID string, caller Caller) (*Report, error) {
	scope := "meeting/" + meetingID
	bundle, err := e.agg.Meeting(ctx, meetingID)
	if err != nil {
		return nil, &Error{Kind: document.KindMeetingMinutes, Scope: scope, Err: err}
	}
	return e.assemble(document.KindMeetingMinutes, scope, Filename(document.KindMeetingMinutes, meetingID), bundle, caller)
}

// BuildMemberPerformance produces the performance report of one user.
func (e *Engine) BuildMemberPerformance(ctx context.Context, userID string, caller Caller) (*Report, error) {
	scope := "member/" + userID
	bundle, err := e.agg.Member(ctx, userID)
	if err != nil {
		return nil, &Error{Kind: document.KindMemberPerformance, Scope: scope, Err: err}
	}
	key := bundle.User.StudentID
	if key == "" {
		key = bundle.User.Name
	}
	return e.assemble(document.KindMemberPerformance, scope, Filename(document.KindMemberPerformance, key), bundle, caller)
}

// BuildMonthlyActivity produces the activity report of one calendar month.
func (e *Engine) BuildMonthlyActivity(ctx context.Context, year int, month time.Month, caller Caller) (*Report, error) {
	period := fmt.Sprintf("%04d-%02d", year, int(month))
	scope := "monthly/" + period
	bundle, err := e.agg.Monthly(ctx, year, month)
	if err != nil {
		return nil, &Error{Kind: document.KindMonthlyActivity, Scope: scope, Err: err}
	}
	return e.assemble(document.KindMonthlyActivity, scope, Filename(document.KindMonthlyActivity, period), bundle, caller)
}

func (e *Engine) assemble(kind document.Kind, scope, filename string, bundle any, caller Caller) (*Report, error) {
	meta := document.Meta{
		Organization: e.organization,
		DocumentID:   DocumentID(kind, scope),
		GeneratedAt:  e.now().UTC(),
		GeneratedBy:  caller.Name,
	}
	model, err := document.Build(kind, bundle, meta)
	if err != nil {
		return nil, &Error{Kind: kind, Scope: scope, Err: err}
	}

	slog.Debug("Report assembled",
		"kind", kind,
		"scope", scope,
		"sections", len(model.Sections),
		"caller_id", caller.ID,
	)

	return &Report{Kind: kind, Scope: scope, Filename: filename, Model: model}, nil
}

// DocumentID returns the stable id of the document for a kind and scope.
// Rebuilding the same report yields the same id.
func DocumentID(kind document.Kind, scope string) string {
	return uuid.NewSHA1(documentNamespace, []byte(string(kind)+":"+scope)).String()
}

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Filename returns the artifact base name for a report:
// SIT-Meeting-<meetingId>, SIT-Performance-<studentIdOrName> or
// SIT-Monthly-Report-<year>-<month>. Characters outside [A-Za-z0-9._-] are
// replaced by hyphens.
func Filename(kind document.Kind, key string) string {
	key = strings.Trim(unsafeFilename.ReplaceAllString(strings.TrimSpace(key), "-"), "-")
	switch kind {
	case document.KindMeetingMinutes:
		return "SIT-Meeting-" + key
	case document.KindMemberPerformance:
		return "SIT-Performance-" + key
	case document.KindMonthlyActivity:
		return "SIT-Monthly-Report-" + key
	}
	return "SIT-" + key
}
