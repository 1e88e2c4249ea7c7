package report_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitcouncil/councilreports/internal/aggregator"
	"github.com/sitcouncil/councilreports/internal/document"
	"github.com/sitcouncil/councilreports/internal/models"
	"github.com/sitcouncil/councilreports/internal/report"
	"github.com/sitcouncil/councilreports/internal/testfixtures"
)

var ada = report.Caller{ID: "u-ada", Name: "Ada Lovelace"}

func newEngine(t *testing.T, meetings []models.Meeting) (*report.Engine, *testfixtures.Clock) {
	t.Helper()
	store := testfixtures.NewMemoryStore(testfixtures.Council(), meetings)
	clock := testfixtures.NewClock(time.Time{})
	agg := aggregator.New(store, store, aggregator.WithNow(clock.Now))
	return report.NewEngine(agg, report.WithClock(clock.Now), report.WithOrganization("SIT Student Council")), clock
}

func TestBuildMeetingMinutes(t *testing.T) {
	engine, _ := newEngine(t, []models.Meeting{testfixtures.MinutesMeeting()})

	rep, err := engine.BuildMeetingMinutes(context.Background(), "m-budget", ada)
	require.NoError(t, err)

	assert.Equal(t, document.KindMeetingMinutes, rep.Kind)
	assert.Equal(t, "SIT-Meeting-m-budget", rep.Filename)

	header, ok := rep.Model.Sections[0].(document.Heading)
	require.True(t, ok)
	assert.Equal(t, "SIT Student Council", header.Text)

	footer, ok := rep.Model.Footer()
	require.True(t, ok)
	assert.Equal(t, report.DocumentID(document.KindMeetingMinutes, "meeting/m-budget"), footer.DocumentID)
	assert.Equal(t, testfixtures.ReferenceTime(), footer.GeneratedAt)
}

func TestBuildIsIdempotentApartFromTimestamp(t *testing.T) {
	engine, clock := newEngine(t, []models.Meeting{testfixtures.MinutesMeeting()})
	ctx := context.Background()

	first, err := engine.BuildMeetingMinutes(ctx, "m-budget", ada)
	require.NoError(t, err)
	clock.Advance(time.Minute)
	second, err := engine.BuildMeetingMinutes(ctx, "m-budget", ada)
	require.NoError(t, err)

	n := len(first.Model.Sections)
	require.Equal(t, n, len(second.Model.Sections))
	assert.Equal(t, first.Model.Sections[:n-1], second.Model.Sections[:n-1])

	f1, _ := first.Model.Footer()
	f2, _ := second.Model.Footer()
	assert.Equal(t, f1.DocumentID, f2.DocumentID)
	assert.Equal(t, time.Minute, f2.GeneratedAt.Sub(f1.GeneratedAt))
}

func TestBuildMemberPerformance(t *testing.T) {
	engine, _ := newEngine(t, nil)
	ctx := context.Background()

	rep, err := engine.BuildMemberPerformance(ctx, "u-ada", ada)
	require.NoError(t, err)
	assert.Equal(t, "SIT-Performance-SIT-001", rep.Filename)

	rep, err = engine.BuildMemberPerformance(ctx, "u-grace", ada)
	require.NoError(t, err)
	assert.Equal(t, "SIT-Performance-Grace-Hopper", rep.Filename, "falls back to the name without a student id")
}

func TestBuildMonthlyActivity(t *testing.T) {
	engine, _ := newEngine(t, testfixtures.MonthOfMeetings())

	rep, err := engine.BuildMonthlyActivity(context.Background(), 2024, time.February, ada)
	require.NoError(t, err)
	assert.Equal(t, "SIT-Monthly-Report-2024-02", rep.Filename)
	assert.Equal(t, "monthly/2024-02", rep.Scope)

	summary, ok := rep.Model.KeyValues("executive-summary")
	require.True(t, ok)
	assert.Equal(t, "Ada Lovelace", summary.Value("Generated By"))
}

func TestBuildErrors(t *testing.T) {
	engine, _ := newEngine(t, nil)
	ctx := context.Background()

	_, err := engine.BuildMeetingMinutes(ctx, "m-missing", ada)
	require.Error(t, err)
	var reportErr *report.Error
	require.True(t, errors.As(err, &reportErr))
	assert.Equal(t, document.KindMeetingMinutes, reportErr.Kind)
	assert.Equal(t, "meeting/m-missing", reportErr.Scope)
	assert.True(t, report.IsNotFound(err))
	assert.ErrorIs(t, err, aggregator.ErrNotFound)

	_, err = engine.BuildMemberPerformance(ctx, "u-missing", ada)
	assert.True(t, report.IsNotFound(err))

	_, err = engine.BuildMonthlyActivity(ctx, 2024, time.Month(13), ada)
	assert.True(t, report.IsInvalidScope(err))
	assert.False(t, report.IsNotFound(err))
}

func TestFilename(t *testing.T) {
	tests := []struct {
		kind document.Kind
		key  string
		want string
	}{
		{document.KindMeetingMinutes, "abc123", "SIT-Meeting-abc123"},
		{document.KindMemberPerformance, "Ada Lovelace", "SIT-Performance-Ada-Lovelace"},
		{document.KindMemberPerformance, " a/b ", "SIT-Performance-a-b"},
		{document.KindMonthlyActivity, "2024-02", "SIT-Monthly-Report-2024-02"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, report.Filename(tt.kind, tt.key))
	}
}

func TestDocumentIDIsStable(t *testing.T) {
	a := report.DocumentID(document.KindMonthlyActivity, "monthly/2024-02")
	b := report.DocumentID(document.KindMonthlyActivity, "monthly/2024-02")
	c := report.DocumentID(document.KindMonthlyActivity, "monthly/2024-03")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}
