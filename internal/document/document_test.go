package document_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitcouncil/councilreports/internal/aggregator"
	"github.com/sitcouncil/councilreports/internal/document"
	"github.com/sitcouncil/councilreports/internal/models"
	"github.com/sitcouncil/councilreports/internal/testfixtures"
)

func testMeta() document.Meta {
	return document.Meta{
		Organization: "SIT Council",
		DocumentID:   "doc-1",
		GeneratedAt:  testfixtures.ReferenceTime(),
		GeneratedBy:  "Ada Lovelace",
	}
}

func aggregatorFor(users []models.User, meetings []models.Meeting) *aggregator.Aggregator {
	store := testfixtures.NewMemoryStore(users, meetings)
	clock := testfixtures.NewClock(time.Time{})
	return aggregator.New(store, store, aggregator.WithNow(clock.Now))
}

func minutesModel(t *testing.T, meeting models.Meeting) *document.Model {
	t.Helper()
	bundle, err := aggregatorFor(testfixtures.Council(), []models.Meeting{meeting}).Meeting(context.Background(), meeting.ID)
	require.NoError(t, err)
	return document.MeetingMinutes(bundle, testMeta())
}

func monthlyModel(t *testing.T, meetings []models.Meeting, year int, month time.Month) *document.Model {
	t.Helper()
	bundle, err := aggregatorFor(testfixtures.Council(), meetings).Monthly(context.Background(), year, month)
	require.NoError(t, err)
	return document.MonthlyActivity(bundle, testMeta())
}

func TestTruncateCell(t *testing.T) {
	exact := strings.Repeat("a", document.MaxCellLength)
	assert.Equal(t, exact, document.TruncateCell(exact))

	long := strings.Repeat("b", document.MaxCellLength+10)
	got := document.TruncateCell(long)
	assert.Equal(t, strings.Repeat("b", document.MaxCellLength)+"...", got)

	accented := strings.Repeat("é", document.MaxCellLength+1)
	assert.Equal(t, strings.Repeat("é", document.MaxCellLength)+"...", document.TruncateCell(accented))
}

func TestFormatTimestampIsUTC(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	at := time.Date(2024, time.March, 15, 18, 30, 0, 0, tokyo)
	assert.Equal(t, "2024-03-15 09:30:00 UTC", document.FormatTimestamp(at))
	assert.Equal(t, "March 15, 2024", document.FormatDate(at))
}

func TestNormalizeWidths(t *testing.T) {
	tests := []struct {
		name    string
		hints   []int
		columns int
		want    []int
	}{
		{"equal split", nil, 3, []int{34, 33, 33}},
		{"already percentages", []int{60, 40}, 2, []int{60, 40}},
		{"scaled", []int{1, 1, 2}, 3, []int{25, 25, 50}},
		{"mismatched arity", []int{50, 50}, 4, []int{25, 25, 25, 25}},
		{"non-positive hint", []int{0, 10, 10}, 3, []int{34, 33, 33}},
		{"rounding leftovers", []int{1, 1, 1, 1, 1, 1, 1}, 7, []int{15, 15, 14, 14, 14, 14, 14}},
		{"no columns", []int{10}, 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := document.NormalizeWidths(tt.hints, tt.columns)
			assert.Equal(t, tt.want, got)
			if tt.columns > 0 {
				sum := 0
				for _, w := range got {
					sum += w
				}
				assert.Equal(t, 100, sum)
			}
		})
	}
}

func TestNewTableShapesRows(t *testing.T) {
	table := document.NewTable("t", "Caption", []string{"A", "B", "C"}, nil, []document.Row{
		{Cells: []string{"1"}},
		{Cells: []string{"1", "2", "3", "4"}, Flagged: true},
	})
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"1", "", ""}, table.Rows[0].Cells)
	assert.Equal(t, []string{"1", "2", "3"}, table.Rows[1].Cells)
	assert.True(t, table.Rows[1].Flagged)

	empty := document.NewTable("e", "Empty", []string{"A", "B"}, []int{70, 30}, nil)
	assert.Equal(t, []string{"A", "B"}, empty.Header)
	assert.Empty(t, empty.Rows)
	assert.Equal(t, []int{70, 30}, empty.Widths)
}

func TestMeetingMinutesLayout(t *testing.T) {
	model := minutesModel(t, testfixtures.MinutesMeeting())

	assert.Equal(t, document.KindMeetingMinutes, model.Kind)
	assert.Equal(t,
		[]string{"meeting-details", "objectives", "attendees", "agenda", "minutes", "next-meeting", "approvals"},
		model.TopLevel())
	assert.Equal(t,
		[]string{"attendees", "agenda", "minutes", "next-meeting", "approvals"},
		model.PageStarts())

	details, ok := model.KeyValues("meeting-details")
	require.True(t, ok)
	assert.Equal(t, "March 12, 2024", details.Value("Date"))
	assert.Equal(t, "14:00 - 15:30", details.Value("Time"))
	assert.Equal(t, "Ada Lovelace", details.Value("Chairperson"))
	assert.Equal(t, "25 minutes", details.Value("Agenda Duration"))

	attendees, ok := model.Table("attendees")
	require.True(t, ok)
	require.Len(t, attendees.Rows, 3)
	assert.Equal(t, "Absent", attendees.Rows[2].Cells[3])

	summary, ok := model.KeyValues("attendance-summary")
	require.True(t, ok)
	assert.Equal(t, "2", summary.Value("Present"))
	assert.Equal(t, "1", summary.Value("Absent"))

	agenda, ok := model.Table("agenda")
	require.True(t, ok)
	require.Len(t, agenda.Rows, 2)
	assert.Equal(t, "Opening remarks", agenda.Rows[0].Cells[1])

	actions, ok := model.Table("action-items")
	require.True(t, ok)
	require.Len(t, actions.Rows, 2)
	flagged := 0
	for _, row := range actions.Rows {
		if row.Flagged {
			flagged++
			assert.Equal(t, "Overdue", row.Cells[5])
			assert.Equal(t, "Publish the approved budget", row.Cells[1])
		}
	}
	assert.Equal(t, 1, flagged)

	footer, ok := model.Footer()
	require.True(t, ok)
	assert.Equal(t, "doc-1", footer.DocumentID)
	assert.Equal(t, document.PagePlaceholder, footer.PageLabel)
	_, isFooter := model.Sections[len(model.Sections)-1].(document.Footer)
	assert.True(t, isFooter, "footer is the last section")
}

func TestMeetingMinutesOptionalSections(t *testing.T) {
	meeting := testfixtures.MinutesMeeting()
	meeting.Objective = ""
	meeting.Agenda = nil
	meeting.Minutes.NextMeeting = nil
	meeting.Minutes.ActionItems = nil
	meeting.Minutes.Decisions = nil

	model := minutesModel(t, meeting)
	assert.Equal(t, []string{"attendees", "minutes", "approvals"}, model.PageStarts())

	actions, ok := model.Table("action-items")
	require.True(t, ok, "action item table is present even when empty")
	assert.Empty(t, actions.Rows)
	assert.Equal(t, []string{"#", "Task", "Assigned To", "Deadline", "Priority", "Status"}, actions.Header)

	decisions, ok := model.Paragraph("decisions")
	require.True(t, ok)
	assert.Equal(t, []string{"No decisions recorded."}, decisions.Lines)
}

func TestTruncationOnlyInTables(t *testing.T) {
	meeting := testfixtures.MinutesMeeting()
	longText := strings.Repeat("long words ", 12)
	meeting.Objective = longText
	meeting.Minutes.ActionItems[0].Task = longText

	model := minutesModel(t, meeting)

	objectives, ok := model.Paragraph("objectives")
	require.True(t, ok)
	assert.Equal(t, longText, objectives.Lines[0])

	actions, ok := model.Table("action-items")
	require.True(t, ok)
	task := actions.Rows[0].Cells[1]
	assert.True(t, strings.HasSuffix(task, document.Ellipsis))
	assert.Equal(t, document.MaxCellLength+len(document.Ellipsis), len([]rune(task)))
}

func TestMeetingMinutesPlaceholders(t *testing.T) {
	meeting := testfixtures.MinutesMeeting()
	meeting.ChairpersonID = ""
	meeting.MinutesTakerID = "u-missing"
	meeting.Minutes.ActionItems[1].AssigneeID = ""

	model := minutesModel(t, meeting)

	details, ok := model.KeyValues("meeting-details")
	require.True(t, ok)
	assert.Equal(t, aggregator.NotSpecified, details.Value("Chairperson"))
	assert.Equal(t, aggregator.Unknown, details.Value("Minutes Taker"))

	actions, ok := model.Table("action-items")
	require.True(t, ok)
	assert.Equal(t, aggregator.Unassigned, actions.Rows[1].Cells[2])
}

func TestMonthlyActivityLayout(t *testing.T) {
	model := monthlyModel(t, testfixtures.MonthOfMeetings(), 2024, time.February)

	assert.Equal(t,
		[]string{"attendance-statistics", "action-items-summary", "recommendations"},
		model.PageStarts())

	summary, ok := model.KeyValues("executive-summary")
	require.True(t, ok)
	assert.Equal(t, "February 1, 2024 - February 29, 2024", summary.Value("Reporting Period"))
	assert.Equal(t, "4", summary.Value("Total Meetings"))
	assert.Equal(t, "3", summary.Value("Completed Meetings"))
	assert.Equal(t, "1", summary.Value("Cancelled Meetings"))
	assert.Equal(t, "4", summary.Value("Active Members"))
	assert.Equal(t, "4", summary.Value("Total Action Items"))
	assert.Equal(t, "25.0%", summary.Value("Task Completion Rate"))
	assert.Equal(t, "1", summary.Value("Overdue Action Items"))
	assert.Equal(t, "Ada Lovelace", summary.Value("Generated By"))

	stats, ok := model.Table("attendance-statistics")
	require.True(t, ok)
	require.Len(t, stats.Rows, 4)
	assert.Equal(t, []string{"Ada Lovelace", "President", "4", "3", "75.0%"}, stats.Rows[0].Cells)

	overdue, ok := model.Table("overdue-action-items")
	require.True(t, ok)
	require.Len(t, overdue.Rows, 1)
	assert.Equal(t, "Draft the semester calendar", overdue.Rows[0].Cells[1])
	assert.Equal(t, "Kickoff", overdue.Rows[0].Cells[2])
	assert.True(t, overdue.Rows[0].Flagged)

	recs, ok := model.Paragraph("recommendations")
	require.True(t, ok)
	require.Len(t, recs.Lines, 3)
	assert.Contains(t, recs.Lines[0], "1 overdue action item ")
	assert.Contains(t, recs.Lines[1], "2 action items remain open")
	assert.Contains(t, recs.Lines[2], "2 members attended fewer than half")
}

func TestMonthlyActivityWithoutMeetings(t *testing.T) {
	model := monthlyModel(t, nil, 2024, time.July)

	summary, ok := model.KeyValues("executive-summary")
	require.True(t, ok)
	assert.Equal(t, "0", summary.Value("Total Meetings"))
	assert.Equal(t, "0.0%", summary.Value("Average Attendance"))
	assert.Equal(t, "0.0%", summary.Value("Task Completion Rate"))

	stats, ok := model.Table("attendance-statistics")
	require.True(t, ok)
	assert.Empty(t, stats.Rows)
	assert.Equal(t, []string{"Name", "Role", "Meetings", "Attended", "Rate"}, stats.Header)

	meetings, ok := model.Paragraph("meetings-summary")
	require.True(t, ok)
	assert.Equal(t, []string{"No meetings were held in this period."}, meetings.Lines)

	recs, ok := model.Paragraph("recommendations")
	require.True(t, ok)
	require.Len(t, recs.Lines, 1)
	assert.Contains(t, recs.Lines[0], "No meetings were held this month")
}

func TestRecommendationsOnTrack(t *testing.T) {
	bundle := &aggregator.ActivityBundle{
		Meetings:   []aggregator.MeetingSummary{{ID: "m-1"}},
		Attendance: []aggregator.AttendanceStat{{Name: "Ada", TotalMeetings: 1, Attended: 1, RatePercent: "100.0"}},
	}
	bundle.Breakdown.Completed = 2

	lines := document.Recommendations(bundle)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "on track")
}

func TestMemberPerformanceLayout(t *testing.T) {
	bundle, err := aggregatorFor(testfixtures.Council(), nil).Member(context.Background(), "u-ada")
	require.NoError(t, err)

	model := document.MemberPerformance(bundle, testMeta())
	assert.Empty(t, model.PageStarts())
	assert.Equal(t,
		[]string{"member-information", "performance-metrics", "achievements", "performance-trend"},
		model.TopLevel())

	info, ok := model.KeyValues("member-information")
	require.True(t, ok)
	assert.Equal(t, "AL", info.Value("Initials"))
	assert.Equal(t, "SIT-001", info.Value("Student ID"))
	assert.Equal(t, "September 1, 2022", info.Value("Join Date"))

	metrics, ok := model.Table("performance-metrics")
	require.True(t, ok)
	assert.Equal(t, []string{"Rating", "4.6 / 5"}, metrics.Rows[2].Cells)

	trend, ok := model.Table("performance-trend")
	require.True(t, ok)
	assert.Len(t, trend.Rows, 6)

	achievements, ok := model.Paragraph("achievements")
	require.True(t, ok)
	assert.Equal(t, []string{"Founding President", "Perfect Attendance"}, achievements.Lines)
}

func TestBuildDispatch(t *testing.T) {
	bundle, err := aggregatorFor(testfixtures.Council(), []models.Meeting{testfixtures.MinutesMeeting()}).
		Meeting(context.Background(), "m-budget")
	require.NoError(t, err)

	model, err := document.Build(document.KindMeetingMinutes, bundle, testMeta())
	require.NoError(t, err)
	assert.Equal(t, document.KindMeetingMinutes, model.Kind)

	_, err = document.Build(document.KindMonthlyActivity, bundle, testMeta())
	assert.Error(t, err)

	_, err = document.Build(document.Kind("budget"), bundle, testMeta())
	assert.Error(t, err)
}

func TestEncodeIsDeterministic(t *testing.T) {
	first, err := document.MarshalBinary(minutesModel(t, testfixtures.MinutesMeeting()))
	require.NoError(t, err)
	second, err := document.MarshalBinary(minutesModel(t, testfixtures.MinutesMeeting()))
	require.NoError(t, err)
	assert.Equal(t, first, second)

	tree, err := document.Encode(minutesModel(t, testfixtures.MinutesMeeting()))
	require.NoError(t, err)
	assert.Equal(t, "meeting-minutes", tree.Fields["kind"].GetStringValue())
	sections := tree.Fields["sections"].GetListValue().GetValues()
	require.NotEmpty(t, sections)
	assert.Equal(t, "heading", sections[0].GetStructValue().Fields["type"].GetStringValue())

	raw, err := document.MarshalJSON(minutesModel(t, testfixtures.MinutesMeeting()))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Budget Review")
}
