package document

import (
	"fmt"

	"github.com/sitcouncil/councilreports/internal/aggregator"
	"github.com/sitcouncil/councilreports/internal/calculator"
	"github.com/sitcouncil/councilreports/internal/models"
)

// lowAttendancePercent is the rate below which a member is called out in recommendations.
const lowAttendancePercent = 50

// MonthlyActivity lays out an activity bundle. New pages start before
// Attendance Statistics, Action Items Summary and Recommendations.
func MonthlyActivity(bundle *aggregator.ActivityBundle, meta Meta) *Model {
	b := newBuilder(KindMonthlyActivity, meta, periodLabel(bundle))

	attended, possible := 0, 0
	for _, stat := range bundle.Attendance {
		attended += stat.Attended
		possible += stat.TotalMeetings
	}

	b.section("executive-summary", "Executive Summary", false)
	b.add(KeyValueBlock{
		ID: "executive-summary",
		Pairs: []KeyValue{
			{Key: "Reporting Period", Value: FormatDate(bundle.Start) + " - " + FormatDate(bundle.End)},
			{Key: "Total Meetings", Value: itoa(len(bundle.Meetings))},
			{Key: "Completed Meetings", Value: itoa(bundle.MeetingsByStatus[models.MeetingCompleted])},
			{Key: "Cancelled Meetings", Value: itoa(bundle.MeetingsByStatus[models.MeetingCancelled])},
			{Key: "Active Members", Value: itoa(bundle.Members)},
			{Key: "Average Attendance", Value: percent(calculator.AttendanceRate(attended, possible))},
			{Key: "Total Action Items", Value: itoa(bundle.Breakdown.Total())},
			{Key: "Task Completion Rate", Value: percent(calculator.CompletionRate(bundle.Breakdown))},
			{Key: "Overdue Action Items", Value: itoa(bundle.Breakdown.Overdue)},
			{Key: "Generated By", Value: orDefault(meta.GeneratedBy, "Unknown")},
		},
	})

	b.section("meetings-summary", "Meetings Summary", false)
	if len(bundle.Meetings) == 0 {
		b.add(Paragraph{ID: "meetings-summary", Style: StylePlain, Lines: []string{"No meetings were held in this period."}})
	} else {
		lines := make([]string, 0, len(bundle.Meetings))
		for _, m := range bundle.Meetings {
			lines = append(lines, fmt.Sprintf("%s | %s (%s, %s) | %s | %s",
				FormatDate(m.Date), m.Title, label(string(m.Type)), meetingStatusLabel(m.Status),
				plural(m.AttendeeCount, "attendee", "attendees"),
				plural(m.ActionItemCount, "action item", "action items"),
			))
		}
		b.add(Paragraph{ID: "meetings-summary", Style: StyleNumbered, Lines: lines})
	}

	b.section("attendance-statistics", "Attendance Statistics", true)
	statRows := make([]Row, 0, len(bundle.Attendance))
	for _, stat := range bundle.Attendance {
		statRows = append(statRows, cells(
			stat.Name,
			string(stat.Role),
			itoa(stat.TotalMeetings),
			itoa(stat.Attended),
			percent(stat.RatePercent),
		))
	}
	b.add(NewTable("attendance-statistics", "Attendance Statistics",
		[]string{"Name", "Role", "Meetings", "Attended", "Rate"},
		[]int{32, 20, 16, 16, 16},
		statRows,
	))

	b.section("action-items-summary", "Action Items Summary", true)
	b.add(KeyValueBlock{
		ID: "action-item-counts",
		Pairs: []KeyValue{
			{Key: "Total", Value: itoa(bundle.Breakdown.Total())},
			{Key: "Pending", Value: itoa(bundle.Breakdown.Pending)},
			{Key: "In Progress", Value: itoa(bundle.Breakdown.InProgress)},
			{Key: "Completed", Value: itoa(bundle.Breakdown.Completed)},
			{Key: "Overdue", Value: itoa(bundle.Breakdown.Overdue)},
		},
	})
	b.subsection("overdue-action-items", "Overdue Action Items")
	overdueRows := make([]Row, 0, len(bundle.Overdue))
	for i, item := range bundle.Overdue {
		overdueRows = append(overdueRows, Row{
			Cells: []string{
				itoa(i + 1),
				item.Task,
				item.MeetingTitle,
				item.Assignee.Name,
				formatOptionalDate(item.Deadline, "No deadline"),
			},
			Flagged: true,
		})
	}
	b.add(NewTable("overdue-action-items", "Overdue Action Items",
		[]string{"#", "Task", "Meeting", "Assigned To", "Deadline"},
		[]int{6, 36, 22, 18, 18},
		overdueRows,
	))

	b.section("recommendations", "Recommendations", true)
	b.add(Paragraph{ID: "recommendations", Style: StyleBulleted, Lines: Recommendations(bundle)})

	return b.footer(meta)
}

// Recommendations derives the templated advice bullets from the bundle counts.
// It always returns at least one line.
func Recommendations(bundle *aggregator.ActivityBundle) []string {
	var lines []string
	if len(bundle.Meetings) == 0 {
		lines = append(lines, "No meetings were held this month. Schedule at least one regular meeting to keep the council active.")
	}
	if n := bundle.Breakdown.Overdue; n > 0 {
		lines = append(lines, fmt.Sprintf("Follow up on %s with their assignees.", plural(n, "overdue action item", "overdue action items")))
	}
	if n := bundle.Breakdown.Open(); n > 0 {
		lines = append(lines, fmt.Sprintf("%s remain open. Review progress at the next meeting.", plural(n, "action item", "action items")))
	}
	if len(bundle.Meetings) > 0 {
		low := 0
		for _, stat := range bundle.Attendance {
			if calculator.AttendancePercent(stat.Attended, stat.TotalMeetings) < lowAttendancePercent {
				low++
			}
		}
		if low > 0 {
			lines = append(lines, fmt.Sprintf("%s attended fewer than half of the meetings. Reach out to improve participation.",
				plural(low, "member", "members")))
		}
	}
	if len(lines) == 0 {
		lines = append(lines, "All action items are on track and attendance is healthy. Keep up the good work.")
	}
	return lines
}

func periodLabel(bundle *aggregator.ActivityBundle) string {
	if bundle.Year != 0 {
		return fmt.Sprintf("%s %d", bundle.Month, bundle.Year)
	}
	return FormatDate(bundle.Start) + " - " + FormatDate(bundle.End)
}
