package document

import (
	"fmt"

	"github.com/sitcouncil/councilreports/internal/aggregator"
	"github.com/sitcouncil/councilreports/internal/models"
)

// MeetingMinutes lays out a single meeting. New pages start before Attendees,
// Agenda, Minutes, Next Meeting and Approvals.
func MeetingMinutes(bundle *aggregator.MeetingBundle, meta Meta) *Model {
	m := bundle.Meeting
	b := newBuilder(KindMeetingMinutes, meta, m.Title)

	b.section("meeting-details", "Meeting Details", false)
	b.add(KeyValueBlock{
		ID: "meeting-details",
		Pairs: []KeyValue{
			{Key: "Title", Value: m.Title},
			{Key: "Type", Value: label(string(m.Type))},
			{Key: "Date", Value: FormatDate(m.Date)},
			{Key: "Time", Value: timeRange(m.StartTime, m.EndTime)},
			{Key: "Location", Value: orDefault(m.Location, notSpecified)},
			{Key: "Chairperson", Value: bundle.Chairperson.Name},
			{Key: "Minutes Taker", Value: bundle.MinutesTaker.Name},
			{Key: "Status", Value: meetingStatusLabel(m.Status)},
			{Key: "Agenda Duration", Value: plural(bundle.AgendaMinutes, "minute", "minutes")},
		},
	})

	if m.Objective != "" {
		b.section("objectives", "Objectives", false)
		b.add(Paragraph{ID: "objectives", Style: StylePlain, Lines: []string{m.Objective}})
	}

	b.section("attendees", fmt.Sprintf("Attendees (%d)", len(bundle.Attendees)), true)
	b.add(attendanceSummary(bundle.Attendees))
	attendeeRows := make([]Row, 0, len(bundle.Attendees))
	for i, a := range bundle.Attendees {
		attendeeRows = append(attendeeRows, cells(
			itoa(i+1),
			a.Person.Name,
			orDefault(a.Person.DisplayRole(), "-"),
			attendanceLabel(a.Status),
			formatOptionalTime(a.ArrivalTime),
			orDefault(a.Notes, "-"),
		))
	}
	b.add(NewTable("attendees", "Attendees",
		[]string{"#", "Name", "Role", "Status", "Arrival", "Notes"},
		[]int{6, 28, 18, 14, 12, 22},
		attendeeRows,
	))

	if len(bundle.Agenda) > 0 {
		b.section("agenda", "Agenda", true)
		agendaRows := make([]Row, 0, len(bundle.Agenda))
		for i, item := range bundle.Agenda {
			agendaRows = append(agendaRows, cells(
				itoa(i+1),
				item.Title,
				orDefault(item.Presenter, "-"),
				fmt.Sprintf("%d min", item.DurationMinutes),
				agendaStatusLabel(item.Status),
				orDefault(item.Description, "-"),
			))
		}
		b.add(NewTable("agenda", "Agenda Items",
			[]string{"#", "Item", "Presenter", "Duration", "Status", "Description"},
			[]int{6, 26, 18, 12, 14, 24},
			agendaRows,
		))
	}

	b.section("minutes", "Minutes", true)
	b.subsection("summary", "Summary")
	b.add(Paragraph{ID: "summary", Style: StylePlain, Lines: []string{orDefault(m.Minutes.Summary, "No summary recorded.")}})

	b.subsection("decisions", "Decisions")
	if len(m.Minutes.Decisions) > 0 {
		b.add(Paragraph{ID: "decisions", Style: StyleNumbered, Lines: append([]string(nil), m.Minutes.Decisions...)})
	} else {
		b.add(Paragraph{ID: "decisions", Style: StylePlain, Lines: []string{"No decisions recorded."}})
	}

	b.subsection("action-items", "Action Items")
	b.add(actionItemTable(bundle.ActionItems))

	if next := m.Minutes.NextMeeting; next != nil {
		b.section("next-meeting", "Next Meeting", true)
		b.add(KeyValueBlock{
			ID: "next-meeting",
			Pairs: []KeyValue{
				{Key: "Date", Value: formatOptionalDate(next.Date, "To be announced")},
				{Key: "Time", Value: orDefault(next.Time, "To be announced")},
				{Key: "Location", Value: orDefault(next.Location, "To be announced")},
				{Key: "Agenda", Value: orDefault(next.Agenda, notSpecified)},
			},
		})
	}

	b.section("approvals", "Approvals", true)
	b.add(SignatureBlock{
		Title: "Approved by",
		Signatures: []Signature{
			{Role: "Chairperson", Name: bundle.Chairperson.Name},
			{Role: "Minutes Taker", Name: bundle.MinutesTaker.Name},
		},
	})

	return b.footer(meta)
}

func actionItemTable(items []aggregator.ActionItemLine) Table {
	rows := make([]Row, 0, len(items))
	for i, item := range items {
		rows = append(rows, Row{
			Cells: []string{
				itoa(i + 1),
				item.Task,
				item.Assignee.Name,
				formatOptionalDate(item.Deadline, "No deadline"),
				label(string(item.Priority)),
				taskStatusLabel(item.Status),
			},
			Flagged: item.Overdue,
		})
	}
	return NewTable("action-items", "Action Items",
		[]string{"#", "Task", "Assigned To", "Deadline", "Priority", "Status"},
		[]int{6, 34, 18, 16, 12, 14},
		rows,
	)
}

func attendanceSummary(attendees []aggregator.AttendeeLine) KeyValueBlock {
	counts := make(map[models.AttendanceStatus]int)
	for _, a := range attendees {
		counts[a.Status]++
	}
	statuses := []models.AttendanceStatus{
		models.AttendancePresent, models.AttendanceLate, models.AttendanceAbsent, models.AttendancePending,
	}
	block := KeyValueBlock{ID: "attendance-summary"}
	for _, s := range statuses {
		block.Pairs = append(block.Pairs, KeyValue{Key: attendanceLabel(s), Value: itoa(counts[s])})
	}
	return block
}

func timeRange(start, end string) string {
	switch {
	case start == "" && end == "":
		return notSpecified
	case end == "":
		return start
	case start == "":
		return "until " + end
	}
	return start + " - " + end
}

func meetingStatusLabel(s models.MeetingStatus) string {
	switch s {
	case models.MeetingScheduled:
		return "Scheduled"
	case models.MeetingInProgress:
		return "In Progress"
	case models.MeetingCompleted:
		return "Completed"
	case models.MeetingCancelled:
		return "Cancelled"
	}
	return label(string(s))
}

func attendanceLabel(s models.AttendanceStatus) string {
	switch s {
	case models.AttendancePending:
		return "Pending"
	case models.AttendancePresent:
		return "Present"
	case models.AttendanceAbsent:
		return "Absent"
	case models.AttendanceLate:
		return "Late"
	}
	return label(string(s))
}

func agendaStatusLabel(s models.AgendaStatus) string {
	switch s {
	case models.AgendaPending:
		return "Pending"
	case models.AgendaInProgress:
		return "In Progress"
	case models.AgendaCompleted:
		return "Completed"
	case models.AgendaDeferred:
		return "Deferred"
	}
	return label(string(s))
}

func taskStatusLabel(s models.TaskStatus) string {
	switch s {
	case models.TaskPending:
		return "Pending"
	case models.TaskInProgress:
		return "In Progress"
	case models.TaskCompleted:
		return "Completed"
	case models.TaskOverdue:
		return "Overdue"
	}
	return label(string(s))
}
