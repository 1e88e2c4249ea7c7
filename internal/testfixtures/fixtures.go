package testfixtures

import (
	"time"

	"github.com/sitcouncil/councilreports/internal/models"
)

// Day returns midnight UTC of the given date.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Ptr returns a pointer to t.
func Ptr(t time.Time) *time.Time {
	return &t
}

// Council returns a small council: three officers, one member and a guest.
func Council() []models.User {
	return []models.User{
		{ID: "u-ada", Name: "Ada Lovelace", Email: "ada@sit.edu", Role: models.RolePresident, StudentID: "SIT-001",
			Department: "Computing", JoinDate: Day(2022, time.September, 1),
			Performance: models.Performance{MeetingsAttended: 18, TasksCompleted: 9, Rating: 4.6, Streak: 5, Points: 420,
				Achievements: []string{"Founding President", "Perfect Attendance"}}},
		{ID: "u-alan", Name: "Alan Turing", Email: "alan@sit.edu", Role: models.RoleSecretary, StudentID: "SIT-002",
			Department: "Mathematics", JoinDate: Day(2023, time.January, 10)},
		{ID: "u-grace", Name: "Grace Hopper", Email: "grace@sit.edu", Role: models.RoleTreasurer,
			Department: "Engineering", JoinDate: Day(2023, time.February, 3)},
		{ID: "u-linus", Name: "Linus Torvalds", Email: "linus@sit.edu", Role: models.RoleMember,
			Department: "Computing", JoinDate: Day(2023, time.August, 20)},
		{ID: "u-guest", Name: "Visiting Guest", Email: "guest@sit.edu", Role: models.RoleGuest},
	}
}

// MinutesMeeting returns a completed meeting with three attendees (two
// present, one absent) and two action items: one overdue at ReferenceTime and
// one completed.
func MinutesMeeting() models.Meeting {
	now := ReferenceTime()
	yesterday := now.AddDate(0, 0, -1)
	lastWeek := now.AddDate(0, 0, -7)
	nextDate := Day(2024, time.April, 1)
	return models.Meeting{
		ID:             "m-budget",
		Title:          "Budget Review",
		Type:           models.MeetingRegular,
		Date:           Day(2024, time.March, 12),
		StartTime:      "14:00",
		EndTime:        "15:30",
		Location:       "Room 204",
		ChairpersonID:  "u-ada",
		MinutesTakerID: "u-alan",
		Objective:      "Approve the spring budget.",
		Agenda: []models.AgendaItem{
			{Title: "Treasurer report", Presenter: "Grace Hopper", DurationMinutes: 20, Status: models.AgendaCompleted, Order: 2},
			{Title: "Opening remarks", Presenter: "Ada Lovelace", DurationMinutes: 5, Status: models.AgendaCompleted, Order: 1},
		},
		Attendees: []models.Attendee{
			{UserID: "u-ada", Status: models.AttendancePresent},
			{UserID: "u-alan", Status: models.AttendancePresent},
			{UserID: "u-grace", Status: models.AttendanceAbsent, Notes: "Exam"},
		},
		Minutes: models.Minutes{
			Summary:   "The spring budget was approved with minor changes.",
			Decisions: []string{"Approve the spring budget", "Move the gala to May"},
			ActionItems: []models.ActionItem{
				{Task: "Publish the approved budget", AssigneeID: "u-alan", Deadline: &yesterday,
					Priority: models.PriorityHigh, Status: models.TaskPending},
				{Task: "Reserve the gala venue", AssigneeID: "u-grace", Deadline: &lastWeek,
					Priority: models.PriorityMedium, Status: models.TaskCompleted, CompletedAt: &lastWeek},
			},
			NextMeeting: &models.NextMeeting{Date: &nextDate, Time: "14:00", Location: "Room 204", Agenda: "Gala planning"},
		},
		Status:    models.MeetingCompleted,
		CreatedBy: "u-ada",
	}
}

// MonthOfMeetings returns four meetings in February 2024. Ada attends three
// of them, Linus one, Alan all four; Grace none.
func MonthOfMeetings() []models.Meeting {
	att := func(ids ...string) []models.Attendee {
		out := make([]models.Attendee, len(ids))
		for i, id := range ids {
			out[i] = models.Attendee{UserID: id, Status: models.AttendancePresent}
		}
		return out
	}
	past := Day(2024, time.February, 20)
	future := Day(2024, time.April, 30)
	return []models.Meeting{
		{ID: "m-feb-01", Title: "Kickoff", Type: models.MeetingRegular, Date: Day(2024, time.February, 1),
			Status: models.MeetingCompleted, Attendees: att("u-ada", "u-alan"),
			Minutes: models.Minutes{ActionItems: []models.ActionItem{
				{Task: "Draft the semester calendar", AssigneeID: "u-alan", Deadline: &past, Priority: models.PriorityHigh, Status: models.TaskPending},
			}}},
		{ID: "m-feb-08", Title: "Events Committee", Type: models.MeetingCommittee, Date: Day(2024, time.February, 8),
			Status: models.MeetingCompleted, Attendees: att("u-ada", "u-alan", "u-linus"),
			Minutes: models.Minutes{ActionItems: []models.ActionItem{
				{Task: "Book the auditorium", AssigneeID: "u-ada", Deadline: &future, Priority: models.PriorityMedium, Status: models.TaskInProgress},
				{Task: "Order banners", Priority: models.PriorityLow, Status: models.TaskCompleted},
			}}},
		{ID: "m-feb-15", Title: "Special Session", Type: models.MeetingSpecial, Date: Day(2024, time.February, 15),
			Status: models.MeetingCompleted, Attendees: att("u-alan")},
		{ID: "m-feb-29", Title: "Month End", Type: models.MeetingRegular, Date: Day(2024, time.February, 29),
			Status: models.MeetingCancelled, Attendees: att("u-ada", "u-alan", "u-deleted"),
			Minutes: models.Minutes{ActionItems: []models.ActionItem{
				{Task: "Archive minutes", AssigneeID: "u-deleted", Priority: models.PriorityLow, Status: models.TaskPending},
			}}},
	}
}
