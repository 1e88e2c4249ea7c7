package models

import "time"

// Meeting represents a council meeting with its agenda, attendance and minutes.
type Meeting struct {
	// ID is the unique identifier for the meeting (UUID format).
	ID string

	// Title is the human-readable name of the meeting.
	Title string

	// Type classifies the meeting (regular, random, special, committee).
	Type MeetingType

	// Date is the calendar day of the meeting. Report period filters are
	// inclusive on both ends.
	Date time.Time

	// StartTime and EndTime are wall clock times in "15:04" form.
	StartTime string
	EndTime   string

	// Location is where the meeting takes place.
	Location string

	// ChairpersonID and MinutesTakerID reference users. Empty when not assigned.
	ChairpersonID  string
	MinutesTakerID string

	// Objective is the free-text purpose of the meeting.
	Objective string

	// Agenda is the ordered list of agenda items.
	Agenda []AgendaItem

	// Attendees lists the invited users and their recorded attendance.
	Attendees []Attendee

	// Minutes holds the summary, decisions and action items recorded during the meeting.
	Minutes Minutes

	// Status is the lifecycle state of the meeting.
	Status MeetingStatus

	// CreatedBy references the user who created the meeting.
	CreatedBy string

	// Archived meetings are hidden from listings but still reported on.
	Archived bool

	// CreatedAt is the Unix timestamp when the meeting was created.
	CreatedAt int64
}

// Attendee is one user's attendance record for a meeting.
type Attendee struct {
	UserID      string
	Status      AttendanceStatus
	ArrivalTime *time.Time
	Notes       string
}

// DefaultAgendaDuration is applied to agenda items saved without a duration.
const DefaultAgendaDuration = 15

// AgendaItem is a single topic on a meeting's agenda.
type AgendaItem struct {
	// Title is required.
	Title string

	// Presenter is free text; it is not a user reference.
	Presenter string

	// DurationMinutes defaults to DefaultAgendaDuration.
	DurationMinutes int

	Description string
	Status      AgendaStatus

	// Order is the position of the item on the agenda.
	Order int
}

// Minutes is the record embedded in a meeting.
type Minutes struct {
	Summary     string
	Decisions   []string
	ActionItems []ActionItem
	NextMeeting *NextMeeting
}

// NextMeeting describes the follow-up meeting announced in the minutes.
type NextMeeting struct {
	Date     *time.Time
	Time     string
	Location string
	Agenda   string
}

// ActionItem is a task assigned during a meeting.
type ActionItem struct {
	// Task is the description of the work (required).
	Task string

	// AssigneeID references a user. Empty means unassigned.
	AssigneeID string

	// Deadline is optional.
	Deadline *time.Time

	Priority Priority

	// Status is the stored status. It may say overdue when the item is not,
	// or pending when the deadline has passed.
	Status TaskStatus

	// CompletedAt is set when the item was marked completed.
	CompletedAt *time.Time
}
