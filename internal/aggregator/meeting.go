package aggregator

import (
	"context"
	"sort"
	"time"

	"github.com/sitcouncil/councilreports/internal/calculator"
	"github.com/sitcouncil/councilreports/internal/models"
)

// MeetingBundle is a single meeting with every user reference projected for display.
type MeetingBundle struct {
	Meeting models.Meeting

	Chairperson  Person
	MinutesTaker Person
	Creator      Person

	Attendees []AttendeeLine

	// Agenda is sorted by Order; ties keep stored order.
	Agenda        []models.AgendaItem
	AgendaMinutes int

	ActionItems []ActionItemLine
	Breakdown   calculator.Breakdown

	// AsOf is the instant overdue flags were computed at.
	AsOf time.Time
}

// AttendeeLine is one attendee with the user projected.
type AttendeeLine struct {
	Person      Person
	Status      models.AttendanceStatus
	ArrivalTime *time.Time
	Notes       string
}

// ActionItemLine is an action item with its assignee projected and its
// status recomputed.
type ActionItemLine struct {
	Task     string
	Assignee Person
	Deadline *time.Time
	Priority models.Priority

	// StoredStatus is what the record says; Status is what holds at AsOf.
	StoredStatus models.TaskStatus
	Status       models.TaskStatus
	Overdue      bool
	CompletedAt  *time.Time

	// MeetingID and MeetingTitle identify the owning meeting.
	MeetingID    string
	MeetingTitle string
}

// Meeting aggregates the single-meeting scope.
func (a *Aggregator) Meeting(ctx context.Context, meetingID string) (*MeetingBundle, error) {
	meeting, err := a.meetings.GetMeeting(ctx, meetingID)
	if err != nil {
		return nil, notFound(err, "meeting", meetingID)
	}
	now := a.now()

	ids := []string{meeting.ChairpersonID, meeting.MinutesTakerID, meeting.CreatedBy}
	for _, attendee := range meeting.Attendees {
		ids = append(ids, attendee.UserID)
	}
	for _, item := range meeting.Minutes.ActionItems {
		ids = append(ids, item.AssigneeID)
	}
	dir, err := a.resolve(ctx, ids)
	if err != nil {
		return nil, err
	}

	bundle := &MeetingBundle{
		Meeting:      *meeting,
		Chairperson:  dir.person(meeting.ChairpersonID, NotSpecified),
		MinutesTaker: dir.person(meeting.MinutesTakerID, NotSpecified),
		Creator:      dir.person(meeting.CreatedBy, NotSpecified),
		Attendees:    make([]AttendeeLine, 0, len(meeting.Attendees)),
		Agenda:       make([]models.AgendaItem, len(meeting.Agenda)),
		ActionItems:  actionItemLines(*meeting, dir, now),
		Breakdown:    calculator.TaskStatusBreakdown(meeting.Minutes.ActionItems, now),
		AsOf:         now,
	}

	for _, attendee := range meeting.Attendees {
		bundle.Attendees = append(bundle.Attendees, AttendeeLine{
			// An attendee reference that is present but unresolvable reads Unknown.
			Person:      dir.person(attendee.UserID, Unknown),
			Status:      attendee.Status,
			ArrivalTime: attendee.ArrivalTime,
			Notes:       attendee.Notes,
		})
	}

	copy(bundle.Agenda, meeting.Agenda)
	sort.SliceStable(bundle.Agenda, func(i, j int) bool {
		return bundle.Agenda[i].Order < bundle.Agenda[j].Order
	})
	for _, item := range bundle.Agenda {
		bundle.AgendaMinutes += item.DurationMinutes
	}

	return bundle, nil
}

func actionItemLines(meeting models.Meeting, dir directory, now time.Time) []ActionItemLine {
	lines := make([]ActionItemLine, 0, len(meeting.Minutes.ActionItems))
	for _, item := range meeting.Minutes.ActionItems {
		status := calculator.EffectiveStatus(item, now)
		lines = append(lines, ActionItemLine{
			Task:         item.Task,
			Assignee:     dir.person(item.AssigneeID, Unassigned),
			Deadline:     item.Deadline,
			Priority:     item.Priority,
			StoredStatus: item.Status,
			Status:       status,
			Overdue:      status == models.TaskOverdue,
			CompletedAt:  item.CompletedAt,
			MeetingID:    meeting.ID,
			MeetingTitle: meeting.Title,
		})
	}
	return lines
}
