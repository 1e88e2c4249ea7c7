package aggregator

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sitcouncil/councilreports/internal/calculator"
	"github.com/sitcouncil/councilreports/internal/models"
	"github.com/sitcouncil/councilreports/internal/storage"
)

// AttendanceStat summarises one user's participation over a scope.
type AttendanceStat struct {
	UserID        string
	Name          string
	Role          models.Role
	TotalMeetings int
	Attended      int

	// RatePercent is formatted with one fractional digit, e.g. "75.0".
	RatePercent string
}

// MeetingSummary is one in-range meeting as listed in the activity report.
type MeetingSummary struct {
	ID              string
	Title           string
	Type            models.MeetingType
	Date            time.Time
	Status          models.MeetingStatus
	AttendeeCount   int
	ActionItemCount int
}

// ActivityBundle is the date-range scope.
type ActivityBundle struct {
	// Year and Month are set for monthly scopes and zero otherwise.
	Year  int
	Month time.Month

	// Start and End bound the scope inclusively.
	Start time.Time
	End   time.Time

	Meetings         []MeetingSummary
	MeetingsByStatus map[models.MeetingStatus]int
	MeetingsByType   map[models.MeetingType]int

	// Members is the number of non-guest users.
	Members int

	// Attendance holds one entry per non-guest user in name order. It is
	// empty when no meetings fall in the scope.
	Attendance []AttendanceStat

	// ActionItems flattens every in-range meeting's action items in meeting order.
	ActionItems []ActionItemLine
	Breakdown   calculator.Breakdown
	Overdue     []ActionItemLine

	AsOf time.Time
}

// MonthBounds returns the first and last instant of a calendar month in UTC.
func MonthBounds(year int, month time.Month) (time.Time, time.Time, error) {
	if year < 1 || month < time.January || month > time.December {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: month %d-%02d", ErrInvalidScope, year, int(month))
	}
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end, nil
}

// Monthly aggregates the calendar month scope.
func (a *Aggregator) Monthly(ctx context.Context, year int, month time.Month) (*ActivityBundle, error) {
	start, end, err := MonthBounds(year, month)
	if err != nil {
		return nil, err
	}
	bundle, err := a.Range(ctx, start, end)
	if err != nil {
		return nil, err
	}
	bundle.Year = year
	bundle.Month = month
	return bundle, nil
}

// Range aggregates every meeting dated within [start, end] and every non-guest user.
func (a *Aggregator) Range(ctx context.Context, start, end time.Time) (*ActivityBundle, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("%w: range ends before it starts", ErrInvalidScope)
	}

	var (
		meetings []models.Meeting
		users    []models.User
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		meetings, err = a.meetings.ListMeetings(gctx, storage.MeetingFilter{From: start, To: end})
		if err != nil {
			return fmt.Errorf("failed to list meetings: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		users, err = a.users.ListUsers(gctx, storage.UserFilter{ExcludeRoles: []models.Role{models.RoleGuest}})
		if err != nil {
			return fmt.Errorf("failed to list users: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	now := a.now()
	bundle := &ActivityBundle{
		Start:            start,
		End:              end,
		Meetings:         make([]MeetingSummary, 0, len(meetings)),
		MeetingsByStatus: make(map[models.MeetingStatus]int),
		MeetingsByType:   make(map[models.MeetingType]int),
		Members:          len(users),
		Attendance:       make([]AttendanceStat, 0, len(users)),
		AsOf:             now,
	}

	var assignees []string
	var rawItems []models.ActionItem
	attendance := make([]map[string]bool, len(meetings))
	for i, meeting := range meetings {
		bundle.Meetings = append(bundle.Meetings, MeetingSummary{
			ID:              meeting.ID,
			Title:           meeting.Title,
			Type:            meeting.Type,
			Date:            meeting.Date,
			Status:          meeting.Status,
			AttendeeCount:   len(meeting.Attendees),
			ActionItemCount: len(meeting.Minutes.ActionItems),
		})
		bundle.MeetingsByStatus[meeting.Status]++
		bundle.MeetingsByType[meeting.Type]++

		// Presence in the attendee list counts as attended, whatever the status.
		present := make(map[string]bool, len(meeting.Attendees))
		for _, attendee := range meeting.Attendees {
			present[attendee.UserID] = true
		}
		attendance[i] = present

		for _, item := range meeting.Minutes.ActionItems {
			assignees = append(assignees, item.AssigneeID)
			rawItems = append(rawItems, item)
		}
	}

	if len(meetings) > 0 {
		for _, user := range users {
			attended := 0
			for _, present := range attendance {
				if present[user.ID] {
					attended++
				}
			}
			bundle.Attendance = append(bundle.Attendance, AttendanceStat{
				UserID:        user.ID,
				Name:          user.Name,
				Role:          user.Role,
				TotalMeetings: len(meetings),
				Attended:      attended,
				RatePercent:   calculator.AttendanceRate(attended, len(meetings)),
			})
		}
	}

	dir, err := a.resolve(ctx, assignees)
	if err != nil {
		return nil, err
	}
	for _, meeting := range meetings {
		bundle.ActionItems = append(bundle.ActionItems, actionItemLines(meeting, dir, now)...)
	}
	for _, line := range bundle.ActionItems {
		if line.Overdue {
			bundle.Overdue = append(bundle.Overdue, line)
		}
	}
	bundle.Breakdown = calculator.TaskStatusBreakdown(rawItems, now)

	return bundle, nil
}
