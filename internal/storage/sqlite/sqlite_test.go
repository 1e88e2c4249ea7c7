package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sitcouncil/councilreports/internal/models"
	"github.com/sitcouncil/councilreports/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "councilreports-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSQLiteStoreMeetings(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	deadline := date(2024, 3, 20)
	nextDate := date(2024, 4, 2)

	t.Run("CreateMeeting generates ID and applies defaults", func(t *testing.T) {
		meeting := &models.Meeting{
			Title:  "General Assembly",
			Type:   models.MeetingRegular,
			Date:   date(2024, 3, 1),
			Status: models.MeetingScheduled,
			Agenda: []models.AgendaItem{{Title: "Budget", Order: 1}},
		}

		if err := store.CreateMeeting(ctx, meeting); err != nil {
			t.Fatalf("CreateMeeting failed: %v", err)
		}
		if meeting.ID == "" {
			t.Error("Expected meeting ID to be generated")
		}
		if meeting.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}

		retrieved, err := store.GetMeeting(ctx, meeting.ID)
		if err != nil {
			t.Fatalf("GetMeeting failed: %v", err)
		}
		if got := retrieved.Agenda[0].DurationMinutes; got != models.DefaultAgendaDuration {
			t.Errorf("agenda duration = %d, want %d", got, models.DefaultAgendaDuration)
		}
		if got := retrieved.Agenda[0].Status; got != models.AgendaPending {
			t.Errorf("agenda status = %q, want pending", got)
		}
		if retrieved.Minutes.NextMeeting != nil {
			t.Error("Expected no next meeting")
		}
	})

	t.Run("CreateMeeting accepts agenda items sharing an order", func(t *testing.T) {
		meeting := &models.Meeting{
			Title:  "Planning",
			Type:   models.MeetingRegular,
			Date:   date(2024, 3, 5),
			Status: models.MeetingScheduled,
			Agenda: []models.AgendaItem{
				{Title: "Budget"},
				{Title: "Events"},
				{Title: "Elections", Order: 2},
				{Title: "Any other business", Order: 2},
			},
		}
		if err := store.CreateMeeting(ctx, meeting); err != nil {
			t.Fatalf("CreateMeeting failed: %v", err)
		}

		retrieved, err := store.GetMeeting(ctx, meeting.ID)
		if err != nil {
			t.Fatalf("GetMeeting failed: %v", err)
		}
		want := []struct {
			title string
			order int
		}{{"Budget", 0}, {"Events", 0}, {"Elections", 2}, {"Any other business", 2}}
		if len(retrieved.Agenda) != len(want) {
			t.Fatalf("agenda length = %d, want %d", len(retrieved.Agenda), len(want))
		}
		for i, w := range want {
			if got := retrieved.Agenda[i]; got.Title != w.title || got.Order != w.order {
				t.Errorf("agenda[%d] = %q order %d, want %q order %d", i, got.Title, got.Order, w.title, w.order)
			}
		}
	})

	t.Run("GetMeeting retrieves nested records in order", func(t *testing.T) {
		original := &models.Meeting{
			Title:          "Budget Review",
			Type:           models.MeetingCommittee,
			Date:           date(2024, 3, 10),
			StartTime:      "14:00",
			EndTime:        "15:30",
			Location:       "Room 204",
			ChairpersonID:  "u-chair",
			MinutesTakerID: "u-sec",
			Status:         models.MeetingCompleted,
			Attendees: []models.Attendee{
				{UserID: "u-chair", Status: models.AttendancePresent},
				{UserID: "u-sec", Status: models.AttendanceLate, Notes: "bus delay"},
				{UserID: "u-3", Status: models.AttendanceAbsent},
			},
			Minutes: models.Minutes{
				Summary:   "Budget approved.",
				Decisions: []string{"Approve budget", "Defer trip"},
				ActionItems: []models.ActionItem{
					{Task: "Publish budget", AssigneeID: "u-sec", Deadline: &deadline, Priority: models.PriorityHigh, Status: models.TaskPending},
					{Task: "Book bus", Priority: models.PriorityLow, Status: models.TaskCompleted},
				},
				NextMeeting: &models.NextMeeting{Date: &nextDate, Time: "14:00", Location: "Room 204"},
			},
		}
		if err := store.CreateMeeting(ctx, original); err != nil {
			t.Fatalf("CreateMeeting failed: %v", err)
		}

		retrieved, err := store.GetMeeting(ctx, original.ID)
		if err != nil {
			t.Fatalf("GetMeeting failed: %v", err)
		}

		if !retrieved.Date.Equal(original.Date) {
			t.Errorf("Date mismatch: got %v, want %v", retrieved.Date, original.Date)
		}
		if len(retrieved.Attendees) != 3 {
			t.Fatalf("Attendees count mismatch: got %d, want 3", len(retrieved.Attendees))
		}
		if retrieved.Attendees[1].UserID != "u-sec" || retrieved.Attendees[1].Notes != "bus delay" {
			t.Errorf("Attendee order not preserved: %+v", retrieved.Attendees[1])
		}
		if len(retrieved.Minutes.Decisions) != 2 || retrieved.Minutes.Decisions[1] != "Defer trip" {
			t.Errorf("Decisions mismatch: %v", retrieved.Minutes.Decisions)
		}
		items := retrieved.Minutes.ActionItems
		if len(items) != 2 {
			t.Fatalf("ActionItems count mismatch: got %d, want 2", len(items))
		}
		if items[0].Deadline == nil || !items[0].Deadline.Equal(deadline) {
			t.Errorf("Deadline mismatch: got %v, want %v", items[0].Deadline, deadline)
		}
		if items[1].Deadline != nil {
			t.Errorf("Expected nil deadline, got %v", items[1].Deadline)
		}
		if items[1].AssigneeID != "" {
			t.Errorf("Expected unassigned item, got %q", items[1].AssigneeID)
		}
		next := retrieved.Minutes.NextMeeting
		if next == nil || next.Date == nil || !next.Date.Equal(nextDate) || next.Location != "Room 204" {
			t.Errorf("NextMeeting mismatch: %+v", next)
		}
	})

	t.Run("GetMeeting returns ErrNotFound for nonexistent meeting", func(t *testing.T) {
		_, err := store.GetMeeting(ctx, "nonexistent-id")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("CreateMeeting rejects unknown status", func(t *testing.T) {
		err := store.CreateMeeting(ctx, &models.Meeting{
			Title:  "Bad",
			Type:   models.MeetingRegular,
			Date:   date(2024, 3, 1),
			Status: "postponed",
		})
		if err == nil {
			t.Error("Expected validation error, got nil")
		}
	})

	t.Run("ListMeetings bounds are inclusive", func(t *testing.T) {
		for _, d := range []time.Time{date(2024, 5, 1), date(2024, 5, 31), date(2024, 6, 1)} {
			if err := store.CreateMeeting(ctx, &models.Meeting{
				Title:  "May " + d.Format("2"),
				Type:   models.MeetingRegular,
				Date:   d,
				Status: models.MeetingCompleted,
			}); err != nil {
				t.Fatalf("CreateMeeting failed: %v", err)
			}
		}

		meetings, err := store.ListMeetings(ctx, storage.MeetingFilter{
			From: date(2024, 5, 1),
			To:   date(2024, 5, 31),
		})
		if err != nil {
			t.Fatalf("ListMeetings failed: %v", err)
		}
		if len(meetings) != 2 {
			t.Fatalf("Expected 2 meetings, got %d", len(meetings))
		}
		if !meetings[0].Date.Before(meetings[1].Date) {
			t.Error("Expected meetings ordered by date")
		}
	})
}

func TestSQLiteStoreUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	users := []*models.User{
		{Name: "Grace Hopper", Email: "grace@sit.edu", Role: models.RolePresident, StudentID: "S-1",
			Performance: models.Performance{MeetingsAttended: 12, Rating: 4.5, Achievements: []string{"Founder", "Best Speaker"}}},
		{Name: "Alan Turing", Email: "alan@sit.edu", Role: models.RoleMember},
		{Name: "Visiting Guest", Email: "guest@sit.edu", Role: models.RoleGuest},
	}
	for _, u := range users {
		if err := store.CreateUser(ctx, u); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
	}

	t.Run("GetUser includes achievements", func(t *testing.T) {
		got, err := store.GetUser(ctx, users[0].ID)
		if err != nil {
			t.Fatalf("GetUser failed: %v", err)
		}
		if got.Performance.Rating != 4.5 {
			t.Errorf("Rating = %v, want 4.5", got.Performance.Rating)
		}
		if len(got.Performance.Achievements) != 2 || got.Performance.Achievements[1] != "Best Speaker" {
			t.Errorf("Achievements = %v", got.Performance.Achievements)
		}
	})

	t.Run("GetUser returns ErrNotFound", func(t *testing.T) {
		_, err := store.GetUser(ctx, "missing")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("GetUserByEmail", func(t *testing.T) {
		got, err := store.GetUserByEmail(ctx, "alan@sit.edu")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if got.ID != users[1].ID {
			t.Errorf("ID = %s, want %s", got.ID, users[1].ID)
		}
	})

	t.Run("ListUsers excludes guests and sorts by name", func(t *testing.T) {
		list, err := store.ListUsers(ctx, storage.UserFilter{ExcludeRoles: []models.Role{models.RoleGuest}})
		if err != nil {
			t.Fatalf("ListUsers failed: %v", err)
		}
		if len(list) != 2 {
			t.Fatalf("Expected 2 users, got %d", len(list))
		}
		if list[0].Name != "Alan Turing" || list[1].Name != "Grace Hopper" {
			t.Errorf("Unexpected order: %s, %s", list[0].Name, list[1].Name)
		}
		if len(list[1].Performance.Achievements) != 2 {
			t.Errorf("Expected achievements on listed user, got %v", list[1].Performance.Achievements)
		}
	})

	t.Run("GetUsersByIDs omits missing users", func(t *testing.T) {
		got, err := store.GetUsersByIDs(ctx, []string{users[0].ID, "missing"})
		if err != nil {
			t.Fatalf("GetUsersByIDs failed: %v", err)
		}
		if len(got) != 1 || got[users[0].ID] == nil {
			t.Errorf("Unexpected result: %v", got)
		}
	})

	t.Run("CreateUser rejects duplicate student ID", func(t *testing.T) {
		err := store.CreateUser(ctx, &models.User{Name: "Copy", Email: "copy@sit.edu", Role: models.RoleMember, StudentID: "S-1"})
		if err == nil {
			t.Error("Expected unique constraint error, got nil")
		}
	})

	t.Run("CreateUser rejects unknown role", func(t *testing.T) {
		err := store.CreateUser(ctx, &models.User{Name: "X", Email: "x@sit.edu", Role: "Emperor"})
		if err == nil {
			t.Error("Expected validation error, got nil")
		}
	})
}
