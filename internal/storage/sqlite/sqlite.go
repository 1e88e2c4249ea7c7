// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/sitcouncil/councilreports/internal/models"
	"github.com/sitcouncil/councilreports/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateMeeting persists a new meeting with its agenda, attendees and minutes.
func (s *SQLiteStore) CreateMeeting(ctx context.Context, meeting *models.Meeting) error {
	if err := validateMeeting(meeting); err != nil {
		return err
	}
	if meeting.ID == "" {
		meeting.ID = uuid.New().String()
	}
	if meeting.CreatedAt == 0 {
		meeting.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var (
		nextDate                           sql.NullInt64
		nextTime, nextLocation, nextAgenda sql.NullString
	)
	if next := meeting.Minutes.NextMeeting; next != nil {
		nextDate = toNullUnix(next.Date)
		nextTime = sql.NullString{String: next.Time, Valid: true}
		nextLocation = sql.NullString{String: next.Location, Valid: true}
		nextAgenda = sql.NullString{String: next.Agenda, Valid: true}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO meetings (id, title, type, date, start_time, end_time, location,
			chairperson_id, minutes_taker_id, objective, summary,
			next_date, next_time, next_location, next_agenda,
			status, created_by, archived, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		meeting.ID, meeting.Title, string(meeting.Type), meeting.Date.Unix(),
		meeting.StartTime, meeting.EndTime, meeting.Location,
		meeting.ChairpersonID, meeting.MinutesTakerID, meeting.Objective, meeting.Minutes.Summary,
		nextDate, nextTime, nextLocation, nextAgenda,
		string(meeting.Status), meeting.CreatedBy, meeting.Archived, meeting.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert meeting: %w", err)
	}

	for i := range meeting.Agenda {
		item := &meeting.Agenda[i]
		if item.DurationMinutes == 0 {
			item.DurationMinutes = models.DefaultAgendaDuration
		}
		if item.Status == "" {
			item.Status = models.AgendaPending
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO agenda_items (meeting_id, position, order_index, title, presenter, duration_minutes, description, status) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			meeting.ID, i, item.Order, item.Title, item.Presenter, item.DurationMinutes, item.Description, string(item.Status),
		)
		if err != nil {
			return fmt.Errorf("failed to insert agenda item: %w", err)
		}
	}

	for i, attendee := range meeting.Attendees {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO attendees (meeting_id, position, user_id, status, arrival_time, notes) VALUES (?, ?, ?, ?, ?, ?)",
			meeting.ID, i, attendee.UserID, string(attendee.Status), toNullUnix(attendee.ArrivalTime), attendee.Notes,
		)
		if err != nil {
			return fmt.Errorf("failed to insert attendee: %w", err)
		}
	}

	for i, decision := range meeting.Minutes.Decisions {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO decisions (meeting_id, position, text) VALUES (?, ?, ?)",
			meeting.ID, i, decision,
		)
		if err != nil {
			return fmt.Errorf("failed to insert decision: %w", err)
		}
	}

	for i, item := range meeting.Minutes.ActionItems {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO action_items (meeting_id, position, task, assignee_id, deadline, priority, status, completed_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			meeting.ID, i, item.Task, item.AssigneeID, toNullUnix(item.Deadline),
			string(item.Priority), string(item.Status), toNullUnix(item.CompletedAt),
		)
		if err != nil {
			return fmt.Errorf("failed to insert action item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetMeeting retrieves a meeting by ID, including agenda, attendees and minutes.
func (s *SQLiteStore) GetMeeting(ctx context.Context, meetingID string) (*models.Meeting, error) {
	meeting := &models.Meeting{}
	var (
		date                               int64
		meetingType, status                string
		nextDate                           sql.NullInt64
		nextTime, nextLocation, nextAgenda sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, type, date, start_time, end_time, location,
			chairperson_id, minutes_taker_id, objective, summary,
			next_date, next_time, next_location, next_agenda,
			status, created_by, archived, created_at
		FROM meetings WHERE id = ?`,
		meetingID,
	).Scan(
		&meeting.ID, &meeting.Title, &meetingType, &date, &meeting.StartTime, &meeting.EndTime, &meeting.Location,
		&meeting.ChairpersonID, &meeting.MinutesTakerID, &meeting.Objective, &meeting.Minutes.Summary,
		&nextDate, &nextTime, &nextLocation, &nextAgenda,
		&status, &meeting.CreatedBy, &meeting.Archived, &meeting.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("meeting %s: %w", meetingID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get meeting: %w", err)
	}

	meeting.Type = models.MeetingType(meetingType)
	meeting.Status = models.MeetingStatus(status)
	meeting.Date = time.Unix(date, 0).UTC()
	if nextTime.Valid {
		meeting.Minutes.NextMeeting = &models.NextMeeting{
			Date:     fromNullUnix(nextDate),
			Time:     nextTime.String,
			Location: nextLocation.String,
			Agenda:   nextAgenda.String,
		}
	}

	if meeting.Agenda, err = s.getAgenda(ctx, meeting.ID); err != nil {
		return nil, err
	}
	if meeting.Attendees, err = s.getAttendees(ctx, meeting.ID); err != nil {
		return nil, err
	}
	if meeting.Minutes.Decisions, err = s.getDecisions(ctx, meeting.ID); err != nil {
		return nil, err
	}
	if meeting.Minutes.ActionItems, err = s.getActionItems(ctx, meeting.ID); err != nil {
		return nil, err
	}

	return meeting, nil
}

// ListMeetings returns the meetings whose date falls within the filter bounds, ordered by date.
func (s *SQLiteStore) ListMeetings(ctx context.Context, filter storage.MeetingFilter) ([]models.Meeting, error) {
	query := "SELECT id FROM meetings WHERE 1 = 1"
	var args []interface{}
	if !filter.From.IsZero() {
		query += " AND date >= ?"
		args = append(args, filter.From.Unix())
	}
	if !filter.To.IsZero() {
		query += " AND date <= ?"
		args = append(args, filter.To.Unix())
	}
	query += " ORDER BY date, created_at, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list meetings: %w", err)
	}

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan meeting id: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate meetings: %w", err)
	}

	meetings := make([]models.Meeting, 0, len(ids))
	for _, id := range ids {
		meeting, err := s.GetMeeting(ctx, id)
		if err != nil {
			return nil, err
		}
		meetings = append(meetings, *meeting)
	}
	return meetings, nil
}

func (s *SQLiteStore) getAgenda(ctx context.Context, meetingID string) ([]models.AgendaItem, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT order_index, title, presenter, duration_minutes, description, status FROM agenda_items WHERE meeting_id = ? ORDER BY position",
		meetingID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get agenda: %w", err)
	}
	defer rows.Close()

	var agenda []models.AgendaItem
	for rows.Next() {
		var item models.AgendaItem
		var status string
		if err := rows.Scan(&item.Order, &item.Title, &item.Presenter, &item.DurationMinutes, &item.Description, &status); err != nil {
			return nil, fmt.Errorf("failed to scan agenda item: %w", err)
		}
		item.Status = models.AgendaStatus(status)
		agenda = append(agenda, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate agenda: %w", err)
	}
	return agenda, nil
}

func (s *SQLiteStore) getAttendees(ctx context.Context, meetingID string) ([]models.Attendee, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT user_id, status, arrival_time, notes FROM attendees WHERE meeting_id = ? ORDER BY position",
		meetingID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendees: %w", err)
	}
	defer rows.Close()

	var attendees []models.Attendee
	for rows.Next() {
		var attendee models.Attendee
		var status string
		var arrival sql.NullInt64
		if err := rows.Scan(&attendee.UserID, &status, &arrival, &attendee.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan attendee: %w", err)
		}
		attendee.Status = models.AttendanceStatus(status)
		attendee.ArrivalTime = fromNullUnix(arrival)
		attendees = append(attendees, attendee)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendees: %w", err)
	}
	return attendees, nil
}

func (s *SQLiteStore) getDecisions(ctx context.Context, meetingID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT text FROM decisions WHERE meeting_id = ? ORDER BY position",
		meetingID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get decisions: %w", err)
	}
	defer rows.Close()

	var decisions []string
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, fmt.Errorf("failed to scan decision: %w", err)
		}
		decisions = append(decisions, text)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate decisions: %w", err)
	}
	return decisions, nil
}

func (s *SQLiteStore) getActionItems(ctx context.Context, meetingID string) ([]models.ActionItem, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT task, assignee_id, deadline, priority, status, completed_at FROM action_items WHERE meeting_id = ? ORDER BY position",
		meetingID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get action items: %w", err)
	}
	defer rows.Close()

	var items []models.ActionItem
	for rows.Next() {
		var item models.ActionItem
		var priority, status string
		var deadline, completedAt sql.NullInt64
		if err := rows.Scan(&item.Task, &item.AssigneeID, &deadline, &priority, &status, &completedAt); err != nil {
			return nil, fmt.Errorf("failed to scan action item: %w", err)
		}
		item.Priority = models.Priority(priority)
		item.Status = models.TaskStatus(status)
		item.Deadline = fromNullUnix(deadline)
		item.CompletedAt = fromNullUnix(completedAt)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate action items: %w", err)
	}
	return items, nil
}

// validateMeeting rejects records the report engine cannot interpret.
func validateMeeting(meeting *models.Meeting) error {
	if meeting.Title == "" {
		return fmt.Errorf("meeting title is required")
	}
	if !meeting.Type.Valid() {
		return fmt.Errorf("invalid meeting type %q", meeting.Type)
	}
	if !meeting.Status.Valid() {
		return fmt.Errorf("invalid meeting status %q", meeting.Status)
	}
	for _, item := range meeting.Agenda {
		if item.Title == "" {
			return fmt.Errorf("agenda item title is required")
		}
		if item.Status != "" && !item.Status.Valid() {
			return fmt.Errorf("invalid agenda status %q", item.Status)
		}
	}
	for _, attendee := range meeting.Attendees {
		if !attendee.Status.Valid() {
			return fmt.Errorf("invalid attendance status %q", attendee.Status)
		}
	}
	for _, item := range meeting.Minutes.ActionItems {
		if item.Task == "" {
			return fmt.Errorf("action item task is required")
		}
		if !item.Priority.Valid() {
			return fmt.Errorf("invalid priority %q", item.Priority)
		}
		if !item.Status.Valid() {
			return fmt.Errorf("invalid task status %q", item.Status)
		}
	}
	return nil
}

func toNullUnix(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.Unix(), Valid: true}
}

func fromNullUnix(v sql.NullInt64) *time.Time {
	if !v.Valid {
		return nil
	}
	t := time.Unix(v.Int64, 0).UTC()
	return &t
}
