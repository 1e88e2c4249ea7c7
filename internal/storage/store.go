// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/sitcouncil/councilreports/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("storage: not found")

// MeetingFilter selects meetings by date. Both bounds are inclusive; a zero
// bound leaves that side open.
type MeetingFilter struct {
	From time.Time
	To   time.Time
}

// UserFilter selects users. Users whose role is listed in ExcludeRoles are omitted.
type UserFilter struct {
	ExcludeRoles []models.Role
}

// MeetingReader is the read side used by the report engine.
type MeetingReader interface {
	// GetMeeting retrieves a meeting with its agenda, attendees and minutes.
	// Returns ErrNotFound if the meeting does not exist.
	GetMeeting(ctx context.Context, meetingID string) (*models.Meeting, error)

	// ListMeetings returns every meeting matching the filter ordered by date.
	ListMeetings(ctx context.Context, filter MeetingFilter) ([]models.Meeting, error)
}

// UserReader is the user read side used by the report engine.
type UserReader interface {
	// GetUser retrieves a user by ID. Returns ErrNotFound if the user does not exist.
	GetUser(ctx context.Context, userID string) (*models.User, error)

	// ListUsers returns every user matching the filter ordered by name.
	ListUsers(ctx context.Context, filter UserFilter) ([]models.User, error)

	// GetUsersByIDs returns the users that exist among ids keyed by ID.
	// Missing users are omitted, not reported as errors.
	GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)
}

// Store defines the full storage contract.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the report engine or the service layer.
type Store interface {
	MeetingReader
	UserReader

	// CreateMeeting persists a new meeting. The ID and CreatedAt fields are
	// populated by the store when empty.
	CreateMeeting(ctx context.Context, meeting *models.Meeting) error

	// CreateUser persists a new user. The ID and CreatedAt fields are
	// populated by the store when empty.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by login address.
	// Returns ErrNotFound if no user has that address.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// Close releases any resources held by the store.
	Close() error
}
