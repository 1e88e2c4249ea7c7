// Package testfixtures provides in-memory collaborators and deterministic
// records for report engine tests.
package testfixtures

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/sitcouncil/councilreports/internal/models"
	"github.com/sitcouncil/councilreports/internal/storage"
)

var _ storage.Store = (*MemoryStore)(nil)

// MemoryStore is a storage.Store backed by maps. It is safe for concurrent use.
type MemoryStore struct {
	mu       sync.Mutex
	meetings map[string]models.Meeting
	users    map[string]models.User

	// ListMeetingsErr and ListUsersErr, when set, are returned by the list calls.
	ListMeetingsErr error
	ListUsersErr    error

	// ResolveCalls counts GetUsersByIDs invocations.
	ResolveCalls int
}

// NewMemoryStore returns an empty store seeded with the given records.
func NewMemoryStore(users []models.User, meetings []models.Meeting) *MemoryStore {
	s := &MemoryStore{
		meetings: make(map[string]models.Meeting),
		users:    make(map[string]models.User),
	}
	for _, u := range users {
		s.users[u.ID] = u
	}
	for _, m := range meetings {
		s.meetings[m.ID] = m
	}
	return s
}

// CreateMeeting implements storage.Store.
func (s *MemoryStore) CreateMeeting(_ context.Context, meeting *models.Meeting) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if meeting.ID == "" {
		meeting.ID = fmt.Sprintf("meeting-%03d", len(s.meetings)+1)
	}
	s.meetings[meeting.ID] = *meeting
	return nil
}

// CreateUser implements storage.Store.
func (s *MemoryStore) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.ID == "" {
		user.ID = fmt.Sprintf("user-%03d", len(s.users)+1)
	}
	s.users[user.ID] = *user
	return nil
}

// GetMeeting implements storage.MeetingReader.
func (s *MemoryStore) GetMeeting(_ context.Context, id string) (*models.Meeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.meetings[id]
	if !ok {
		return nil, fmt.Errorf("meeting %s: %w", id, storage.ErrNotFound)
	}
	return &m, nil
}

// ListMeetings implements storage.MeetingReader.
func (s *MemoryStore) ListMeetings(_ context.Context, filter storage.MeetingFilter) ([]models.Meeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ListMeetingsErr != nil {
		return nil, s.ListMeetingsErr
	}
	var out []models.Meeting
	for _, m := range s.meetings {
		if !filter.From.IsZero() && m.Date.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && m.Date.After(filter.To) {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// GetUser implements storage.UserReader.
func (s *MemoryStore) GetUser(_ context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, storage.ErrNotFound)
	}
	return &u, nil
}

// GetUserByEmail implements storage.Store.
func (s *MemoryStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, fmt.Errorf("user with email %s: %w", email, storage.ErrNotFound)
}

// ListUsers implements storage.UserReader.
func (s *MemoryStore) ListUsers(_ context.Context, filter storage.UserFilter) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ListUsersErr != nil {
		return nil, s.ListUsersErr
	}
	excluded := make(map[models.Role]bool, len(filter.ExcludeRoles))
	for _, r := range filter.ExcludeRoles {
		excluded[r] = true
	}
	var out []models.User
	for _, u := range s.users {
		if !excluded[u.Role] {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// GetUsersByIDs implements storage.UserReader.
func (s *MemoryStore) GetUsersByIDs(_ context.Context, ids []string) (map[string]*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ResolveCalls++
	out := make(map[string]*models.User, len(ids))
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			out[id] = &u
		}
	}
	return out, nil
}

// Close implements storage.Store.
func (s *MemoryStore) Close() error { return nil }
