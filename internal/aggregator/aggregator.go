// Package aggregator joins meetings, users and action items for a report scope
// into the statistics bundles consumed by the document builder.
//
// An Aggregator holds no state between calls. Every bundle is computed fresh
// from the store, so concurrent report requests need no coordination.
package aggregator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/sitcouncil/councilreports/internal/models"
	"github.com/sitcouncil/councilreports/internal/storage"
)

var (
	// ErrNotFound is returned when the primary entity of a scope does not exist.
	ErrNotFound = errors.New("aggregator: not found")
	// ErrInvalidScope is returned for malformed scopes (bad month, inverted range).
	ErrInvalidScope = errors.New("aggregator: invalid scope")
)

// Placeholders substituted for secondary references.
const (
	// Unknown replaces a reference that cannot be resolved.
	Unknown = "Unknown"
	// NotSpecified replaces an absent chairperson, minutes taker or creator.
	NotSpecified = "Not specified"
	// Unassigned replaces an absent action item assignee.
	Unassigned = "Unassigned"
)

// UserResolver resolves user references in bulk. IDs that cannot be resolved
// are simply absent from the returned map; an error means the lookup itself failed.
type UserResolver interface {
	ResolveUsers(ctx context.Context, ids []string) (map[string]models.User, error)
}

// StoreResolver resolves users through a storage.UserReader.
type StoreResolver struct {
	Users storage.UserReader
}

// ResolveUsers implements UserResolver.
func (r StoreResolver) ResolveUsers(ctx context.Context, ids []string) (map[string]models.User, error) {
	found, err := r.Users.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	resolved := make(map[string]models.User, len(found))
	for id, user := range found {
		if user != nil {
			resolved[id] = *user
		}
	}
	return resolved, nil
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithNow sets the clock used for overdue detection.
func WithNow(now func() time.Time) Option {
	return func(a *Aggregator) {
		if now != nil {
			a.now = now
		}
	}
}

// WithResolver replaces the default store-backed user resolver.
func WithResolver(r UserResolver) Option {
	return func(a *Aggregator) {
		if r != nil {
			a.resolver = r
		}
	}
}

// Aggregator computes scope-specific statistics bundles.
type Aggregator struct {
	meetings storage.MeetingReader
	users    storage.UserReader
	resolver UserResolver
	now      func() time.Time
}

// New creates an Aggregator reading from the given store interfaces.
func New(meetings storage.MeetingReader, users storage.UserReader, opts ...Option) *Aggregator {
	a := &Aggregator{
		meetings: meetings,
		users:    users,
		resolver: StoreResolver{Users: users},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Person is a user reference projected for display.
type Person struct {
	ID   string
	Name string
	Role models.Role

	// Resolved is false when Name is a placeholder.
	Resolved bool
}

// DisplayRole returns the role, or "" for unresolved people.
func (p Person) DisplayRole() string {
	if !p.Resolved {
		return ""
	}
	return string(p.Role)
}

// directory is the result of one bulk resolution.
type directory map[string]models.User

// person projects id through the directory. Empty ids become absent, unknown
// ids become Unknown.
func (d directory) person(id, absent string) Person {
	if id == "" {
		return Person{Name: absent}
	}
	user, ok := d[id]
	if !ok {
		slog.Debug("Unresolved user reference", "user_id", id)
		return Person{ID: id, Name: Unknown}
	}
	return Person{ID: id, Name: user.Name, Role: user.Role, Resolved: true}
}

// resolve looks up every non-empty, distinct id in one call.
func (a *Aggregator) resolve(ctx context.Context, ids []string) (directory, error) {
	seen := make(map[string]bool, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		unique = append(unique, id)
	}
	sort.Strings(unique)
	if len(unique) == 0 {
		return directory{}, nil
	}

	users, err := a.resolver.ResolveUsers(ctx, unique)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve users: %w", err)
	}
	return directory(users), nil
}

// notFound converts a storage miss into ErrNotFound for the given scope.
func notFound(err error, what, id string) error {
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%w: %s %s", ErrNotFound, what, id)
	}
	return fmt.Errorf("failed to load %s %s: %w", what, id, err)
}
