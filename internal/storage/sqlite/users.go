package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sitcouncil/councilreports/internal/models"
	"github.com/sitcouncil/councilreports/internal/storage"
)

const userColumns = `id, name, email, password_hash, role, student_id, department, join_date,
	meetings_attended, tasks_completed, rating, streak, points, created_at`

// CreateUser inserts a new user and their achievements into the database.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *models.User) error {
	if user.Name == "" {
		return fmt.Errorf("user name is required")
	}
	if !user.Role.Valid() {
		return fmt.Errorf("invalid role %q", user.Role)
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt == 0 {
		user.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var studentID sql.NullString
	if user.StudentID != "" {
		studentID = sql.NullString{String: user.StudentID, Valid: true}
	}

	perf := user.Performance
	_, err = tx.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.Name, user.Email, user.PasswordHash, string(user.Role), studentID,
		user.Department, user.JoinDate.Unix(),
		perf.MeetingsAttended, perf.TasksCompleted, perf.Rating, perf.Streak, perf.Points,
		user.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	for i, title := range perf.Achievements {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO achievements (user_id, position, title) VALUES (?, ?, ?)",
			user.ID, i, title,
		)
		if err != nil {
			return fmt.Errorf("failed to insert achievement: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetUser retrieves a user by their ID.
func (s *SQLiteStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.getUserWhere(ctx, "id = ?", id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("user %s: %w", id, err)
	}
	return user, err
}

// GetUserByEmail retrieves a user by their email address.
func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.getUserWhere(ctx, "email = ?", email)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("user with email %s: %w", email, err)
	}
	return user, err
}

func (s *SQLiteStore) getUserWhere(ctx context.Context, where string, arg interface{}) (*models.User, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE "+where, arg)
	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	achievements, err := s.getAchievements(ctx, []string{user.ID})
	if err != nil {
		return nil, err
	}
	user.Performance.Achievements = achievements[user.ID]
	return user, nil
}

// ListUsers returns users ordered by name, skipping excluded roles.
func (s *SQLiteStore) ListUsers(ctx context.Context, filter storage.UserFilter) ([]models.User, error) {
	query := "SELECT " + userColumns + " FROM users"
	var args []interface{}
	if len(filter.ExcludeRoles) > 0 {
		query += " WHERE role NOT IN (?" + repeatPlaceholder(len(filter.ExcludeRoles)-1) + ")"
		for _, role := range filter.ExcludeRoles {
			args = append(args, string(role))
		}
	}
	query += " ORDER BY name, id"

	users, err := s.queryUsers(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// GetUsersByIDs retrieves multiple users by their IDs.
// Returns a map of user ID to User object.
// Users that don't exist are omitted from the result.
func (s *SQLiteStore) GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error) {
	if len(ids) == 0 {
		return make(map[string]*models.User), nil
	}

	query := "SELECT " + userColumns + " FROM users WHERE id IN (?" + repeatPlaceholder(len(ids)-1) + ")"
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	list, err := s.queryUsers(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get users by IDs: %w", err)
	}

	users := make(map[string]*models.User, len(list))
	for i := range list {
		users[list[i].ID] = &list[i]
	}
	return users, nil
}

func (s *SQLiteStore) queryUsers(ctx context.Context, query string, args ...interface{}) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	var users []models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *user)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	ids := make([]string, len(users))
	for i, user := range users {
		ids[i] = user.ID
	}
	achievements, err := s.getAchievements(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].Performance.Achievements = achievements[users[i].ID]
	}
	return users, nil
}

func (s *SQLiteStore) getAchievements(ctx context.Context, userIDs []string) (map[string][]string, error) {
	achievements := make(map[string][]string)
	if len(userIDs) == 0 {
		return achievements, nil
	}

	args := make([]interface{}, len(userIDs))
	for i, id := range userIDs {
		args[i] = id
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT user_id, title FROM achievements WHERE user_id IN (?"+repeatPlaceholder(len(userIDs)-1)+") ORDER BY user_id, position",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get achievements: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var userID, title string
		if err := rows.Scan(&userID, &title); err != nil {
			return nil, fmt.Errorf("failed to scan achievement: %w", err)
		}
		achievements[userID] = append(achievements[userID], title)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate achievements: %w", err)
	}
	return achievements, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row scanner) (*models.User, error) {
	user := &models.User{}
	var role string
	var studentID sql.NullString
	var joinDate int64
	perf := &user.Performance
	if err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &role, &studentID,
		&user.Department, &joinDate,
		&perf.MeetingsAttended, &perf.TasksCompleted, &perf.Rating, &perf.Streak, &perf.Points,
		&user.CreatedAt,
	); err != nil {
		return nil, err
	}
	user.Role = models.Role(role)
	user.StudentID = studentID.String
	user.JoinDate = time.Unix(joinDate, 0).UTC()
	return user, nil
}

// repeatPlaceholder returns a string of ", ?" repeated n times.
// Used for building IN clauses with multiple placeholders.
func repeatPlaceholder(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(", ?", n)
}
