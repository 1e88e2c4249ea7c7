package models

import "time"

// User represents a council member profile.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Name is the display name of the user.
	Name string

	// Email is the user's login address (unique).
	Email string

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string

	// Role is the user's council position.
	Role Role

	// StudentID is optional and unique when set.
	StudentID string

	Department string
	JoinDate   time.Time

	// Performance is the stored performance block. Reports display it as is.
	Performance Performance

	// CreatedAt is the Unix timestamp when the user account was created.
	CreatedAt int64
}

// Performance is the denormalised performance block kept on every user.
type Performance struct {
	MeetingsAttended int
	TasksCompleted   int

	// Rating ranges from 0 to 5.
	Rating float64

	Streak       int
	Achievements []string
	Points       int
}
