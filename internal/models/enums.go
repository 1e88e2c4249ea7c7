package models

// MeetingType classifies a meeting.
type MeetingType string

const (
	MeetingRegular   MeetingType = "regular"
	MeetingRandom    MeetingType = "random"
	MeetingSpecial   MeetingType = "special"
	MeetingCommittee MeetingType = "committee"
)

// Valid reports whether t is a known meeting type.
func (t MeetingType) Valid() bool {
	switch t {
	case MeetingRegular, MeetingRandom, MeetingSpecial, MeetingCommittee:
		return true
	}
	return false
}

// MeetingStatus is the lifecycle state of a meeting.
type MeetingStatus string

const (
	MeetingScheduled  MeetingStatus = "scheduled"
	MeetingInProgress MeetingStatus = "in-progress"
	MeetingCompleted  MeetingStatus = "completed"
	MeetingCancelled  MeetingStatus = "cancelled"
)

// Valid reports whether s is a known meeting status.
func (s MeetingStatus) Valid() bool {
	switch s {
	case MeetingScheduled, MeetingInProgress, MeetingCompleted, MeetingCancelled:
		return true
	}
	return false
}

// AttendanceStatus is the recorded attendance of one attendee.
type AttendanceStatus string

const (
	AttendancePending AttendanceStatus = "pending"
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
)

// Valid reports whether s is a known attendance status.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePending, AttendancePresent, AttendanceAbsent, AttendanceLate:
		return true
	}
	return false
}

// AgendaStatus is the progress of one agenda item.
type AgendaStatus string

const (
	AgendaPending    AgendaStatus = "pending"
	AgendaInProgress AgendaStatus = "in-progress"
	AgendaCompleted  AgendaStatus = "completed"
	AgendaDeferred   AgendaStatus = "deferred"
)

// Valid reports whether s is a known agenda status.
func (s AgendaStatus) Valid() bool {
	switch s {
	case AgendaPending, AgendaInProgress, AgendaCompleted, AgendaDeferred:
		return true
	}
	return false
}

// Priority of an action item.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// TaskStatus is the stored status of an action item.
// TaskOverdue may be stale; reports recompute it from the deadline.
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in-progress"
	TaskCompleted  TaskStatus = "completed"
	TaskOverdue    TaskStatus = "overdue"
)

// Valid reports whether s is a known task status.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskPending, TaskInProgress, TaskCompleted, TaskOverdue:
		return true
	}
	return false
}

// Role is a council member's position.
type Role string

const (
	RolePresident     Role = "President"
	RoleVicePresident Role = "Vice President"
	RoleSecretary     Role = "Secretary"
	RoleTreasurer     Role = "Treasurer"
	RolePRO           Role = "PRO"
	RoleCoordinator   Role = "Coordinator"
	RoleMember        Role = "Member"
	RoleGuest         Role = "Guest"
)

// Roles lists every role in council order.
var Roles = []Role{
	RolePresident,
	RoleVicePresident,
	RoleSecretary,
	RoleTreasurer,
	RolePRO,
	RoleCoordinator,
	RoleMember,
	RoleGuest,
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// IsOfficer reports whether r is an elected or appointed council position.
func (r Role) IsOfficer() bool {
	return r.Valid() && r != RoleMember && r != RoleGuest
}
