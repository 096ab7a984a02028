package store

import (
	"context"
	"time"

	"hrdash/internal/models"
)

type CreateIdentityInput struct {
	Email        string
	PasswordHash string
	FullName     string
	Department   string
	// Position is optional; an admin_data row is provisioned only when set.
	Position  string
	CreatedAt time.Time
}

type Credentials struct {
	UserID       string
	Email        string
	PasswordHash string
}

type ProfileFilter struct {
	UserID string
}

// ProfileUpdate holds the fields to change; nil fields are left untouched.
type ProfileUpdate struct {
	FullName   *string
	Department *string
	HireDate   *string
	UpdatedAt  time.Time
}

type CreateLeaveInput struct {
	UserID    string
	LeaveType models.LeaveType
	StartDate string
	EndDate   string
	Reason    string
	CreatedAt time.Time
}

type LeaveFilter struct {
	UserID string
	Status string
}

type ReviewLeaveInput struct {
	LeaveID    string
	Status     string
	ReviewerID string
	ReviewedAt time.Time
}

type ClockInInput struct {
	UserID   string
	MarkedBy string
	ClockIn  time.Time
	Notes    string
}

type ClockOutInput struct {
	AttendanceID string
	ClockOut     time.Time
}

type AttendanceFilter struct {
	UserID   string
	From     *time.Time
	To       *time.Time
	OpenOnly bool
}

type ActivityFilter struct {
	ActorID string
	Limit   int
}

// Store is the persistence contract. It carries no authorization; callers go
// through internal/access for that.
type Store interface {
	CreateIdentity(ctx context.Context, input CreateIdentityInput) (models.Profile, error)
	GetCredentials(ctx context.Context, email string) (Credentials, error)
	// DeleteIdentity removes the identity with its profile, role, admin_data,
	// leaves, attendance and sessions.
	DeleteIdentity(ctx context.Context, userID string) error

	CreateSession(ctx context.Context, session models.Session) error
	// GetSession returns ErrNotFound for unknown and revoked sessions.
	GetSession(ctx context.Context, sessionID string) (models.Session, error)
	RevokeSession(ctx context.Context, sessionID string, revokedAt time.Time) error

	HasRole(ctx context.Context, userID string, role models.Role) (bool, error)
	GetRole(ctx context.Context, userID string) (models.RoleAssignment, error)
	ListRoles(ctx context.Context) ([]models.RoleAssignment, error)
	UpsertRole(ctx context.Context, assignment models.RoleAssignment) (models.RoleAssignment, error)
	DeleteRole(ctx context.Context, userID string) error

	ListProfiles(ctx context.Context, filter ProfileFilter) ([]models.Profile, error)
	GetProfile(ctx context.Context, userID string) (models.Profile, error)
	UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (models.Profile, error)

	ListConfidential(ctx context.Context) ([]models.ConfidentialRecord, error)
	GetConfidential(ctx context.Context, userID string) (models.ConfidentialRecord, error)
	UpsertConfidential(ctx context.Context, record models.ConfidentialRecord) (models.ConfidentialRecord, error)
	DeleteConfidential(ctx context.Context, userID string) error

	CreateLeave(ctx context.Context, input CreateLeaveInput) (models.LeaveRequest, error)
	GetLeave(ctx context.Context, leaveID string) (models.LeaveRequest, error)
	ListLeaves(ctx context.Context, filter LeaveFilter) ([]models.LeaveRequest, error)
	ReviewLeave(ctx context.Context, input ReviewLeaveInput) (models.LeaveRequest, error)
	DeleteLeave(ctx context.Context, leaveID string) error

	ClockIn(ctx context.Context, input ClockInInput) (models.AttendanceRecord, error)
	GetAttendance(ctx context.Context, attendanceID string) (models.AttendanceRecord, error)
	ListAttendance(ctx context.Context, filter AttendanceFilter) ([]models.AttendanceRecord, error)
	ClockOut(ctx context.Context, input ClockOutInput) (models.AttendanceRecord, error)
	DeleteAttendance(ctx context.Context, attendanceID string) error

	InsertActivity(ctx context.Context, entry models.ActivityLog) error
	ListActivity(ctx context.Context, filter ActivityFilter) ([]models.ActivityLog, error)
}
