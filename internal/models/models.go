package models

import (
	"encoding/json"
	"math"
	"time"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

type LeaveType string

const (
	LeaveSick     LeaveType = "sick"
	LeaveVacation LeaveType = "vacation"
	LeavePersonal LeaveType = "personal"
	LeaveOther    LeaveType = "other"
)

func (t LeaveType) Valid() bool {
	switch t {
	case LeaveSick, LeaveVacation, LeavePersonal, LeaveOther:
		return true
	default:
		return false
	}
}

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// DateLayout is the wire and storage format of calendar dates.
const DateLayout = "2006-01-02"

type Profile struct {
	UserID     string    `json:"user_id"`
	Email      string    `json:"email"`
	FullName   string    `json:"full_name"`
	Department string    `json:"department"`
	HireDate   string    `json:"hire_date,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type RoleAssignment struct {
	UserID     string    `json:"user_id"`
	Role       Role      `json:"role"`
	AssignedAt time.Time `json:"assigned_at"`
	AssignedBy string    `json:"assigned_by,omitempty"`
}

// ConfidentialRecord is the admin_data row of an employee.
type ConfidentialRecord struct {
	UserID    string    `json:"user_id"`
	Position  string    `json:"position"`
	Salary    *float64  `json:"salary,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
	UpdatedBy string    `json:"updated_by,omitempty"`
}

type LeaveRequest struct {
	LeaveID    string     `json:"leave_id"`
	UserID     string     `json:"user_id"`
	LeaveType  LeaveType  `json:"leave_type"`
	StartDate  string     `json:"start_date"`
	EndDate    string     `json:"end_date"`
	Reason     string     `json:"reason"`
	Status     string     `json:"status"`
	ReviewedBy string     `json:"reviewed_by,omitempty"`
	ReviewedAt *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

type AttendanceRecord struct {
	AttendanceID string     `json:"attendance_id"`
	UserID       string     `json:"user_id"`
	ClockIn      time.Time  `json:"clock_in"`
	ClockOut     *time.Time `json:"clock_out,omitempty"`
	Notes        string     `json:"notes,omitempty"`
	MarkedBy     string     `json:"marked_by"`
	CreatedAt    time.Time  `json:"created_at"`
}

func (a AttendanceRecord) Open() bool {
	return a.ClockOut == nil
}

// DurationHours is clock-out minus clock-in in hours, rounded to one decimal.
// It is nil while the record is open.
func (a AttendanceRecord) DurationHours() *float64 {
	if a.ClockOut == nil {
		return nil
	}
	hours := math.Round(a.ClockOut.Sub(a.ClockIn).Hours()*10) / 10
	return &hours
}

// Session is the server-side record behind a token. ExpiresAt is absolute;
// refreshing a token never moves it.
type Session struct {
	SessionID string     `json:"session_id"`
	UserID    string     `json:"user_id"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt time.Time  `json:"expires_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
}

type ActivityLog struct {
	ActivityID string          `json:"activity_id"`
	ActorID    string          `json:"actor_id"`
	Action     string          `json:"action"`
	TargetType string          `json:"target_type"`
	TargetID   string          `json:"target_id"`
	Details    json.RawMessage `json:"details,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}
