package access

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hrdash/internal/models"
	"hrdash/internal/policy"
	"hrdash/internal/store"
)

// clockSkew is how far ahead of the server clock a supplied clock-in or
// clock-out may be.
const clockSkew = time.Minute

type ClockInInput struct {
	UserID string
	// At defaults to the current time.
	At    *time.Time
	Notes string
}

// ClockIn opens an attendance record for an employee on the caller's behalf.
func (g *Gateway) ClockIn(ctx context.Context, p Principal, input ClockInInput) (models.AttendanceRecord, error) {
	if input.UserID == "" {
		return models.AttendanceRecord{}, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}
	if _, err := g.authorize(ctx, p, policy.Attendance, policy.Create, input.UserID); err != nil {
		return models.AttendanceRecord{}, err
	}
	at := g.now()
	if input.At != nil {
		at = input.At.UTC()
		if at.After(g.now().Add(clockSkew)) {
			return models.AttendanceRecord{}, fmt.Errorf("%w: clock_in cannot be in the future", ErrInvalidInput)
		}
	}
	record, err := g.store.ClockIn(ctx, store.ClockInInput{
		UserID:   input.UserID,
		MarkedBy: p.UserID,
		ClockIn:  at,
		Notes:    strings.TrimSpace(input.Notes),
	})
	if err != nil {
		return models.AttendanceRecord{}, fmt.Errorf("clock in: %w", err)
	}
	g.record(ctx, p, "attendance.clock_in", string(policy.Attendance), record.AttendanceID, map[string]string{"user_id": record.UserID})
	g.notify(record.UserID, "attendance.updated", record)
	return record, nil
}

func (g *Gateway) ClockOut(ctx context.Context, p Principal, attendanceID string, at *time.Time) (models.AttendanceRecord, error) {
	current, err := g.store.GetAttendance(ctx, attendanceID)
	if err != nil {
		return models.AttendanceRecord{}, fmt.Errorf("clock out: %w", err)
	}
	if _, err := g.authorize(ctx, p, policy.Attendance, policy.Update, current.UserID); err != nil {
		return models.AttendanceRecord{}, err
	}
	clockOut := g.now()
	if at != nil {
		clockOut = at.UTC()
		if clockOut.After(g.now().Add(clockSkew)) {
			return models.AttendanceRecord{}, fmt.Errorf("%w: clock_out cannot be in the future", ErrInvalidInput)
		}
	}
	record, err := g.store.ClockOut(ctx, store.ClockOutInput{AttendanceID: attendanceID, ClockOut: clockOut})
	if err != nil {
		return models.AttendanceRecord{}, fmt.Errorf("clock out: %w", err)
	}
	g.record(ctx, p, "attendance.clock_out", string(policy.Attendance), attendanceID, map[string]interface{}{
		"user_id":        record.UserID,
		"duration_hours": record.DurationHours(),
	})
	g.notify(record.UserID, "attendance.updated", record)
	return record, nil
}

func (g *Gateway) GetAttendance(ctx context.Context, p Principal, attendanceID string) (models.AttendanceRecord, error) {
	record, err := g.store.GetAttendance(ctx, attendanceID)
	if err != nil {
		return models.AttendanceRecord{}, fmt.Errorf("get attendance: %w", err)
	}
	if _, err := g.authorize(ctx, p, policy.Attendance, policy.Read, record.UserID); err != nil {
		return models.AttendanceRecord{}, err
	}
	return record, nil
}

type AttendanceQuery struct {
	UserID   string
	From     *time.Time
	To       *time.Time
	OpenOnly bool
}

// ListAttendance narrows a non-admin's query to their own rows whatever
// UserID asks for.
func (g *Gateway) ListAttendance(ctx context.Context, p Principal, query AttendanceQuery) ([]models.AttendanceRecord, error) {
	owner, visible, err := g.readScope(ctx, p, policy.Attendance)
	if err != nil || !visible {
		return []models.AttendanceRecord{}, err
	}
	filter := store.AttendanceFilter{UserID: query.UserID, From: query.From, To: query.To, OpenOnly: query.OpenOnly}
	if owner != "" {
		if query.UserID != "" && query.UserID != owner {
			return []models.AttendanceRecord{}, nil
		}
		filter.UserID = owner
	}
	records, err := g.store.ListAttendance(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return records, nil
}

func (g *Gateway) DeleteAttendance(ctx context.Context, p Principal, attendanceID string) error {
	current, err := g.store.GetAttendance(ctx, attendanceID)
	if err != nil {
		return fmt.Errorf("delete attendance: %w", err)
	}
	if _, err := g.authorize(ctx, p, policy.Attendance, policy.Delete, current.UserID); err != nil {
		return err
	}
	if err := g.store.DeleteAttendance(ctx, attendanceID); err != nil {
		return fmt.Errorf("delete attendance: %w", err)
	}
	g.record(ctx, p, "attendance.deleted", string(policy.Attendance), attendanceID, nil)
	g.notify(current.UserID, "attendance.updated", map[string]string{"attendance_id": attendanceID, "deleted": "true"})
	return nil
}
