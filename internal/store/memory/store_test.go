package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"hrdash/internal/models"
	"hrdash/internal/store"
)

func newEmployee(t *testing.T, st *Store, email, position string) models.Profile {
	t.Helper()
	profile, err := st.CreateIdentity(context.Background(), store.CreateIdentityInput{
		Email:        email,
		PasswordHash: "hash",
		FullName:     "Employee " + email,
		Department:   "Ops",
		Position:     position,
	})
	if err != nil {
		t.Fatalf("create identity: %v", err)
	}
	return profile
}

func TestCreateIdentityProvisioning(t *testing.T) {
	ctx := context.Background()
	st := NewStore()

	plain := newEmployee(t, st, "Plain@Example.com", "")
	withPosition := newEmployee(t, st, "pos@example.com", "Engineer")

	if plain.Email != "plain@example.com" {
		t.Fatalf("expected lower-cased email, got %q", plain.Email)
	}
	role, err := st.GetRole(ctx, plain.UserID)
	if err != nil {
		t.Fatalf("get role: %v", err)
	}
	if role.Role != models.RoleUser {
		t.Fatalf("expected default role user, got %q", role.Role)
	}
	if _, err := st.GetConfidential(ctx, plain.UserID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected no confidential row without position, got %v", err)
	}
	record, err := st.GetConfidential(ctx, withPosition.UserID)
	if err != nil {
		t.Fatalf("get confidential: %v", err)
	}
	if record.Position != "Engineer" {
		t.Fatalf("expected position Engineer, got %q", record.Position)
	}

	if _, err := st.CreateIdentity(ctx, store.CreateIdentityInput{Email: "plain@example.com"}); !errors.Is(err, store.ErrEmailTaken) {
		t.Fatalf("expected email taken, got %v", err)
	}
}

func TestHasRole(t *testing.T) {
	ctx := context.Background()
	st := NewStore()
	emp := newEmployee(t, st, "a@example.com", "")

	if ok, _ := st.HasRole(ctx, emp.UserID, models.RoleAdmin); ok {
		t.Fatalf("expected no admin role")
	}
	if _, err := st.UpsertRole(ctx, models.RoleAssignment{UserID: emp.UserID, Role: models.RoleAdmin}); err != nil {
		t.Fatalf("upsert role: %v", err)
	}
	if ok, _ := st.HasRole(ctx, emp.UserID, models.RoleAdmin); !ok {
		t.Fatalf("expected admin role")
	}
	if err := st.DeleteRole(ctx, emp.UserID); err != nil {
		t.Fatalf("delete role: %v", err)
	}
	if ok, _ := st.HasRole(ctx, emp.UserID, models.RoleUser); ok {
		t.Fatalf("expected no role after delete")
	}
	if ok, _ := st.HasRole(ctx, "missing", models.RoleAdmin); ok {
		t.Fatalf("expected unknown identity to hold no role")
	}
}

func TestReviewLeaveOnlyFromPending(t *testing.T) {
	ctx := context.Background()
	st := NewStore()
	emp := newEmployee(t, st, "u@example.com", "")

	leave, err := st.CreateLeave(ctx, store.CreateLeaveInput{
		UserID:    emp.UserID,
		LeaveType: models.LeaveSick,
		StartDate: "2025-01-10",
		EndDate:   "2025-01-12",
		Reason:    "flu",
	})
	if err != nil {
		t.Fatalf("create leave: %v", err)
	}
	if leave.Status != models.StatusPending || leave.ReviewedBy != "" || leave.ReviewedAt != nil {
		t.Fatalf("unexpected new leave: %+v", leave)
	}

	reviewedAt := time.Date(2025, 1, 9, 12, 0, 0, 0, time.UTC)
	reviewed, err := st.ReviewLeave(ctx, store.ReviewLeaveInput{LeaveID: leave.LeaveID, Status: models.StatusApproved, ReviewerID: "admin", ReviewedAt: reviewedAt})
	if err != nil {
		t.Fatalf("review leave: %v", err)
	}
	if reviewed.Status != models.StatusApproved || reviewed.ReviewedBy != "admin" || !reviewed.ReviewedAt.Equal(reviewedAt) {
		t.Fatalf("unexpected reviewed leave: %+v", reviewed)
	}

	_, err = st.ReviewLeave(ctx, store.ReviewLeaveInput{LeaveID: leave.LeaveID, Status: models.StatusRejected, ReviewerID: "admin", ReviewedAt: reviewedAt})
	if !errors.Is(err, store.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}
	_, err = st.ReviewLeave(ctx, store.ReviewLeaveInput{LeaveID: "missing", Status: models.StatusRejected})
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAttendanceLifecycle(t *testing.T) {
	ctx := context.Background()
	st := NewStore()
	emp := newEmployee(t, st, "e@example.com", "")
	t1 := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)

	record, err := st.ClockIn(ctx, store.ClockInInput{UserID: emp.UserID, MarkedBy: "admin", ClockIn: t1})
	if err != nil {
		t.Fatalf("clock in: %v", err)
	}
	if _, err := st.ClockIn(ctx, store.ClockInInput{UserID: emp.UserID, MarkedBy: "admin", ClockIn: t1}); !errors.Is(err, store.ErrAlreadyClockedIn) {
		t.Fatalf("expected already clocked in, got %v", err)
	}

	if _, err := st.ClockOut(ctx, store.ClockOutInput{AttendanceID: record.AttendanceID, ClockOut: t1.Add(-time.Minute)}); !errors.Is(err, store.ErrClockOutBeforeClockIn) {
		t.Fatalf("expected clock-out before clock-in, got %v", err)
	}

	closed, err := st.ClockOut(ctx, store.ClockOutInput{AttendanceID: record.AttendanceID, ClockOut: t1.Add(8 * time.Hour)})
	if err != nil {
		t.Fatalf("clock out: %v", err)
	}
	if hours := closed.DurationHours(); hours == nil || *hours != 8 {
		t.Fatalf("expected 8 hours, got %v", hours)
	}
	if _, err := st.ClockOut(ctx, store.ClockOutInput{AttendanceID: record.AttendanceID, ClockOut: t1.Add(9 * time.Hour)}); !errors.Is(err, store.ErrAlreadyClosed) {
		t.Fatalf("expected already closed, got %v", err)
	}

	if _, err := st.ClockIn(ctx, store.ClockInInput{UserID: emp.UserID, MarkedBy: "admin", ClockIn: t1.Add(24 * time.Hour)}); err != nil {
		t.Fatalf("clock in after close: %v", err)
	}
	open, err := st.ListAttendance(ctx, store.AttendanceFilter{UserID: emp.UserID, OpenOnly: true})
	if err != nil {
		t.Fatalf("list attendance: %v", err)
	}
	if len(open) != 1 {
		t.Fatalf("expected 1 open record, got %d", len(open))
	}

	from := t1.Add(12 * time.Hour)
	later, err := st.ListAttendance(ctx, store.AttendanceFilter{From: &from})
	if err != nil {
		t.Fatalf("list attendance: %v", err)
	}
	if len(later) != 1 || later[0].AttendanceID == record.AttendanceID {
		t.Fatalf("expected only the second record, got %+v", later)
	}
}

func TestListActivityNewestFirst(t *testing.T) {
	ctx := context.Background()
	st := NewStore()
	base := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	for i, actor := range []string{"a", "b", "a"} {
		if err := st.InsertActivity(ctx, models.ActivityLog{ActorID: actor, Action: "leave.created", CreatedAt: base.Add(time.Duration(i) * time.Minute)}); err != nil {
			t.Fatalf("insert activity: %v", err)
		}
	}
	entries, err := st.ListActivity(ctx, store.ActivityFilter{ActorID: "a"})
	if err != nil {
		t.Fatalf("list activity: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if !entries[0].CreatedAt.After(entries[1].CreatedAt) {
		t.Fatalf("expected newest first")
	}
	limited, _ := st.ListActivity(ctx, store.ActivityFilter{Limit: 1})
	if len(limited) != 1 || limited[0].ActorID != "a" {
		t.Fatalf("unexpected limited result: %+v", limited)
	}
}

func TestDeleteIdentityRemovesDependentRows(t *testing.T) {
	ctx := context.Background()
	st := NewStore()
	gone := newEmployee(t, st, "gone@example.com", "Engineer")
	kept := newEmployee(t, st, "kept@example.com", "")
	if _, err := st.UpsertRole(ctx, models.RoleAssignment{UserID: gone.UserID, Role: models.RoleAdmin}); err != nil {
		t.Fatalf("upsert role: %v", err)
	}
	if _, err := st.CreateLeave(ctx, store.CreateLeaveInput{UserID: gone.UserID, LeaveType: models.LeaveSick, StartDate: "2025-01-10", EndDate: "2025-01-10"}); err != nil {
		t.Fatalf("create leave: %v", err)
	}
	if _, err := st.ClockIn(ctx, store.ClockInInput{UserID: gone.UserID, MarkedBy: kept.UserID, ClockIn: time.Now().UTC()}); err != nil {
		t.Fatalf("clock in: %v", err)
	}
	if err := st.CreateSession(ctx, models.Session{SessionID: "s-gone", UserID: gone.UserID, ExpiresAt: time.Now().Add(time.Hour)}); err != nil {
		t.Fatalf("create session: %v", err)
	}

	if err := st.DeleteIdentity(ctx, gone.UserID); err != nil {
		t.Fatalf("delete identity: %v", err)
	}
	if _, err := st.GetCredentials(ctx, gone.Email); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected credentials removed, got %v", err)
	}
	if ok, _ := st.HasRole(ctx, gone.UserID, models.RoleAdmin); ok {
		t.Fatalf("expected role row removed")
	}
	if _, err := st.GetConfidential(ctx, gone.UserID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected admin_data removed, got %v", err)
	}
	if leaves, _ := st.ListLeaves(ctx, store.LeaveFilter{UserID: gone.UserID}); len(leaves) != 0 {
		t.Fatalf("expected leaves removed, got %d", len(leaves))
	}
	if records, _ := st.ListAttendance(ctx, store.AttendanceFilter{UserID: gone.UserID}); len(records) != 0 {
		t.Fatalf("expected attendance removed, got %d", len(records))
	}
	if _, err := st.GetSession(ctx, "s-gone"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected session removed, got %v", err)
	}
	if _, err := st.GetProfile(ctx, kept.UserID); err != nil {
		t.Fatalf("expected other identity untouched, got %v", err)
	}
	if err := st.DeleteIdentity(ctx, gone.UserID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected second delete to be not found, got %v", err)
	}
}

func TestRevokedSessionIsNotFound(t *testing.T) {
	ctx := context.Background()
	st := NewStore()
	emp := newEmployee(t, st, "session@example.com", "")
	if err := st.CreateSession(ctx, models.Session{SessionID: "s-1", UserID: "missing"}); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected session for unknown user to be rejected, got %v", err)
	}
	if err := st.CreateSession(ctx, models.Session{SessionID: "s-1", UserID: emp.UserID, ExpiresAt: time.Now().Add(time.Hour)}); err != nil {
		t.Fatalf("create session: %v", err)
	}
	if session, err := st.GetSession(ctx, "s-1"); err != nil || session.UserID != emp.UserID {
		t.Fatalf("get session: %+v %v", session, err)
	}
	if err := st.RevokeSession(ctx, "s-1", time.Now()); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if _, err := st.GetSession(ctx, "s-1"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected revoked session to be not found, got %v", err)
	}
	if err := st.RevokeSession(ctx, "s-1", time.Now()); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected second revoke to be not found, got %v", err)
	}
}
