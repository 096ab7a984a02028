package models

import (
	"testing"
	"time"
)

func TestDurationHours(t *testing.T) {
	clockIn := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	cases := []struct {
		name string
		out  time.Duration
		want float64
	}{
		{"whole hours", 8 * time.Hour, 8},
		{"rounds down", 7*time.Hour + 20*time.Minute, 7.3},
		{"rounds up", 7*time.Hour + 58*time.Minute, 8},
		{"quarter", 1*time.Hour + 15*time.Minute, 1.3},
		{"zero", 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := clockIn.Add(tc.out)
			record := AttendanceRecord{ClockIn: clockIn, ClockOut: &out}
			got := record.DurationHours()
			if got == nil || *got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestDurationHoursOpen(t *testing.T) {
	record := AttendanceRecord{ClockIn: time.Now()}
	if !record.Open() {
		t.Fatalf("expected open record")
	}
	if record.DurationHours() != nil {
		t.Fatalf("expected nil duration for open record")
	}
}

func TestRoleValid(t *testing.T) {
	if !RoleAdmin.Valid() || !RoleUser.Valid() {
		t.Fatalf("expected admin and user to be valid")
	}
	if Role("owner").Valid() || Role("").Valid() {
		t.Fatalf("expected unknown roles to be invalid")
	}
}

func TestLeaveTypeValid(t *testing.T) {
	for _, lt := range []LeaveType{LeaveSick, LeaveVacation, LeavePersonal, LeaveOther} {
		if !lt.Valid() {
			t.Fatalf("expected %q to be valid", lt)
		}
	}
	if LeaveType("sabbatical").Valid() {
		t.Fatalf("expected sabbatical to be invalid")
	}
}
