package policy

import "testing"

func TestAllowed(t *testing.T) {
	cases := []struct {
		collection Collection
		action     Action
		admin      bool
		owner      bool
		want       bool
	}{
		{Profiles, Read, false, true, true},
		{Profiles, Read, false, false, false},
		{Profiles, Read, true, false, true},
		{Profiles, Create, false, true, false},
		{Profiles, Create, true, false, false},
		{Profiles, Update, false, true, true},
		{Profiles, Delete, false, true, false},
		{Profiles, Delete, true, false, true},
		{UserRoles, Read, false, true, true},
		{UserRoles, Update, false, true, false},
		{UserRoles, Update, true, false, true},
		{Confidential, Read, false, true, false},
		{Confidential, Read, true, false, true},
		{Confidential, Update, false, true, false},
		{Leaves, Create, false, true, true},
		{Leaves, Create, false, false, false},
		{Leaves, Create, true, false, false},
		{Leaves, Update, false, true, false},
		{Leaves, Update, true, false, true},
		{Attendance, Read, false, true, true},
		{Attendance, Read, false, false, false},
		{Attendance, Create, false, true, false},
		{Attendance, Create, true, false, true},
		{Attendance, Update, false, true, false},
		{ActivityLogs, Read, false, true, true},
		{ActivityLogs, Create, true, true, false},
		{Collection("payroll"), Read, true, true, false},
		{Leaves, Action("approve"), true, true, false},
	}

	for _, tt := range cases {
		if got := Allowed(tt.collection, tt.action, tt.admin, tt.owner); got != tt.want {
			t.Fatalf("Allowed(%s, %s, admin=%v, owner=%v)=%v, want %v", tt.collection, tt.action, tt.admin, tt.owner, got, tt.want)
		}
	}
}

func TestScopeToOwner(t *testing.T) {
	if ScopeToOwner(Leaves, true) {
		t.Fatalf("admin leave reads must not be scoped")
	}
	if !ScopeToOwner(Leaves, false) {
		t.Fatalf("user leave reads must be scoped")
	}
	if !ScopeToOwner(Confidential, false) {
		t.Fatalf("user confidential reads must be scoped")
	}
}

func TestProfileFieldEditable(t *testing.T) {
	cases := []struct {
		field string
		admin bool
		owner bool
		want  bool
	}{
		{"full_name", false, true, true},
		{"department", false, true, true},
		{"hire_date", false, true, false},
		{"email", false, true, false},
		{"full_name", false, false, false},
		{"hire_date", true, false, true},
		{"email", true, false, false},
		{"role", true, true, false},
	}
	for _, tt := range cases {
		if got := ProfileFieldEditable(tt.field, tt.admin, tt.owner); got != tt.want {
			t.Fatalf("ProfileFieldEditable(%q, admin=%v, owner=%v)=%v, want %v", tt.field, tt.admin, tt.owner, got, tt.want)
		}
	}
}
