// Package policy holds the access-control contract of every collection.
//
// The table here is data, not enforcement: internal/access consults it on
// each call after deriving the caller's role from user_roles, and the SQL
// policies in migrations/ encode the same rows for direct database clients.
package policy

type Collection string

const (
	Profiles     Collection = "profiles"
	UserRoles    Collection = "user_roles"
	Confidential Collection = "admin_data"
	Leaves       Collection = "leaves"
	Attendance   Collection = "attendance"
	ActivityLogs Collection = "activity_logs"
)

type Action string

const (
	Read   Action = "read"
	Create Action = "create"
	Update Action = "update"
	Delete Action = "delete"
)

// Subject selects who a rule admits.
type Subject uint8

const (
	Nobody Subject = 0
	Self   Subject = 1 << iota
	Admin
)

var rules = map[Collection]map[Action]Subject{
	Profiles: {
		Read: Self | Admin,
		// Creation only happens through identity provisioning.
		Create: Nobody,
		Update: Self | Admin,
		Delete: Admin,
	},
	UserRoles: {
		Read:   Self | Admin,
		Create: Admin,
		Update: Admin,
		Delete: Admin,
	},
	Confidential: {
		Read:   Admin,
		Create: Admin,
		Update: Admin,
		Delete: Admin,
	},
	Leaves: {
		Read:   Self | Admin,
		Create: Self,
		Update: Admin,
		Delete: Admin,
	},
	Attendance: {
		Read:   Self | Admin,
		Create: Admin,
		Update: Admin,
		Delete: Admin,
	},
	ActivityLogs: {
		Read:   Self | Admin,
		Create: Nobody,
		Update: Nobody,
		Delete: Nobody,
	},
}

// Allowed reports whether a caller may perform action on a row of collection.
// isOwner is whether the row belongs to the caller. Unknown collections and
// actions are denied.
func Allowed(collection Collection, action Action, isAdmin, isOwner bool) bool {
	actions, ok := rules[collection]
	if !ok {
		return false
	}
	subject := actions[action]
	if subject&Admin != 0 && isAdmin {
		return true
	}
	if subject&Self != 0 && isOwner {
		return true
	}
	return false
}

// ScopeToOwner reports whether list reads of collection must be restricted to
// the caller's own rows. A true result with a collection that admits no self
// reads means the caller sees nothing.
func ScopeToOwner(collection Collection, isAdmin bool) bool {
	return !(isAdmin && Allowed(collection, Read, true, false))
}

// SelfEditableProfileFields are the profile fields an employee may change on
// their own profile.
var SelfEditableProfileFields = []string{"full_name", "department"}

// AdminEditableProfileFields are the profile fields an admin may change on any
// profile. Email belongs to the identity and role lives in user_roles.
var AdminEditableProfileFields = []string{"full_name", "department", "hire_date"}

func ProfileFieldEditable(field string, isAdmin, isOwner bool) bool {
	if isAdmin {
		return contains(AdminEditableProfileFields, field)
	}
	if isOwner {
		return contains(SelfEditableProfileFields, field)
	}
	return false
}

func contains(values []string, value string) bool {
	for _, item := range values {
		if item == value {
			return true
		}
	}
	return false
}
