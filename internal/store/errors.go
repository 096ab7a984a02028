package store

import "errors"

var (
	// ErrNotFound covers both missing rows and rows the caller may not see.
	ErrNotFound              = errors.New("not found")
	ErrInvalidTransition     = errors.New("invalid leave transition")
	ErrAlreadyClosed         = errors.New("attendance already closed")
	ErrAlreadyClockedIn      = errors.New("employee already clocked in")
	ErrClockOutBeforeClockIn = errors.New("clock-out before clock-in")
	ErrInvalidDateRange      = errors.New("end date before start date")
	ErrFieldNotEditable      = errors.New("field not editable")
	ErrEmailTaken            = errors.New("email already registered")
)
