// Package memory is an in-process store.Store used for local runs and tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"hrdash/internal/models"
	"hrdash/internal/store"

	"github.com/google/uuid"
)

type Store struct {
	mu           sync.RWMutex
	credentials  map[string]store.Credentials
	profiles     map[string]models.Profile
	roles        map[string]models.RoleAssignment
	confidential map[string]models.ConfidentialRecord
	leaves       map[string]models.LeaveRequest
	attendance   map[string]models.AttendanceRecord
	sessions     map[string]models.Session
	activity     []models.ActivityLog
}

func NewStore() *Store {
	return &Store{
		credentials:  make(map[string]store.Credentials),
		profiles:     make(map[string]models.Profile),
		roles:        make(map[string]models.RoleAssignment),
		confidential: make(map[string]models.ConfidentialRecord),
		leaves:       make(map[string]models.LeaveRequest),
		attendance:   make(map[string]models.AttendanceRecord),
		sessions:     make(map[string]models.Session),
	}
}

func (s *Store) CreateIdentity(ctx context.Context, input store.CreateIdentityInput) (models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if _, ok := s.credentials[email]; ok {
		return models.Profile{}, store.ErrEmailTaken
	}
	createdAt := input.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	userID := uuid.NewString()
	s.credentials[email] = store.Credentials{UserID: userID, Email: email, PasswordHash: input.PasswordHash}
	profile := models.Profile{
		UserID:     userID,
		Email:      email,
		FullName:   input.FullName,
		Department: input.Department,
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}
	s.profiles[userID] = profile
	s.roles[userID] = models.RoleAssignment{UserID: userID, Role: models.RoleUser, AssignedAt: createdAt}
	if input.Position != "" {
		s.confidential[userID] = models.ConfidentialRecord{UserID: userID, Position: input.Position, UpdatedAt: createdAt}
	}
	return profile, nil
}

func (s *Store) GetCredentials(ctx context.Context, email string) (store.Credentials, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	creds, ok := s.credentials[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return store.Credentials{}, store.ErrNotFound
	}
	return creds, nil
}

func (s *Store) HasRole(ctx context.Context, userID string, role models.Role) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	assignment, ok := s.roles[userID]
	return ok && assignment.Role == role, nil
}

func (s *Store) GetRole(ctx context.Context, userID string) (models.RoleAssignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	assignment, ok := s.roles[userID]
	if !ok {
		return models.RoleAssignment{}, store.ErrNotFound
	}
	return assignment, nil
}

func (s *Store) ListRoles(ctx context.Context) ([]models.RoleAssignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.RoleAssignment, 0, len(s.roles))
	for _, assignment := range s.roles {
		out = append(out, assignment)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (s *Store) UpsertRole(ctx context.Context, assignment models.RoleAssignment) (models.RoleAssignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[assignment.UserID]; !ok {
		return models.RoleAssignment{}, store.ErrNotFound
	}
	if assignment.AssignedAt.IsZero() {
		assignment.AssignedAt = time.Now().UTC()
	}
	s.roles[assignment.UserID] = assignment
	return assignment, nil
}

func (s *Store) DeleteRole(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.roles[userID]; !ok {
		return store.ErrNotFound
	}
	delete(s.roles, userID)
	return nil
}

func (s *Store) ListProfiles(ctx context.Context, filter store.ProfileFilter) ([]models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Profile{}
	for _, profile := range s.profiles {
		if filter.UserID != "" && profile.UserID != filter.UserID {
			continue
		}
		out = append(out, profile)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FullName != out[j].FullName {
			return out[i].FullName < out[j].FullName
		}
		return out[i].UserID < out[j].UserID
	})
	return out, nil
}

func (s *Store) GetProfile(ctx context.Context, userID string) (models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profile, ok := s.profiles[userID]
	if !ok {
		return models.Profile{}, store.ErrNotFound
	}
	return profile, nil
}

func (s *Store) UpdateProfile(ctx context.Context, userID string, update store.ProfileUpdate) (models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	profile, ok := s.profiles[userID]
	if !ok {
		return models.Profile{}, store.ErrNotFound
	}
	if update.FullName != nil {
		profile.FullName = *update.FullName
	}
	if update.Department != nil {
		profile.Department = *update.Department
	}
	if update.HireDate != nil {
		profile.HireDate = *update.HireDate
	}
	profile.UpdatedAt = update.UpdatedAt
	if profile.UpdatedAt.IsZero() {
		profile.UpdatedAt = time.Now().UTC()
	}
	s.profiles[userID] = profile
	return profile, nil
}

func (s *Store) DeleteIdentity(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[userID]; !ok {
		return store.ErrNotFound
	}
	for email, creds := range s.credentials {
		if creds.UserID == userID {
			delete(s.credentials, email)
		}
	}
	delete(s.profiles, userID)
	delete(s.roles, userID)
	delete(s.confidential, userID)
	for id, leave := range s.leaves {
		if leave.UserID == userID {
			delete(s.leaves, id)
		}
	}
	for id, record := range s.attendance {
		if record.UserID == userID {
			delete(s.attendance, id)
		}
	}
	for id, session := range s.sessions {
		if session.UserID == userID {
			delete(s.sessions, id)
		}
	}
	return nil
}

func (s *Store) CreateSession(ctx context.Context, session models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[session.UserID]; !ok {
		return store.ErrNotFound
	}
	s.sessions[session.SessionID] = session
	return nil
}

func (s *Store) GetSession(ctx context.Context, sessionID string) (models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionID]
	if !ok || session.RevokedAt != nil {
		return models.Session{}, store.ErrNotFound
	}
	return session, nil
}

func (s *Store) RevokeSession(ctx context.Context, sessionID string, revokedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	if !ok || session.RevokedAt != nil {
		return store.ErrNotFound
	}
	session.RevokedAt = &revokedAt
	s.sessions[sessionID] = session
	return nil
}

func (s *Store) ListConfidential(ctx context.Context) ([]models.ConfidentialRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.ConfidentialRecord, 0, len(s.confidential))
	for _, record := range s.confidential {
		out = append(out, record)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (s *Store) GetConfidential(ctx context.Context, userID string) (models.ConfidentialRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.confidential[userID]
	if !ok {
		return models.ConfidentialRecord{}, store.ErrNotFound
	}
	return record, nil
}

func (s *Store) UpsertConfidential(ctx context.Context, record models.ConfidentialRecord) (models.ConfidentialRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[record.UserID]; !ok {
		return models.ConfidentialRecord{}, store.ErrNotFound
	}
	if record.UpdatedAt.IsZero() {
		record.UpdatedAt = time.Now().UTC()
	}
	s.confidential[record.UserID] = record
	return record, nil
}

func (s *Store) DeleteConfidential(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.confidential[userID]; !ok {
		return store.ErrNotFound
	}
	delete(s.confidential, userID)
	return nil
}

func (s *Store) CreateLeave(ctx context.Context, input store.CreateLeaveInput) (models.LeaveRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	createdAt := input.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	leave := models.LeaveRequest{
		LeaveID:   uuid.NewString(),
		UserID:    input.UserID,
		LeaveType: input.LeaveType,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Reason:    input.Reason,
		Status:    models.StatusPending,
		CreatedAt: createdAt,
	}
	s.leaves[leave.LeaveID] = leave
	return leave, nil
}

func (s *Store) GetLeave(ctx context.Context, leaveID string) (models.LeaveRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	leave, ok := s.leaves[leaveID]
	if !ok {
		return models.LeaveRequest{}, store.ErrNotFound
	}
	return leave, nil
}

func (s *Store) ListLeaves(ctx context.Context, filter store.LeaveFilter) ([]models.LeaveRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.LeaveRequest{}
	for _, leave := range s.leaves {
		if filter.UserID != "" && leave.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && leave.Status != filter.Status {
			continue
		}
		out = append(out, leave)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) ReviewLeave(ctx context.Context, input store.ReviewLeaveInput) (models.LeaveRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	leave, ok := s.leaves[input.LeaveID]
	if !ok {
		return models.LeaveRequest{}, store.ErrNotFound
	}
	if leave.Status != models.StatusPending {
		return models.LeaveRequest{}, store.ErrInvalidTransition
	}
	reviewedAt := input.ReviewedAt
	leave.Status = input.Status
	leave.ReviewedBy = input.ReviewerID
	leave.ReviewedAt = &reviewedAt
	s.leaves[leave.LeaveID] = leave
	return leave, nil
}

func (s *Store) DeleteLeave(ctx context.Context, leaveID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.leaves[leaveID]; !ok {
		return store.ErrNotFound
	}
	delete(s.leaves, leaveID)
	return nil
}

func (s *Store) ClockIn(ctx context.Context, input store.ClockInInput) (models.AttendanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[input.UserID]; !ok {
		return models.AttendanceRecord{}, store.ErrNotFound
	}
	for _, record := range s.attendance {
		if record.UserID == input.UserID && record.Open() {
			return models.AttendanceRecord{}, store.ErrAlreadyClockedIn
		}
	}
	record := models.AttendanceRecord{
		AttendanceID: uuid.NewString(),
		UserID:       input.UserID,
		ClockIn:      input.ClockIn,
		Notes:        input.Notes,
		MarkedBy:     input.MarkedBy,
		CreatedAt:    input.ClockIn,
	}
	s.attendance[record.AttendanceID] = record
	return record, nil
}

func (s *Store) GetAttendance(ctx context.Context, attendanceID string) (models.AttendanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.attendance[attendanceID]
	if !ok {
		return models.AttendanceRecord{}, store.ErrNotFound
	}
	return record, nil
}

func (s *Store) ListAttendance(ctx context.Context, filter store.AttendanceFilter) ([]models.AttendanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.AttendanceRecord{}
	for _, record := range s.attendance {
		if filter.UserID != "" && record.UserID != filter.UserID {
			continue
		}
		if filter.From != nil && record.ClockIn.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !record.ClockIn.Before(*filter.To) {
			continue
		}
		if filter.OpenOnly && !record.Open() {
			continue
		}
		out = append(out, record)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ClockIn.After(out[j].ClockIn) })
	return out, nil
}

func (s *Store) ClockOut(ctx context.Context, input store.ClockOutInput) (models.AttendanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.attendance[input.AttendanceID]
	if !ok {
		return models.AttendanceRecord{}, store.ErrNotFound
	}
	if !record.Open() {
		return models.AttendanceRecord{}, store.ErrAlreadyClosed
	}
	if input.ClockOut.Before(record.ClockIn) {
		return models.AttendanceRecord{}, store.ErrClockOutBeforeClockIn
	}
	clockOut := input.ClockOut
	record.ClockOut = &clockOut
	s.attendance[record.AttendanceID] = record
	return record, nil
}

func (s *Store) DeleteAttendance(ctx context.Context, attendanceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.attendance[attendanceID]; !ok {
		return store.ErrNotFound
	}
	delete(s.attendance, attendanceID)
	return nil
}

func (s *Store) InsertActivity(ctx context.Context, entry models.ActivityLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry.ActivityID == "" {
		entry.ActivityID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	s.activity = append(s.activity, entry)
	return nil
}

// ListActivity returns entries newest first.
func (s *Store) ListActivity(ctx context.Context, filter store.ActivityFilter) ([]models.ActivityLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.ActivityLog{}
	for i := len(s.activity) - 1; i >= 0; i-- {
		entry := s.activity[i]
		if filter.ActorID != "" && entry.ActorID != filter.ActorID {
			continue
		}
		out = append(out, entry)
		if filter.Limit > 0 && len(out) >= filter.Limit {
			break
		}
	}
	return out, nil
}
