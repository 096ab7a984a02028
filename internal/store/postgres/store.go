package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"hrdash/internal/models"
	"hrdash/internal/store"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) CreateIdentity(ctx context.Context, input store.CreateIdentityInput) (models.Profile, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return models.Profile{}, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	createdAt := input.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	profile := models.Profile{
		UserID:     uuid.NewString(),
		Email:      strings.ToLower(strings.TrimSpace(input.Email)),
		FullName:   input.FullName,
		Department: input.Department,
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO identities (user_id, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
	`, profile.UserID, profile.Email, input.PasswordHash, createdAt)
	if err != nil {
		if isPgError(err, uniqueViolation) {
			err = store.ErrEmailTaken
		}
		return models.Profile{}, err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO profiles (user_id, email, full_name, department, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
	`, profile.UserID, profile.Email, profile.FullName, profile.Department, createdAt)
	if err != nil {
		return models.Profile{}, err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO user_roles (user_id, role, assigned_at)
		VALUES ($1, $2, $3)
	`, profile.UserID, string(models.RoleUser), createdAt)
	if err != nil {
		return models.Profile{}, err
	}

	if input.Position != "" {
		_, err = tx.Exec(ctx, `
			INSERT INTO admin_data (user_id, position, updated_at)
			VALUES ($1, $2, $3)
		`, profile.UserID, input.Position, createdAt)
		if err != nil {
			return models.Profile{}, err
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return models.Profile{}, err
	}
	return profile, nil
}

func (s *Store) GetCredentials(ctx context.Context, email string) (store.Credentials, error) {
	var creds store.Credentials
	row := s.pool.QueryRow(ctx, `
		SELECT user_id::text, email, password_hash
		FROM identities
		WHERE email = $1
	`, strings.ToLower(strings.TrimSpace(email)))
	if err := row.Scan(&creds.UserID, &creds.Email, &creds.PasswordHash); err != nil {
		return store.Credentials{}, notFound(err)
	}
	return creds, nil
}

// HasRole evaluates the has_role SQL predicate, the same one the row-level
// policies use.
func (s *Store) HasRole(ctx context.Context, userID string, role models.Role) (bool, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return false, nil
	}
	var ok bool
	row := s.pool.QueryRow(ctx, `SELECT has_role($1::uuid, $2)`, userID, string(role))
	if err := row.Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

func (s *Store) GetRole(ctx context.Context, userID string) (models.RoleAssignment, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT user_id::text, role, assigned_at, assigned_by::text
		FROM user_roles
		WHERE user_id = $1
	`, userID)
	assignment, err := scanRole(row)
	if err != nil {
		return models.RoleAssignment{}, notFound(err)
	}
	return assignment, nil
}

func (s *Store) ListRoles(ctx context.Context) ([]models.RoleAssignment, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT user_id::text, role, assigned_at, assigned_by::text
		FROM user_roles
		ORDER BY user_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.RoleAssignment{}
	for rows.Next() {
		assignment, err := scanRole(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, assignment)
	}
	return out, rows.Err()
}

func (s *Store) UpsertRole(ctx context.Context, assignment models.RoleAssignment) (models.RoleAssignment, error) {
	if assignment.AssignedAt.IsZero() {
		assignment.AssignedAt = time.Now().UTC()
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO user_roles (user_id, role, assigned_at, assigned_by)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE
		SET role = EXCLUDED.role, assigned_at = EXCLUDED.assigned_at, assigned_by = EXCLUDED.assigned_by
	`, assignment.UserID, string(assignment.Role), assignment.AssignedAt, nullIfEmpty(assignment.AssignedBy))
	if err != nil {
		if isPgError(err, foreignKeyViolation) {
			return models.RoleAssignment{}, store.ErrNotFound
		}
		return models.RoleAssignment{}, err
	}
	return assignment, nil
}

func (s *Store) DeleteRole(ctx context.Context, userID string) error {
	return s.deleteByID(ctx, `DELETE FROM user_roles WHERE user_id = $1`, userID)
}

const profileColumns = `user_id::text, email, full_name, department, to_char(hire_date, 'YYYY-MM-DD'), created_at, updated_at`

func (s *Store) ListProfiles(ctx context.Context, filter store.ProfileFilter) ([]models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles`
	var args []interface{}
	if filter.UserID != "" {
		query += " WHERE user_id = $1"
		args = append(args, filter.UserID)
	}
	query += " ORDER BY full_name ASC, user_id ASC"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Profile{}
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, profile)
	}
	return out, rows.Err()
}

func (s *Store) GetProfile(ctx context.Context, userID string) (models.Profile, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE user_id = $1`, userID)
	profile, err := scanProfile(row)
	if err != nil {
		return models.Profile{}, notFound(err)
	}
	return profile, nil
}

func (s *Store) UpdateProfile(ctx context.Context, userID string, update store.ProfileUpdate) (models.Profile, error) {
	var hireDate *time.Time
	if update.HireDate != nil {
		parsed, err := time.Parse(models.DateLayout, *update.HireDate)
		if err != nil {
			return models.Profile{}, fmt.Errorf("hire date: %w", err)
		}
		hireDate = &parsed
	}
	updatedAt := update.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}
	row := s.pool.QueryRow(ctx, `
		UPDATE profiles
		SET full_name = COALESCE($2, full_name),
			department = COALESCE($3, department),
			hire_date = COALESCE($4, hire_date),
			updated_at = $5
		WHERE user_id = $1
		RETURNING `+profileColumns, userID, update.FullName, update.Department, hireDate, updatedAt)
	profile, err := scanProfile(row)
	if err != nil {
		return models.Profile{}, notFound(err)
	}
	return profile, nil
}

// DeleteIdentity relies on the ON DELETE CASCADE foreign keys to identities.
func (s *Store) DeleteIdentity(ctx context.Context, userID string) error {
	return s.deleteByID(ctx, `DELETE FROM identities WHERE user_id = $1`, userID)
}

func (s *Store) CreateSession(ctx context.Context, session models.Session) error {
	createdAt := session.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO sessions (session_id, user_id, created_at, expires_at)
		VALUES ($1, $2, $3, $4)
	`, session.SessionID, session.UserID, createdAt, session.ExpiresAt)
	if isPgError(err, foreignKeyViolation) {
		return store.ErrNotFound
	}
	return err
}

func (s *Store) GetSession(ctx context.Context, sessionID string) (models.Session, error) {
	var session models.Session
	err := s.pool.QueryRow(ctx, `
		SELECT session_id::text, user_id::text, created_at, expires_at
		FROM sessions
		WHERE session_id = $1 AND revoked_at IS NULL
	`, sessionID).Scan(&session.SessionID, &session.UserID, &session.CreatedAt, &session.ExpiresAt)
	if err != nil {
		return models.Session{}, notFound(err)
	}
	return session, nil
}

func (s *Store) RevokeSession(ctx context.Context, sessionID string, revokedAt time.Time) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE sessions SET revoked_at = $2
		WHERE session_id = $1 AND revoked_at IS NULL
	`, sessionID, revokedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

const confidentialColumns = `user_id::text, position, salary::float8, notes, updated_at, updated_by::text`

func (s *Store) ListConfidential(ctx context.Context) ([]models.ConfidentialRecord, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+confidentialColumns+` FROM admin_data ORDER BY user_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.ConfidentialRecord{}
	for rows.Next() {
		record, err := scanConfidential(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	return out, rows.Err()
}

func (s *Store) GetConfidential(ctx context.Context, userID string) (models.ConfidentialRecord, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+confidentialColumns+` FROM admin_data WHERE user_id = $1`, userID)
	record, err := scanConfidential(row)
	if err != nil {
		return models.ConfidentialRecord{}, notFound(err)
	}
	return record, nil
}

func (s *Store) UpsertConfidential(ctx context.Context, record models.ConfidentialRecord) (models.ConfidentialRecord, error) {
	if record.UpdatedAt.IsZero() {
		record.UpdatedAt = time.Now().UTC()
	}
	row := s.pool.QueryRow(ctx, `
		INSERT INTO admin_data (user_id, position, salary, notes, updated_at, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE
		SET position = EXCLUDED.position, salary = EXCLUDED.salary, notes = EXCLUDED.notes,
			updated_at = EXCLUDED.updated_at, updated_by = EXCLUDED.updated_by
		RETURNING `+confidentialColumns,
		record.UserID, record.Position, record.Salary, record.Notes, record.UpdatedAt, nullIfEmpty(record.UpdatedBy))
	saved, err := scanConfidential(row)
	if err != nil {
		if isPgError(err, foreignKeyViolation) {
			return models.ConfidentialRecord{}, store.ErrNotFound
		}
		return models.ConfidentialRecord{}, err
	}
	return saved, nil
}

func (s *Store) DeleteConfidential(ctx context.Context, userID string) error {
	return s.deleteByID(ctx, `DELETE FROM admin_data WHERE user_id = $1`, userID)
}

const leaveColumns = `leave_id::text, user_id::text, leave_type, to_char(start_date, 'YYYY-MM-DD'), to_char(end_date, 'YYYY-MM-DD'), reason, status, reviewed_by::text, reviewed_at, created_at`

func (s *Store) CreateLeave(ctx context.Context, input store.CreateLeaveInput) (models.LeaveRequest, error) {
	start, err := time.Parse(models.DateLayout, input.StartDate)
	if err != nil {
		return models.LeaveRequest{}, fmt.Errorf("start date: %w", err)
	}
	end, err := time.Parse(models.DateLayout, input.EndDate)
	if err != nil {
		return models.LeaveRequest{}, fmt.Errorf("end date: %w", err)
	}
	createdAt := input.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	row := s.pool.QueryRow(ctx, `
		INSERT INTO leaves (leave_id, user_id, leave_type, start_date, end_date, reason, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+leaveColumns,
		uuid.NewString(), input.UserID, string(input.LeaveType), start, end, input.Reason, models.StatusPending, createdAt)
	leave, err := scanLeave(row)
	if err != nil {
		if isPgError(err, foreignKeyViolation) {
			return models.LeaveRequest{}, store.ErrNotFound
		}
		return models.LeaveRequest{}, err
	}
	return leave, nil
}

func (s *Store) GetLeave(ctx context.Context, leaveID string) (models.LeaveRequest, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+leaveColumns+` FROM leaves WHERE leave_id = $1`, leaveID)
	leave, err := scanLeave(row)
	if err != nil {
		return models.LeaveRequest{}, notFound(err)
	}
	return leave, nil
}

func (s *Store) ListLeaves(ctx context.Context, filter store.LeaveFilter) ([]models.LeaveRequest, error) {
	query := `SELECT ` + leaveColumns + ` FROM leaves WHERE TRUE`
	var args []interface{}
	if filter.UserID != "" {
		args = append(args, filter.UserID)
		query += fmt.Sprintf(" AND user_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.LeaveRequest{}
	for rows.Next() {
		leave, err := scanLeave(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, leave)
	}
	return out, rows.Err()
}

// ReviewLeave moves a pending leave to its terminal status and stamps the
// reviewer in the same statement.
func (s *Store) ReviewLeave(ctx context.Context, input store.ReviewLeaveInput) (models.LeaveRequest, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE leaves
		SET status = $2, reviewed_by = $3, reviewed_at = $4
		WHERE leave_id = $1 AND status = 'pending'
		RETURNING `+leaveColumns, input.LeaveID, input.Status, input.ReviewerID, input.ReviewedAt)
	leave, err := scanLeave(row)
	if err == nil {
		return leave, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return models.LeaveRequest{}, err
	}
	exists, err := s.exists(ctx, `SELECT EXISTS (SELECT 1 FROM leaves WHERE leave_id = $1)`, input.LeaveID)
	if err != nil {
		return models.LeaveRequest{}, err
	}
	if !exists {
		return models.LeaveRequest{}, store.ErrNotFound
	}
	return models.LeaveRequest{}, store.ErrInvalidTransition
}

func (s *Store) DeleteLeave(ctx context.Context, leaveID string) error {
	return s.deleteByID(ctx, `DELETE FROM leaves WHERE leave_id = $1`, leaveID)
}

const attendanceColumns = `attendance_id::text, user_id::text, clock_in, clock_out, notes, marked_by::text, created_at`

func (s *Store) ClockIn(ctx context.Context, input store.ClockInInput) (models.AttendanceRecord, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO attendance (attendance_id, user_id, clock_in, notes, marked_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $3)
		RETURNING `+attendanceColumns,
		uuid.NewString(), input.UserID, input.ClockIn, input.Notes, input.MarkedBy)
	record, err := scanAttendance(row)
	if err != nil {
		switch {
		case isPgError(err, uniqueViolation):
			return models.AttendanceRecord{}, store.ErrAlreadyClockedIn
		case isPgError(err, foreignKeyViolation):
			return models.AttendanceRecord{}, store.ErrNotFound
		}
		return models.AttendanceRecord{}, err
	}
	return record, nil
}

func (s *Store) GetAttendance(ctx context.Context, attendanceID string) (models.AttendanceRecord, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+attendanceColumns+` FROM attendance WHERE attendance_id = $1`, attendanceID)
	record, err := scanAttendance(row)
	if err != nil {
		return models.AttendanceRecord{}, notFound(err)
	}
	return record, nil
}

func (s *Store) ListAttendance(ctx context.Context, filter store.AttendanceFilter) ([]models.AttendanceRecord, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendance WHERE TRUE`
	var args []interface{}
	if filter.UserID != "" {
		args = append(args, filter.UserID)
		query += fmt.Sprintf(" AND user_id = $%d", len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		query += fmt.Sprintf(" AND clock_in >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += fmt.Sprintf(" AND clock_in < $%d", len(args))
	}
	if filter.OpenOnly {
		query += " AND clock_out IS NULL"
	}
	query += " ORDER BY clock_in DESC"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.AttendanceRecord{}
	for rows.Next() {
		record, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	return out, rows.Err()
}

// ClockOut closes an open record. The conditional update keeps clock-out
// single-assignment under concurrent callers.
func (s *Store) ClockOut(ctx context.Context, input store.ClockOutInput) (models.AttendanceRecord, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE attendance
		SET clock_out = $2
		WHERE attendance_id = $1 AND clock_out IS NULL AND clock_in <= $2
		RETURNING `+attendanceColumns, input.AttendanceID, input.ClockOut)
	record, err := scanAttendance(row)
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return models.AttendanceRecord{}, err
	}
	current, err := s.GetAttendance(ctx, input.AttendanceID)
	if err != nil {
		return models.AttendanceRecord{}, err
	}
	if !current.Open() {
		return models.AttendanceRecord{}, store.ErrAlreadyClosed
	}
	return models.AttendanceRecord{}, store.ErrClockOutBeforeClockIn
}

func (s *Store) DeleteAttendance(ctx context.Context, attendanceID string) error {
	return s.deleteByID(ctx, `DELETE FROM attendance WHERE attendance_id = $1`, attendanceID)
}

func (s *Store) InsertActivity(ctx context.Context, entry models.ActivityLog) error {
	if entry.ActivityID == "" {
		entry.ActivityID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	var details interface{}
	if len(entry.Details) > 0 {
		details = []byte(entry.Details)
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO activity_logs (activity_id, actor_id, action, target_type, target_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, entry.ActivityID, entry.ActorID, entry.Action, entry.TargetType, entry.TargetID, details, entry.CreatedAt)
	return err
}

func (s *Store) ListActivity(ctx context.Context, filter store.ActivityFilter) ([]models.ActivityLog, error) {
	query := `
		SELECT activity_id::text, actor_id::text, action, target_type, target_id, details, created_at
		FROM activity_logs
		WHERE TRUE
	`
	var args []interface{}
	if filter.ActorID != "" {
		args = append(args, filter.ActorID)
		query += fmt.Sprintf(" AND actor_id = $%d", len(args))
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.ActivityLog{}
	for rows.Next() {
		var entry models.ActivityLog
		var details []byte
		if err := rows.Scan(&entry.ActivityID, &entry.ActorID, &entry.Action, &entry.TargetType, &entry.TargetID, &details, &entry.CreatedAt); err != nil {
			return nil, err
		}
		if len(details) > 0 {
			entry.Details = details
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

func (s *Store) deleteByID(ctx context.Context, query, id string) error {
	tag, err := s.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) exists(ctx context.Context, query string, args ...interface{}) (bool, error) {
	var exists bool
	if err := s.pool.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func scanRole(row pgx.Row) (models.RoleAssignment, error) {
	var assignment models.RoleAssignment
	var role string
	var assignedBy sql.NullString
	if err := row.Scan(&assignment.UserID, &role, &assignment.AssignedAt, &assignedBy); err != nil {
		return models.RoleAssignment{}, err
	}
	assignment.Role = models.Role(role)
	assignment.AssignedBy = assignedBy.String
	return assignment, nil
}

func scanProfile(row pgx.Row) (models.Profile, error) {
	var profile models.Profile
	var hireDate sql.NullString
	if err := row.Scan(&profile.UserID, &profile.Email, &profile.FullName, &profile.Department, &hireDate, &profile.CreatedAt, &profile.UpdatedAt); err != nil {
		return models.Profile{}, err
	}
	profile.HireDate = hireDate.String
	return profile, nil
}

func scanConfidential(row pgx.Row) (models.ConfidentialRecord, error) {
	var record models.ConfidentialRecord
	var salary sql.NullFloat64
	var updatedBy sql.NullString
	if err := row.Scan(&record.UserID, &record.Position, &salary, &record.Notes, &record.UpdatedAt, &updatedBy); err != nil {
		return models.ConfidentialRecord{}, err
	}
	if salary.Valid {
		record.Salary = &salary.Float64
	}
	record.UpdatedBy = updatedBy.String
	return record, nil
}

func scanLeave(row pgx.Row) (models.LeaveRequest, error) {
	var leave models.LeaveRequest
	var leaveType string
	var reviewedBy sql.NullString
	var reviewedAt sql.NullTime
	if err := row.Scan(&leave.LeaveID, &leave.UserID, &leaveType, &leave.StartDate, &leave.EndDate, &leave.Reason, &leave.Status, &reviewedBy, &reviewedAt, &leave.CreatedAt); err != nil {
		return models.LeaveRequest{}, err
	}
	leave.LeaveType = models.LeaveType(leaveType)
	leave.ReviewedBy = reviewedBy.String
	leave.ReviewedAt = nullTimePtr(reviewedAt)
	return leave, nil
}

func scanAttendance(row pgx.Row) (models.AttendanceRecord, error) {
	var record models.AttendanceRecord
	var clockOut sql.NullTime
	if err := row.Scan(&record.AttendanceID, &record.UserID, &record.ClockIn, &clockOut, &record.Notes, &record.MarkedBy, &record.CreatedAt); err != nil {
		return models.AttendanceRecord{}, err
	}
	record.ClockOut = nullTimePtr(clockOut)
	return record, nil
}

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

func isPgError(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

func nullIfEmpty(value string) interface{} {
	if value == "" {
		return nil
	}
	return value
}

func nullTimePtr(value sql.NullTime) *time.Time {
	if !value.Valid {
		return nil
	}
	return &value.Time
}
