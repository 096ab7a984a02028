package httpapi

import (
	"encoding/json"
	"errors"
	"expvar"
	"io"
	"net/http"
	"strings"

	"hrdash/internal/access"
	"hrdash/internal/hub"
	"hrdash/internal/identity"
	"hrdash/internal/role"
	"hrdash/internal/store"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Handler struct {
	gateway  *access.Gateway
	identity *identity.Provider
	roles    *role.Cache
	hub      *hub.Hub
	limiter  *RateLimiter
	log      zerolog.Logger
}

type Options struct {
	Gateway  *access.Gateway
	Identity *identity.Provider
	Roles    *role.Cache
	// Hub enables the /realtime endpoint when set.
	Hub *hub.Hub
	// Limiter applies the per-user limit after authentication when set.
	Limiter *RateLimiter
	Logger  zerolog.Logger
}

type errorResponse struct {
	RequestID string        `json:"request_id,omitempty"`
	Error     responseError `json:"error"`
}

type responseError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func NewHandler(options Options) *Handler {
	return &Handler{
		gateway:  options.Gateway,
		identity: options.Identity,
		roles:    options.Roles,
		hub:      options.Hub,
		limiter:  options.Limiter,
		log:      options.Logger,
	}
}

func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", expvar.Handler())
	mux.HandleFunc("/healthz", h.handleHealth)
	mux.HandleFunc("/api/auth/signup", h.handleSignup)
	mux.HandleFunc("/api/auth/login", h.handleLogin)
	mux.HandleFunc("/api/auth/logout", h.handleLogout)
	mux.HandleFunc("/api/session", h.handleSession)
	mux.HandleFunc("/api/session/refresh", h.handleSessionRefresh)
	mux.HandleFunc("/api/dashboard", h.handleDashboard)
	mux.HandleFunc("/api/employees", h.handleEmployees)
	mux.HandleFunc("/api/employees/", h.handleEmployee)
	mux.HandleFunc("/api/leaves", h.handleLeaves)
	mux.HandleFunc("/api/leaves/", h.handleLeave)
	mux.HandleFunc("/api/attendance", h.handleAttendanceCollection)
	mux.HandleFunc("/api/attendance/export", h.handleAttendanceExport)
	mux.HandleFunc("/api/attendance/", h.handleAttendanceRecord)
	mux.HandleFunc("/api/profile", h.handleProfile)
	mux.HandleFunc("/api/activity", h.handleActivity)
	if h.hub != nil {
		mux.Handle("/realtime/", h.realtimeHandler())
	}
	return h.AuthMiddleware(mux)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// fail maps err onto the error envelope. Unmapped errors are logged and
// reported as internal_error.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, code, msg := mapError(err)
	if status == http.StatusInternalServerError {
		p, _ := principalFromContext(r.Context())
		h.log.Error().
			Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("user_id", p.UserID).
			Msg("request failed")
	}
	writeError(w, requestIDFromRequest(r), status, code, msg)
}

func mapError(err error) (int, string, string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, "not_found", "not found"
	case errors.Is(err, store.ErrInvalidTransition):
		return http.StatusConflict, "invalid_transition", "leave status does not allow this action"
	case errors.Is(err, store.ErrAlreadyClosed):
		return http.StatusConflict, "already_closed", "attendance record is already closed"
	case errors.Is(err, store.ErrAlreadyClockedIn):
		return http.StatusConflict, "already_clocked_in", "employee already has an open attendance record"
	case errors.Is(err, store.ErrEmailTaken):
		return http.StatusConflict, "email_taken", "email is already registered"
	case errors.Is(err, store.ErrInvalidDateRange):
		return http.StatusUnprocessableEntity, "invalid_range", "end_date must not be before start_date"
	case errors.Is(err, store.ErrClockOutBeforeClockIn):
		return http.StatusUnprocessableEntity, "invalid_range", "clock_out must not be before clock_in"
	case errors.Is(err, store.ErrFieldNotEditable):
		return http.StatusBadRequest, "field_not_editable", err.Error()
	case errors.Is(err, access.ErrInvalidInput):
		return http.StatusBadRequest, "invalid_request", validationMessage(err)
	case errors.Is(err, identity.ErrWeakPassword):
		return http.StatusBadRequest, "weak_password", identity.ErrWeakPassword.Error()
	case errors.Is(err, identity.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid_credentials", "invalid email or password"
	case errors.Is(err, identity.ErrSessionEnded):
		return http.StatusUnauthorized, "unauthorized", "session ended"
	default:
		return http.StatusInternalServerError, "internal_error", "internal server error"
	}
}

// validationMessage keeps the detail after the ErrInvalidInput marker.
func validationMessage(err error) string {
	msg := err.Error()
	marker := access.ErrInvalidInput.Error() + ": "
	if idx := strings.Index(msg, marker); idx >= 0 {
		return msg[idx+len(marker):]
	}
	return msg
}

// decodeJSON rejects unknown fields. An empty body is accepted when
// allowEmpty is set and leaves dst untouched.
func decodeJSON(r *http.Request, dst interface{}, allowEmpty bool) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		if allowEmpty && errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	return nil
}

func isValidUUID(value string) bool {
	_, err := uuid.Parse(value)
	return err == nil
}

// pathParts splits the remainder of the path after prefix.
func pathParts(path, prefix string) []string {
	trimmed := strings.Trim(strings.TrimPrefix(path, prefix), "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

func writeError(w http.ResponseWriter, requestID string, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		RequestID: requestID,
		Error: responseError{
			Code:    code,
			Message: message,
		},
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}
