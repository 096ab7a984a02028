package httpapi

import (
	"net/http"
	"strings"

	"hrdash/internal/identity"
	"hrdash/internal/models"
	"hrdash/internal/role"
)

type signupRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	FullName   string `json:"full_name"`
	Department string `json:"department"`
	Position   string `json:"position"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupResponse struct {
	Profile models.Profile   `json:"profile"`
	Session identity.Session `json:"session"`
}

type sessionResponse struct {
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
	role.Resolution
	Session *identity.Session `json:"session,omitempty"`
}

func (h *Handler) handleSignup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req signupRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(w, requestIDFromRequest(r), http.StatusBadRequest, "invalid_json", "invalid JSON payload")
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	req.FullName = strings.TrimSpace(req.FullName)
	if req.Email == "" || req.Password == "" || req.FullName == "" {
		writeError(w, requestIDFromRequest(r), http.StatusBadRequest, "invalid_request", "email, password, and full_name are required")
		return
	}
	if !isValidEmail(req.Email) {
		writeError(w, requestIDFromRequest(r), http.StatusBadRequest, "invalid_request", "email is not valid")
		return
	}

	profile, session, err := h.identity.Signup(r.Context(), identity.SignupInput{
		Email:      req.Email,
		Password:   req.Password,
		FullName:   req.FullName,
		Department: req.Department,
		Position:   req.Position,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.log.Info().Str("user_id", profile.UserID).Msg("identity provisioned")
	writeJSON(w, http.StatusCreated, signupResponse{Profile: profile, Session: session})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req loginRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(w, requestIDFromRequest(r), http.StatusBadRequest, "invalid_json", "invalid JSON payload")
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		writeError(w, requestIDFromRequest(r), http.StatusBadRequest, "invalid_request", "email and password are required")
		return
	}
	session, err := h.identity.Login(r.Context(), strings.ToLower(strings.TrimSpace(req.Email)), req.Password)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	info, ok := authFromContext(r.Context())
	if !ok {
		writeError(w, requestIDFromRequest(r), http.StatusUnauthorized, "unauthorized", "missing token")
		return
	}
	if err := h.identity.Logout(r.Context(), info.Claims); err != nil {
		h.fail(w, r, err)
		return
	}
	h.roles.Invalidate(info.Principal.SessionID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{
		UserID:     p.UserID,
		SessionID:  p.SessionID,
		Resolution: h.roles.Get(r.Context(), p.SessionID, p.UserID),
	})
}

// handleSessionRefresh reissues the token for the same session, capped at the
// session's absolute expiry, then drops the cached role and resolves it again.
func (h *Handler) handleSessionRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	info, ok := authFromContext(r.Context())
	if !ok {
		writeError(w, requestIDFromRequest(r), http.StatusUnauthorized, "unauthorized", "missing token")
		return
	}
	p := info.Principal
	session, err := h.identity.Refresh(r.Context(), info.Claims)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.roles.Invalidate(p.SessionID)
	resolution := h.roles.Get(r.Context(), p.SessionID, p.UserID)

	writeJSON(w, http.StatusOK, sessionResponse{
		UserID:     p.UserID,
		SessionID:  p.SessionID,
		Resolution: resolution,
		Session:    &session,
	})
}

func isValidEmail(value string) bool {
	at := strings.Index(value, "@")
	return at > 0 && at < len(value)-1 && !strings.ContainsAny(value, " \t")
}
