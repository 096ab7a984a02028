package httpapi

import (
	"net/http"
	"strings"

	"hrdash/internal/access"
	"hrdash/internal/models"
)

type employeeView struct {
	models.Profile
	Role         models.Role                `json:"role,omitempty"`
	Confidential *models.ConfidentialRecord `json:"confidential,omitempty"`
}

type roleRequest struct {
	Role string `json:"role"`
}

type confidentialRequest struct {
	Position string   `json:"position"`
	Salary   *float64 `json:"salary"`
	Notes    string   `json:"notes"`
}

// handleEmployees lists visible profiles. q filters by a case-insensitive
// substring of name, email or department. Callers resolved as admin also get
// the role and confidential columns, which the gateway checks again.
func (h *Handler) handleEmployees(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	profiles, err := h.gateway.ListProfiles(ctx, p)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	query := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q")))

	resolution := h.roles.Get(ctx, p.SessionID, p.UserID)
	roles := map[string]models.Role{}
	confidential := map[string]models.ConfidentialRecord{}
	if resolution.Affordances.CanManageRoles {
		assignments, err := h.gateway.ListRoles(ctx, p)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		for _, assignment := range assignments {
			roles[assignment.UserID] = assignment.Role
		}
	}
	if resolution.Affordances.CanViewConfidential {
		records, err := h.gateway.ListConfidential(ctx, p)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		for _, record := range records {
			confidential[record.UserID] = record
		}
	}

	views := make([]employeeView, 0, len(profiles))
	for _, profile := range profiles {
		if !matchesEmployee(profile, query) {
			continue
		}
		view := employeeView{Profile: profile, Role: roles[profile.UserID]}
		if record, ok := confidential[profile.UserID]; ok {
			view.Confidential = &record
		}
		views = append(views, view)
	}
	writeJSON(w, http.StatusOK, views)
}

func matchesEmployee(profile models.Profile, query string) bool {
	if query == "" {
		return true
	}
	for _, field := range []string{profile.FullName, profile.Email, profile.Department} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

func (h *Handler) handleEmployee(w http.ResponseWriter, r *http.Request) {
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	parts := pathParts(r.URL.Path, "/api/employees/")
	if len(parts) == 0 || len(parts) > 2 {
		writeError(w, requestIDFromRequest(r), http.StatusNotFound, "not_found", "not found")
		return
	}
	userID := parts[0]
	if !isValidUUID(userID) {
		writeError(w, requestIDFromRequest(r), http.StatusBadRequest, "invalid_request", "employee id must be a UUID")
		return
	}
	if len(parts) == 2 {
		switch parts[1] {
		case "role":
			h.handleEmployeeRole(w, r, p, userID)
		case "confidential":
			h.handleEmployeeConfidential(w, r, p, userID)
		default:
			writeError(w, requestIDFromRequest(r), http.StatusNotFound, "not_found", "not found")
		}
		return
	}

	switch r.Method {
	case http.MethodGet:
		profile, err := h.gateway.GetProfile(r.Context(), p, userID)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, profile)
	case http.MethodPut:
		h.updateProfile(w, r, p, userID)
	case http.MethodDelete:
		if err := h.gateway.DeleteProfile(r.Context(), p, userID); err != nil {
			h.fail(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// updateProfile is shared by the employee and own-profile screens. The
// gateway decides which fields the caller may change.
func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request, p access.Principal, userID string) {
	changes := map[string]string{}
	if err := decodeJSON(r, &changes, false); err != nil {
		writeError(w, requestIDFromRequest(r), http.StatusBadRequest, "invalid_json", "invalid JSON payload")
		return
	}
	if len(changes) == 0 {
		writeError(w, requestIDFromRequest(r), http.StatusBadRequest, "invalid_request", "no fields to update")
		return
	}
	if _, err := h.gateway.UpdateProfile(r.Context(), p, userID, changes); err != nil {
		h.fail(w, r, err)
		return
	}
	profile, err := h.gateway.GetProfile(r.Context(), p, userID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *Handler) handleEmployeeRole(w http.ResponseWriter, r *http.Request, p access.Principal, userID string) {
	ctx := r.Context()
	switch r.Method {
	case http.MethodGet:
		assignment, err := h.gateway.GetRole(ctx, p, userID)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, assignment)
	case http.MethodPut:
		var req roleRequest
		if err := decodeJSON(r, &req, false); err != nil {
			writeError(w, requestIDFromRequest(r), http.StatusBadRequest, "invalid_json", "invalid JSON payload")
			return
		}
		target := models.Role(strings.ToLower(strings.TrimSpace(req.Role)))
		if !target.Valid() {
			writeError(w, requestIDFromRequest(r), http.StatusBadRequest, "invalid_request", "role must be admin or user")
			return
		}
		if _, err := h.gateway.SetRole(ctx, p, userID, target); err != nil {
			h.fail(w, r, err)
			return
		}
		assignment, err := h.gateway.GetRole(ctx, p, userID)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, assignment)
	case http.MethodDelete:
		if err := h.gateway.RevokeRole(ctx, p, userID); err != nil {
			h.fail(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleEmployeeConfidential(w http.ResponseWriter, r *http.Request, p access.Principal, userID string) {
	ctx := r.Context()
	switch r.Method {
	case http.MethodGet:
		record, err := h.gateway.GetConfidential(ctx, p, userID)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, record)
	case http.MethodPut:
		var req confidentialRequest
		if err := decodeJSON(r, &req, false); err != nil {
			writeError(w, requestIDFromRequest(r), http.StatusBadRequest, "invalid_json", "invalid JSON payload")
			return
		}
		if _, err := h.gateway.PutConfidential(ctx, p, userID, access.ConfidentialInput{
			Position: req.Position,
			Salary:   req.Salary,
			Notes:    req.Notes,
		}); err != nil {
			h.fail(w, r, err)
			return
		}
		record, err := h.gateway.GetConfidential(ctx, p, userID)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, record)
	case http.MethodDelete:
		if err := h.gateway.DeleteConfidential(ctx, p, userID); err != nil {
			h.fail(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
