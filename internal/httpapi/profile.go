package httpapi

import (
	"net/http"
	"strconv"

	"hrdash/internal/access"
	"hrdash/internal/models"
	"hrdash/internal/role"
)

type profileResponse struct {
	models.Profile
	Role        models.Role      `json:"role"`
	Affordances role.Affordances `json:"affordances"`
}

type dashboardResponse struct {
	access.DashboardSummary
	AccessLevel string           `json:"access_level"`
	Affordances role.Affordances `json:"affordances"`
}

func (h *Handler) handleProfile(w http.ResponseWriter, r *http.Request) {
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	switch r.Method {
	case http.MethodGet:
		profile, err := h.gateway.GetProfile(r.Context(), p, p.UserID)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		resolution := h.roles.Get(r.Context(), p.SessionID, p.UserID)
		writeJSON(w, http.StatusOK, profileResponse{
			Profile:     profile,
			Role:        resolution.Role,
			Affordances: resolution.Affordances,
		})
	case http.MethodPut:
		h.updateProfile(w, r, p, p.UserID)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	summary, err := h.gateway.Dashboard(r.Context(), p)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	resolution := h.roles.Get(r.Context(), p.SessionID, p.UserID)
	writeJSON(w, http.StatusOK, dashboardResponse{
		DashboardSummary: summary,
		AccessLevel:      resolution.AccessLevel,
		Affordances:      resolution.Affordances,
	})
}

func (h *Handler) handleActivity(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value <= 0 {
			writeError(w, requestIDFromRequest(r), http.StatusBadRequest, "invalid_request", "limit must be a positive integer")
			return
		}
		limit = value
	}
	entries, err := h.gateway.ListActivity(r.Context(), p, limit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
