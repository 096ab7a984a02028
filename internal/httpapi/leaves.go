package httpapi

import (
	"net/http"
	"strings"

	"hrdash/internal/access"
	"hrdash/internal/models"
)

type createLeaveRequest struct {
	LeaveType string `json:"leave_type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`
}

func (h *Handler) handleLeaves(w http.ResponseWriter, r *http.Request) {
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	switch r.Method {
	case http.MethodGet:
		status := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("status")))
		switch status {
		case "", models.StatusPending, models.StatusApproved, models.StatusRejected:
		default:
			writeError(w, requestIDFromRequest(r), http.StatusBadRequest, "invalid_request", "status must be pending, approved or rejected")
			return
		}
		leaves, err := h.gateway.ListLeaves(r.Context(), p, status)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, leaves)
	case http.MethodPost:
		var req createLeaveRequest
		if err := decodeJSON(r, &req, false); err != nil {
			writeError(w, requestIDFromRequest(r), http.StatusBadRequest, "invalid_json", "invalid JSON payload")
			return
		}
		if strings.TrimSpace(req.LeaveType) == "" || strings.TrimSpace(req.StartDate) == "" || strings.TrimSpace(req.EndDate) == "" {
			writeError(w, requestIDFromRequest(r), http.StatusBadRequest, "invalid_request", "leave_type, start_date, and end_date are required")
			return
		}
		created, err := h.gateway.CreateLeave(r.Context(), p, access.LeaveInput{
			LeaveType: req.LeaveType,
			StartDate: req.StartDate,
			EndDate:   req.EndDate,
			Reason:    req.Reason,
		})
		if err != nil {
			h.fail(w, r, err)
			return
		}
		leave, err := h.gateway.GetLeave(r.Context(), p, created.LeaveID)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, leave)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleLeave serves /api/leaves/{id} and /api/leaves/{id}/{approve|reject}.
func (h *Handler) handleLeave(w http.ResponseWriter, r *http.Request) {
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	parts := pathParts(r.URL.Path, "/api/leaves/")
	if len(parts) == 0 || len(parts) > 2 {
		writeError(w, requestIDFromRequest(r), http.StatusNotFound, "not_found", "not found")
		return
	}
	leaveID := parts[0]
	if !isValidUUID(leaveID) {
		writeError(w, requestIDFromRequest(r), http.StatusBadRequest, "invalid_request", "leave id must be a UUID")
		return
	}

	if len(parts) == 2 {
		action := parts[1]
		if action != "approve" && action != "reject" {
			writeError(w, requestIDFromRequest(r), http.StatusNotFound, "not_found", "not found")
			return
		}
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if _, err := h.gateway.ReviewLeave(r.Context(), p, leaveID, action); err != nil {
			h.fail(w, r, err)
			return
		}
		leave, err := h.gateway.GetLeave(r.Context(), p, leaveID)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, leave)
		return
	}

	switch r.Method {
	case http.MethodGet:
		leave, err := h.gateway.GetLeave(r.Context(), p, leaveID)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, leave)
	case http.MethodDelete:
		if err := h.gateway.DeleteLeave(r.Context(), p, leaveID); err != nil {
			h.fail(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
