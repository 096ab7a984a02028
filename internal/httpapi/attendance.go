package httpapi

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	"hrdash/internal/access"
	"hrdash/internal/export"
	"hrdash/internal/models"
	"hrdash/internal/store"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type clockInRequest struct {
	UserID  string     `json:"user_id"`
	ClockIn *time.Time `json:"clock_in"`
	Notes   string     `json:"notes"`
}

type clockOutRequest struct {
	ClockOut *time.Time `json:"clock_out"`
}

type attendanceView struct {
	models.AttendanceRecord
	DurationHours *float64 `json:"duration_hours"`
}

func newAttendanceView(record models.AttendanceRecord) attendanceView {
	return attendanceView{AttendanceRecord: record, DurationHours: record.DurationHours()}
}

func (h *Handler) handleAttendanceCollection(w http.ResponseWriter, r *http.Request) {
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	switch r.Method {
	case http.MethodGet:
		query, msg := parseAttendanceQuery(r)
		if msg != "" {
			writeError(w, requestIDFromRequest(r), http.StatusBadRequest, "invalid_request", msg)
			return
		}
		records, err := h.gateway.ListAttendance(r.Context(), p, query)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		views := make([]attendanceView, 0, len(records))
		for _, record := range records {
			views = append(views, newAttendanceView(record))
		}
		writeJSON(w, http.StatusOK, views)
	case http.MethodPost:
		var req clockInRequest
		if err := decodeJSON(r, &req, false); err != nil {
			writeError(w, requestIDFromRequest(r), http.StatusBadRequest, "invalid_json", "invalid JSON payload")
			return
		}
		req.UserID = strings.TrimSpace(req.UserID)
		if req.UserID == "" || !isValidUUID(req.UserID) {
			writeError(w, requestIDFromRequest(r), http.StatusBadRequest, "invalid_request", "user_id must be a UUID")
			return
		}
		created, err := h.gateway.ClockIn(r.Context(), p, access.ClockInInput{
			UserID: req.UserID,
			At:     req.ClockIn,
			Notes:  req.Notes,
		})
		if err != nil {
			h.fail(w, r, err)
			return
		}
		record, err := h.gateway.GetAttendance(r.Context(), p, created.AttendanceID)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, newAttendanceView(record))
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleAttendanceRecord serves /api/attendance/{id} and
// /api/attendance/{id}/clock-out.
func (h *Handler) handleAttendanceRecord(w http.ResponseWriter, r *http.Request) {
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	parts := pathParts(r.URL.Path, "/api/attendance/")
	if len(parts) == 0 || len(parts) > 2 {
		writeError(w, requestIDFromRequest(r), http.StatusNotFound, "not_found", "not found")
		return
	}
	attendanceID := parts[0]
	if !isValidUUID(attendanceID) {
		writeError(w, requestIDFromRequest(r), http.StatusBadRequest, "invalid_request", "attendance id must be a UUID")
		return
	}

	if len(parts) == 2 {
		if parts[1] != "clock-out" {
			writeError(w, requestIDFromRequest(r), http.StatusNotFound, "not_found", "not found")
			return
		}
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		var req clockOutRequest
		if err := decodeJSON(r, &req, true); err != nil {
			writeError(w, requestIDFromRequest(r), http.StatusBadRequest, "invalid_json", "invalid JSON payload")
			return
		}
		if _, err := h.gateway.ClockOut(r.Context(), p, attendanceID, req.ClockOut); err != nil {
			h.fail(w, r, err)
			return
		}
		record, err := h.gateway.GetAttendance(r.Context(), p, attendanceID)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, newAttendanceView(record))
		return
	}

	switch r.Method {
	case http.MethodGet:
		record, err := h.gateway.GetAttendance(r.Context(), p, attendanceID)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, newAttendanceView(record))
	case http.MethodDelete:
		if err := h.gateway.DeleteAttendance(r.Context(), p, attendanceID); err != nil {
			h.fail(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleAttendanceExport streams the filtered attendance list as an xlsx
// workbook. Only admins may export.
func (h *Handler) handleAttendanceExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	isAdmin, err := h.gateway.IsAdmin(ctx, p)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if !isAdmin {
		h.fail(w, r, store.ErrNotFound)
		return
	}
	query, msg := parseAttendanceQuery(r)
	if msg != "" {
		writeError(w, requestIDFromRequest(r), http.StatusBadRequest, "invalid_request", msg)
		return
	}
	records, err := h.gateway.ListAttendance(ctx, p, query)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	profiles, err := h.gateway.ListProfiles(ctx, p)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	byUser := make(map[string]models.Profile, len(profiles))
	for _, profile := range profiles {
		byUser[profile.UserID] = profile
	}

	var buf bytes.Buffer
	if err := export.WriteAttendanceXLSX(&buf, records, byUser); err != nil {
		h.fail(w, r, err)
		return
	}
	filename := fmt.Sprintf("attendance-%s.xlsx", time.Now().UTC().Format("20060102"))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// parseAttendanceQuery reads user_id, from, to and open. Dates are either
// YYYY-MM-DD or RFC 3339; a bare "to" date includes that whole day.
func parseAttendanceQuery(r *http.Request) (access.AttendanceQuery, string) {
	values := r.URL.Query()
	query := access.AttendanceQuery{UserID: strings.TrimSpace(values.Get("user_id"))}
	if query.UserID != "" && !isValidUUID(query.UserID) {
		return access.AttendanceQuery{}, "user_id must be a UUID"
	}
	if raw := strings.TrimSpace(values.Get("from")); raw != "" {
		from, _, ok := parseTimeParam(raw)
		if !ok {
			return access.AttendanceQuery{}, "from must be YYYY-MM-DD or RFC 3339"
		}
		query.From = &from
	}
	if raw := strings.TrimSpace(values.Get("to")); raw != "" {
		to, dateOnly, ok := parseTimeParam(raw)
		if !ok {
			return access.AttendanceQuery{}, "to must be YYYY-MM-DD or RFC 3339"
		}
		if dateOnly {
			to = to.Add(24 * time.Hour)
		}
		query.To = &to
	}
	if query.From != nil && query.To != nil && query.To.Before(*query.From) {
		return access.AttendanceQuery{}, "to must not be before from"
	}
	query.OpenOnly = values.Get("open") == "true"
	return query, ""
}

func parseTimeParam(raw string) (time.Time, bool, bool) {
	if value, err := time.Parse(models.DateLayout, raw); err == nil {
		return value, true, true
	}
	if value, err := time.Parse(time.RFC3339, raw); err == nil {
		return value.UTC(), false, true
	}
	return time.Time{}, false, false
}
