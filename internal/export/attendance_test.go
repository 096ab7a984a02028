package export

import (
	"bytes"
	"testing"
	"time"

	"hrdash/internal/models"

	"github.com/xuri/excelize/v2"
)

func TestWriteAttendanceXLSX(t *testing.T) {
	clockIn := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	clockOut := clockIn.Add(7*time.Hour + 20*time.Minute)
	records := []models.AttendanceRecord{
		{AttendanceID: "a1", UserID: "u1", ClockIn: clockIn, ClockOut: &clockOut, Notes: "desk", MarkedBy: "admin"},
		{AttendanceID: "a2", UserID: "u2", ClockIn: clockIn, MarkedBy: "admin"},
	}
	profiles := map[string]models.Profile{
		"u1":    {UserID: "u1", FullName: "Jane Doe", Email: "jane@example.com", Department: "Ops"},
		"admin": {UserID: "admin", FullName: "Boss"},
	}

	var buf bytes.Buffer
	if err := WriteAttendanceXLSX(&buf, records, profiles); err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header and 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "Employee" || rows[0][5] != "Hours" {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	first := rows[1]
	if first[0] != "Jane Doe" || first[2] != "Ops" || first[5] != "7.3" || first[7] != "Boss" {
		t.Fatalf("unexpected first row: %v", first)
	}
	second := rows[2]
	if second[0] != "u2" || second[4] != "" || second[5] != "" {
		t.Fatalf("unexpected open row: %v", second)
	}
}
