// Package export renders attendance sheets for download.
package export

import (
	"fmt"
	"io"
	"time"

	"hrdash/internal/models"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Attendance"

var header = []interface{}{"Employee", "Email", "Department", "Clock in", "Clock out", "Hours", "Notes", "Marked by"}

// WriteAttendanceXLSX writes one row per record. profiles maps user id to the
// employee's profile; records without a profile keep the raw user id.
func WriteAttendanceXLSX(w io.Writer, records []models.AttendanceRecord, profiles map[string]models.Profile) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return err
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetRowStyle(sheetName, 1, 1, bold); err != nil {
		return err
	}

	for i, record := range records {
		name, email, department := record.UserID, "", ""
		if profile, ok := profiles[record.UserID]; ok {
			name, email, department = profile.FullName, profile.Email, profile.Department
		}
		markedBy := record.MarkedBy
		if profile, ok := profiles[record.MarkedBy]; ok {
			markedBy = profile.FullName
		}
		row := []interface{}{
			name,
			email,
			department,
			record.ClockIn.UTC().Format(time.RFC3339),
			"",
			"",
			record.Notes,
			markedBy,
		}
		if record.ClockOut != nil {
			row[4] = record.ClockOut.UTC().Format(time.RFC3339)
		}
		if hours := record.DurationHours(); hours != nil {
			row[5] = *hours
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(sheetName, "A", "C", 24); err != nil {
		return err
	}
	if err := f.SetColWidth(sheetName, "D", "E", 22); err != nil {
		return err
	}
	_, err = f.WriteTo(w)
	return err
}
