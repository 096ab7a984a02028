package access

import (
	"context"
	"time"

	"hrdash/internal/models"
)

type DashboardSummary struct {
	Employees       int                       `json:"employees"`
	PendingLeaves   int                       `json:"pending_leaves"`
	OpenAttendance  int                       `json:"open_attendance"`
	TodayAttendance int                       `json:"today_attendance"`
	RecentLeaves    []models.LeaveRequest     `json:"recent_leaves"`
	RecentActivity  []models.ActivityLog      `json:"recent_activity"`
	OpenRecords     []models.AttendanceRecord `json:"open_records"`
}

const dashboardRecent = 5

// Dashboard counts what the caller can see. Every figure goes through the same
// scoped reads as the list screens.
func (g *Gateway) Dashboard(ctx context.Context, p Principal) (DashboardSummary, error) {
	profiles, err := g.ListProfiles(ctx, p)
	if err != nil {
		return DashboardSummary{}, err
	}
	leaves, err := g.ListLeaves(ctx, p, "")
	if err != nil {
		return DashboardSummary{}, err
	}
	open, err := g.ListAttendance(ctx, p, AttendanceQuery{OpenOnly: true})
	if err != nil {
		return DashboardSummary{}, err
	}
	now := g.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.Add(24 * time.Hour)
	today, err := g.ListAttendance(ctx, p, AttendanceQuery{From: &dayStart, To: &dayEnd})
	if err != nil {
		return DashboardSummary{}, err
	}
	activity, err := g.ListActivity(ctx, p, dashboardRecent)
	if err != nil {
		return DashboardSummary{}, err
	}

	summary := DashboardSummary{
		Employees:       len(profiles),
		OpenAttendance:  len(open),
		TodayAttendance: len(today),
		RecentActivity:  activity,
		OpenRecords:     open,
		RecentLeaves:    []models.LeaveRequest{},
	}
	for _, leave := range leaves {
		if leave.Status == models.StatusPending {
			summary.PendingLeaves++
		}
	}
	if len(leaves) > dashboardRecent {
		leaves = leaves[:dashboardRecent]
	}
	summary.RecentLeaves = append(summary.RecentLeaves, leaves...)
	return summary, nil
}
