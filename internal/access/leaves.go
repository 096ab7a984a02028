package access

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hrdash/internal/models"
	"hrdash/internal/policy"
	"hrdash/internal/store"
)

type LeaveInput struct {
	LeaveType string
	StartDate string
	EndDate   string
	Reason    string
}

// CreateLeave files a pending request for the caller.
func (g *Gateway) CreateLeave(ctx context.Context, p Principal, input LeaveInput) (models.LeaveRequest, error) {
	leaveType := models.LeaveType(strings.ToLower(strings.TrimSpace(input.LeaveType)))
	if !leaveType.Valid() {
		return models.LeaveRequest{}, fmt.Errorf("%w: leave_type must be sick, vacation, personal or other", ErrInvalidInput)
	}
	start, err := time.Parse(models.DateLayout, strings.TrimSpace(input.StartDate))
	if err != nil {
		return models.LeaveRequest{}, fmt.Errorf("%w: start_date must be YYYY-MM-DD", ErrInvalidInput)
	}
	end, err := time.Parse(models.DateLayout, strings.TrimSpace(input.EndDate))
	if err != nil {
		return models.LeaveRequest{}, fmt.Errorf("%w: end_date must be YYYY-MM-DD", ErrInvalidInput)
	}
	if end.Before(start) {
		return models.LeaveRequest{}, store.ErrInvalidDateRange
	}
	if _, err := g.authorize(ctx, p, policy.Leaves, policy.Create, p.UserID); err != nil {
		return models.LeaveRequest{}, err
	}

	leave, err := g.store.CreateLeave(ctx, store.CreateLeaveInput{
		UserID:    p.UserID,
		LeaveType: leaveType,
		StartDate: start.Format(models.DateLayout),
		EndDate:   end.Format(models.DateLayout),
		Reason:    strings.TrimSpace(input.Reason),
		CreatedAt: g.now(),
	})
	if err != nil {
		return models.LeaveRequest{}, fmt.Errorf("create leave: %w", err)
	}
	g.record(ctx, p, "leave.created", string(policy.Leaves), leave.LeaveID, map[string]string{
		"leave_type": string(leave.LeaveType),
		"start_date": leave.StartDate,
		"end_date":   leave.EndDate,
	})
	return leave, nil
}

func (g *Gateway) ListLeaves(ctx context.Context, p Principal, status string) ([]models.LeaveRequest, error) {
	owner, visible, err := g.readScope(ctx, p, policy.Leaves)
	if err != nil || !visible {
		return []models.LeaveRequest{}, err
	}
	leaves, err := g.store.ListLeaves(ctx, store.LeaveFilter{UserID: owner, Status: status})
	if err != nil {
		return nil, fmt.Errorf("list leaves: %w", err)
	}
	return leaves, nil
}

func (g *Gateway) GetLeave(ctx context.Context, p Principal, leaveID string) (models.LeaveRequest, error) {
	leave, err := g.store.GetLeave(ctx, leaveID)
	if err != nil {
		return models.LeaveRequest{}, fmt.Errorf("get leave: %w", err)
	}
	if _, err := g.authorize(ctx, p, policy.Leaves, policy.Read, leave.UserID); err != nil {
		return models.LeaveRequest{}, err
	}
	return leave, nil
}

// ReviewLeave applies "approve" or "reject" to a pending request, stamping the
// caller as reviewer.
func (g *Gateway) ReviewLeave(ctx context.Context, p Principal, leaveID, action string) (models.LeaveRequest, error) {
	target, ok := policy.LeaveTarget(action)
	if !ok {
		return models.LeaveRequest{}, fmt.Errorf("%w: unknown review action %q", ErrInvalidInput, action)
	}
	current, err := g.store.GetLeave(ctx, leaveID)
	if err != nil {
		return models.LeaveRequest{}, fmt.Errorf("review leave: %w", err)
	}
	if _, err := g.authorize(ctx, p, policy.Leaves, policy.Update, current.UserID); err != nil {
		return models.LeaveRequest{}, err
	}
	if !policy.ValidLeaveTransition(action, current.Status) {
		return models.LeaveRequest{}, store.ErrInvalidTransition
	}

	leave, err := g.store.ReviewLeave(ctx, store.ReviewLeaveInput{
		LeaveID:    leaveID,
		Status:     target,
		ReviewerID: p.UserID,
		ReviewedAt: g.now(),
	})
	if err != nil {
		return models.LeaveRequest{}, fmt.Errorf("review leave: %w", err)
	}
	g.record(ctx, p, "leave."+target, string(policy.Leaves), leaveID, map[string]string{"user_id": leave.UserID})
	g.notify(leave.UserID, "leave.reviewed", leave)
	return leave, nil
}

func (g *Gateway) DeleteLeave(ctx context.Context, p Principal, leaveID string) error {
	current, err := g.store.GetLeave(ctx, leaveID)
	if err != nil {
		return fmt.Errorf("delete leave: %w", err)
	}
	if _, err := g.authorize(ctx, p, policy.Leaves, policy.Delete, current.UserID); err != nil {
		return err
	}
	if err := g.store.DeleteLeave(ctx, leaveID); err != nil {
		return fmt.Errorf("delete leave: %w", err)
	}
	g.record(ctx, p, "leave.deleted", string(policy.Leaves), leaveID, nil)
	return nil
}
