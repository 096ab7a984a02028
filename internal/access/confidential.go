package access

import (
	"context"
	"fmt"
	"strings"

	"hrdash/internal/models"
	"hrdash/internal/policy"
)

// ListConfidential returns no rows, and no error, to non-admins.
func (g *Gateway) ListConfidential(ctx context.Context, p Principal) ([]models.ConfidentialRecord, error) {
	owner, visible, err := g.readScope(ctx, p, policy.Confidential)
	if err != nil || !visible || owner != "" {
		return []models.ConfidentialRecord{}, err
	}
	records, err := g.store.ListConfidential(ctx)
	if err != nil {
		return nil, fmt.Errorf("list admin data: %w", err)
	}
	return records, nil
}

func (g *Gateway) GetConfidential(ctx context.Context, p Principal, userID string) (models.ConfidentialRecord, error) {
	if _, err := g.authorize(ctx, p, policy.Confidential, policy.Read, userID); err != nil {
		return models.ConfidentialRecord{}, err
	}
	record, err := g.store.GetConfidential(ctx, userID)
	if err != nil {
		return models.ConfidentialRecord{}, fmt.Errorf("get admin data: %w", err)
	}
	return record, nil
}

type ConfidentialInput struct {
	Position string
	Salary   *float64
	Notes    string
}

func (g *Gateway) PutConfidential(ctx context.Context, p Principal, userID string, input ConfidentialInput) (models.ConfidentialRecord, error) {
	if _, err := g.authorize(ctx, p, policy.Confidential, policy.Update, userID); err != nil {
		return models.ConfidentialRecord{}, err
	}
	if input.Salary != nil && *input.Salary < 0 {
		return models.ConfidentialRecord{}, fmt.Errorf("%w: salary must not be negative", ErrInvalidInput)
	}
	record, err := g.store.UpsertConfidential(ctx, models.ConfidentialRecord{
		UserID:    userID,
		Position:  strings.TrimSpace(input.Position),
		Salary:    input.Salary,
		Notes:     input.Notes,
		UpdatedAt: g.now(),
		UpdatedBy: p.UserID,
	})
	if err != nil {
		return models.ConfidentialRecord{}, fmt.Errorf("put admin data: %w", err)
	}
	g.record(ctx, p, "admin_data.updated", string(policy.Confidential), userID, nil)
	return record, nil
}

func (g *Gateway) DeleteConfidential(ctx context.Context, p Principal, userID string) error {
	if _, err := g.authorize(ctx, p, policy.Confidential, policy.Delete, userID); err != nil {
		return err
	}
	if err := g.store.DeleteConfidential(ctx, userID); err != nil {
		return fmt.Errorf("delete admin data: %w", err)
	}
	g.record(ctx, p, "admin_data.deleted", string(policy.Confidential), userID, nil)
	return nil
}
