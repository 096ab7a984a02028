package access

import (
	"context"
	"fmt"

	"hrdash/internal/models"
	"hrdash/internal/policy"
	"hrdash/internal/store"
)

const defaultActivityLimit = 100

func (g *Gateway) ListActivity(ctx context.Context, p Principal, limit int) ([]models.ActivityLog, error) {
	owner, visible, err := g.readScope(ctx, p, policy.ActivityLogs)
	if err != nil || !visible {
		return []models.ActivityLog{}, err
	}
	if limit <= 0 || limit > 1000 {
		limit = defaultActivityLimit
	}
	entries, err := g.store.ListActivity(ctx, store.ActivityFilter{ActorID: owner, Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	return entries, nil
}
