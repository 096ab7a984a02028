package access

import (
	"context"
	"errors"
	"fmt"

	"hrdash/internal/models"
	"hrdash/internal/policy"
	"hrdash/internal/store"
)

func (g *Gateway) ListRoles(ctx context.Context, p Principal) ([]models.RoleAssignment, error) {
	owner, visible, err := g.readScope(ctx, p, policy.UserRoles)
	if err != nil || !visible {
		return []models.RoleAssignment{}, err
	}
	if owner != "" {
		assignment, err := g.store.GetRole(ctx, owner)
		if errors.Is(err, store.ErrNotFound) {
			return []models.RoleAssignment{}, nil
		}
		if err != nil {
			return nil, fmt.Errorf("get role: %w", err)
		}
		return []models.RoleAssignment{assignment}, nil
	}
	roles, err := g.store.ListRoles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	return roles, nil
}

func (g *Gateway) GetRole(ctx context.Context, p Principal, userID string) (models.RoleAssignment, error) {
	if _, err := g.authorize(ctx, p, policy.UserRoles, policy.Read, userID); err != nil {
		return models.RoleAssignment{}, err
	}
	assignment, err := g.store.GetRole(ctx, userID)
	if err != nil {
		return models.RoleAssignment{}, fmt.Errorf("get role: %w", err)
	}
	return assignment, nil
}

// SetRole assigns role to userID. Cached resolutions of that user are dropped
// and the user is told to re-fetch.
func (g *Gateway) SetRole(ctx context.Context, p Principal, userID string, role models.Role) (models.RoleAssignment, error) {
	if !role.Valid() {
		return models.RoleAssignment{}, fmt.Errorf("%w: role must be admin or user", ErrInvalidInput)
	}
	if _, err := g.authorize(ctx, p, policy.UserRoles, policy.Update, userID); err != nil {
		return models.RoleAssignment{}, err
	}
	assignment, err := g.store.UpsertRole(ctx, models.RoleAssignment{
		UserID:     userID,
		Role:       role,
		AssignedAt: g.now(),
		AssignedBy: p.UserID,
	})
	if err != nil {
		return models.RoleAssignment{}, fmt.Errorf("set role: %w", err)
	}
	g.roleChanged(userID, string(role))
	g.record(ctx, p, "role.changed", string(policy.UserRoles), userID, map[string]string{"role": string(role)})
	return assignment, nil
}

// RevokeRole removes the role row. The user then resolves to the default role
// and holds no admin rights.
func (g *Gateway) RevokeRole(ctx context.Context, p Principal, userID string) error {
	if _, err := g.authorize(ctx, p, policy.UserRoles, policy.Delete, userID); err != nil {
		return err
	}
	if err := g.store.DeleteRole(ctx, userID); err != nil {
		return fmt.Errorf("revoke role: %w", err)
	}
	g.roleChanged(userID, "")
	g.record(ctx, p, "role.revoked", string(policy.UserRoles), userID, nil)
	return nil
}

func (g *Gateway) roleChanged(userID, role string) {
	if g.roles != nil {
		g.roles.InvalidateUser(userID)
	}
	g.notify(userID, "role.changed", map[string]string{"user_id": userID, "role": role})
}
