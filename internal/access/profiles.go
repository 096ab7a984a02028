package access

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"hrdash/internal/models"
	"hrdash/internal/policy"
	"hrdash/internal/store"
)

func (g *Gateway) ListProfiles(ctx context.Context, p Principal) ([]models.Profile, error) {
	owner, visible, err := g.readScope(ctx, p, policy.Profiles)
	if err != nil || !visible {
		return []models.Profile{}, err
	}
	profiles, err := g.store.ListProfiles(ctx, store.ProfileFilter{UserID: owner})
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	return profiles, nil
}

func (g *Gateway) GetProfile(ctx context.Context, p Principal, userID string) (models.Profile, error) {
	if _, err := g.authorize(ctx, p, policy.Profiles, policy.Read, userID); err != nil {
		return models.Profile{}, err
	}
	profile, err := g.store.GetProfile(ctx, userID)
	if err != nil {
		return models.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	return profile, nil
}

// UpdateProfile applies changes keyed by field name. Every field must be
// editable by the caller or nothing is written.
func (g *Gateway) UpdateProfile(ctx context.Context, p Principal, userID string, changes map[string]string) (models.Profile, error) {
	isAdmin, err := g.authorize(ctx, p, policy.Profiles, policy.Update, userID)
	if err != nil {
		return models.Profile{}, err
	}
	isOwner := userID == p.UserID

	fields := make([]string, 0, len(changes))
	for field := range changes {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	update := store.ProfileUpdate{UpdatedAt: g.now()}
	for _, field := range fields {
		if !policy.ProfileFieldEditable(field, isAdmin, isOwner) {
			return models.Profile{}, fmt.Errorf("%w: %s", store.ErrFieldNotEditable, field)
		}
		value := strings.TrimSpace(changes[field])
		switch field {
		case "full_name":
			if value == "" {
				return models.Profile{}, fmt.Errorf("%w: full_name is required", ErrInvalidInput)
			}
			update.FullName = &value
		case "department":
			update.Department = &value
		case "hire_date":
			if _, err := time.Parse(models.DateLayout, value); err != nil {
				return models.Profile{}, fmt.Errorf("%w: hire_date must be YYYY-MM-DD", ErrInvalidInput)
			}
			update.HireDate = &value
		}
	}

	profile, err := g.store.UpdateProfile(ctx, userID, update)
	if err != nil {
		return models.Profile{}, fmt.Errorf("update profile: %w", err)
	}
	g.record(ctx, p, "profile.updated", string(policy.Profiles), userID, map[string]interface{}{"fields": fields})
	return profile, nil
}

// DeleteProfile removes the employee entirely: login, role, admin_data,
// leaves, attendance and open sessions go with the profile, so the user can
// neither sign in again nor keep acting on an existing token.
func (g *Gateway) DeleteProfile(ctx context.Context, p Principal, userID string) error {
	if _, err := g.authorize(ctx, p, policy.Profiles, policy.Delete, userID); err != nil {
		return err
	}
	if err := g.store.DeleteIdentity(ctx, userID); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	g.roleChanged(userID, "")
	g.record(ctx, p, "profile.deleted", string(policy.Profiles), userID, nil)
	return nil
}
