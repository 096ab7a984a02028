// Package role resolves the role a UI uses to decide which affordances to
// show. Its output is never used for enforcement; internal/access re-checks
// user_roles on every call.
package role

import (
	"context"
	"errors"

	"hrdash/internal/models"
	"hrdash/internal/store"

	"github.com/rs/zerolog"
)

const (
	AccessUnauthenticated = "unauthenticated"
	AccessUser            = "user"
	AccessAdmin           = "admin"
)

type Affordances struct {
	CanManageRoles      bool `json:"can_manage_roles"`
	CanViewConfidential bool `json:"can_view_confidential"`
	CanReviewLeaves     bool `json:"can_review_leaves"`
	CanMarkAttendance   bool `json:"can_mark_attendance"`
	CanViewAllEmployees bool `json:"can_view_all_employees"`
	CanExportAttendance bool `json:"can_export_attendance"`
	CanRequestLeave     bool `json:"can_request_leave"`
	CanEditOwnProfile   bool `json:"can_edit_own_profile"`
}

type Resolution struct {
	// Role is empty when there is no identity.
	Role        models.Role `json:"role,omitempty"`
	AccessLevel string      `json:"access_level"`
	Affordances Affordances `json:"affordances"`
	// Degraded is set when the lookup failed and Role is the fallback.
	Degraded bool `json:"degraded,omitempty"`
}

type RoleSource interface {
	GetRole(ctx context.Context, userID string) (models.RoleAssignment, error)
}

type Resolver struct {
	source RoleSource
	log    zerolog.Logger
}

func NewResolver(source RoleSource, logger zerolog.Logger) *Resolver {
	return &Resolver{source: source, log: logger}
}

// Resolve maps an identity to its role. A missing role row and a failed lookup
// both resolve to user, never admin.
func (r *Resolver) Resolve(ctx context.Context, userID string) Resolution {
	if userID == "" {
		return Resolution{AccessLevel: AccessUnauthenticated}
	}
	assignment, err := r.source.GetRole(ctx, userID)
	switch {
	case err == nil && assignment.Role == models.RoleAdmin:
		return resolution(models.RoleAdmin)
	case err == nil && assignment.Role.Valid():
		return resolution(assignment.Role)
	case err == nil:
		r.log.Warn().Str("user_id", userID).Str("role", string(assignment.Role)).Msg("unknown role value, using user")
		return resolution(models.RoleUser)
	case errors.Is(err, store.ErrNotFound):
		return resolution(models.RoleUser)
	default:
		r.log.Error().Err(err).Str("user_id", userID).Msg("role lookup failed, using user")
		res := resolution(models.RoleUser)
		res.Degraded = true
		return res
	}
}

func resolution(role models.Role) Resolution {
	admin := role == models.RoleAdmin
	level := AccessUser
	if admin {
		level = AccessAdmin
	}
	return Resolution{
		Role:        role,
		AccessLevel: level,
		Affordances: Affordances{
			CanManageRoles:      admin,
			CanViewConfidential: admin,
			CanReviewLeaves:     admin,
			CanMarkAttendance:   admin,
			CanViewAllEmployees: admin,
			CanExportAttendance: admin,
			CanRequestLeave:     true,
			CanEditOwnProfile:   true,
		},
	}
}
