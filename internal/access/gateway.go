// Package access enforces the collection policy on every repository call.
//
// The caller's role is looked up in user_roles on each operation. Nothing the
// client claims about its role is consulted. Rows a caller may not read are
// filtered out of lists, and single-row reads and writes the caller may not
// perform fail with store.ErrNotFound so a denial cannot be told apart from a
// missing row.
package access

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"hrdash/internal/models"
	"hrdash/internal/policy"
	"hrdash/internal/store"

	"github.com/rs/zerolog"
)

// ErrInvalidInput marks request validation failures.
var ErrInvalidInput = errors.New("invalid input")

// Principal is the authenticated caller.
type Principal struct {
	UserID    string
	SessionID string
}

type Recorder interface {
	Record(ctx context.Context, entry models.ActivityLog) error
}

type Notifier interface {
	NotifyUser(userID, eventType string, payload interface{})
}

// RoleInvalidator drops cached role resolutions of a user.
type RoleInvalidator interface {
	InvalidateUser(userID string)
}

type Options struct {
	Recorder Recorder
	Notifier Notifier
	Roles    RoleInvalidator
	Logger   zerolog.Logger
	Now      func() time.Time
}

type Gateway struct {
	store    store.Store
	recorder Recorder
	notifier Notifier
	roles    RoleInvalidator
	log      zerolog.Logger
	now      func() time.Time
}

func NewGateway(st store.Store, options Options) *Gateway {
	now := options.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &Gateway{
		store:    st,
		recorder: options.Recorder,
		notifier: options.Notifier,
		roles:    options.Roles,
		log:      options.Logger,
		now:      now,
	}
}

// IsAdmin is the authoritative role check. A missing user_roles row is never
// admin. A lookup failure is returned to the caller and never read as admin.
func (g *Gateway) IsAdmin(ctx context.Context, p Principal) (bool, error) {
	if p.UserID == "" {
		return false, nil
	}
	ok, err := g.store.HasRole(ctx, p.UserID, models.RoleAdmin)
	if err != nil {
		return false, fmt.Errorf("has_role: %w", err)
	}
	return ok, nil
}

// authorize resolves the caller's role and checks the policy for a row owned
// by ownerID. It returns whether the caller is an admin.
func (g *Gateway) authorize(ctx context.Context, p Principal, collection policy.Collection, action policy.Action, ownerID string) (bool, error) {
	isAdmin, err := g.IsAdmin(ctx, p)
	if err != nil {
		return false, err
	}
	isOwner := p.UserID != "" && ownerID == p.UserID
	if !policy.Allowed(collection, action, isAdmin, isOwner) {
		g.log.Debug().
			Str("user_id", p.UserID).
			Str("collection", string(collection)).
			Str("action", string(action)).
			Msg("access denied")
		return isAdmin, store.ErrNotFound
	}
	return isAdmin, nil
}

// readScope returns the owner filter to apply to list reads of collection, and
// false when the caller may see no rows at all.
func (g *Gateway) readScope(ctx context.Context, p Principal, collection policy.Collection) (string, bool, error) {
	isAdmin, err := g.IsAdmin(ctx, p)
	if err != nil {
		return "", false, err
	}
	if !policy.ScopeToOwner(collection, isAdmin) {
		return "", true, nil
	}
	if p.UserID == "" || !policy.Allowed(collection, policy.Read, isAdmin, true) {
		return "", false, nil
	}
	return p.UserID, true, nil
}

func (g *Gateway) record(ctx context.Context, p Principal, action, targetType, targetID string, details interface{}) {
	if g.recorder == nil {
		return
	}
	entry := models.ActivityLog{
		ActorID:    p.UserID,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		CreatedAt:  g.now(),
	}
	if details != nil {
		raw, err := json.Marshal(details)
		if err == nil {
			entry.Details = raw
		}
	}
	if err := g.recorder.Record(ctx, entry); err != nil {
		g.log.Error().Err(err).Str("action", action).Str("target_id", targetID).Msg("record activity")
	}
}

func (g *Gateway) notify(userID, eventType string, payload interface{}) {
	if g.notifier == nil || userID == "" {
		return
	}
	g.notifier.NotifyUser(userID, eventType, payload)
}
