package role

import (
	"context"
	"errors"
	"testing"

	"hrdash/internal/models"
	"hrdash/internal/store"

	"github.com/rs/zerolog"
)

type fakeSource struct {
	calls   int
	getRole func(userID string) (models.RoleAssignment, error)
}

func (f *fakeSource) GetRole(ctx context.Context, userID string) (models.RoleAssignment, error) {
	f.calls++
	return f.getRole(userID)
}

func TestResolve(t *testing.T) {
	cases := []struct {
		name     string
		userID   string
		result   models.RoleAssignment
		err      error
		role     models.Role
		level    string
		degraded bool
	}{
		{name: "no identity", userID: "", level: AccessUnauthenticated},
		{name: "admin row", userID: "u1", result: models.RoleAssignment{Role: models.RoleAdmin}, role: models.RoleAdmin, level: AccessAdmin},
		{name: "user row", userID: "u1", result: models.RoleAssignment{Role: models.RoleUser}, role: models.RoleUser, level: AccessUser},
		{name: "no row", userID: "u1", err: store.ErrNotFound, role: models.RoleUser, level: AccessUser},
		{name: "lookup failure", userID: "u1", err: errors.New("timeout"), role: models.RoleUser, level: AccessUser, degraded: true},
		{name: "unknown value", userID: "u1", result: models.RoleAssignment{Role: "root"}, role: models.RoleUser, level: AccessUser},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			source := &fakeSource{getRole: func(string) (models.RoleAssignment, error) { return tc.result, tc.err }}
			res := NewResolver(source, zerolog.Nop()).Resolve(context.Background(), tc.userID)
			if res.Role != tc.role || res.AccessLevel != tc.level || res.Degraded != tc.degraded {
				t.Fatalf("unexpected resolution: %+v", res)
			}
			if res.Role != models.RoleAdmin && (res.Affordances.CanManageRoles || res.Affordances.CanViewConfidential) {
				t.Fatalf("non-admin resolution exposes admin affordances: %+v", res.Affordances)
			}
			if tc.userID == "" && source.calls != 0 {
				t.Fatalf("expected no lookup without identity")
			}
		})
	}
}

func TestCacheInvalidation(t *testing.T) {
	ctx := context.Background()
	role := models.RoleUser
	source := &fakeSource{getRole: func(string) (models.RoleAssignment, error) {
		return models.RoleAssignment{Role: role}, nil
	}}
	cache := NewCache(NewResolver(source, zerolog.Nop()))

	if res := cache.Get(ctx, "s1", "u1"); res.Role != models.RoleUser {
		t.Fatalf("expected user, got %q", res.Role)
	}
	role = models.RoleAdmin
	if res := cache.Get(ctx, "s1", "u1"); res.Role != models.RoleUser {
		t.Fatalf("expected cached user, got %q", res.Role)
	}
	if source.calls != 1 {
		t.Fatalf("expected 1 lookup, got %d", source.calls)
	}

	cache.Invalidate("s1")
	if res := cache.Get(ctx, "s1", "u1"); res.Role != models.RoleAdmin {
		t.Fatalf("expected admin after refresh, got %q", res.Role)
	}

	role = models.RoleUser
	cache.Get(ctx, "s2", "u1")
	cache.InvalidateUser("u1")
	if cache.Len() != 0 {
		t.Fatalf("expected all sessions of u1 dropped, got %d", cache.Len())
	}
	if res := cache.Get(ctx, "s1", "u1"); res.Role != models.RoleUser {
		t.Fatalf("expected user after role change, got %q", res.Role)
	}
}

func TestCacheIdentityChangeOnSession(t *testing.T) {
	ctx := context.Background()
	source := &fakeSource{getRole: func(userID string) (models.RoleAssignment, error) {
		if userID == "admin" {
			return models.RoleAssignment{Role: models.RoleAdmin}, nil
		}
		return models.RoleAssignment{}, store.ErrNotFound
	}}
	cache := NewCache(NewResolver(source, zerolog.Nop()))

	if res := cache.Get(ctx, "s1", "admin"); res.Role != models.RoleAdmin {
		t.Fatalf("expected admin, got %q", res.Role)
	}
	if res := cache.Get(ctx, "s1", "someone"); res.Role != models.RoleUser {
		t.Fatalf("expected identity change to re-resolve, got %q", res.Role)
	}
}

func TestCacheSkipsDegradedResults(t *testing.T) {
	ctx := context.Background()
	fail := true
	source := &fakeSource{getRole: func(string) (models.RoleAssignment, error) {
		if fail {
			return models.RoleAssignment{}, errors.New("unavailable")
		}
		return models.RoleAssignment{Role: models.RoleAdmin}, nil
	}}
	cache := NewCache(NewResolver(source, zerolog.Nop()))

	if res := cache.Get(ctx, "s1", "u1"); res.Role != models.RoleUser || !res.Degraded {
		t.Fatalf("expected degraded user, got %+v", res)
	}
	fail = false
	if res := cache.Get(ctx, "s1", "u1"); res.Role != models.RoleAdmin {
		t.Fatalf("expected recovered admin, got %+v", res)
	}
}
