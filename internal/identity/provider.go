// Package identity is the auth provider: signup with profile provisioning,
// password login, revocable sessions and token issuance.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hrdash/internal/models"
	"hrdash/internal/store"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	// ErrSessionEnded covers logged-out, expired and deleted sessions.
	ErrSessionEnded = errors.New("session ended")
)

const (
	minPasswordLength      = 8
	defaultSessionLifetime = 7 * 24 * time.Hour
)

type Store interface {
	CreateIdentity(ctx context.Context, input store.CreateIdentityInput) (models.Profile, error)
	GetCredentials(ctx context.Context, email string) (store.Credentials, error)
	CreateSession(ctx context.Context, session models.Session) error
	GetSession(ctx context.Context, sessionID string) (models.Session, error)
	RevokeSession(ctx context.Context, sessionID string, revokedAt time.Time) error
}

type SignupInput struct {
	Email      string
	Password   string
	FullName   string
	Department string
	Position   string
}

type Session struct {
	Token     string    `json:"token"`
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Provider struct {
	store    Store
	tokens   *Manager
	cost     int
	lifetime time.Duration
}

// NewProvider uses bcrypt.DefaultCost when cost is zero. lifetime caps how
// long a session lives across refreshes; zero means seven days.
func NewProvider(st Store, tokens *Manager, cost int, lifetime time.Duration) *Provider {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	if lifetime <= 0 {
		lifetime = defaultSessionLifetime
	}
	return &Provider{store: st, tokens: tokens, cost: cost, lifetime: lifetime}
}

// Signup creates the identity with its profile, the default user role and,
// when a position is given, the admin_data row. It returns a fresh session.
func (p *Provider) Signup(ctx context.Context, input SignupInput) (models.Profile, Session, error) {
	if len(input.Password) < minPasswordLength {
		return models.Profile{}, Session{}, ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), p.cost)
	if err != nil {
		return models.Profile{}, Session{}, fmt.Errorf("hash password: %w", err)
	}
	profile, err := p.store.CreateIdentity(ctx, store.CreateIdentityInput{
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(input.FullName),
		Department:   strings.TrimSpace(input.Department),
		Position:     strings.TrimSpace(input.Position),
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return models.Profile{}, Session{}, fmt.Errorf("create identity: %w", err)
	}
	session, err := p.issue(ctx, profile.UserID)
	if err != nil {
		return models.Profile{}, Session{}, err
	}
	return profile, session, nil
}

func (p *Provider) Login(ctx context.Context, email, password string) (Session, error) {
	creds, err := p.store.GetCredentials(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, fmt.Errorf("get credentials: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(password)); err != nil {
		return Session{}, ErrInvalidCredentials
	}
	return p.issue(ctx, creds.UserID)
}

// Refresh reissues a token for a live session. The new token never outlives
// the session.
func (p *Provider) Refresh(ctx context.Context, claims *Claims) (Session, error) {
	session, err := p.activeSession(ctx, claims)
	if err != nil {
		return Session{}, err
	}
	token, expiresAt, err := p.tokens.IssueUntil(claims.Subject, claims.SessionID, session.ExpiresAt)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, SessionID: claims.SessionID, UserID: claims.Subject, ExpiresAt: expiresAt}, nil
}

// Authenticate validates the token and checks that its session is still live.
func (p *Provider) Authenticate(ctx context.Context, token string) (*Claims, error) {
	claims, err := p.tokens.Validate(token)
	if err != nil {
		return nil, err
	}
	if _, err := p.activeSession(ctx, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// Logout revokes the session. Every token issued for it stops working.
func (p *Provider) Logout(ctx context.Context, claims *Claims) error {
	err := p.store.RevokeSession(ctx, claims.SessionID, p.tokens.now().UTC())
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

func (p *Provider) activeSession(ctx context.Context, claims *Claims) (models.Session, error) {
	session, err := p.store.GetSession(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Session{}, ErrSessionEnded
		}
		return models.Session{}, fmt.Errorf("get session: %w", err)
	}
	if session.UserID != claims.Subject {
		return models.Session{}, ErrInvalidToken
	}
	if !p.tokens.now().Before(session.ExpiresAt) {
		return models.Session{}, ErrSessionEnded
	}
	return session, nil
}

func (p *Provider) issue(ctx context.Context, userID string) (Session, error) {
	now := p.tokens.now().UTC()
	record := models.Session{
		SessionID: uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(p.lifetime),
	}
	if err := p.store.CreateSession(ctx, record); err != nil {
		return Session{}, fmt.Errorf("create session: %w", err)
	}
	token, expiresAt, err := p.tokens.IssueUntil(userID, record.SessionID, record.ExpiresAt)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, SessionID: record.SessionID, UserID: userID, ExpiresAt: expiresAt}, nil
}
