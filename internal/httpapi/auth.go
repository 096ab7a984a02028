package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"hrdash/internal/access"
	"hrdash/internal/identity"
)

type authContextKey struct{}

type authInfo struct {
	Principal access.Principal
	Claims    *identity.Claims
}

// AuthMiddleware validates the bearer token, checks that its session is still
// live and attaches the principal. The token carries identity only; the role
// is looked up per request.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isPublicEndpoint(r) {
			next.ServeHTTP(w, r)
			return
		}
		token := bearerToken(r.Header.Get("Authorization"))
		if token == "" {
			writeError(w, requestIDFromRequest(r), http.StatusUnauthorized, "unauthorized", "missing token")
			return
		}
		claims, err := h.identity.Authenticate(r.Context(), token)
		if err != nil {
			var msg string
			switch {
			case errors.Is(err, identity.ErrTokenExpired):
				msg = "token expired"
			case errors.Is(err, identity.ErrSessionEnded):
				msg = "session ended"
			case errors.Is(err, identity.ErrInvalidToken):
				msg = "invalid token"
			default:
				h.fail(w, r, err)
				return
			}
			writeError(w, requestIDFromRequest(r), http.StatusUnauthorized, "unauthorized", msg)
			return
		}
		if h.limiter != nil && !h.limiter.AllowUser(claims.Subject) {
			writeError(w, requestIDFromRequest(r), http.StatusTooManyRequests, "rate_limited", "too many requests")
			return
		}
		info := authInfo{
			Principal: access.Principal{UserID: claims.Subject, SessionID: claims.SessionID},
			Claims:    claims,
		}
		ctx := context.WithValue(r.Context(), authContextKey{}, info)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func authFromContext(ctx context.Context) (authInfo, bool) {
	value := ctx.Value(authContextKey{})
	if value == nil {
		return authInfo{}, false
	}
	info, ok := value.(authInfo)
	if !ok {
		return authInfo{}, false
	}
	return info, true
}

func principalFromContext(ctx context.Context) (access.Principal, bool) {
	info, ok := authFromContext(ctx)
	if !ok {
		return access.Principal{}, false
	}
	return info.Principal, true
}

// requirePrincipal writes 401 when the request carries no identity.
func requirePrincipal(w http.ResponseWriter, r *http.Request) (access.Principal, bool) {
	p, ok := principalFromContext(r.Context())
	if !ok || p.UserID == "" {
		writeError(w, requestIDFromRequest(r), http.StatusUnauthorized, "unauthorized", "missing token")
		return access.Principal{}, false
	}
	return p, true
}

func requestIDFromRequest(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get("X-Request-ID"))
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.Fields(header)
	if len(parts) != 2 {
		return ""
	}
	if strings.ToLower(parts[0]) != "bearer" {
		return ""
	}
	return parts[1]
}

func isPublicEndpoint(r *http.Request) bool {
	switch r.URL.Path {
	case "/healthz", "/metrics":
		return true
	case "/api/auth/signup", "/api/auth/login":
		return r.Method == http.MethodPost
	}
	if strings.HasPrefix(r.URL.Path, "/realtime/") {
		// The realtime handler authenticates the token itself.
		return true
	}
	return r.Method == http.MethodOptions
}
