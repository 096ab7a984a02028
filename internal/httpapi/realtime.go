package httpapi

import (
	"net/http"
	"strings"

	"hrdash/internal/hub"

	"github.com/google/uuid"
	"github.com/igm/sockjs-go/sockjs"
)

// realtimeHandler pushes role.changed, leave.reviewed and attendance.updated
// events to the connections of the affected user. Clients authenticate with the
// same bearer token as the API, passed as ?token= when headers are not
// available.
func (h *Handler) realtimeHandler() http.Handler {
	return sockjs.NewHandler("/realtime", sockjs.DefaultOptions, func(session sockjs.Session) {
		req := session.Request()
		token := realtimeToken(req)
		if token == "" {
			_ = session.Close(4001, "missing token")
			return
		}
		claims, err := h.identity.Authenticate(req.Context(), token)
		if err != nil {
			_ = session.Close(4002, "invalid token")
			return
		}

		client := &hub.Client{ID: uuid.NewString(), UserID: claims.Subject, Send: make(chan []byte, 16)}
		h.hub.Register(client)
		defer h.hub.Unregister(client)
		h.log.Debug().Str("user_id", client.UserID).Str("client_id", client.ID).Msg("realtime connected")

		go func() {
			for msg := range client.Send {
				_ = session.Send(string(msg))
			}
		}()

		for {
			msg, err := session.Recv()
			if err != nil {
				return
			}
			parsed, ok := hub.ParseSubscribe([]byte(msg))
			if !ok {
				continue
			}
			if parsed.Action == "unsubscribe" {
				// Dropping the filter restores delivery of every event type.
				h.hub.UpdateSubscription(client, hub.Subscription{})
				continue
			}
			h.hub.UpdateSubscription(client, hub.Subscription{Events: parsed.Events})
		}
	})
}

func realtimeToken(r *http.Request) string {
	if r == nil {
		return ""
	}
	if token := bearerToken(r.Header.Get("Authorization")); token != "" {
		return token
	}
	return strings.TrimSpace(r.URL.Query().Get("token"))
}
