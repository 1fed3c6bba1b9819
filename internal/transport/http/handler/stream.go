package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/propositos-api/internal/application/notification"
	jwtinfra "github.com/propositos-api/internal/infrastructure/jwt"
)

const (
	streamWriteWait  = 10 * time.Second
	streamPongWait   = 60 * time.Second
	streamPingPeriod = (streamPongWait * 9) / 10
)

// Origin filtering happens at the proxy; the upgrade itself only requires
// a valid token.
var streamUpgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// StreamHandler pushes feed snapshots to connected clients over a websocket.
// Browsers cannot set headers on websocket connects, so the access token
// rides in the query string instead of the Authorization header.
type StreamHandler struct {
	svc notification.Service
	jwt *jwtinfra.Provider
}

func NewStreamHandler(svc notification.Service, jwt *jwtinfra.Provider) *StreamHandler {
	return &StreamHandler{svc: svc, jwt: jwt}
}

func (h *StreamHandler) Stream(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		writeError(w, http.StatusUnauthorized, "token required")
		return
	}
	claims, err := h.jwt.Verify(token)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid token")
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Open the feed before upgrading so a failure still yields a plain
	// HTTP error the client can read.
	feeds, err := h.svc.Stream(ctx, claims.UserID)
	if err != nil {
		httpError(w, err)
		return
	}

	conn, err := streamUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(streamPongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(streamPongWait))
		return nil
	})

	// The client never sends application data; the read loop keeps pong
	// handling alive and notices when the peer goes away.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(streamPingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case feed, ok := <-feeds:
			if !ok {
				conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
				conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "stream ended"))
				return
			}
			conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if err := conn.WriteJSON(feed); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
