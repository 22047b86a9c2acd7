package ws

import (
	"net/http"
	"time"

	"drawit/internal/game"
	"drawit/internal/transport/rest/middleware"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024

	frameRate  = 120
	frameBurst = 240
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for dev
	},
}

// Handler upgrades game connections and pumps frames to the dispatcher
type Handler struct {
	registry   *game.Registry
	dispatcher *game.Dispatcher
	log        zerolog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(registry *game.Registry, dispatcher *game.Dispatcher, log zerolog.Logger) *Handler {
	return &Handler{
		registry:   registry,
		dispatcher: dispatcher,
		log:        log,
	}
}

// Draw handles GET /ws/draw. The session middleware has already resolved the client id.
func (h *Handler) Draw(w http.ResponseWriter, r *http.Request) {
	clientID := middleware.GetClientID(r.Context())
	if clientID == "" {
		http.Error(w, "missing client id", http.StatusUnauthorized)
		return
	}

	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Str("client", clientID).Msg("websocket upgrade failed")
		return
	}

	conn := NewConnection(clientID)
	h.log.Info().
		Str("client", clientID).
		Str("session", middleware.GetSessionID(r.Context())).
		Msg("client connected")

	go h.writePump(wsConn, conn)
	go h.readPump(wsConn, conn)
}

func (h *Handler) readPump(wsConn *websocket.Conn, conn *Connection) {
	defer func() {
		h.registry.PlayerLeft(conn.ClientID, false)
		conn.Close()
		wsConn.Close()
		h.log.Info().Str("client", conn.ClientID).Msg("client disconnected")
	}()

	wsConn.SetReadLimit(maxMessageSize)
	wsConn.SetReadDeadline(time.Now().Add(pongWait))
	wsConn.SetPongHandler(func(string) error {
		wsConn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	limiter := rate.NewLimiter(frameRate, frameBurst)
	for {
		_, frame, err := wsConn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.Warn().Err(err).Str("client", conn.ClientID).Msg("websocket read error")
			}
			return
		}
		if !limiter.Allow() {
			h.log.Debug().Str("client", conn.ClientID).Msg("frame rate exceeded, dropping frame")
			continue
		}
		h.dispatcher.Dispatch(conn.ClientID, conn, frame)
	}
}

func (h *Handler) writePump(wsConn *websocket.Conn, conn *Connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		wsConn.Close()
	}()

	for {
		select {
		case message, ok := <-conn.send:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				wsConn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := wsConn.WriteMessage(websocket.TextMessage, message); err != nil {
				conn.Close()
				return
			}

		case <-ticker.C:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := wsConn.WriteMessage(websocket.PingMessage, nil); err != nil {
				conn.Close()
				return
			}
		}
	}
}
