package gateway

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// wsConn adapts a gorilla/websocket connection to the Hub's Conn interface,
// grounded on bly3-TexasHoldEmGroupK's connection/server.go hub-per-table
// pattern (the teacher's own transport is gRPC streams backed by a
// generated package absent from the retrieval pack — see DESIGN.md).
type wsConn struct {
	id   string
	conn *websocket.Conn
	send chan OutboundMessage
	done chan struct{}
}

func newWSConn(conn *websocket.Conn) *wsConn {
	return &wsConn{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan OutboundMessage, 64),
		done: make(chan struct{}),
	}
}

func (c *wsConn) ID() string { return c.id }

func (c *wsConn) Send(msg OutboundMessage) {
	select {
	case c.send <- msg:
	case <-c.done:
	default:
		// Slow consumer: drop rather than block the broadcasting goroutine.
		// A later SYNC_STATE carries a higher stateVersion and supersedes
		// whatever was dropped.
	}
}

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

func (c *wsConn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	defer c.conn.Close()

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				return
			}
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			b, err := json.Marshal(msg)
			if err != nil {
				continue
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, b); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

func (c *wsConn) readPump(h *Hub) {
	defer close(c.done)
	defer h.Unregister(c.id)
	defer c.conn.Close()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		h.HandleInbound(c.id, raw)
	}
}

// upgrader has permissive origin checking, matching the teacher pack's own
// bly3-TexasHoldEmGroupK websocket server (origin policy is left to a
// reverse proxy in front of this process).
var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ServeHTTP upgrades an incoming HTTP request to a websocket connection and
// registers it with the hub.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	wc := newWSConn(conn)
	h.Register(wc)
	go wc.writePump()
	wc.readPump(h)
}
