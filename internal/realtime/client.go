// internal/realtime/client.go
package realtime

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	rt "gracehub-service/internal/domain/realtime"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024 // 64KB
)

// ClientAuth holds the identity established at upgrade time.
type ClientAuth struct {
	AdminID     string
	Role        string
	Permissions []string
}

// Client is one server-side websocket connection.
type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	adminID string
	role    string
	name    string // learned from join-admin
	joined  bool   // guarded by hub.mu

	closeOnce sync.Once

	ctx    context.Context
	cancel context.CancelFunc
}

func NewClient(hub *Hub, conn *websocket.Conn, auth *ClientAuth) *Client {
	ctx, cancel := context.WithCancel(context.Background())

	return &Client{
		hub:     hub,
		conn:    conn,
		send:    make(chan []byte, 256),
		adminID: auth.AdminID,
		role:    auth.Role,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// ReadPump handles incoming messages from the client.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
			_, message, err := c.conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					c.hub.logger.Warn("websocket read error", zap.Error(err))
				}
				return
			}

			c.handleMessage(message)
		}
	}
}

// WritePump handles outgoing messages to the client.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.ctx.Done():
			return
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) handleMessage(data []byte) {
	msg, err := rt.ParseMessage(data)
	if err != nil {
		c.SendError("invalid_message", "failed to parse message")
		return
	}

	switch msg.Event {
	case rt.EventPing:
		c.SendEvent(rt.EventPong, nil)

	case rt.EventJoinAdmin:
		var join rt.JoinAdmin
		if err := json.Unmarshal(msg.Data, &join); err != nil {
			c.SendError("invalid_join", "failed to parse join-admin payload")
			return
		}
		// The announced identity must match the token's.
		if join.AdminID != c.adminID {
			c.SendError("identity_mismatch", "join-admin identity does not match token")
			return
		}
		c.hub.handleJoin(c, join)

	default:
		// Clients have no other server-bound events; ignore quietly.
	}
}

// SendMessage queues a message for the client.
func (c *Client) SendMessage(msg *rt.Message) {
	data, err := msg.ToJSON()
	if err != nil {
		c.hub.logger.Error("failed to marshal message", zap.Error(err))
		return
	}

	select {
	case c.send <- data:
	case <-c.ctx.Done():
	default:
		// Send buffer full; drop the slow client.
		c.hub.unregister <- c
	}
}

// SendEvent builds and queues a message in one step.
func (c *Client) SendEvent(event rt.EventType, data interface{}) {
	msg, err := rt.NewMessage(event, data)
	if err != nil {
		c.hub.logger.Error("failed to encode event", zap.String("event", string(event)), zap.Error(err))
		return
	}
	c.SendMessage(msg)
}

// SendError sends an error event to the client.
func (c *Client) SendError(code, message string) {
	c.SendEvent(rt.EventError, rt.ErrorData{Code: code, Message: message})
}

// Close tears the connection down once.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		c.cancel()
		close(c.send)
	})
}
