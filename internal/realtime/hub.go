// internal/realtime/hub.go
package realtime

import (
	"context"
	"sync"

	rt "gracehub-service/internal/domain/realtime"
	"gracehub-service/internal/pkg/jwt"

	"go.uber.org/zap"
)

// Hub fans server events out to connected admin clients. Clients become
// eligible for room traffic only after announcing themselves with a
// join-admin message.
type Hub struct {
	clients map[string]map[*Client]bool // by admin ID
	mu      sync.RWMutex

	Register   chan *Client
	unregister chan *Client

	broadcast chan *rt.Message

	jwtVerifier *jwt.Verifier
	logger      *zap.Logger
}

func NewHub(jwtVerifier *jwt.Verifier, logger *zap.Logger) *Hub {
	return &Hub{
		clients:     make(map[string]map[*Client]bool),
		Register:    make(chan *Client),
		unregister:  make(chan *Client),
		broadcast:   make(chan *rt.Message, 256),
		jwtVerifier: jwtVerifier,
		logger:      logger,
	}
}

// AuthenticateClient validates the access token presented at upgrade time.
func (h *Hub) AuthenticateClient(ctx context.Context, token string) (*ClientAuth, error) {
	claims, err := h.jwtVerifier.VerifyAccessToken(token)
	if err != nil {
		return nil, err
	}

	return &ClientAuth{
		AdminID:     claims.AdminID,
		Role:        claims.Role,
		Permissions: claims.Permissions,
	}, nil
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case client := <-h.Register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case msg := <-h.broadcast:
			h.deliver(msg, "")
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[client.adminID] == nil {
		h.clients[client.adminID] = make(map[*Client]bool)
	}
	h.clients[client.adminID][client] = true

	h.logger.Info("realtime client connected",
		zap.String("admin_id", client.adminID),
		zap.Int("total", h.totalLocked()),
	)

	client.SendEvent(rt.EventConnected, map[string]interface{}{
		"admin_id": client.adminID,
		"role":     client.role,
	})
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	joined := client.joined
	if clients, ok := h.clients[client.adminID]; ok {
		if _, exists := clients[client]; exists {
			delete(clients, client)
			client.Close()
			if len(clients) == 0 {
				delete(h.clients, client.adminID)
			}
			h.logger.Info("realtime client disconnected",
				zap.String("admin_id", client.adminID),
				zap.Int("total", h.totalLocked()),
			)
		}
	}
	h.mu.Unlock()

	// A joined admin leaving is announced to the rest of the room.
	if joined {
		h.BroadcastExcept(client.adminID, rt.EventAdminLogout, rt.Presence{
			AdminID: client.adminID,
			Name:    client.name,
			Role:    client.role,
		})
	}
}

// handleJoin processes a join-admin announcement and tells the room.
func (h *Hub) handleJoin(client *Client, join rt.JoinAdmin) {
	h.mu.Lock()
	client.joined = true
	client.name = join.Name
	h.mu.Unlock()

	h.logger.Info("admin joined realtime room",
		zap.String("admin_id", join.AdminID),
		zap.String("name", join.Name),
		zap.String("role", join.Role),
	)

	h.BroadcastExcept(client.adminID, rt.EventAdminLogin, rt.Presence{
		AdminID: join.AdminID,
		Name:    join.Name,
		Role:    join.Role,
	})
}

// Broadcast queues an event for every joined client.
func (h *Hub) Broadcast(event rt.EventType, data interface{}) {
	msg, err := rt.NewMessage(event, data)
	if err != nil {
		h.logger.Error("failed to encode broadcast", zap.String("event", string(event)), zap.Error(err))
		return
	}

	select {
	case h.broadcast <- msg:
	default:
		h.logger.Warn("broadcast queue full, dropping event", zap.String("event", string(event)))
	}
}

// BroadcastRefresh queues bare staleness signals for every joined client.
func (h *Hub) BroadcastRefresh(signals ...rt.EventType) {
	for _, sig := range signals {
		h.Broadcast(sig, nil)
	}
}

// BroadcastExcept delivers an event to every joined client except the
// named admin's own connections.
func (h *Hub) BroadcastExcept(adminID string, event rt.EventType, data interface{}) {
	msg, err := rt.NewMessage(event, data)
	if err != nil {
		h.logger.Error("failed to encode broadcast", zap.String("event", string(event)), zap.Error(err))
		return
	}
	h.deliver(msg, adminID)
}

func (h *Hub) deliver(msg *rt.Message, skipAdminID string) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for adminID, clients := range h.clients {
		if skipAdminID != "" && adminID == skipAdminID {
			continue
		}
		for client := range clients {
			if client.joined {
				client.SendMessage(msg)
			}
		}
	}
}

// TotalClients reports the number of live connections.
func (h *Hub) TotalClients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.totalLocked()
}

func (h *Hub) totalLocked() int {
	total := 0
	for _, clients := range h.clients {
		total += len(clients)
	}
	return total
}

func (h *Hub) shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, clients := range h.clients {
		for client := range clients {
			client.Close()
		}
	}
	h.clients = make(map[string]map[*Client]bool)
}
