package websocket

import (
	"encoding/json"
	"sync"

	"yuktadhara-be/internal/dto"
	"yuktadhara-be/internal/pkg/logger"

	"github.com/google/uuid"
)

// Hub fans planner lifecycle events out to the browser tabs watching a
// planning session. Purely local: sessions never span instances.
type Hub struct {
	// Registered clients map: SessionID -> List of Clients (multi-tab)
	clients map[uuid.UUID][]*Client

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	logger logger.ILogger
}

func NewHub(log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		logger:     log,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.SessionID] = append(h.clients[client.SessionID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"session_id": client.SessionID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.SessionID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.SessionID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.SessionID]) == 0 {
					delete(h.clients, client.SessionID)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Notify implements service.PlannerEventNotifier: it delivers a planner
// event to every client watching the event's session.
func (h *Hub) Notify(event dto.PlannerEventMessage) {
	sessionID, err := uuid.Parse(event.SessionId)
	if err != nil {
		return
	}

	data, _ := json.Marshal(map[string]interface{}{
		"type": "planner_event",
		"data": event,
	})

	h.mu.RLock()
	clients, found := h.clients[sessionID]
	h.mu.RUnlock()
	if !found {
		return
	}

	for _, client := range clients {
		select {
		case client.Send <- data:
		default:
			h.logger.Warn("Hub", "Client Send buffer full, dropping message", map[string]interface{}{"session_id": sessionID})
			h.unregister <- client
		}
	}
}
