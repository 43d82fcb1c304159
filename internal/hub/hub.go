package hub

import "sync"

// Client is the interface the hub expects from a connected transport.
type Client interface {
	Send(data []byte)
}

// Hub fans payloads out to the clients subscribed to a room. It routes only;
// membership and cached state belong to the registry. Delivery is
// at-most-once per currently-subscribed client, with no queuing or retry for
// clients that unsubscribe between dispatch and delivery.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[Client]bool
}

// New creates an empty Hub.
func New() *Hub {
	return &Hub{rooms: make(map[string]map[Client]bool)}
}

// Subscribe attaches c to roomID's fan-out set.
func (h *Hub) Subscribe(roomID string, c Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	clients, ok := h.rooms[roomID]
	if !ok {
		clients = make(map[Client]bool)
		h.rooms[roomID] = clients
	}
	clients[c] = true
}

// Unsubscribe detaches c from roomID. Empty fan-out sets are dropped; the
// registry, not the hub, carries room existence.
func (h *Hub) Unsubscribe(roomID string, c Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	clients, ok := h.rooms[roomID]
	if !ok {
		return
	}
	delete(clients, c)
	if len(clients) == 0 {
		delete(h.rooms, roomID)
	}
}

// Broadcast delivers data to every client subscribed to roomID.
func (h *Hub) Broadcast(roomID string, data []byte) {
	h.BroadcastExcept(roomID, data, nil)
}

// BroadcastExcept delivers data to every client subscribed to roomID except
// skip. A nil skip excludes nobody.
func (h *Hub) BroadcastExcept(roomID string, data []byte, skip Client) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.rooms[roomID] {
		if c == skip {
			continue
		}
		c.Send(data)
	}
}

// SubscriberCount returns the number of clients attached to roomID.
func (h *Hub) SubscriberCount(roomID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomID])
}
