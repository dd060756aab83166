// Package realtime is the in-process push channel keyed by recipient id.
// Subscribers are SSE connections; publishers are the notification service.
package realtime

import "sync"

const EventUnreadCount = "unread_count_changed"

// Event is what subscribers receive.
type Event struct {
	Type        string `json:"type"`
	UnreadCount int64  `json:"unread_count"`
}

// Hub fans events out to every subscription of a user. Sends are
// non-blocking: a subscriber that stopped draining loses events rather than
// stalling the publisher.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[uint]map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{subscribers: make(map[uint]map[chan Event]struct{})}
}

// Subscribe registers a channel for userID. The returned cancel func must be
// called when the consumer goes away.
func (h *Hub) Subscribe(userID uint) (<-chan Event, func()) {
	ch := make(chan Event, 8)

	h.mu.Lock()
	if h.subscribers[userID] == nil {
		h.subscribers[userID] = make(map[chan Event]struct{})
	}
	h.subscribers[userID][ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if subs, ok := h.subscribers[userID]; ok {
			delete(subs, ch)
			if len(subs) == 0 {
				delete(h.subscribers, userID)
			}
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers ev to every active subscription of userID. No-op when the
// user has no subscribers.
func (h *Hub) Publish(userID uint, ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subscribers[userID] {
		select {
		case ch <- ev:
		default:
			// subscriber buffer full, drop
		}
	}
}
