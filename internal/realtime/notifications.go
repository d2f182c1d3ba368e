// internal/realtime/notifications.go
package realtime

import (
	"container/list"
	"sync"
	"time"

	rt "gracehub-service/internal/domain/realtime"
)

// DefaultNotificationCap bounds the local notification feed.
const DefaultNotificationCap = 50

// Notification is an ephemeral, locally generated record built from a
// pushed event. Never persisted.
type Notification struct {
	ID        int64        `json:"id"`
	Type      rt.EventType `json:"type"`
	Title     string       `json:"title"`
	Message   string       `json:"message"`
	Icon      string       `json:"icon"`
	Color     string       `json:"color"`
	Timestamp time.Time    `json:"timestamp"`
}

// NotificationBuffer is a prepend-only bounded feed: newest first, capped,
// with O(1) remove-by-id and O(1) clear-all.
type NotificationBuffer struct {
	mu     sync.Mutex
	cap    int
	order  *list.List // front = newest
	byID   map[int64]*list.Element
	lastID int64
}

func NewNotificationBuffer(capacity int) *NotificationBuffer {
	if capacity <= 0 {
		capacity = DefaultNotificationCap
	}
	return &NotificationBuffer{
		cap:   capacity,
		order: list.New(),
		byID:  make(map[int64]*list.Element),
	}
}

// Add prepends a notification, assigning it a monotonic time-based ID, and
// evicts the oldest entry past the cap. Returns the stored record.
func (b *NotificationBuffer) Add(n Notification) Notification {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := time.Now().UnixNano()
	if id <= b.lastID {
		id = b.lastID + 1
	}
	b.lastID = id
	n.ID = id
	if n.Timestamp.IsZero() {
		n.Timestamp = time.Now()
	}

	elem := b.order.PushFront(n)
	b.byID[id] = elem

	if b.order.Len() > b.cap {
		oldest := b.order.Back()
		b.order.Remove(oldest)
		delete(b.byID, oldest.Value.(Notification).ID)
	}

	return n
}

// Remove drops one notification by id.
func (b *NotificationBuffer) Remove(id int64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	elem, ok := b.byID[id]
	if !ok {
		return false
	}
	b.order.Remove(elem)
	delete(b.byID, id)
	return true
}

// Clear drops everything.
func (b *NotificationBuffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.order = list.New()
	b.byID = make(map[int64]*list.Element)
}

// All returns the feed newest first.
func (b *NotificationBuffer) All() []Notification {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]Notification, 0, b.order.Len())
	for e := b.order.Front(); e != nil; e = e.Next() {
		out = append(out, e.Value.(Notification))
	}
	return out
}

// Len reports the current feed size.
func (b *NotificationBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.order.Len()
}
