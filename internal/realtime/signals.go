// internal/realtime/signals.go
package realtime

import (
	"sync"

	rt "gracehub-service/internal/domain/realtime"
)

// SignalBus republishes bare refresh-* signals to whoever renders the
// matching data. The channel knows nothing about the views' fetch logic;
// views know nothing about the wire.
type SignalBus struct {
	mu     sync.Mutex
	nextID int
	subs   map[rt.EventType]map[int]func()
}

func NewSignalBus() *SignalBus {
	return &SignalBus{subs: make(map[rt.EventType]map[int]func())}
}

// Subscribe registers a callback for one signal. The returned function
// cancels the subscription.
func (b *SignalBus) Subscribe(signal rt.EventType, fn func()) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.subs[signal] == nil {
		b.subs[signal] = make(map[int]func())
	}
	id := b.nextID
	b.nextID++
	b.subs[signal][id] = fn

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs[signal], id)
	}
}

// Publish invokes every subscriber of the signal.
func (b *SignalBus) Publish(signal rt.EventType) {
	b.mu.Lock()
	fns := make([]func(), 0, len(b.subs[signal]))
	for _, fn := range b.subs[signal] {
		fns = append(fns, fn)
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
