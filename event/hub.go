package event

import "sync"

// Hub fans events of type T out to subscribed sinks. Dispatch walks a
// snapshot of the sink list taken under the lock, then delivers
// synchronously outside it, so a sink may cancel subscriptions (its
// own included) without deadlocking. A sink subscribed during a
// dispatch first sees the next event; a sink canceled during a
// dispatch may still receive the in-flight one.
type Hub[T any] struct {
	mu     sync.RWMutex
	nextID uint64
	sinks  []sinkEntry[T]
}

type sinkEntry[T any] struct {
	id   uint64
	sink func(T)
}

// NewHub creates an empty hub.
func NewHub[T any]() *Hub[T] {
	return &Hub[T]{}
}

// Subscribe registers a sink and returns its cancellation handle.
// Sinks fire in subscription order. A nil sink is ignored and yields
// a handle whose Cancel is a no-op.
func (h *Hub[T]) Subscribe(sink func(T)) *Subscription[T] {
	if sink == nil {
		return &Subscription[T]{}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	h.sinks = append(h.sinks, sinkEntry[T]{id: h.nextID, sink: sink})
	return &Subscription[T]{hub: h, id: h.nextID}
}

// Dispatch delivers ev to every subscribed sink, in order, on the
// caller's goroutine. Delivery is fully synchronous: Dispatch returns
// only after the last sink has.
func (h *Hub[T]) Dispatch(ev T) {
	h.mu.RLock()
	snapshot := make([]sinkEntry[T], len(h.sinks))
	copy(snapshot, h.sinks)
	h.mu.RUnlock()

	for _, e := range snapshot {
		e.sink(ev)
	}
}

// Len reports the number of live subscriptions.
func (h *Hub[T]) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sinks)
}

// Subscription detaches its sink when canceled. The zero value is a
// valid dead handle.
type Subscription[T any] struct {
	hub *Hub[T]
	id  uint64
}

// Cancel removes the sink from its hub. Calling Cancel twice, or on a
// dead handle, is harmless.
func (s *Subscription[T]) Cancel() {
	h := s.hub
	if h == nil {
		return
	}
	s.hub = nil

	h.mu.Lock()
	defer h.mu.Unlock()
	for i, e := range h.sinks {
		if e.id == s.id {
			h.sinks = append(h.sinks[:i], h.sinks[i+1:]...)
			break
		}
	}
}
