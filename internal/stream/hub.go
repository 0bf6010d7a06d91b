// Package stream fans freshly computed dashboard views out to websocket
// subscribers. It is a refresh notification channel, not shared state:
// subscribers refetch or render what they receive, nothing is negotiated back.
package stream

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"dealflow/internal/engine"
)

type Hub struct {
	mu     sync.RWMutex
	subs   map[*Subscriber]struct{}
	logger *zap.Logger

	droppedFanout uint64
}

type Subscriber struct {
	ch chan *engine.AggregateView
}

func (s *Subscriber) C() <-chan *engine.AggregateView {
	return s.ch
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		subs:   map[*Subscriber]struct{}{},
		logger: logger,
	}
}

func (h *Hub) Subscribe(buf int) *Subscriber {
	if buf <= 0 {
		buf = 4
	}
	sub := &Subscriber{ch: make(chan *engine.AggregateView, buf)}
	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()
	return sub
}

func (h *Hub) Unsubscribe(sub *Subscriber) {
	if h == nil || sub == nil {
		return
	}
	h.mu.Lock()
	delete(h.subs, sub)
	h.mu.Unlock()
}

// Publish delivers the view to every subscriber without blocking; a
// subscriber with a full buffer misses this update and catches up on the
// next one.
func (h *Hub) Publish(view *engine.AggregateView) {
	if h == nil || view == nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subs {
		select {
		case sub.ch <- view:
		default:
			dropped := atomic.AddUint64(&h.droppedFanout, 1)
			if h.logger != nil && dropped%100 == 1 {
				h.logger.Debug("slow dashboard subscriber, update dropped",
					zap.Uint64("dropped_total", dropped))
			}
		}
	}
}

func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
