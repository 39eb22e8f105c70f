package order

import (
	"sync"

	"github.com/asaskevich/EventBus"

	"github.com/glueckskekse/kasse/internal/catalog"
)

// TopicChanged is published after every cart mutation.
const TopicChanged = "order.changed"

// Session tracks per-product quantities for the customer currently at
// the till. Single writer; increment and decrement are atomic
// read-modify-write under the lock.
type Session struct {
	mu     sync.Mutex
	counts map[int64]int
	bus    EventBus.Bus
}

func NewSession(bus EventBus.Bus) *Session {
	return &Session{counts: make(map[int64]int), bus: bus}
}

// BindCatalog subscribes the session to catalog changes so entries for
// deleted products are pruned automatically.
func (s *Session) BindCatalog(bus EventBus.Bus) error {
	return bus.Subscribe(catalog.TopicChanged, s.PruneMissing)
}

// Increment raises the quantity by one, creating the entry at 1.
func (s *Session) Increment(productID int64) int {
	s.mu.Lock()
	s.counts[productID]++
	qty := s.counts[productID]
	s.mu.Unlock()
	s.publish()
	return qty
}

// Decrement lowers the quantity by one, never below zero. Decrementing
// an absent or zero entry is a no-op.
func (s *Session) Decrement(productID int64) int {
	s.mu.Lock()
	qty := s.counts[productID]
	if qty > 0 {
		qty--
		if qty == 0 {
			delete(s.counts, productID)
		} else {
			s.counts[productID] = qty
		}
	}
	s.mu.Unlock()
	s.publish()
	return qty
}

// Quantity returns the current count for a product; absent entries are
// quantity zero.
func (s *Session) Quantity(productID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[productID]
}

// Reset clears the cart for the next customer.
func (s *Session) Reset() {
	s.mu.Lock()
	s.counts = make(map[int64]int)
	s.mu.Unlock()
	s.publish()
}

// PruneMissing drops entries whose product id is no longer in the
// catalog, so the cart never references a ghost product.
func (s *Session) PruneMissing(valid map[int64]struct{}) {
	s.mu.Lock()
	for id := range s.counts {
		if _, ok := valid[id]; !ok {
			delete(s.counts, id)
		}
	}
	s.mu.Unlock()
}

// Snapshot returns a copy of the cart, safe to hand across component
// boundaries.
func (s *Session) Snapshot() map[int64]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[int64]int, len(s.counts))
	for id, qty := range s.counts {
		out[id] = qty
	}
	return out
}

func (s *Session) publish() {
	if s.bus != nil {
		s.bus.Publish(TopicChanged)
	}
}
