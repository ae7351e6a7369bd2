// Package store fans out change notifications for the record collections so
// live views can re-read their snapshot after every write.
package store

import "sync"

// Collection names, shared with the sqlite tables that back them.
const (
	VendorProfiles   = "vendor_profiles"
	SupplierProfiles = "supplier_profiles"
	VendorNeeds      = "need_lines"
	Inventory        = "inventory_items"
	SupplierOffers   = "supplier_offers"
)

// Event says that the document Key in Collection changed. Owner is the user id
// the document belongs to, when the writer knows it.
type Event struct {
	Collection string
	Key        string
	Owner      string
}

// Filter narrows the events a subscriber is woken for. nil accepts everything.
type Filter func(Event) bool

type Subscription struct {
	C <-chan Event

	ch         chan Event
	hub        *Hub
	id         uint64
	collection string
	filter     Filter
	once       sync.Once
}

// Unsubscribe stops delivery and closes C. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		s.hub.remove(s)
		close(s.ch)
	})
}

type Hub struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[string]map[uint64]*Subscription
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[uint64]*Subscription)}
}

// Subscribe registers interest in one collection.
func (h *Hub) Subscribe(collection string, filter Filter) *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	// One slot is enough: a waiting event already means "re-read the snapshot".
	ch := make(chan Event, 1)
	s := &Subscription{C: ch, ch: ch, hub: h, id: h.nextID, collection: collection, filter: filter}
	if h.subs[collection] == nil {
		h.subs[collection] = make(map[uint64]*Subscription)
	}
	h.subs[collection][s.id] = s
	return s
}

func (h *Hub) remove(s *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs[s.collection], s.id)
}

// Publish notifies every matching subscriber without blocking the writer.
func (h *Hub) Publish(collection, key, owner string) {
	ev := Event{Collection: collection, Key: key, Owner: owner}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, s := range h.subs[collection] {
		if s.filter != nil && !s.filter(ev) {
			continue
		}
		select {
		case s.ch <- ev:
		default:
		}
	}
}

// Subscribers reports how many live subscriptions a collection has.
func (h *Hub) Subscribers(collection string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[collection])
}
