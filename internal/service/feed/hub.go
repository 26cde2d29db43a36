package feed

import (
	"log"
	"sync"
	"time"

	"github.com/zhouzirui/phonebook/backend/internal/model/person"
)

const subscriberBuffer = 16

// Event describes a single change to the phonebook.
type Event struct {
	Type      person.EventType `json:"type"`
	Person    person.Person    `json:"person"`
	Timestamp int64            `json:"timestamp"`
}

// Hub fans store changes out to live subscribers.
type Hub struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan Event
}

// NewHub returns an empty Hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[int]chan Event)}
}

var _ person.Observer = (*Hub)(nil)

// Notify implements person.Observer.
func (h *Hub) Notify(kind person.EventType, p person.Person) {
	h.Publish(Event{Type: kind, Person: p, Timestamp: time.Now().UnixMilli()})
}

// Publish delivers ev to every subscriber without blocking.
// Subscribers that are not keeping up miss the event.
func (h *Hub) Publish(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, ch := range h.subs {
		select {
		case ch <- ev:
		default:
			log.Printf("[feed] subscriber %d is slow, dropping %s event", id, ev.Type)
		}
	}
}

// Subscribe registers a new subscriber. The returned cancel func must be
// called once the subscriber is done; it closes the channel.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++
	ch := make(chan Event, subscriberBuffer)
	h.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Subscribers reports how many subscribers are connected.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
