package person

import "sync"

// EventType names a change to the store.
type EventType string

const (
	EventCreated EventType = "created"
	EventDeleted EventType = "deleted"
)

// Observer is notified after a record has been added or removed.
type Observer interface {
	Notify(kind EventType, p Person)
}

// Store exposes phonebook operations for HTTP handlers.
type Store interface {
	List() []Person
	Count() int
	Get(id int) (Person, error)
	Create(name, number string) (Person, error)
	Delete(id int)
}

// MemoryStore implements Store with an in-memory slice guarded by a mutex.
// Records keep their insertion order.
type MemoryStore struct {
	mu       sync.RWMutex
	items    []Person
	nextID   int
	observer Observer
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied records.
// Ids handed out by Create start after the largest preloaded id.
func NewMemoryStore(items []Person) *MemoryStore {
	next := 1
	for _, item := range items {
		if item.ID >= next {
			next = item.ID + 1
		}
	}
	return &MemoryStore{items: append([]Person(nil), items...), nextID: next}
}

// SetObserver registers o to receive change notifications. Passing nil disables them.
func (s *MemoryStore) SetObserver(o Observer) {
	s.mu.Lock()
	s.observer = o
	s.mu.Unlock()
}

// List returns a snapshot of every record.
func (s *MemoryStore) List() []Person {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append(make([]Person, 0, len(s.items)), s.items...)
}

// Count returns the number of records.
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Get looks up a record by identifier.
func (s *MemoryStore) Get(id int) (Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range s.items {
		if item.ID == id {
			return item, nil
		}
	}
	return Person{}, ErrNotFound
}

// Create validates the input, assigns a fresh id and appends the record.
func (s *MemoryStore) Create(name, number string) (Person, error) {
	if name == "" || number == "" {
		return Person{}, ErrMissingField
	}

	s.mu.Lock()
	for _, item := range s.items {
		if item.Name == name {
			s.mu.Unlock()
			return Person{}, ErrDuplicateName
		}
	}

	p := Person{ID: s.nextID, Name: name, Number: number}
	s.nextID++
	s.items = append(s.items, p)
	observer := s.observer
	s.mu.Unlock()

	if observer != nil {
		observer.Notify(EventCreated, p)
	}
	return p, nil
}

// Delete removes the record with the given id. Unknown ids are ignored.
func (s *MemoryStore) Delete(id int) {
	s.mu.Lock()
	var (
		removed Person
		found   bool
	)
	for i, item := range s.items {
		if item.ID == id {
			removed, found = item, true
			s.items = append(s.items[:i:i], s.items[i+1:]...)
			break
		}
	}
	observer := s.observer
	s.mu.Unlock()

	if found && observer != nil {
		observer.Notify(EventDeleted, removed)
	}
}
