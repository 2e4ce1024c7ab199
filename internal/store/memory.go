package store

import (
	"bytes"
	"sync"
)

// MemoryHub is an in-process backing map shared by MemoryStores.
// Every store opened on the same hub behaves like a separate window.
type MemoryHub struct {
	mu     sync.Mutex
	data   map[Key][]byte
	stores []*MemoryStore
}

// NewMemoryHub creates an empty hub
func NewMemoryHub() *MemoryHub {
	return &MemoryHub{data: make(map[Key][]byte)}
}

// Open returns a new store instance on the hub
func (h *MemoryHub) Open() *MemoryStore {
	h.mu.Lock()
	defer h.mu.Unlock()
	s := &MemoryStore{hub: h}
	h.stores = append(h.stores, s)
	return s
}

// MemoryStore is one window's view of a MemoryHub
type MemoryStore struct {
	hub       *MemoryHub
	observers observers
}

// Get implements Store
func (s *MemoryStore) Get(key Key) ([]byte, error) {
	s.hub.mu.Lock()
	defer s.hub.mu.Unlock()
	value, ok := s.hub.data[key]
	if !ok {
		return nil, nil
	}
	return bytes.Clone(value), nil
}

// Put implements Store
func (s *MemoryStore) Put(key Key, value []byte) error {
	value = bytes.Clone(value)

	s.hub.mu.Lock()
	previous, existed := s.hub.data[key]
	s.hub.data[key] = value
	var others []*MemoryStore
	if !existed || !bytes.Equal(previous, value) {
		for _, other := range s.hub.stores {
			if other != s {
				others = append(others, other)
			}
		}
	}
	s.hub.mu.Unlock()

	for _, other := range others {
		other.observers.emit(Change{Key: key, Value: bytes.Clone(value)})
	}
	return nil
}

// Subscribe implements Store
func (s *MemoryStore) Subscribe(buffer int) <-chan Change {
	return s.observers.subscribe(buffer)
}

// Close detaches the store from the hub
func (s *MemoryStore) Close() error {
	s.hub.mu.Lock()
	for i, other := range s.hub.stores {
		if other == s {
			s.hub.stores = append(s.hub.stores[:i], s.hub.stores[i+1:]...)
			break
		}
	}
	s.hub.mu.Unlock()
	s.observers.close()
	return nil
}
