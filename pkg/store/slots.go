package store

import (
	"encoding/json"
	"sync"

	"github.com/peterbourgon/diskv/v3"
)

// Slot is a typed, key-addressed persistence primitive. Get reports
// absence for missing or unreadable values instead of erroring so
// callers can fall through to their next data source; Set failures are
// real (quota, disabled storage) and must reach the caller.
type Slot interface {
	Get(key string, v any) bool
	Set(key string, v any) error
	Delete(key string)
}

type diskvSlot struct {
	d *diskv.Diskv
}

// NewDiskSlot returns a durable Slot backed by the given diskv store.
func NewDiskSlot(d *diskv.Diskv) Slot {
	return &diskvSlot{d: d}
}

func (s *diskvSlot) Get(key string, v any) bool {
	data, err := s.d.Read(key)
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		// Corrupt payloads count as absent.
		return false
	}
	return true
}

func (s *diskvSlot) Set(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.d.Write(key, data)
}

func (s *diskvSlot) Delete(key string) {
	_ = s.d.Erase(key)
}

type memorySlot struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemorySlot returns a session-scoped Slot that lives for the life
// of the process, the terminal analogue of per-tab session storage.
func NewMemorySlot() Slot {
	return &memorySlot{values: make(map[string][]byte)}
}

func (s *memorySlot) Get(key string, v any) bool {
	s.mu.RLock()
	data, ok := s.values[key]
	s.mu.RUnlock()
	if !ok {
		return false
	}
	return json.Unmarshal(data, v) == nil
}

func (s *memorySlot) Set(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.values[key] = data
	s.mu.Unlock()
	return nil
}

func (s *memorySlot) Delete(key string) {
	s.mu.Lock()
	delete(s.values, key)
	s.mu.Unlock()
}
