package hfsmx

import "sync"

// Blackboard is a thread-safe key/value store suitable as the shared world
// snapshot for machine instances. Behaviors and transitions should treat it
// as read-only during an update and publish writes through the update sink
// instead, leaving it to the host to apply them between ticks.
type Blackboard struct {
	mu   sync.RWMutex
	data map[string]any
}

// NewBlackboard creates an empty blackboard.
func NewBlackboard() *Blackboard {
	return &Blackboard{
		data: make(map[string]any),
	}
}

// Get retrieves a value by key. Returns nil if the key does not exist.
func (b *Blackboard) Get(key string) any {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.data[key]
}

// Set stores a value by key.
func (b *Blackboard) Set(key string, value any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data[key] = value
}

// Delete removes a key from the blackboard.
func (b *Blackboard) Delete(key string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.data, key)
}

// Snapshot returns a defensive copy of all data, for serialization or
// inspection; modifications to the returned map do not affect the
// blackboard.
func (b *Blackboard) Snapshot() map[string]any {
	b.mu.RLock()
	defer b.mu.RUnlock()

	snapshot := make(map[string]any, len(b.data))
	for k, v := range b.data {
		snapshot[k] = v
	}
	return snapshot
}

// Load atomically replaces all data. This is useful for deserialization.
func (b *Blackboard) Load(data map[string]any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data = data
}
