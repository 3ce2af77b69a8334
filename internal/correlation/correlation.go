// Package correlation implements the pending-request map shared between
// the RPC outbound producer and inbound consumer.
package correlation

import (
	"sync"

	"github.com/wildlens/camtrap/internal/model"
)

// Map is a thread-safe uuid -> pending ExportFrame table. Contention is
// expected to be low; both sides hold the mutex only long enough to
// touch one entry.
type Map struct {
	mu      sync.Mutex
	pending map[string]model.ExportFrame
}

// New returns an empty Map.
func New() *Map {
	return &Map{pending: make(map[string]model.ExportFrame)}
}

// Insert records a pending ExportFrame under uuid.
func (m *Map) Insert(uuid string, frame model.ExportFrame) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending[uuid] = frame
}

// Take removes and returns the pending ExportFrame for uuid, if any.
func (m *Map) Take(uuid string) (model.ExportFrame, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	frame, ok := m.pending[uuid]
	if ok {
		delete(m.pending, uuid)
	}
	return frame, ok
}

// Len returns the number of entries still pending.
func (m *Map) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}
