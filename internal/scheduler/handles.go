package scheduler

import "sync"

// Handles is an owned registry of timer IDs that are cancelled together.
// Whoever starts a group of timers keeps the Handles and passes it back to
// stop them; there is no package-level registry.
//
// Handles is safe for concurrent use. Clear detaches the current set before
// cancelling it, so an Add that races a Clear lands in the fresh set and is
// never lost.
type Handles struct {
	mu  sync.Mutex
	ids []TimerID
}

// Add records a timer ID. Zero IDs are ignored.
func (h *Handles) Add(id TimerID) {
	if id == 0 {
		return
	}
	h.mu.Lock()
	h.ids = append(h.ids, id)
	h.mu.Unlock()
}

// Len returns the number of tracked IDs.
func (h *Handles) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.ids)
}

// IDs returns a copy of the tracked IDs.
func (h *Handles) IDs() []TimerID {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]TimerID, len(h.ids))
	copy(out, h.ids)
	return out
}

// Clear cancels every tracked timer and empties the registry.
// Clearing an empty registry, or clearing twice, is a no-op.
func (h *Handles) Clear(c Canceler) {
	h.mu.Lock()
	ids := h.ids
	h.ids = nil
	h.mu.Unlock()

	if c == nil {
		return
	}
	for _, id := range ids {
		c.Cancel(id)
	}
}
