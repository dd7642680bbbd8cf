package order

import (
	"time"

	"marketplace/internal/pkg/errs"
)

// StatusEntry is one element of the status history: the status tag and the
// moment it took effect.
type StatusEntry struct {
	Type Status
	Date time.Time
}

// StatusHistory is the append-only sequence of status entries of an order.
// The last entry is the authoritative current state; the rest is audit trail.
// History is never empty once the order exists.
type StatusHistory []StatusEntry

// NewStatusHistory creates a history with the given initial status.
func NewStatusHistory(initial Status) (StatusHistory, error) {
	if err := initial.Validate(); err != nil {
		return nil, err
	}
	return StatusHistory{{Type: initial, Date: time.Now().UTC()}}, nil
}

// RestoreStatusHistory validates a history loaded from persistence.
func RestoreStatusHistory(entries []StatusEntry) (StatusHistory, error) {
	if len(entries) == 0 {
		return nil, errs.NewValueIsRequiredError("status history")
	}
	for _, e := range entries {
		if err := e.Type.Validate(); err != nil {
			return nil, err
		}
	}
	return StatusHistory(entries), nil
}

// Current returns the authoritative current status: the last entry.
// Callers must use this accessor instead of indexing the slice.
func (h StatusHistory) Current() Status {
	if len(h) == 0 {
		return ""
	}
	return h[len(h)-1].Type
}

// Entries returns a copy of the history for projection into views.
func (h StatusHistory) Entries() []StatusEntry {
	out := make([]StatusEntry, len(h))
	copy(out, h)
	return out
}

// push appends a new entry stamped with the current time and returns the
// extended history. Only the Order aggregate appends; there is no removal.
func (h StatusHistory) push(status Status) StatusHistory {
	return append(h.Entries(), StatusEntry{Type: status, Date: time.Now().UTC()})
}
