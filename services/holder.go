package services

import "sync/atomic"

// Holder publishes the current Snapshot. Readers take one pointer per request
// and see a consistent working set even while a reload swaps it.
type Holder struct {
	current atomic.Pointer[Snapshot]
}

func NewHolder(s *Snapshot) *Holder {
	h := &Holder{}
	if s != nil {
		h.current.Store(s)
	}
	return h
}

// Get returns the current snapshot, or nil before the first one is stored.
func (h *Holder) Get() *Snapshot {
	return h.current.Load()
}

func (h *Holder) Set(s *Snapshot) {
	h.current.Store(s)
}
