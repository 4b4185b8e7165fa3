package vigil

// historyRing is a bounded ring buffer of prior snapshots.
// It is confined to the owning Observer's goroutine and needs no locking.
type historyRing[V any] struct {
	slots []HistoryEntry[V]
	size  int
	head  int
	count int
}

// newHistoryRing creates a ring buffer with the given capacity.
// If size is 0 or negative, history is disabled and the ring is nil.
func newHistoryRing[V any](size int) *historyRing[V] {
	if size <= 0 {
		return nil
	}
	return &historyRing[V]{
		slots: make([]HistoryEntry[V], size),
		size:  size,
	}
}

// push adds a snapshot, overwriting the oldest once the ring is full.
func (r *historyRing[V]) push(e HistoryEntry[V]) {
	if r == nil {
		return
	}
	r.slots[r.head] = e
	r.head = (r.head + 1) % r.size
	if r.count < r.size {
		r.count++
	}
}

// entries returns the buffered snapshots most recent first.
// The result is a fresh slice; later pushes do not affect it.
func (r *historyRing[V]) entries() []HistoryEntry[V] {
	if r == nil || r.count == 0 {
		return nil
	}
	out := make([]HistoryEntry[V], r.count)
	for i := 0; i < r.count; i++ {
		out[i] = r.slots[(r.head-1-i+r.size)%r.size]
	}
	return out
}
