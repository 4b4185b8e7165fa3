package vigil

import "time"

// HistoryEntry is a frozen prior snapshot carried on a ChangeEvent.
type HistoryEntry[V any] struct {
	// Value is the previously recorded value.
	Value V

	// ChangeTime is the time the value was recorded.
	ChangeTime time.Time
}

// ChangeEvent describes a detected change. It is passed to the callback on
// each delivery and carries a bounded trailing history of prior snapshots.
type ChangeEvent[V any] struct {
	// Value is the newly sampled value.
	Value V

	// ChangeTime is the time the change was detected, which is the time of
	// the Update call rather than when the underlying value actually moved.
	ChangeTime time.Time

	history []HistoryEntry[V]
}

// History returns the prior snapshots, most recent first, up to the
// configured history depth. The entry at index 0 is the value immediately
// preceding this event's value.
//
// The returned slice is a copy on every call; mutating it never affects
// the event or any later event.
func (e *ChangeEvent[V]) History() []HistoryEntry[V] {
	if len(e.history) == 0 {
		return nil
	}
	out := make([]HistoryEntry[V], len(e.history))
	copy(out, e.history)
	return out
}

// HistoryLen returns the number of prior snapshots on the event.
func (e *ChangeEvent[V]) HistoryLen() int {
	return len(e.history)
}
