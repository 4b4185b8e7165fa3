// Package vigil provides reactive change-detection observers.
//
// The core type is Observer, which samples a value through an accessor each
// time Update is called and delivers a ChangeEvent to application code
// exactly when the sampled value differs from the last recorded snapshot.
//
// # Observer
//
// An Observer is purely reactive: it never polls on its own. An external
// driver decides the cadence and calls Update:
//
//	Update → sample → compare → commit snapshot → deliver event
//
// If the comparator reports no change, Update is a complete no-op: no
// callback, no mutation, no timestamp refresh.
//
// # Lifecycle
//
// Construction is pure. Calling Start samples the accessor once and seeds
// the initial snapshot; skipping Start defers seeding to the first Update
// call. By default the first recorded snapshot is silent; WithSeedEvent
// delivers it to the callback as a change with empty history.
//
// # Commit ordering
//
// The new snapshot is committed before the callback runs. A re-entrant
// Update from inside the callback therefore observes the new snapshot and
// cannot fire a second time for the same value. If the callback returns an
// error, the snapshot stays committed; the error is returned from Update
// and recorded via LastError.
//
// # Comparators
//
// The default comparator is structural (reflect.DeepEqual). Note that if
// the accessor returns the same mutable value it returned last time (the
// same slice or map), in-place mutation is invisible to any comparator,
// because the stored snapshot aliases the current value. Have the accessor
// return a copy, or supply a comparator over an independent representation.
//
// # Registries and drivers
//
// Registry fans Update calls out across many tagged observers of
// heterogeneous value types. ChannelDriver, TickerDriver, and FileDriver
// are ready-made external drivers that call Update on a schedule.
//
// # Example
//
//	obs := vigil.New(
//	    func() int { return store.ActiveSessions() },
//	    func(ctx context.Context, ev *vigil.ChangeEvent[int]) error {
//	        log.Printf("sessions: %d (was %v)", ev.Value, ev.History())
//	        return nil
//	    },
//	    vigil.WithHistory(4),
//	)
//
//	if err := obs.Start(ctx); err != nil {
//	    log.Printf("seed failed: %v", err)
//	}
//
//	// later, once per poll cycle:
//	_ = obs.Update(ctx)
package vigil

import (
	"context"
	"fmt"
	"reflect"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"
	"github.com/zoobzio/pipz"
)

// callbackID names the terminal pipeline stage that invokes the user callback.
const callbackID = "vigil:callback"

// Comparator reports whether the newly sampled value counts as changed
// relative to the previous one. It returns true when the value changed.
type Comparator[V any] func(prev, curr V) bool

// Callback receives a ChangeEvent each time a change is detected.
// It is invoked synchronously from within Update; an error aborts delivery
// middleware and is returned from Update, but the snapshot stays committed.
type Callback[V any] func(ctx context.Context, ev *ChangeEvent[V]) error

// Observer samples a value on demand and invokes a callback exactly when
// the sampled value differs from the previously recorded snapshot.
//
// An Observer is not safe for concurrent use. All operations are
// synchronous and expected to run from a single driving goroutine.
type Observer[V any] struct {
	accessor   func() V
	comparator Comparator[V]
	pipeline   pipz.Chainable[*ChangeEvent[V]]
	tag        string
	seedEvent  bool
	clock      clockz.Clock
	metrics    MetricsProvider
	history    *historyRing[V]

	seeded    bool
	current   V
	changedAt time.Time

	lastError atomic.Pointer[error]
}

// New creates an Observer for the given accessor and callback.
//
// Construction performs no sampling. Call Start to seed the initial
// snapshot eagerly, or call Update directly to seed lazily on first use.
//
// Options configure comparison, history depth, the registry tag, and the
// delivery pipeline:
//
//	obs := vigil.New(
//	    readCursor,
//	    onCursorMoved,
//	    vigil.WithComparator(func(prev, curr Cursor) bool {
//	        return prev.Line != curr.Line || prev.Col != curr.Col
//	    }),
//	    vigil.WithHistory(8),
//	    vigil.WithRetry[Cursor](3),
//	)
func New[V any](accessor func() V, fn Callback[V], opts ...Option[V]) *Observer[V] {
	s := newSettings[V]()
	for _, opt := range opts {
		opt(&s)
	}

	terminal := pipz.Effect(callbackID, func(ctx context.Context, ev *ChangeEvent[V]) error {
		return fn(ctx, ev)
	})

	return &Observer[V]{
		accessor:   accessor,
		comparator: s.comparator,
		pipeline:   buildPipeline(terminal, s.wrappers),
		tag:        s.tag,
		seedEvent:  s.seedEvent,
		clock:      s.clock,
		metrics:    s.metrics,
		history:    newHistoryRing[V](s.historyLen),
	}
}

// Tag returns the observer's registry tag. If none was configured via
// WithTag, this is an opaque generated handle unique to the observer.
func (o *Observer[V]) Tag() string {
	return o.tag
}

// Seeded reports whether an initial snapshot has been recorded.
func (o *Observer[V]) Seeded() bool {
	return o.seeded
}

// Current returns the current snapshot value and true, or the zero value
// and false if no snapshot has been recorded yet.
func (o *Observer[V]) Current() (V, bool) {
	if !o.seeded {
		var zero V
		return zero, false
	}
	return o.current, true
}

// LastChange returns the time the current snapshot was recorded and true,
// or the zero time and false if no snapshot has been recorded yet.
func (o *Observer[V]) LastChange() (time.Time, bool) {
	if !o.seeded {
		return time.Time{}, false
	}
	return o.changedAt, true
}

// LastError returns the error from the most recent failed delivery, or nil
// if the last delivery succeeded or none has run.
func (o *Observer[V]) LastError() error {
	ptr := o.lastError.Load()
	if ptr == nil {
		return nil
	}
	return *ptr
}

// Start samples the accessor once and seeds the initial snapshot. If
// WithSeedEvent is configured, the seed is delivered to the callback as a
// change with empty history and Start returns any delivery error.
//
// Start on an already-seeded observer is a no-op returning nil, so it is
// safe to call once per entry when starting a whole registry.
func (o *Observer[V]) Start(ctx context.Context) error {
	if o.seeded {
		return nil
	}
	return o.commit(ctx, o.accessor())
}

// Update samples the accessor and, if the value changed per the comparator
// (or no snapshot exists yet), commits a new snapshot and delivers a
// ChangeEvent to the callback. Unchanged values are fully suppressed.
//
// The returned error is whatever the callback or its delivery middleware
// produced; the snapshot is committed either way.
func (o *Observer[V]) Update(ctx context.Context) error {
	if o.metrics != nil {
		o.metrics.OnUpdate(o.tag)
	}

	curr := o.accessor()
	if o.seeded && !o.comparator(o.current, curr) {
		capitan.Emit(ctx, ObserverSuppressed,
			KeyTag.Field(o.tag),
		)
		if o.metrics != nil {
			o.metrics.OnSuppressed(o.tag)
		}
		return nil
	}

	return o.commit(ctx, curr)
}

// commit records curr as the new snapshot and delivers the change event.
// The snapshot and history are committed before the pipeline runs.
func (o *Observer[V]) commit(ctx context.Context, curr V) error {
	first := !o.seeded
	now := o.clock.Now()

	if !first {
		o.history.push(HistoryEntry[V]{Value: o.current, ChangeTime: o.changedAt})
	}

	ev := &ChangeEvent[V]{
		Value:      curr,
		ChangeTime: now,
		history:    o.history.entries(),
	}

	o.current = curr
	o.changedAt = now
	o.seeded = true

	if first {
		capitan.Emit(ctx, ObserverSeeded,
			KeyTag.Field(o.tag),
		)
		if !o.seedEvent {
			return nil
		}
	} else {
		capitan.Emit(ctx, ObserverChanged,
			KeyTag.Field(o.tag),
			KeyHistoryLength.Field(ev.HistoryLen()),
		)
	}

	if _, err := o.pipeline.Process(ctx, ev); err != nil {
		o.setError(err)
		capitan.Emit(ctx, ObserverCallbackFailed,
			KeyTag.Field(o.tag),
			KeyError.Field(err.Error()),
		)
		if o.metrics != nil {
			o.metrics.OnCallbackFailure(o.tag, o.clock.Since(now))
		}
		return fmt.Errorf("change delivery failed: %w", err)
	}

	o.lastError.Store(nil)
	if o.metrics != nil {
		o.metrics.OnChange(o.tag, o.clock.Since(now))
	}

	return nil
}

// setError stores an error atomically.
func (o *Observer[V]) setError(err error) {
	e := err
	o.lastError.Store(&e)
}

// defaultComparator reports structural inequality via reflect.DeepEqual.
func defaultComparator[V any](prev, curr V) bool {
	return !reflect.DeepEqual(prev, curr)
}

// newTag generates an opaque default registry tag.
func newTag() string {
	return uuid.NewString()
}
