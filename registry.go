package vigil

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/zoobzio/capitan"
)

// Updater is the capability the registry and drivers operate on: something
// that can be updated on command. Observer implements it for every value
// type, which lets a Registry hold observers of heterogeneous types.
type Updater interface {
	// Update samples the underlying source and delivers a change event if
	// the value moved since the last call.
	Update(ctx context.Context) error
}

// UpdaterFunc adapts a plain function to the Updater interface.
//
// It also lets a whole Registry be driven by a single driver:
//
//	driver.Run(ctx, vigil.UpdaterFunc(registry.UpdateAll))
type UpdaterFunc func(ctx context.Context) error

// Update calls f(ctx).
func (f UpdaterFunc) Update(ctx context.Context) error {
	return f(ctx)
}

// Registry is a keyed collection of Updaters, typically Observers of
// differing value types. It supports bulk and selective updates and
// explicit removal; there is no implicit eviction.
//
// The mutex guards the tag map only. Updates run outside the lock on a
// snapshot of the entries, so callbacks may call back into the registry.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Updater
}

// NewRegistry creates an empty Registry.
//
// The holder owns teardown: call Clear exactly once when done, typically
// via defer.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Updater)}
}

// Observe constructs an Observer with the given configuration, seeds it
// immediately, and registers it under its tag. The observer is returned so
// callers can also drive it directly.
//
// An existing entry under the same tag is overwritten; the prior Updater
// is orphaned and needs no disposal since it holds no external resources.
//
// The observer is registered even if seed delivery failed (the snapshot is
// committed before the callback runs); the delivery error is returned.
// For deferred seeding, construct with New and attach via Register instead.
func Observe[V any](ctx context.Context, r *Registry, accessor func() V, fn Callback[V], opts ...Option[V]) (*Observer[V], error) {
	o := New(accessor, fn, opts...)
	err := o.Start(ctx)
	r.Register(o.Tag(), o)
	capitan.Emit(ctx, RegistryObserved,
		KeyTag.Field(o.Tag()),
		KeyCount.Field(r.Len()),
	)
	return o, err
}

// Register attaches an Updater under the given tag, overwriting any
// existing entry with the same tag.
func (r *Registry) Register(tag string, u Updater) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[tag] = u
}

// Remove deletes the entry for tag if present. Removing an absent tag is
// a silent no-op.
func (r *Registry) Remove(tag string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, tag)
}

// Clear removes all entries. This is the registry's teardown; the holder
// calls it once when the observing scope ends.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = make(map[string]Updater)
}

// Update calls Update on the entry for tag. An absent tag is a silent
// no-op returning nil.
func (r *Registry) Update(ctx context.Context, tag string) error {
	r.mu.RLock()
	u, ok := r.entries[tag]
	r.mu.RUnlock()
	if !ok {
		return nil
	}
	return u.Update(ctx)
}

// UpdateAll calls Update on every registered entry in unspecified order.
// Every entry is attempted even when some fail; the failures are joined
// into the returned error.
func (r *Registry) UpdateAll(ctx context.Context) error {
	r.mu.RLock()
	snapshot := make([]Updater, 0, len(r.entries))
	for _, u := range r.entries {
		snapshot = append(snapshot, u)
	}
	r.mu.RUnlock()

	var errs []error
	for _, u := range snapshot {
		if err := u.Update(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	capitan.Emit(ctx, RegistryUpdated,
		KeyCount.Field(len(snapshot)),
	)

	return errors.Join(errs...)
}

// Len returns the number of registered entries.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Tags returns the registered tags in sorted order.
func (r *Registry) Tags() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tags := make([]string, 0, len(r.entries))
	for tag := range r.entries {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
