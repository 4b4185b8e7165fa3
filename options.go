package vigil

import (
	"context"
	"time"

	"github.com/zoobzio/clockz"
	"github.com/zoobzio/pipz"
)

// Option configures an Observer at construction time.
//
// Instance options (comparator, history, tag, clock, metrics, seed event)
// shape detection; pipeline options (With*) wrap the callback with delivery
// middleware for retry, timeout, circuit breaking, and other reliability
// patterns.
type Option[V any] func(*settings[V])

// settings collects construction-time configuration before the Observer
// is assembled.
type settings[V any] struct {
	comparator Comparator[V]
	historyLen int
	tag        string
	seedEvent  bool
	clock      clockz.Clock
	metrics    MetricsProvider
	wrappers   []func(pipz.Chainable[*ChangeEvent[V]]) pipz.Chainable[*ChangeEvent[V]]
}

func newSettings[V any]() settings[V] {
	return settings[V]{
		comparator: defaultComparator[V],
		tag:        newTag(),
		clock:      clockz.RealClock,
	}
}

// buildPipeline wraps a terminal with pipeline options.
func buildPipeline[V any](terminal pipz.Chainable[*ChangeEvent[V]], wrappers []func(pipz.Chainable[*ChangeEvent[V]]) pipz.Chainable[*ChangeEvent[V]]) pipz.Chainable[*ChangeEvent[V]] {
	pipeline := terminal
	for _, wrap := range wrappers {
		pipeline = wrap(pipeline)
	}
	return pipeline
}

// -----------------------------------------------------------------------------
// Instance Options
// -----------------------------------------------------------------------------

// WithComparator sets the change predicate. The comparator returns true
// when the newly sampled value counts as changed relative to the previous
// one. Default: structural comparison via reflect.DeepEqual.
//
// Callers observing non-scalar values should supply a comparator suited to
// their type; see the package documentation for the aliasing caveat.
func WithComparator[V any](cmp Comparator[V]) Option[V] {
	return func(s *settings[V]) {
		s.comparator = cmp
	}
}

// WithHistory sets the maximum number of prior snapshots carried on each
// ChangeEvent. Default: 0, meaning history is always empty. Once the cap
// is exceeded, the oldest entry is evicted.
func WithHistory[V any](n int) Option[V] {
	return func(s *settings[V]) {
		s.historyLen = n
	}
}

// WithTag sets the registry tag. Default: an opaque generated handle
// unique to the observer.
func WithTag[V any](tag string) Option[V] {
	return func(s *settings[V]) {
		s.tag = tag
	}
}

// WithSeedEvent delivers the very first recorded snapshot to the callback
// as a change with empty history. Default: the first snapshot is silent and
// the callback fires only from the first subsequent change onward.
func WithSeedEvent[V any]() Option[V] {
	return func(s *settings[V]) {
		s.seedEvent = true
	}
}

// WithClock sets a custom clock for event timestamps.
// Use this with clockz.FakeClock for deterministic tests.
func WithClock[V any](clock clockz.Clock) Option[V] {
	return func(s *settings[V]) {
		s.clock = clock
	}
}

// WithMetrics sets a metrics provider for observability integration.
// The provider receives callbacks on updates, detected changes, suppressed
// no-ops, and delivery failures.
func WithMetrics[V any](provider MetricsProvider) Option[V] {
	return func(s *settings[V]) {
		s.metrics = provider
	}
}

// -----------------------------------------------------------------------------
// Pipeline Options - Wrapping (With*)
// -----------------------------------------------------------------------------
// These options wrap the delivery pipeline, providing protection at the
// boundary. Wrappers apply inside-out: the first option listed is closest
// to the callback.

// WithRetry wraps delivery with retry logic.
// Failed deliveries are retried immediately up to maxAttempts times.
// For exponential backoff between retries, use WithBackoff instead.
func WithRetry[V any](maxAttempts int) Option[V] {
	return func(s *settings[V]) {
		s.wrappers = append(s.wrappers, func(p pipz.Chainable[*ChangeEvent[V]]) pipz.Chainable[*ChangeEvent[V]] {
			return pipz.NewRetry("retry", p, maxAttempts)
		})
	}
}

// WithBackoff wraps delivery with exponential backoff retry logic.
// Failed deliveries are retried with increasing delays: baseDelay,
// 2*baseDelay, 4*baseDelay, and so on.
func WithBackoff[V any](maxAttempts int, baseDelay time.Duration) Option[V] {
	return func(s *settings[V]) {
		s.wrappers = append(s.wrappers, func(p pipz.Chainable[*ChangeEvent[V]]) pipz.Chainable[*ChangeEvent[V]] {
			return pipz.NewBackoff("backoff", p, maxAttempts, baseDelay)
		})
	}
}

// WithTimeout wraps delivery with a deadline. If the callback takes longer
// than the specified duration, the delivery fails with a timeout error.
func WithTimeout[V any](d time.Duration) Option[V] {
	return func(s *settings[V]) {
		s.wrappers = append(s.wrappers, func(p pipz.Chainable[*ChangeEvent[V]]) pipz.Chainable[*ChangeEvent[V]] {
			return pipz.NewTimeout("timeout", p, d)
		})
	}
}

// WithCircuitBreaker wraps delivery with circuit breaker protection.
// After 'failures' consecutive failures, the circuit opens and rejects
// further deliveries until 'recovery' time has passed.
func WithCircuitBreaker[V any](failures int, recovery time.Duration) Option[V] {
	return func(s *settings[V]) {
		s.wrappers = append(s.wrappers, func(p pipz.Chainable[*ChangeEvent[V]]) pipz.Chainable[*ChangeEvent[V]] {
			return pipz.NewCircuitBreaker("circuit-breaker", p, failures, recovery)
		})
	}
}

// WithErrorHandler adds error observation to the delivery pipeline.
// Errors are passed to the handler for logging, metrics, or alerting,
// but the error still propagates. Use this for observability, not recovery.
func WithErrorHandler[V any](handler pipz.Chainable[*pipz.Error[*ChangeEvent[V]]]) Option[V] {
	return func(s *settings[V]) {
		s.wrappers = append(s.wrappers, func(p pipz.Chainable[*ChangeEvent[V]]) pipz.Chainable[*ChangeEvent[V]] {
			return pipz.NewHandle("error-handler", p, handler)
		})
	}
}

// WithMiddleware wraps delivery with a sequence of processors.
// Processors execute in order, with the callback last.
//
// Use the Use* functions to create processors for common patterns, or
// provide custom pipz.Chainable implementations directly.
//
// Example:
//
//	vigil.New(accessor, onChange,
//	    vigil.WithMiddleware(
//	        vigil.UseEffect[Config]("audit", auditFn),
//	        vigil.UseRateLimit[Config](10, 5),
//	    ),
//	    vigil.WithCircuitBreaker[Config](5, 30*time.Second),
//	)
func WithMiddleware[V any](processors ...pipz.Chainable[*ChangeEvent[V]]) Option[V] {
	return func(s *settings[V]) {
		s.wrappers = append(s.wrappers, func(p pipz.Chainable[*ChangeEvent[V]]) pipz.Chainable[*ChangeEvent[V]] {
			all := make([]pipz.Chainable[*ChangeEvent[V]], 0, len(processors)+1)
			all = append(all, processors...)
			all = append(all, p)
			return pipz.NewSequence("middleware", all...)
		})
	}
}

// -----------------------------------------------------------------------------
// Middleware Processors (Use*)
// -----------------------------------------------------------------------------
// These create processors for use inside WithMiddleware. They observe or
// transform the event as it flows toward the callback.

// UseEffect creates a processor that performs a side effect.
// The event passes through unchanged. Use for logging, metrics, or
// notifications that should not affect what the callback sees.
func UseEffect[V any](name string, fn func(context.Context, *ChangeEvent[V]) error) pipz.Chainable[*ChangeEvent[V]] {
	return pipz.Effect(pipz.Name(name), fn)
}

// UseTransform creates a processor that transforms the event.
// Cannot fail. Use for pure transformations that always succeed.
func UseTransform[V any](name string, fn func(context.Context, *ChangeEvent[V]) *ChangeEvent[V]) pipz.Chainable[*ChangeEvent[V]] {
	return pipz.Transform(pipz.Name(name), fn)
}

// UseApply creates a processor that can transform the event and fail.
// Use for enrichment or validation that may produce errors.
func UseApply[V any](name string, fn func(context.Context, *ChangeEvent[V]) (*ChangeEvent[V], error)) pipz.Chainable[*ChangeEvent[V]] {
	return pipz.Apply(pipz.Name(name), fn)
}

// UseFilter wraps a processor with a condition.
// If the condition returns false, the event passes through unchanged.
func UseFilter[V any](name string, condition func(context.Context, *ChangeEvent[V]) bool, processor pipz.Chainable[*ChangeEvent[V]]) pipz.Chainable[*ChangeEvent[V]] {
	return pipz.NewFilter(pipz.Name(name), condition, processor)
}

// UseRateLimit creates a rate limiting processor.
// Uses a token bucket with the specified rate (deliveries per second) and
// burst size. When tokens are exhausted, deliveries wait for availability.
func UseRateLimit[V any](rate float64, burst int) pipz.Chainable[*ChangeEvent[V]] {
	return pipz.NewRateLimiter[*ChangeEvent[V]]("rate-limiter", rate, burst)
}
