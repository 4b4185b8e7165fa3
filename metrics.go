package vigil

import "time"

// MetricsProvider allows integration with metrics systems like Prometheus, StatsD, etc.
// Implement this interface to receive callbacks on key observer events.
type MetricsProvider interface {
	// OnUpdate is called at the start of every Update call.
	OnUpdate(tag string)

	// OnChange is called when a change is committed and delivered.
	// Duration is the time taken by the delivery pipeline.
	OnChange(tag string, duration time.Duration)

	// OnSuppressed is called when an update sampled an unchanged value.
	OnSuppressed(tag string)

	// OnCallbackFailure is called when change delivery fails.
	OnCallbackFailure(tag string, duration time.Duration)
}

// NoOpMetricsProvider is a no-op implementation of MetricsProvider.
// Use this as an embedded type to implement only the methods you need.
type NoOpMetricsProvider struct{}

func (NoOpMetricsProvider) OnUpdate(_ string)                           {}
func (NoOpMetricsProvider) OnChange(_ string, _ time.Duration)          {}
func (NoOpMetricsProvider) OnSuppressed(_ string)                       {}
func (NoOpMetricsProvider) OnCallbackFailure(_ string, _ time.Duration) {}
