package vigil

import "github.com/zoobzio/capitan"

// Observer lifecycle and detection signals.
var (
	// ObserverSeeded is emitted when an Observer records its first snapshot.
	ObserverSeeded = capitan.NewSignal(
		"vigil.observer.seeded",
		"Initial snapshot recorded",
	)

	// ObserverChanged is emitted when an Observer detects a changed value.
	ObserverChanged = capitan.NewSignal(
		"vigil.observer.changed",
		"Change detected and committed",
	)

	// ObserverSuppressed is emitted when an update samples an unchanged value.
	ObserverSuppressed = capitan.NewSignal(
		"vigil.observer.suppressed",
		"No-op update suppressed",
	)

	// ObserverCallbackFailed is emitted when change delivery fails.
	ObserverCallbackFailed = capitan.NewSignal(
		"vigil.observer.callback.failed",
		"Change delivery failed",
	)
)

// Registry signals.
var (
	// RegistryObserved is emitted when an observer is constructed and
	// registered via Observe.
	RegistryObserved = capitan.NewSignal(
		"vigil.registry.observed",
		"Observer registered",
	)

	// RegistryUpdated is emitted after a bulk UpdateAll pass.
	RegistryUpdated = capitan.NewSignal(
		"vigil.registry.updated",
		"Bulk update completed",
	)
)

// Driver signals.
var (
	// DriverStarted is emitted when a driver begins running.
	DriverStarted = capitan.NewSignal(
		"vigil.driver.started",
		"Driver running",
	)

	// DriverStopped is emitted when a driver stops.
	DriverStopped = capitan.NewSignal(
		"vigil.driver.stopped",
		"Driver stopped",
	)
)
