package vigil

import "testing"

func TestObserverSeeded(t *testing.T) {
	if ObserverSeeded.Name() != "vigil.observer.seeded" {
		t.Errorf("expected name 'vigil.observer.seeded', got %q", ObserverSeeded.Name())
	}
}

func TestObserverChanged(t *testing.T) {
	if ObserverChanged.Name() != "vigil.observer.changed" {
		t.Errorf("expected name 'vigil.observer.changed', got %q", ObserverChanged.Name())
	}
}

func TestObserverSuppressed(t *testing.T) {
	if ObserverSuppressed.Name() != "vigil.observer.suppressed" {
		t.Errorf("expected name 'vigil.observer.suppressed', got %q", ObserverSuppressed.Name())
	}
}

func TestObserverCallbackFailed(t *testing.T) {
	if ObserverCallbackFailed.Name() != "vigil.observer.callback.failed" {
		t.Errorf("expected name 'vigil.observer.callback.failed', got %q", ObserverCallbackFailed.Name())
	}
}

func TestRegistryObserved(t *testing.T) {
	if RegistryObserved.Name() != "vigil.registry.observed" {
		t.Errorf("expected name 'vigil.registry.observed', got %q", RegistryObserved.Name())
	}
}

func TestRegistryUpdated(t *testing.T) {
	if RegistryUpdated.Name() != "vigil.registry.updated" {
		t.Errorf("expected name 'vigil.registry.updated', got %q", RegistryUpdated.Name())
	}
}

func TestDriverStarted(t *testing.T) {
	if DriverStarted.Name() != "vigil.driver.started" {
		t.Errorf("expected name 'vigil.driver.started', got %q", DriverStarted.Name())
	}
}

func TestDriverStopped(t *testing.T) {
	if DriverStopped.Name() != "vigil.driver.stopped" {
		t.Errorf("expected name 'vigil.driver.stopped', got %q", DriverStopped.Name())
	}
}
