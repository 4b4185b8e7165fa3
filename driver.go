package vigil

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"
)

// ChannelDriver invokes an Updater whenever a kick arrives on a channel,
// optionally coalescing rapid kicks with a debounce window. It is the glue
// between push-style change notifications and the pull-style Update call.
type ChannelDriver struct {
	kicks    <-chan struct{}
	debounce time.Duration
	clock    clockz.Clock
}

// NewChannelDriver creates a driver that updates the target once per kick.
func NewChannelDriver(kicks <-chan struct{}) *ChannelDriver {
	return &ChannelDriver{
		kicks: kicks,
		clock: clockz.RealClock,
	}
}

// Debounce sets the coalescing window. Kicks arriving within this duration
// collapse into a single update. Default: none, every kick updates.
// Must be called before Run().
func (d *ChannelDriver) Debounce(dur time.Duration) *ChannelDriver {
	d.debounce = dur
	return d
}

// Clock sets a custom clock for debounce timing.
// Use this with clockz.FakeClock for deterministic tests.
// Must be called before Run().
func (d *ChannelDriver) Clock(clock clockz.Clock) *ChannelDriver {
	d.clock = clock
	return d
}

// Run drives the target until the context is canceled or the kick channel
// closes. Update errors are not returned here; observers record them via
// LastError. Run returns ctx.Err() on cancellation and nil on close.
func (d *ChannelDriver) Run(ctx context.Context, target Updater) error {
	capitan.Emit(ctx, DriverStarted,
		KeyDebounce.Field(d.debounce),
	)
	defer capitan.Emit(ctx, DriverStopped)

	var (
		timer   clockz.Timer
		pending bool
	)

	for {
		// Get timer channel or nil if no timer
		var timerC <-chan time.Time
		if timer != nil {
			timerC = timer.C()
		}

		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return ctx.Err()

		case _, ok := <-d.kicks:
			if !ok {
				// Channel closed, run any pending update
				if pending {
					_ = target.Update(ctx) //nolint:errcheck // Errors recorded via LastError
				}
				return nil
			}

			if d.debounce <= 0 {
				_ = target.Update(ctx) //nolint:errcheck // Errors recorded via LastError
				continue
			}
			pending = true

			// Reset or start debounce timer
			if timer == nil {
				timer = d.clock.NewTimer(d.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C():
					default:
					}
				}
				timer.Reset(d.debounce)
			}

		case <-timerC:
			if pending {
				_ = target.Update(ctx) //nolint:errcheck // Errors recorded via LastError
				pending = false
			}
		}
	}
}

// TickerDriver invokes an Updater at a fixed interval, the "once per poll
// cycle" cadence.
type TickerDriver struct {
	interval time.Duration
	clock    clockz.Clock
}

// NewTickerDriver creates a driver that updates the target every interval.
func NewTickerDriver(interval time.Duration) *TickerDriver {
	return &TickerDriver{
		interval: interval,
		clock:    clockz.RealClock,
	}
}

// Clock sets a custom clock for interval timing.
// Use this with clockz.FakeClock for deterministic tests.
// Must be called before Run().
func (d *TickerDriver) Clock(clock clockz.Clock) *TickerDriver {
	d.clock = clock
	return d
}

// Run drives the target until the context is canceled, returning ctx.Err().
// Update errors are not returned here; observers record them via LastError.
func (d *TickerDriver) Run(ctx context.Context, target Updater) error {
	capitan.Emit(ctx, DriverStarted,
		KeyInterval.Field(d.interval),
	)
	defer capitan.Emit(ctx, DriverStopped)

	timer := d.clock.NewTimer(d.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C():
			_ = target.Update(ctx) //nolint:errcheck // Errors recorded via LastError
			timer.Reset(d.interval)
		}
	}
}
