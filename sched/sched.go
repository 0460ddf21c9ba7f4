// Package sched provides cooperative periodic task runners. Each Runner
// drives one Task on its own goroutine at a settable period; the rest of the
// firmware interacts with it only through SetPeriod, Force, and Disable, all
// of which are safe from other goroutines. Force is additionally safe from
// interrupt context: it is a single non-blocking channel send.
package sched

import (
	"context"
	"sync/atomic"
	"time"
)

// Task is a cooperatively scheduled unit. Setup runs once before the first
// service; Service runs on every tick of the owning Runner.
type Task interface {
	Setup() error
	Service()
}

// Runner drives a Task at a settable period.
type Runner struct {
	name       string
	task       Task
	peripheral bool

	period   atomic.Int64 // time.Duration
	disabled atomic.Bool
	force    chan struct{}
}

// NewRunner creates a runner for task ticking at period. Peripheral runners
// are the ones DisablePeripherals switches off on low-battery entry.
func NewRunner(name string, task Task, period time.Duration, peripheral bool) *Runner {
	r := &Runner{
		name:       name,
		task:       task,
		peripheral: peripheral,
		force:      make(chan struct{}, 1),
	}
	if period <= 0 {
		period = time.Second
	}
	r.period.Store(int64(period))
	return r
}

func (r *Runner) Name() string     { return r.name }
func (r *Runner) Peripheral() bool { return r.peripheral }

// SetPeriod reprograms the tick interval, effective from the next re-arm.
func (r *Runner) SetPeriod(d time.Duration) {
	if d <= 0 {
		return
	}
	r.period.Store(int64(d))
}

// Period returns the current tick interval.
func (r *Runner) Period() time.Duration { return time.Duration(r.period.Load()) }

// Force requests one out-of-band service at the next opportunity. It never
// blocks and coalesces with an already-pending request.
func (r *Runner) Force() {
	select {
	case r.force <- struct{}{}:
	default:
	}
}

// Disable stops the task from being serviced; the runner keeps ticking so a
// later Enable takes effect without re-registration.
func (r *Runner) Disable()       { r.disabled.Store(true) }
func (r *Runner) Enable()        { r.disabled.Store(false) }
func (r *Runner) Disabled() bool { return r.disabled.Load() }

// Run performs Setup and then services the task until ctx is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	if err := r.task.Setup(); err != nil {
		return err
	}
	timer := time.NewTimer(r.Period())
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
		case <-r.force:
		}
		if !r.disabled.Load() {
			r.task.Service()
		}
		resetTimer(timer, r.Period())
	}
}

// Start launches Run on its own goroutine and reports Setup failures through
// the returned channel.
func (r *Runner) Start(ctx context.Context) <-chan error {
	errc := make(chan error, 1)
	go func() {
		if err := r.Run(ctx); err != nil {
			errc <- err
		}
		close(errc)
	}()
	return errc
}
