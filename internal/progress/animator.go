// Package progress drives the cosmetic upload animation. The percentage
// is a fixed-step ramp on a timer; it reflects no real transfer.
package progress

import (
	"context"
	"sync"
	"time"
)

// Step is the percentage added per tick; Max is where the ramp stops.
const (
	Step = 10
	Max  = 100
)

// Animator runs at most one animation at a time. Starting a new run
// cancels the previous one, so a rapid re-selection can never leave a
// stale timer updating state behind the current one.
type Animator struct {
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
}

func NewAnimator(interval time.Duration) *Animator {
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	return &Animator{interval: interval}
}

// Start begins a fresh ramp from 0 and invokes onTick with each new
// percentage (Step, 2*Step, ... Max) from a background goroutine. Any
// animation already in flight is canceled first. onTick is never called
// after Stop returns or after a later Start supersedes this run, and it
// must not call back into the Animator.
func (a *Animator) Start(onTick func(percent int)) {
	ctx := a.rearm()

	go func() {
		ticker := time.NewTicker(a.interval)
		defer ticker.Stop()

		percent := 0
		for percent < Max {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			a.mu.Lock()
			if ctx.Err() != nil {
				a.mu.Unlock()
				return
			}
			percent += Step
			if percent > Max {
				percent = Max
			}
			onTick(percent)
			a.mu.Unlock()
		}
	}()
}

// rearm cancels the active run and installs a fresh context.
func (a *Animator) rearm() context.Context {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cancel != nil {
		a.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	return ctx
}

// Stop cancels the in-flight animation, if any. Safe to call repeatedly
// and on teardown.
func (a *Animator) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
}
