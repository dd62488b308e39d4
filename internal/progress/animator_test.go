package progress

import (
	"sync"
	"testing"
	"time"
)

func collectRun(t *testing.T, a *Animator) []int {
	t.Helper()
	var (
		mu    sync.Mutex
		ticks []int
	)
	done := make(chan struct{})
	a.Start(func(percent int) {
		mu.Lock()
		ticks = append(ticks, percent)
		mu.Unlock()
		if percent >= Max {
			close(done)
		}
	})
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("animation did not finish")
	}
	mu.Lock()
	defer mu.Unlock()
	return append([]int(nil), ticks...)
}

func TestAnimator_RampsToHundred(t *testing.T) {
	a := NewAnimator(time.Millisecond)
	defer a.Stop()

	ticks := collectRun(t, a)
	if len(ticks) != 10 {
		t.Fatalf("len(ticks) = %d, want 10 (%v)", len(ticks), ticks)
	}
	prev := 0
	for i, p := range ticks {
		if p < prev {
			t.Fatalf("progress decreased at tick %d: %v", i, ticks)
		}
		if p != (i+1)*Step {
			t.Fatalf("tick %d = %d, want %d", i, p, (i+1)*Step)
		}
		prev = p
	}
	if ticks[len(ticks)-1] != Max {
		t.Fatalf("final tick = %d, want %d", ticks[len(ticks)-1], Max)
	}
}

func TestAnimator_StopPreventsFurtherTicks(t *testing.T) {
	a := NewAnimator(10 * time.Millisecond)

	var (
		mu    sync.Mutex
		count int
	)
	a.Start(func(int) {
		mu.Lock()
		count++
		mu.Unlock()
	})
	time.Sleep(35 * time.Millisecond)
	a.Stop()

	mu.Lock()
	after := count
	mu.Unlock()

	time.Sleep(50 * time.Millisecond)

	mu.Lock()
	final := count
	mu.Unlock()
	if final != after {
		t.Fatalf("ticks continued after Stop: %d -> %d", after, final)
	}
	if final >= 10 {
		t.Fatalf("animation finished despite Stop: %d ticks", final)
	}

	// Stop is idempotent.
	a.Stop()
}

func TestAnimator_RestartCancelsPriorRun(t *testing.T) {
	a := NewAnimator(10 * time.Millisecond)
	defer a.Stop()

	var (
		mu       sync.Mutex
		firstRun int
	)
	a.Start(func(int) {
		mu.Lock()
		firstRun++
		mu.Unlock()
	})
	time.Sleep(25 * time.Millisecond)

	done := make(chan struct{})
	a.Start(func(percent int) {
		if percent >= Max {
			close(done)
		}
	})

	mu.Lock()
	frozen := firstRun
	mu.Unlock()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("second run did not finish")
	}

	mu.Lock()
	defer mu.Unlock()
	if firstRun != frozen {
		t.Fatalf("first run kept ticking after restart: %d -> %d", frozen, firstRun)
	}
}
