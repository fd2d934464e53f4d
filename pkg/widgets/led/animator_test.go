package led

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

func waitLevel(t *testing.T, ch <-chan float64) float64 {
	t.Helper()
	select {
	case lv := <-ch:
		return lv
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a brightness update")
		return 0
	}
}

func TestInstantTurn(t *testing.T) {
	ch := make(chan float64, 64)
	a := newAnimator(clockwork.NewFakeClock(), 0, 0, func(lv float64) { ch <- lv })

	a.Turn(true)
	if lv := waitLevel(t, ch); lv != 1 {
		t.Errorf("level after on = %v, want 1", lv)
	}
	if !a.State() {
		t.Error("State() = false after on")
	}

	a.Turn(true)
	select {
	case lv := <-ch:
		t.Errorf("redundant on produced level %v", lv)
	default:
	}

	a.Turn(false)
	if lv := waitLevel(t, ch); lv != 0 {
		t.Errorf("level after off = %v, want 0", lv)
	}
	if a.State() {
		t.Error("State() = true after off")
	}

	a.Toggle()
	if lv := waitLevel(t, ch); lv != 1 {
		t.Errorf("level after toggle = %v, want 1", lv)
	}
}

func TestFadeSteps(t *testing.T) {
	clock := clockwork.NewFakeClock()
	ch := make(chan float64, 64)
	a := newAnimator(clock, 100*time.Millisecond, 0, func(lv float64) { ch <- lv })

	a.Turn(true)
	first := waitLevel(t, ch)
	if first <= 0 || first >= 1 {
		t.Fatalf("first fade step = %v, want between 0 and 1", first)
	}
	if !a.State() {
		t.Error("State() = false while fading up")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	prev := first
	for prev != 1 {
		if err := clock.BlockUntilContext(ctx, 1); err != nil {
			t.Fatalf("fade timer never rearmed: %v", err)
		}
		clock.Advance(fadeTimeStep)
		lv := waitLevel(t, ch)
		if lv < prev {
			t.Fatalf("fade went backwards, %v after %v", lv, prev)
		}
		prev = lv
	}
	if lv := a.Level(); lv != 1 {
		t.Errorf("Level() = %v after fade, want 1", lv)
	}
}

func TestFadeRetarget(t *testing.T) {
	clock := clockwork.NewFakeClock()
	ch := make(chan float64, 64)
	a := newAnimator(clock, 100*time.Millisecond, 0, func(lv float64) { ch <- lv })

	a.Turn(true)
	up := waitLevel(t, ch)

	a.Turn(false)
	down := waitLevel(t, ch)
	if down >= up {
		t.Fatalf("level after reversal = %v, want below %v", down, up)
	}
	if a.State() {
		t.Error("State() = true after turning off mid fade")
	}

	// the superseded fade up must not surface once its timer is gone
	clock.Advance(fadeTimeStep)
	select {
	case lv := <-ch:
		if lv > down {
			t.Fatalf("superseded fade produced level %v", lv)
		}
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBlinkCycles(t *testing.T) {
	clock := clockwork.NewFakeClock()
	ch := make(chan float64, 64)
	a := newAnimator(clock, 0, 200*time.Millisecond, func(lv float64) { ch <- lv })

	a.Turn(true)
	if lv := waitLevel(t, ch); lv != 1 {
		t.Fatalf("level after on = %v, want 1", lv)
	}
	if !a.Blinking() {
		t.Fatal("Blinking() = false after on with a blink rate")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	want := []float64{0, 1, 0, 1}
	for i, wantLv := range want {
		if err := clock.BlockUntilContext(ctx, 1); err != nil {
			t.Fatalf("blink %d never armed: %v", i, err)
		}
		clock.Advance(200 * time.Millisecond)
		if lv := waitLevel(t, ch); lv != wantLv {
			t.Fatalf("blink %d level = %v, want %v", i, lv, wantLv)
		}
	}

	a.Turn(false)
	if lv := waitLevel(t, ch); lv != 0 {
		t.Errorf("level after off = %v, want 0", lv)
	}
	if a.Blinking() {
		t.Error("Blinking() = true after off")
	}
}

func TestSetBlinkRateWhileOn(t *testing.T) {
	clock := clockwork.NewFakeClock()
	ch := make(chan float64, 64)
	a := newAnimator(clock, 0, 0, func(lv float64) { ch <- lv })

	a.Turn(true)
	waitLevel(t, ch)

	// a lamp that was steadily on goes dark at once and blinks from there
	if err := a.SetBlinkRate(150 * time.Millisecond); err != nil {
		t.Fatalf("SetBlinkRate() failed: %v", err)
	}
	if lv := waitLevel(t, ch); lv != 0 {
		t.Fatalf("level after starting blink = %v, want 0", lv)
	}
	if !a.Blinking() {
		t.Fatal("Blinking() = false after SetBlinkRate")
	}

	// clearing the rate settles the lamp back on
	if err := a.SetBlinkRate(0); err != nil {
		t.Fatalf("SetBlinkRate(0) failed: %v", err)
	}
	if lv := waitLevel(t, ch); lv != 1 {
		t.Fatalf("level after stopping blink = %v, want 1", lv)
	}
	if a.Blinking() {
		t.Error("Blinking() = true after clearing the rate")
	}

	if err := a.SetBlinkRate(-1); err == nil {
		t.Fatal("SetBlinkRate(-1) succeeded unexpectedly")
	}
	if err := a.SetFadeRate(-1); err == nil {
		t.Fatal("SetFadeRate(-1) succeeded unexpectedly")
	}
}

func TestSetLevelGate(t *testing.T) {
	ch := make(chan float64, 64)
	a := newAnimator(clockwork.NewFakeClock(), 0, 0, func(lv float64) { ch <- lv })

	// brightening a lamp that is off is ignored
	a.SetLevel(0.5)
	select {
	case lv := <-ch:
		t.Fatalf("off lamp accepted brightness %v", lv)
	default:
	}

	a.Turn(true)
	waitLevel(t, ch)

	a.SetLevel(0.5)
	if lv := waitLevel(t, ch); lv != 0.5 {
		t.Errorf("level = %v, want 0.5", lv)
	}
	a.SetLevel(0.8)
	if lv := waitLevel(t, ch); lv != 0.8 {
		t.Errorf("level = %v, want 0.8", lv)
	}

	a.Turn(false)
	waitLevel(t, ch)
	if lv := a.Level(); lv != 0 {
		t.Errorf("Level() = %v after off, want 0", lv)
	}
}
