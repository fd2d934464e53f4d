package led

import (
	"math"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// fadeTimeStep is the repaint interval while a fade is in progress.
const fadeTimeStep = 20 * time.Millisecond

// animator owns the lamp state machine: steady on and off, timed
// blinking and brightness fades between the two. All scheduling goes
// through an injected clock so tests can step time instead of sleeping.
// The apply callback receives every brightness change and is always
// invoked with the internal lock released.
type animator struct {
	mu    sync.Mutex
	clock clockwork.Clock
	apply func(level float64)

	state     bool
	level     float64
	fadeRate  time.Duration
	blinkRate time.Duration

	blinking   bool
	blinkTimer clockwork.Timer

	// fade bookkeeping; fadeSeq invalidates steps from a superseded
	// fade that are already in flight
	fadeSeq   int
	fadeTimer clockwork.Timer
	target    float64
	total     time.Duration
	started   time.Time
	latency   []time.Duration
}

func newAnimator(clock clockwork.Clock, fadeRate, blinkRate time.Duration, apply func(float64)) *animator {
	return &animator{
		clock:     clock,
		apply:     apply,
		fadeRate:  fadeRate,
		blinkRate: blinkRate,
	}
}

func (a *animator) State() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

func (a *animator) Level() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.level
}

func (a *animator) Blinking() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.blinking
}

func (a *animator) FadeRate() time.Duration {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.fadeRate
}

func (a *animator) BlinkRate() time.Duration {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.blinkRate
}

// Turn switches the lamp on or off, fading if a fade rate is set.
func (a *animator) Turn(on bool) {
	a.mu.Lock()
	var fire bool
	var level float64
	if on {
		fire, level = a.turnOnLocked()
	} else {
		fire, level = a.turnOffLocked()
	}
	a.mu.Unlock()
	if fire {
		a.apply(level)
	}
}

// Toggle flips the lamp to the opposite state.
func (a *animator) Toggle() {
	a.mu.Lock()
	var fire bool
	var level float64
	if a.state {
		fire, level = a.turnOffLocked()
	} else {
		fire, level = a.turnOnLocked()
	}
	a.mu.Unlock()
	if fire {
		a.apply(level)
	}
}

// SetLevel forces a brightness level. Brightening is only honored while
// the lamp is on; dimming and switching fully off always apply.
func (a *animator) SetLevel(level float64) {
	a.mu.Lock()
	if level > 0 && !a.state && level >= a.level {
		a.mu.Unlock()
		return
	}
	a.level = level
	a.mu.Unlock()
	a.apply(level)
}

func (a *animator) SetFadeRate(d time.Duration) error {
	if d < 0 {
		return ErrFadeRate
	}
	a.mu.Lock()
	a.fadeRate = d
	a.mu.Unlock()
	return nil
}

// SetBlinkRate changes the blink interval. Setting a rate on a lamp
// that is steadily on starts blinking at once; clearing the rate while
// blinking settles the lamp back on.
func (a *animator) SetBlinkRate(d time.Duration) error {
	if d < 0 {
		return ErrBlinkRate
	}
	a.mu.Lock()
	a.blinkRate = d
	var fire bool
	var level float64
	switch {
	case d > 0 && a.state && !a.blinking:
		fire, level = a.blinkLocked()
	case d == 0 && a.blinking:
		a.cancelBlinkLocked()
		fire, level = a.turnOnLocked()
	}
	a.mu.Unlock()
	if fire {
		a.apply(level)
	}
	return nil
}

// Stop cancels all pending timers without changing state or level.
func (a *animator) Stop() {
	a.mu.Lock()
	a.fadeSeq++
	if a.fadeTimer != nil {
		a.fadeTimer.Stop()
		a.fadeTimer = nil
	}
	a.cancelBlinkLocked()
	a.mu.Unlock()
}

func (a *animator) turnOnLocked() (bool, float64) {
	if a.state || a.blinking {
		return false, 0
	}
	if a.blinkRate > 0 {
		a.scheduleBlinkLocked()
	}
	return a.fadeToLocked(true)
}

func (a *animator) turnOffLocked() (bool, float64) {
	a.cancelBlinkLocked()
	if !a.state {
		return false, 0
	}
	return a.fadeToLocked(false)
}

func (a *animator) scheduleBlinkLocked() {
	a.blinking = true
	a.blinkTimer = a.clock.AfterFunc(a.blinkRate, a.blinkFire)
}

func (a *animator) cancelBlinkLocked() {
	if a.blinkTimer != nil {
		a.blinkTimer.Stop()
		a.blinkTimer = nil
	}
	a.blinking = false
}

// blinkLocked flips the lamp and keeps the cycle armed so a lamp that
// just went dark comes back on.
func (a *animator) blinkLocked() (bool, float64) {
	a.cancelBlinkLocked()
	if a.blinkRate <= 0 {
		return false, 0
	}
	if a.state {
		fire, level := a.turnOffLocked()
		a.scheduleBlinkLocked()
		return fire, level
	}
	return a.turnOnLocked()
}

func (a *animator) blinkFire() {
	a.mu.Lock()
	fire, level := a.blinkLocked()
	a.mu.Unlock()
	if fire {
		a.apply(level)
	}
}

// fadeToLocked retargets the brightness and takes the first step
// immediately. With a zero fade rate the level snaps in one step.
func (a *animator) fadeToLocked(on bool) (bool, float64) {
	a.fadeSeq++
	if a.fadeTimer != nil {
		a.fadeTimer.Stop()
		a.fadeTimer = nil
	}
	a.state = on
	a.target = 0
	if on {
		a.target = 1
	}
	a.latency = a.latency[:0]
	a.total = time.Duration(math.Abs(a.target-a.level) * float64(a.fadeRate))
	a.started = a.clock.Now()
	return a.stepLocked(a.total)
}

// stepLocked advances the fade by one frame. The step size leans on the
// measured scheduling latency so the fade lands on time even when the
// timer runs late.
func (a *animator) stepLocked(remain time.Duration) (bool, float64) {
	if remain <= fadeTimeStep {
		a.level = a.target
		return true, a.level
	}
	if len(a.latency) > 10 {
		a.latency = a.latency[1:]
	}
	var lag time.Duration
	if len(a.latency) > 0 {
		for _, l := range a.latency {
			lag += l
		}
		lag /= time.Duration(len(a.latency))
	}
	a.level += (a.target - a.level) * float64(fadeTimeStep+lag) / float64(remain)
	next := a.total - a.clock.Since(a.started)
	a.latency = append(a.latency, remain-next)
	seq := a.fadeSeq
	a.fadeTimer = a.clock.AfterFunc(fadeTimeStep, func() {
		a.fadeStep(seq, next-fadeTimeStep)
	})
	return true, a.level
}

func (a *animator) fadeStep(seq int, remain time.Duration) {
	a.mu.Lock()
	if seq != a.fadeSeq {
		a.mu.Unlock()
		return
	}
	fire, level := a.stepLocked(remain)
	a.mu.Unlock()
	if fire {
		a.apply(level)
	}
}
