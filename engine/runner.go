package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/pinball/state"
	"github.com/lixenwraith/pinball/status"
)

// FrameFunc receives each non-empty frame under the runner lock; the frame is released when it returns
// It must not block or call Do
type FrameFunc func(f *state.Frame)

// Runner drives a player in wall-clock time on a fixed tick
// All access to the player from other goroutines goes through Do
type Runner struct {
	player   *Player
	interval time.Duration
	onFrame  FrameFunc

	mu               sync.Mutex
	nextTickDeadline time.Time

	paused    atomic.Bool
	running   atomic.Bool
	tickCount atomic.Uint64

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup

	statTicks  *atomic.Int64
	statTickMs *status.Float
	statBalls  *atomic.Int64
	statCapped *atomic.Int64
}

// NewRunner creates a runner advancing p by interval every interval
// Sub-millisecond intervals are raised to one physics tick
func NewRunner(p *Player, interval time.Duration, onFrame FrameFunc) *Runner {
	if interval < time.Millisecond {
		interval = time.Millisecond
	}
	return &Runner{
		player:   p,
		interval: interval,
		onFrame:  onFrame,
		stopChan: make(chan struct{}),

		statTicks:  new(atomic.Int64),
		statTickMs: new(status.Float),
		statBalls:  new(atomic.Int64),
		statCapped: new(atomic.Int64),
	}
}

// Instrument publishes tick statistics under "engine." in reg; call before Start
func (r *Runner) Instrument(reg *status.Registry) {
	r.statTicks = reg.Ints.Get("engine.ticks")
	r.statTickMs = reg.Floats.Get("engine.tick_ms")
	r.statBalls = reg.Ints.Get("engine.balls")
	r.statCapped = reg.Ints.Get("engine.capped")
}

// Start begins the tick loop
func (r *Runner) Start() {
	if r.running.CompareAndSwap(false, true) {
		r.wg.Add(1)
		go r.loop()
	}
}

// Stop halts the tick loop and waits for the current tick to finish
func (r *Runner) Stop() {
	r.stopOnce.Do(func() {
		if r.running.CompareAndSwap(true, false) {
			close(r.stopChan)
			r.wg.Wait()
		}
	})
}

func (r *Runner) Pause()  { r.paused.Store(true) }
func (r *Runner) Resume() { r.paused.Store(false) }

func (r *Runner) Paused() bool { return r.paused.Load() }

// Ticks returns the number of ticks run so far
func (r *Runner) Ticks() uint64 { return r.tickCount.Load() }

// Do runs fn with exclusive access to the player
func (r *Runner) Do(fn func(p *Player)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(r.player)
}

func (r *Runner) loop() {
	defer r.wg.Done()

	r.nextTickDeadline = time.Now().Add(r.interval)
	timer := time.NewTimer(r.interval)
	defer timer.Stop()

	for {
		select {
		case <-r.stopChan:
			return
		case <-timer.C:
		}

		now := time.Now()
		if !r.paused.Load() {
			r.tick()
		}

		r.nextTickDeadline = r.nextTickDeadline.Add(r.interval)
		// resync instead of bursting after a long stall
		if now.Sub(r.nextTickDeadline) > 2*r.interval {
			r.nextTickDeadline = now.Add(r.interval)
		}
		timer.Reset(max(0, time.Until(r.nextTickDeadline)))
	}
}

func (r *Runner) tick() {
	r.mu.Lock()
	defer r.mu.Unlock()

	start := time.Now()
	r.player.SimulateTime(r.interval.Milliseconds())
	frame := r.player.PopStates()
	// the pools are confined to the lock, so the frame is consumed and released under it
	if r.onFrame != nil && !frame.Empty() {
		r.onFrame(frame)
	}
	frame.Release()
	r.tickCount.Add(1)

	r.statTicks.Add(1)
	r.statTickMs.Store(float64(time.Since(start).Microseconds()) / 1000)
	r.statBalls.Store(int64(len(r.player.balls)))
	r.statCapped.Store(int64(r.player.capped))
}
