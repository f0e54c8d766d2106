package wheel

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/riftwheel/g29emu/internal/backend"
	"github.com/riftwheel/g29emu/internal/ffb"
	"github.com/riftwheel/g29emu/internal/frame"
	wheellog "github.com/riftwheel/g29emu/internal/log"
)

// EngineState is one of the three states the engine's state machine may be
// in (§4.D "Engine state machine").
type EngineState int32

const (
	Disabled EngineState = iota
	Enabled
	Terminating
)

// Grabber acquires or releases exclusive access to the physical input
// devices. Implemented by internal/inputdevice.Reader.
type Grabber interface {
	Grab(enable bool) error
}

// Engine owns WheelState and FFBState and runs the FFB physics loop. It is
// the only writer of both; everything else reaches them through Engine's
// methods or through an ffb.Parser built via FFBParser, which shares
// Engine's mutex and condition variable.
type Engine struct {
	mu   sync.Mutex
	cond *sync.Cond

	state State
	ffb   ffb.State

	backend backend.Backend
	grabber Grabber
	logger  *slog.Logger

	sensitivity int

	engineState atomic.Int32
	running     atomic.Bool

	filtered float64

	physicsWG sync.WaitGroup
	tickerWG  sync.WaitGroup
}

// New builds an Engine bound to a backend and a device grabber. gain is
// set once here and treated as read-only thereafter (invariant 3).
func New(b backend.Backend, grabber Grabber, sensitivity int, gain float32, logger *slog.Logger) *Engine {
	e := &Engine{
		backend:     b,
		grabber:     grabber,
		sensitivity: sensitivity,
		logger:      logger,
	}
	e.cond = sync.NewCond(&e.mu)
	e.ffb.Gain = gain
	e.engineState.Store(int32(Disabled))
	return e
}

// FFBParser builds a Parser sharing Engine's mutex and condition variable,
// wired to Engine's FFBState. Pass the returned Parser's Feed method to
// the HID backend's RegisterFFBCallback.
func (e *Engine) FFBParser(logger *slog.Logger, raw wheellog.RawLogger) *ffb.Parser {
	return ffb.New(&e.mu, e.cond, &e.ffb, logger, raw)
}

// State returns the current state, in the engine's state-machine sense.
func (e *Engine) State() EngineState {
	return EngineState(e.engineState.Load())
}

// Start binds the HID backend and launches the physics loop and its
// 1ms ticker. Must be called once before ProcessInputFrame.
func (e *Engine) Start() error {
	if err := e.backend.Initialize(); err != nil {
		return err
	}
	e.running.Store(true)

	stop := make(chan struct{})
	e.tickerWG.Add(1)
	go e.runTicker(stop)

	e.physicsWG.Add(1)
	go e.runPhysicsLoop(stop)

	return nil
}

// runTicker periodically broadcasts the condition variable so the physics
// loop's wait behaves as a 1ms-timeout-or-wakeup wait, matching §4.D.2's
// "waits for either a timeout of 1 ms or a wakeup" contract — sync.Cond has
// no built-in timeout, so a ticker supplies it.
func (e *Engine) runTicker(stop chan struct{}) {
	defer e.tickerWG.Done()
	ticker := time.NewTicker(time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			e.mu.Lock()
			e.cond.Broadcast()
			e.mu.Unlock()
		case <-stop:
			return
		}
	}
}

func (e *Engine) runPhysicsLoop(stop chan struct{}) {
	defer e.physicsWG.Done()
	last := time.Now()
	for e.running.Load() {
		e.mu.Lock()
		e.cond.Wait()
		if !e.running.Load() {
			e.mu.Unlock()
			break
		}
		force := e.ffb.Force
		autocenter := e.ffb.Autocenter
		gain := e.ffb.Gain
		offset := e.state.FFBOffset
		velocity := e.state.FFBVelocity
		steering := e.state.Steering
		e.mu.Unlock()

		now := time.Now()
		dt := now.Sub(last).Seconds()
		last = now

		newOffset, newVelocity := physicsStep(force, autocenter, steering, gain, offset, velocity, &e.filtered, dt)

		var rep backend.Report
		var emit bool

		e.mu.Lock()
		e.state.FFBOffset = newOffset
		e.state.FFBVelocity = newVelocity
		e.state.applySteering()
		if e.State() == Enabled {
			rep = e.state.toReport()
			emit = true
		}
		e.mu.Unlock()

		if emit {
			if err := e.backend.Update(rep); err != nil {
				e.logger.Debug("physics report emission failed", "error", err)
			}
		}
	}
	close(stop)
}

// ProcessInputFrame is the input thread's per-tick entry point (§4.D.1).
// Order within a tick: toggle handling, steering accumulation, report
// emission — in that order, as required by the ordering guarantees in §5.
func (e *Engine) ProcessInputFrame(f frame.InputFrame) {
	if f.TogglePressed {
		e.handleToggle()
	}

	switch e.State() {
	case Disabled:
		e.emitNeutral() // neutral-every-tick while disabled; friendlier to hosts
	case Enabled:
		e.mu.Lock()
		e.state.processFrame(f, e.sensitivity)
		rep := e.state.toReport()
		e.mu.Unlock()
		if err := e.backend.Update(rep); err != nil {
			e.logger.Debug("report emission failed", "error", err)
		}
	case Terminating:
	}
}

func (e *Engine) handleToggle() {
	switch e.State() {
	case Disabled:
		if err := e.grabber.Grab(true); err != nil {
			e.logger.Warn("grab failed, staying disabled", "error", err)
			return
		}
		e.engineState.Store(int32(Enabled))
		e.logger.Info("wheel enabled")
	case Enabled:
		e.emitNeutral()
		if err := e.grabber.Grab(false); err != nil {
			e.logger.Warn("ungrab failed", "error", err)
		}
		e.engineState.Store(int32(Disabled))
		e.logger.Info("wheel disabled")
	case Terminating:
	}
}

func (e *Engine) emitNeutral() {
	if err := e.backend.Update(neutralReport()); err != nil {
		e.logger.Debug("neutral report emission failed", "error", err)
	}
}

// Stop transitions to Terminating, stops the FFB thread, releases the
// grab, and releases the backend — in that order, with the physics thread
// joined before the backend is released (§5 Resource discipline).
func (e *Engine) Stop() error {
	e.engineState.Store(int32(Terminating))
	e.running.Store(false)

	e.mu.Lock()
	e.cond.Broadcast()
	e.mu.Unlock()

	e.physicsWG.Wait()
	e.tickerWG.Wait()

	_ = e.grabber.Grab(false)

	return e.backend.Shutdown()
}
