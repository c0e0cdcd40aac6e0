// Package colorsync continuously matches a light's color to the screen.
// Each Loop owns one background worker that captures the screen, reduces
// it to a single HSBK color and pushes it to a device. Workers are
// started and stopped cooperatively from a controlling thread and never
// die from a transient device failure.
package colorsync

import (
	"context"
	"time"

	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/Energiz3r/LIFX-Control-Panel/internal/config"
	"github.com/Energiz3r/LIFX-Control-Panel/internal/lights"
	"github.com/Energiz3r/LIFX-Control-Panel/internal/logging"
	"github.com/Energiz3r/LIFX-Control-Panel/internal/screen"
)

var logger = logging.New("colorsync")

// deviceTimeout bounds a single device read or push. Rapid pushes return
// immediately; acknowledged ones wait for the bulb to confirm.
const deviceTimeout = 2 * time.Second

// failureDelay paces retries after a failed iteration so a persistent
// fault does not spin the worker hot.
const failureDelay = 25 * time.Millisecond

// State is a loop's lifecycle state.
type State int32

const (
	// StateIdle means no worker is running; Start will spawn one.
	StateIdle State = iota
	// StateRunning means the worker is iterating.
	StateRunning
	// StateStopRequested means the worker will exit at its next check.
	StateStopRequested
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopRequested:
		return "stop-requested"
	default:
		return "unknown"
	}
}

// Deps are the collaborators shared by every loop the process runs.
type Deps struct {
	Capturer screen.Capturer
	Resolver *screen.Resolver
	Provider config.Provider
}

// Loop synchronizes one device with the screen. All fields except the
// state word are owned by either the constructor or the single worker
// goroutine; the controlling side interacts only through Start, Stop,
// State and Updates.
type Loop struct {
	ctx      context.Context
	device   lights.Device
	deps     Deps
	selector screen.Selector
	strategy screen.Strategy
	logger   *zap.SugaredLogger

	state   atomic.Int32
	prev    lights.Color
	updates chan lights.Color
}

// NewLoop builds an idle loop bound to device. The context bounds the
// lifetime of every worker the loop ever spawns; cancelling it stops the
// loop as surely as Stop does.
func NewLoop(ctx context.Context, device lights.Device, deps Deps, selector screen.Selector, strategy screen.Strategy) *Loop {
	l := &Loop{
		ctx:      ctx,
		device:   device,
		deps:     deps,
		selector: selector,
		strategy: strategy,
		logger:   logger.With(zap.String("deviceName", device.Label())),
		updates:  make(chan lights.Color, 8),
	}
	l.logger.With(zap.String("selector", selector.Name)).Info("Initialized sync loop")
	return l
}

// State returns the loop's current lifecycle state.
func (l *Loop) State() State {
	return State(l.state.Load())
}

// Updates emits each newly pushed color that differs from the previous
// one, so an observing UI can react without polling. Sends never block
// the worker; when the buffer is full the oldest update is dropped.
func (l *Loop) Updates() <-chan lights.Color {
	return l.updates
}

// Start spawns the background worker. Calling Start on a loop that is not
// idle is a logged no-op, so concurrent or repeated starts spawn exactly
// one worker.
func (l *Loop) Start() {
	if !l.state.CompareAndSwap(int32(StateIdle), int32(StateRunning)) {
		l.logger.Debug("Start ignored: sync loop is not idle")
		return
	}
	go l.run()
}

// Stop requests a cooperative stop. It does not wait for the worker to
// observe it; worst-case stop latency is one full iteration. Stopping a
// loop that is not running is a logged no-op.
func (l *Loop) Stop() {
	if !l.state.CompareAndSwap(int32(StateRunning), int32(StateStopRequested)) {
		l.logger.Debug("Stop ignored: sync loop is not running")
	}
}

func (l *Loop) run() {
	defer l.state.Store(int32(StateIdle))

	l.logger.Debug("Starting color match")
	l.prev = l.baseline()

	for l.state.Load() == int32(StateRunning) && l.ctx.Err() == nil {
		if !l.iterate() {
			time.Sleep(failureDelay)
		}
	}

	l.logger.Debug("Color match finished")
}

// baseline reads the device's current color as the first accumulation
// seed. Sampling needs it for the kelvin carry-forward, so a failed read
// falls back to warm white rather than aborting the loop.
func (l *Loop) baseline() lights.Color {
	ctx, cancel := context.WithTimeout(l.ctx, deviceTimeout)
	defer cancel()

	c, err := l.device.Color(ctx)
	if err != nil {
		l.logger.With(zap.Error(err)).Warn("Could not read device color for baseline; using warm white")
		return lights.Color{Brightness: lights.MaxBrightness, Kelvin: lights.DefaultKelvin}
	}
	return c
}

// iterate runs one capture-sample-push cycle. Every failure inside it,
// panics included, is logged and contained so the worker survives to the
// next iteration.
func (l *Loop) iterate() (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.With(zap.Any("panic", r)).Error("Iteration panicked")
			ok = false
		}
	}()

	tunables, err := l.deps.Provider.Tunables()
	if err != nil {
		l.logger.With(zap.Error(err)).Error("Configuration unavailable; skipping iteration")
		return false
	}

	region, err := l.deps.Resolver.Resolve(l.selector)
	if err != nil {
		l.logger.With(zap.Error(err)).Error("Failed to resolve capture region")
		return false
	}

	captureStart := time.Now()
	img, err := l.deps.Capturer.Capture(region)
	captureDuration := time.Since(captureStart)
	if err != nil {
		l.logger.With(zap.Error(err)).Error("Failed to capture screen")
		return false
	}

	sampleStart := time.Now()
	c, err := l.strategy(img, l.prev)
	sampleDuration := time.Since(sampleStart)
	if err != nil {
		l.logger.With(zap.Error(err)).Error("Failed to sample color")
		return false
	}

	c = c.WithBrightnessOffset(tunables.BrightnessOffset)

	pushCtx, cancel := context.WithTimeout(l.ctx, deviceTimeout)
	pushStart := time.Now()
	err = l.device.SetColor(pushCtx, c, tunables.Duration, tunables.Continuous)
	pushDuration := time.Since(pushStart)
	cancel()
	if err != nil {
		// Transient by policy: keep the previous baseline and go around.
		l.logger.With(zap.Error(err)).Warn("Failed to push color to device")
		return false
	}

	l.logger.With(
		zap.Any("color", c),
		zap.Stringer("captureDuration", captureDuration),
		zap.Stringer("sampleDuration", sampleDuration),
		zap.Stringer("pushDuration", pushDuration)).
		Debug("Pushed color")

	if c != l.prev {
		l.notify(c)
	}
	l.prev = c

	if !tunables.Continuous {
		// One-shot mode: a single successful push, then halt.
		l.Stop()
	}
	return true
}

func (l *Loop) notify(c lights.Color) {
	select {
	case l.updates <- c:
	default:
		// Full buffer: drop the oldest update so observers see the
		// latest color.
		select {
		case <-l.updates:
		default:
		}
		select {
		case l.updates <- c:
		default:
		}
	}
}
