package colorsync

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/Energiz3r/LIFX-Control-Panel/internal/lights"
	"github.com/Energiz3r/LIFX-Control-Panel/internal/screen"
)

// Supervisor owns at most one live loop per device key. It bridges a
// controlling thread (UI events, config changes) to loop lifecycles
// without leaking workers or double-starting.
type Supervisor struct {
	ctx  context.Context
	deps Deps

	mu    sync.Mutex
	loops map[string]*Loop
}

// NewSupervisor builds a supervisor whose loops share deps and stop when
// ctx is cancelled.
func NewSupervisor(ctx context.Context, deps Deps) *Supervisor {
	return &Supervisor{
		ctx:   ctx,
		deps:  deps,
		loops: make(map[string]*Loop),
	}
}

// GetOrCreate returns the loop registered under key, creating an idle one
// bound to device if none exists. The device, selector and strategy
// arguments are ignored when a loop already exists.
func (s *Supervisor) GetOrCreate(key string, device lights.Device, selector screen.Selector, strategy screen.Strategy) *Loop {
	s.mu.Lock()
	defer s.mu.Unlock()

	if l, ok := s.loops[key]; ok {
		return l
	}

	l := NewLoop(s.ctx, device, s.deps, selector, strategy)
	s.loops[key] = l
	return l
}

// Replace stops the loop under key and registers a fresh idle loop bound
// to the same device and selector but a new strategy. The old worker
// exits cooperatively; Replace does not wait for it. Returns false if no
// loop exists under key.
func (s *Supervisor) Replace(key string, strategy screen.Strategy) (*Loop, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.loops[key]
	if !ok {
		return nil, false
	}
	old.Stop()

	logger.With(zap.String("deviceKey", key)).Info("Replacing sync loop")
	l := NewLoop(s.ctx, old.device, s.deps, old.selector, strategy)
	s.loops[key] = l
	return l, true
}

// Teardown stops the loop under key and releases it. The worker may still
// be draining its final iteration when Teardown returns; callers needing
// a hard guarantee should poll the loop's State.
func (s *Supervisor) Teardown(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if l, ok := s.loops[key]; ok {
		l.Stop()
		delete(s.loops, key)
	}
}

// TeardownAll stops and releases every loop.
func (s *Supervisor) TeardownAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, l := range s.loops {
		l.Stop()
		delete(s.loops, key)
	}
}

// LoopCount reports how many loops are registered.
func (s *Supervisor) LoopCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.loops)
}
