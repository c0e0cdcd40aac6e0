package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env"
	"go.uber.org/atomic"
)

// Settings is the session configuration, fixed for a loop's lifetime. It
// seeds the live tunables and selects device, region and strategy.
type Settings struct {
	DeviceLabel      string        `env:"LIFX_LABEL" envDefault:""`
	Protocol         string        `env:"LIFX_PROTOCOL" envDefault:"LAN"`
	DiscoveryTimeout time.Duration `env:"DISCOVERY_TIMEOUT" envDefault:"5s"`
	ScreenNumber     int           `env:"SCREEN_NUMBER" envDefault:"0"`
	DefaultRegion    string        `env:"DEFAULT_REGION" envDefault:"full"`
	ColorStrategy    string        `env:"COLOR_STRATEGY" envDefault:"AVERAGE"`
	Duration         time.Duration `env:"TRANSITION_DURATION" envDefault:"300ms"`
	BrightnessOffset int           `env:"BRIGHTNESS_OFFSET" envDefault:"0"`
	Continuous       bool          `env:"CONTINUOUS" envDefault:"true"`
}

// Load reads Settings from the environment.
func Load() (Settings, error) {
	s := Settings{}
	if err := env.Parse(&s); err != nil {
		return Settings{}, fmt.Errorf("parse environment variables: %w", err)
	}
	return s, nil
}

// Tunables are the live-adjustable values a sync loop re-reads on every
// iteration, so edits take effect on the next tick without a restart.
type Tunables struct {
	Duration         time.Duration
	BrightnessOffset int
	Continuous       bool
}

// Provider yields the current tunables. Implementations backed by an
// external source may fail; the loop treats that as a per-iteration
// diagnostic, not a fatal condition.
type Provider interface {
	Tunables() (Tunables, error)
}

// Store is an in-memory Provider whose fields can be updated concurrently
// from a controlling thread (for example a brightness slider).
type Store struct {
	duration   atomic.Duration
	offset     atomic.Int64
	continuous atomic.Bool
}

var _ Provider = (*Store)(nil)

// NewStore seeds a Store from session settings.
func NewStore(s Settings) *Store {
	st := &Store{}
	st.duration.Store(s.Duration)
	st.offset.Store(int64(s.BrightnessOffset))
	st.continuous.Store(s.Continuous)
	return st
}

func (s *Store) Tunables() (Tunables, error) {
	return Tunables{
		Duration:         s.duration.Load(),
		BrightnessOffset: int(s.offset.Load()),
		Continuous:       s.continuous.Load(),
	}, nil
}

func (s *Store) SetDuration(d time.Duration) {
	s.duration.Store(d)
}

func (s *Store) SetBrightnessOffset(offset int) {
	s.offset.Store(int64(offset))
}

func (s *Store) SetContinuous(continuous bool) {
	s.continuous.Store(continuous)
}
