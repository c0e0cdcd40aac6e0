package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	s, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Protocol != "LAN" {
		t.Errorf("expected default protocol LAN, got %q", s.Protocol)
	}
	if s.ColorStrategy != "AVERAGE" {
		t.Errorf("expected default strategy AVERAGE, got %q", s.ColorStrategy)
	}
	if s.DefaultRegion != "full" {
		t.Errorf("expected default region full, got %q", s.DefaultRegion)
	}
	if !s.Continuous {
		t.Error("expected continuous by default")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("TRANSITION_DURATION", "1s")
	t.Setenv("BRIGHTNESS_OFFSET", "2000")
	t.Setenv("CONTINUOUS", "false")

	s, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Duration != time.Second {
		t.Errorf("expected 1s duration, got %v", s.Duration)
	}
	if s.BrightnessOffset != 2000 {
		t.Errorf("expected offset 2000, got %d", s.BrightnessOffset)
	}
	if s.Continuous {
		t.Error("expected continuous disabled")
	}
}

func TestStore_LiveUpdates(t *testing.T) {
	st := NewStore(Settings{
		Duration:         300 * time.Millisecond,
		BrightnessOffset: 0,
		Continuous:       true,
	})

	tun, err := st.Tunables()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tun.Duration != 300*time.Millisecond || tun.BrightnessOffset != 0 || !tun.Continuous {
		t.Fatalf("unexpected initial tunables: %+v", tun)
	}

	st.SetDuration(time.Second)
	st.SetBrightnessOffset(-500)
	st.SetContinuous(false)

	tun, _ = st.Tunables()
	if tun.Duration != time.Second || tun.BrightnessOffset != -500 || tun.Continuous {
		t.Errorf("expected updated tunables, got %+v", tun)
	}
}
