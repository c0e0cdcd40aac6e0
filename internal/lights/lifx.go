package lights

import (
	"context"
	"fmt"
	"net"
	"time"

	"go.uber.org/zap"
	"go.yhsif.com/lifxlan"
	"go.yhsif.com/lifxlan/light"
)

// LifxLight drives a single LIFX bulb over the LAN protocol. It owns one
// connection to the device; the caller is expected to serialize use (one
// sync loop per device).
type LifxLight struct {
	device light.Device
	conn   net.Conn
	label  string
}

var _ Device = (*LifxLight)(nil)

// WrapLifx dials a discovered LIFX device and wraps it as a light. The
// label is resolved once here, best-effort.
func WrapLifx(ctx context.Context, device lifxlan.Device) (*LifxLight, error) {
	l, err := light.Wrap(ctx, device, false)
	if err != nil {
		return nil, fmt.Errorf("wrap lifx device as light: %w", err)
	}

	conn, err := l.Dial()
	if err != nil {
		return nil, fmt.Errorf("dial lifx light: %w", err)
	}

	label := PlaceholderLabel
	if lbl := l.Label(); lbl != nil {
		label = lbl.String()
	}

	return &LifxLight{
		device: l,
		conn:   conn,
		label:  label,
	}, nil
}

func (l *LifxLight) Label() string {
	return l.label
}

func (l *LifxLight) Color(ctx context.Context) (Color, error) {
	c, err := l.device.GetColor(ctx, l.conn)
	if err != nil {
		return Color{}, fmt.Errorf("get lifx color: %w", err)
	}
	return Color{
		Hue:        c.Hue,
		Saturation: c.Saturation,
		Brightness: c.Brightness,
		Kelvin:     c.Kelvin,
	}, nil
}

// SetColor pushes c to the bulb. rapid skips the acknowledgement wait,
// which keeps continuous syncing from stalling on every push.
func (l *LifxLight) SetColor(ctx context.Context, c Color, transition time.Duration, rapid bool) error {
	lifxColor := &lifxlan.Color{
		Hue:        c.Hue,
		Saturation: c.Saturation,
		Brightness: c.Brightness,
		Kelvin:     c.Kelvin,
	}

	err := l.device.SetColor(ctx, l.conn, lifxColor, transition, !rapid)
	if err != nil {
		return fmt.Errorf("set lifx color: %w", err)
	}
	return nil
}

func (l *LifxLight) Close() error {
	if l.conn == nil {
		return nil
	}
	err := l.conn.Close()
	l.conn = nil
	return err
}

// DiscoverLifx runs LAN discovery until ctx expires and returns every
// responding device wrapped as a light. Devices that fail to wrap or dial
// are logged and skipped.
func DiscoverLifx(ctx context.Context) ([]*LifxLight, error) {
	logger.Info("LIFX discovery starting...")
	devices := make(chan lifxlan.Device)
	go func() {
		if err := lifxlan.Discover(ctx, devices, ""); err != nil {
			if err != context.DeadlineExceeded && ctx.Err() == nil {
				logger.With(zap.Error(err)).Error("Failed to discover LIFX devices")
			}
		}
	}()

	var found []*LifxLight
	seen := make(map[string]bool)

DISCOVER_LOOP:
	for {
		select {
		case device, ok := <-devices:
			if !ok {
				break DISCOVER_LOOP
			}

			target := device.Target().String()
			if seen[target] {
				continue
			}
			seen[target] = true

			wrapped, err := WrapLifx(ctx, device)
			if err != nil {
				logger.With(zap.Any("device", device), zap.Error(err)).Warn("Could not connect to LIFX light")
				continue
			}
			logger.With(zap.String("deviceName", wrapped.Label())).Info("Found LIFX light")
			found = append(found, wrapped)
		case <-ctx.Done():
			break DISCOVER_LOOP
		}
	}

	logger.With(zap.Int("count", len(found))).Info("LIFX discovery complete")
	if len(found) == 0 {
		return nil, fmt.Errorf("lifx discovery found no devices")
	}
	return found, nil
}
