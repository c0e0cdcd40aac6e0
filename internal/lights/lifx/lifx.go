// Package lifx provides a lights.Device backed by the golifx client. The
// client manages discovery and connections itself, which makes it a better
// fit when the process should not own raw sockets per bulb.
package lifx

import (
	"context"
	"fmt"
	"time"

	"github.com/pdf/golifx"
	"github.com/pdf/golifx/common"
	"github.com/pdf/golifx/protocol"
	"go.uber.org/zap"

	"github.com/Energiz3r/LIFX-Control-Panel/internal/lights"
	"github.com/Energiz3r/LIFX-Control-Panel/internal/logging"
)

var logger = logging.New("lifx")

// Light adapts a golifx light to the lights.Device capability. The golifx
// protocol always waits for delivery confirmation, so rapid pushes degrade
// to acknowledged ones.
type Light struct {
	client      *golifx.Client
	light       common.Light
	label       string
	rapidWarned bool
}

var _ lights.Device = (*Light)(nil)

// Connect builds a golifx client and waits for the light with the given
// label to appear, up to the given timeout.
func Connect(label string, timeout time.Duration) (*Light, error) {
	client, err := golifx.NewClient(&protocol.V2{})
	if err != nil {
		return nil, fmt.Errorf("create golifx client: %w", err)
	}
	client.SetTimeout(timeout)

	l, err := client.GetLightByLabel(label)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("get light %q: %w", label, err)
	}

	resolved, err := l.GetLabel()
	if err != nil {
		logger.With(zap.Error(err)).Warn("Could not read light label")
		resolved = lights.PlaceholderLabel
	}

	return &Light{
		client: client,
		light:  l,
		label:  resolved,
	}, nil
}

func (l *Light) Label() string {
	return l.label
}

// Color reads the light's current color. The golifx API carries its own
// timeout, so ctx only gates entry.
func (l *Light) Color(ctx context.Context) (lights.Color, error) {
	if err := ctx.Err(); err != nil {
		return lights.Color{}, err
	}
	c, err := l.light.GetColor()
	if err != nil {
		return lights.Color{}, fmt.Errorf("get color: %w", err)
	}
	return lights.Color{
		Hue:        c.Hue,
		Saturation: c.Saturation,
		Brightness: c.Brightness,
		Kelvin:     c.Kelvin,
	}, nil
}

func (l *Light) SetColor(ctx context.Context, c lights.Color, transition time.Duration, rapid bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if rapid && !l.rapidWarned {
		l.rapidWarned = true
		logger.Debug("golifx protocol always confirms delivery; rapid pushes are acknowledged")
	}

	err := l.light.SetColor(common.Color{
		Hue:        c.Hue,
		Saturation: c.Saturation,
		Brightness: c.Brightness,
		Kelvin:     c.Kelvin,
	}, transition)
	if err != nil {
		return fmt.Errorf("set color: %w", err)
	}
	return nil
}

func (l *Light) Close() error {
	return l.client.Close()
}
