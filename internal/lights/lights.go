package lights

import (
	"context"
	"time"

	"github.com/Energiz3r/LIFX-Control-Panel/internal/logging"
)

var logger = logging.New("lights")

// PlaceholderLabel is substituted when a device's label cannot be read.
// Labels are only used for logging, so a failed lookup is never fatal.
const PlaceholderLabel = "<LABEL-ERR>"

// Device is the capability a sync loop needs from a light. Implementations
// wrap a concrete protocol client; all failures are returned, never retried
// internally.
type Device interface {
	// Label returns the device's label, resolved best-effort at connect
	// time. Returns PlaceholderLabel if the label could not be read.
	Label() string

	// Color reads the device's current color.
	Color(ctx context.Context) (Color, error)

	// SetColor transitions the device to c over the given duration.
	// When rapid is true the command is sent without waiting for an
	// acknowledgement, trading delivery confirmation for throughput.
	SetColor(ctx context.Context, c Color, transition time.Duration, rapid bool) error
}
