package screen

import (
	"errors"
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/kbinani/screenshot"

	"github.com/Energiz3r/LIFX-Control-Panel/internal/logging"
)

var logger = logging.New("screen")

// ErrInvalidRegion reports degenerate capture geometry. It is a
// precondition failure: callers must fix the region, not retry.
var ErrInvalidRegion = errors.New("invalid capture region")

// Region describes what to capture: either the entire primary display
// (Full) or an explicit rectangle in display coordinates.
type Region struct {
	Full   bool
	Left   int
	Top    int
	Width  int
	Height int
}

// FullScreen is the sentinel region for the entire primary display.
var FullScreen = Region{Full: true}

// Valid reports whether the region has capturable geometry.
func (r Region) Valid() bool {
	return r.Full || (r.Width > 0 && r.Height > 0)
}

func (r Region) String() string {
	if r.Full {
		return "full"
	}
	return fmt.Sprintf("%d,%d,%d,%d", r.Left, r.Top, r.Width, r.Height)
}

// ParseRegion parses a configured region: "full" for the whole primary
// display, or "left,top,width,height".
func ParseRegion(s string) (Region, error) {
	if strings.Contains(strings.ToLower(strings.TrimSpace(s)), "full") {
		return FullScreen, nil
	}

	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return Region{}, fmt.Errorf("parse region %q: want \"full\" or 4 comma-separated integers", s)
	}
	vals := make([]int, 4)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Region{}, fmt.Errorf("parse region %q: %w", s, err)
		}
		vals[i] = v
	}

	r := Region{Left: vals[0], Top: vals[1], Width: vals[2], Height: vals[3]}
	if !r.Valid() {
		return Region{}, fmt.Errorf("parse region %q: %w", s, ErrInvalidRegion)
	}
	return r, nil
}

// Capturer grabs pixels for a region. Implementations must honor the
// full-screen sentinel.
type Capturer interface {
	Capture(r Region) (*image.RGBA, error)
}

// DisplayCapturer captures from a physical display. 0 is the primary
// display.
type DisplayCapturer struct {
	Display int
}

var _ Capturer = DisplayCapturer{}

func (d DisplayCapturer) Capture(r Region) (*image.RGBA, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("capture display %d: %w", d.Display, ErrInvalidRegion)
	}
	if r.Full {
		return screenshot.CaptureDisplay(d.Display)
	}

	bounds := screenshot.GetDisplayBounds(d.Display)
	rect := image.Rect(
		bounds.Min.X+r.Left,
		bounds.Min.Y+r.Top,
		bounds.Min.X+r.Left+r.Width,
		bounds.Min.Y+r.Top+r.Height,
	)
	return screenshot.CaptureRect(rect)
}
