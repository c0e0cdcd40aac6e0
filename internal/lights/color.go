package lights

import "math"

// MaxBrightness is the largest brightness value a device accepts.
const MaxBrightness = 0xFFFF

// DefaultKelvin is a neutral warm-white color temperature used when no
// baseline temperature is known.
const DefaultKelvin = 3500

// Color is a device-native HSBK color. Hue, Saturation and Brightness
// span the full uint16 range; Kelvin is the color temperature in degrees,
// meaningful mostly at low saturation.
type Color struct {
	Hue        uint16
	Saturation uint16
	Brightness uint16
	Kelvin     uint16
}

// FromRGB converts an 8-bit RGB triple to HSBK. Screen content carries no
// temperature information, so kelvin is supplied by the caller, normally
// carried forward from the previously pushed color.
func FromRGB(r, g, b uint8, kelvin uint16) Color {
	red := float64(r) / 255.0
	green := float64(g) / 255.0
	blue := float64(b) / 255.0

	max := math.Max(red, math.Max(green, blue))
	min := math.Min(red, math.Min(green, blue))
	delta := max - min

	var h, s, v float64
	v = max // Brightness is the max of RGB

	if delta == 0 {
		h = 0
		s = 0
	} else { // Chromatic data...
		s = delta / max // Saturation is degree of variation from grey.

		deltaR := (((max - red) / 6) + (delta / 2)) / delta
		deltaG := (((max - green) / 6) + (delta / 2)) / delta
		deltaB := (((max - blue) / 6) + (delta / 2)) / delta

		if red == max {
			h = deltaB - deltaG // Color is closer to red
		} else if green == max {
			h = (1.0 / 3.0) + deltaR - deltaB // Color is closer to green
		} else if blue == max {
			h = (2.0 / 3.0) + deltaG - deltaR // Color is closer to blue
		}

		if h < 0 {
			h += 1
		}
		if h > 1 {
			h -= 1
		}
	}

	return Color{
		Hue:        uint16(math.Round(h * 0xFFFF)),
		Saturation: uint16(math.Round(s * 0xFFFF)),
		Brightness: uint16(math.Round(v * 0xFFFF)),
		Kelvin:     kelvin,
	}
}

// WithBrightnessOffset returns c with offset added to its brightness,
// clamped to [0, MaxBrightness].
func (c Color) WithBrightnessOffset(offset int) Color {
	b := int(c.Brightness) + offset
	if b > MaxBrightness {
		b = MaxBrightness
	}
	if b < 0 {
		b = 0
	}
	c.Brightness = uint16(b)
	return c
}
