package lights

import "testing"

func TestFromRGB_PureRed(t *testing.T) {
	c := FromRGB(255, 0, 0, 3500)
	if c.Hue != 0 {
		t.Errorf("expected hue 0 for pure red, got %d", c.Hue)
	}
	if c.Saturation != 0xFFFF {
		t.Errorf("expected full saturation, got %d", c.Saturation)
	}
	if c.Brightness != 0xFFFF {
		t.Errorf("expected full brightness, got %d", c.Brightness)
	}
}

func TestFromRGB_White(t *testing.T) {
	c := FromRGB(255, 255, 255, 5000)
	if c.Saturation != 0 {
		t.Errorf("expected zero saturation for white, got %d", c.Saturation)
	}
	if c.Brightness != 0xFFFF {
		t.Errorf("expected full brightness for white, got %d", c.Brightness)
	}
	if c.Kelvin != 5000 {
		t.Errorf("expected kelvin 5000 to carry through, got %d", c.Kelvin)
	}
}

func TestFromRGB_Black(t *testing.T) {
	c := FromRGB(0, 0, 0, 3500)
	if c.Brightness != 0 || c.Saturation != 0 || c.Hue != 0 {
		t.Errorf("expected black to map to zero HSB, got %+v", c)
	}
}

func TestFromRGB_PureGreen(t *testing.T) {
	c := FromRGB(0, 255, 0, 3500)
	// Green sits a third of the way around the hue circle.
	want := uint16(0xFFFF / 3)
	if diff := int(c.Hue) - int(want); diff < -2 || diff > 2 {
		t.Errorf("expected hue near %d for pure green, got %d", want, c.Hue)
	}
}

func TestWithBrightnessOffset_Clamp(t *testing.T) {
	c := Color{Brightness: 60000}
	got := c.WithBrightnessOffset(10000)
	if got.Brightness != MaxBrightness {
		t.Errorf("expected brightness clamped to %d, got %d", MaxBrightness, got.Brightness)
	}
}

func TestWithBrightnessOffset_Exact(t *testing.T) {
	c := Color{Brightness: 1000}
	got := c.WithBrightnessOffset(500)
	if got.Brightness != 1500 {
		t.Errorf("expected brightness 1500, got %d", got.Brightness)
	}
}

func TestWithBrightnessOffset_NegativeFloor(t *testing.T) {
	c := Color{Brightness: 100}
	got := c.WithBrightnessOffset(-500)
	if got.Brightness != 0 {
		t.Errorf("expected brightness floored at 0, got %d", got.Brightness)
	}
}
