package screen

import (
	"errors"
	"image"
	"testing"

	"github.com/Energiz3r/LIFX-Control-Panel/internal/lights"
)

func uniformImage(w, h int, r, g, b uint8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = 255
	}
	return img
}

func setPixel(img *image.RGBA, x, y int, r, g, b uint8) {
	i := img.PixOffset(x, y)
	img.Pix[i] = r
	img.Pix[i+1] = g
	img.Pix[i+2] = b
	img.Pix[i+3] = 255
}

func TestAverageColor_Uniform(t *testing.T) {
	initial := lights.Color{Kelvin: 3500}
	for _, size := range []struct{ w, h int }{{1, 1}, {7, 3}, {64, 48}} {
		img := uniformImage(size.w, size.h, 200, 100, 50)
		got, err := AverageColor(img, initial)
		if err != nil {
			t.Fatalf("unexpected error for %dx%d: %v", size.w, size.h, err)
		}
		want := lights.FromRGB(200, 100, 50, 3500)
		if got != want {
			t.Errorf("%dx%d: expected %+v, got %+v", size.w, size.h, want, got)
		}
	}
}

func TestDominantColor_Majority(t *testing.T) {
	// Left three quarters red, right quarter blue. After the 4x
	// downscale red still strictly dominates.
	img := uniformImage(16, 16, 255, 0, 0)
	for y := 0; y < 16; y++ {
		for x := 12; x < 16; x++ {
			setPixel(img, x, y, 0, 0, 255)
		}
	}

	got, err := DominantColor(img, lights.Color{Kelvin: 3500})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := lights.FromRGB(255, 0, 0, 3500)
	if got != want {
		t.Errorf("expected dominant red %+v, got %+v", want, got)
	}
}

func TestDominantColor_SmallImage(t *testing.T) {
	// Smaller than the downscale factor; must still produce a result.
	img := uniformImage(2, 2, 10, 200, 30)
	got, err := DominantColor(img, lights.Color{Kelvin: 3500})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := lights.FromRGB(10, 200, 30, 3500)
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestSamplers_KelvinCarriedForward(t *testing.T) {
	img := uniformImage(8, 8, 120, 80, 40)
	for name, strategy := range map[string]Strategy{"average": AverageColor, "dominant": DominantColor} {
		for _, kelvin := range []uint16{2500, 3500, 9000} {
			got, err := strategy(img, lights.Color{Kelvin: kelvin})
			if err != nil {
				t.Fatalf("%s: unexpected error: %v", name, err)
			}
			if got.Kelvin != kelvin {
				t.Errorf("%s: expected kelvin %d carried forward, got %d", name, kelvin, got.Kelvin)
			}
		}
	}
}

func TestSamplers_Deterministic(t *testing.T) {
	img := uniformImage(16, 16, 30, 60, 90)
	setPixel(img, 0, 0, 200, 10, 10)
	setPixel(img, 15, 15, 10, 200, 10)
	initial := lights.Color{Kelvin: 4000}

	for name, strategy := range map[string]Strategy{"average": AverageColor, "dominant": DominantColor} {
		first, err := strategy(img, initial)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		for i := 0; i < 10; i++ {
			again, err := strategy(img, initial)
			if err != nil {
				t.Fatalf("%s: unexpected error: %v", name, err)
			}
			if again != first {
				t.Errorf("%s: result changed between runs: %+v vs %+v", name, first, again)
			}
		}
	}
}

func TestSamplers_EmptyImage(t *testing.T) {
	empty := image.NewRGBA(image.Rect(0, 0, 0, 0))
	for name, strategy := range map[string]Strategy{"average": AverageColor, "dominant": DominantColor} {
		if _, err := strategy(empty, lights.Color{}); !errors.Is(err, ErrInvalidRegion) {
			t.Errorf("%s: expected ErrInvalidRegion, got %v", name, err)
		}
		if _, err := strategy(nil, lights.Color{}); !errors.Is(err, ErrInvalidRegion) {
			t.Errorf("%s: expected ErrInvalidRegion for nil image, got %v", name, err)
		}
	}
}

func TestStrategyByName(t *testing.T) {
	if _, err := StrategyByName("AVERAGE"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if _, err := StrategyByName("DOMINANT"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if _, err := StrategyByName("MEDIAN"); err == nil {
		t.Error("expected error for unknown strategy")
	}
}
