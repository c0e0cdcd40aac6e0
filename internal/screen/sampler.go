package screen

import (
	"fmt"
	"image"
	"math"

	"golang.org/x/image/draw"

	"github.com/Energiz3r/LIFX-Control-Panel/internal/lights"
)

// Strategy reduces captured pixels to one device color. Strategies are
// pure: identical pixels and initial color always produce the same result.
// The kelvin component of initial is carried into the result, since screen
// content cannot infer color temperature.
type Strategy func(img *image.RGBA, initial lights.Color) (lights.Color, error)

// StrategyByName maps a configured strategy name to its implementation.
func StrategyByName(name string) (Strategy, error) {
	switch name {
	case "AVERAGE":
		return AverageColor, nil
	case "DOMINANT":
		return DominantColor, nil
	default:
		return nil, fmt.Errorf("unknown color strategy: %v", name)
	}
}

// hamming is the resampling filter used for downscaling, matching the
// smooth window the desktop tooling this replaces used for its resizes.
var hamming = &draw.Kernel{
	Support: 1.0,
	At: func(t float64) float64 {
		if t < 0 {
			t = -t
		}
		if t >= 1 {
			return 0
		}
		return 0.54 + 0.46*math.Cos(math.Pi*t)
	},
}

// AverageColor reduces the image to a single pixel with a Hamming-windowed
// downscale, which yields the mean color of the whole capture.
func AverageColor(img *image.RGBA, initial lights.Color) (lights.Color, error) {
	if err := validateImage(img); err != nil {
		return lights.Color{}, err
	}

	dst := image.NewRGBA(image.Rect(0, 0, 1, 1))
	hamming.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)

	return lights.FromRGB(dst.Pix[0], dst.Pix[1], dst.Pix[2], initial.Kelvin), nil
}

// dominantDownscale bounds the histogram cost for large captures.
const dominantDownscale = 4

// DominantColor returns the most frequent color of the capture. The image
// is downscaled by a fixed factor, each pixel quantized into a single
// integer bucket, and the histogram mode decoded back to RGB. Ties break
// toward the smallest bucket so the result is deterministic.
func DominantColor(img *image.RGBA, initial lights.Color) (lights.Color, error) {
	if err := validateImage(img); err != nil {
		return lights.Color{}, err
	}

	bounds := img.Bounds()
	w := bounds.Dx() / dominantDownscale
	h := bounds.Dy() / dominantDownscale
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	small := image.NewRGBA(image.Rect(0, 0, w, h))
	hamming.Scale(small, small.Bounds(), img, bounds, draw.Src, nil)

	counts := make(map[uint32]int)
	for i := 0; i < len(small.Pix); i += 4 {
		bucket := uint32(small.Pix[i])<<16 | uint32(small.Pix[i+1])<<8 | uint32(small.Pix[i+2])
		counts[bucket]++
	}

	var best uint32
	bestCount := -1
	for bucket, count := range counts {
		if count > bestCount || (count == bestCount && bucket < best) {
			bestCount = count
			best = bucket
		}
	}

	r := uint8(best >> 16)
	g := uint8(best >> 8)
	b := uint8(best)
	return lights.FromRGB(r, g, b, initial.Kelvin), nil
}

func validateImage(img *image.RGBA) error {
	if img == nil || img.Bounds().Dx() <= 0 || img.Bounds().Dy() <= 0 {
		return fmt.Errorf("sample: %w", ErrInvalidRegion)
	}
	return nil
}
