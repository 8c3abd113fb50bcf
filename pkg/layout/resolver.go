// Package layout computes where a photo goes inside a display container.
//
// Resolve is a pure function of the scale mode and the two sizes. It never
// fails: zero or negative sizes are treated as one pixel.
package layout

import (
	"image"
	"math"

	"golang.org/x/image/math/f64"
)

// Resolve returns the placement of an image of size img inside container for mode.
func Resolve(mode ScaleMode, img, container Dimensions) Placement {
	img = img.Normalize()
	container = container.Normalize()

	if _, known := modeNames[mode]; !known {
		// Out-of-range modes get the Fit policy rather than an error.
		mode = Fit
	}

	switch mode {
	case Fill:
		return fill(mode, img, container)
	case Original:
		return original(mode, img, container)
	case Smart:
		if img.IsLandscape() == container.IsLandscape() {
			return fill(mode, img, container)
		}
		return fit(mode, img, container)
	case Pan:
		return pan(mode, img, container)
	default:
		return fit(mode, img, container)
	}
}

func ratios(img, container Dimensions) (float64, float64) {
	return float64(container.Width) / float64(img.Width),
		float64(container.Height) / float64(img.Height)
}

func fit(mode ScaleMode, img, container Dimensions) LetterboxSpec {
	rx, ry := ratios(img, container)
	return letterbox(mode, img, container, math.Min(rx, ry))
}

func original(mode ScaleMode, img, container Dimensions) LetterboxSpec {
	rx, ry := ratios(img, container)
	return letterbox(mode, img, container, math.Min(1, math.Min(rx, ry)))
}

func letterbox(mode ScaleMode, img, container Dimensions, scale float64) LetterboxSpec {
	w := clampInt(int(math.Round(float64(img.Width)*scale)), 1, container.Width)
	h := clampInt(int(math.Round(float64(img.Height)*scale)), 1, container.Height)
	x := (container.Width - w) / 2
	y := (container.Height - h) / 2
	return LetterboxSpec{
		Dest:  image.Rect(x, y, x+w, y+h),
		Scale: scale,
		Image: img,
		mode:  mode,
	}
}

func fill(mode ScaleMode, img, container Dimensions) CropSpec {
	rx, ry := ratios(img, container)
	scale := math.Max(rx, ry)
	w := clampInt(int(math.Round(float64(container.Width)/scale)), 1, img.Width)
	h := clampInt(int(math.Round(float64(container.Height)/scale)), 1, img.Height)
	x := (img.Width - w) / 2
	y := (img.Height - h) / 2
	return CropSpec{
		Source:    image.Rect(x, y, x+w, y+h),
		Scale:     scale,
		Container: container,
		mode:      mode,
	}
}

func pan(mode ScaleMode, img, container Dimensions) AffineMatrix {
	rx, ry := ratios(img, container)
	scale := math.Max(rx, ry)
	sw := float64(img.Width) * scale
	sh := float64(img.Height) * scale
	tx := (float64(container.Width) - sw) / 2
	ty := (float64(container.Height) - sh) / 2
	return AffineMatrix{
		Matrix: f64.Aff3{scale, 0, tx, 0, scale, ty},
		Scale:  scale,
		Size:   Dimensions{Width: int(math.Round(sw)), Height: int(math.Round(sh))},
		Image:  img,
		mode:   mode,
	}
}
