package layout

import (
	"image"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sizes = []Dimensions{
	{1, 1}, {1, 1000}, {1000, 1}, {50, 50}, {100, 200}, {200, 100},
	{1920, 1080}, {1080, 1920}, {3440, 1440}, {2000, 2000}, {640, 480}, {7, 3},
}

func TestResolve_Fit(t *testing.T) {
	p := Resolve(Fit, Dims(1920, 1080), Dims(1000, 1000))
	lb, ok := p.(LetterboxSpec)
	require.True(t, ok, "Fit should produce a LetterboxSpec, got %T", p)

	assert.InDelta(t, 1000.0/1920.0, lb.Scale, 1e-9)
	assert.Equal(t, image.Rect(0, 218, 1000, 781), lb.Dest)
	assert.Equal(t, Dims(1920, 1080), lb.Image)
}

func TestResolve_Fill(t *testing.T) {
	p := Resolve(Fill, Dims(2000, 2000), Dims(1920, 1080))
	crop, ok := p.(CropSpec)
	require.True(t, ok, "Fill should produce a CropSpec, got %T", p)

	assert.InDelta(t, 0.96, crop.Scale, 1e-9)
	assert.Equal(t, image.Rect(0, 437, 2000, 1562), crop.Source)

	m := crop.Transform()
	assert.InDelta(t, 0.96, m[0], 1e-9)
	assert.InDelta(t, 0.96, m[4], 1e-9)
	assert.InDelta(t, 0.0, m[2], 1e-9)
	assert.InDelta(t, -437*0.96, m[5], 1e-9)
}

func TestResolve_Original(t *testing.T) {
	t.Run("SmallImageKeepsIntrinsicSize", func(t *testing.T) {
		lb := Resolve(Original, Dims(100, 50), Dims(1000, 1000)).(LetterboxSpec)
		assert.Equal(t, 1.0, lb.Scale)
		assert.Equal(t, image.Rect(450, 475, 550, 525), lb.Dest)
	})

	t.Run("LargeImageShrinks", func(t *testing.T) {
		lb := Resolve(Original, Dims(4000, 2000), Dims(1000, 1000)).(LetterboxSpec)
		assert.Equal(t, 0.25, lb.Scale)
		assert.Equal(t, image.Rect(0, 250, 1000, 750), lb.Dest)
	})

	t.Run("NeverUpscales", func(t *testing.T) {
		for _, img := range sizes {
			for _, c := range sizes {
				assert.LessOrEqual(t, Resolve(Original, img, c).ScaleFactor(), 1.0, "%v in %v", img, c)
			}
		}
	})
}

func TestResolve_Pan(t *testing.T) {
	p := Resolve(Pan, Dims(100, 200), Dims(50, 50))
	am, ok := p.(AffineMatrix)
	require.True(t, ok, "Pan should produce an AffineMatrix, got %T", p)

	assert.Equal(t, 0.5, am.Scale)
	assert.Equal(t, Dims(50, 100), am.Size)
	tx, ty := am.Translation()
	assert.Equal(t, 0.0, tx)
	assert.Equal(t, -25.0, ty)
	assert.Equal(t, am.Matrix, am.Transform())
	assert.Equal(t, 0.5, am.Matrix[0])
	assert.Equal(t, 0.5, am.Matrix[4])
	assert.Equal(t, 0.0, am.Matrix[1])
	assert.Equal(t, 0.0, am.Matrix[3])
}

func TestResolve_SmartMatchesFillOrFit(t *testing.T) {
	for _, img := range sizes {
		for _, c := range sizes {
			got := Resolve(Smart, img, c)
			assert.Equal(t, Smart, got.Mode())
			if img.IsLandscape() == c.IsLandscape() {
				want := Resolve(Fill, img, c).(CropSpec)
				want.mode = Smart
				assert.Equal(t, want, got, "%v in %v should fill", img, c)
			} else {
				want := Resolve(Fit, img, c).(LetterboxSpec)
				want.mode = Smart
				assert.Equal(t, want, got, "%v in %v should fit", img, c)
			}
		}
	}
}

func TestResolve_SmartSquareFills(t *testing.T) {
	// Squares are not landscape, so a square in a square fills.
	_, ok := Resolve(Smart, Dims(500, 500), Dims(300, 300)).(CropSpec)
	assert.True(t, ok)

	// A square in a portrait container shares the not-landscape orientation.
	_, ok = Resolve(Smart, Dims(500, 500), Dims(300, 600)).(CropSpec)
	assert.True(t, ok)

	// A square in a landscape container fits.
	_, ok = Resolve(Smart, Dims(500, 500), Dims(600, 300)).(LetterboxSpec)
	assert.True(t, ok)
}

func TestResolve_UnknownModeFallsBackToFit(t *testing.T) {
	img, c := Dims(640, 480), Dims(300, 600)
	assert.Equal(t, Resolve(Fit, img, c), Resolve(ScaleMode(42), img, c))
	assert.Equal(t, Resolve(Fit, img, c), Resolve(ScaleMode(-1), img, c))
	assert.Equal(t, Fit, Resolve(ScaleMode(42), img, c).Mode())
}

func TestResolve_ReportsRequestedMode(t *testing.T) {
	for _, mode := range Modes() {
		t.Run(mode.String(), func(t *testing.T) {
			for _, img := range sizes {
				for _, c := range sizes {
					assert.Equal(t, mode, Resolve(mode, img, c).Mode(), "%v in %v", img, c)
				}
			}
		})
	}
}

func TestResolve_DegenerateSizes(t *testing.T) {
	for _, mode := range Modes() {
		t.Run(mode.String(), func(t *testing.T) {
			p := Resolve(mode, Dims(0, 0), Dims(-5, 10))
			assert.Greater(t, p.ScaleFactor(), 0.0)
			assert.False(t, p.SourceRect().Empty())
		})
	}
}

func TestResolve_ScaleAlwaysPositive(t *testing.T) {
	for _, mode := range Modes() {
		for _, img := range sizes {
			for _, c := range sizes {
				p := Resolve(mode, img, c)
				s := p.ScaleFactor()
				assert.False(t, math.IsNaN(s), "%v %v in %v", mode, img, c)
				assert.False(t, math.IsInf(s, 0), "%v %v in %v", mode, img, c)
				assert.Greater(t, s, 0.0, "%v %v in %v", mode, img, c)
				for _, v := range p.Transform() {
					assert.False(t, math.IsNaN(v), "%v %v in %v", mode, img, c)
				}
			}
		}
	}
}

func TestResolve_RectsStayInBounds(t *testing.T) {
	for _, img := range sizes {
		for _, c := range sizes {
			lb := Resolve(Fit, img, c).(LetterboxSpec)
			assert.True(t, lb.Dest.In(c.Rect()), "fit dest %v outside %v", lb.Dest, c)

			crop := Resolve(Fill, img, c).(CropSpec)
			assert.True(t, crop.Source.In(img.Rect()), "fill source %v outside %v", crop.Source, img)
			assert.False(t, crop.Source.Empty())

			// Centered: the margins on either side differ by at most one pixel.
			left, right := crop.Source.Min.X, img.Width-crop.Source.Max.X
			top, bottom := crop.Source.Min.Y, img.Height-crop.Source.Max.Y
			assert.LessOrEqual(t, abs(left-right), 1)
			assert.LessOrEqual(t, abs(top-bottom), 1)
		}
	}
}

func TestCropSpec_Shift(t *testing.T) {
	crop := Resolve(Fill, Dims(2000, 2000), Dims(1920, 1080)).(CropSpec)

	moved := crop.Shift(image.Pt(0, 100), Dims(2000, 2000))
	assert.Equal(t, image.Rect(0, 100, 2000, 1225), moved.Source)
	assert.Equal(t, crop.Scale, moved.Scale)

	clamped := crop.Shift(image.Pt(-50, 5000), Dims(2000, 2000))
	assert.Equal(t, image.Rect(0, 875, 2000, 2000), clamped.Source)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
