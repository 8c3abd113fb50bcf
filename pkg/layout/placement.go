package layout

import (
	"image"

	"golang.org/x/image/math/f64"
)

// Placement tells a display surface how to map image pixels onto its container.
// It is one of CropSpec, LetterboxSpec or AffineMatrix.
type Placement interface {
	// Mode is the scale mode that was requested. Out-of-range modes report Fit.
	Mode() ScaleMode
	// ScaleFactor is the uniform scale applied to the image. Always > 0.
	ScaleFactor() float64
	// SourceRect is the region of the image that is drawn.
	SourceRect() image.Rectangle
	// Transform maps image coordinates to container coordinates.
	Transform() f64.Aff3

	placement()
}

// CropSpec scales the image to cover the container and keeps only Source,
// the centered region of the image that lands inside the container.
type CropSpec struct {
	Source    image.Rectangle
	Scale     float64
	Container Dimensions

	mode ScaleMode
}

func (c CropSpec) Mode() ScaleMode             { return c.mode }
func (c CropSpec) ScaleFactor() float64        { return c.Scale }
func (c CropSpec) SourceRect() image.Rectangle { return c.Source }

// Transform stretches Source onto the whole container. The per-axis factors only
// differ from Scale by the rounding of Source.
func (c CropSpec) Transform() f64.Aff3 {
	sx := float64(c.Container.Width) / float64(c.Source.Dx())
	sy := float64(c.Container.Height) / float64(c.Source.Dy())
	return f64.Aff3{
		sx, 0, -float64(c.Source.Min.X) * sx,
		0, sy, -float64(c.Source.Min.Y) * sy,
	}
}

// Shift returns a copy with the crop window moved so its top-left corner is at, clamped
// so it stays inside an image of the given dimensions.
func (c CropSpec) Shift(at image.Point, img Dimensions) CropSpec {
	w, h := c.Source.Dx(), c.Source.Dy()
	x := clampInt(at.X, 0, img.Width-w)
	y := clampInt(at.Y, 0, img.Height-h)
	c.Source = image.Rect(x, y, x+w, y+h)
	return c
}

func (CropSpec) placement() {}

// LetterboxSpec draws the whole image into Dest. Container pixels outside Dest
// are left for the caller to fill.
type LetterboxSpec struct {
	Dest  image.Rectangle
	Scale float64
	Image Dimensions

	mode ScaleMode
}

func (l LetterboxSpec) Mode() ScaleMode             { return l.mode }
func (l LetterboxSpec) ScaleFactor() float64        { return l.Scale }
func (l LetterboxSpec) SourceRect() image.Rectangle { return l.Image.Rect() }

func (l LetterboxSpec) Transform() f64.Aff3 {
	sx := float64(l.Dest.Dx()) / float64(l.Image.Width)
	sy := float64(l.Dest.Dy()) / float64(l.Image.Height)
	return f64.Aff3{
		sx, 0, float64(l.Dest.Min.X),
		0, sy, float64(l.Dest.Min.Y),
	}
}

func (LetterboxSpec) placement() {}

// AffineMatrix is a uniform scale followed by a translation. Size is the
// scaled image size before rounding is applied by the caller.
type AffineMatrix struct {
	Matrix f64.Aff3
	Scale  float64
	Size   Dimensions
	Image  Dimensions

	mode ScaleMode
}

func (a AffineMatrix) Mode() ScaleMode             { return a.mode }
func (a AffineMatrix) ScaleFactor() float64        { return a.Scale }
func (a AffineMatrix) SourceRect() image.Rectangle { return a.Image.Rect() }
func (a AffineMatrix) Transform() f64.Aff3         { return a.Matrix }

// Translation returns the x and y offsets of the matrix.
func (a AffineMatrix) Translation() (float64, float64) {
	return a.Matrix[2], a.Matrix[5]
}

func (AffineMatrix) placement() {}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}
