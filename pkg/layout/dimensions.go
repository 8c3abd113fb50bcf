package layout

import (
	"fmt"
	"image"
)

// Dimensions is the pixel size of an image or of the container it is shown in.
type Dimensions struct {
	Width, Height int
}

// Dims is shorthand for Dimensions{Width: w, Height: h}.
func Dims(w, h int) Dimensions {
	return Dimensions{Width: w, Height: h}
}

// FromRect returns the dimensions of r.
func FromRect(r image.Rectangle) Dimensions {
	return Dimensions{Width: r.Dx(), Height: r.Dy()}
}

// Normalize clamps both sides to at least one pixel.
func (d Dimensions) Normalize() Dimensions {
	return Dimensions{Width: max(d.Width, 1), Height: max(d.Height, 1)}
}

// IsLandscape reports whether the width exceeds the height. Squares are not landscape.
func (d Dimensions) IsLandscape() bool {
	return d.Width > d.Height
}

// Rect returns the rectangle anchored at the origin with these dimensions.
func (d Dimensions) Rect() image.Rectangle {
	return image.Rect(0, 0, d.Width, d.Height)
}

func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}
