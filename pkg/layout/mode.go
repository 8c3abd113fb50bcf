package layout

import (
	"strconv"
	"strings"
)

// ScaleMode selects how an image is placed inside its container.
type ScaleMode int

const (
	// Fit letterboxes the whole image inside the container, preserving aspect ratio.
	Fit ScaleMode = iota
	// Fill crops the image so it covers the container, preserving aspect ratio.
	Fill
	// Original shows the image at its intrinsic size, shrinking it only when it
	// does not fit. It is never upscaled.
	Original
	// Smart uses Fill when image and container share an orientation and Fit otherwise.
	Smart
	// Pan scales the image to cover the container and centers it with an affine
	// transform. Overflow is left to the viewport to clip.
	Pan
)

var modeNames = map[ScaleMode]string{
	Fit:      "fit",
	Fill:     "fill",
	Original: "original",
	Smart:    "smart",
	Pan:      "pan",
}

// Modes lists every supported scale mode in declaration order.
func Modes() []ScaleMode {
	return []ScaleMode{Fit, Fill, Original, Smart, Pan}
}

func (m ScaleMode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return "ScaleMode(" + strconv.Itoa(int(m)) + ")"
}

// ParseScaleMode maps a configuration string to a ScaleMode. Matching ignores
// case and surrounding whitespace. Unknown names return Fit and false.
func ParseScaleMode(s string) (ScaleMode, bool) {
	name := strings.ToLower(strings.TrimSpace(s))
	for mode, n := range modeNames {
		if n == name {
			return mode, true
		}
	}
	return Fit, false
}
