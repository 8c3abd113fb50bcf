package blur

import (
	"image"

	"github.com/disintegration/imaging"
)

// ImagingEngine runs a Gaussian blur on the CPU through imaging.
type ImagingEngine struct{}

// NewImagingEngine returns the default software engine.
func NewImagingEngine() *ImagingEngine {
	return &ImagingEngine{}
}

func (e *ImagingEngine) Name() string { return EngineImaging }

func (e *ImagingEngine) Acquire() (Session, error) {
	return &imagingSession{}, nil
}

// Sigma converts a blur radius to the Gaussian standard deviation used by
// hardware blur intrinsics, so radii look alike across engines.
func Sigma(radius float64) float64 {
	return 0.4*radius + 0.6
}

type imagingSession struct {
	closed bool
}

func (s *imagingSession) Blur(dst, src *image.NRGBA, radius float64) error {
	if s.closed {
		return ErrSessionClosed
	}
	return copyInto(dst, imaging.Blur(src, Sigma(radius)))
}

func (s *imagingSession) Close() error {
	s.closed = true
	return nil
}
