package blur

import (
	"fmt"
	"image"

	bildblur "github.com/anthonynsimon/bild/blur"
	"golang.org/x/image/draw"
)

// Kernel selects the bild blur filter.
type Kernel int

const (
	KernelGaussian Kernel = iota
	KernelBox
)

func (k Kernel) String() string {
	switch k {
	case KernelGaussian:
		return "gaussian"
	case KernelBox:
		return "box"
	default:
		return fmt.Sprintf("Kernel(%d)", int(k))
	}
}

// BildEngine blurs with bild, which spreads the work over all CPUs.
type BildEngine struct {
	kernel Kernel
}

// NewBildEngine returns a bild engine using kernel.
func NewBildEngine(kernel Kernel) *BildEngine {
	return &BildEngine{kernel: kernel}
}

func (e *BildEngine) Name() string {
	if e.kernel == KernelBox {
		return EngineBildBox
	}
	return EngineBild
}

func (e *BildEngine) Acquire() (Session, error) {
	switch e.kernel {
	case KernelGaussian:
		return &bildSession{program: bildblur.Gaussian}, nil
	case KernelBox:
		return &bildSession{program: bildblur.Box}, nil
	default:
		return nil, fmt.Errorf("%w: unsupported kernel %s", ErrUnavailable, e.kernel)
	}
}

type bildSession struct {
	program func(image.Image, float64) *image.RGBA
}

func (s *bildSession) Blur(dst, src *image.NRGBA, radius float64) error {
	if s.program == nil {
		return ErrSessionClosed
	}
	out := s.program(src, radius)
	if out.Bounds().Dx() != dst.Bounds().Dx() || out.Bounds().Dy() != dst.Bounds().Dy() {
		return fmt.Errorf("bild returned %v for %v", out.Bounds(), src.Bounds())
	}
	draw.Draw(dst, dst.Bounds(), out, out.Bounds().Min, draw.Src)
	return nil
}

func (s *bildSession) Close() error {
	s.program = nil
	return nil
}
