// Package blur produces the blurred backdrop copy of a photo.
//
// The blur itself is done by an Engine. A Dispatcher owns one engine session,
// acquires it lazily, clamps the radius and turns every engine failure into
// an unblurred result plus a Signal. Nothing here is safe for concurrent use;
// give each goroutine its own Dispatcher.
package blur

import (
	"errors"
	"fmt"
	"image"
	"strings"
)

// MaxRadius is the largest radius an engine is asked to blur with. Larger
// requests are clamped silently.
const MaxRadius = 25.0

var (
	// ErrUnavailable is returned by engines that cannot blur on this host.
	ErrUnavailable = errors.New("blur engine unavailable")
	// ErrEngineDestroyed is returned by Acquire when the engine cannot be
	// re-created after a session was closed. Dispatchers stop retrying.
	ErrEngineDestroyed = errors.New("blur engine cannot be re-created after release")
	// ErrSessionClosed is returned by Session.Blur after Close.
	ErrSessionClosed = errors.New("blur session is closed")
	// ErrInvalidInput is reported for nil or empty source images.
	ErrInvalidInput = errors.New("blur source is empty")
)

// Engine is a blur accelerator.
type Engine interface {
	Name() string
	// Acquire creates the reusable session that Dispatcher keeps until Release.
	Acquire() (Session, error)
}

// Session is an acquired engine context.
type Session interface {
	// Blur writes src blurred by radius into dst. Both have the same bounds.
	// Scratch resources used by the call are released before it returns.
	Blur(dst, src *image.NRGBA, radius float64) error
	Close() error
}

// Engine names accepted by EngineByName.
const (
	EngineImaging = "imaging"
	EngineBild    = "bild"
	EngineBildBox = "bild-box"
	EngineNone    = "none"
)

// EngineByName returns the engine configured by name. An empty name selects
// the imaging engine.
func EngineByName(name string) (Engine, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", EngineImaging:
		return NewImagingEngine(), nil
	case EngineBild:
		return NewBildEngine(KernelGaussian), nil
	case EngineBildBox:
		return NewBildEngine(KernelBox), nil
	case EngineNone:
		return UnavailableEngine{Reason: "disabled by configuration"}, nil
	default:
		return nil, fmt.Errorf("unknown blur engine %q", name)
	}
}

// UnavailableEngine never acquires. It stands in when blurring is disabled.
type UnavailableEngine struct {
	Reason string
}

func (e UnavailableEngine) Name() string { return EngineNone }

func (e UnavailableEngine) Acquire() (Session, error) {
	if e.Reason == "" {
		return nil, ErrUnavailable
	}
	return nil, fmt.Errorf("%w: %s", ErrUnavailable, e.Reason)
}

// copyInto copies src pixels row by row into dst. Bounds may differ in origin
// but not in size.
func copyInto(dst, src *image.NRGBA) error {
	if dst.Bounds().Dx() != src.Bounds().Dx() || dst.Bounds().Dy() != src.Bounds().Dy() {
		return fmt.Errorf("size mismatch: dst %v, src %v", dst.Bounds(), src.Bounds())
	}
	rowLen := 4 * src.Bounds().Dx()
	for y := 0; y < src.Bounds().Dy(); y++ {
		d := dst.PixOffset(dst.Rect.Min.X, dst.Rect.Min.Y+y)
		s := src.PixOffset(src.Rect.Min.X, src.Rect.Min.Y+y)
		copy(dst.Pix[d:d+rowLen], src.Pix[s:s+rowLen])
	}
	return nil
}
