package blur

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// State is the lifecycle state of a Dispatcher's engine session.
type State int

const (
	StateUninitialized State = iota
	StateReady
	StateUnavailable
	StateDestroyed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateReady:
		return "ready"
	case StateUnavailable:
		return "unavailable"
	case StateDestroyed:
		return "destroyed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Result is the output of Dispatcher.Blur. It is owned by the caller.
type Result struct {
	Image  image.Image
	Width  int
	Height int
	// Radius is the effective radius, zero when nothing was blurred.
	Radius float64
	// Applied is false when Image is the unmodified source.
	Applied bool
}

// Dispatcher runs blurs on one lazily acquired engine session.
type Dispatcher struct {
	engine  Engine
	session Session
	state   State
	// permanent is set once the engine refused to be re-created.
	permanent bool
	signal    SignalFunc
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithSignalHandler routes degradation signals to fn instead of the log.
func WithSignalHandler(fn SignalFunc) Option {
	return func(d *Dispatcher) {
		if fn != nil {
			d.signal = fn
		}
	}
}

// NewDispatcher returns a dispatcher for engine. A nil engine never blurs.
func NewDispatcher(engine Engine, opts ...Option) *Dispatcher {
	if engine == nil {
		engine = UnavailableEngine{Reason: "no engine configured"}
	}
	d := &Dispatcher{engine: engine, signal: LogSignal}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// EffectiveRadius clamps radius to [0, MaxRadius]. NaN counts as zero.
func EffectiveRadius(radius float64) float64 {
	if math.IsNaN(radius) || radius <= 0 {
		return 0
	}
	return math.Min(radius, MaxRadius)
}

// State returns the session state.
func (d *Dispatcher) State() State {
	return d.state
}

// Engine returns the engine the dispatcher acquires sessions from.
func (d *Dispatcher) Engine() Engine {
	return d.engine
}

// Blur returns src blurred by radius. It never fails: when the radius is not
// positive, or the engine is unavailable or fails, the result carries src
// itself with Applied set to false.
func (d *Dispatcher) Blur(src image.Image, radius float64) Result {
	res := passthrough(src)
	if src == nil || src.Bounds().Empty() {
		d.signal(SignalInvalidInput, ErrInvalidInput)
		return res
	}

	r := EffectiveRadius(radius)
	if r == 0 {
		return res
	}

	session, err := d.acquire()
	if err != nil {
		d.signal(SignalBlurUnavailable, err)
		return res
	}

	out, err := d.run(session, src, r)
	if err != nil {
		d.signal(SignalBlurFailed, err)
		return res
	}

	return Result{
		Image:   out,
		Width:   out.Bounds().Dx(),
		Height:  out.Bounds().Dy(),
		Radius:  r,
		Applied: true,
	}
}

// Release closes the engine session if one is held. It is safe to call any
// number of times, including before the first Blur.
func (d *Dispatcher) Release() error {
	if d.session == nil {
		return nil
	}
	s := d.session
	d.session = nil
	d.state = StateDestroyed
	if err := s.Close(); err != nil {
		return fmt.Errorf("closing %s session: %w", d.engine.Name(), err)
	}
	return nil
}

func (d *Dispatcher) acquire() (Session, error) {
	if d.session != nil {
		return d.session, nil
	}
	if d.permanent {
		return nil, ErrEngineDestroyed
	}

	s, err := d.engine.Acquire()
	if err == nil && s == nil {
		err = fmt.Errorf("%w: %s returned no session", ErrUnavailable, d.engine.Name())
	}
	if err != nil {
		d.state = StateUnavailable
		if errors.Is(err, ErrEngineDestroyed) {
			d.permanent = true
		}
		return nil, fmt.Errorf("acquiring %s: %w", d.engine.Name(), err)
	}

	d.session = s
	d.state = StateReady
	return s, nil
}

func (d *Dispatcher) run(s Session, src image.Image, radius float64) (out *image.NRGBA, err error) {
	defer func() {
		if p := recover(); p != nil {
			out = nil
			err = fmt.Errorf("%s panicked: %v", d.engine.Name(), p)
		}
	}()

	in := toNRGBA(src)
	dst := image.NewNRGBA(in.Bounds())
	if err := s.Blur(dst, in, radius); err != nil {
		return nil, fmt.Errorf("%s blur: %w", d.engine.Name(), err)
	}
	return dst, nil
}

func passthrough(src image.Image) Result {
	res := Result{Image: src}
	if src != nil {
		res.Width = src.Bounds().Dx()
		res.Height = src.Bounds().Dy()
	}
	return res
}

// toNRGBA returns src as 8-bit non-premultiplied RGBA. NRGBA sources are
// used as is and must not be written by engines.
func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok {
		return n
	}
	return imaging.Clone(src)
}
