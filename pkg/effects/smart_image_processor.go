// Package effects renders a photo into a display container: it places the
// image with the configured scale mode and paints a blurred, dimmed copy of it
// behind the letterbox bands.
package effects

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/dixieflatline76/backdrop/pkg/blur"
	"github.com/dixieflatline76/backdrop/pkg/layout"
	"github.com/dixieflatline76/backdrop/util/log"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// ErrEmptyImage is returned when Apply gets a nil or zero-sized image.
var ErrEmptyImage = errors.New("image is empty")

// Options are the per-frame display settings.
type Options struct {
	Mode         layout.ScaleMode
	Bokeh        bool
	BlurRadius   float64
	ContentAware bool
}

// Frame is a rendered container-sized image.
type Frame struct {
	Image     *image.NRGBA
	Placement layout.Placement
	// Backdrop is the blur result behind the photo. Zero when Bokeh is off.
	Backdrop blur.Result
}

// Processor renders frames. Like the Dispatcher it wraps, it is meant for a
// single goroutine.
type Processor struct {
	dispatcher *blur.Dispatcher
	tuning     TuningConfig
	focus      Focuser
	resampler  imaging.ResampleFilter
	interp     draw.Interpolator
}

// NewProcessor returns a processor that blurs backdrops with d. focus may be
// nil, in which case content-aware cropping keeps the centered crop.
func NewProcessor(d *blur.Dispatcher, tuning TuningConfig, focus Focuser) *Processor {
	if d == nil {
		d = blur.NewDispatcher(nil)
	}
	return &Processor{
		dispatcher: d,
		tuning:     tuning,
		focus:      focus,
		resampler:  imaging.Linear,
		interp:     draw.CatmullRom,
	}
}

// Release frees the blur engine session.
func (p *Processor) Release() error {
	return p.dispatcher.Release()
}

// Apply renders img into a container of the given size.
func (p *Processor) Apply(ctx context.Context, img image.Image, container layout.Dimensions, opts Options) (*Frame, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, ErrEmptyImage
	}
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	container = container.Normalize()
	dims := layout.FromRect(img.Bounds())
	placement := layout.Resolve(opts.Mode, dims, container)
	log.Debugf("placing %v in %v as %s: %T scale %.3f", dims, container, opts.Mode, placement, placement.ScaleFactor())

	if crop, ok := placement.(layout.CropSpec); ok && opts.ContentAware {
		placement = p.refocus(ctx, img, crop)
	}

	frame := &Frame{
		Image:     image.NewNRGBA(container.Rect()),
		Placement: placement,
	}

	if opts.Bokeh {
		bg, res, err := p.backdrop(ctx, img, container, opts.BlurRadius)
		if err != nil {
			return nil, err
		}
		frame.Backdrop = res
		draw.Draw(frame.Image, frame.Image.Bounds(), bg, bg.Bounds().Min, draw.Src)
	}

	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	drawPlacement(frame.Image, img, placement, p.interp)
	return frame, nil
}

// backdrop fills the container with a blurred, darkened copy of img. The
// blur runs on a reduced copy and is scaled back up, which widens it.
func (p *Processor) backdrop(ctx context.Context, img image.Image, container layout.Dimensions, radius float64) (image.Image, blur.Result, error) {
	scale := p.tuning.BackgroundScale
	if scale <= 0 || scale > 1 {
		scale = 1
	}
	small := layout.Dims(
		int(math.Round(float64(container.Width)*scale)),
		int(math.Round(float64(container.Height)*scale)),
	).Normalize()

	bg := imaging.Fill(img, small.Width, small.Height, imaging.Center, p.resampler)
	if err := checkContext(ctx); err != nil {
		return nil, blur.Result{}, err
	}

	// An unapplied blur still yields a usable, unblurred backdrop.
	res := p.dispatcher.Blur(bg, radius)
	if err := checkContext(ctx); err != nil {
		return nil, blur.Result{}, err
	}

	dimmed := imaging.AdjustBrightness(res.Image, -100*p.tuning.BackgroundDim)
	full := imaging.Resize(dimmed, container.Width, container.Height, p.resampler)
	return full, res, nil
}

// refocus moves the crop window onto the region the focuser picks. Any
// focuser failure keeps the centered crop.
func (p *Processor) refocus(ctx context.Context, img image.Image, crop layout.CropSpec) layout.CropSpec {
	if p.focus == nil {
		return crop
	}
	w, h := crop.Source.Dx(), crop.Source.Dy()
	roi, err := p.focus.Focus(ctx, img, w, h)
	if err != nil {
		log.Printf("content-aware crop unavailable, keeping center crop: %v", err)
		return crop
	}

	roi = roi.Sub(img.Bounds().Min)
	cx := (roi.Min.X + roi.Max.X) / 2
	cy := (roi.Min.Y + roi.Max.Y) / 2
	return crop.Shift(image.Pt(cx-w/2, cy-h/2), layout.FromRect(img.Bounds()))
}

// drawPlacement draws the placement's source region of img onto dst. The
// placement is relative to the image origin, so it is shifted by img's Min.
func drawPlacement(dst draw.Image, img image.Image, placement layout.Placement, interp draw.Interpolator) {
	origin := img.Bounds().Min
	m := placement.Transform()
	s2d := f64.Aff3{
		m[0], m[1], m[2] - m[0]*float64(origin.X) - m[1]*float64(origin.Y),
		m[3], m[4], m[5] - m[3]*float64(origin.X) - m[4]*float64(origin.Y),
	}
	sr := placement.SourceRect().Add(origin)

	// Pure translations need no resampling kernel.
	if m[0] == 1 && m[4] == 1 && m[1] == 0 && m[3] == 0 {
		interp = draw.NearestNeighbor
	}
	interp.Transform(dst, s2d, img, sr, draw.Over, nil)
}

func checkContext(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("rendering frame: %w", ctx.Err())
	default:
		return nil
	}
}
