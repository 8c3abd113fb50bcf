package effects

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	pigo "github.com/esimov/pigo/core"
	"github.com/muesli/smartcrop"
)

// ErrNoFace is returned by FaceFocuser when no face clears the confidence threshold.
var ErrNoFace = errors.New("no face found")

// Focuser finds the region of an image a w x h crop should be centered on.
// The rectangle is in the image's own coordinates.
type Focuser interface {
	Focus(ctx context.Context, img image.Image, w, h int) (image.Rectangle, error)
}

// SmartcropFocuser picks the most interesting region by edge, skin and
// saturation energy.
type SmartcropFocuser struct {
	analyzer smartcrop.Analyzer
}

// NewSmartcropFocuser returns a smartcrop focuser that resizes with filter.
func NewSmartcropFocuser(filter imaging.ResampleFilter) *SmartcropFocuser {
	return &SmartcropFocuser{analyzer: smartcrop.NewAnalyzer(&resizer{resampler: filter})}
}

func (f *SmartcropFocuser) Focus(ctx context.Context, img image.Image, w, h int) (image.Rectangle, error) {
	if err := checkContext(ctx); err != nil {
		return image.Rectangle{}, err
	}

	// FindBestCrop cannot be interrupted; run it aside so cancellation returns early.
	type cropResult struct {
		crop image.Rectangle
		err  error
	}
	resultChan := make(chan cropResult, 1)

	go func() {
		crop, err := f.analyzer.FindBestCrop(img, w, h)
		resultChan <- cropResult{crop: crop, err: err}
	}()

	select {
	case <-ctx.Done():
		return image.Rectangle{}, ctx.Err()
	case result := <-resultChan:
		if result.err != nil {
			return image.Rectangle{}, fmt.Errorf("finding best crop: %w", result.err)
		}
		return result.crop, nil
	}
}

// resizer implements smartcrop's Resizer with imaging.
type resizer struct {
	resampler imaging.ResampleFilter
}

func (r *resizer) Resize(img image.Image, width, height uint) image.Image {
	return imaging.Resize(img, int(width), int(height), r.resampler)
}

// FaceFocuser centers crops on the most confident face found by a pigo
// cascade. When no face is found it defers to next, if set.
type FaceFocuser struct {
	classifier *pigo.Pigo
	tuning     TuningConfig
	next       Focuser
}

// NewFaceFocuser unpacks a pigo face cascade such as pigo's "facefinder".
func NewFaceFocuser(cascade []byte, tuning TuningConfig, next Focuser) (*FaceFocuser, error) {
	// pigo indexes the header without checking the length.
	if len(cascade) < 16 {
		return nil, fmt.Errorf("unpacking face cascade: %d bytes is too short", len(cascade))
	}
	classifier, err := pigo.NewPigo().Unpack(cascade)
	if err != nil {
		return nil, fmt.Errorf("unpacking face cascade: %w", err)
	}
	return &FaceFocuser{classifier: classifier, tuning: tuning, next: next}, nil
}

func (f *FaceFocuser) Focus(ctx context.Context, img image.Image, w, h int) (image.Rectangle, error) {
	if err := checkContext(ctx); err != nil {
		return image.Rectangle{}, err
	}
	face, err := f.findBestFace(img)
	if err == nil {
		return face, nil
	}
	if f.next != nil {
		return f.next.Focus(ctx, img, w, h)
	}
	return image.Rectangle{}, err
}

func (f *FaceFocuser) findBestFace(img image.Image) (image.Rectangle, error) {
	if f.classifier == nil {
		return image.Rectangle{}, fmt.Errorf("%w: no cascade loaded", ErrNoFace)
	}

	b := img.Bounds()
	cols, rows := b.Dx(), b.Dy()
	minDim := min(cols, rows)
	params := pigo.CascadeParams{
		MinSize:     max(minDim*f.tuning.FaceDetectMinSizePct/100, 20),
		MaxSize:     minDim,
		ShiftFactor: f.tuning.FaceDetectShift,
		ScaleFactor: f.tuning.FaceScaleFactor,
		ImageParams: pigo.ImageParams{
			Pixels: pigo.RgbToGrayscale(imaging.Clone(img)),
			Rows:   rows,
			Cols:   cols,
			Dim:    cols,
		},
	}

	dets := f.classifier.RunCascade(params, 0.0)
	dets = f.classifier.ClusterDetections(dets, f.tuning.FaceIoUThreshold)

	var best *pigo.Detection
	for i := range dets {
		if dets[i].Q < f.tuning.FaceDetectConfidence {
			continue
		}
		if best == nil || dets[i].Q > best.Q {
			best = &dets[i]
		}
	}
	if best == nil {
		return image.Rectangle{}, ErrNoFace
	}

	half := best.Scale / 2
	face := image.Rect(best.Col-half, best.Row-half, best.Col+half, best.Row+half)
	return face.Add(b.Min).Intersect(b), nil
}
