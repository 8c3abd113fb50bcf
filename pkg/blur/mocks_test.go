package blur

import (
	"image"
	"image/color"

	"github.com/stretchr/testify/mock"
)

// MockEngine simulates an accelerator.
type MockEngine struct {
	mock.Mock
}

func (m *MockEngine) Name() string { return "mock" }

func (m *MockEngine) Acquire() (Session, error) {
	args := m.Called()
	s, _ := args.Get(0).(Session)
	return s, args.Error(1)
}

// MockSession simulates an acquired accelerator context.
type MockSession struct {
	mock.Mock
}

func (m *MockSession) Blur(dst, src *image.NRGBA, radius float64) error {
	args := m.Called(dst, src, radius)
	return args.Error(0)
}

func (m *MockSession) Close() error {
	args := m.Called()
	return args.Error(0)
}

type recordedSignal struct {
	sig Signal
	err error
}

// signalRecorder collects signals emitted by a Dispatcher.
type signalRecorder struct {
	signals []recordedSignal
}

func (r *signalRecorder) handle(sig Signal, err error) {
	r.signals = append(r.signals, recordedSignal{sig: sig, err: err})
}

func (r *signalRecorder) count(sig Signal) int {
	n := 0
	for _, s := range r.signals {
		if s.sig == sig {
			n++
		}
	}
	return n
}

// createCheckerboard returns an NRGBA image of alternating black and white cells.
func createCheckerboard(rect image.Rectangle, cell int) *image.NRGBA {
	img := image.NewNRGBA(rect)
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			c := color.NRGBA{0, 0, 0, 255}
			if ((x-rect.Min.X)/cell+(y-rect.Min.Y)/cell)%2 == 0 {
				c = color.NRGBA{255, 255, 255, 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}
