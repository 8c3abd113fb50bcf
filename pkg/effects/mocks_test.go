package effects

import (
	"context"
	"image"
	"image/color"
	"image/draw"

	"github.com/dixieflatline76/backdrop/pkg/blur"
	"github.com/stretchr/testify/mock"
)

// MockFocuser simulates a content-aware focus finder.
type MockFocuser struct {
	mock.Mock
}

func (m *MockFocuser) Focus(ctx context.Context, img image.Image, w, h int) (image.Rectangle, error) {
	args := m.Called(ctx, img, w, h)
	return args.Get(0).(image.Rectangle), args.Error(1)
}

func createTestImage(width, height int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{c}, image.Point{}, draw.Src)
	return img
}

var (
	red  = color.NRGBA{255, 0, 0, 255}
	blue = color.NRGBA{0, 0, 255, 255}
)

// mockEngine is a blur engine whose calls are recorded.
type mockEngine struct {
	mock.Mock
}

func (m *mockEngine) Name() string { return "mock" }

func (m *mockEngine) Acquire() (blur.Session, error) {
	args := m.Called()
	s, _ := args.Get(0).(blur.Session)
	return s, args.Error(1)
}
