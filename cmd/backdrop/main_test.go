package main

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dixieflatline76/backdrop/util/log"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.NRGBA{200, 30, 30, 255}}, image.Point{}, draw.Src)
	require.NoError(t, imaging.Save(img, path))
}

func TestParseDims(t *testing.T) {
	testCases := []struct {
		in      string
		want    image.Point
		wantErr bool
	}{
		{"1920x1080", image.Pt(1920, 1080), false},
		{" 800X600 ", image.Pt(800, 600), false},
		{"1920", image.Point{}, true},
		{"axb", image.Point{}, true},
		{"0x10", image.Point{}, true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			d, err := parseDims(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, image.Pt(d.Width, d.Height))
		})
	}
}

func TestContainerSizes(t *testing.T) {
	sizes, err := containerSizes("1920x1080, 2560x1440,1920x1080")
	require.NoError(t, err)
	require.Len(t, sizes, 2)
	assert.Equal(t, "1920x1080", sizes[0].String())
	assert.Equal(t, "2560x1440", sizes[1].String())

	_, err = containerSizes("1920x1080,wide")
	assert.Error(t, err)
}

type failingRelease struct{ calls int }

func (f *failingRelease) Release() error {
	f.calls++
	return errors.New("session lost")
}

func TestReleaseLogsError(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	r := &failingRelease{}
	release(r)

	assert.Equal(t, 1, r.calls)
	assert.Contains(t, buf.String(), "Failed to release blur engine: session lost")
}

func TestLayoutCmd(t *testing.T) {
	t.Run("Fill", func(t *testing.T) {
		out, err := execute(t, "layout", "--mode", "fill", "2000x2000", "1920x1080")
		require.NoError(t, err)
		assert.Contains(t, out, "mode:      fill")
		assert.Contains(t, out, "placement: crop")
		assert.Contains(t, out, "source:    (0,437)-(2000,1562)")
		assert.Contains(t, out, "scale:     0.9600")
	})

	t.Run("Pan", func(t *testing.T) {
		out, err := execute(t, "layout", "-m", "pan", "100x200", "50x50")
		require.NoError(t, err)
		assert.Contains(t, out, "placement: affine")
		assert.Contains(t, out, "size:      50x100")
		assert.Contains(t, out, "translate: 0.00,-25.00")
	})

	t.Run("SmartReportsSmart", func(t *testing.T) {
		out, err := execute(t, "layout", "1920x1080", "1000x1000")
		require.NoError(t, err)
		assert.Contains(t, out, "mode:      smart")
		assert.Contains(t, out, "placement: letterbox")
	})

	t.Run("UnknownMode", func(t *testing.T) {
		_, err := execute(t, "layout", "--mode", "zoom", "10x10", "10x10")
		assert.ErrorContains(t, err, "unknown scale mode")
	})
}

func TestApplyCmd(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.json")
	outDir := filepath.Join(dir, "out")

	inputs := []string{filepath.Join(dir, "wide.png"), filepath.Join(dir, "tall.png")}
	writePNG(t, inputs[0], 120, 60)
	writePNG(t, inputs[1], 60, 120)

	t.Run("RendersEveryFile", func(t *testing.T) {
		args := append([]string{"apply", "--config", cfgPath, "-o", outDir, "-s", "80x40", "-m", "fit", "-j", "2"}, inputs...)
		_, err := execute(t, args...)
		require.NoError(t, err)

		for _, name := range []string{"wide_80x40.png", "tall_80x40.png"} {
			img, err := imaging.Open(filepath.Join(outDir, name))
			require.NoError(t, err, name)
			assert.Equal(t, image.Rect(0, 0, 80, 40), img.Bounds())
		}
	})

	t.Run("EverySize", func(t *testing.T) {
		multi := filepath.Join(dir, "multi")
		_, err := execute(t, "apply", "--config", cfgPath, "-o", multi, "-s", "32x32,16x8,32x32", "--bokeh=false", inputs[0])
		require.NoError(t, err)

		entries, err := os.ReadDir(multi)
		require.NoError(t, err)
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		assert.ElementsMatch(t, []string{"wide_32x32.png", "wide_16x8.png"}, names)
	})

	t.Run("ReportsBadFiles", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.png")
		require.NoError(t, os.WriteFile(bad, []byte("nope"), 0644))

		_, err := execute(t, "apply", "--config", cfgPath, "-o", outDir, "-s", "40x40", inputs[0], bad)
		assert.ErrorContains(t, err, "1 of 2 photos failed")

		_, statErr := os.Stat(filepath.Join(outDir, "wide_40x40.png"))
		assert.NoError(t, statErr)
	})

	t.Run("UnknownEngine", func(t *testing.T) {
		_, err := execute(t, "apply", "--config", cfgPath, "--engine", "gpu", inputs[0])
		assert.Error(t, err)
	})

	t.Run("MissingFaceModel", func(t *testing.T) {
		_, err := execute(t, "apply", "--config", cfgPath, "--content-aware", "--face-model", filepath.Join(dir, "facefinder"), inputs[0])
		assert.ErrorContains(t, err, "reading face cascade")
	})

	t.Run("BadFaceModel", func(t *testing.T) {
		model := filepath.Join(dir, "short.cascade")
		require.NoError(t, os.WriteFile(model, []byte{1, 2, 3}, 0644))

		_, err := execute(t, "apply", "--config", cfgPath, "--content-aware", "--face-model", model, inputs[0])
		assert.ErrorContains(t, err, "unpacking face cascade")
	})

	t.Run("BadJobs", func(t *testing.T) {
		_, err := execute(t, "apply", "--config", cfgPath, "-j", "0", inputs[0])
		assert.ErrorContains(t, err, "--jobs")
	})
}

func TestBlurCmd(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	out := filepath.Join(dir, "out.jpg")
	writePNG(t, in, 30, 20)

	stdout, err := execute(t, "blur", "--config", filepath.Join(dir, "none.json"), "-r", "100", "--engine", "bild-box", "-o", out, in)
	require.NoError(t, err)
	assert.Contains(t, stdout, "30x20 radius 25.0 engine bild-box")

	img, err := imaging.Open(out)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 30, 20), img.Bounds())
}
