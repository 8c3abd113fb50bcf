package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dixieflatline76/backdrop/config"
	"github.com/dixieflatline76/backdrop/pkg/blur"
	"github.com/dixieflatline76/backdrop/pkg/effects"
	"github.com/dixieflatline76/backdrop/pkg/layout"
	"github.com/dixieflatline76/backdrop/pkg/sysinfo"
	"github.com/dixieflatline76/backdrop/util/log"
)

type applyOptions struct {
	output       string
	format       string
	jobs         int
	size         string
	mode         string
	bokeh        bool
	radius       float64
	engine       string
	contentAware bool
	faceModel    string
	// extra holds the --size entries after the first, which goes to the config.
	extra []layout.Dimensions
}

func newApplyCmd(root *rootOptions) *cobra.Command {
	opts := &applyOptions{}

	cmd := &cobra.Command{
		Use:   "apply [image...]",
		Short: "Render photos into container-sized frames",
		Long: `Render each photo into a frame of the configured container size.

The scale mode decides how the photo is placed. With bokeh enabled the
letterbox bands are filled with a blurred, darkened copy of the photo.
Settings come from the config file; flags override them.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			if err := opts.override(cmd, cfg); err != nil {
				return err
			}
			return runApply(cmd.Context(), cfg, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", ".", "output directory")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: png, jpeg (default: png for png input, else jpeg)")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", 4, "number of photos rendered at once")
	cmd.Flags().StringVarP(&opts.size, "size", "s", "", "container sizes, e.g. 1920x1080,2560x1440; \"screen\" is the primary display")
	cmd.Flags().StringVarP(&opts.mode, "mode", "m", "", "scale mode: "+modeList())
	cmd.Flags().BoolVar(&opts.bokeh, "bokeh", true, "fill the bands with a blurred backdrop")
	cmd.Flags().Float64Var(&opts.radius, "radius", config.DefaultBlurRadius, "backdrop blur radius")
	cmd.Flags().StringVar(&opts.engine, "engine", "", "blur engine: imaging, bild, bild-box, none")
	cmd.Flags().BoolVar(&opts.contentAware, "content-aware", false, "center crops on faces or salient regions")
	cmd.Flags().StringVar(&opts.faceModel, "face-model", "", "pigo face cascade file for content-aware crops")

	return cmd
}

// override applies the flags the user set on top of cfg.
func (o *applyOptions) override(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("size") {
		sizes, err := containerSizes(o.size)
		if err != nil {
			return err
		}
		cfg.Container = config.Size{Width: sizes[0].Width, Height: sizes[0].Height}
		o.extra = sizes[1:]
	}
	if flags.Changed("mode") {
		if _, err := parseMode(o.mode); err != nil {
			return err
		}
		cfg.ScaleMode = o.mode
	}
	if flags.Changed("bokeh") {
		cfg.EnableBokeh = o.bokeh
	}
	if flags.Changed("radius") {
		cfg.BlurRadius = o.radius
	}
	if flags.Changed("engine") {
		cfg.Engine = o.engine
	}
	if flags.Changed("content-aware") {
		cfg.ContentAware = o.contentAware
	}
	if flags.Changed("face-model") {
		cfg.FaceModelPath = o.faceModel
	}
	if o.jobs < 1 {
		return fmt.Errorf("--jobs must be at least 1, got %d", o.jobs)
	}
	switch o.format {
	case "", "png", "jpeg", "jpg":
	default:
		return fmt.Errorf("unsupported output format %q", o.format)
	}
	return nil
}

// containerSizes parses a comma-separated --size value. Repeated sizes are
// rendered once, in first-seen order.
func containerSizes(s string) ([]layout.Dimensions, error) {
	var sizes []layout.Dimensions
	seen := make(map[layout.Dimensions]bool)
	for _, part := range strings.Split(s, ",") {
		dims, err := containerSize(part)
		if err != nil {
			return nil, err
		}
		if seen[dims] {
			continue
		}
		seen[dims] = true
		sizes = append(sizes, dims)
	}
	return sizes, nil
}

// containerSize parses one size. "screen" asks the OS for the primary
// display size.
func containerSize(s string) (layout.Dimensions, error) {
	if strings.EqualFold(strings.TrimSpace(s), "screen") {
		dims, err := sysinfo.ScreenSize()
		if err != nil {
			return layout.Dimensions{}, fmt.Errorf("detecting screen size: %w", err)
		}
		log.Debugf("Detected screen size %v", dims)
		return dims, nil
	}
	return parseDims(s)
}

func runApply(ctx context.Context, cfg *config.Config, files []string, opts *applyOptions) error {
	// Fail on a bad engine name before any work starts.
	if _, err := cfg.NewEngine(); err != nil {
		return err
	}
	if err := os.MkdirAll(opts.output, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	tuning := effects.DefaultTuningConfig()

	// The cascade is read once; each task unpacks its own classifier.
	var cascade []byte
	if cfg.ContentAware && cfg.FaceModelPath != "" {
		var err error
		if cascade, err = os.ReadFile(cfg.FaceModelPath); err != nil {
			return fmt.Errorf("reading face cascade: %w", err)
		}
		if _, err := effects.NewFaceFocuser(cascade, tuning, nil); err != nil {
			return err
		}
	}

	r := &renderer{
		cfg:     cfg,
		tuning:  tuning,
		options: cfg.Options(),
		sizes:   append([]layout.Dimensions{cfg.ContainerDims()}, opts.extra...),
		cascade: cascade,
		outDir:  opts.output,
		format:  opts.format,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.jobs)

	var mu sync.Mutex
	var errs []error
	for _, path := range files {
		path := path
		g.Go(func() error {
			outs, err := r.renderFile(ctx, path)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				// Keep going: one bad photo should not stop the batch.
				log.Printf("Failed to render %s: %v", path, err)
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", path, err))
				mu.Unlock()
				return nil
			}
			log.Printf("Rendered %s -> %s", path, strings.Join(outs, ", "))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if len(errs) > 0 {
		return fmt.Errorf("%d of %d photos failed: %w", len(errs), len(files), errors.Join(errs...))
	}
	return nil
}

// renderer holds what every render task shares. Each task builds its own
// Processor, since a Dispatcher belongs to one goroutine.
type renderer struct {
	cfg     *config.Config
	tuning  effects.TuningConfig
	options effects.Options
	sizes   []layout.Dimensions
	cascade []byte
	outDir  string
	format  string
}

func (r *renderer) renderFile(ctx context.Context, path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}
	contentType := effects.ContentTypeFromPath(path)
	img, _, err := effects.DecodeImage(ctx, data, contentType)
	if err != nil {
		return nil, err
	}

	p, err := r.newProcessor()
	if err != nil {
		return nil, err
	}
	defer release(p)

	outType, ext := r.outputType(contentType)
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	var outs []string
	for _, size := range r.sizes {
		frame, err := p.Apply(ctx, img, size, r.options)
		if err != nil {
			return outs, err
		}
		encoded, err := effects.EncodeImage(ctx, frame.Image, outType, r.tuning.EncodingQuality)
		if err != nil {
			return outs, err
		}
		out := filepath.Join(r.outDir, base+"_"+size.String()+"."+ext)
		if err := os.WriteFile(out, encoded, 0644); err != nil {
			return outs, fmt.Errorf("writing frame: %w", err)
		}
		outs = append(outs, out)
	}
	return outs, nil
}

func (r *renderer) newProcessor() (*effects.Processor, error) {
	engine, err := r.cfg.NewEngine()
	if err != nil {
		return nil, err
	}
	focus, err := r.newFocuser()
	if err != nil {
		return nil, err
	}
	return effects.NewProcessor(blur.NewDispatcher(engine), r.tuning, focus), nil
}

// newFocuser prefers faces and falls back to smartcrop.
func (r *renderer) newFocuser() (effects.Focuser, error) {
	if !r.cfg.ContentAware {
		return nil, nil
	}
	salient := effects.NewSmartcropFocuser(imaging.Linear)
	if len(r.cascade) == 0 {
		return salient, nil
	}
	return effects.NewFaceFocuser(r.cascade, r.tuning, salient)
}

// outputType picks the encoding for a frame. WebP input is written as JPEG.
func (r *renderer) outputType(inputType string) (string, string) {
	switch r.format {
	case "png":
		return effects.ContentTypePNG, "png"
	case "jpeg", "jpg":
		return effects.ContentTypeJPEG, "jpg"
	}
	if inputType == effects.ContentTypePNG {
		return effects.ContentTypePNG, "png"
	}
	return effects.ContentTypeJPEG, "jpg"
}
