package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dixieflatline76/backdrop/pkg/blur"
	"github.com/dixieflatline76/backdrop/pkg/effects"
	"github.com/dixieflatline76/backdrop/util/log"
)

func newBlurCmd(root *rootOptions) *cobra.Command {
	var (
		output string
		radius float64
		engine string
	)

	cmd := &cobra.Command{
		Use:   "blur IMAGE",
		Short: "Blur a whole photo with the configured engine",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("engine") {
				cfg.Engine = engine
			}
			if !cmd.Flags().Changed("radius") {
				radius = cfg.BlurRadius
			}
			eng, err := cfg.NewEngine()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading image: %w", err)
			}
			img, _, err := effects.DecodeImage(ctx, data, effects.ContentTypeFromPath(args[0]))
			if err != nil {
				return err
			}

			d := blur.NewDispatcher(eng)
			defer release(d)
			res := d.Blur(img, radius)
			name := d.Engine().Name()
			if !res.Applied {
				log.Printf("Blur not applied with engine %s, writing the photo unchanged", name)
			}

			if output == "" {
				output = "blurred.png"
			}
			contentType := effects.ContentTypeFromPath(output)
			if contentType == "" || contentType == effects.ContentTypeWebP {
				return fmt.Errorf("unsupported output file %q: use .png, .jpg, .bmp or .tiff", output)
			}
			encoded, err := effects.EncodeImage(ctx, res.Image, contentType, effects.DefaultTuningConfig().EncodingQuality)
			if err != nil {
				return err
			}
			if err := os.WriteFile(output, encoded, 0644); err != nil {
				return fmt.Errorf("writing image: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %dx%d radius %.1f engine %s\n", output, res.Width, res.Height, res.Radius, name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, .png, .jpg, .bmp or .tiff (default blurred.png)")
	cmd.Flags().Float64VarP(&radius, "radius", "r", blur.MaxRadius, "blur radius, clamped to 25")
	cmd.Flags().StringVar(&engine, "engine", "", "blur engine: imaging, bild, bild-box, none")
	return cmd
}
