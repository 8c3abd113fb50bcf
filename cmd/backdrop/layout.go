package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dixieflatline76/backdrop/pkg/layout"
)

func newLayoutCmd() *cobra.Command {
	var modeName string

	cmd := &cobra.Command{
		Use:   "layout IMAGE_SIZE CONTAINER_SIZE",
		Short: "Print the placement of an image in a container",
		Long: `Print how an image of IMAGE_SIZE is placed in a container of
CONTAINER_SIZE. Sizes are written WIDTHxHEIGHT, e.g. 4000x3000.`,
		Example: "  backdrop layout --mode fill 4000x3000 1920x1080",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := parseMode(modeName)
			if err != nil {
				return err
			}
			img, err := parseDims(args[0])
			if err != nil {
				return err
			}
			container, err := parseDims(args[1])
			if err != nil {
				return err
			}
			printPlacement(cmd.OutOrStdout(), layout.Resolve(mode, img, container))
			return nil
		},
	}

	cmd.Flags().StringVarP(&modeName, "mode", "m", "smart", "scale mode: "+modeList())
	return cmd
}

func printPlacement(w io.Writer, p layout.Placement) {
	fmt.Fprintf(w, "mode:      %s\n", p.Mode())
	switch p := p.(type) {
	case layout.CropSpec:
		fmt.Fprintf(w, "placement: crop\n")
		fmt.Fprintf(w, "source:    %v\n", p.Source)
	case layout.LetterboxSpec:
		fmt.Fprintf(w, "placement: letterbox\n")
		fmt.Fprintf(w, "dest:      %v\n", p.Dest)
	case layout.AffineMatrix:
		tx, ty := p.Translation()
		fmt.Fprintf(w, "placement: affine\n")
		fmt.Fprintf(w, "size:      %v\n", p.Size)
		fmt.Fprintf(w, "translate: %.2f,%.2f\n", tx, ty)
	}
	fmt.Fprintf(w, "scale:     %.4f\n", p.ScaleFactor())
}
