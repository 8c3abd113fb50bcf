package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dixieflatline76/backdrop/config"
	"github.com/dixieflatline76/backdrop/pkg/layout"
	"github.com/dixieflatline76/backdrop/util/log"
)

var (
	commit = "none"
	date   = "unknown"
)

// rootOptions are the flags shared by every subcommand.
type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "backdrop",
		Short:         "Fit photos to a display with a blurred backdrop",
		Version:       config.AppVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate(fmt.Sprintf("backdrop %s\ncommit: %s\nbuilt: %s\n", config.AppVersion, commit, date))
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (default ~/.backdrop/config.json)")

	root.AddCommand(newApplyCmd(opts))
	root.AddCommand(newLayoutCmd())
	root.AddCommand(newBlurCmd(opts))
	return root
}

// loadConfig reads the config file named by --config, or the default one.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	path := o.configPath
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return nil, err
		}
	}
	return config.Load(path)
}

// parseDims parses "WIDTHxHEIGHT".
func parseDims(s string) (layout.Dimensions, error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return layout.Dimensions{}, fmt.Errorf("invalid size %q: want WIDTHxHEIGHT", s)
	}
	width, err := strconv.Atoi(w)
	if err != nil {
		return layout.Dimensions{}, fmt.Errorf("invalid width in %q: %w", s, err)
	}
	height, err := strconv.Atoi(h)
	if err != nil {
		return layout.Dimensions{}, fmt.Errorf("invalid height in %q: %w", s, err)
	}
	if width <= 0 || height <= 0 {
		return layout.Dimensions{}, fmt.Errorf("invalid size %q: sides must be positive", s)
	}
	return layout.Dims(width, height), nil
}

// parseMode is ParseScaleMode that rejects unknown names.
func parseMode(s string) (layout.ScaleMode, error) {
	mode, ok := layout.ParseScaleMode(s)
	if !ok {
		return mode, fmt.Errorf("unknown scale mode %q (want one of %s)", s, modeList())
	}
	return mode, nil
}

func modeList() string {
	names := make([]string, 0, len(layout.Modes()))
	for _, m := range layout.Modes() {
		names = append(names, m.String())
	}
	return strings.Join(names, ", ")
}

// release frees a blur engine session, logging a failed close.
func release(r interface{ Release() error }) {
	if err := r.Release(); err != nil {
		log.Printf("Failed to release blur engine: %v", err)
	}
}
