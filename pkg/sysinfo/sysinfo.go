// Package sysinfo reports the primary display size, used as the default
// container for rendered frames.
package sysinfo

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dixieflatline76/backdrop/pkg/layout"
)

// ErrNoDisplay is returned when no display size could be found.
var ErrNoDisplay = errors.New("no display found")

// resolutionRegex matches "1920x1080", "3456 x 2234" or "2880 x 1864 Retina".
var resolutionRegex = regexp.MustCompile(`(\d+)\s*x\s*(\d+)`)

// ScreenSize returns the primary display size in pixels.
func ScreenSize() (layout.Dimensions, error) {
	w, h, err := screenDimensions()
	if err != nil {
		return layout.Dimensions{}, err
	}
	if w <= 0 || h <= 0 {
		return layout.Dimensions{}, fmt.Errorf("%w: reported size %dx%d", ErrNoDisplay, w, h)
	}
	return layout.Dims(w, h), nil
}

func parseResolution(s string) (int, int, error) {
	matches := resolutionRegex.FindStringSubmatch(s)
	if len(matches) < 3 {
		return 0, 0, fmt.Errorf("parsing resolution from %q", s)
	}
	width, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0, 0, err
	}
	height, err := strconv.Atoi(matches[2])
	if err != nil {
		return 0, 0, err
	}
	return width, height, nil
}

// parseXdpyinfo reads the first "dimensions:" line of xdpyinfo output, e.g.
// "  dimensions:    1920x1080 pixels (508x285 millimeters)".
func parseXdpyinfo(out string) (int, int, error) {
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) >= 2 && fields[0] == "dimensions:" {
			return parseResolution(fields[1])
		}
	}
	return 0, 0, fmt.Errorf("%w in xdpyinfo output", ErrNoDisplay)
}

type systemProfilerOutput struct {
	Displays []struct {
		NDRVs []struct {
			Resolution string `json:"_spdisplays_pixels"`
			Main       string `json:"spdisplays_main"`
		} `json:"spdisplays_ndrvs"`
	} `json:"SPDisplaysDataType"`
}

// parseSystemProfiler picks the main display from
// `system_profiler SPDisplaysDataType -json`, else the first one listed.
func parseSystemProfiler(data []byte) (int, int, error) {
	var profiler systemProfilerOutput
	if err := json.Unmarshal(data, &profiler); err != nil {
		return 0, 0, fmt.Errorf("decoding system_profiler JSON: %w", err)
	}

	first := ""
	for _, gpu := range profiler.Displays {
		for _, display := range gpu.NDRVs {
			if display.Main == "spdisplays_yes" {
				return parseResolution(display.Resolution)
			}
			if first == "" {
				first = display.Resolution
			}
		}
	}
	if first != "" {
		return parseResolution(first)
	}
	return 0, 0, fmt.Errorf("%w in system_profiler output", ErrNoDisplay)
}
