// Package config loads the display-effect settings handed to the effects core.
//
// The CLI reads a JSON file (Config). GUI hosts keep the same settings in
// fyne preferences (AppConfig).
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dixieflatline76/backdrop/pkg/blur"
	"github.com/dixieflatline76/backdrop/pkg/effects"
	"github.com/dixieflatline76/backdrop/pkg/layout"
	"github.com/dixieflatline76/backdrop/util/log"
)

// Defaults applied when a setting is missing.
const (
	DefaultScaleMode  = "smart"
	DefaultBlurRadius = blur.MaxRadius
	DefaultEngine     = blur.EngineImaging
	DefaultWidth      = 1920
	DefaultHeight     = 1080
)

// Config holds the settings for rendering photos.
type Config struct {
	ScaleMode     string  `json:"scale_mode"`
	EnableBokeh   bool    `json:"enable_bokeh"`
	BlurRadius    float64 `json:"blur_radius"`
	Engine        string  `json:"blur_engine"`
	ContentAware  bool    `json:"content_aware"`
	FaceModelPath string  `json:"face_model_path,omitempty"`
	Container     Size    `json:"container"`
}

// Size is the target container size in pixels.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Default returns the settings used when no file exists.
func Default() *Config {
	c := &Config{}
	c.setDefaultValues()
	return c
}

// DefaultPath returns ~/.backdrop/config.json.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting user home directory: %w", err)
	}
	return filepath.Join(homeDir, "."+strings.ToLower(AppName), ConfigFileName), nil
}

// Load reads the config at path. A missing file yields the defaults. Fields
// absent from the file keep their default values.
func Load(path string) (*Config, error) {
	c := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := json.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return c, nil
}

// setDefaultValues sets default values for the configuration
func (c *Config) setDefaultValues() {
	c.ScaleMode = DefaultScaleMode
	c.EnableBokeh = true
	c.BlurRadius = DefaultBlurRadius
	c.Engine = DefaultEngine
	c.Container = Size{Width: DefaultWidth, Height: DefaultHeight}
}

// Save writes the config to path, creating the directory if needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Mode returns the configured scale mode. ok is false when the name is not
// recognised and Fit is used instead.
func (c *Config) Mode() (mode layout.ScaleMode, ok bool) {
	return layout.ParseScaleMode(c.ScaleMode)
}

// ContainerDims returns the configured container size.
func (c *Config) ContainerDims() layout.Dimensions {
	return layout.Dims(c.Container.Width, c.Container.Height)
}

// Options converts the settings into effect options.
func (c *Config) Options() effects.Options {
	mode, ok := c.Mode()
	if !ok {
		log.Printf("unknown scale mode %q, using %s", c.ScaleMode, mode)
	}
	return effects.Options{
		Mode:         mode,
		Bokeh:        c.EnableBokeh,
		BlurRadius:   c.BlurRadius,
		ContentAware: c.ContentAware,
	}
}

// NewEngine returns the blur engine named in the config.
func (c *Config) NewEngine() (blur.Engine, error) {
	return blur.EngineByName(c.Engine)
}
