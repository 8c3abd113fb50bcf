package config

import (
	"fyne.io/fyne/v2"

	"github.com/dixieflatline76/backdrop/pkg/effects"
	"github.com/dixieflatline76/backdrop/pkg/layout"
)

// ScaleModeKey is the key for the scale mode preference
const ScaleModeKey = "scale_mode"

// EnableBokehKey is the key for the bokeh backdrop preference
const EnableBokehKey = "enable_bokeh"

// BlurRadiusKey is the key for the backdrop blur radius preference
const BlurRadiusKey = "blur_radius"

// ContentAwareKey is the key for the content-aware crop preference
const ContentAwareKey = "content_aware"

// AppConfig exposes the display settings stored in fyne preferences.
type AppConfig struct {
	prefs fyne.Preferences
}

// NewAppConfig creates a new AppConfig instance
func NewAppConfig(p fyne.Preferences) *AppConfig {
	return &AppConfig{prefs: p}
}

// GetScaleMode returns the scale mode, falling back to Smart when unset and
// to Fit when the stored name is unknown.
func (c *AppConfig) GetScaleMode() layout.ScaleMode {
	mode, _ := layout.ParseScaleMode(c.prefs.StringWithFallback(ScaleModeKey, DefaultScaleMode))
	return mode
}

// SetScaleMode stores the scale mode by name
func (c *AppConfig) SetScaleMode(mode layout.ScaleMode) {
	c.prefs.SetString(ScaleModeKey, mode.String())
}

// GetBokehEnabled returns whether the blurred backdrop is drawn
func (c *AppConfig) GetBokehEnabled() bool {
	return c.prefs.BoolWithFallback(EnableBokehKey, true)
}

// SetBokehEnabled sets whether the blurred backdrop is drawn
func (c *AppConfig) SetBokehEnabled(enabled bool) {
	c.prefs.SetBool(EnableBokehKey, enabled)
}

// GetBlurRadius returns the backdrop blur radius
func (c *AppConfig) GetBlurRadius() float64 {
	return c.prefs.FloatWithFallback(BlurRadiusKey, DefaultBlurRadius)
}

// SetBlurRadius sets the backdrop blur radius
func (c *AppConfig) SetBlurRadius(radius float64) {
	c.prefs.SetFloat(BlurRadiusKey, radius)
}

// GetContentAware returns whether crops follow faces and salient regions
func (c *AppConfig) GetContentAware() bool {
	return c.prefs.BoolWithFallback(ContentAwareKey, false)
}

// SetContentAware sets whether crops follow faces and salient regions
func (c *AppConfig) SetContentAware(enabled bool) {
	c.prefs.SetBool(ContentAwareKey, enabled)
}

// Options returns the effect options for the stored preferences.
func (c *AppConfig) Options() effects.Options {
	return effects.Options{
		Mode:         c.GetScaleMode(),
		Bokeh:        c.GetBokehEnabled(),
		BlurRadius:   c.GetBlurRadius(),
		ContentAware: c.GetContentAware(),
	}
}
