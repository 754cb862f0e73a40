package sortable

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/tanema/gween/ease"
)

const (
	defaultReflowDuration = 0.2
	defaultEasing         = "ease"
	defaultRowWidth       = 120
	defaultRowHeight      = 32
)

// easings maps the names accepted in ListConfig.Easing to tween functions.
// The CSS-style names approximate their cubic-bezier counterparts.
var easings = map[string]ease.TweenFunc{
	"linear":      ease.Linear,
	"ease":        ease.OutQuad,
	"ease-in":     ease.InQuad,
	"ease-out":    ease.OutCubic,
	"ease-in-out": ease.InOutQuad,
	"sine":        ease.InOutSine,
}

// ListConfig controls a List's layout, animation and listener dispatch.
// The zero value is usable; zero fields take their defaults.
type ListConfig struct {
	// Gap is the spacing between rows, horizontally and vertically.
	Gap float64 `toml:"gap"`

	// ReflowDuration is the sibling transition time in seconds (default 0.2).
	// Negative disables the transition.
	ReflowDuration float32 `toml:"reflow_duration"`

	// Easing names the transition curve (default "ease").
	Easing string `toml:"easing"`

	// ListenerConcurrency caps how many listeners of one event run at once.
	// Zero means no cap.
	ListenerConcurrency int `toml:"listener_concurrency"`

	// RowWidth and RowHeight size the rows built by DefaultRender.
	RowWidth  float64 `toml:"row_width"`
	RowHeight float64 `toml:"row_height"`

	// Animator overrides the default TweenAnimator.
	Animator Animator `toml:"-"`
}

// ParseListConfig decodes a TOML document into a ListConfig and validates it.
func ParseListConfig(data []byte) (ListConfig, error) {
	var cfg ListConfig
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return ListConfig{}, fmt.Errorf("parse list config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return ListConfig{}, err
	}
	return cfg, nil
}

// LoadListConfig reads and parses a TOML list config file.
func LoadListConfig(path string) (ListConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ListConfig{}, fmt.Errorf("load list config: %w", err)
	}
	return ParseListConfig(data)
}

// Validate reports the first invalid field.
func (c ListConfig) Validate() error {
	if c.Easing != "" {
		if _, ok := easings[c.Easing]; !ok {
			return fmt.Errorf("list config: unknown easing %q", c.Easing)
		}
	}
	if c.Gap < 0 {
		return fmt.Errorf("list config: gap must not be negative, got %v", c.Gap)
	}
	if c.ListenerConcurrency < 0 {
		return fmt.Errorf("list config: listener_concurrency must not be negative, got %d", c.ListenerConcurrency)
	}
	if c.RowWidth < 0 || c.RowHeight < 0 {
		return fmt.Errorf("list config: row size must not be negative, got %vx%v", c.RowWidth, c.RowHeight)
	}
	return nil
}

// withDefaults fills zero fields.
func (c ListConfig) withDefaults() ListConfig {
	if c.ReflowDuration == 0 {
		c.ReflowDuration = defaultReflowDuration
	}
	if c.ReflowDuration < 0 {
		c.ReflowDuration = 0
	}
	if c.Easing == "" {
		c.Easing = defaultEasing
	}
	if c.RowWidth == 0 {
		c.RowWidth = defaultRowWidth
	}
	if c.RowHeight == 0 {
		c.RowHeight = defaultRowHeight
	}
	if c.Animator == nil {
		c.Animator = NewTweenAnimator(easings[c.Easing])
	}
	return c
}
