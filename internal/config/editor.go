package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/iliyamo/seat-layout-editor/internal/grid"
	"github.com/iliyamo/seat-layout-editor/internal/templates"
)

// EditorConfig holds the grid geometry and history settings of editing
// sessions, plus extra template presets.  It is read from a YAML file when
// one is given; environment variables override the file.
type EditorConfig struct {
	CellSize     float64          `yaml:"cell_size" env:"EDITOR_CELL_SIZE" env-default:"40"`
	Padding      float64          `yaml:"padding" env:"EDITOR_PADDING" env-default:"20"`
	MinZoom      float64          `yaml:"min_zoom" env:"EDITOR_MIN_ZOOM" env-default:"0.5"`
	MaxZoom      float64          `yaml:"max_zoom" env:"EDITOR_MAX_ZOOM" env-default:"2.0"`
	ZoomStep     float64          `yaml:"zoom_step" env:"EDITOR_ZOOM_STEP" env-default:"0.1"`
	HistoryLimit int              `yaml:"history_limit" env:"EDITOR_HISTORY_LIMIT" env-default:"0"`
	Presets      []templates.Spec `yaml:"presets"`
}

// LoadEditorConfig reads the settings file at path, falling back to the
// environment alone when path is empty or does not exist.
func LoadEditorConfig(path string) (EditorConfig, error) {
	var cfg EditorConfig
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := cleanenv.ReadConfig(path, &cfg); err != nil {
				return EditorConfig{}, fmt.Errorf("read editor config %s: %w", path, err)
			}
			return cfg, cfg.validate()
		}
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return EditorConfig{}, fmt.Errorf("read editor env: %w", err)
	}
	return cfg, cfg.validate()
}

func (c EditorConfig) validate() error {
	switch {
	case c.CellSize <= 0:
		return errors.New("editor config: cell_size must be positive")
	case c.Padding < 0:
		return errors.New("editor config: padding must not be negative")
	case c.MinZoom <= 0 || c.MaxZoom < c.MinZoom:
		return fmt.Errorf("editor config: invalid zoom range [%g, %g]", c.MinZoom, c.MaxZoom)
	case c.ZoomStep <= 0:
		return errors.New("editor config: zoom_step must be positive")
	case c.HistoryLimit < 0:
		return errors.New("editor config: history_limit must not be negative")
	}
	return nil
}

// Viewport returns the initial viewport for new sessions.
func (c EditorConfig) Viewport() grid.Viewport {
	v := grid.NewViewport()
	v.CellSize = c.CellSize
	v.Padding = c.Padding
	v.MinZoom = c.MinZoom
	v.MaxZoom = c.MaxZoom
	v.ZoomStep = c.ZoomStep
	v.SetZoom(1)
	return v
}
