// Package config holds the user-tunable settings of the application.
//
// Settings live in a YAML file under the user config directory. A missing
// file is not an error: the defaults reproduce the stock behavior (rus+eng
// recognition, preview at 90% of the pane, 1280x720 window).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/rs/zerolog"
)

// AppName names the config directory and the log file.
const AppName = "text-extractor"

// Config is the root of config.yaml.
type Config struct {
	LogLevel string        `yaml:"log_level"`
	OCR      OCRConfig     `yaml:"ocr"`
	Preview  PreviewConfig `yaml:"preview"`
	Window   WindowConfig  `yaml:"window"`
	Theme    ThemeConfig   `yaml:"theme"`
}

// OCRConfig controls the Tesseract engine.
type OCRConfig struct {
	Languages      []string `yaml:"languages"`
	TessdataPrefix string   `yaml:"tessdata_prefix"`
	// PageSegMode is the Tesseract page segmentation mode, 1..13. Mode 0
	// (orientation and script detection only) yields no text and is rejected.
	PageSegMode    int      `yaml:"page_seg_mode"`
	Preprocess     bool     `yaml:"preprocess"`
	// Async runs recognition off the UI goroutine.
	Async          bool     `yaml:"async"`
}

// PreviewConfig controls the preview pane.
type PreviewConfig struct {
	Fraction float64 `yaml:"fraction"`
}

// WindowConfig controls the main window geometry.
type WindowConfig struct {
	Width       float32 `yaml:"width"`
	Height      float32 `yaml:"height"`
	SplitOffset float64 `yaml:"split_offset"`
}

// ThemeConfig is the window palette as "#rrggbb" strings.
type ThemeConfig struct {
	Primary    string `yaml:"primary"`
	Background string `yaml:"background"`
	Border     string `yaml:"border"`
	Accent     string `yaml:"accent"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		OCR: OCRConfig{
			Languages:   []string{"rus", "eng"},
			PageSegMode: 3,
			Async:       true,
		},
		Preview: PreviewConfig{Fraction: 0.9},
		Window: WindowConfig{
			Width:       1280,
			Height:      720,
			SplitOffset: 500.0 / 1200.0,
		},
		Theme: ThemeConfig{
			Primary:    "#6200ea",
			Background: "#f5f5f5",
			Border:     "#e0e0e0",
			Accent:     "#03dac6",
		},
	}
}

// Validate checks value ranges and color syntax.
func (c *Config) Validate() error {
	var errs []error

	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	if len(c.OCR.Languages) == 0 {
		errs = append(errs, errors.New("ocr.languages: at least one language is required"))
	}
	for _, lang := range c.OCR.Languages {
		if lang == "" {
			errs = append(errs, errors.New("ocr.languages: empty language code"))
			break
		}
	}
	if c.OCR.PageSegMode < 1 || c.OCR.PageSegMode > 13 {
		errs = append(errs, fmt.Errorf("ocr.page_seg_mode: %d not in 1..13", c.OCR.PageSegMode))
	}
	if c.Preview.Fraction <= 0 || c.Preview.Fraction > 1 {
		errs = append(errs, fmt.Errorf("preview.fraction: %v not in (0, 1]", c.Preview.Fraction))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window: size %vx%v must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Window.SplitOffset <= 0 || c.Window.SplitOffset >= 1 {
		errs = append(errs, fmt.Errorf("window.split_offset: %v not in (0, 1)", c.Window.SplitOffset))
	}

	for name, hex := range map[string]string{
		"primary":    c.Theme.Primary,
		"background": c.Theme.Background,
		"border":     c.Theme.Border,
		"accent":     c.Theme.Accent,
	} {
		if _, err := colorful.Hex(hex); err != nil {
			errs = append(errs, fmt.Errorf("theme.%s: %w", name, err))
		}
	}

	return errors.Join(errs...)
}

// Dir returns the directory holding config.yaml and the log file.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config dir: %w", err)
	}
	return filepath.Join(base, AppName), nil
}

// DefaultPath returns the path of config.yaml.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}
