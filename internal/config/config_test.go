package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, []string{"rus", "eng"}, cfg.OCR.Languages)
	assert.Equal(t, 0.9, cfg.Preview.Fraction)
	assert.Equal(t, float32(1280), cfg.Window.Width)
	assert.Equal(t, float32(720), cfg.Window.Height)
	assert.True(t, cfg.OCR.Async)
	assert.False(t, cfg.OCR.Preprocess)
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log_level: debug
ocr:
  languages: [deu]
  preprocess: true
preview:
  fraction: 0.75
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"deu"}, cfg.OCR.Languages)
	assert.True(t, cfg.OCR.Preprocess)
	assert.True(t, cfg.OCR.Async, "unset keys keep defaults")
	assert.Equal(t, 0.75, cfg.Preview.Fraction)
	assert.Equal(t, "#6200ea", cfg.Theme.Primary)
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ocr: [unterminated"), 0644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.OCR.TessdataPrefix = "/opt/tessdata"
	cfg.Theme.Primary = "#123456"

	require.NoError(t, Save(path, cfg))

	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should be renamed away")

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
		{"no languages", func(c *Config) { c.OCR.Languages = nil }, "ocr.languages"},
		{"empty language", func(c *Config) { c.OCR.Languages = []string{"eng", ""} }, "empty language code"},
		{"psm out of range", func(c *Config) { c.OCR.PageSegMode = 14 }, "page_seg_mode"},
		{"psm osd only", func(c *Config) { c.OCR.PageSegMode = 0 }, "page_seg_mode"},
		{"zero fraction", func(c *Config) { c.Preview.Fraction = 0 }, "preview.fraction"},
		{"fraction above one", func(c *Config) { c.Preview.Fraction = 1.5 }, "preview.fraction"},
		{"zero window", func(c *Config) { c.Window.Width = 0 }, "window"},
		{"split offset", func(c *Config) { c.Window.SplitOffset = 1 }, "split_offset"},
		{"bad color", func(c *Config) { c.Theme.Accent = "teal" }, "theme.accent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.wantErr)
		})
	}
}

func TestValidate_FractionOneIsAllowed(t *testing.T) {
	cfg := Default()
	cfg.Preview.Fraction = 1
	assert.NoError(t, cfg.Validate())
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvLogLevel:       "debug",
		EnvLanguages:      "ukr+eng",
		EnvTessdataPrefix: "/usr/share/tessdata",
	}
	cfg := Default()
	cfg.ApplyEnv(func(k string) string { return env[k] })

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"ukr", "eng"}, cfg.OCR.Languages)
	assert.Equal(t, "/usr/share/tessdata", cfg.OCR.TessdataPrefix)
}

func TestApplyEnv_FileTessdataWins(t *testing.T) {
	cfg := Default()
	cfg.OCR.TessdataPrefix = "/from/file"
	cfg.ApplyEnv(func(k string) string {
		if k == EnvTessdataPrefix {
			return "/from/env"
		}
		return ""
	})
	assert.Equal(t, "/from/file", cfg.OCR.TessdataPrefix)
}

func TestApplyEnv_Empty(t *testing.T) {
	cfg := Default()
	cfg.ApplyEnv(func(string) string { return "" })
	assert.Equal(t, Default(), cfg)
}

func TestSplitLanguages(t *testing.T) {
	assert.Equal(t, []string{"rus", "eng"}, splitLanguages("rus+eng"))
	assert.Equal(t, []string{"rus", "eng"}, splitLanguages("rus, eng"))
	assert.Empty(t, splitLanguages("+,"))
}
