//go:build !cgo

package ocr

import (
	"context"
	"image"
)

// TesseractConfig is accepted for API compatibility; it has no effect without cgo.
type TesseractConfig struct {
	TessdataPrefix string
	PageSegMode    int
}

// TesseractEngine is a stub used when the binary is built without cgo.
type TesseractEngine struct{}

// NewTesseractEngine returns a stub engine.
func NewTesseractEngine(TesseractConfig) *TesseractEngine {
	return &TesseractEngine{}
}

// Name implements Engine.
func (e *TesseractEngine) Name() string { return "tesseract (disabled)" }

// Recognize always fails with ErrNotCompiled.
func (e *TesseractEngine) Recognize(context.Context, image.Image, []string) (string, error) {
	return "", ErrNotCompiled
}

// Info contains information about the OCR subsystem.
type Info struct {
	Available bool     `json:"available"`
	Version   string   `json:"version,omitempty"`
	Languages []string `json:"languages,omitempty"`
	Error     string   `json:"error,omitempty"`
	Backend   string   `json:"backend"`
}

// GetInfo reports that OCR is unavailable.
func GetInfo() Info {
	return Info{
		Available: false,
		Error:     ErrNotCompiled.Error(),
		Backend:   "none",
	}
}
