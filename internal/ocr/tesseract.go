//go:build cgo

package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"

	"github.com/otiai10/gosseract/v2"
)

// TesseractConfig configures the gosseract client for each call.
type TesseractConfig struct {
	// TessdataPrefix points at a directory holding *.traineddata files.
	// Empty uses Tesseract's compiled-in default or TESSDATA_PREFIX.
	TessdataPrefix string

	// PageSegMode is the Tesseract page segmentation mode (0-13).
	// 0 leaves Tesseract's default (3, fully automatic).
	PageSegMode int
}

// TesseractEngine implements Engine with the gosseract client. A fresh client
// is created and closed for every call.
type TesseractEngine struct {
	cfg           TesseractConfig
	clientFactory func() *gosseract.Client
}

// NewTesseractEngine constructs a Tesseract-backed OCR engine.
func NewTesseractEngine(cfg TesseractConfig) *TesseractEngine {
	return &TesseractEngine{cfg: cfg, clientFactory: gosseract.NewClient}
}

// Name implements Engine.
func (e *TesseractEngine) Name() string { return "tesseract" }

type recognized struct {
	text string
	err  error
}

// Recognize performs OCR on img.
//
// The image is encoded to PNG in memory and handed to Tesseract with
// SetImageFromBytes, so no temporary file is written.
//
// If ctx is done before Tesseract returns, Recognize returns ctx.Err()
// immediately; the client finishes and closes in the background.
func (e *TesseractEngine) Recognize(ctx context.Context, img image.Image, languages []string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}

	client := e.clientFactory()
	if err := e.configure(client, buf.Bytes(), languages); err != nil {
		client.Close()
		return "", err
	}

	done := make(chan recognized, 1)
	go func() {
		defer client.Close()
		text, err := client.Text()
		done <- recognized{text: text, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		if r.err != nil {
			return "", fmt.Errorf("OCR failed: %w", r.err)
		}
		return r.text, nil
	}
}

func (e *TesseractEngine) configure(client *gosseract.Client, data []byte, languages []string) error {
	if e.cfg.TessdataPrefix != "" {
		if err := client.SetTessdataPrefix(e.cfg.TessdataPrefix); err != nil {
			return fmt.Errorf("failed to set tessdata path: %w", err)
		}
	}

	if len(languages) > 0 {
		if err := client.SetLanguage(languages...); err != nil {
			return fmt.Errorf("failed to set language: %w", err)
		}
	}

	if e.cfg.PageSegMode > 0 {
		if err := client.SetPageSegMode(gosseract.PageSegMode(e.cfg.PageSegMode)); err != nil {
			return fmt.Errorf("failed to set page segmentation mode: %w", err)
		}
	}

	if err := client.SetImageFromBytes(data); err != nil {
		return fmt.Errorf("failed to set image: %w", err)
	}

	return nil
}

// Info contains information about the OCR subsystem.
type Info struct {
	Available bool     `json:"available"`
	Version   string   `json:"version,omitempty"`
	Languages []string `json:"languages,omitempty"`
	Error     string   `json:"error,omitempty"`
	Backend   string   `json:"backend"`
}

// GetInfo reports the linked Tesseract version and the installed languages.
func GetInfo() Info {
	info := Info{
		Available: true,
		Version:   gosseract.Version(),
		Backend:   "gosseract",
	}

	langs, err := gosseract.GetAvailableLanguages()
	if err != nil {
		info.Error = err.Error()
		return info
	}
	info.Languages = langs
	return info
}
