package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/imaging"
)

// PreprocessOptions controls the clean-up applied before OCR.
type PreprocessOptions struct {
	// Grayscale drops color information. Tesseract binarizes internally,
	// but colored backgrounds often survive better as luminance.
	Grayscale bool

	// Contrast is a relative change in [-1, 1]; 0 leaves contrast unchanged.
	Contrast float64

	// Sharpen applies a 3x3 sharpening kernel.
	Sharpen bool

	// MinHeight upscales images shorter than this many pixels. Tesseract
	// performs poorly on glyphs under ~20px tall. 0 disables upscaling.
	MinHeight int
}

// DefaultPreprocessOptions are the settings used when preprocessing is
// enabled in the configuration.
func DefaultPreprocessOptions() PreprocessOptions {
	return PreprocessOptions{
		Grayscale: true,
		Contrast:  0.3,
		Sharpen:   true,
		MinHeight: 600,
	}
}

// Preprocess prepares an image for OCR.
//
// Steps run in a fixed order: upscale, grayscale, contrast, sharpen. Each
// step is skipped when its option is zero. The input is never modified.
//
// Parameters:
//   - img: Source image.
//   - opts: Which steps to apply.
//
// Returns the processed image, or img itself when no step applies.
func Preprocess(img image.Image, opts PreprocessOptions) image.Image {
	out := img

	if opts.MinHeight > 0 && out.Bounds().Dy() > 0 && out.Bounds().Dy() < opts.MinHeight {
		out = imaging.Resize(out, 0, opts.MinHeight, imaging.Lanczos)
	}
	if opts.Grayscale {
		out = effect.Grayscale(out)
	}
	if opts.Contrast != 0 {
		out = adjust.Contrast(out, clamp(opts.Contrast, -1, 1))
	}
	if opts.Sharpen {
		out = effect.Sharpen(out)
	}

	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
