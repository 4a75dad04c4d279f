package imaging

import (
	"image"
	"math"
	"sync"

	"github.com/disintegration/imaging"
)

// DefaultPreviewFraction is the share of the preview pane the scaled image may
// occupy in each dimension.
const DefaultPreviewFraction = 0.9

// FitSize computes the size of src scaled to fit inside pane*fraction while
// keeping the source aspect ratio.
//
// Parameters:
//   - src: Source image dimensions in pixels.
//   - pane: Preview pane dimensions in pixels.
//   - fraction: Share of the pane to fill, in (0, 1]. Out-of-range values fall
//     back to DefaultPreviewFraction.
//
// Returns the target size. Both dimensions are at least 1 so the result is
// always a valid resize target; a zero-sized source yields (0, 0).
//
// The image is scaled up as well as down, so a small image fills the pane.
func FitSize(src, pane image.Point, fraction float64) image.Point {
	if src.X <= 0 || src.Y <= 0 {
		return image.Point{}
	}
	if fraction <= 0 || fraction > 1 {
		fraction = DefaultPreviewFraction
	}

	boxW := math.Max(1, math.Floor(float64(pane.X)*fraction))
	boxH := math.Max(1, math.Floor(float64(pane.Y)*fraction))

	ratio := math.Min(boxW/float64(src.X), boxH/float64(src.Y))
	w := int(math.Round(float64(src.X) * ratio))
	h := int(math.Round(float64(src.Y) * ratio))

	// Rounding may push one side a pixel past the box.
	if w > int(boxW) {
		w = int(boxW)
	}
	if h > int(boxH) {
		h = int(boxH)
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return image.Pt(w, h)
}

// Previewer holds the last decoded bitmap and its last scaled copy.
//
// The preview pane asks for a new scaled copy on every layout pass. Scale
// resamples the source bitmap (never a previously scaled copy, so repeated
// resizes do not degrade quality) and returns the cached copy when the target
// size has not changed.
//
// Previewer is safe for concurrent use.
type Previewer struct {
	mu       sync.Mutex
	fraction float64
	source   image.Image
	scaled   image.Image
	size     image.Point
	resizes  int
}

// NewPreviewer creates an empty previewer filling the given share of the pane.
func NewPreviewer(fraction float64) *Previewer {
	if fraction <= 0 || fraction > 1 {
		fraction = DefaultPreviewFraction
	}
	return &Previewer{fraction: fraction}
}

// Set replaces the source bitmap and drops the cached scaled copy.
// Passing nil clears the preview.
func (p *Previewer) Set(img image.Image) {
	p.mu.Lock()
	p.source = img
	p.scaled = nil
	p.size = image.Point{}
	p.mu.Unlock()
}

// Source returns the current source bitmap, or nil.
func (p *Previewer) Source() image.Image {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.source
}

// Scale returns the source scaled to fit a pane of paneW x paneH pixels.
//
// Returns nil when no source is set or the pane has no area yet (fyne lays
// out containers at zero size before the window is shown).
//
// Resampling uses the Lanczos filter.
func (p *Previewer) Scale(paneW, paneH int) image.Image {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.source == nil || paneW <= 0 || paneH <= 0 {
		return nil
	}

	b := p.source.Bounds()
	target := FitSize(image.Pt(b.Dx(), b.Dy()), image.Pt(paneW, paneH), p.fraction)
	if p.scaled != nil && target == p.size {
		return p.scaled
	}

	p.scaled = imaging.Resize(p.source, target.X, target.Y, imaging.Lanczos)
	p.size = target
	p.resizes++
	return p.scaled
}

// Resizes returns how many times the source has been resampled since the
// previewer was created.
func (p *Previewer) Resizes() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.resizes
}
