package ui

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// previewMinSize matches the minimum height of the preview pane.
var previewMinSize = fyne.NewSize(200, 200)

// scaledSource yields the preview bitmap for a pane of w x h device pixels.
type scaledSource func(w, h int) image.Image

// previewPane shows the scaled image, or a placeholder label when there is
// none. It is its own fyne.Layout: every layout pass (window resize, split
// drag) asks the source for a bitmap matching the new pane size.
type previewPane struct {
	source   scaledSource
	scale    func() float32
	frame    *canvas.Rectangle
	image    *canvas.Image
	label    *widget.Label
	content  *fyne.Container
	lastSize fyne.Size
}

func newPreviewPane(source scaledSource, scale func() float32, placeholder string) *previewPane {
	p := &previewPane{source: source, scale: scale}

	p.frame = canvas.NewRectangle(theme.Color(theme.ColorNameInputBackground))
	p.frame.StrokeColor = theme.Color(theme.ColorNameSeparator)
	p.frame.StrokeWidth = 2
	p.frame.CornerRadius = 8

	p.image = canvas.NewImageFromImage(nil)
	p.image.FillMode = canvas.ImageFillContain
	p.image.ScaleMode = canvas.ImageScaleSmooth
	p.image.Hide()

	p.label = widget.NewLabel(placeholder)
	p.label.Alignment = fyne.TextAlignCenter
	p.label.Wrapping = fyne.TextWrapWord
	p.label.Importance = widget.LowImportance

	p.content = container.New(p, p.frame, p.image, p.label)
	return p
}

// CanvasObject returns the pane for embedding in the window.
func (p *previewPane) CanvasObject() fyne.CanvasObject {
	return p.content
}

// SetPlaceholder changes the text shown when there is no image.
func (p *previewPane) SetPlaceholder(text string) {
	p.label.SetText(text)
}

// Refresh re-runs the layout with the current size, picking up a new bitmap.
func (p *previewPane) Refresh() {
	p.content.Refresh()
}

// Layout implements fyne.Layout.
func (p *previewPane) Layout(_ []fyne.CanvasObject, size fyne.Size) {
	p.lastSize = size

	p.frame.Move(fyne.NewPos(0, 0))
	p.frame.Resize(size)
	p.label.Move(fyne.NewPos(0, 0))
	p.label.Resize(size)

	s := p.scale()
	if s <= 0 {
		s = 1
	}
	img := p.source(int(size.Width*s), int(size.Height*s))
	if img == nil {
		if p.image.Visible() {
			p.image.Hide()
		}
		if !p.label.Visible() {
			p.label.Show()
		}
		return
	}

	if p.label.Visible() {
		p.label.Hide()
	}

	b := img.Bounds()
	imgSize := fyne.NewSize(float32(b.Dx())/s, float32(b.Dy())/s)
	p.image.Resize(imgSize)
	p.image.Move(fyne.NewPos((size.Width-imgSize.Width)/2, (size.Height-imgSize.Height)/2))
	if p.image.Image != img {
		p.image.Image = img
		p.image.Refresh()
	}
	if !p.image.Visible() {
		p.image.Show()
	}
}

// MinSize implements fyne.Layout.
func (p *previewPane) MinSize(_ []fyne.CanvasObject) fyne.Size {
	return previewMinSize
}
