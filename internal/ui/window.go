// Package ui builds the fyne window: the button row, the preview pane and text
// area side by side, and the status line.
package ui

import (
	"context"
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"

	"github.com/ironsheep/text-extractor/internal/app"
	"github.com/ironsheep/text-extractor/internal/config"
	"github.com/ironsheep/text-extractor/internal/imaging"
	"github.com/ironsheep/text-extractor/internal/ocr"
)

// Title is the window title.
const Title = "TextExtractor Pro"

// MainWindow wires widgets to an app.Controller.
type MainWindow struct {
	win  fyne.Window
	ctrl *app.Controller
	cfg  *config.Config
	log  zerolog.Logger

	openBtn  *widget.Button
	copyBtn  *widget.Button
	exitBtn  *widget.Button
	allFiles *widget.Check
	text     *widget.Entry
	status   *widget.Label
	preview  *previewPane
	split    *container.Split
}

// NewMainWindow creates the window and its content. It does not show it.
func NewMainWindow(a fyne.App, ctrl *app.Controller, cfg *config.Config, log zerolog.Logger) *MainWindow {
	m := &MainWindow{
		win:  a.NewWindow(Title),
		ctrl: ctrl,
		cfg:  cfg,
		log:  log,
	}

	m.openBtn = widget.NewButtonWithIcon("Open image", theme.FolderOpenIcon(), m.showOpenDialog)
	m.openBtn.Importance = widget.HighImportance
	m.copyBtn = widget.NewButtonWithIcon("Copy text", theme.ContentCopyIcon(), m.copyText)
	m.copyBtn.Importance = widget.HighImportance
	m.exitBtn = widget.NewButtonWithIcon("Exit", theme.CancelIcon(), m.win.Close)
	m.allFiles = widget.NewCheck("All files", nil)

	m.text = widget.NewMultiLineEntry()
	m.text.Wrapping = fyne.TextWrapWord
	m.text.SetPlaceHolder("Recognized text will appear here...")
	m.text.OnChanged = ctrl.SetText

	m.status = widget.NewLabel(app.MsgReady)
	m.status.Truncation = fyne.TextTruncateEllipsis

	m.preview = newPreviewPane(m.previewSource, m.canvasScale, app.PlaceholderHint)

	m.split = container.NewHSplit(m.preview.CanvasObject(), m.text)
	m.split.Offset = cfg.Window.SplitOffset

	buttons := container.NewHBox(m.openBtn, m.copyBtn, m.exitBtn, layout.NewSpacer(), m.allFiles)
	content := container.NewBorder(buttons, m.status, nil, nil, m.split)

	// The window cannot shrink below its content's MinSize.
	minSize := canvas.NewRectangle(color.Transparent)
	minSize.SetMinSize(fyne.NewSize(cfg.Window.Width, cfg.Window.Height))
	m.win.SetContent(container.NewStack(minSize, container.NewPadded(content)))

	m.win.SetIcon(theme.FileIcon())
	m.win.Resize(fyne.NewSize(cfg.Window.Width, cfg.Window.Height))
	m.win.CenterOnScreen()
	m.win.SetOnDropped(m.onDropped)
	m.win.SetOnClosed(ctrl.Cancel)
	m.addShortcuts()

	return m
}

// Window returns the underlying fyne window.
func (m *MainWindow) Window() fyne.Window {
	return m.win
}

// ShowAndRun shows the window and runs the application event loop.
func (m *MainWindow) ShowAndRun() {
	m.win.ShowAndRun()
}

func (m *MainWindow) addShortcuts() {
	m.win.Canvas().AddShortcut(
		&desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierShortcutDefault},
		func(fyne.Shortcut) { m.showOpenDialog() },
	)
	m.win.Canvas().AddShortcut(
		&desktop.CustomShortcut{KeyName: fyne.KeyC, Modifier: fyne.KeyModifierShortcutDefault | fyne.KeyModifierShift},
		func(fyne.Shortcut) { m.copyText() },
	)
}

func (m *MainWindow) showOpenDialog() {
	d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil {
			m.log.Warn().Err(err).Msg("file dialog failed")
			m.status.SetText("Cannot open file: " + err.Error())
			return
		}
		if r == nil {
			return
		}
		path := r.URI().Path()
		r.Close()
		m.openPath(path)
	}, m.win)
	if f := m.fileFilter(); f != nil {
		d.SetFilter(f)
	}
	d.Resize(fyne.NewSize(900, 600))
	d.Show()
}

// fileFilter limits the picker to image extensions unless "All files" is
// checked.
func (m *MainWindow) fileFilter() storage.FileFilter {
	if m.allFiles.Checked {
		return nil
	}
	return storage.NewExtensionFileFilter(imaging.SupportedExtensions)
}

func (m *MainWindow) onDropped(_ fyne.Position, uris []fyne.URI) {
	for _, u := range uris {
		if u.Scheme() != "file" {
			continue
		}
		m.openPath(u.Path())
		return
	}
}

// openPath handles a chosen file. An empty path leaves everything as is.
func (m *MainWindow) openPath(path string) {
	run, ok := m.ctrl.Begin(context.Background(), path)
	if !ok {
		return
	}
	m.status.SetText(m.ctrl.State().StatusLine())

	// Synchronous mode blocks the UI goroutine, so "Processing image..." is
	// not painted before the result replaces it.
	if !m.cfg.OCR.Async {
		if st, ok := m.ctrl.Commit(run, m.ctrl.Process(run)); ok {
			m.apply(st)
		}
		return
	}

	go func() {
		res := m.ctrl.Process(run)
		fyne.Do(func() {
			if st, ok := m.ctrl.Commit(run, res); ok {
				m.apply(st)
			}
		})
	}()
}

func (m *MainWindow) apply(st app.State) {
	m.text.SetText(st.Text)
	if !st.HasImage {
		placeholder := app.PlaceholderHint
		if st.Kind == ocr.KindDecode {
			placeholder = app.MsgLoadFailed
		}
		m.preview.SetPlaceholder(placeholder)
	}
	m.preview.Refresh()
	m.status.SetText(st.StatusLine())
}

func (m *MainWindow) copyText() {
	m.status.SetText(m.ctrl.Copy(m.text.Text))
}

func (m *MainWindow) previewSource(w, h int) image.Image {
	return m.ctrl.Preview(w, h)
}

func (m *MainWindow) canvasScale() float32 {
	return m.win.Canvas().Scale()
}
