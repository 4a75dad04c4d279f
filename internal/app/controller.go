// Package app holds the application state and the handlers behind each user
// action, independent of the GUI toolkit.
//
// The UI calls Begin when the user picks (or drops) a file, Process to run
// OCR, and Commit to publish the result. Process blocks and may run on any
// goroutine; Begin and Commit are cheap. A newer Begin cancels the previous
// run and Commit drops results of superseded runs, so the text area always
// reflects the last selected image.
package app

import (
	"context"
	"image"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ironsheep/text-extractor/internal/clipboard"
	"github.com/ironsheep/text-extractor/internal/config"
	"github.com/ironsheep/text-extractor/internal/imaging"
	"github.com/ironsheep/text-extractor/internal/ocr"
)

// Status line messages.
const (
	MsgReady        = "Ready"
	MsgProcessing   = "Processing image..."
	MsgDone         = "Done"
	MsgNoText       = "Done: no text found"
	MsgLoadFailed   = "Failed to load image"
	MsgOCRFailed    = "Recognition failed"
	PlaceholderHint = "Drop an image here\nor click \"Open image\""
)

// Phase is the coarse state shown by the UI.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseShowing
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseShowing:
		return "showing"
	default:
		return "unknown"
	}
}

// State is everything the window displays.
type State struct {
	// Path is the last selected image.
	Path string
	// Text is the text area content, including user edits.
	Text string
	// Status is the status line message.
	Status string
	// Phase tracks idle -> loading -> showing.
	Phase Phase
	// Kind is the outcome of the last committed OCR run.
	Kind ocr.Kind
	// HasImage is true when the preview has a bitmap to show.
	HasImage bool
	// Info describes the loaded image, when there is one.
	Info *imaging.ImageInfo
}

// Deps are the collaborators of a Controller.
type Deps struct {
	Engine    ocr.Engine
	Clipboard clipboard.Writer
	Config    *config.Config
	Logger    zerolog.Logger
}

// Controller owns State and serializes access to it.
type Controller struct {
	mu     sync.Mutex
	state  State
	seq    uint64
	cancel context.CancelFunc

	engine   ocr.Engine
	preview  *imaging.Previewer
	exporter *clipboard.Exporter
	opts     ocr.Options
	log      zerolog.Logger
}

// New creates a controller in the idle phase.
func New(d Deps) *Controller {
	cfg := d.Config
	if cfg == nil {
		cfg = config.Default()
	}

	opts := ocr.Options{
		Languages: cfg.OCR.Languages,
		Logger:    d.Logger,
	}
	if cfg.OCR.Preprocess {
		p := imaging.DefaultPreprocessOptions()
		opts.Preprocess = &p
	}

	return &Controller{
		state:    State{Status: MsgReady, Phase: PhaseIdle},
		engine:   d.Engine,
		preview:  imaging.NewPreviewer(cfg.Preview.Fraction),
		exporter: clipboard.NewExporter(d.Clipboard, d.Logger),
		opts:     opts,
		log:      d.Logger,
	}
}

// Run is a single OCR request started by Begin.
type Run struct {
	ctx  context.Context
	seq  uint64
	Path string
}

// Begin starts a run for path and cancels the previous one.
//
// An empty path (the user canceled the file dialog) is a no-op: Begin
// returns false and the state is untouched.
func (c *Controller) Begin(ctx context.Context, path string) (*Run, bool) {
	if path == "" {
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
	}
	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.seq++

	c.state.Phase = PhaseLoading
	c.state.Status = MsgProcessing
	c.log.Info().Str("path", path).Uint64("run", c.seq).Msg("processing image")

	return &Run{ctx: runCtx, seq: c.seq, Path: path}, true
}

// Process decodes and recognizes the run's image. It blocks for the duration
// of the OCR call and does not touch State.
func (c *Controller) Process(run *Run) ocr.Result {
	return ocr.Extract(run.ctx, c.engine, run.Path, c.opts)
}

// Commit publishes res. It returns false, leaving State untouched, when run
// was superseded by a newer Begin or was canceled.
func (c *Controller) Commit(run *Run, res ocr.Result) (State, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if run.seq != c.seq || res.Kind == ocr.KindCanceled {
		c.log.Debug().Uint64("run", run.seq).Uint64("current", c.seq).Msg("dropping stale result")
		return c.state, false
	}
	c.cancel = nil

	c.state.Path = run.Path
	c.state.Text = res.Display(ocr.ErrorPrefix)
	c.state.Kind = res.Kind
	c.state.Phase = PhaseShowing

	c.preview.Set(res.Image)
	c.state.HasImage = res.Image != nil
	c.state.Info = nil
	if res.Image != nil {
		if info, err := imaging.Describe(run.Path, res.Image); err == nil {
			c.state.Info = info
		}
	}

	switch {
	case res.Kind == ocr.KindDecode:
		c.state.Status = MsgLoadFailed
	case res.Kind == ocr.KindEngine:
		c.state.Status = MsgOCRFailed
	case res.Empty():
		c.state.Status = MsgNoText
	default:
		c.state.Status = MsgDone
	}

	ev := c.log.Info()
	if !res.OK() {
		ev = c.log.Warn().Err(res.Err)
	}
	ev.Str("path", run.Path).
		Str("kind", res.Kind.String()).
		Dur("elapsed", res.Elapsed).
		Msg("image processed")

	return c.state, true
}

// Open runs Begin, Process and Commit on the calling goroutine, the way the
// UI does when asynchronous OCR is disabled.
func (c *Controller) Open(ctx context.Context, path string) (State, bool) {
	run, ok := c.Begin(ctx, path)
	if !ok {
		return c.State(), false
	}
	return c.Commit(run, c.Process(run))
}

// Preview returns the last loaded image scaled for a pane of w x h pixels,
// or nil when there is nothing to show.
func (c *Controller) Preview(w, h int) image.Image {
	return c.preview.Scale(w, h)
}

// SetText records user edits of the text area.
func (c *Controller) SetText(text string) {
	c.mu.Lock()
	c.state.Text = text
	c.mu.Unlock()
}

// Copy copies text to the clipboard and returns the status message.
func (c *Controller) Copy(text string) string {
	st := c.exporter.Copy(text)

	c.mu.Lock()
	c.state.Status = st.Message
	c.mu.Unlock()

	return st.Message
}

// Cancel aborts the in-flight run, if any.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// StatusLine renders the status message with image details when available.
func (s State) StatusLine() string {
	if s.Info != nil && s.Phase == PhaseShowing && s.Kind != ocr.KindDecode {
		return s.Status + " | " + s.Info.String()
	}
	return s.Status
}
