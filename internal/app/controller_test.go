package app

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/text-extractor/internal/clipboard"
	"github.com/ironsheep/text-extractor/internal/config"
	"github.com/ironsheep/text-extractor/internal/ocr"
)

type stubEngine struct {
	mu    sync.Mutex
	texts map[int]string // keyed by image width
	err   error
	gate  chan struct{}
	calls int
}

func (s *stubEngine) Name() string { return "stub" }

func (s *stubEngine) Recognize(ctx context.Context, img image.Image, _ []string) (string, error) {
	s.mu.Lock()
	s.calls++
	gate := s.gate
	s.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if s.err != nil {
		return "", s.err
	}
	return s.texts[img.Bounds().Dx()], nil
}

type memClipboard struct {
	content string
	err     error
}

func (m *memClipboard) WriteAll(text string) error {
	if m.err != nil {
		return m.err
	}
	m.content = text
	return nil
}

func writeImage(t *testing.T, name string, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.Gray{Y: 200})
		}
	}
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func newController(engine ocr.Engine, clip clipboard.Writer) *Controller {
	return New(Deps{
		Engine:    engine,
		Clipboard: clip,
		Config:    config.Default(),
		Logger:    zerolog.Nop(),
	})
}

func TestNew_InitialState(t *testing.T) {
	c := newController(&stubEngine{}, &memClipboard{})
	st := c.State()

	assert.Equal(t, PhaseIdle, st.Phase)
	assert.Equal(t, MsgReady, st.Status)
	assert.Empty(t, st.Text)
	assert.False(t, st.HasImage)
	assert.Nil(t, c.Preview(100, 100))
}

func TestOpen_Success(t *testing.T) {
	path := writeImage(t, "scan.png", 200, 100)
	c := newController(&stubEngine{texts: map[int]string{200: "\n Hello, мир \n"}}, &memClipboard{})

	st, ok := c.Open(context.Background(), path)
	require.True(t, ok)

	assert.Equal(t, path, st.Path)
	assert.Equal(t, "Hello, мир", st.Text)
	assert.Equal(t, MsgDone, st.Status)
	assert.Equal(t, PhaseShowing, st.Phase)
	assert.Equal(t, ocr.KindOK, st.Kind)
	assert.True(t, st.HasImage)
	require.NotNil(t, st.Info)
	assert.Equal(t, 200, st.Info.Width)
	assert.True(t, strings.HasPrefix(st.StatusLine(), "Done | 200x100 PNG"))
}

func TestOpen_EmptyResult(t *testing.T) {
	path := writeImage(t, "blank.png", 50, 50)
	c := newController(&stubEngine{}, &memClipboard{})

	st, ok := c.Open(context.Background(), path)
	require.True(t, ok)
	assert.Equal(t, "", st.Text)
	assert.Equal(t, MsgNoText, st.Status)
	assert.Equal(t, ocr.KindOK, st.Kind)
}

func TestOpen_UndecodableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.png")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0644))
	c := newController(&stubEngine{}, &memClipboard{})

	st, ok := c.Open(context.Background(), path)
	require.True(t, ok)

	assert.True(t, strings.HasPrefix(st.Text, ocr.ErrorPrefix))
	assert.Equal(t, MsgLoadFailed, st.Status)
	assert.Equal(t, ocr.KindDecode, st.Kind)
	assert.False(t, st.HasImage)
	assert.Nil(t, c.Preview(100, 100), "placeholder instead of a bitmap")
	assert.Equal(t, MsgLoadFailed, st.StatusLine())
}

func TestOpen_EngineFailureKeepsPreview(t *testing.T) {
	path := writeImage(t, "scan.png", 40, 40)
	c := newController(&stubEngine{err: errors.New("Failed loading language 'rus'")}, &memClipboard{})

	st, ok := c.Open(context.Background(), path)
	require.True(t, ok)

	assert.Equal(t, MsgOCRFailed, st.Status)
	assert.True(t, strings.HasPrefix(st.Text, ocr.ErrorPrefix))
	assert.True(t, st.HasImage)
	assert.NotNil(t, c.Preview(100, 100))
}

func TestOpen_CanceledDialogIsNoOp(t *testing.T) {
	path := writeImage(t, "scan.png", 64, 32)
	engine := &stubEngine{texts: map[int]string{64: "first"}}
	c := newController(engine, &memClipboard{})

	before, ok := c.Open(context.Background(), path)
	require.True(t, ok)
	preview := c.Preview(100, 100)

	after, ok := c.Open(context.Background(), "")
	assert.False(t, ok)
	assert.Equal(t, before, after)
	assert.Equal(t, 1, engine.calls)
	assert.Same(t, preview, c.Preview(100, 100))
}

func TestPreview_ResizeDoesNotReadFile(t *testing.T) {
	path := writeImage(t, "scan.png", 300, 150)
	c := newController(&stubEngine{}, &memClipboard{})
	_, ok := c.Open(context.Background(), path)
	require.True(t, ok)

	require.NoError(t, os.Remove(path))

	small := c.Preview(200, 200)
	require.NotNil(t, small)
	assert.Equal(t, image.Rect(0, 0, 180, 90), small.Bounds())

	large := c.Preview(1000, 400)
	require.NotNil(t, large)
	assert.Equal(t, image.Rect(0, 0, 720, 360), large.Bounds())
}

func TestCommit_StaleRunIsDropped(t *testing.T) {
	first := writeImage(t, "first.png", 10, 10)
	second := writeImage(t, "second.png", 20, 20)
	engine := &stubEngine{texts: map[int]string{10: "old", 20: "new"}}
	c := newController(engine, &memClipboard{})

	run1, ok := c.Begin(context.Background(), first)
	require.True(t, ok)
	res1 := c.Process(run1)

	run2, ok := c.Begin(context.Background(), second)
	require.True(t, ok)
	res2 := c.Process(run2)

	_, ok = c.Commit(run2, res2)
	require.True(t, ok)

	st, ok := c.Commit(run1, res1)
	assert.False(t, ok, "older run must not overwrite the newer result")
	assert.Equal(t, "new", st.Text)
	assert.Equal(t, second, st.Path)
}

func TestBegin_CancelsPreviousRun(t *testing.T) {
	first := writeImage(t, "first.png", 10, 10)
	second := writeImage(t, "second.png", 20, 20)
	gate := make(chan struct{})
	engine := &stubEngine{texts: map[int]string{10: "old", 20: "new"}, gate: gate}
	c := newController(engine, &memClipboard{})

	run1, _ := c.Begin(context.Background(), first)
	done := make(chan ocr.Result, 1)
	go func() { done <- c.Process(run1) }()

	run2, _ := c.Begin(context.Background(), second)
	res1 := <-done
	assert.Equal(t, ocr.KindCanceled, res1.Kind)

	_, ok := c.Commit(run1, res1)
	assert.False(t, ok)
	assert.Equal(t, PhaseLoading, c.State().Phase)

	close(gate)
	st, ok := c.Commit(run2, c.Process(run2))
	require.True(t, ok)
	assert.Equal(t, "new", st.Text)
	assert.Equal(t, PhaseShowing, st.Phase)
}

func TestCancel(t *testing.T) {
	path := writeImage(t, "scan.png", 10, 10)
	gate := make(chan struct{})
	c := newController(&stubEngine{gate: gate}, &memClipboard{})

	run, _ := c.Begin(context.Background(), path)
	c.Cancel()
	res := c.Process(run)

	assert.Equal(t, ocr.KindCanceled, res.Kind)
	_, ok := c.Commit(run, res)
	assert.False(t, ok)
}

func TestBegin_SetsLoading(t *testing.T) {
	path := writeImage(t, "scan.png", 10, 10)
	c := newController(&stubEngine{}, &memClipboard{})

	_, ok := c.Begin(context.Background(), path)
	require.True(t, ok)

	st := c.State()
	assert.Equal(t, PhaseLoading, st.Phase)
	assert.Equal(t, MsgProcessing, st.Status)
	assert.Equal(t, MsgProcessing, st.StatusLine())
}

func TestCopy(t *testing.T) {
	clip := &memClipboard{content: "untouched"}
	c := newController(&stubEngine{}, clip)

	assert.Equal(t, clipboard.MsgNothingToCopy, c.Copy(""))
	assert.Equal(t, "untouched", clip.content)
	assert.Equal(t, clipboard.MsgNothingToCopy, c.State().Status)

	assert.Equal(t, clipboard.MsgCopied, c.Copy("edited text"))
	assert.Equal(t, "edited text", clip.content)
}

func TestCopy_Failure(t *testing.T) {
	c := newController(&stubEngine{}, &memClipboard{err: errors.New("clipboard unavailable")})

	msg := c.Copy("hello")
	assert.Equal(t, "Copy failed: clipboard unavailable", msg)
	assert.Equal(t, msg, c.State().Status)
}

func TestSetText(t *testing.T) {
	c := newController(&stubEngine{}, &memClipboard{})
	c.SetText("typed by hand")
	assert.Equal(t, "typed by hand", c.State().Text)
}

func TestNew_PreprocessFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.OCR.Preprocess = true
	c := New(Deps{Engine: &stubEngine{}, Config: cfg, Logger: zerolog.Nop()})
	require.NotNil(t, c.opts.Preprocess)

	c = New(Deps{Engine: &stubEngine{}, Logger: zerolog.Nop()})
	assert.Nil(t, c.opts.Preprocess)
	assert.Equal(t, []string{"rus", "eng"}, c.opts.Languages)
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "idle", PhaseIdle.String())
	assert.Equal(t, "loading", PhaseLoading.String())
	assert.Equal(t, "showing", PhaseShowing.String())
	assert.Equal(t, "unknown", Phase(9).String())
}
