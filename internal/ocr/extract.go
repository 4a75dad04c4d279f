package ocr

import (
	"context"
	"errors"
	"fmt"
	"image"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ironsheep/text-extractor/internal/imaging"
)

// ErrorPrefix is the fixed label placed before an error message in the text
// area.
const ErrorPrefix = "Error: "

// DefaultLanguages is the language hint passed to the engine.
var DefaultLanguages = []string{"rus", "eng"}

var (
	// ErrDecode marks failures to open or decode the image file.
	ErrDecode = errors.New("image could not be decoded")

	// ErrEngine marks failures inside the OCR engine.
	ErrEngine = errors.New("ocr engine failed")

	// ErrNotCompiled is returned by every engine call when the binary was
	// built without cgo.
	ErrNotCompiled = errors.New("OCR support not compiled in (build with CGO_ENABLED=1)")
)

// Engine recognizes text in a decoded image.
type Engine interface {
	// Name identifies the backend in logs ("tesseract").
	Name() string

	// Recognize returns the raw text found in img. languages are Tesseract
	// language codes; the engine combines them into one hint.
	Recognize(ctx context.Context, img image.Image, languages []string) (string, error)
}

// Kind tags the outcome of an extraction.
type Kind int

const (
	// KindOK means the engine ran; Text may still be empty.
	KindOK Kind = iota
	// KindDecode means the file could not be opened or decoded.
	KindDecode
	// KindEngine means the engine failed or panicked.
	KindEngine
	// KindCanceled means a newer request superseded this one.
	KindCanceled
)

func (k Kind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindDecode:
		return "decode"
	case KindEngine:
		return "engine"
	case KindCanceled:
		return "canceled"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Result is the outcome of Extract.
type Result struct {
	// Kind tells success from each failure class.
	Kind Kind

	// Text is the trimmed recognized text. Empty unless Kind is KindOK.
	Text string

	// Err is the failure cause. Nil when Kind is KindOK. Wraps ErrDecode or
	// ErrEngine so errors.Is works on it.
	Err error

	// Image is the decoded (unprocessed) image, when decoding succeeded.
	Image image.Image

	// Elapsed is the wall time spent recognizing, excluding decoding.
	Elapsed time.Duration
}

// OK reports whether the engine produced a result.
func (r Result) OK() bool { return r.Kind == KindOK }

// Empty reports whether the engine ran successfully but found no text.
func (r Result) Empty() bool { return r.Kind == KindOK && r.Text == "" }

// Display returns the string shown in the text area: the recognized text on
// success, prefix followed by the error otherwise.
func (r Result) Display(prefix string) string {
	if r.Kind == KindOK {
		return r.Text
	}
	if r.Err == nil {
		return prefix + r.Kind.String()
	}
	return prefix + r.Err.Error()
}

// Options controls a single extraction.
type Options struct {
	// Languages is the language hint. Empty means DefaultLanguages.
	Languages []string

	// Preprocess, when non-nil, is applied to the decoded image before OCR.
	Preprocess *imaging.PreprocessOptions

	// Logger receives a debug line per extraction. The zero value discards.
	Logger zerolog.Logger
}

// LanguageHint joins language codes the way Tesseract expects ("rus+eng").
func LanguageHint(languages []string) string {
	return strings.Join(languages, "+")
}

// Extract decodes the image at path and runs it through engine.
//
// Parameters:
//   - ctx: Cancels the recognition. A canceled run yields KindCanceled.
//   - engine: OCR backend. Must not be nil.
//   - path: Image file to read.
//   - opts: Language hint, preprocessing, and logger.
//
// Returns a Result; Extract itself never fails and never panics. A panic
// while decoding or preprocessing becomes a KindDecode result, a panic inside
// the engine a KindEngine result.
func Extract(ctx context.Context, engine Engine, path string, opts Options) (res Result) {
	langs := opts.Languages
	if len(langs) == 0 {
		langs = DefaultLanguages
	}
	log := opts.Logger.With().Str("path", path).Str("lang", LanguageHint(langs)).Logger()

	var (
		img      image.Image
		start    time.Time
		inEngine bool
	)
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		if !inEngine {
			log.Error().Interface("panic", p).Msg("decoder panicked")
			res = Result{Kind: KindDecode, Err: fmt.Errorf("%w: panic: %v", ErrDecode, p)}
			return
		}
		log.Error().Interface("panic", p).Msg("engine panicked")
		res = Result{
			Kind:    KindEngine,
			Err:     fmt.Errorf("%w: panic: %v", ErrEngine, p),
			Image:   img,
			Elapsed: time.Since(start),
		}
	}()

	img, err := imaging.Load(path)
	if err != nil {
		log.Debug().Err(err).Msg("decode failed")
		return Result{Kind: KindDecode, Err: fmt.Errorf("%w: %w", ErrDecode, err)}
	}

	input := img
	if opts.Preprocess != nil {
		input = imaging.Preprocess(img, *opts.Preprocess)
	}

	start = time.Now()
	inEngine = true
	text, err := engine.Recognize(ctx, input, langs)
	inEngine = false
	elapsed := time.Since(start)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			log.Debug().Dur("elapsed", elapsed).Msg("recognition canceled")
			return Result{Kind: KindCanceled, Err: err, Image: img, Elapsed: elapsed}
		}
		log.Debug().Err(err).Str("engine", engine.Name()).Msg("recognition failed")
		return Result{Kind: KindEngine, Err: fmt.Errorf("%w: %w", ErrEngine, err), Image: img, Elapsed: elapsed}
	}

	text = strings.TrimSpace(text)
	log.Debug().
		Str("engine", engine.Name()).
		Dur("elapsed", elapsed).
		Int("chars", len([]rune(text))).
		Msg("recognition done")

	return Result{Kind: KindOK, Text: text, Image: img, Elapsed: elapsed}
}
