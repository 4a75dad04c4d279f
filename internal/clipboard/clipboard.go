// Package clipboard copies recognized text to the system clipboard and turns
// the outcome into a status message.
package clipboard

import (
	"errors"

	"github.com/atotto/clipboard"
	"github.com/rs/zerolog"
)

// Status messages shown after a copy attempt.
const (
	MsgCopied        = "Text copied to clipboard"
	MsgNothingToCopy = "Nothing to copy"
	msgFailedPrefix  = "Copy failed: "
)

// ErrUnsupported is returned by SystemWriter when the platform has no
// clipboard utility.
var ErrUnsupported = errors.New("no clipboard utility found (install xclip, xsel or wl-clipboard)")

// Writer stores a string as the current clipboard content.
type Writer interface {
	WriteAll(text string) error
}

// SystemWriter writes to the platform clipboard through atotto/clipboard
// (xclip/xsel/wl-copy on Linux, pbcopy on macOS, the Win32 API on Windows).
type SystemWriter struct{}

// WriteAll implements Writer.
func (SystemWriter) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	return clipboard.WriteAll(text)
}

// Status is the outcome of a copy.
type Status struct {
	// Copied is true when the clipboard now holds the text.
	Copied bool
	// Err is the write failure, if any.
	Err error
	// Message is the status line text.
	Message string
}

// Exporter copies text through a Writer.
type Exporter struct {
	w   Writer
	log zerolog.Logger
}

// NewExporter creates an exporter. A nil writer uses SystemWriter.
func NewExporter(w Writer, log zerolog.Logger) *Exporter {
	if w == nil {
		w = SystemWriter{}
	}
	return &Exporter{w: w, log: log}
}

// Copy writes text to the clipboard. An empty string is not written and
// reports MsgNothingToCopy; there is no retry on failure.
func (e *Exporter) Copy(text string) Status {
	if text == "" {
		return Status{Message: MsgNothingToCopy}
	}

	if err := e.w.WriteAll(text); err != nil {
		e.log.Warn().Err(err).Msg("clipboard write failed")
		return Status{Err: err, Message: msgFailedPrefix + err.Error()}
	}

	e.log.Debug().Int("chars", len([]rune(text))).Msg("copied to clipboard")
	return Status{Copied: true, Message: MsgCopied}
}
