// Package ocr extracts text from image files using Tesseract.
//
// This package wraps the Tesseract OCR engine (via gosseract/v2) behind a small
// Engine interface and adds the glue the application needs: decode the file,
// optionally clean it up, recognize it with a fixed language hint, and trim the
// result.
//
// # Prerequisites
//
// Tesseract and its language data must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-rus tesseract-ocr-eng
//   - macOS: brew install tesseract tesseract-lang
//   - Windows: Download from https://github.com/UB-Mannheim/tesseract/wiki
//
// Building the Tesseract engine requires cgo. Without cgo, NewTesseractEngine
// returns an engine whose every call fails with ErrNotCompiled, so the window
// still opens and reports the problem in the text area.
//
// # Languages
//
// DefaultLanguages requests combined Russian and English recognition
// ("rus+eng"). Tesseract loads both models and picks per word.
//
// # Results
//
// Extract never returns an error value. It returns a Result tagged with a
// Kind, so callers can tell "recognized nothing" (KindOK with empty Text) from
// "could not read the file" (KindDecode). Result.Display renders what the
// text area shows: the text itself, or ErrorPrefix followed by the error.
//
// # Cancellation
//
// Tesseract cannot be interrupted mid-page. Recognize returns as soon as the
// context is done and lets the in-flight call finish and release its client in
// the background.
package ocr
