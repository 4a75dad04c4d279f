// Package imaging provides the image handling behind the preview pane and the
// OCR pipeline.
//
// This package decodes image files into standard Go image.Image values, scales
// them to fit the preview pane, and optionally prepares them for Tesseract.
// Decoding and resampling use disintegration/imaging; OCR preprocessing uses
// anthonynsimon/bild.
//
// # Supported Formats
//
// Load accepts the common raster formats:
//   - PNG, JPEG, GIF (standard library decoders)
//   - BMP, TIFF (golang.org/x/image, registered by disintegration/imaging)
//   - WebP (golang.org/x/image/webp)
//
// JPEG files carrying an EXIF orientation tag are rotated on load so the
// preview and the OCR input match what the user sees in other viewers.
//
// # Preview Scaling
//
// The preview is a scaled copy of the last decoded bitmap. FitSize computes the
// target size as a fraction of the pane while keeping the source aspect ratio,
// and Previewer caches both the source and the last scaled copy so that window
// resizes never touch the disk again.
//
// # Thread Safety
//
// Previewer is safe for concurrent use: the OCR worker may set a new source
// while the UI goroutine is laying out the window. The stateless functions in
// this package may be called from any goroutine.
//
// # Error Handling
//
// Functions return errors for:
//   - Missing or unreadable files ("failed to open image")
//   - Unsupported or corrupt image data ("failed to decode image")
//   - Files that cannot be stat'd when describing an image
package imaging
