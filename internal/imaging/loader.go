package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// SupportedExtensions lists the file extensions offered by the file picker.
// The order matches the filter shown to the user.
var SupportedExtensions = []string{".png", ".jpg", ".jpeg", ".bmp", ".tiff", ".tif", ".gif", ".webp"}

// IsSupported reports whether path has one of the SupportedExtensions.
// The comparison is case-insensitive.
func IsSupported(path string) bool {
	lower := strings.ToLower(path)
	for _, ext := range SupportedExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// Load opens and decodes an image file.
//
// Parameters:
//   - path: Absolute or relative file path to the image.
//
// Returns:
//   - image.Image: The decoded image. JPEG images with an EXIF orientation tag
//     are rotated to their display orientation.
//   - error: Non-nil if the file cannot be opened or decoded.
//
// Load never caches: callers that need the bitmap again (the preview pane on
// resize) keep the returned value themselves.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, err := imaging.Decode(f, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	return img, nil
}

// ImageInfo contains metadata about a loaded image file.
//
// It feeds the status line after an image has been opened.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the format guessed from the file extension ("PNG", "JPEG", ...),
	// or "unknown".
	Format string `json:"format"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// String renders the info as "800x600 PNG, 12.3 KB".
func (i ImageInfo) String() string {
	return fmt.Sprintf("%dx%d %s, %s", i.Width, i.Height, i.Format, humanSize(i.FileSizeBytes))
}

// Describe returns metadata about an already decoded image.
//
// Parameters:
//   - path: Path the image was loaded from, used for the format and size.
//   - img: The decoded image. Must not be nil.
//
// Returns:
//   - *ImageInfo: Dimensions, format, and file size.
//   - error: Non-nil if the file cannot be stat'd.
func Describe(path string, img image.Image) (*ImageInfo, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	format := "unknown"
	if f, err := imaging.FormatFromFilename(path); err == nil {
		format = f.String()
	} else if strings.HasSuffix(strings.ToLower(path), ".webp") {
		format = "WEBP"
	}

	bounds := img.Bounds()
	return &ImageInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        format,
		FileSizeBytes: stat.Size(),
	}, nil
}

func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
