// Package snapshot writes rendered frames to WebP or PNG files.
package snapshot

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/HugoSmits86/nativewebp"
)

// Supported formats.
const (
	FormatWebP = "webp"
	FormatPNG  = "png"
)

// ErrUnknownFormat is returned for formats other than webp and png.
var ErrUnknownFormat = errors.New("unknown image format")

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, format string) error {
	switch strings.ToLower(format) {
	case FormatWebP:
		if err := nativewebp.Encode(w, img, nil); err != nil {
			return fmt.Errorf("encoding WebP: %w", err)
		}
	case FormatPNG:
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("encoding PNG: %w", err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return nil
}

// FormatForPath returns the format implied by the file extension of path.
func FormatForPath(path string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case FormatWebP, FormatPNG:
		return ext, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
}

// Save writes img to path, choosing the encoder from the extension.
// Parent directories are created as needed.
func Save(path string, img image.Image) error {
	format, err := FormatForPath(path)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	if err := Encode(file, img, format); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// FromPixels builds an image from a bottom-up RGBA readback, such as
// glReadPixels output, flipping it so row 0 is the top.
func FromPixels(pixels []byte, width, height int) (*image.RGBA, error) {
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		srcOffset := (height - 1 - y) * rowSize
		dstOffset := y * img.Stride
		copy(img.Pix[dstOffset:dstOffset+rowSize], pixels[srcOffset:srcOffset+rowSize])
	}
	return img, nil
}

// Capture names and writes timestamped screenshots.
type Capture struct {
	outputDir string
	prefix    string
	format    string
	now       func() time.Time
}

// NewCapture creates a capture handler writing <prefix>_<timestamp>.<format>
// files into outputDir.
func NewCapture(outputDir, prefix, format string) *Capture {
	return &Capture{
		outputDir: outputDir,
		prefix:    prefix,
		format:    strings.ToLower(format),
		now:       time.Now,
	}
}

// Filename generates the next screenshot filename without saving.
func (c *Capture) Filename() string {
	timestamp := c.now().Format("2006-01-02_15-04-05")
	filename := fmt.Sprintf("%s_%s.%s", c.prefix, timestamp, c.format)
	if c.outputDir != "" {
		filename = filepath.Join(c.outputDir, filename)
	}
	return filename
}

// CaptureImage saves img and returns the written path.
func (c *Capture) CaptureImage(img image.Image) (string, error) {
	filename := c.Filename()
	if err := Save(filename, img); err != nil {
		return "", err
	}
	return filename, nil
}

// CapturePixels saves a bottom-up RGBA readback and returns the written path.
func (c *Capture) CapturePixels(pixels []byte, width, height int) (string, error) {
	img, err := FromPixels(pixels, width, height)
	if err != nil {
		return "", err
	}
	return c.CaptureImage(img)
}
