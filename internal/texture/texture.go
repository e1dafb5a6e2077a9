// Package texture provides image decoding and texture processing utilities.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ftrvxmtrx/tga"
	_ "golang.org/x/image/bmp"  // BMP decoder registration
	_ "golang.org/x/image/webp" // WebP decoder registration
)

// ErrNoTexture is returned when a texture file does not exist.
var ErrNoTexture = errors.New("texture not found")

var plySuffix = regexp.MustCompile(`\.[Pp][Ll][Yy]$`)

// PathForModel returns the texture path paired with a model file:
// "models/cube.ply" -> "models/cube-texture.png". Paths without a .ply
// suffix are returned unchanged.
func PathForModel(modelPath string) string {
	return plySuffix.ReplaceAllString(modelPath, "-texture.png")
}

// Load reads and decodes an image file (PNG, JPEG, BMP, TGA or WebP).
// With flipY set, rows are reversed so row 0 is the bottom of the image, as
// OpenGL texture uploads expect.
func Load(path string, flipY bool) (*image.NRGBA, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNoTexture, path)
		}
		return nil, fmt.Errorf("texture: read %s: %w", path, err)
	}
	// TGA has no magic number, so it is picked by extension.
	if strings.EqualFold(filepath.Ext(path), ".tga") {
		img, err := tga.Decode(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("texture: decode %s: %w", path, err)
		}
		return finish(img, flipY), nil
	}
	return Decode(raw, flipY)
}

// Decode decodes an in-memory PNG, JPEG, BMP or WebP image.
func Decode(data []byte, flipY bool) (*image.NRGBA, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("texture: decode: %w", err)
	}
	return finish(img, flipY), nil
}

func finish(img image.Image, flipY bool) *image.NRGBA {
	out := ToNRGBA(img)
	if flipY {
		FlipVertical(out)
	}
	return out
}

// ToNRGBA converts any image to a zero-origin NRGBA image.
func ToNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

// FlipVertical reverses the rows of img in place.
func FlipVertical(img *image.NRGBA) {
	h := img.Rect.Dy()
	rowLen := img.Rect.Dx() * 4
	tmp := make([]byte, rowLen)
	for y := 0; y < h/2; y++ {
		top := img.Pix[y*img.Stride : y*img.Stride+rowLen]
		bottom := img.Pix[(h-1-y)*img.Stride : (h-1-y)*img.Stride+rowLen]
		copy(tmp, top)
		copy(top, bottom)
		copy(bottom, tmp)
	}
}

// Checker generates a size x size checkerboard with cells x cells squares.
// It stands in for a ground texture when none is configured.
func Checker(size, cells int, a, b color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	if cells < 1 {
		cells = 1
	}
	cell := size / cells
	if cell < 1 {
		cell = 1
	}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := a
			if (x/cell+y/cell)%2 == 1 {
				c = b
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}
