// Package render provides the drawing surfaces that execute background paint
// operations, plus the Ebiten window that hosts them.
// This file implements background image loading for PNG, JPEG, GIF, BMP and
// WebP files.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	// Register image decoders for common formats
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"sync"

	"github.com/h2non/filetype"
	"github.com/hajimehoshi/ebiten/v2"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// ErrNotImage is returned when a background image file is not a recognized
// image format.
var ErrNotImage = errors.New("not an image")

// sniffLen is the number of header bytes inspected to detect the file type.
const sniffLen = 262

// Bitmap is a decoded background image. It implements compositor.Image and
// caches whether any pixel is translucent.
type Bitmap struct {
	src         image.Image
	size        image.Point
	transparent bool

	once    sync.Once
	texture *ebiten.Image
}

// NewBitmap wraps a decoded image.
func NewBitmap(img image.Image) *Bitmap {
	b := img.Bounds()
	return &Bitmap{
		src:         img,
		size:        b.Size(),
		transparent: hasTransparency(img),
	}
}

// LoadBitmap reads and decodes an image file.
func LoadBitmap(path string) (*Bitmap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer f.Close()

	bm, err := DecodeBitmap(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return bm, nil
}

// DecodeBitmap decodes an image from r. The header is checked first so
// that non-image files fail with ErrNotImage instead of a decoder error.
func DecodeBitmap(r io.Reader) (*Bitmap, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	head := data
	if len(head) > sniffLen {
		head = head[:sniffLen]
	}
	if !filetype.IsImage(head) {
		return nil, ErrNotImage
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return NewBitmap(img), nil
}

// Size returns the image dimensions.
func (b *Bitmap) Size() image.Point { return b.size }

// HasTransparency reports whether any pixel is not fully opaque.
func (b *Bitmap) HasTransparency() bool { return b.transparent }

// Source returns the decoded image.
func (b *Bitmap) Source() image.Image { return b.src }

// Ebiten returns the image as an Ebiten texture, creating it on first use.
func (b *Bitmap) Ebiten() *ebiten.Image {
	b.once.Do(func() {
		b.texture = ebiten.NewImageFromImage(b.src)
	})
	return b.texture
}

// hasTransparency scans img unless it can report opacity itself.
func hasTransparency(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return !o.Opaque()
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0xffff {
				return true
			}
		}
	}
	return false
}
