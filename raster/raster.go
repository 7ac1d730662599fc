// Package raster builds the uncompressed scanline buffers that PNG IDAT
// data decompresses to: one filter-type byte followed by width RGBA pixels
// per row, rows top to bottom.
package raster

import (
	"fmt"
	"image"
	"image/color"
)

// BytesPerPixel is the size of one RGBA pixel.
const BytesPerPixel = 4

// FilterNone is the PNG "no filter" scanline type, the only one emitted.
const FilterNone = 0

// Raster is a width x height RGBA image stored as PNG scanlines.
// Pix holds Height rows of Stride() bytes; the first byte of each row is
// the filter type.
type Raster struct {
	Width  int
	Height int
	Pix    []byte
}

// Size returns the raw scanline byte length for the given dimensions:
// height * (1 + width*4).
func Size(width, height int) int {
	return height * (1 + width*BytesPerPixel)
}

// ValidateDimensions rejects non-positive sizes.
func ValidateDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: width=%d height=%d", ErrInvalidDimensions, width, height)
	}
	return nil
}

// New allocates a zeroed raster. Every row starts with FilterNone.
func New(width, height int) (*Raster, error) {
	if err := ValidateDimensions(width, height); err != nil {
		return nil, err
	}
	return &Raster{
		Width:  width,
		Height: height,
		Pix:    make([]byte, Size(width, height)),
	}, nil
}

// Stride is the length in bytes of one scanline including its filter byte.
func (r *Raster) Stride() int {
	return 1 + r.Width*BytesPerPixel
}

// Validate checks that Pix is consistent with Width and Height.
func (r *Raster) Validate() error {
	if err := ValidateDimensions(r.Width, r.Height); err != nil {
		return err
	}
	if want := Size(r.Width, r.Height); len(r.Pix) != want {
		return fmt.Errorf("%w: have %d bytes, want %d for %dx%d",
			ErrBufferSize, len(r.Pix), want, r.Width, r.Height)
	}
	return nil
}

// Row returns the pixel bytes of row y, without the filter byte.
func (r *Raster) Row(y int) []byte {
	start := y*r.Stride() + 1
	return r.Pix[start : start+r.Width*BytesPerPixel]
}

func (r *Raster) offset(x, y int) int {
	return y*r.Stride() + 1 + x*BytesPerPixel
}

// At returns the color of the pixel at (x, y).
func (r *Raster) At(x, y int) color.RGBA {
	i := r.offset(x, y)
	p := r.Pix[i : i+4 : i+4]
	return color.RGBA{R: p[0], G: p[1], B: p[2], A: p[3]}
}

// Set stores c at (x, y).
func (r *Raster) Set(x, y int, c color.RGBA) {
	i := r.offset(x, y)
	p := r.Pix[i : i+4 : i+4]
	p[0], p[1], p[2], p[3] = c.R, c.G, c.B, c.A
}

// ToRGBA copies the raster into an *image.RGBA with bounds at the origin.
func (r *Raster) ToRGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	for y := 0; y < r.Height; y++ {
		copy(img.Pix[y*img.Stride:], r.Row(y))
	}
	return img
}

// FromImage builds a raster from any image. Pixels are converted to
// non-premultiplied RGBA, which is what PNG color type 6 stores.
func FromImage(img image.Image) (*Raster, error) {
	b := img.Bounds()
	r, err := New(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}

	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			r.Set(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A})
		}
	}
	return r, nil
}
