package raster

import (
	"image"

	"golang.org/x/image/draw"
)

// Resize resamples src to width x height with Catmull-Rom interpolation.
// It is used for icons derived from a larger rendering.
func Resize(src *Raster, width, height int) (*Raster, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	if err := ValidateDimensions(width, height); err != nil {
		return nil, err
	}
	if src.Width == width && src.Height == height {
		dst := &Raster{Width: width, Height: height, Pix: make([]byte, len(src.Pix))}
		copy(dst.Pix, src.Pix)
		return dst, nil
	}

	in := src.ToRGBA()
	scaled := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), in, in.Bounds(), draw.Src, nil)

	return FromImage(scaled)
}
