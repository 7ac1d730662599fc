package raster

import (
	"image/color"
	"math"
)

// Icon palette.
var (
	Background = color.RGBA{R: 31, G: 41, B: 55, A: 255}
	Circle     = color.RGBA{R: 59, G: 130, B: 246, A: 255}
	Checkmark  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// CircleRadiusRatio is the circle radius as a fraction of the width.
const CircleRadiusRatio = 0.42

// checkmarkMinWidth is the width above which the checkmark branch applies.
const checkmarkMinWidth = 100

// Generate renders the icon: a blue circle of radius 0.42*width centered at
// (width/2, height/2) on a dark background. Icons wider than 100 pixels also
// evaluate the checkmark overlay rule.
func Generate(width, height int) (*Raster, error) {
	r, err := New(width, height)
	if err != nil {
		return nil, err
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r.Set(x, y, PixelAt(x, y, width, height))
		}
	}
	return r, nil
}

// PixelAt returns the icon color of pixel (x, y) in a width x height icon.
func PixelAt(x, y, width, height int) color.RGBA {
	cx, cy := width/2, height/2
	radius := float64(width) * CircleRadiusRatio

	dx, dy := x-cx, y-cy
	dist := math.Sqrt(float64(dx*dx + dy*dy))
	if dist >= radius {
		return Background
	}

	if width > checkmarkMinWidth && onCheckmark(x, y, width, height) {
		return Checkmark
	}
	return Circle
}

// onCheckmark reports whether (x, y) lies on the checkmark diagonal. The
// diagonal test is an exact floating point equality, so it only fires where
// the products land exactly: every other column along the diagonal at sizes
// such as 200, 300 and 1000, but nowhere at 192 or 512.
func onCheckmark(x, y, width, height int) bool {
	fx, fy := float64(x), float64(y)
	w, h := float64(width), float64(height)

	if !(fy > h*0.45 && fy < h*0.65 && fx > w*0.3 && fx < w*0.75) {
		return false
	}
	// Explicit conversions keep the products rounded on their own (no FMA).
	// Changing this expression changes which pixels are white.
	return (fx-float64(w*0.31))*0.5 == fy-float64(h*0.52)
}
