package raster

import (
	"errors"
	"fmt"
	"image/color"
	"testing"
)

func TestGenerate_Icon192(t *testing.T) {
	r, err := Generate(192, 192)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	if got := r.At(96, 96); got != Circle {
		t.Errorf("center = %v, want %v", got, Circle)
	}
	if got := r.At(0, 0); got != Background {
		t.Errorf("corner = %v, want %v", got, Background)
	}
	if got := r.At(191, 191); got != Background {
		t.Errorf("far corner = %v, want %v", got, Background)
	}
}

func TestGenerate_RadiusIsStrict(t *testing.T) {
	// width 100: radius 42, center (50, 50); (92, 50) is exactly on the edge
	r, err := Generate(100, 100)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if got := r.At(92, 50); got != Background {
		t.Errorf("pixel on radius = %v, want background", got)
	}
	if got := r.At(91, 50); got != Circle {
		t.Errorf("pixel inside radius = %v, want circle", got)
	}
}

func TestGenerate_OnlyPaletteColors(t *testing.T) {
	sizes := []struct {
		name          string
		width, height int
	}{
		{"favicon", 32, 32},
		{"icon-192", 192, 192},
		{"icon-512", 512, 512},
		{"wide", 120, 40},
	}

	for _, tt := range sizes {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Generate(tt.width, tt.height)
			if err != nil {
				t.Fatalf("Generate() error: %v", err)
			}
			for y := 0; y < r.Height; y++ {
				for x := 0; x < r.Width; x++ {
					c := r.At(x, y)
					if c != Background && c != Circle {
						t.Fatalf("pixel (%d,%d) = %v, want background or circle", x, y, c)
					}
				}
			}
		})
	}
}

func TestGenerate_FilterBytes(t *testing.T) {
	r, err := Generate(17, 9)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if len(r.Pix) != Size(17, 9) {
		t.Fatalf("len(Pix) = %d, want %d", len(r.Pix), Size(17, 9))
	}
	for y := 0; y < r.Height; y++ {
		if r.Pix[y*r.Stride()] != FilterNone {
			t.Errorf("row %d does not start with filter byte 0", y)
		}
	}
}

func TestGenerate_InvalidDimensions(t *testing.T) {
	if _, err := Generate(0, 10); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("expected ErrInvalidDimensions, got: %v", err)
	}
}

func TestOnCheckmark_OutsideBand(t *testing.T) {
	if onCheckmark(0, 0, 192, 192) {
		t.Error("onCheckmark(0,0) = true outside the band")
	}
}

func TestPixelAt_Checkmark(t *testing.T) {
	tests := []struct {
		name          string
		x, y          int
		width, height int
		want          color.RGBA
	}{
		{"200 first hit", 62, 104, 200, 200, Checkmark},
		{"200 next column", 63, 104, 200, 200, Circle},
		{"200 second hit", 64, 105, 200, 200, Checkmark},
		{"300 hit", 91, 155, 300, 300, Checkmark},
		{"1000 hit", 302, 516, 1000, 1000, Checkmark},
		{"non-square hit", 62, 52, 200, 100, Checkmark},
		{"192 same diagonal", 59, 100, 192, 192, Circle},
		{"width 100 has no checkmark", 31, 52, 100, 100, Circle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PixelAt(tt.x, tt.y, tt.width, tt.height); got != tt.want {
				t.Errorf("PixelAt(%d, %d, %d, %d) = %v, want %v",
					tt.x, tt.y, tt.width, tt.height, got, tt.want)
			}
		})
	}
}

func TestGenerate_CheckmarkCount(t *testing.T) {
	tests := []struct {
		size int
		want int
	}{
		{192, 0},
		{200, 26},
		{256, 0},
		{300, 40},
		{512, 0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.size), func(t *testing.T) {
			r, err := Generate(tt.size, tt.size)
			if err != nil {
				t.Fatalf("Generate() error: %v", err)
			}
			n := 0
			for y := 0; y < r.Height; y++ {
				for x := 0; x < r.Width; x++ {
					if r.At(x, y) == Checkmark {
						n++
					}
				}
			}
			if n != tt.want {
				t.Errorf("%d checkmark pixels, want %d", n, tt.want)
			}
		})
	}
}

func TestPixelAt_MatchesGenerate(t *testing.T) {
	r, _ := Generate(48, 30)
	for _, p := range [][2]int{{0, 0}, {24, 15}, {47, 29}, {10, 15}} {
		if got, want := r.At(p[0], p[1]), PixelAt(p[0], p[1], 48, 30); got != want {
			t.Errorf("At(%d,%d) = %v, PixelAt = %v", p[0], p[1], got, want)
		}
	}
}
