package iconset

import (
	"pwa_icons/pngenc"
	"pwa_icons/raster"
)

// Generate renders a width x height icon and writes it to outputPath as a
// PNG. Dimensions are checked before anything is rendered, so invalid
// input never touches the file system. The write is atomic: on failure no
// file exists at outputPath that was not there before.
func Generate(width, height int, outputPath string) error {
	if err := pngenc.ValidateDimensions(width, height); err != nil {
		return err
	}
	r, err := raster.Generate(width, height)
	if err != nil {
		return err
	}
	_, err = pngenc.EncodeFile(outputPath, r)
	return err
}

// Render produces the raster for s, resampling when s is derived.
func Render(s Spec) (*raster.Raster, error) {
	if err := pngenc.ValidateDimensions(s.Width, s.Height); err != nil {
		return nil, err
	}
	if !s.Derived() {
		return raster.Generate(s.Width, s.Height)
	}
	src, err := raster.Generate(s.DeriveFrom, s.DeriveFrom)
	if err != nil {
		return nil, err
	}
	return raster.Resize(src, s.Width, s.Height)
}
