package pngenc

import "errors"

// Sentinel errors for PNG encoding and inspection.
// Use errors.Is() to check for these.
var (
	// Encoding errors
	ErrInvalidDimensions = errors.New("pngenc: invalid image dimensions")
	ErrRasterSize        = errors.New("pngenc: raster size does not match dimensions")
	ErrCompression       = errors.New("pngenc: failed to compress image data")
	ErrChunkTooLarge     = errors.New("pngenc: chunk is too large")
	ErrInvalidLevel      = errors.New("pngenc: invalid compression level")

	// Inspection errors
	ErrNotPNG     = errors.New("pngenc: data is not a PNG")
	ErrTruncated  = errors.New("pngenc: PNG data is truncated")
	ErrChecksum   = errors.New("pngenc: chunk checksum mismatch")
	ErrChunkOrder = errors.New("pngenc: invalid chunk sequence")
	ErrBadHeader  = errors.New("pngenc: invalid IHDR chunk")
	ErrDecode     = errors.New("pngenc: failed to decode image")
)
