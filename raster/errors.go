package raster

import "errors"

// Sentinel errors for raster construction.
var (
	ErrInvalidDimensions = errors.New("raster: invalid dimensions")
	ErrBufferSize        = errors.New("raster: pixel buffer does not match dimensions")
)
