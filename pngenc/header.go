package pngenc

import (
	"encoding/binary"
	"fmt"
	"math"

	"pwa_icons/raster"
)

// IHDR field values used by the encoder.
const (
	BitDepth8          = 8
	ColorTypeRGBA      = 6
	CompressionDeflate = 0
	FilterAdaptive     = 0
	InterlaceNone      = 0
)

// headerLength is the size of the IHDR payload.
const headerLength = 13

// Header holds the IHDR fields.
type Header struct {
	Width             uint32
	Height            uint32
	BitDepth          uint8
	ColorType         uint8
	CompressionMethod uint8
	FilterMethod      uint8
	InterlaceMethod   uint8
}

// NewHeader returns the header for an 8-bit RGBA, non-interlaced image.
func NewHeader(width, height int) (Header, error) {
	if err := ValidateDimensions(width, height); err != nil {
		return Header{}, err
	}
	return Header{
		Width:             uint32(width),
		Height:            uint32(height),
		BitDepth:          BitDepth8,
		ColorType:         ColorTypeRGBA,
		CompressionMethod: CompressionDeflate,
		FilterMethod:      FilterAdaptive,
		InterlaceMethod:   InterlaceNone,
	}, nil
}

// ValidateDimensions rejects sizes that cannot be encoded: non-positive
// values and values above the PNG limit of 2^31-1. The returned error
// matches both ErrInvalidDimensions and raster.ErrInvalidDimensions.
func ValidateDimensions(width, height int) error {
	if width <= 0 || height <= 0 || int64(width) > math.MaxInt32 || int64(height) > math.MaxInt32 {
		return fmt.Errorf("%w: %w: width=%d height=%d",
			ErrInvalidDimensions, raster.ErrInvalidDimensions, width, height)
	}
	return nil
}

// Bytes returns the 13-byte IHDR payload.
func (h Header) Bytes() []byte {
	b := make([]byte, headerLength)
	binary.BigEndian.PutUint32(b[0:4], h.Width)
	binary.BigEndian.PutUint32(b[4:8], h.Height)
	b[8] = h.BitDepth
	b[9] = h.ColorType
	b[10] = h.CompressionMethod
	b[11] = h.FilterMethod
	b[12] = h.InterlaceMethod
	return b
}

// Chunk wraps the header as an IHDR chunk.
func (h Header) Chunk() Chunk {
	return Chunk{Type: TypeIHDR, Data: h.Bytes()}
}

// ParseHeader decodes an IHDR payload.
func ParseHeader(data []byte) (Header, error) {
	if len(data) != headerLength {
		return Header{}, fmt.Errorf("%w: payload is %d bytes, want %d", ErrBadHeader, len(data), headerLength)
	}
	h := Header{
		Width:             binary.BigEndian.Uint32(data[0:4]),
		Height:            binary.BigEndian.Uint32(data[4:8]),
		BitDepth:          data[8],
		ColorType:         data[9],
		CompressionMethod: data[10],
		FilterMethod:      data[11],
		InterlaceMethod:   data[12],
	}
	if h.Width == 0 || h.Height == 0 || h.Width > math.MaxInt32 || h.Height > math.MaxInt32 {
		return h, fmt.Errorf("%w: dimensions %dx%d", ErrBadHeader, h.Width, h.Height)
	}
	return h, nil
}

// IsRGBA8 reports whether the header describes the layout this package
// produces.
func (h Header) IsRGBA8() bool {
	return h.BitDepth == BitDepth8 &&
		h.ColorType == ColorTypeRGBA &&
		h.CompressionMethod == CompressionDeflate &&
		h.FilterMethod == FilterAdaptive &&
		h.InterlaceMethod == InterlaceNone
}

func (h Header) String() string {
	return fmt.Sprintf("%dx%d depth=%d color=%d interlace=%d",
		h.Width, h.Height, h.BitDepth, h.ColorType, h.InterlaceMethod)
}
