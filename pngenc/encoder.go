package pngenc

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zlib"

	"pwa_icons/raster"
)

// Compression levels accepted by NewEncoder.
const (
	DefaultCompression = zlib.DefaultCompression
	NoCompression      = zlib.NoCompression
	BestSpeed          = zlib.BestSpeed
	BestCompression    = zlib.BestCompression
	HuffmanOnly        = zlib.HuffmanOnly
)

// Encoder turns rasters into PNG byte streams at a fixed zlib level.
type Encoder struct {
	level int
	pool  sync.Pool
}

// NewEncoder returns an Encoder compressing at level, which must be in
// [HuffmanOnly, BestCompression].
func NewEncoder(level int) (*Encoder, error) {
	if err := ValidateLevel(level); err != nil {
		return nil, err
	}
	e := &Encoder{level: level}
	e.pool.New = func() any {
		return mustNewZlibWriter(level)
	}
	return e, nil
}

// ValidateLevel checks a zlib compression level.
func ValidateLevel(level int) error {
	if level < HuffmanOnly || level > BestCompression {
		return fmt.Errorf("%w: %d (want %d..%d)", ErrInvalidLevel, level, HuffmanOnly, BestCompression)
	}
	return nil
}

func mustNewZlibWriter(level int) *zlib.Writer {
	zw, err := zlib.NewWriterLevel(io.Discard, level)
	if err != nil {
		panic(err)
	}
	return zw
}

func mustNewEncoder(level int) *Encoder {
	e, err := NewEncoder(level)
	if err != nil {
		panic(err)
	}
	return e
}

var defaultEncoder = mustNewEncoder(DefaultCompression)

// Encode encodes r with the default compression level.
func Encode(r *raster.Raster) ([]byte, error) {
	return defaultEncoder.Encode(r)
}

// EncodeFile encodes r with the default compression level and writes it to
// path atomically.
func EncodeFile(path string, r *raster.Raster) (int, error) {
	return defaultEncoder.EncodeFile(path, r)
}

// Level returns the zlib level used by the encoder.
func (e *Encoder) Level() int {
	return e.level
}

// Encode returns the complete PNG file for r: signature, IHDR, a single
// IDAT holding the compressed scanlines, and IEND.
func (e *Encoder) Encode(r *raster.Raster) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: nil raster", ErrInvalidDimensions)
	}
	header, err := NewHeader(r.Width, r.Height)
	if err != nil {
		return nil, err
	}
	if want := raster.Size(r.Width, r.Height); len(r.Pix) != want {
		return nil, fmt.Errorf("%w: have %d bytes, want %d for %dx%d",
			ErrRasterSize, len(r.Pix), want, r.Width, r.Height)
	}

	idat, err := e.compress(r.Pix)
	if err != nil {
		return nil, err
	}

	chunks := []Chunk{
		header.Chunk(),
		{Type: TypeIDAT, Data: idat},
		{Type: TypeIEND},
	}
	size := len(Signature)
	for _, c := range chunks {
		size += c.Len()
	}

	var buf bytes.Buffer
	buf.Grow(size)
	buf.Write(Signature)
	for _, c := range chunks {
		if err := appendChunk(&buf, c); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}

// compress returns the zlib stream for raw.
func (e *Encoder) compress(raw []byte) ([]byte, error) {
	var out bytes.Buffer
	zw := e.pool.Get().(*zlib.Writer)
	defer e.pool.Put(zw)
	zw.Reset(&out)

	if _, err := zw.Write(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCompression, err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCompression, err)
	}
	return out.Bytes(), nil
}
