package pngenc

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image/png"
	"io"
	"math"
	"math/bits"

	"github.com/klauspost/compress/zlib"

	"pwa_icons/raster"
)

// ChunkInfo describes one chunk found by ReadChunks.
type ChunkInfo struct {
	Type   string
	Length uint32
	CRC    uint32
	Offset int
}

// Report summarizes a verified PNG file.
type Report struct {
	Header Header
	Chunks []ChunkInfo
	// RawSize is the inflated IDAT length; for files from this package it
	// equals raster.Size(width, height).
	RawSize int
	// FileSize is the total encoded length.
	FileSize int
}

// IsPNG reports whether data starts with the PNG signature.
func IsPNG(data []byte) bool {
	return len(data) >= len(Signature) && bytes.Equal(data[:len(Signature)], Signature)
}

// ReadChunks splits data into chunks, checking the signature, chunk
// framing and every CRC. Reading stops at IEND; any bytes after it are
// an error.
func ReadChunks(data []byte) ([]Chunk, []ChunkInfo, error) {
	if !IsPNG(data) {
		return nil, nil, ErrNotPNG
	}

	var chunks []Chunk
	var infos []ChunkInfo
	pos := len(Signature)
	for {
		if len(data)-pos < chunkOverhead {
			return chunks, infos, fmt.Errorf("%w: %d bytes left at offset %d", ErrTruncated, len(data)-pos, pos)
		}
		length := binary.BigEndian.Uint32(data[pos : pos+4])
		typ := string(data[pos+4 : pos+8])
		if uint64(length) > uint64(len(data)-pos-chunkOverhead) {
			return chunks, infos, fmt.Errorf("%w: %s chunk declares %d bytes", ErrTruncated, typ, length)
		}

		body := data[pos+8 : pos+8+int(length)]
		stored := binary.BigEndian.Uint32(data[pos+8+int(length):])
		c := Chunk{Type: typ, Data: body}
		if got := c.CRC(); got != stored {
			return chunks, infos, fmt.Errorf("%w: %s chunk at offset %d: stored %08x, computed %08x",
				ErrChecksum, typ, pos, stored, got)
		}

		chunks = append(chunks, c)
		infos = append(infos, ChunkInfo{Type: typ, Length: length, CRC: stored, Offset: pos})
		pos += chunkOverhead + int(length)

		if typ == TypeIEND {
			if pos != len(data) {
				return chunks, infos, fmt.Errorf("%w: %d bytes after IEND", ErrChunkOrder, len(data)-pos)
			}
			return chunks, infos, nil
		}
	}
}

// Inspect verifies that data has the exact layout this package produces:
// IHDR first, a single IDAT, an empty IEND last, valid checksums, an
// 8-bit RGBA header, an IDAT that inflates to the expected scanline size,
// and that image/png decodes it to the declared dimensions.
func Inspect(data []byte) (*Report, error) {
	chunks, infos, err := ReadChunks(data)
	if err != nil {
		return nil, err
	}

	if chunks[0].Type != TypeIHDR {
		return nil, fmt.Errorf("%w: first chunk is %s", ErrChunkOrder, chunks[0].Type)
	}
	header, err := ParseHeader(chunks[0].Data)
	if err != nil {
		return nil, err
	}
	if !header.IsRGBA8() {
		return nil, fmt.Errorf("%w: unexpected layout %s", ErrBadHeader, header)
	}

	last := chunks[len(chunks)-1]
	if len(last.Data) != 0 {
		return nil, fmt.Errorf("%w: IEND carries %d bytes", ErrChunkOrder, len(last.Data))
	}

	var idat []byte
	counts := map[string]int{}
	for _, c := range chunks {
		counts[c.Type]++
		if c.Type == TypeIDAT {
			idat = c.Data
		}
	}
	if counts[TypeIHDR] != 1 || counts[TypeIDAT] != 1 || counts[TypeIEND] != 1 || len(chunks) != 3 {
		return nil, fmt.Errorf("%w: got %d chunks (IHDR=%d IDAT=%d IEND=%d)",
			ErrChunkOrder, len(chunks), counts[TypeIHDR], counts[TypeIDAT], counts[TypeIEND])
	}

	want, err := scanlineSize(header)
	if err != nil {
		return nil, err
	}
	rawSize, err := inflatedSize(idat, want)
	if err != nil {
		return nil, err
	}
	if rawSize != want {
		return nil, fmt.Errorf("%w: IDAT inflates to %d bytes, want %d", ErrDecode, rawSize, want)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if b := img.Bounds(); b.Dx() != int(header.Width) || b.Dy() != int(header.Height) {
		return nil, fmt.Errorf("%w: decoded %dx%d, header says %dx%d",
			ErrDecode, b.Dx(), b.Dy(), header.Width, header.Height)
	}

	return &Report{
		Header:   header,
		Chunks:   infos,
		RawSize:  int(rawSize),
		FileSize: len(data),
	}, nil
}

// scanlineSize returns the filtered raster length the header implies,
// rejecting sizes that do not fit in an int.
func scanlineSize(h Header) (uint64, error) {
	stride := 1 + uint64(h.Width)*raster.BytesPerPixel
	hi, lo := bits.Mul64(stride, uint64(h.Height))
	if hi != 0 || lo >= math.MaxInt {
		return 0, fmt.Errorf("%w: %dx%d image is too large", ErrBadHeader, h.Width, h.Height)
	}
	return lo, nil
}

// inflatedSize returns the inflated length of idat. It stops reading one
// byte past limit, so an oversized stream is never fully inflated.
func inflatedSize(idat []byte, limit uint64) (uint64, error) {
	zr, err := zlib.NewReader(bytes.NewReader(idat))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	defer zr.Close()

	n, err := io.Copy(io.Discard, io.LimitReader(zr, int64(limit)+1))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return uint64(n), nil
}
