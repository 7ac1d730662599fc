package pngenc

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"math"
)

// Signature is the fixed 8-byte PNG file signature.
var Signature = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

// Chunk types emitted by the encoder.
const (
	TypeIHDR = "IHDR"
	TypeIDAT = "IDAT"
	TypeIEND = "IEND"
)

// chunkOverhead is length + type + crc.
const chunkOverhead = 12

// maxChunkLength is the largest payload a PNG chunk may carry.
const maxChunkLength = math.MaxInt32

// Chunk is a single PNG chunk: a 4-byte ASCII type and its payload.
// Length and CRC are derived when the chunk is written.
type Chunk struct {
	Type string
	Data []byte
}

// CRC returns the CRC-32 (IEEE) of the chunk type followed by its data.
func (c Chunk) CRC() uint32 {
	crc := crc32.NewIEEE()
	crc.Write([]byte(c.Type))
	crc.Write(c.Data)
	return crc.Sum32()
}

// Len returns the encoded size of the chunk including framing.
func (c Chunk) Len() int {
	return chunkOverhead + len(c.Data)
}

// WriteTo writes the framed chunk to w.
func (c Chunk) WriteTo(w io.Writer) (int64, error) {
	if len(c.Type) != 4 {
		return 0, fmt.Errorf("pngenc: chunk type %q must be 4 bytes", c.Type)
	}
	if len(c.Data) > maxChunkLength {
		return 0, fmt.Errorf("%w: %s carries %d bytes", ErrChunkTooLarge, c.Type, len(c.Data))
	}

	var header [8]byte
	binary.BigEndian.PutUint32(header[:4], uint32(len(c.Data)))
	copy(header[4:], c.Type)

	var footer [4]byte
	binary.BigEndian.PutUint32(footer[:], c.CRC())

	var written int64
	for _, part := range [][]byte{header[:], c.Data, footer[:]} {
		n, err := w.Write(part)
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	return written, nil
}

// appendChunk frames c onto buf. bytes.Buffer writes only fail on
// allocation, which panics, so the only error is a malformed chunk.
func appendChunk(buf *bytes.Buffer, c Chunk) error {
	_, err := c.WriteTo(buf)
	return err
}
