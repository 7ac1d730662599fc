package pngenc

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"testing"
)

func TestIsPNG(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want bool
	}{
		{"empty", []byte{}, false},
		{"too short", []byte{0x89, 0x50}, false},
		{"jpeg magic", []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 0x4A, 0x46}, false},
		{"signature", Signature, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsPNG(tt.data); got != tt.want {
				t.Errorf("IsPNG() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInspect_EncodedOutput(t *testing.T) {
	data := mustEncode(t, mustGenerate(t, 192, 96))

	report, err := Inspect(data)
	if err != nil {
		t.Fatalf("Inspect() error: %v", err)
	}
	if report.Header.Width != 192 || report.Header.Height != 96 {
		t.Errorf("header = %dx%d, want 192x96", report.Header.Width, report.Header.Height)
	}
	if report.RawSize != 96*(1+192*4) {
		t.Errorf("RawSize = %d, want %d", report.RawSize, 96*(1+192*4))
	}
	if report.FileSize != len(data) {
		t.Errorf("FileSize = %d, want %d", report.FileSize, len(data))
	}
	if len(report.Chunks) != 3 || report.Chunks[2].Type != TypeIEND || report.Chunks[2].Length != 0 {
		t.Errorf("chunks = %+v, want IHDR, IDAT, empty IEND", report.Chunks)
	}
}

func TestInspect_Corruption(t *testing.T) {
	good := mustEncode(t, mustGenerate(t, 20, 20))

	flipped := bytes.Clone(good)
	flipped[len(Signature)+8] ^= 0xFF // first IHDR payload byte

	trailing := append(bytes.Clone(good), 0x00)

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"not png", []byte("definitely not a png file"), ErrNotPNG},
		{"bad crc", flipped, ErrChecksum},
		{"truncated", good[:len(good)-20], ErrTruncated},
		{"signature only", Signature, ErrTruncated},
		{"trailing data", trailing, ErrChunkOrder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Inspect(tt.data)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got: %v", tt.want, err)
			}
		})
	}
}

func TestInspect_ExtraChunk(t *testing.T) {
	good := mustEncode(t, mustGenerate(t, 8, 8))
	chunks, _, err := ReadChunks(good)
	if err != nil {
		t.Fatalf("ReadChunks() error: %v", err)
	}

	var buf bytes.Buffer
	buf.Write(Signature)
	chunks[0].WriteTo(&buf)
	Chunk{Type: "tEXt", Data: []byte("Comment\x00hi")}.WriteTo(&buf)
	for _, c := range chunks[1:] {
		c.WriteTo(&buf)
	}

	if _, err := Inspect(buf.Bytes()); !errors.Is(err, ErrChunkOrder) {
		t.Errorf("expected ErrChunkOrder, got: %v", err)
	}
}

func TestInspect_ForeignLayout(t *testing.T) {
	// image/png writes opaque images as 8-bit truecolor without alpha
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := range img.Pix {
		img.Pix[i] = 0xFF
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode() error: %v", err)
	}

	if _, err := Inspect(buf.Bytes()); !errors.Is(err, ErrBadHeader) {
		t.Errorf("expected ErrBadHeader, got: %v", err)
	}
}

// withHeader re-frames data with an IHDR declaring width x height, keeping
// its IDAT.
func withHeader(t *testing.T, data []byte, width, height uint32) []byte {
	t.Helper()
	chunks, _, err := ReadChunks(data)
	if err != nil {
		t.Fatalf("ReadChunks() error: %v", err)
	}
	h, err := ParseHeader(chunks[0].Data)
	if err != nil {
		t.Fatalf("ParseHeader() error: %v", err)
	}
	h.Width, h.Height = width, height

	var buf bytes.Buffer
	buf.Write(Signature)
	h.Chunk().WriteTo(&buf)
	for _, c := range chunks[1:] {
		c.WriteTo(&buf)
	}
	return buf.Bytes()
}

func TestInspect_DeclaredSize(t *testing.T) {
	small := mustEncode(t, mustGenerate(t, 8, 8))

	tests := []struct {
		name          string
		width, height uint32
		want          error
	}{
		{"largest dimensions overflow", 1<<31 - 1, 1<<31 - 1, ErrBadHeader},
		{"larger than IDAT", 1 << 16, 1 << 16, ErrDecode},
		{"smaller than IDAT", 4, 4, ErrDecode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Inspect(withHeader(t, small, tt.width, tt.height))
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got: %v", tt.want, err)
			}
		})
	}
}

func TestScanlineSize(t *testing.T) {
	got, err := scanlineSize(Header{Width: 192, Height: 96})
	if err != nil {
		t.Fatalf("scanlineSize() error: %v", err)
	}
	if got != 96*(1+192*4) {
		t.Errorf("scanlineSize() = %d, want %d", got, 96*(1+192*4))
	}

	if _, err := scanlineSize(Header{Width: 1<<31 - 1, Height: 1<<31 - 1}); !errors.Is(err, ErrBadHeader) {
		t.Errorf("expected ErrBadHeader, got: %v", err)
	}
}
