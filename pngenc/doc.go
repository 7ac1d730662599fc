// Package pngenc serializes raster.Raster scanline buffers into PNG files.
//
// The encoder produces the smallest conformant layout for 8-bit RGBA
// images:
//
//	signature  89 50 4E 47 0D 0A 1A 0A
//	IHDR       width, height, depth 8, color type 6, methods 0
//	IDAT       zlib stream of the raw scanlines (filter type 0 per row)
//	IEND       empty
//
// Every chunk is framed as a big-endian length, the 4-byte type, the
// payload and a CRC-32 over type and payload.
//
// # Quick Start
//
//	r, err := raster.Generate(192, 192)
//	if err != nil {
//	    return err
//	}
//	data, err := pngenc.Encode(r)
//	if err != nil {
//	    return err
//	}
//	return pngenc.WriteFile("public/icons/icon-192.png", data)
//
// WriteFile is all-or-nothing: bytes go to a temporary sibling file which
// is renamed over the target only after a successful sync.
//
// # Inspection
//
// Inspect walks the chunks of an encoded file, checks framing, checksums
// and ordering, and confirms the result decodes with image/png:
//
//	report, err := pngenc.Inspect(data)
//	if errors.Is(err, pngenc.ErrChecksum) {
//	    // corrupted file
//	}
//	fmt.Println(report.Header.Width, report.Header.Height)
//
// # Thread Safety
//
// An Encoder is safe for concurrent use; compressors are pooled per
// Encoder and reset between images.
package pngenc
