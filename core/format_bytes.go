package core

import "fmt"

// Byte size constants for human-readable formatting (binary units).
const (
	BytesPerKB int64 = 1024
	BytesPerMB int64 = 1024 * BytesPerKB
)

// FormatBytes converts a byte count to a short human-readable string for
// the console summary. Icons rarely exceed a few hundred KB, so units stop
// at MB.
//   - FormatBytes(512) returns "512 B"
//   - FormatBytes(1536) returns "1.5 KB"
//   - FormatBytes(2097152) returns "2.0 MB"
func FormatBytes(bytes int64) string {
	if bytes < 0 {
		bytes = 0
	}

	switch {
	case bytes >= BytesPerMB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(BytesPerMB))
	case bytes >= BytesPerKB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(BytesPerKB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
