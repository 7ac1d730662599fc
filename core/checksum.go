package core

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// ComputeSHA256 computes the SHA256 hash of a file and returns it as a hexadecimal string.
func ComputeSHA256(filepath string) (string, error) {
	if filepath == "" {
		return "", fmt.Errorf("filepath cannot be empty")
	}

	file, err := os.Open(filepath)
	if err != nil {
		return "", fmt.Errorf("failed to open file %q: %w", filepath, err)
	}
	defer file.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", fmt.Errorf("failed to read file %q: %w", filepath, err)
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// ComputeSHA256FromBytes computes the SHA256 hash of a byte slice.
func ComputeSHA256FromBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
