package pngenc

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"pwa_icons/raster"
)

// FileMode is the permission of files created by WriteFile.
const FileMode = 0644

// WriteFile writes data to path atomically. The bytes are written and
// synced to a temporary file in the same directory, which is then renamed
// over path. On failure the temporary file is removed and path is left
// untouched. A missing directory yields an error matching fs.ErrNotExist.
func WriteFile(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	tmpPath := filepath.Join(dir, tempName(filepath.Base(path)))

	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, FileMode)
	if err != nil {
		return fmt.Errorf("pngenc: write %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err = f.Write(data); err != nil {
		return fmt.Errorf("pngenc: write %s: %w", path, err)
	}
	if err = f.Sync(); err != nil {
		return fmt.Errorf("pngenc: sync %s: %w", path, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("pngenc: close %s: %w", path, err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("pngenc: rename %s: %w", path, err)
	}
	return nil
}

// TempSuffix ends the names of in-flight WriteFile temporaries.
const TempSuffix = ".tmp"

func tempName(base string) string {
	return "." + base + "." + uuid.NewString() + TempSuffix
}

// IsTempFile reports whether name (a base name) is a temporary file left
// by WriteFile, of the form ".<target>.<uuid>.tmp".
func IsTempFile(name string) bool {
	if !strings.HasPrefix(name, ".") || !strings.HasSuffix(name, TempSuffix) {
		return false
	}
	rest := strings.TrimSuffix(name[1:], TempSuffix)
	i := strings.LastIndexByte(rest, '.')
	if i <= 0 {
		return false
	}
	_, err := uuid.Parse(rest[i+1:])
	return err == nil
}

// EncodeFile encodes r with e and writes it to path.
func (e *Encoder) EncodeFile(path string, r *raster.Raster) (int, error) {
	data, err := e.Encode(r)
	if err != nil {
		return 0, err
	}
	if err := WriteFile(path, data); err != nil {
		return 0, err
	}
	return len(data), nil
}
