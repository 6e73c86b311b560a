package report

import (
	"os"
	"path/filepath"
)

// writeFileAtomic writes through a temp file and rename so a partially
// written artifact is never observable at the final path.
func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
