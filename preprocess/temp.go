package preprocess

import (
	"os"
	"path/filepath"
)

// TempDir is a scoped scratch directory for transient WAV and Ogg files.
// Release removes the whole tree and must run on every exit path; it is
// idempotent and swallows removal errors.
type TempDir struct {
	path     string
	released bool
}

func NewTempDir() (*TempDir, error) {
	path, err := os.MkdirTemp("", "sns-converter-")

	if err != nil {
		return nil, err
	}

	return &TempDir{path: path}, nil
}

// File names a path inside the scratch directory.
func (dir *TempDir) File(name string) string {
	return filepath.Join(dir.path, name)
}

func (dir *TempDir) Release() {
	if dir.released {
		return
	}

	dir.released = true
	os.RemoveAll(dir.path)
}
