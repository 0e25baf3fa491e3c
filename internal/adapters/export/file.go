package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FileSink guarda los exports en un directorio local.
type FileSink struct {
	dir string
}

// NewFileSink crea el sink. El directorio se crea en el primer Put.
func NewFileSink(dir string) *FileSink {
	if dir == "" {
		dir = "."
	}
	return &FileSink{dir: dir}
}

// Put escribe data en dir/name y devuelve el path final.
func (s *FileSink) Put(_ context.Context, name string, data io.Reader, _ string) (string, error) {
	path := filepath.Join(s.dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("export.FileSink: mkdir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("export.FileSink: create %s: %w", path, err)
	}
	if _, err := io.Copy(f, data); err != nil {
		f.Close()
		return "", fmt.Errorf("export.FileSink: write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("export.FileSink: close %s: %w", path, err)
	}
	return path, nil
}
