package ports

import (
	"context"
	"io"
)

// ExportSink guarda un archivo exportado (disco local o bucket S3).
type ExportSink interface {
	// Put escribe data bajo name y devuelve la ubicación final (path o URI).
	Put(ctx context.Context, name string, data io.Reader, contentType string) (string, error)
}
