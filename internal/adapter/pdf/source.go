package pdf

import (
	"context"
	"os"

	"quiz-practice/internal/domain"
)

// FileSource loads the reference PDF from disk. The file is read on every
// call so a replaced document takes effect without a restart.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.NewExtractionError("load cancelled", err)
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, domain.NewExtractionError("failed to read reference document", err).
			WithContext("path", s.path)
	}
	return data, nil
}
