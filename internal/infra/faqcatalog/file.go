package faqcatalog

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/yanqian/faq-chatbot/internal/domain/faq"
)

// FileSource reads the catalog from a local JSON or YAML file on every call.
type FileSource struct {
	path   string
	format Format
	logger *slog.Logger
}

// NewFileSource constructs a source for path. The encoding follows the file extension.
func NewFileSource(path string, logger *slog.Logger) *FileSource {
	return &FileSource{
		path:   path,
		format: FormatFor(path),
		logger: logger.With("component", "faqcatalog.file"),
	}
}

// Entries implements faq.CatalogSource.
func (s *FileSource) Entries(_ context.Context) []faq.Entry {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("faq catalog not found", "path", s.path)
		} else {
			s.logger.Warn("faq catalog unreadable", "path", s.path, "error", err)
		}
		return nil
	}
	entries, err := Decode(data, s.format)
	if err != nil {
		s.logger.Warn("invalid faq catalog", "path", s.path, "error", err)
		return nil
	}
	return sanitize(entries, s.logger)
}

var _ faq.CatalogSource = (*FileSource)(nil)
