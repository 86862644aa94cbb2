package faqcatalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yanqian/faq-chatbot/internal/domain/faq"
)

// Format names the structured encoding of a catalog resource.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor picks the encoding from a file name or object key; JSON is the default.
func FormatFor(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// wrapped accepts catalogs shaped as {"faqs": [...]}.
type wrapped struct {
	FAQs []faq.Entry `json:"faqs" yaml:"faqs"`
}

// Decode parses a catalog resource. Both a bare list of records and a
// {"faqs": [...]} wrapper are accepted.
func Decode(data []byte, format Format) ([]faq.Entry, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}
	switch format {
	case FormatYAML:
		var list []faq.Entry
		if err := yaml.Unmarshal(data, &list); err == nil {
			return list, nil
		}
		var obj wrapped
		if err := yaml.Unmarshal(data, &obj); err != nil {
			return nil, fmt.Errorf("parse yaml catalog: %w", err)
		}
		return obj.FAQs, nil
	default:
		var list []faq.Entry
		listErr := json.Unmarshal(data, &list)
		if listErr == nil {
			return list, nil
		}
		var obj wrapped
		if err := json.Unmarshal(data, &obj); err != nil {
			return nil, fmt.Errorf("parse json catalog: %w", listErr)
		}
		return obj.FAQs, nil
	}
}

// sanitize drops records with a blank question or answer, keeping order.
func sanitize(entries []faq.Entry, logger *slog.Logger) []faq.Entry {
	out := make([]faq.Entry, 0, len(entries))
	for i, entry := range entries {
		if strings.TrimSpace(entry.Question) == "" || strings.TrimSpace(entry.Answer) == "" {
			logger.Debug("skipping incomplete faq entry", "index", i)
			continue
		}
		out = append(out, entry)
	}
	return out
}
