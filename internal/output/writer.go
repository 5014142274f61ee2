// Package output persists extraction results: streaming file writers for
// CSV, JSON, JSONL and YAML, and a SQLite store for run history.
package output

import (
	"fmt"
	"io"

	"github.com/radlab-hd/laextract/internal/extract"
)

// Format identifies a file output format.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
	FormatJSONL Format = "jsonl"
	FormatYAML  Format = "yaml"
)

// Writer serializes extraction results to one destination.
type Writer interface {
	// Write records a single result.
	Write(res extract.Result) error

	// WriteAll records multiple results.
	WriteAll(res []extract.Result) error

	// Flush ensures all buffered data is written.
	Flush() error

	// Close flushes and releases resources.
	Close() error
}

// WriterOption configures a writer.
type WriterOption func(*writerConfig)

type writerConfig struct {
	pretty bool
	indent string
}

// WithPretty enables pretty-printing for formats that support it.
func WithPretty(enabled bool) WriterOption {
	return func(c *writerConfig) {
		c.pretty = enabled
	}
}

// WithIndent sets the indentation string.
func WithIndent(indent string) WriterOption {
	return func(c *writerConfig) {
		c.indent = indent
	}
}

// NewWriter creates a writer for the specified format.
func NewWriter(w io.Writer, format Format, opts ...WriterOption) (Writer, error) {
	cfg := &writerConfig{
		pretty: true,
		indent: "  ",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	switch format {
	case FormatCSV:
		return NewCSVWriter(w), nil
	case FormatJSON:
		return NewJSONWriter(w, cfg.pretty, cfg.indent), nil
	case FormatJSONL:
		return NewJSONLWriter(w), nil
	case FormatYAML:
		return NewYAMLWriter(w), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
