package output

import (
	"bufio"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/radlab-hd/laextract/internal/extract"
)

// YAMLWriter buffers results and writes them as one YAML document.
type YAMLWriter struct {
	w     *bufio.Writer
	items []extract.Result
}

// NewYAMLWriter creates a YAML writer.
func NewYAMLWriter(w io.Writer) *YAMLWriter {
	return &YAMLWriter{
		w:     bufio.NewWriter(w),
		items: make([]extract.Result, 0),
	}
}

// Write buffers a single result.
func (w *YAMLWriter) Write(res extract.Result) error {
	w.items = append(w.items, res)
	return nil
}

// WriteAll buffers multiple results.
func (w *YAMLWriter) WriteAll(res []extract.Result) error {
	w.items = append(w.items, res...)
	return nil
}

// Flush writes the buffered results as YAML.
func (w *YAMLWriter) Flush() error {
	encoder := yaml.NewEncoder(w.w)
	encoder.SetIndent(2)

	var err error
	if len(w.items) == 1 {
		err = encoder.Encode(w.items[0])
	} else {
		err = encoder.Encode(w.items)
	}
	if err != nil {
		return err
	}

	if err := encoder.Close(); err != nil {
		return err
	}

	return w.w.Flush()
}

// Close flushes the writer.
func (w *YAMLWriter) Close() error {
	return w.Flush()
}
