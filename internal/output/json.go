package output

import (
	"bufio"
	"encoding/json"
	"io"

	"github.com/radlab-hd/laextract/internal/extract"
)

// JSONWriter buffers results and writes them as one JSON document.
type JSONWriter struct {
	w      *bufio.Writer
	pretty bool
	indent string
	items  []extract.Result
}

// NewJSONWriter creates a JSON writer.
func NewJSONWriter(w io.Writer, pretty bool, indent string) *JSONWriter {
	return &JSONWriter{
		w:      bufio.NewWriter(w),
		pretty: pretty,
		indent: indent,
		items:  make([]extract.Result, 0),
	}
}

// Write buffers a single result for JSON array output.
func (w *JSONWriter) Write(res extract.Result) error {
	w.items = append(w.items, res)
	return nil
}

// WriteAll buffers multiple results.
func (w *JSONWriter) WriteAll(res []extract.Result) error {
	w.items = append(w.items, res...)
	return nil
}

// Flush writes the buffered results. A single result is written directly,
// multiple results as an array.
func (w *JSONWriter) Flush() error {
	var doc any = w.items
	if len(w.items) == 1 {
		doc = w.items[0]
	}

	var output []byte
	var err error
	if w.pretty {
		output, err = json.MarshalIndent(doc, "", w.indent)
	} else {
		output, err = json.Marshal(doc)
	}
	if err != nil {
		return err
	}

	if _, err := w.w.Write(output); err != nil {
		return err
	}
	if _, err := w.w.WriteString("\n"); err != nil {
		return err
	}

	return w.w.Flush()
}

// Close flushes the writer.
func (w *JSONWriter) Close() error {
	return w.Flush()
}

// JSONLWriter writes newline-delimited JSON, one result per line.
type JSONLWriter struct {
	w *bufio.Writer
}

// NewJSONLWriter creates a JSONL writer.
func NewJSONLWriter(w io.Writer) *JSONLWriter {
	return &JSONLWriter{
		w: bufio.NewWriter(w),
	}
}

// Write writes a single result as a JSON line.
func (w *JSONLWriter) Write(res extract.Result) error {
	output, err := json.Marshal(res)
	if err != nil {
		return err
	}

	if _, err := w.w.Write(output); err != nil {
		return err
	}
	if _, err := w.w.WriteString("\n"); err != nil {
		return err
	}

	return w.w.Flush()
}

// WriteAll writes multiple results as JSON lines.
func (w *JSONLWriter) WriteAll(res []extract.Result) error {
	for _, item := range res {
		if err := w.Write(item); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the buffer.
func (w *JSONLWriter) Flush() error {
	return w.w.Flush()
}

// Close flushes the writer.
func (w *JSONLWriter) Close() error {
	return w.Flush()
}
