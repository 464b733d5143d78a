package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/supercrawl/internal/model"
)

// JSONWriter outputs reports in JSON format.
// This format is designed for tool integration and programmatic processing.
//
// Design decision: We use standard encoding/json. Every type written here
// already carries json tags for the backend API, so the output matches the
// backend's field names.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// JSONReport wraps an issue report with a severity breakdown.
type JSONReport struct {
	*model.IssueReport

	// Summary counts issues per severity rank.
	Summary JSONSummary `json:"summary"`
}

// JSONSummary is the severity breakdown of a JSONReport.
type JSONSummary struct {
	Total    int `json:"total"`
	Critical int `json:"critical"`
	High     int `json:"high"`
	Other    int `json:"other"`
}

// Write outputs the issue report with its severity summary.
func (w *JSONWriter) Write(report *model.IssueReport) (int, error) {
	return w.WriteValue(JSONReport{
		IssueReport: report,
		Summary: JSONSummary{
			Total:    report.Total(),
			Critical: report.Count(model.SeverityCritical),
			High:     report.Count(model.SeverityHigh),
			Other:    report.Count(model.SeverityOther),
		},
	})
}

// WriteValue marshals any value, such as a project list, and writes it with
// a trailing newline.
func (w *JSONWriter) WriteValue(v any) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return 0, err
	}

	data = append(data, '\n')
	return w.output.Write(data)
}
