package telemetry

import (
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"
)

// FrameRecord is one row of a simulation trace.
type FrameRecord struct {
	Frame      int     `csv:"frame"`
	Level      int     `csv:"level"`
	ScreenRow  int     `csv:"screen_row"`
	ScreenCol  int     `csv:"screen_col"`
	X          float64 `csv:"x"`
	Y          float64 `csv:"y"`
	VX         float64 `csv:"vx"`
	VY         float64 `csv:"vy"`
	Gravity    float64 `csv:"gravity"`
	Candidates int     `csv:"candidates"`
	Action     string  `csv:"action"`
}

// TraceWriter appends frame records as CSV.
type TraceWriter struct {
	w             io.Writer
	closer        io.Closer
	headerWritten bool
}

// NewTraceWriter writes records to w.
func NewTraceWriter(w io.Writer) *TraceWriter {
	return &TraceWriter{w: w}
}

// CreateTrace creates (or truncates) a trace file.
// Returns nil if path is empty (tracing disabled).
func CreateTrace(path string) (*TraceWriter, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("telemetry: creating trace: %w", err)
	}
	return &TraceWriter{w: f, closer: f}, nil
}

// Write appends one record. The header row is written with the first one.
func (t *TraceWriter) Write(rec FrameRecord) error {
	if t == nil {
		return nil
	}

	records := []FrameRecord{rec}

	if !t.headerWritten {
		if err := gocsv.Marshal(records, t.w); err != nil {
			return fmt.Errorf("telemetry: writing trace: %w", err)
		}
		t.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, t.w); err != nil {
		return fmt.Errorf("telemetry: writing trace: %w", err)
	}
	return nil
}

// Close closes the underlying file, if the writer owns one.
func (t *TraceWriter) Close() error {
	if t == nil || t.closer == nil {
		return nil
	}
	return t.closer.Close()
}
