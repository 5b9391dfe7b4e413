package sim

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
)

// TraceRecord is one row of a per-tick trace.
type TraceRecord struct {
	Tick      int     `csv:"tick"`
	Phase     string  `csv:"phase"`
	Score     int     `csv:"score"`
	Tapped    bool    `csv:"tapped"`
	BirdY     float64 `csv:"bird_y"`
	VelocityY float64 `csv:"velocity_y"`
	Obstacles int     `csv:"obstacles"`
	Shaking   bool    `csv:"shaking"`
}

// TraceWriter appends trace records as CSV. The header is written with the
// first record.
type TraceWriter struct {
	w             io.Writer
	headerWritten bool
	rows          int
}

// NewTraceWriter returns a writer appending to w.
func NewTraceWriter(w io.Writer) *TraceWriter {
	return &TraceWriter{w: w}
}

// Write appends one record. A nil writer discards it.
func (t *TraceWriter) Write(rec TraceRecord) error {
	if t == nil {
		return nil
	}
	records := []TraceRecord{rec}
	if !t.headerWritten {
		if err := gocsv.Marshal(records, t.w); err != nil {
			return fmt.Errorf("sim: write trace: %w", err)
		}
		t.headerWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, t.w); err != nil {
			return fmt.Errorf("sim: write trace: %w", err)
		}
	}
	t.rows++
	return nil
}

// Rows returns the number of records written.
func (t *TraceWriter) Rows() int {
	if t == nil {
		return 0
	}
	return t.rows
}
