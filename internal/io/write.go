package io

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jjtimmons/seqsign/internal/alignment"
)

// AlignedRow is a single protein of an alignment report
type AlignedRow struct {
	alignment.Row

	// Sequence is the protein's residue at each position, '-' for gaps
	Sequence string `json:"seq"`
}

// Report is an alignment and its per-position statistics
type Report struct {
	// Time, ex: "2018-01-01 20:41:00"
	Time string `json:"time"`

	// Scheme is the numbering scheme of the positions
	Scheme string `json:"numbering_scheme"`

	// CacheKey identifies the alignment's proteins and segments
	CacheKey string `json:"cache_key"`

	// Canonical is false if a segment had a custom list of positions
	Canonical bool `json:"canonical"`

	Segments []string `json:"segments"`

	// FeatureTable is the version of the feature table of the statistics
	FeatureTable string `json:"feature_table"`

	// Consensus is the consensus amino acid of each position
	Consensus string `json:"consensus"`

	Rows []AlignedRow `json:"rows"`

	Columns []alignment.ColumnStats `json:"columns"`
}

// NewReport creates the report of an alignment
func NewReport(m *alignment.Matrix, stats *alignment.Statistics, key string) Report {
	// same format as log.Println https://golang.org/pkg/log/#Println
	t := time.Now()
	timestamp := fmt.Sprintf(
		"%d/%02d/%02d %02d:%02d:%02d",
		t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(),
	)

	rows := []AlignedRow{}
	for i, r := range m.Rows() {
		rows = append(rows, AlignedRow{Row: r, Sequence: m.Sequence(i)})
	}

	return Report{
		Time:         timestamp,
		Scheme:       m.Scheme(),
		CacheKey:     key,
		Canonical:    m.Canonical(),
		Segments:     m.Segments(),
		FeatureTable: stats.Table().Version(),
		Consensus:    stats.Consensus(),
		Rows:         rows,
		Columns:      stats.Columns(),
	}
}

// WriteJSON serializes v and writes it to the filename, creating its directory if needed
func WriteJSON(filename string, v interface{}) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize the output data: %v", err)
	}

	if dir := filepath.Dir(filename); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %v", dir, err)
		}
	}

	if err := os.WriteFile(filename, output, 0644); err != nil {
		return fmt.Errorf("failed to write the results to the file system: %v", err)
	}
	return nil
}

// GuessOutput gets an output path from an input path (if no output path is
// specified). It uses the same name as the input path with a new suffix
func GuessOutput(in, suffix string) string {
	ext := filepath.Ext(in)
	return in[0:len(in)-len(ext)] + "." + suffix + ".json"
}
