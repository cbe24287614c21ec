package alignment

import (
	"math"

	matrix "github.com/skelterjohn/go.matrix"

	"github.com/jjtimmons/seqsign/internal/feature"
	"github.com/jjtimmons/seqsign/internal/protein"
)

// Consensus is the most frequent amino acid of a column
type Consensus struct {
	// AminoAcid is the consensus residue, or "-" in an all gap column
	AminoAcid string `json:"aa"`

	// Count is the number of rows with the consensus residue
	Count int `json:"count"`

	// Frequency is Count over the number of rows
	Frequency float64 `json:"frequency"`

	// Conservation is Frequency as a rounded percentage
	Conservation int `json:"conservation"`
}

// ColumnStats are the counts behind a single column's frequencies
type ColumnStats struct {
	Column Column `json:"position"`

	// Counts of each amino acid, in protein.AminoAcids order
	Counts [len(protein.AminoAcids)]int `json:"counts"`

	// Gaps is the number of rows with a gap
	Gaps int `json:"gaps"`

	// Residues is the number of rows without a gap
	Residues int `json:"residues"`

	// GapFrequency is Gaps over the number of rows
	GapFrequency float64 `json:"gap_frequency"`

	// NoData is true when every row is a gap. Feature frequencies are undefined
	NoData bool `json:"no_data"`

	Consensus Consensus `json:"consensus"`

	// Feature is the code of the most frequent scored feature group
	Feature string `json:"feature,omitempty"`
}

// Statistics are the per-column consensus and frequencies of a Matrix
type Statistics struct {
	table   *feature.Table
	columns []ColumnStats

	// aminoAcids is amino acids x columns, fraction over non-gap residues
	aminoAcids *matrix.DenseMatrix

	// features is feature groups x columns, fraction over non-gap residues
	// except for the gap sentinel, which holds the gap frequency
	features *matrix.DenseMatrix
}

// Compute calculates the statistics of each column of the matrix
func Compute(m *Matrix, table *feature.Table) *Statistics {
	s := &Statistics{
		table:      table,
		columns:    make([]ColumnStats, m.Width()),
		aminoAcids: matrix.Zeros(len(protein.AminoAcids), m.Width()),
		features:   matrix.Zeros(table.Len(), m.Width()),
	}

	for c, col := range m.columns {
		cs := ColumnStats{Column: col}
		for r := 0; r < m.Len(); r++ {
			aa := m.At(r, c)
			if aa == protein.Gap {
				cs.Gaps++
				continue
			}
			cs.Residues++
			cs.Counts[protein.AminoAcidIndex(aa)]++
		}

		if m.Len() > 0 {
			cs.GapFrequency = float64(cs.Gaps) / float64(m.Len())
		}
		cs.NoData = cs.Residues == 0
		cs.Consensus = consensus(cs.Counts, m.Len())

		if !cs.NoData {
			for a, count := range cs.Counts {
				s.aminoAcids.Set(a, c, float64(count)/float64(cs.Residues))
			}
		}

		best := -1.0
		for g := 0; g < table.Len(); g++ {
			group := table.Group(g)
			if group.Kind == feature.GapSentinel {
				s.features.Set(g, c, cs.GapFrequency)
				continue
			}
			if cs.NoData {
				continue
			}

			members := 0
			for a, count := range cs.Counts {
				if table.Contains(g, protein.AminoAcids[a]) {
					members += count
				}
			}
			freq := float64(members) / float64(cs.Residues)
			s.features.Set(g, c, freq)

			if group.Kind == feature.Scored && freq > best {
				best = freq
				cs.Feature = group.Code
			}
		}

		s.columns[c] = cs
	}

	return s
}

// consensus returns the most common amino acid. Ties go to the amino acid
// earliest in protein.AminoAcids
func consensus(counts [len(protein.AminoAcids)]int, rows int) Consensus {
	best := -1
	for a, count := range counts {
		if count > 0 && (best < 0 || count > counts[best]) {
			best = a
		}
	}
	if best < 0 {
		return Consensus{AminoAcid: string(protein.Gap)}
	}

	freq := float64(counts[best]) / float64(rows)
	return Consensus{
		AminoAcid:    string(protein.AminoAcids[best]),
		Count:        counts[best],
		Frequency:    freq,
		Conservation: int(math.Round(freq * 100)),
	}
}

// Table is the feature table the statistics were computed with
func (s *Statistics) Table() *feature.Table {
	return s.table
}

// Len is the number of columns
func (s *Statistics) Len() int {
	return len(s.columns)
}

// Column returns the statistics of a column
func (s *Statistics) Column(c int) ColumnStats {
	return s.columns[c]
}

// Columns returns the statistics of every column
func (s *Statistics) Columns() []ColumnStats {
	columns := make([]ColumnStats, len(s.columns))
	copy(columns, s.columns)
	return columns
}

// FeatureFrequency returns the frequency of the feature group at index g in
// column c. ok is false when the column has no data
func (s *Statistics) FeatureFrequency(g, c int) (freq float64, ok bool) {
	if s.columns[c].NoData && s.table.Group(g).Kind != feature.GapSentinel {
		return 0, false
	}
	return s.features.Get(g, c), true
}

// AminoAcidFrequency returns the fraction of non-gap residues in column c
// that are the amino acid. ok is false when the column has no data
func (s *Statistics) AminoAcidFrequency(aa byte, c int) (freq float64, ok bool) {
	a := protein.AminoAcidIndex(aa)
	if a < 0 || s.columns[c].NoData {
		return 0, false
	}
	return s.aminoAcids.Get(a, c), true
}

// Consensus returns the consensus sequence, one residue per column
func (s *Statistics) Consensus() string {
	seq := make([]byte, len(s.columns))
	for c, cs := range s.columns {
		seq[c] = cs.Consensus.AminoAcid[0]
	}
	return string(seq)
}

// Features returns a copy of the feature groups x columns frequency matrix
func (s *Statistics) Features() *matrix.DenseMatrix {
	return s.features.Copy()
}
