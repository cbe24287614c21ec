// Package alignment builds alignment matrices of proteins against generic
// numbered positions and computes per-column statistics over them
package alignment

import (
	"fmt"
	"math"
	"sort"

	"github.com/jjtimmons/seqsign/internal/protein"
)

// Options for building a Matrix
type Options struct {
	// Scheme is the slug of the numbering scheme to align on
	Scheme string

	// MaxCells is the largest proteins x positions product allowed. <= 0 is unlimited
	MaxCells int
}

// Row is a single protein in the matrix
type Row struct {
	ID     string `json:"id"`
	Family string `json:"family"`
}

// Column is a single generic numbered position in the matrix
type Column struct {
	protein.GenericPosition

	// SegmentIndex is the index of the column's segment in the build's segment list
	SegmentIndex int `json:"-"`
}

// Less orders columns by segment, then rank, then label
func (c Column) Less(o Column) bool {
	if c.SegmentIndex != o.SegmentIndex {
		return c.SegmentIndex < o.SegmentIndex
	}
	if c.Rank != o.Rank {
		return c.Rank < o.Rank
	}
	return c.Label < o.Label
}

// Matrix is a proteins x positions table of residues. Immutable once built
type Matrix struct {
	scheme   string
	rows     []Row
	columns  []Column
	segments []string
	custom   bool

	// cells[row][col] is a residue's one letter code or protein.Gap
	cells [][]byte

	index map[string]int
}

// Build creates an alignment matrix from proteins and the segments to align them on.
//
// Each segment resolves to its columns, in order, either from its custom
// position list or from the generic numbers of the proteins' residues that
// fall in the segment. Proteins get a gap at each position they lack
func Build(proteins []protein.Protein, segments []protein.Segment, opts Options) (*Matrix, error) {
	if len(proteins) == 0 || len(segments) == 0 {
		return nil, &EmptyInputError{Proteins: len(proteins), Segments: len(segments)}
	}

	columns, err := resolve(proteins, segments, opts.Scheme)
	if err != nil {
		return nil, err
	}

	// check the size before allocating any cells
	if opts.MaxCells > 0 && len(proteins)*len(columns) > opts.MaxCells {
		return nil, &TooLargeError{
			Proteins:  len(proteins),
			Positions: len(columns),
			Limit:     opts.MaxCells,
		}
	}

	m := &Matrix{
		scheme:  opts.Scheme,
		rows:    make([]Row, len(proteins)),
		columns: columns,
		cells:   make([][]byte, len(proteins)),
		index:   make(map[string]int, len(columns)),
	}
	for _, s := range segments {
		m.segments = append(m.segments, s.ID)
		m.custom = m.custom || s.Custom()
	}
	for c, col := range columns {
		m.index[col.Label] = c
	}

	for r, p := range proteins {
		m.rows[r] = Row{ID: p.ID, Family: p.Family}

		for _, res := range p.Residues {
			if !res.Valid() {
				return nil, fmt.Errorf("protein %s has an invalid residue %q at %d", p.ID, res.AminoAcid, res.Position)
			}
		}

		labels := p.Labels(opts.Scheme)
		row := make([]byte, len(columns))
		for c, col := range columns {
			if aa, ok := labels[col.Label]; ok {
				row[c] = aa
			} else {
				row[c] = protein.Gap
			}
		}
		m.cells[r] = row
	}

	return m, nil
}

// resolve returns the columns of the alignment in segment order then rank order
func resolve(proteins []protein.Protein, segments []protein.Segment, scheme string) ([]Column, error) {
	// gather every generic number in the scheme, first seen wins
	observed := make(map[string]protein.GenericPosition)
	bySegment := make(map[string][]protein.GenericPosition)
	for _, p := range proteins {
		for _, r := range p.Residues {
			gp, ok := r.Number(scheme)
			if !ok {
				continue
			}
			if _, seen := observed[gp.Label]; seen {
				continue
			}
			observed[gp.Label] = gp
			bySegment[gp.Segment] = append(bySegment[gp.Segment], gp)
		}
	}

	columns := []Column{}
	seenSegments := make(map[string]bool)
	seenLabels := make(map[string]string)
	for i, s := range segments {
		if seenSegments[s.ID] {
			return nil, fmt.Errorf("segment %s listed twice", s.ID)
		}
		seenSegments[s.ID] = true

		var positions []protein.GenericPosition
		if s.Custom() {
			for rank, label := range s.Positions {
				positions = append(positions, protein.GenericPosition{
					Segment: s.ID,
					Label:   label,
					Rank:    rank,
				})
			}
		} else {
			positions = append(positions, bySegment[s.ID]...)
			sort.SliceStable(positions, func(a, b int) bool {
				if positions[a].Rank != positions[b].Rank {
					return positions[a].Rank < positions[b].Rank
				}
				return positions[a].Label < positions[b].Label
			})
		}

		if s.Presence != nil {
			var err error
			if positions, err = present(s, positions, observed); err != nil {
				return nil, err
			}
		}

		if len(positions) == 0 {
			return nil, &UnresolvableSegmentError{Segment: s.ID, Scheme: scheme}
		}

		for _, gp := range positions {
			if other, dup := seenLabels[gp.Label]; dup {
				return nil, fmt.Errorf("position %s is in both segment %s and %s", gp.Label, other, s.ID)
			}
			seenLabels[gp.Label] = s.ID
			columns = append(columns, Column{GenericPosition: gp, SegmentIndex: i})
		}
	}

	return columns, nil
}

// present keeps the positions whose rank is within the segment's presence range
func present(s protein.Segment, positions []protein.GenericPosition, observed map[string]protein.GenericPosition) ([]protein.GenericPosition, error) {
	if s.Custom() {
		return nil, fmt.Errorf("segment %s has both custom positions and a presence range", s.ID)
	}

	from, to := math.MinInt, math.MaxInt
	for _, bound := range []struct {
		label string
		rank  *int
	}{{s.Presence.From, &from}, {s.Presence.To, &to}} {
		if bound.label == "" {
			continue
		}
		gp, ok := observed[bound.label]
		if !ok || gp.Segment != s.ID {
			return nil, fmt.Errorf("presence bound %s isn't a numbered position of segment %s", bound.label, s.ID)
		}
		*bound.rank = gp.Rank
	}
	if from > to {
		return nil, fmt.Errorf("presence range of segment %s starts after it ends: %s-%s", s.ID, s.Presence.From, s.Presence.To)
	}

	kept := []protein.GenericPosition{}
	for _, gp := range positions {
		if gp.Rank >= from && gp.Rank <= to {
			kept = append(kept, gp)
		}
	}
	return kept, nil
}

// Scheme is the numbering scheme the matrix was built with
func (m *Matrix) Scheme() string {
	return m.scheme
}

// Canonical is false if any of the segments was a custom position list.
// Results built from custom positions shouldn't be cached
func (m *Matrix) Canonical() bool {
	return !m.custom
}

// Rows returns the proteins of the matrix in input order
func (m *Matrix) Rows() []Row {
	rows := make([]Row, len(m.rows))
	copy(rows, m.rows)
	return rows
}

// Columns returns the positions of the matrix in column order
func (m *Matrix) Columns() []Column {
	columns := make([]Column, len(m.columns))
	copy(columns, m.columns)
	return columns
}

// Segments returns the IDs of the segments the matrix was built from
func (m *Matrix) Segments() []string {
	segments := make([]string, len(m.segments))
	copy(segments, m.segments)
	return segments
}

// Len returns the number of rows
func (m *Matrix) Len() int {
	return len(m.rows)
}

// Width returns the number of columns
func (m *Matrix) Width() int {
	return len(m.columns)
}

// At returns the residue at a row and column
func (m *Matrix) At(row, col int) byte {
	return m.cells[row][col]
}

// Column returns the index of the column with a generic number label
func (m *Matrix) Column(label string) (int, bool) {
	c, ok := m.index[label]
	return c, ok
}

// Sequence returns a row as an aligned sequence string
func (m *Matrix) Sequence(row int) string {
	return string(m.cells[row])
}
