// Package signature finds the feature differences between two groups of
// aligned proteins and scores other proteins against those differences
package signature

import (
	"fmt"
	"math"

	matrix "github.com/skelterjohn/go.matrix"

	"github.com/jjtimmons/seqsign/internal/alignment"
	"github.com/jjtimmons/seqsign/internal/feature"
	"github.com/jjtimmons/seqsign/internal/protein"
)

// Column is a single position of a signature
type Column struct {
	Position protein.GenericPosition `json:"position"`

	// Delta is the signed difference of the dominant feature's frequency
	Delta float64 `json:"delta"`

	// Feature is the code of the dominant feature group
	Feature string `json:"dominant_feature"`

	// Unscored is true when the position is missing, or has no data, in either group
	Unscored bool `json:"unscored"`

	// Features is the delta of every scored feature group
	Features map[string]float64 `json:"features,omitempty"`

	// AminoAcids is the delta of every amino acid
	AminoAcids map[string]float64 `json:"amino_acids,omitempty"`
}

// GroupSizes are the number of proteins in each group
type GroupSizes struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
}

// Signature is the per-position contrast between two groups of proteins.
// It has everything needed to score proteins without the groups
type Signature struct {
	// Scheme is the numbering scheme of the positions
	Scheme string `json:"numbering_scheme"`

	// Segments in alignment order
	Segments []string `json:"segments"`

	// FeatureTable is the version of the feature table used
	FeatureTable string `json:"feature_table"`

	// Features are the groups' codes in priority order
	Features []string `json:"features"`

	Columns []Column `json:"columns"`

	GroupSizes GroupSizes `json:"group_sizes"`

	// OneSided is true if there was no negative group and deltas are
	// the positive group's frequencies
	OneSided bool `json:"one_sided"`
}

// Scored returns the columns that aren't unscored, in order
func (s *Signature) Scored() []Column {
	scored := []Column{}
	for _, c := range s.Columns {
		if !c.Unscored {
			scored = append(scored, c)
		}
	}
	return scored
}

// Builder holds the alignments of the two groups of a signature
type Builder struct {
	table *feature.Table

	positive, negative           *alignment.Matrix
	positiveStats, negativeStats *alignment.Statistics
}

// built is the result of building one group's alignment
type built struct {
	positive bool
	m        *alignment.Matrix
	err      error
}

// Setup aligns the positive and negative groups over the same segments.
// negative may be empty, in which case the signature is one-sided
func Setup(
	aligner alignment.Aligner,
	table *feature.Table,
	positive, negative []protein.Protein,
	segments []protein.Segment,
) (*Builder, error) {
	if len(positive) == 0 {
		return nil, &alignment.EmptyInputError{Proteins: 0, Segments: len(segments)}
	}

	groups := 1
	if len(negative) > 0 {
		groups = 2
	}

	// the groups share nothing, build them at the same time
	builds := make(chan built, groups)
	go func() {
		m, err := aligner.Build(positive, segments)
		builds <- built{positive: true, m: m, err: err}
	}()
	if len(negative) > 0 {
		go func() {
			m, err := aligner.Build(negative, segments)
			builds <- built{positive: false, m: m, err: err}
		}()
	}

	b := &Builder{table: table}
	var posErr, negErr error
	for i := 0; i < groups; i++ {
		res := <-builds
		if res.positive {
			b.positive, posErr = res.m, res.err
		} else {
			b.negative, negErr = res.m, res.err
		}
	}
	if posErr != nil {
		return nil, fmt.Errorf("failed to align the positive group: %w", posErr)
	}
	if negErr != nil {
		return nil, fmt.Errorf("failed to align the negative group: %w", negErr)
	}

	b.positiveStats = alignment.Compute(b.positive, table)
	if b.negative != nil {
		b.negativeStats = alignment.Compute(b.negative, table)
	}

	return b, nil
}

// Positive returns the positive group's alignment and statistics
func (b *Builder) Positive() (*alignment.Matrix, *alignment.Statistics) {
	return b.positive, b.positiveStats
}

// Negative returns the negative group's alignment and statistics. Both
// are nil for a one-sided signature
func (b *Builder) Negative() (*alignment.Matrix, *alignment.Statistics) {
	return b.negative, b.negativeStats
}

// Calculate computes the signature
func (b *Builder) Calculate() *Signature {
	sig := &Signature{
		Scheme:       b.positive.Scheme(),
		Segments:     b.positive.Segments(),
		FeatureTable: b.table.Version(),
		Features:     b.table.Codes(),
		GroupSizes:   GroupSizes{Positive: b.positive.Len()},
		OneSided:     b.negative == nil,
	}
	if b.negative != nil {
		sig.GroupSizes.Negative = b.negative.Len()
	}

	pairs := b.pair()

	// scored groups x paired columns, for each group
	scored := scoredGroups(b.table)
	pos := matrix.Zeros(len(scored), len(pairs))
	neg := matrix.Zeros(len(scored), len(pairs))
	for p, pr := range pairs {
		if !pr.scored {
			continue
		}
		for s, g := range scored {
			freq, _ := b.positiveStats.FeatureFrequency(g, pr.pos)
			pos.Set(s, p, freq)
			if b.negative != nil {
				freq, _ = b.negativeStats.FeatureFrequency(g, pr.neg)
				neg.Set(s, p, freq)
			}
		}
	}

	delta, err := pos.MinusDense(neg)
	if err != nil {
		panic(err) // same dimensions by construction
	}

	for p, pr := range pairs {
		col := Column{Position: pr.column.GenericPosition, Unscored: !pr.scored}
		if pr.scored {
			col.Features = make(map[string]float64, len(scored))
			best := -1
			for s, g := range scored {
				d := delta.Get(s, p)
				col.Features[b.table.Group(g).Code] = d
				if best < 0 || math.Abs(d) > math.Abs(delta.Get(best, p)) {
					best = s
				}
			}
			if best >= 0 {
				col.Feature = b.table.Group(scored[best]).Code
				col.Delta = delta.Get(best, p)
			}
			col.AminoAcids = b.aminoAcidDeltas(pr)
		}
		sig.Columns = append(sig.Columns, col)
	}

	return sig
}

// aminoAcidDeltas returns the difference in frequency of each amino acid
func (b *Builder) aminoAcidDeltas(pr pair) map[string]float64 {
	deltas := make(map[string]float64, len(protein.AminoAcids))
	for _, aa := range []byte(protein.AminoAcids) {
		d, _ := b.positiveStats.AminoAcidFrequency(aa, pr.pos)
		if b.negative != nil {
			negFreq, _ := b.negativeStats.AminoAcidFrequency(aa, pr.neg)
			d -= negFreq
		}
		deltas[string(aa)] = d
	}
	return deltas
}

// pair is a signature column with the column index in each group's
// alignment, -1 if the group doesn't have it
type pair struct {
	column   alignment.Column
	pos, neg int
	scored   bool
}

// pair merges the columns of the two alignments in column order. Both
// alignments were built on the same segments so their orders agree
func (b *Builder) pair() []pair {
	posCols := b.positive.Columns()
	pairs := []pair{}

	if b.negative == nil {
		for i, c := range posCols {
			pairs = append(pairs, pair{
				column: c,
				pos:    i,
				neg:    -1,
				scored: !b.positiveStats.Column(i).NoData,
			})
		}
		return pairs
	}

	negCols := b.negative.Columns()
	i, j := 0, 0
	for i < len(posCols) || j < len(negCols) {
		switch {
		case j >= len(negCols) || (i < len(posCols) && posCols[i].Less(negCols[j]) && posCols[i].Label != negCols[j].Label):
			pairs = append(pairs, pair{column: posCols[i], pos: i, neg: -1})
			i++
		case i >= len(posCols) || (negCols[j].Less(posCols[i]) && posCols[i].Label != negCols[j].Label):
			pairs = append(pairs, pair{column: negCols[j], pos: -1, neg: j})
			j++
		default:
			pairs = append(pairs, pair{
				column: posCols[i],
				pos:    i,
				neg:    j,
				scored: !b.positiveStats.Column(i).NoData && !b.negativeStats.Column(j).NoData,
			})
			i++
			j++
		}
	}
	return pairs
}

// scoredGroups returns the indexes of the table's scored groups
func scoredGroups(table *feature.Table) []int {
	scored := []int{}
	for g := 0; g < table.Len(); g++ {
		if table.Group(g).Kind == feature.Scored {
			scored = append(scored, g)
		}
	}
	return scored
}
