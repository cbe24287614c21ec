package signature

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/jjtimmons/seqsign/internal/feature"
	"github.com/jjtimmons/seqsign/internal/protein"
)

// SchemaMismatchError is returned when a candidate protein isn't numbered
// in the signature's numbering scheme
type SchemaMismatchError struct {
	Protein string
	Scheme  string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("protein %s has no residues numbered in the signature's scheme %s", e.Protein, e.Scheme)
}

// Aggregates are the supported family aggregate statistics
var Aggregates = []string{"mean", "max"}

// MatchOptions are settings for scoring candidates against a signature
type MatchOptions struct {
	// Cutoff is the smallest |delta| of a column that's scored. 0 scores every column
	Cutoff float64

	// SegmentWeights multiply the contributions of each segment's
	// columns. Segments that aren't listed have a weight of 1
	SegmentWeights map[string]float64

	// FamilyAggregate is the statistic for a family's score, "mean" if empty
	FamilyAggregate string
}

// ProteinScore is a candidate's match to a signature
type ProteinScore struct {
	ID     string `json:"id"`
	Family string `json:"family"`

	// Score is the sum of the per-position contributions
	Score float64 `json:"score"`

	// MaxScore is the score of a protein that matches every position
	MaxScore float64 `json:"max_score"`

	// Percent is Score as a percentage of MaxScore
	Percent float64 `json:"percent"`

	// PerPosition is each scored position's contribution, by generic number
	PerPosition map[string]float64 `json:"per_position"`

	// Residues is the protein's residue at each scored position
	Residues map[string]string `json:"residues"`
}

// Result is the match of a set of candidates to a signature
type Result struct {
	PerProtein map[string]ProteinScore `json:"per_protein"`

	// PerFamily is the aggregate score of each family's proteins
	PerFamily map[string]float64 `json:"per_family"`

	// Majority is the majority family of the candidates
	Majority string `json:"majority,omitempty"`

	// Ranking is the protein IDs by decreasing score, then by ID
	Ranking []string `json:"ranking"`

	// Columns are the generic numbers that were scored
	Columns []string `json:"columns"`

	Cutoff float64 `json:"cutoff"`
}

// Score matches every candidate against the signature. At each column a
// candidate earns the column's |delta| if its residue has the feature the
// positive group is enriched in, and loses |delta| if its residue has the
// feature the negative group is enriched in. The dominant feature decides
// first; a residue outside it is checked against the features whose delta
// has the other sign and passes the cutoff. Gaps and residues in neither
// score zero.
//
// majority is the family to report as the majority family. If it's empty,
// it's the most common family of the candidates
func Score(sig *Signature, candidates []protein.Protein, majority string, table *feature.Table, opts MatchOptions) (*Result, error) {
	if opts.Cutoff < 0 || math.IsNaN(opts.Cutoff) {
		return nil, fmt.Errorf("cutoff must be a non-negative number, got %f", opts.Cutoff)
	}
	aggregate, err := aggregator(opts.FamilyAggregate)
	if err != nil {
		return nil, err
	}
	if table.Version() != sig.FeatureTable {
		return nil, fmt.Errorf("signature was made with feature table %s, not %s", sig.FeatureTable, table.Version())
	}

	// columns that pass the cutoff, in order
	type scoredColumn struct {
		Column
		group  int
		weight float64

		// opposing are the groups enriched on the other side from the dominant feature
		opposing []int
	}
	columns := []scoredColumn{}
	result := &Result{
		PerProtein: make(map[string]ProteinScore, len(candidates)),
		PerFamily:  make(map[string]float64),
		Ranking:    []string{},
		Columns:    []string{},
		Cutoff:     opts.Cutoff,
	}
	for _, c := range sig.Scored() {
		if math.Abs(c.Delta) < opts.Cutoff {
			continue
		}
		g, ok := table.Index(c.Feature)
		if !ok {
			return nil, fmt.Errorf("signature position %s has unknown feature %s", c.Position.Label, c.Feature)
		}
		weight := 1.0
		if w, ok := opts.SegmentWeights[c.Position.Segment]; ok {
			weight = w
		}
		columns = append(columns, scoredColumn{
			Column:   c,
			group:    g,
			weight:   weight,
			opposing: opposingGroups(c, sig.Features, table, opts.Cutoff),
		})
		result.Columns = append(result.Columns, c.Position.Label)
	}

	if len(candidates) == 0 {
		return result, nil
	}

	maxScore := 0.0
	for _, c := range columns {
		maxScore += c.weight * math.Abs(c.Delta)
	}

	for _, p := range candidates {
		if len(p.Residues) > 0 && !p.Numbered(sig.Scheme) {
			return nil, &SchemaMismatchError{Protein: p.ID, Scheme: sig.Scheme}
		}
		if _, dup := result.PerProtein[p.ID]; dup {
			return nil, fmt.Errorf("candidate %s listed twice", p.ID)
		}

		for _, r := range p.Residues {
			if _, ok := r.Number(sig.Scheme); ok && !r.Valid() {
				return nil, fmt.Errorf("candidate %s has an invalid residue %q at %d", p.ID, r.AminoAcid, r.Position)
			}
		}

		labels := p.Labels(sig.Scheme)
		ps := ProteinScore{
			ID:          p.ID,
			Family:      p.Family,
			MaxScore:    maxScore,
			PerPosition: make(map[string]float64, len(columns)),
			Residues:    make(map[string]string, len(columns)),
		}
		for _, c := range columns {
			aa, ok := labels[c.Position.Label]
			if !ok {
				aa = protein.Gap
			}

			contribution := c.weight * math.Abs(c.Delta) * float64(side(c.Delta, aa, c.group, c.opposing, table))

			ps.Score += contribution
			ps.PerPosition[c.Position.Label] = contribution
			ps.Residues[c.Position.Label] = string(aa)
		}
		if maxScore > 0 {
			ps.Percent = ps.Score / maxScore * 100
		}

		result.PerProtein[p.ID] = ps
		result.Ranking = append(result.Ranking, p.ID)
	}

	sort.SliceStable(result.Ranking, func(i, j int) bool {
		a, b := result.PerProtein[result.Ranking[i]], result.PerProtein[result.Ranking[j]]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		return a.ID < b.ID
	})

	for family, ids := range groupFamilies(candidates) {
		scores := make([]float64, len(ids))
		for i, id := range ids {
			scores[i] = result.PerProtein[id].Score
		}
		result.PerFamily[family] = aggregate(scores)
	}

	result.Majority = majority
	if result.Majority == "" {
		result.Majority = MajorityFamily(candidates)
	}

	return result, nil
}

// side returns 1 if the residue has the feature enriched in the positive
// group, -1 if it has the feature enriched in the negative group, and 0
// otherwise. delta is the dominant feature's delta
func side(delta float64, aa byte, dominant int, opposing []int, table *feature.Table) int {
	if aa == protein.Gap || delta == 0 {
		return 0
	}

	sign := 1
	if delta < 0 {
		sign = -1
	}

	if table.Contains(dominant, aa) {
		return sign
	}
	for _, g := range opposing {
		if table.Contains(g, aa) {
			return -sign
		}
	}
	return 0
}

// opposingGroups returns the scored groups of a column whose delta has the
// opposite sign from the dominant feature's and whose |delta| passes the cutoff
func opposingGroups(c Column, codes []string, table *feature.Table, cutoff float64) []int {
	opposing := []int{}
	for _, code := range codes {
		d := c.Features[code]
		if d == 0 || (d > 0) == (c.Delta > 0) || math.Abs(d) < cutoff {
			continue
		}
		if g, ok := table.Index(code); ok {
			opposing = append(opposing, g)
		}
	}
	return opposing
}

// groupFamilies returns the candidates' IDs by family, in input order
func groupFamilies(candidates []protein.Protein) map[string][]string {
	families := make(map[string][]string)
	for _, p := range candidates {
		families[p.Family] = append(families[p.Family], p.ID)
	}
	return families
}

// MajorityFamily returns the most common family of the proteins. Ties go
// to the family seen first
func MajorityFamily(proteins []protein.Protein) string {
	counts := make(map[string]int)
	for _, p := range proteins {
		counts[p.Family]++
	}

	majority, best := "", 0
	for _, p := range proteins {
		if counts[p.Family] > best {
			majority, best = p.Family, counts[p.Family]
		}
	}
	return majority
}

// aggregator returns the function that turns a family's scores into one
func aggregator(name string) (func([]float64) float64, error) {
	switch strings.ToLower(name) {
	case "", "mean":
		return func(scores []float64) float64 {
			sum := 0.0
			for _, s := range scores {
				sum += s
			}
			return sum / float64(len(scores))
		}, nil
	case "max":
		return func(scores []float64) float64 {
			best := math.Inf(-1)
			for _, s := range scores {
				best = math.Max(best, s)
			}
			return best
		}, nil
	default:
		return nil, fmt.Errorf("unknown family aggregate %q, expected one of: %s", name, strings.Join(Aggregates, ", "))
	}
}
