package alignment

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jjtimmons/seqsign/internal/protein"
)

// Aligner builds matrices for one kind of protein family. Which one is used
// is decided by the site setting when the aligner is created
type Aligner interface {
	// Scheme is the numbering scheme the aligner builds with
	Scheme() string

	// Build creates an alignment matrix of the proteins over the segments
	Build(proteins []protein.Protein, segments []protein.Segment) (*Matrix, error)
}

// Sites lists the supported site settings
var Sites = []string{"gpcr", "gprotein", "arrestin"}

// defaultSchemes maps a site to its default numbering scheme
var defaultSchemes = map[string]string{
	"gpcr":     "gpcrdb",
	"gprotein": "cgn",
	"arrestin": "can",
}

// NewAligner returns the aligner for a site. scheme overrides the site's
// default numbering scheme if set. prune enables the large family segment
// pruning of the gpcr aligner
func NewAligner(site, scheme string, maxCells int, prune bool) (Aligner, error) {
	site = strings.ToLower(strings.TrimSpace(site))
	def, ok := defaultSchemes[site]
	if !ok {
		return nil, fmt.Errorf("unknown site %q, expected one of: %s", site, strings.Join(Sites, ", "))
	}
	if scheme == "" {
		scheme = def
	}

	base := schemeAligner{opts: Options{Scheme: scheme, MaxCells: maxCells}}
	if site == "gpcr" {
		return &gpcrAligner{schemeAligner: base, prune: prune}, nil
	}
	return &base, nil
}

// schemeAligner builds the segments it's given, as they are
type schemeAligner struct {
	opts Options
}

func (a *schemeAligner) Scheme() string {
	return a.opts.Scheme
}

func (a *schemeAligner) Build(proteins []protein.Protein, segments []protein.Segment) (*Matrix, error) {
	return Build(proteins, segments, a.opts)
}

// gpcrAligner drops the termini, and then the loops, from large alignments
type gpcrAligner struct {
	schemeAligner
	prune bool
}

const (
	// pruneTermini is the protein count above which N-term and C-term are dropped
	pruneTermini = 50

	// pruneLoops is the protein count above which all loops are dropped
	pruneLoops = 200
)

func (a *gpcrAligner) Build(proteins []protein.Protein, segments []protein.Segment) (*Matrix, error) {
	if a.prune {
		segments = pruneSegments(len(proteins), segments)
	}
	return Build(proteins, segments, a.opts)
}

// pruneSegments removes the termini and loops from the segments of large,
// canonical alignments. Custom position lists are never pruned
func pruneSegments(proteinCount int, segments []protein.Segment) []protein.Segment {
	if proteinCount <= pruneTermini {
		return segments
	}
	for _, s := range segments {
		if s.Custom() {
			return segments
		}
	}

	kept := []protein.Segment{}
	for _, s := range segments {
		if s.ID == "N-term" || s.ID == "C-term" {
			continue
		}
		if proteinCount > pruneLoops && s.Category == "loop" {
			continue
		}
		kept = append(kept, s)
	}
	return kept
}

// SortSegments stably sorts segments by their ordering key
func SortSegments(segments []protein.Segment) []protein.Segment {
	sorted := make([]protein.Segment, len(segments))
	copy(sorted, segments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order < sorted[j].Order
	})
	return sorted
}
