package alignment

import (
	"fmt"

	"github.com/jjtimmons/seqsign/internal/protein"
)

// numbered makes a protein numbered in gpcrdb. Each character of each
// segment's sequence is a residue at generic number <segment>x<index+1>,
// with '.' meaning the protein has no residue there
func numbered(id, family string, segments ...string) protein.Protein {
	p := protein.Protein{ID: id, Family: family}
	pos := 1
	for s, seq := range segments {
		for i, aa := range seq {
			if aa == '.' {
				continue
			}
			p.Residues = append(p.Residues, protein.Residue{
				AminoAcid: string(aa),
				Position:  pos,
				Numbers: map[string]protein.GenericPosition{
					"gpcrdb": {
						Segment: fmt.Sprintf("TM%d", s+1),
						Label:   fmt.Sprintf("%dx%d", s+1, i+1),
						Rank:    i + 1,
					},
				},
			})
			pos++
		}
	}
	return p
}

func tms(n int) []protein.Segment {
	segments := []protein.Segment{}
	for i := 1; i <= n; i++ {
		segments = append(segments, protein.Segment{ID: fmt.Sprintf("TM%d", i), Order: i, Category: "helix"})
	}
	return segments
}
