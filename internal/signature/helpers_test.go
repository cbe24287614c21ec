package signature

import (
	"fmt"
	"testing"

	"github.com/jjtimmons/seqsign/internal/alignment"
	"github.com/jjtimmons/seqsign/internal/feature"
	"github.com/jjtimmons/seqsign/internal/protein"
)

// numbered makes a protein with one residue per character of seq, numbered
// 3x1, 3x2, ... on TM3 in gpcrdb. '.' means the protein has no residue there
func numbered(id, family, seq string) protein.Protein {
	p := protein.Protein{ID: id, Family: family}
	for i, aa := range seq {
		if aa == '.' {
			continue
		}
		p.Residues = append(p.Residues, protein.Residue{
			AminoAcid: string(aa),
			Position:  100 + i,
			Numbers: map[string]protein.GenericPosition{
				"gpcrdb": {Segment: "TM3", Label: fmt.Sprintf("3x%d", i+1), Rank: i + 1},
			},
		})
	}
	return p
}

// group makes n proteins with the same sequence
func group(prefix, family, seq string, n int) []protein.Protein {
	proteins := []protein.Protein{}
	for i := 0; i < n; i++ {
		proteins = append(proteins, numbered(fmt.Sprintf("%s%d", prefix, i), family, seq))
	}
	return proteins
}

var tm3 = []protein.Segment{{ID: "TM3", Order: 3, Category: "helix"}}

func calculate(t *testing.T, positive, negative []protein.Protein) *Signature {
	t.Helper()
	aligner, err := alignment.NewAligner("gpcr", "", 0, false)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Setup(aligner, feature.Default(), positive, negative, tm3)
	if err != nil {
		t.Fatal(err)
	}
	return b.Calculate()
}

func column(t *testing.T, sig *Signature, label string) Column {
	t.Helper()
	for _, c := range sig.Columns {
		if c.Position.Label == label {
			return c
		}
	}
	t.Fatalf("signature has no column %s", label)
	return Column{}
}
