package alignment

import (
	"reflect"
	"strings"
	"testing"

	"github.com/jjtimmons/seqsign/internal/protein"
)

func TestNewAligner(t *testing.T) {
	tests := []struct {
		name       string
		site       string
		scheme     string
		wantScheme string
		wantErr    bool
	}{
		{"gpcr default", "gpcr", "", "gpcrdb", false},
		{"gprotein default", "gprotein", "", "cgn", false},
		{"arrestin default", " Arrestin ", "", "can", false},
		{"scheme override", "gpcr", "bw", "bw", false},
		{"unknown site", "kinase", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NewAligner(tt.site, tt.scheme, 0, false)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewAligner() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && a.Scheme() != tt.wantScheme {
				t.Errorf("Aligner.Scheme() = %s, want %s", a.Scheme(), tt.wantScheme)
			}
		})
	}
}

func Test_pruneSegments(t *testing.T) {
	segments := []protein.Segment{
		{ID: "N-term", Category: "terminus"},
		{ID: "TM1", Category: "helix"},
		{ID: "ICL1", Category: "loop"},
		{ID: "TM2", Category: "helix"},
		{ID: "C-term", Category: "terminus"},
	}
	ids := func(segments []protein.Segment) string {
		out := []string{}
		for _, s := range segments {
			out = append(out, s.ID)
		}
		return strings.Join(out, ",")
	}

	tests := []struct {
		name     string
		proteins int
		segments []protein.Segment
		want     string
	}{
		{"small alignment", 50, segments, "N-term,TM1,ICL1,TM2,C-term"},
		{"drop termini", 51, segments, "TM1,ICL1,TM2"},
		{"drop loops", 201, segments, "TM1,TM2"},
		{"custom positions are kept", 500, append(segments, protein.Segment{ID: "Custom", Positions: []string{"1x50"}}), "N-term,TM1,ICL1,TM2,C-term,Custom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ids(pruneSegments(tt.proteins, tt.segments)); got != tt.want {
				t.Errorf("pruneSegments() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestAligner_Build(t *testing.T) {
	proteins := []protein.Protein{}
	for i := 0; i < 60; i++ {
		proteins = append(proteins, numbered("p", "001", "AC", "DE"))
	}
	segments := []protein.Segment{
		{ID: "TM1", Category: "helix"},
		{ID: "C-term", Category: "terminus"},
	}

	pruning, _ := NewAligner("gpcr", "", 0, true)
	m, err := pruning.Build(proteins, segments)
	if err != nil {
		t.Fatalf("C-term should have been pruned before resolving: %v", err)
	}
	if !reflect.DeepEqual(m.Segments(), []string{"TM1"}) {
		t.Errorf("Matrix.Segments() = %v", m.Segments())
	}

	plain, _ := NewAligner("gprotein", "gpcrdb", 0, true)
	if _, err := plain.Build(proteins, segments); err == nil {
		t.Error("gprotein aligner doesn't prune, C-term should fail to resolve")
	}
}

func TestSortSegments(t *testing.T) {
	segments := []protein.Segment{{ID: "b", Order: 2}, {ID: "a", Order: 1}, {ID: "c", Order: 2}}
	got := SortSegments(segments)
	if got[0].ID != "a" || got[1].ID != "b" || got[2].ID != "c" {
		t.Errorf("SortSegments() = %v", got)
	}
	if segments[0].ID != "b" {
		t.Error("SortSegments() shouldn't modify its input")
	}
}
