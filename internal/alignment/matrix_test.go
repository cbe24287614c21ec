package alignment

import (
	"errors"
	"reflect"
	"testing"

	"github.com/jjtimmons/seqsign/internal/protein"
)

func TestBuild(t *testing.T) {
	proteins := []protein.Protein{
		numbered("p1", "001", "ACD", "EF"),
		numbered("p2", "001", "A.D", "E."),
		numbered("p3", "002", "..D", "..G"),
	}

	m, err := Build(proteins, tms(2), Options{Scheme: "gpcrdb"})
	if err != nil {
		t.Fatal(err)
	}

	labels := []string{}
	for _, c := range m.Columns() {
		labels = append(labels, c.Label)
	}
	if want := []string{"1x1", "1x2", "1x3", "2x1", "2x2", "2x3"}; !reflect.DeepEqual(labels, want) {
		t.Errorf("Build() columns = %v, want %v", labels, want)
	}

	rows := []string{m.Sequence(0), m.Sequence(1), m.Sequence(2)}
	if want := []string{"ACDEF-", "A-DE--", "--D--G"}; !reflect.DeepEqual(rows, want) {
		t.Errorf("Build() rows = %v, want %v", rows, want)
	}

	if !m.Canonical() {
		t.Error("matrix without custom positions should be canonical")
	}
	if c, ok := m.Column("2x3"); !ok || c != 5 {
		t.Errorf("Matrix.Column(2x3) = %d, %v", c, ok)
	}
}

// building twice, and with the residues of a protein shuffled, gives the same matrix
func TestBuild_deterministic(t *testing.T) {
	proteins := []protein.Protein{
		numbered("p1", "001", "MLKV", "WY"),
		numbered("p2", "001", "M.KV", ".Y"),
	}
	shuffled := proteins[0]
	shuffled.Residues = append([]protein.Residue{}, proteins[0].Residues...)
	for i, j := 0, len(shuffled.Residues)-1; i < j; i, j = i+1, j-1 {
		shuffled.Residues[i], shuffled.Residues[j] = shuffled.Residues[j], shuffled.Residues[i]
	}

	first, err := Build(proteins, tms(2), Options{Scheme: "gpcrdb"})
	if err != nil {
		t.Fatal(err)
	}
	second, err := Build([]protein.Protein{shuffled, proteins[1]}, tms(2), Options{Scheme: "gpcrdb"})
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(first.Columns(), second.Columns()) {
		t.Errorf("column order changed between builds: %v vs %v", first.Columns(), second.Columns())
	}
	for r := 0; r < first.Len(); r++ {
		if first.Sequence(r) != second.Sequence(r) {
			t.Errorf("row %d changed between builds: %s vs %s", r, first.Sequence(r), second.Sequence(r))
		}
	}
}

func TestBuild_custom(t *testing.T) {
	proteins := []protein.Protein{
		numbered("p1", "001", "ACD", "EF"),
	}
	segments := []protein.Segment{
		{ID: "Custom", Positions: []string{"2x2", "1x1", "9x9"}},
	}

	m, err := Build(proteins, segments, Options{Scheme: "gpcrdb"})
	if err != nil {
		t.Fatal(err)
	}

	if m.Canonical() {
		t.Error("matrix with custom positions can't be canonical")
	}
	if got := m.Sequence(0); got != "FA-" {
		t.Errorf("custom positions should keep their order, got %s", got)
	}
}

func TestBuild_presence(t *testing.T) {
	proteins := []protein.Protein{
		numbered("p1", "001", "ACDEF", "GH"),
		numbered("p2", "001", "L.DEF", "GH"),
	}

	tests := []struct {
		name     string
		presence *protein.Presence
		want     []string
	}{
		{"bounded", &protein.Presence{From: "1x2", To: "1x4"}, []string{"1x2", "1x3", "1x4"}},
		{"open start", &protein.Presence{To: "1x2"}, []string{"1x1", "1x2"}},
		{"open end", &protein.Presence{From: "1x5"}, []string{"1x5"}},
		{"unbounded", &protein.Presence{}, []string{"1x1", "1x2", "1x3", "1x4", "1x5"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segments := tms(2)
			segments[0].Presence = tt.presence

			m, err := Build(proteins, segments, Options{Scheme: "gpcrdb"})
			if err != nil {
				t.Fatal(err)
			}

			labels := []string{}
			for _, c := range m.Columns() {
				if c.Segment == "TM1" {
					labels = append(labels, c.Label)
				}
			}
			if !reflect.DeepEqual(labels, tt.want) {
				t.Errorf("Build() TM1 columns = %v, want %v", labels, tt.want)
			}
			if len(m.Columns()) != len(tt.want)+2 {
				t.Errorf("presence of TM1 changed TM2: %v", m.Columns())
			}
		})
	}

	for name, presence := range map[string]*protein.Presence{
		"reversed":      {From: "1x4", To: "1x2"},
		"other segment": {From: "2x1"},
		"not numbered":  {To: "1x9"},
	} {
		t.Run(name, func(t *testing.T) {
			segments := tms(2)
			segments[0].Presence = presence
			if _, err := Build(proteins, segments, Options{Scheme: "gpcrdb"}); err == nil {
				t.Errorf("expected an error for presence %+v", *presence)
			}
		})
	}

	t.Run("custom", func(t *testing.T) {
		segments := []protein.Segment{{ID: "Custom", Positions: []string{"1x1"}, Presence: &protein.Presence{From: "1x1"}}}
		if _, err := Build(proteins, segments, Options{Scheme: "gpcrdb"}); err == nil {
			t.Error("expected an error for custom positions with a presence range")
		}
	})
}

func TestBuild_errors(t *testing.T) {
	proteins := []protein.Protein{
		numbered("p1", "001", "ACD"),
		numbered("p2", "001", "ACD"),
	}

	t.Run("no proteins", func(t *testing.T) {
		_, err := Build(nil, tms(1), Options{Scheme: "gpcrdb"})
		var empty *EmptyInputError
		if !errors.As(err, &empty) || empty.Segments != 1 {
			t.Errorf("expected EmptyInputError, got %v", err)
		}
	})

	t.Run("no segments", func(t *testing.T) {
		_, err := Build(proteins, nil, Options{Scheme: "gpcrdb"})
		var empty *EmptyInputError
		if !errors.As(err, &empty) || empty.Proteins != 2 {
			t.Errorf("expected EmptyInputError, got %v", err)
		}
	})

	t.Run("segment without positions", func(t *testing.T) {
		_, err := Build(proteins, tms(2), Options{Scheme: "gpcrdb"})
		var unresolvable *UnresolvableSegmentError
		if !errors.As(err, &unresolvable) || unresolvable.Segment != "TM2" {
			t.Errorf("expected UnresolvableSegmentError for TM2, got %v", err)
		}
	})

	t.Run("wrong scheme", func(t *testing.T) {
		_, err := Build(proteins, tms(1), Options{Scheme: "cgn"})
		var unresolvable *UnresolvableSegmentError
		if !errors.As(err, &unresolvable) || unresolvable.Scheme != "cgn" {
			t.Errorf("expected UnresolvableSegmentError for cgn, got %v", err)
		}
	})

	t.Run("duplicate segment", func(t *testing.T) {
		if _, err := Build(proteins, append(tms(1), tms(1)...), Options{Scheme: "gpcrdb"}); err == nil {
			t.Error("expected an error for a duplicate segment")
		}
	})

	t.Run("invalid residue", func(t *testing.T) {
		bad := numbered("bad", "001", "AXD")
		if _, err := Build([]protein.Protein{bad}, tms(1), Options{Scheme: "gpcrdb"}); err == nil {
			t.Error("expected an error for residue X")
		}
	})

	for _, aa := range []string{"TRP", "Gly", "L "} {
		t.Run("multi letter residue "+aa, func(t *testing.T) {
			bad := numbered("bad", "001", "A")
			bad.Residues[0].AminoAcid = aa
			m, err := Build([]protein.Protein{bad}, tms(1), Options{Scheme: "gpcrdb"})
			if aa == "L " {
				// surrounding space is trimmed
				if err != nil || m.Sequence(0) != "L" {
					t.Errorf("Build() = %v, %v, want sequence L", m, err)
				}
				return
			}
			if err == nil {
				t.Errorf("expected an error for residue %q, got sequence %s", aa, m.Sequence(0))
			}
		})
	}
}

func TestBuild_tooLarge(t *testing.T) {
	proteins := []protein.Protein{
		numbered("p1", "001", "ACDE", "FG"),
		numbered("p2", "001", "ACDE", "FG"),
		numbered("p3", "001", "ACDE", "FG"),
	}

	_, err := Build(proteins, tms(2), Options{Scheme: "gpcrdb", MaxCells: 17})
	var tooLarge *TooLargeError
	if !errors.As(err, &tooLarge) {
		t.Fatalf("expected TooLargeError, got %v", err)
	}
	if want := (TooLargeError{Proteins: 3, Positions: 6, Limit: 17}); *tooLarge != want {
		t.Errorf("TooLargeError = %+v, want %+v", *tooLarge, want)
	}

	// at the limit is fine
	if _, err := Build(proteins, tms(2), Options{Scheme: "gpcrdb", MaxCells: 18}); err != nil {
		t.Errorf("unexpected error at the limit: %v", err)
	}
}
