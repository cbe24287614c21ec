// Package feature classifies amino acids into physicochemical feature groups
package feature

import (
	"fmt"
	"strings"

	"github.com/jjtimmons/seqsign/internal/protein"
)

// Kind separates real feature groups from the sentinel groups
type Kind int

const (
	// Scored groups take part in consensus, signatures and matching
	Scored Kind = iota

	// GapSentinel reports the gap frequency of a column
	GapSentinel

	// AnySentinel matches every standard amino acid
	AnySentinel
)

// Group is a single feature group
type Group struct {
	// Code is the short name of the group, ex: "HY"
	Code string `json:"code"`

	// Name is the long name, ex: "hydrophobic"
	Name string `json:"name"`

	// Members are the one letter codes of the amino acids in the group
	Members string `json:"members"`

	// Kind of group
	Kind Kind `json:"kind"`
}

// Table is an ordered list of feature groups. Order is priority: ties
// between groups go to the one listed first
type Table struct {
	version string
	groups  []Group

	// member[g][aa index] is whether amino acid is in group g
	member [][len(protein.AminoAcids)]bool

	byCode map[string]int
}

// DefaultVersion is the version of the Default table
const DefaultVersion = "2019.1"

// Default returns the feature table used unless another one is given
func Default() *Table {
	t, err := New(DefaultVersion, []Group{
		{Code: "HY", Name: "hydrophobic", Members: "ACFILMVWY"},
		{Code: "HA", Name: "aliphatic", Members: "AILV"},
		{Code: "AR", Name: "aromatic", Members: "FHWY"},
		{Code: "PS", Name: "polar short", Members: "ST"},
		{Code: "PL", Name: "polar long", Members: "NQ"},
		{Code: "NE", Name: "negative", Members: "DE"},
		{Code: "PO", Name: "positive", Members: "HKR"},
		{Code: "SM", Name: "small", Members: "AGS"},
		{Code: "PR", Name: "proline", Members: "P"},
		{Code: "GL", Name: "glycine", Members: "G"},
		{Code: "CY", Name: "cysteine", Members: "C"},
		{Code: "GAP", Name: "gap", Members: string(protein.Gap), Kind: GapSentinel},
		{Code: "ANY", Name: "any", Members: protein.AminoAcids, Kind: AnySentinel},
	})
	if err != nil {
		panic(err) // static data
	}
	return t
}

// New creates a feature table from its groups
func New(version string, groups []Group) (*Table, error) {
	t := &Table{
		version: version,
		groups:  make([]Group, len(groups)),
		member:  make([][len(protein.AminoAcids)]bool, len(groups)),
		byCode:  make(map[string]int, len(groups)),
	}
	copy(t.groups, groups)

	for i, g := range groups {
		if g.Code == "" {
			return nil, fmt.Errorf("feature group %d has no code", i)
		}
		if _, dup := t.byCode[g.Code]; dup {
			return nil, fmt.Errorf("feature group %s listed twice", g.Code)
		}
		t.byCode[g.Code] = i

		if g.Kind == GapSentinel {
			continue
		}
		for _, aa := range strings.ToUpper(g.Members) {
			index := protein.AminoAcidIndex(byte(aa))
			if index < 0 {
				return nil, fmt.Errorf("feature group %s has unknown amino acid %c", g.Code, aa)
			}
			t.member[i][index] = true
		}
	}

	return t, nil
}

// Version of the table. Signatures record it so they can be replayed
func (t *Table) Version() string {
	return t.version
}

// Len returns the number of groups, sentinels included
func (t *Table) Len() int {
	return len(t.groups)
}

// Group returns the group at index i
func (t *Table) Group(i int) Group {
	return t.groups[i]
}

// Groups returns a copy of all groups in priority order
func (t *Table) Groups() []Group {
	groups := make([]Group, len(t.groups))
	copy(groups, t.groups)
	return groups
}

// Index returns the index of the group with the code
func (t *Table) Index(code string) (int, bool) {
	i, ok := t.byCode[code]
	return i, ok
}

// Codes of the scored groups in priority order
func (t *Table) Codes() []string {
	codes := []string{}
	for _, g := range t.groups {
		if g.Kind == Scored {
			codes = append(codes, g.Code)
		}
	}
	return codes
}

// Contains returns whether the amino acid is in the group at index i.
// Gaps belong only to the gap sentinel
func (t *Table) Contains(i int, aa byte) bool {
	if aa == protein.Gap {
		return t.groups[i].Kind == GapSentinel
	}
	index := protein.AminoAcidIndex(aa)
	if index < 0 {
		return false
	}
	return t.member[i][index]
}

// ContainsCode is Contains by group code
func (t *Table) ContainsCode(code string, aa byte) bool {
	i, ok := t.byCode[code]
	return ok && t.Contains(i, aa)
}
