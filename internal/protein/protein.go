// Package protein holds the inputs to the alignment: proteins, their residues
// and the structural segments that define alignment columns.
package protein

import (
	"strings"
)

// Gap is the symbol for a position a protein has no residue at
const Gap = '-'

// AminoAcids are the 20 standard residues in their fixed priority order.
// Consensus ties resolve to the residue that comes first here
const AminoAcids = "ACDEFGHIKLMNPQRSTVWY"

// AminoAcidIndex returns the priority index of an amino acid, or -1
// if the symbol isn't one of the 20 standard residues
func AminoAcidIndex(aa byte) int {
	return strings.IndexByte(AminoAcids, aa)
}

// GenericPosition is a structure based residue label that's comparable
// across proteins of different lengths
type GenericPosition struct {
	// Segment is the ID of the segment the position is in, ex: "TM3"
	Segment string `json:"segment"`

	// Label is the generic number, ex: "3x50". Unique within a numbering scheme
	Label string `json:"label"`

	// Rank orders positions within a segment
	Rank int `json:"rank"`
}

// Residue is a single residue of a protein
type Residue struct {
	// AminoAcid is the one letter code of the residue or "-"
	AminoAcid string `json:"aa"`

	// Position is the protein local sequence number
	Position int `json:"position"`

	// Numbers maps from a numbering scheme's slug to the residue's
	// generic number in it. A residue may be unmapped in any scheme
	Numbers map[string]GenericPosition `json:"numbers,omitempty"`
}

// Invalid is the symbol of a residue that isn't a one letter code or a gap
const Invalid = '?'

// Symbol returns the upper case one letter code of the residue, with
// empty residues treated as gaps. Anything longer than one letter, like
// "TRP", is Invalid
func (r Residue) Symbol() byte {
	aa := strings.TrimSpace(r.AminoAcid)
	switch len(aa) {
	case 0:
		return Gap
	case 1:
		return strings.ToUpper(aa)[0]
	default:
		return Invalid
	}
}

// Valid returns whether the residue is a gap or one of the 20 standard amino acids
func (r Residue) Valid() bool {
	sym := r.Symbol()
	return sym == Gap || AminoAcidIndex(sym) >= 0
}

// Number returns the residue's generic number in a scheme
func (r Residue) Number(scheme string) (GenericPosition, bool) {
	gp, ok := r.Numbers[scheme]
	return gp, ok && gp.Label != ""
}

// Protein is a single protein sequence with its residues in sequence order
type Protein struct {
	// ID is a stable identifier, ex: "adrb2_human"
	ID string `json:"id"`

	// Family is the family or classification tag of the protein
	Family string `json:"family"`

	// Residues of the protein
	Residues []Residue `json:"residues"`
}

// Labels returns a map from generic number label to residue symbol
// for every residue numbered in the scheme. When two residues share
// a label the first one wins
func (p Protein) Labels(scheme string) map[string]byte {
	labels := make(map[string]byte, len(p.Residues))
	for _, r := range p.Residues {
		gp, ok := r.Number(scheme)
		if !ok {
			continue
		}
		if _, seen := labels[gp.Label]; !seen {
			labels[gp.Label] = r.Symbol()
		}
	}
	return labels
}

// Numbered returns whether any residue of the protein is numbered in the scheme
func (p Protein) Numbered(scheme string) bool {
	for _, r := range p.Residues {
		if _, ok := r.Number(scheme); ok {
			return true
		}
	}
	return false
}

// Segment is a named structural region, ex: "TM3" or "ICL2"
type Segment struct {
	// ID of the segment
	ID string `json:"id"`

	// Order is the segment's ordering key
	Order int `json:"order"`

	// Category is the kind of region, ex: "helix", "loop", "terminus"
	Category string `json:"category,omitempty"`

	// Partial is true for segments that only cover part of a region
	Partial bool `json:"partial,omitempty"`

	// Positions is a user specified list of generic numbers. When set,
	// the segment is custom and these are its columns in this order
	Positions []string `json:"positions,omitempty"`

	// Presence bounds the observed generic numbers of a segment
	Presence *Presence `json:"presence,omitempty"`
}

// Presence is an inclusive range of generic number labels. An empty
// bound leaves that end of the segment open
type Presence struct {
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}

// Custom returns whether the segment is an ad hoc list of positions
func (s Segment) Custom() bool {
	return len(s.Positions) > 0
}
