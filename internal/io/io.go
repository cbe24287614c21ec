// Package io reads proteins, segments and signatures from the file system
// and writes the results of the commands back to it
package io

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jjtimmons/seqsign/internal/alignment"
	"github.com/jjtimmons/seqsign/internal/protein"
	"github.com/jjtimmons/seqsign/internal/signature"
)

// Input is the contents of an input file: proteins and the segments
// to align them on
type Input struct {
	Proteins []protein.Protein `json:"proteins"`
	Segments []protein.Segment `json:"segments"`
}

// ReadInput reads an input file. Segments are sorted by their order
func ReadInput(path string) (*Input, error) {
	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file %s: %v", path, err)
	}

	var in Input
	if err := json.Unmarshal(dat, &in); err != nil {
		return nil, fmt.Errorf("failed to parse input file %s: %v", path, err)
	}

	ids := make(map[string]bool, len(in.Proteins))
	for i, p := range in.Proteins {
		if p.ID == "" {
			return nil, fmt.Errorf("protein %d of %s has no id", i, path)
		}
		if ids[p.ID] {
			return nil, fmt.Errorf("protein %s is in %s twice", p.ID, path)
		}
		ids[p.ID] = true
	}

	in.Segments = alignment.SortSegments(in.Segments)
	return &in, nil
}

// ReadSignature reads a signature written by the signature command
func ReadSignature(path string) (*signature.Signature, error) {
	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read signature file %s: %v", path, err)
	}

	var sig signature.Signature
	if err := json.Unmarshal(dat, &sig); err != nil {
		return nil, fmt.Errorf("failed to parse signature file %s: %v", path, err)
	}
	if sig.Scheme == "" || sig.FeatureTable == "" {
		return nil, fmt.Errorf("signature file %s has no numbering scheme or feature table", path)
	}
	return &sig, nil
}
