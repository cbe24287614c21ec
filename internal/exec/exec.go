// Package exec runs the align, signature and match commands: it reads
// their inputs, runs them, and writes and summarizes their results
package exec

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/jjtimmons/seqsign/config"
	"github.com/jjtimmons/seqsign/internal/alignment"
	"github.com/jjtimmons/seqsign/internal/feature"
	"github.com/jjtimmons/seqsign/internal/io"
	"github.com/jjtimmons/seqsign/internal/protein"
	"github.com/jjtimmons/seqsign/internal/signature"
)

var (
	// stderr is for logging to Stderr (without an annoying timestamp)
	stderr = log.New(os.Stderr, "", 0)
)

// Signed is a signature and the alignment reports of its groups
type Signed struct {
	Signature *signature.Signature

	Positive io.Report

	// Negative is nil for a one-sided signature
	Negative *io.Report
}

// aligner returns the aligner of the config's site
func aligner(conf *config.Config) (alignment.Aligner, error) {
	return alignment.NewAligner(conf.Site, conf.Scheme, conf.MaxCells, conf.Prune)
}

// Align builds the alignment of an input's proteins and its statistics
func Align(in *io.Input, conf *config.Config) (io.Report, error) {
	a, err := aligner(conf)
	if err != nil {
		return io.Report{}, err
	}

	m, err := a.Build(in.Proteins, in.Segments)
	if err != nil {
		return io.Report{}, err
	}

	stats := alignment.Compute(m, feature.Default())
	return io.NewReport(m, stats, alignment.CacheKey(in.Proteins, in.Segments)), nil
}

// Sign computes the signature of the positive group against the negative
// group. Both are aligned on the positive input's segments. negative
// may be nil for a one-sided signature
func Sign(positive, negative *io.Input, conf *config.Config) (*Signed, error) {
	a, err := aligner(conf)
	if err != nil {
		return nil, err
	}

	var negProteins []protein.Protein
	if negative != nil {
		negProteins = negative.Proteins
	}

	table := feature.Default()
	b, err := signature.Setup(a, table, positive.Proteins, negProteins, positive.Segments)
	if err != nil {
		return nil, err
	}

	signed := &Signed{Signature: b.Calculate()}

	m, stats := b.Positive()
	signed.Positive = io.NewReport(m, stats, alignment.CacheKey(positive.Proteins, positive.Segments))
	if m, stats := b.Negative(); m != nil {
		report := io.NewReport(m, stats, alignment.CacheKey(negProteins, positive.Segments))
		signed.Negative = &report
	}

	return signed, nil
}

// Match scores the candidate proteins against a signature. majority is
// the family reported as the majority family, the candidates' most common
// family if it's empty
func Match(sig *signature.Signature, candidates *io.Input, majority string, conf *config.Config) (*signature.Result, error) {
	opts := signature.MatchOptions{
		Cutoff:          conf.Cutoff,
		SegmentWeights:  conf.Weights(sig.Segments),
		FamilyAggregate: conf.FamilyAggregate,
	}
	return signature.Score(sig, candidates.Proteins, majority, feature.Default(), opts)
}

// explain returns an error message for the user. Alignments that are too
// large come with a hint on how to make them smaller
func explain(err error) string {
	var tooLarge *alignment.TooLargeError
	if errors.As(err, &tooLarge) {
		return fmt.Sprintf(
			"%v\n\nthe alignment of %d proteins over %d positions is too large to build.\n"+
				"select fewer proteins or segments, or raise max-cells in the settings file",
			err, tooLarge.Proteins, tooLarge.Positions,
		)
	}

	var unresolvable *alignment.UnresolvableSegmentError
	if errors.As(err, &unresolvable) {
		return fmt.Sprintf("%v\n\ncheck that the proteins are numbered in %s, or set the scheme", err, unresolvable.Scheme)
	}

	return err.Error()
}
