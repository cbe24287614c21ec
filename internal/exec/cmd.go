package exec

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jjtimmons/seqsign/config"
	"github.com/jjtimmons/seqsign/internal/io"
	"github.com/jjtimmons/seqsign/internal/signature"
)

// summaryRows is the number of rows in the tables printed to stdout
const summaryRows = 10

// Flags contains parsed cobra Flags like "in", "out", "positive", etc that are used by multiple commands.
type Flags struct {
	// the input file: proteins to align, or candidates to match
	in string

	// the name of the file to write the output to
	out string

	// the positive and negative groups of a signature
	positive, negative string

	// the signature file to match against
	signature string

	// directory to write a signature's group alignments to
	reports string

	// the family to report as the majority family of match candidates
	majority string
}

// parseCmdFlags gathers the flags of a command and the settings.
// Flags that a command doesn't have are left empty
func parseCmdFlags(cmd *cobra.Command) (*Flags, *config.Config) {
	fs := &Flags{}
	for name, dest := range map[string]*string{
		"in":        &fs.in,
		"out":       &fs.out,
		"positive":  &fs.positive,
		"negative":  &fs.negative,
		"signature": &fs.signature,
		"reports":   &fs.reports,
		"family":    &fs.majority,
	} {
		if cmd.Flags().Lookup(name) == nil {
			continue
		}
		v, err := cmd.Flags().GetString(name)
		if err != nil {
			cmd.Help()
			stderr.Fatalf("failed to parse %s flag: %v", name, err)
		}
		*dest = v
	}

	c := config.New()
	if err := c.Validate(); err != nil {
		stderr.Fatal(err)
	}
	return fs, c
}

// AlignCmd takes a cobra command (with its flags) and aligns its input
func AlignCmd(cmd *cobra.Command, args []string) {
	flags, conf := parseCmdFlags(cmd)
	if flags.in == "" {
		cmd.Help()
		stderr.Fatal("\nno input file passed.")
	}
	if flags.out == "" {
		flags.out = io.GuessOutput(flags.in, "alignment")
	}

	in, err := io.ReadInput(flags.in)
	if err != nil {
		stderr.Fatal(err)
	}

	report, err := Align(in, conf)
	if err != nil {
		stderr.Fatal(explain(err))
	}

	if err = io.WriteJSON(flags.out, report); err != nil {
		stderr.Fatal(err)
	}

	fmt.Printf("aligned %d proteins over %d positions\n", len(report.Rows), len(report.Columns))
	fmt.Printf("consensus: %s\n", report.Consensus)
	fmt.Printf("wrote %s\n", flags.out)
}

// SignatureCmd takes a cobra command (with its flags) and computes the
// signature of its positive group against its negative group
func SignatureCmd(cmd *cobra.Command, args []string) {
	flags, conf := parseCmdFlags(cmd)
	if flags.positive == "" {
		cmd.Help()
		stderr.Fatal("\nno positive group passed.")
	}
	if flags.out == "" {
		flags.out = io.GuessOutput(flags.positive, "signature")
	}

	positive, err := io.ReadInput(flags.positive)
	if err != nil {
		stderr.Fatal(err)
	}

	var negative *io.Input
	if flags.negative != "" {
		if negative, err = io.ReadInput(flags.negative); err != nil {
			stderr.Fatal(err)
		}
	} else {
		fmt.Println("no negative group passed [-n]: computing a one-sided signature")
	}

	signed, err := Sign(positive, negative, conf)
	if err != nil {
		stderr.Fatal(explain(err))
	}

	if err = io.WriteJSON(flags.out, signed.Signature); err != nil {
		stderr.Fatal(err)
	}

	if flags.reports != "" {
		if err = io.WriteJSON(reportPath(flags.reports, "positive"), signed.Positive); err != nil {
			stderr.Fatal(err)
		}
		if signed.Negative != nil {
			if err = io.WriteJSON(reportPath(flags.reports, "negative"), signed.Negative); err != nil {
				stderr.Fatal(err)
			}
		}
	}

	writeSignatureSummary(signed.Signature)
	fmt.Printf("wrote %s\n", flags.out)
}

// MatchCmd takes a cobra command (with its flags) and scores its
// candidates against a signature
func MatchCmd(cmd *cobra.Command, args []string) {
	flags, conf := parseCmdFlags(cmd)
	if flags.signature == "" || flags.in == "" {
		cmd.Help()
		stderr.Fatal("\nmatch needs a signature and an input file of candidates.")
	}
	if flags.out == "" {
		flags.out = io.GuessOutput(flags.in, "match")
	}

	sig, err := io.ReadSignature(flags.signature)
	if err != nil {
		stderr.Fatal(err)
	}

	candidates, err := io.ReadInput(flags.in)
	if err != nil {
		stderr.Fatal(err)
	}

	result, err := Match(sig, candidates, flags.majority, conf)
	if err != nil {
		stderr.Fatal(explain(err))
	}

	if err = io.WriteJSON(flags.out, result); err != nil {
		stderr.Fatal(err)
	}

	writeMatchSummary(result)
	fmt.Printf("wrote %s\n", flags.out)
}

// reportPath is the path of a group's alignment report in dir
func reportPath(dir, group string) string {
	return filepath.Join(dir, group+".alignment.json")
}

// writeSignatureSummary prints the positions with the largest differences
func writeSignatureSummary(sig *signature.Signature) {
	scored := sig.Scored()
	sort.SliceStable(scored, func(i, j int) bool {
		return math.Abs(scored[i].Delta) > math.Abs(scored[j].Delta)
	})
	if len(scored) > summaryRows {
		scored = scored[:summaryRows]
	}

	fmt.Printf("%d positions, %d scored\n", len(sig.Columns), len(sig.Scored()))
	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 3, ' ', 0)
	fmt.Fprintf(writer, "position\tsegment\tfeature\tdelta\t\n")
	for _, c := range scored {
		fmt.Fprintf(writer, "%s\t%s\t%s\t%.2f\t\n", c.Position.Label, c.Position.Segment, c.Feature, c.Delta)
	}
	writer.Flush()
}

// writeMatchSummary prints the best scoring candidates
func writeMatchSummary(result *signature.Result) {
	ranking := result.Ranking
	if len(ranking) > summaryRows {
		ranking = ranking[:summaryRows]
	}

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 3, ' ', 0)
	fmt.Fprintf(writer, "protein\tfamily\tscore\tpercent\t\n")
	for _, id := range ranking {
		ps := result.PerProtein[id]
		fmt.Fprintf(writer, "%s\t%s\t%.2f\t%.1f\t\n", ps.ID, ps.Family, ps.Score, ps.Percent)
	}
	writer.Flush()

	if result.Majority != "" {
		fmt.Printf("majority family %s: %.2f\n", result.Majority, result.PerFamily[result.Majority])
	}
}
