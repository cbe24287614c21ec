package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jjtimmons/seqsign/internal/exec"
)

// alignCmd is for aligning a set of proteins on their generic numbers
var alignCmd = &cobra.Command{
	Use:                        "align",
	Short:                      "Align proteins on their generic numbers",
	Run:                        exec.AlignCmd,
	SuggestionsMinimumDistance: 2,
	Example:                    "  seqsign align --in receptors.json --out receptors.alignment.json",
	Long: `Align proteins on the generic numbers of the segments in the input file.

Segments with a "positions" list are aligned on exactly those positions. Other
segments are aligned on the positions seen in the proteins. The output has the
aligned sequences, the consensus and the statistics of each position.`,
}

// set flags
func init() {
	alignCmd.Flags().StringP("in", "i", "", "input file with proteins and segments <JSON>")
	alignCmd.Flags().StringP("out", "o", "", "output file name <JSON>")

	RootCmd.AddCommand(alignCmd)
}
