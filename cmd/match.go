package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jjtimmons/seqsign/config"
	"github.com/jjtimmons/seqsign/internal/exec"
)

// matchCmd is for scoring proteins against a signature
var matchCmd = &cobra.Command{
	Use:                        "match",
	Short:                      "Score proteins against a signature",
	Run:                        exec.MatchCmd,
	SuggestionsMinimumDistance: 2,
	Example:                    "  seqsign match -g adrenergic.signature.json -i candidates.json",
	Long: `Score proteins against a signature written by "seqsign signature".

A protein earns the |delta| of each position where its residue is in the
position's dominant feature, if that feature is enriched in the positive group,
and loses it if the feature is enriched in the negative group. Positions whose
|delta| is below the cutoff are skipped.`,
}

// set flags
func init() {
	matchCmd.Flags().StringP("signature", "g", "", "signature file <JSON>")
	matchCmd.Flags().StringP("in", "i", "", "input file with the proteins to score <JSON>")
	matchCmd.Flags().StringP("out", "o", "", "output file name <JSON>")
	matchCmd.Flags().StringP("family", "f", "", "majority family to report, the most common family if not set")
	matchCmd.Flags().Float64P("cutoff", "c", 0, "smallest |delta| of a position that's scored")
	matchCmd.Flags().String("aggregate", config.DefaultAggregate, "statistic of a family's score: mean or max")

	viper.BindPFlag("cutoff", matchCmd.Flags().Lookup("cutoff"))
	viper.BindPFlag("family-aggregate", matchCmd.Flags().Lookup("aggregate"))

	RootCmd.AddCommand(matchCmd)
}
