package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jjtimmons/seqsign/internal/exec"
)

// signatureCmd is for finding the features that set one group of proteins apart from another
var signatureCmd = &cobra.Command{
	Use:                        "signature",
	Short:                      "Compute the signature of a group of proteins against another",
	Run:                        exec.SignatureCmd,
	SuggestionsMinimumDistance: 2,
	Example:                    "  seqsign signature -p adrenergic.json -n muscarinic.json -o adrenergic.signature.json",
	Aliases:                    []string{"sign"},
	Long: `Compute the signature of the positive group of proteins against the negative group.

Both groups are aligned on the segments of the positive group's input file. At
each position the signature has the feature whose frequency differs most
between the groups. Without a negative group the signature is one-sided and
has the positive group's frequencies.`,
}

// set flags
func init() {
	signatureCmd.Flags().StringP("positive", "p", "", "input file with the positive group <JSON>")
	signatureCmd.Flags().StringP("negative", "n", "", "input file with the negative group <JSON>")
	signatureCmd.Flags().StringP("out", "o", "", "output file name <JSON>")
	signatureCmd.Flags().StringP("reports", "r", "", "directory to write the groups' alignments to")

	RootCmd.AddCommand(signatureCmd)
}
