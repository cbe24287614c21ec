// Package cmd is for command line interactions with the seqsign application
package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jjtimmons/seqsign/config"
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "seqsign",
	Short: "Align proteins on generic numbers and find the features that set groups of them apart",
	Long: `Align proteins on generic numbers and find the features that set groups of them apart.

Proteins are aligned on their generic numbers (structure based position labels)
rather than their sequence. The signature of a group of proteins is the difference,
at each position, between the frequencies of residue features in the group and in
a second group. Other proteins are then matched against the signature.`,
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}

// set persistent flags
func init() {
	// settings is an optional parameter for a settings file (that overrides the defaults)
	RootCmd.PersistentFlags().StringP("settings", "s", config.RootSettingsFile, "settings file")
	RootCmd.PersistentFlags().String("site", config.DefaultSite, "protein family of the proteins: gpcr, gprotein or arrestin")
	RootCmd.PersistentFlags().String("scheme", "", "numbering scheme, the site's default if not set")
	RootCmd.PersistentFlags().Int("max-cells", config.DefaultMaxCells, "largest alignment (proteins x positions) to build, 0 for no limit")
	RootCmd.PersistentFlags().Bool("prune", true, "drop termini and loops from large gpcr alignments")

	for _, name := range []string{"settings", "site", "scheme", "max-cells", "prune"} {
		viper.BindPFlag(name, RootCmd.PersistentFlags().Lookup(name))
	}
}
