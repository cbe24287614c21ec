// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/jjtimmons/seqsign/internal/alignment"
	"github.com/jjtimmons/seqsign/internal/signature"
)

const (
	// DefaultSite is the protein family the aligner is built for
	DefaultSite = "gpcr"

	// DefaultMaxCells is the largest alignment (proteins x positions) built
	DefaultMaxCells = 120000

	// DefaultAggregate is the statistic for a family's match score
	DefaultAggregate = "mean"
)

var (
	// RootSettingsFile is the default settings file, in the user's home directory
	RootSettingsFile = filepath.Join(home(), ".seqsign", "config.yaml")

	// stderr is for logging to Stderr (without an annoying timestamp)
	stderr = log.New(os.Stderr, "", 0)
)

// Config is the root-level settings struct and is a mix
// of settings available in the settings file and those
// available from the command line
type Config struct {
	// Site is the kind of protein family being aligned: gpcr, gprotein or arrestin
	Site string `mapstructure:"site"`

	// Scheme overrides the site's numbering scheme
	Scheme string `mapstructure:"scheme"`

	// MaxCells is the largest alignment that's built. 0 means there's no limit
	MaxCells int `mapstructure:"max-cells"`

	// Prune drops termini and loops from large gpcr alignments
	Prune bool `mapstructure:"prune"`

	// Cutoff is the smallest |delta| of a signature position that's scored
	Cutoff float64 `mapstructure:"cutoff"`

	// FamilyAggregate is the statistic for a family's match score, mean or max
	FamilyAggregate string `mapstructure:"family-aggregate"`

	// SegmentWeights multiply the match contributions of a segment's positions.
	// Viper lower-cases the keys, see Weights
	SegmentWeights map[string]float64 `mapstructure:"segment-weights"`
}

// New returns a new Config struct populated by Viper settings:
// defaults, the settings file and command line arguments
func New() *Config {
	setDefaults()

	if settings := viper.GetString("settings"); settings != "" {
		if _, err := os.Stat(settings); err == nil {
			viper.SetConfigFile(settings)
			if err := viper.MergeInConfig(); err != nil {
				stderr.Fatalf("failed to read settings file %s: %v", settings, err)
			}
		} else if settings != RootSettingsFile {
			stderr.Fatalf("failed to find settings file %s: %v", settings, err)
		}
	}

	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		stderr.Fatalf("unable to decode settings into struct: %v", err)
	}
	return &c
}

// setDefaults sets the lowest priority value of each setting
func setDefaults() {
	viper.SetDefault("site", DefaultSite)
	viper.SetDefault("scheme", "")
	viper.SetDefault("max-cells", DefaultMaxCells)
	viper.SetDefault("prune", true)
	viper.SetDefault("cutoff", 0.0)
	viper.SetDefault("family-aggregate", DefaultAggregate)
	viper.SetDefault("segment-weights", map[string]float64{})
}

// Validate checks that the settings are in range
func (c *Config) Validate() error {
	site := strings.ToLower(c.Site)
	known := false
	for _, s := range alignment.Sites {
		known = known || s == site
	}
	if !known {
		return fmt.Errorf("unknown site %q, expected one of: %s", c.Site, strings.Join(alignment.Sites, ", "))
	}

	if c.MaxCells < 0 {
		return fmt.Errorf("max-cells must be 0 or more, got %d", c.MaxCells)
	}

	if c.Cutoff < 0 || math.IsNaN(c.Cutoff) {
		return fmt.Errorf("cutoff must be a non-negative number, got %f", c.Cutoff)
	}

	known = false
	for _, a := range signature.Aggregates {
		known = known || a == strings.ToLower(c.FamilyAggregate)
	}
	if !known {
		return fmt.Errorf("unknown family-aggregate %q, expected one of: %s", c.FamilyAggregate, strings.Join(signature.Aggregates, ", "))
	}

	for segment, w := range c.SegmentWeights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return fmt.Errorf("weight of segment %s must be a non-negative number, got %f", segment, w)
		}
	}

	return nil
}

// Weights returns the weight of each of the segments that has one set,
// keyed by the segments' own IDs
func (c *Config) Weights(segments []string) map[string]float64 {
	weights := make(map[string]float64)
	for _, s := range segments {
		if w, ok := c.SegmentWeights[s]; ok {
			weights[s] = w
		} else if w, ok := c.SegmentWeights[strings.ToLower(s)]; ok {
			weights[s] = w
		}
	}
	return weights
}

// home returns the user's home directory, or the working directory
// if there isn't one
func home() string {
	if dir, err := os.UserHomeDir(); err == nil {
		return dir
	}
	return "."
}
