package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/spf13/viper"
)

func TestNew(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	c := New()
	if c.Site != DefaultSite || c.MaxCells != DefaultMaxCells || c.FamilyAggregate != DefaultAggregate || !c.Prune {
		t.Errorf("New() without settings = %+v, want the defaults", c)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("default config isn't valid: %v", err)
	}
}

func TestNew_settingsFile(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	settings := filepath.Join(t.TempDir(), "settings.yaml")
	contents := `site: arrestin
max-cells: 500
cutoff: 0.25
family-aggregate: max
segment-weights:
  TM3: 2
  ICL2: 0.5
`
	if err := os.WriteFile(settings, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}

	viper.Set("settings", settings)
	viper.Set("cutoff", 0.5) // flags take precedence over the file

	c := New()
	if c.Site != "arrestin" || c.MaxCells != 500 || c.FamilyAggregate != "max" {
		t.Errorf("New() didn't read the settings file: %+v", c)
	}
	if c.Cutoff != 0.5 {
		t.Errorf("cutoff = %f, the set value should override the file", c.Cutoff)
	}

	want := map[string]float64{"TM3": 2, "ICL2": 0.5}
	if got := c.Weights([]string{"TM1", "TM3", "ICL2"}); !reflect.DeepEqual(got, want) {
		t.Errorf("Config.Weights() = %v, want %v", got, want)
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{Site: "gpcr", MaxCells: 100, FamilyAggregate: "mean"}

	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"site is case insensitive", func(c *Config) { c.Site = "GProtein" }, false},
		{"unlimited cells", func(c *Config) { c.MaxCells = 0 }, false},
		{"unknown site", func(c *Config) { c.Site = "kinase" }, true},
		{"negative max cells", func(c *Config) { c.MaxCells = -1 }, true},
		{"negative cutoff", func(c *Config) { c.Cutoff = -0.1 }, true},
		{"unknown aggregate", func(c *Config) { c.FamilyAggregate = "median" }, true},
		{"negative weight", func(c *Config) { c.SegmentWeights = map[string]float64{"tm3": -1} }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.modify(&c)
			if err := c.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
