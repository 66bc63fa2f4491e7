// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config. The rate tables
// themselves are compiled-in constants; the configuration selects among
// them and supplies the starting salary and rule toggles.
package config

import (
	"fmt"
	"io"

	"github.com/mwhitfield/salary-truth/pkg/constants"
	"github.com/mwhitfield/salary-truth/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for salary-truth.
type Configuration struct {
	Common    Common
	Scenarios []Scenario
	Logging   LoggingConfig `yaml:"logging,omitempty"`
	Output    OutputConfig  `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// Common holds the parameters shared by all scenarios: the starting salary,
// the rule-set variant, and the index selections.
type Common struct {
	StartSalary    float64
	Variant        string
	ReferenceIndex string
	Indices        []string
}

// Scenario selects one salary series: a performance tier plus a set of
// adjustment rule toggles.
type Scenario struct {
	Name        string
	Active      bool
	Tier        string
	Adjustments map[string]bool
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.AutomaticEnv()

	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return unmarshalConfiguration(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from an
// arbitrary reader, e.g. an uploaded file.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	return unmarshalConfiguration(v)
}

func unmarshalConfiguration(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	configuration.applyDefaults()
	return &configuration, nil
}

// applyDefaults fills unset selections with the compiled-in defaults.
func (c *Configuration) applyDefaults() {
	if c.Common.Variant == "" {
		c.Common.Variant = constants.DefaultVariant
	}
	if c.Common.ReferenceIndex == "" {
		c.Common.ReferenceIndex = constants.DefaultReferenceIndex
	}
	if len(c.Common.Indices) == 0 {
		c.Common.Indices = []string{c.Common.ReferenceIndex}
	}
}

// ResolveVariant resolves the configured rule-set variant against the
// compiled-in tables.
func (c *Configuration) ResolveVariant() (*Variant, error) {
	variant, ok := LookupVariant(c.Common.Variant)
	if !ok {
		return nil, fmt.Errorf("unknown variant %q, known variants: %v", c.Common.Variant, VariantNames())
	}
	return variant, nil
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings.
func (c *Configuration) ValidateConfiguration() []string {
	validator := validation.ConfigValidator{
		StartSalary:    c.Common.StartSalary,
		Variant:        c.Common.Variant,
		ReferenceIndex: c.Common.ReferenceIndex,
		Indices:        c.Common.Indices,
		KnownVariants:  VariantNames(),
		KnownTiers:     TierNames(),
		KnownIndices:   IndexNames(),
	}

	if variant, ok := LookupVariant(c.Common.Variant); ok {
		validator.KnownRules = variant.RuleNames()
	}

	for _, scenario := range c.Scenarios {
		validator.Scenarios = append(validator.Scenarios, validation.ScenarioInfo{
			Name:        scenario.Name,
			Active:      scenario.Active,
			Tier:        scenario.Tier,
			Adjustments: scenario.Adjustments,
		})
	}

	return validator.ValidateAll()
}
