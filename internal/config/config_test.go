package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleConfig = `---
logging:
  level: debug
  format: console
output:
  format: csv
common:
  startSalary: 40000
  variant: tiered
  referenceIndex: rpi
  indices:
    - cpi
    - rpi
scenarios:
  - name: average worker
    active: true
    tier: average
    adjustments:
      col-2022: true
      plus-2023: false
  - name: strong worker
    active: false
    tier: strong
`

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func TestLoadConfiguration(t *testing.T) {
	conf, err := LoadConfiguration(writeTempConfig(t, sampleConfig))
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if conf.Common.StartSalary != 40000 {
		t.Errorf("StartSalary = %v, expected 40000", conf.Common.StartSalary)
	}
	if conf.Common.Variant != "tiered" {
		t.Errorf("Variant = %q, expected tiered", conf.Common.Variant)
	}
	if conf.Common.ReferenceIndex != "rpi" {
		t.Errorf("ReferenceIndex = %q, expected rpi", conf.Common.ReferenceIndex)
	}
	if len(conf.Scenarios) != 2 {
		t.Fatalf("expected 2 scenarios, got %d", len(conf.Scenarios))
	}
	if conf.Scenarios[0].Tier != "average" {
		t.Errorf("Scenarios[0].Tier = %q, expected average", conf.Scenarios[0].Tier)
	}
	if enabled := conf.Scenarios[0].Adjustments[RulePlus2023]; enabled {
		t.Error("plus-2023 toggle should be false")
	}
	if conf.Scenarios[1].Active {
		t.Error("Scenarios[1] should be inactive")
	}
	if conf.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, expected debug", conf.Logging.Level)
	}
	if conf.Output.Format != "csv" {
		t.Errorf("Output.Format = %q, expected csv", conf.Output.Format)
	}
}

func TestLoadConfigurationMissingFile(t *testing.T) {
	if _, err := LoadConfiguration(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected an error for a missing config file")
	}
}

func TestLoadConfigurationFromReader(t *testing.T) {
	conf, err := LoadConfigurationFromReader(strings.NewReader(sampleConfig))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}
	if conf.Common.StartSalary != 40000 {
		t.Errorf("StartSalary = %v, expected 40000", conf.Common.StartSalary)
	}
}

func TestDefaultsApplied(t *testing.T) {
	minimal := `---
common:
  startSalary: 32000
scenarios:
  - name: average worker
    active: true
    tier: average
`
	conf, err := LoadConfigurationFromReader(strings.NewReader(minimal))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}

	if conf.Common.Variant != "additive" {
		t.Errorf("default Variant = %q, expected additive", conf.Common.Variant)
	}
	if conf.Common.ReferenceIndex != "cpi" {
		t.Errorf("default ReferenceIndex = %q, expected cpi", conf.Common.ReferenceIndex)
	}
	if len(conf.Common.Indices) != 1 || conf.Common.Indices[0] != "cpi" {
		t.Errorf("default Indices = %v, expected [cpi]", conf.Common.Indices)
	}
}

func TestValidateConfigurationWarnings(t *testing.T) {
	conf, err := LoadConfigurationFromReader(strings.NewReader(sampleConfig))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}
	if warnings := conf.ValidateConfiguration(); len(warnings) != 0 {
		t.Errorf("expected no warnings for the sample config, got %v", warnings)
	}

	conf.Common.StartSalary = -1
	conf.Scenarios[0].Tier = "exceptional"
	warnings := conf.ValidateConfiguration()
	if len(warnings) != 2 {
		t.Errorf("expected 2 warnings, got %v", warnings)
	}
}

func TestResolveVariant(t *testing.T) {
	conf := Configuration{Common: Common{Variant: "flat"}}
	variant, err := conf.ResolveVariant()
	if err != nil {
		t.Fatalf("ResolveVariant() error = %v", err)
	}
	if variant.Name != "flat" {
		t.Errorf("variant name = %q, expected flat", variant.Name)
	}

	conf.Common.Variant = "bogus"
	if _, err := conf.ResolveVariant(); err == nil {
		t.Error("expected an error for an unknown variant")
	}
}
