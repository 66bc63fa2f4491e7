package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mwhitfield/salary-truth/pkg/constants"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Address != constants.DefaultServerAddress {
		t.Errorf("Address = %q, expected %q", cfg.Address, constants.DefaultServerAddress)
	}
	if cfg.UploadSizeBytes() != constants.DefaultMaxUploadSizeBytes {
		t.Errorf("UploadSizeBytes() = %d, expected %d", cfg.UploadSizeBytes(), constants.DefaultMaxUploadSizeBytes)
	}
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Address != constants.DefaultServerAddress {
		t.Errorf("Address = %q, expected default", cfg.Address)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.yaml")
	contents := "address: \":9090\"\nmaxUploadSize: 1M\nlogging:\n  level: warn\n"
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Address != ":9090" {
		t.Errorf("Address = %q, expected :9090", cfg.Address)
	}
	if cfg.UploadSizeBytes() != 1024*1024 {
		t.Errorf("UploadSizeBytes() = %d, expected 1 MiB", cfg.UploadSizeBytes())
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, expected warn", cfg.Logging.Level)
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int64
		wantErr  bool
	}{
		{"Bare bytes", "512", 512, false},
		{"Bytes suffix", "512B", 512, false},
		{"Kilobytes", "256K", 256 * 1024, false},
		{"Kilobytes long", "256KB", 256 * 1024, false},
		{"Megabytes", "10M", 10 * 1024 * 1024, false},
		{"Gigabytes", "1G", 1024 * 1024 * 1024, false},
		{"Whitespace", " 64K ", 64 * 1024, false},
		{"Empty uses default", "", constants.DefaultMaxUploadSizeBytes, false},
		{"No digits", "KB", 0, true},
		{"Unknown unit", "10T", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSize(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSize(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && got != tt.expected {
				t.Errorf("ParseSize(%q) = %d, expected %d", tt.input, got, tt.expected)
			}
		})
	}
}
