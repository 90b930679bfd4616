package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// Helper to create a temp config file.
func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create temp config file: %v", err)
	}

	return configPath
}

// validConfigYAML overrides a representative subset of the defaults.
const validConfigYAML = `
input:
  path: "products.csv"
  format: "csv"
  encoding: "windows-1252"
  delimiter: ";"
output:
  base_dir: "./out"
run:
  fail_fast: true
variants:
  presence: "strict"
  url_source: "product"
images:
  mode: "list"
discount:
  placement: "group"
dates:
  normalize: false
schema:
  site_url: "https://shop.example.com/"
  is_family_friendly: false
  audience_min_age: 21
offer:
  currency: "EUR"
manifest:
  path: "./out/manifest.db"
report:
  enabled: true
  html: true
logging:
  level: "debug"
`

func TestLoadConfig_Valid(t *testing.T) {
	configPath := createTempConfigFile(t, validConfigYAML)

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg == nil {
		t.Fatal("Expected config, got nil")
	}

	if cfg.Input.Path != "products.csv" {
		t.Errorf("Expected input path 'products.csv', got '%s'", cfg.Input.Path)
	}

	if cfg.DelimiterRune() != ';' {
		t.Errorf("Expected delimiter ';', got %q", cfg.DelimiterRune())
	}

	if cfg.Variants.Presence != PresenceStrict || cfg.Variants.URLSource != URLSourceProduct {
		t.Errorf("Unexpected variant policies: %+v", cfg.Variants)
	}

	if cfg.Schema.IsFamilyFriendly == nil || *cfg.Schema.IsFamilyFriendly {
		t.Errorf("Expected is_family_friendly=false, got %v", cfg.Schema.IsFamilyFriendly)
	}

	if cfg.Offer.Currency != "EUR" {
		t.Errorf("Expected currency EUR, got %s", cfg.Offer.Currency)
	}

	// Untouched keys keep their defaults.
	if cfg.Offer.PriceValidUntil != "2025-12-31" {
		t.Errorf("Expected default price_valid_until, got %s", cfg.Offer.PriceValidUntil)
	}

	if cfg.Schema.GroupIDSuffix != "-1001" {
		t.Errorf("Expected default group_id_suffix, got %s", cfg.Schema.GroupIDSuffix)
	}

	if !cfg.DiscountOnGroup() || cfg.DiscountOnVariants() {
		t.Errorf("Expected group-only discount placement, got %s", cfg.Discount.Placement)
	}
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	_, err := LoadConfig("/nonexistent/path/config.yaml")
	if err == nil {
		t.Fatal("Expected error for nonexistent file, got nil")
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	configPath := createTempConfigFile(t, "invalid: yaml: content: [}")

	_, err := LoadConfig(configPath)
	if err == nil {
		t.Fatal("Expected error for invalid YAML, got nil")
	}
}

func TestLoadConfig_EmptyFileUsesDefaults(t *testing.T) {
	configPath := createTempConfigFile(t, "")

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Variants.Presence != PresenceName {
		t.Errorf("Expected default presence policy, got %s", cfg.Variants.Presence)
	}
}

func TestParseConfig_ShapeErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "Unknown top-level key", content: "crawler:\n  sources: []\n"},
		{name: "Unknown nested key", content: "variants:\n  strictness: high\n"},
		{name: "Wrong type", content: "dates:\n  normalize: \"yes\"\n"},
		{name: "Enum violation", content: "images:\n  mode: carousel\n"},
		{name: "Negative age", content: "schema:\n  audience_min_age: -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.content))
			if !errors.Is(err, ErrInvalidConfigShape) {
				t.Errorf("ParseConfig error = %v, want ErrInvalidConfigShape", err)
			}
		})
	}
}

func TestDefaultConfig_Valid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("Default config should be valid: %v", err)
	}
}

func TestConfig_Validate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{"Missing input path", func(c *Config) { c.Input.Path = "" }, ErrMissingInputPath},
		{"Bad format", func(c *Config) { c.Input.Format = "ods" }, ErrInvalidInputFormat},
		{"Bad encoding", func(c *Config) { c.Input.Encoding = "utf-16" }, ErrInvalidInputEncoding},
		{"Long delimiter", func(c *Config) { c.Input.Delimiter = "||" }, ErrInvalidDelimiter},
		{"Missing base dir", func(c *Config) { c.Output.BaseDir = "" }, ErrMissingOutputBaseDir},
		{"Bad presence", func(c *Config) { c.Variants.Presence = "loose" }, ErrInvalidPresence},
		{"Bad url source", func(c *Config) { c.Variants.URLSource = "site" }, ErrInvalidURLSource},
		{"Bad image mode", func(c *Config) { c.Images.Mode = "gallery" }, ErrInvalidImageMode},
		{"Bad discount", func(c *Config) { c.Discount.Placement = "offer" }, ErrInvalidDiscount},
		{"Missing currency", func(c *Config) { c.Offer.Currency = "" }, ErrMissingCurrency},
		{"Missing validity", func(c *Config) { c.Offer.PriceValidUntil = "" }, ErrMissingPriceValidity},
		{"Negative age", func(c *Config) { c.Schema.AudienceMinAge = -3 }, ErrInvalidAudienceMinAge},
		{"HTML without report", func(c *Config) { c.Report.HTML = true }, ErrHTMLWithoutReport},
		{"Bad log level", func(c *Config) { c.Logging.Level = "verbose" }, ErrInvalidLogLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_InputFormat(t *testing.T) {
	tests := []struct {
		path   string
		format string
		want   string
	}{
		{"products.csv", FormatAuto, FormatCSV},
		{"products.XLSX", FormatAuto, FormatXLSX},
		{"products.txt", FormatAuto, FormatCSV},
		{"products.csv", FormatXLSX, FormatXLSX},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		cfg.Input.Path = tt.path
		cfg.Input.Format = tt.format

		if got := cfg.InputFormat(); got != tt.want {
			t.Errorf("InputFormat(%s, %s) = %s, want %s", tt.path, tt.format, got, tt.want)
		}
	}
}

func TestConfig_SaveConfigRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Schema.SiteURL = "https://shop.example.com/"

	path := filepath.Join(t.TempDir(), "saved.yaml")
	if err := cfg.SaveConfig(path); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig of saved config failed: %v", err)
	}

	if loaded.Schema.SiteURL != cfg.Schema.SiteURL {
		t.Errorf("SiteURL = %s, want %s", loaded.Schema.SiteURL, cfg.Schema.SiteURL)
	}
}

func TestLoadConfig_ExampleFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("..", "..", "configs", "schemagen.yaml"))
	if err != nil {
		t.Fatalf("Example config should load: %v", err)
	}

	if cfg.Input.Path != DefaultConfig().Input.Path {
		t.Errorf("Example input path = %s, want the default", cfg.Input.Path)
	}
}
