// Package config provides configuration management for the schema generator.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrMissingInputPath      = errors.New("input.path is required")
	ErrInvalidInputFormat    = errors.New("input.format must be one of: auto, csv, xlsx")
	ErrInvalidInputEncoding  = errors.New("input.encoding must be one of: utf-8, windows-1252, iso-8859-1")
	ErrInvalidDelimiter      = errors.New("input.delimiter must be a single character")
	ErrMissingOutputBaseDir  = errors.New("output.base_dir is required")
	ErrInvalidPresence       = errors.New("variants.presence must be 'name' or 'strict'")
	ErrInvalidURLSource      = errors.New("variants.url_source must be 'variant' or 'product'")
	ErrInvalidImageMode      = errors.New("images.mode must be 'single' or 'list'")
	ErrInvalidDiscount       = errors.New("discount.placement must be one of: variant, group, both, none")
	ErrMissingCurrency       = errors.New("offer.currency is required")
	ErrMissingPriceValidity  = errors.New("offer.price_valid_until is required")
	ErrInvalidAudienceMinAge = errors.New("schema.audience_min_age must be non-negative")
	ErrInvalidLogLevel       = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrHTMLWithoutReport     = errors.New("report.html requires report.enabled")
)

// Variant presence policies.
const (
	PresenceName   = "name"
	PresenceStrict = "strict"
)

// Variant URL sources.
const (
	URLSourceVariant = "variant"
	URLSourceProduct = "product"
)

// Image modes.
const (
	ImageSingle = "single"
	ImageList   = "list"
)

// Discount placements.
const (
	DiscountVariant = "variant"
	DiscountGroup   = "group"
	DiscountBoth    = "both"
	DiscountNone    = "none"
)

// Input formats and encodings.
const (
	FormatAuto = "auto"
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"

	EncodingUTF8        = "utf-8"
	EncodingWindows1252 = "windows-1252"
	EncodingISO88591    = "iso-8859-1"
)

// RunDirLayout is the time layout of the per-run output directory.
const RunDirLayout = "2006-01-02_15-04-05"

// Config represents the complete generator configuration.
type Config struct {
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	Run      RunConfig      `yaml:"run"`
	Variants VariantsConfig `yaml:"variants"`
	Images   ImagesConfig   `yaml:"images"`
	Discount DiscountConfig `yaml:"discount"`
	Dates    DatesConfig    `yaml:"dates"`
	Schema   SchemaConfig   `yaml:"schema"`
	Offer    OfferConfig    `yaml:"offer"`
	Manifest ManifestConfig `yaml:"manifest"`
	Report   ReportConfig   `yaml:"report"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// InputConfig describes the tabular source.
type InputConfig struct {
	Path      string `yaml:"path"`
	Format    string `yaml:"format"`
	Encoding  string `yaml:"encoding"`
	Delimiter string `yaml:"delimiter"`
	Sheet     string `yaml:"sheet"`
}

// OutputConfig defines where run directories are created.
type OutputConfig struct {
	BaseDir string `yaml:"base_dir"`
}

// RunConfig controls per-row failure handling.
type RunConfig struct {
	FailFast bool `yaml:"fail_fast"`
}

// VariantsConfig selects the variant presence and URL policies.
type VariantsConfig struct {
	Presence  string `yaml:"presence"`
	URLSource string `yaml:"url_source"`
}

// ImagesConfig selects how the group image is emitted.
type ImagesConfig struct {
	Mode string `yaml:"mode"`
}

// DiscountConfig selects where the row discount is emitted.
type DiscountConfig struct {
	Placement string `yaml:"placement"`
}

// DatesConfig controls MM/DD/YYYY normalization.
type DatesConfig struct {
	Normalize bool `yaml:"normalize"`
}

// SchemaConfig holds group-level defaults.
type SchemaConfig struct {
	SiteURL          string `yaml:"site_url"`
	GroupIDSuffix    string `yaml:"group_id_suffix"`
	Language         string `yaml:"language"`
	Thumbnail        bool   `yaml:"thumbnail"`
	IsFamilyFriendly *bool  `yaml:"is_family_friendly"`
	CountryOfOrigin  string `yaml:"country_of_origin"`
	AudienceMinAge   int    `yaml:"audience_min_age"`
}

// OfferConfig holds the fixed offer values.
type OfferConfig struct {
	Currency         string `yaml:"currency"`
	PriceValidUntil  string `yaml:"price_valid_until"`
	AvailabilityEnds string `yaml:"availability_ends"`
}

// ManifestConfig enables the SQLite run manifest when Path is set.
type ManifestConfig struct {
	Path string `yaml:"path"`
}

// ReportConfig controls the per-run summary report.
type ReportConfig struct {
	Enabled bool `yaml:"enabled"`
	HTML    bool `yaml:"html"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	familyFriendly := true

	return &Config{
		Input: InputConfig{
			Path:      "zoracel_schema_sample.csv",
			Format:    FormatAuto,
			Encoding:  EncodingUTF8,
			Delimiter: ",",
		},
		Output: OutputConfig{BaseDir: "."},
		Variants: VariantsConfig{
			Presence:  PresenceName,
			URLSource: URLSourceVariant,
		},
		Images:   ImagesConfig{Mode: ImageSingle},
		Discount: DiscountConfig{Placement: DiscountBoth},
		Dates:    DatesConfig{Normalize: true},
		Schema: SchemaConfig{
			GroupIDSuffix:    "-1001",
			Language:         "en",
			Thumbnail:        true,
			IsFamilyFriendly: &familyFriendly,
			CountryOfOrigin:  "US",
			AudienceMinAge:   18,
		},
		Offer: OfferConfig{
			Currency:         "USD",
			PriceValidUntil:  "2025-12-31",
			AvailabilityEnds: "2025-12-31",
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// LoadConfig loads configuration from a YAML file layered over DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return ParseConfig(data)
}

// ParseConfig checks the document shape, decodes it over the defaults and
// validates the result.
func ParseConfig(data []byte) (*Config, error) {
	if err := checkShape(data); err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves configuration to YAML file.
func (c *Config) SaveConfig(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Input.Path == "" {
		return ErrMissingInputPath
	}

	switch c.Input.Format {
	case FormatAuto, FormatCSV, FormatXLSX:
	default:
		return ErrInvalidInputFormat
	}

	switch strings.ToLower(c.Input.Encoding) {
	case EncodingUTF8, EncodingWindows1252, EncodingISO88591:
	default:
		return ErrInvalidInputEncoding
	}

	if len([]rune(c.Input.Delimiter)) != 1 {
		return ErrInvalidDelimiter
	}

	if c.Output.BaseDir == "" {
		return ErrMissingOutputBaseDir
	}

	if c.Variants.Presence != PresenceName && c.Variants.Presence != PresenceStrict {
		return ErrInvalidPresence
	}

	if c.Variants.URLSource != URLSourceVariant && c.Variants.URLSource != URLSourceProduct {
		return ErrInvalidURLSource
	}

	if c.Images.Mode != ImageSingle && c.Images.Mode != ImageList {
		return ErrInvalidImageMode
	}

	switch c.Discount.Placement {
	case DiscountVariant, DiscountGroup, DiscountBoth, DiscountNone:
	default:
		return ErrInvalidDiscount
	}

	if c.Offer.Currency == "" {
		return ErrMissingCurrency
	}

	if c.Offer.PriceValidUntil == "" {
		return ErrMissingPriceValidity
	}

	if c.Schema.AudienceMinAge < 0 {
		return ErrInvalidAudienceMinAge
	}

	if c.Report.HTML && !c.Report.Enabled {
		return ErrHTMLWithoutReport
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	return nil
}

// InputFormat resolves FormatAuto from the input file extension.
func (c *Config) InputFormat() string {
	if c.Input.Format != FormatAuto {
		return c.Input.Format
	}

	if strings.EqualFold(filepath.Ext(c.Input.Path), ".xlsx") {
		return FormatXLSX
	}

	return FormatCSV
}

// DelimiterRune returns the CSV delimiter as a rune.
func (c *Config) DelimiterRune() rune {
	for _, r := range c.Input.Delimiter {
		return r
	}

	return ','
}

// DiscountOnVariants reports whether offers carry the row discount.
func (c *Config) DiscountOnVariants() bool {
	return c.Discount.Placement == DiscountVariant || c.Discount.Placement == DiscountBoth
}

// DiscountOnGroup reports whether the group carries the row discount.
func (c *Config) DiscountOnGroup() bool {
	return c.Discount.Placement == DiscountGroup || c.Discount.Placement == DiscountBoth
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Input: %s, Output: %s, Presence: %s, URLSource: %s}",
		c.Input.Path,
		c.Output.BaseDir,
		c.Variants.Presence,
		c.Variants.URLSource,
	)
}
