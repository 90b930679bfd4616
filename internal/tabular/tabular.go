// Package tabular reads product rows from CSV and XLSX inputs.
package tabular

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"schemagen/internal/config"
	"schemagen/internal/models"
)

// Reader errors.
var (
	ErrEmptyInput      = errors.New("input has no header row")
	ErrUnknownFormat   = errors.New("unknown input format")
	ErrUnknownEncoding = errors.New("unknown input encoding")
	ErrSheetNotFound   = errors.New("sheet not found")
	ErrMalformedRecord = errors.New("malformed record")
	ErrNoKnownColumns  = errors.New("header has none of the known columns")
)

// RecordError reports an input record that could not be decoded.
type RecordError struct {
	Line int
	Err  error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("malformed record at line %d: %v", e.Line, e.Err)
}

func (e *RecordError) Unwrap() []error {
	return []error{ErrMalformedRecord, e.Err}
}

// Options selects how an input file is decoded.
type Options struct {
	Format    string
	Encoding  string
	Delimiter rune
	Sheet     string
}

// OptionsFromConfig derives reader options from the input section.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Format:    cfg.InputFormat(),
		Encoding:  strings.ToLower(cfg.Input.Encoding),
		Delimiter: cfg.DelimiterRune(),
		Sheet:     cfg.Input.Sheet,
	}
}

// Source yields product rows in input order.
type Source interface {
	// Next returns the next row, or io.EOF after the last one. A record that
	// cannot be decoded is reported as a *RecordError; reading may continue
	// after it.
	Next() (*models.ProductRow, error)

	// Header returns the trimmed header cells.
	Header() []string

	// Unknown returns header cells that map to no row field.
	Unknown() []string

	Close() error
}

// Columns returns the canonical column list, in template order.
func Columns() []string {
	return models.Columns()
}

// Open opens path with the given options. FormatAuto resolves by extension.
func Open(path string, opts Options) (Source, error) {
	format := opts.Format
	if format == "" || format == config.FormatAuto {
		format = config.FormatCSV
		if strings.EqualFold(filepath.Ext(path), ".xlsx") {
			format = config.FormatXLSX
		}
	}

	switch format {
	case config.FormatCSV:
		return openCSV(path, opts)
	case config.FormatXLSX:
		return openXLSX(path, opts)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

// header maps each input column position to its name.
type header struct {
	names   []string
	known   []bool
	unknown []string
}

func newHeader(cells []string) (*header, error) {
	h := &header{
		names: make([]string, len(cells)),
		known: make([]bool, len(cells)),
	}

	seen := make(map[string]bool, len(cells))
	anyKnown := false

	for i, cell := range cells {
		name := strings.TrimSpace(strings.TrimPrefix(cell, "\ufeff"))
		h.names[i] = name

		switch {
		case seen[name]:
			// First occurrence of a duplicated column wins.
		case models.IsKnownColumn(name):
			h.known[i] = true
			anyKnown = true
		case name != "":
			h.unknown = append(h.unknown, name)
		}

		seen[name] = true
	}

	if !anyKnown {
		return nil, ErrNoKnownColumns
	}

	return h, nil
}

// decode builds a row from one record. Cells past the end of a short record
// stay absent.
func (h *header) decode(record []string, line int) (*models.ProductRow, error) {
	if len(record) > len(h.names) {
		return nil, &RecordError{
			Line: line,
			Err:  fmt.Errorf("%d fields, header has %d", len(record), len(h.names)),
		}
	}

	row := &models.ProductRow{Line: line}

	for i, cell := range record {
		if h.known[i] {
			row.Set(h.names[i], cell)
		}
	}

	return row, nil
}

func isBlank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}
