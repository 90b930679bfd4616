// Package emitter writes ProductGroup documents as JSON-LD script blocks.
package emitter

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"schemagen/internal/config"
	"schemagen/internal/models"
	"schemagen/pkg/metadata"
	"schemagen/pkg/utils"
)

// Script envelope around the JSON body.
const (
	ScriptOpen  = `<script type="application/ld+json">` + "\n"
	ScriptClose = "\n</script>"
)

// Emitter errors.
var (
	ErrNilDocument = errors.New("document is nil")
	ErrNotPrepared = errors.New("output directory not prepared")
)

// Written describes one emitted file.
type Written struct {
	File   string
	Path   string
	SHA256 string
}

// Emitter writes documents into a single run directory.
type Emitter struct {
	dir      string
	prepared bool
}

// OutputDir returns the run directory for base and startedAt.
func OutputDir(base string, startedAt time.Time) string {
	return filepath.Join(base, startedAt.Format(config.RunDirLayout))
}

// New creates an emitter writing into dir.
func New(dir string) *Emitter {
	return &Emitter{dir: dir}
}

// Dir returns the run directory.
func (e *Emitter) Dir() string {
	return e.dir
}

// Prepare creates the run directory. It is safe to call more than once.
func (e *Emitter) Prepare() error {
	if e.prepared {
		return nil
	}

	if err := os.MkdirAll(e.dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	e.prepared = true

	return nil
}

// Encode renders doc as an indented JSON-LD script block.
func Encode(doc *models.ProductGroup) ([]byte, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}

	var body bytes.Buffer

	enc := json.NewEncoder(&body)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}

	var out bytes.Buffer

	out.Grow(len(ScriptOpen) + body.Len() + len(ScriptClose))
	out.WriteString(ScriptOpen)
	// Encoder terminates with a newline; the envelope supplies its own.
	out.Write(unescapeLineSeparators(bytes.TrimSuffix(body.Bytes(), []byte("\n"))))
	out.WriteString(ScriptClose)

	return out.Bytes(), nil
}

// unescapeLineSeparators restores U+2028 and U+2029, which encoding/json
// escapes regardless of SetEscapeHTML. Escape sequences are consumed in pairs
// so an escaped backslash followed by "u2028" is left alone.
func unescapeLineSeparators(b []byte) []byte {
	if !bytes.Contains(b, []byte(`\u202`)) {
		return b
	}

	out := make([]byte, 0, len(b))

	for i := 0; i < len(b); i++ {
		if b[i] != '\\' || i+1 >= len(b) {
			out = append(out, b[i])
			continue
		}

		if b[i+1] == 'u' && i+6 <= len(b) {
			switch string(b[i+2 : i+6]) {
			case "2028":
				out = append(out, "\u2028"...)
				i += 5

				continue
			case "2029":
				out = append(out, "\u2029"...)
				i += 5

				continue
			}
		}

		out = append(out, b[i], b[i+1])
		i++
	}

	return out
}

// FileName returns the output file name for a product name.
func FileName(name string) string {
	return utils.SanitizeFileName(name) + ".json"
}

// Write encodes doc and writes it to the run directory, replacing any file of
// the same name.
func (e *Emitter) Write(doc *models.ProductGroup) (Written, error) {
	if !e.prepared {
		return Written{}, ErrNotPrepared
	}

	data, err := Encode(doc)
	if err != nil {
		return Written{}, err
	}

	file := FileName(doc.Name)
	path := filepath.Join(e.dir, file)

	if err := os.WriteFile(path, data, 0644); err != nil {
		return Written{}, fmt.Errorf("failed to write %s: %w", file, err)
	}

	return Written{
		File:   file,
		Path:   path,
		SHA256: metadata.CalculateHash(data),
	}, nil
}
