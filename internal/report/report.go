// Package report renders the per-run summary written next to the emitted documents.
package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"schemagen/pkg/utils"
)

// Report file names inside the run directory.
const (
	MarkdownFile = "_summary.md"
	HTMLFile     = "_summary.html"
)

// maxErrorWidth bounds the failure text shown in the status column.
const maxErrorWidth = 80

// Entry statuses.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Entry is one input row in the summary.
type Entry struct {
	Line     int
	Product  string
	File     string
	Variants int
	Status   string
	Error    string
}

// Summary is the outcome of one run.
type Summary struct {
	RunID     string
	Input     string
	OutputDir string
	StartedAt time.Time
	Succeeded int
	Failed    int
	Entries   []Entry
}

var tableHeader = []string{"Line", "Product", "File", "Variants", "Status"}

// Markdown renders the summary as a markdown document.
func Markdown(s Summary) string {
	var sb strings.Builder

	sb.WriteString("# Schema generation summary\n\n")

	if s.RunID != "" {
		fmt.Fprintf(&sb, "- Run: %s\n", s.RunID)
	}

	fmt.Fprintf(&sb, "- Input: %s\n", s.Input)
	fmt.Fprintf(&sb, "- Output: %s\n", s.OutputDir)
	fmt.Fprintf(&sb, "- Started: %s\n", s.StartedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&sb, "- Succeeded: %d\n", s.Succeeded)
	fmt.Fprintf(&sb, "- Failed: %d\n\n", s.Failed)

	rows := make([][]string, 0, len(s.Entries))
	for _, e := range s.Entries {
		rows = append(rows, entryCells(e))
	}

	for _, line := range renderTable(tableHeader, rows) {
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	return sb.String()
}

func entryCells(e Entry) []string {
	status := e.Status
	if e.Error != "" {
		status = e.Status + ": " + utils.TruncateString(utils.NormalizeWhitespace(e.Error), maxErrorWidth)
	}

	variants := ""
	if e.Status == StatusOK {
		variants = strconv.Itoa(e.Variants)
	}

	return []string{
		strconv.Itoa(e.Line),
		escapeCell(utils.NormalizeWhitespace(e.Product)),
		escapeCell(e.File),
		variants,
		escapeCell(status),
	}
}

// HTML renders markdown produced by Markdown as a standalone HTML page.
func HTML(markdown string) ([]byte, error) {
	var body bytes.Buffer

	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	if err := md.Convert([]byte(markdown), &body); err != nil {
		return nil, fmt.Errorf("markdown convert: %w", err)
	}

	var out bytes.Buffer

	out.WriteString("<!doctype html><html><head><meta charset='utf-8'><title>Schema generation summary</title><style>table{border-collapse:collapse;}th,td{border:1px solid #a8a29e;padding:0.3rem 0.5rem;text-align:left;}</style></head><body>\n")
	out.Write(body.Bytes())
	out.WriteString("</body></html>\n")

	return out.Bytes(), nil
}

// Write stores the markdown summary, and the HTML rendering when withHTML is
// set, in dir. It returns the paths written.
func Write(dir string, s Summary, withHTML bool) ([]string, error) {
	markdown := Markdown(s)

	mdPath := filepath.Join(dir, MarkdownFile)
	if err := os.WriteFile(mdPath, []byte(markdown), 0644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", MarkdownFile, err)
	}

	paths := []string{mdPath}

	if !withHTML {
		return paths, nil
	}

	page, err := HTML(markdown)
	if err != nil {
		return paths, err
	}

	htmlPath := filepath.Join(dir, HTMLFile)
	if err := os.WriteFile(htmlPath, page, 0644); err != nil {
		return paths, fmt.Errorf("failed to write %s: %w", HTMLFile, err)
	}

	return append(paths, htmlPath), nil
}
