package report

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// minColumnWidth is the narrowest column, so separators keep three dashes.
const minColumnWidth = 3

var cellEscaper = strings.NewReplacer("|", `\|`, "\r", " ", "\n", " ")

// escapeCell makes text safe to place inside a markdown table cell.
func escapeCell(s string) string {
	return strings.TrimSpace(cellEscaper.Replace(s))
}

// renderTable renders a markdown table whose columns are padded to the
// display width of their widest cell, so CJK and other wide runes line up.
func renderTable(header []string, rows [][]string) []string {
	colCount := len(header)
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}

	widths := make([]int, colCount)
	measure := func(row []string) {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	measure(header)

	for _, row := range rows {
		measure(row)
	}

	for i := range widths {
		widths[i] = max(widths[i], minColumnWidth)
	}

	lines := make([]string, 0, len(rows)+2)
	lines = append(lines, renderRow(header, widths))

	separator := make([]string, colCount)
	for i, w := range widths {
		separator[i] = strings.Repeat("-", w)
	}

	lines = append(lines, renderRow(separator, widths))

	for _, row := range rows {
		lines = append(lines, renderRow(row, widths))
	}

	return lines
}

func renderRow(cells []string, widths []int) string {
	var sb strings.Builder

	sb.WriteString("|")

	for i, w := range widths {
		content := ""
		if i < len(cells) {
			content = cells[i]
		}

		sb.WriteString(" ")
		sb.WriteString(content)

		if padding := w - runewidth.StringWidth(content); padding > 0 {
			sb.WriteString(strings.Repeat(" ", padding))
		}

		sb.WriteString(" |")
	}

	return sb.String()
}
