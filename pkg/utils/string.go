// Package utils provides common utility functions.
package utils

import "strings"

// SplitList splits a comma-separated cell, trims each item and drops empty ones.
func SplitList(str string) []string {
	var items []string

	for _, part := range strings.Split(str, ",") {
		if item := strings.TrimSpace(part); item != "" {
			items = append(items, item)
		}
	}

	return items
}

// NormalizeWhitespace replaces multiple whitespace with single space.
func NormalizeWhitespace(str string) string {
	return strings.Join(strings.Fields(str), " ")
}

// fileNameReplacer maps characters that would escape or break a file name.
var fileNameReplacer = strings.NewReplacer(
	" ", "_",
	"/", "_",
	"\\", "_",
	"\x00", "",
)

// SanitizeFileName turns a product name into a file name stem: spaces become
// underscores, and so do path separators.
func SanitizeFileName(name string) string {
	stem := fileNameReplacer.Replace(name)
	if stem == "" || stem == "." || stem == ".." {
		return "_"
	}

	return stem
}

// TruncateString truncates string to max length.
func TruncateString(str string, maxLength int) string {
	if len([]rune(str)) <= maxLength {
		return str
	}

	return string([]rune(str)[:maxLength]) + "..."
}
