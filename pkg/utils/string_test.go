package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"Single", "Best Gummy 2024", []string{"Best Gummy 2024"}},
		{"Trimmed", " A ,B,  C ", []string{"A", "B", "C"}},
		{"Empty tokens dropped", "A,,B,", []string{"A", "B"}},
		{"Blank", "   ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitList(tt.in))
		})
	}
}

func TestSanitizeFileName(t *testing.T) {
	tests := map[string]string{
		"Gummy A":          "Gummy_A",
		"Kids  Multi":      "Kids__Multi",
		"a/b\\c":           "a_b_c",
		"..":               "_",
		"":                 "_",
		"Zoracel Gummies™": "Zoracel_Gummies™",
	}

	for in, want := range tests {
		assert.Equal(t, want, SanitizeFileName(in), "input %q", in)
	}
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "abc", TruncateString("abc", 5))
	assert.Equal(t, "ab...", TruncateString("abcdef", 2))
	assert.Equal(t, "消防...", TruncateString("消防處", 2))
}

func TestNormalizeWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", NormalizeWhitespace("  a \t b\n c "))
}
