package jsonld

import "time"

const (
	sourceDateLayout = "1/2/2006"
	isoDateLayout    = "2006-01-02"
)

// NormalizeDate converts an MM/DD/YYYY date to YYYY-MM-DD.
// Anything that does not parse is returned unchanged.
func NormalizeDate(s string) string {
	t, err := time.Parse(sourceDateLayout, s)
	if err != nil {
		return s
	}

	return t.Format(isoDateLayout)
}
