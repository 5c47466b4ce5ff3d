// Package format holds the small string formatters shared by the grid,
// detail screen and CLI output.
package format

import "time"

// ShortHashLen is the number of leading characters kept by ShortHash.
const ShortHashLen = 7

// DefaultDateLayout is used when Date is called with an empty layout.
const DefaultDateLayout = "2006-01-02"

// ShortHash returns the first seven bytes of hash. Shorter input, including
// the empty string, is returned unchanged.
func ShortHash(hash string) string {
	if len(hash) <= ShortHashLen {
		return hash
	}
	return hash[:ShortHashLen]
}

// Date formats t with layout, returning "" for the zero time.
func Date(t time.Time, layout string) string {
	if t.IsZero() {
		return ""
	}
	if layout == "" {
		layout = DefaultDateLayout
	}
	return t.Format(layout)
}
