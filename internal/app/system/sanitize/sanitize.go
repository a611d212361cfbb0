// Package sanitize strips markup from user-entered free text before it is
// stored. Profile bios and expertise labels are rendered back to other
// users, so they go through bluemonday's strict policy.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Text removes all HTML from s and trims surrounding whitespace.
func Text(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}

// TextSlice sanitizes each element in place and returns the slice.
func TextSlice(in []string) []string {
	for i, s := range in {
		in[i] = Text(s)
	}
	return in
}
