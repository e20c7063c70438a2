// Package textutil holds small string helpers shared across the pipeline.
package textutil

import "unicode/utf8"

// Truncate cuts s to at most n runes. Counting runes instead of bytes keeps
// multi-byte characters like emoji and accents intact.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
