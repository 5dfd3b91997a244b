// Package naming converts raw directory names into snake_case
// identifier fragments for the destination tree.
//
// Normalization is applied to destination names only. Source paths are
// always kept exactly as found on disk, so the mapping back to the
// origin tree is never lost.
package naming

import (
	"regexp"
	"strings"
)

// Compiled once at init. The three patterns implement the normalization
// pipeline in Normalize, in application order.
var (
	whitespaceRuns = regexp.MustCompile(`\s+`)
	hyphenRuns     = regexp.MustCompile(`-+`)
	nonWordChars   = regexp.MustCompile(`[^\p{L}\p{N}_]`)
)

// Normalize converts an arbitrary directory name into a snake_case name
// usable as an identifier fragment:
//
//  1. Commas are removed.
//  2. Each run of whitespace becomes a single underscore.
//  3. Each run of hyphens becomes a single underscore.
//  4. Every remaining non-word character is stripped.
//  5. The result is lowercased.
//
// Normalize is total and pure: any input string, including the empty
// string, produces a result without error, and the function is
// idempotent ("already_snake" maps to itself).
func Normalize(name string) string {
	s := strings.ReplaceAll(name, ",", "")
	s = whitespaceRuns.ReplaceAllString(s, "_")
	s = hyphenRuns.ReplaceAllString(s, "_")
	s = nonWordChars.ReplaceAllString(s, "")
	return strings.ToLower(s)
}
