package matcher

import (
	"strings"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize folds an utterance into the form every tier matches against:
// NFKC, lower case, single spaces, no surrounding blanks.
func Normalize(s string) string {
	return strings.ToLower(fold(s))
}

// fold applies NFKC and collapses whitespace but keeps the original casing,
// so arguments can be cut out of it.
func fold(s string) string {
	result, _, err := transform.String(norm.NFKC, s)
	if err != nil {
		result = s
	}
	return strings.Join(strings.Fields(result), " ")
}
