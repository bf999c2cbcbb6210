// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package relation builds and queries the psalm cross-reference relation.
// normalize.go canonicalizes free-form scripture references.
// Implements: prd002-relations (R1);
//
//	docs/ARCHITECTURE § Reference Grammar.
package relation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Reference canonicalization patterns (R1.1-R1.4).
var (
	// numericPrefixRe matches a leading digit run separated from the book
	// name by whitespace, as in "1 John 2".
	numericPrefixRe = regexp.MustCompile(`^(\d+)\s+([A-Za-z])`)

	// bookTokenRe matches the leading alphanumeric book token, including
	// any joined numeric prefix ("1John", "Psalms").
	bookTokenRe = regexp.MustCompile(`^[A-Za-z0-9]+`)

	// spaceRunRe collapses interior whitespace runs.
	spaceRunRe = regexp.MustCompile(`\s+`)

	// colonSpaceRe strips whitespace adjacent to the chapter:verse colon.
	colonSpaceRe = regexp.MustCompile(`\s*:\s*`)

	// grammarRe is the canonical grammar: book token, space, chapter digits.
	grammarRe = regexp.MustCompile(`^[A-Za-z0-9]+ \d+`)

	// psalmVerseRe captures the chapter of a Psalm reference so any verse
	// suffix can be discarded.
	psalmVerseRe = regexp.MustCompile(`^Psa\s*(\d+).*$`)
)

// FormatError reports a reference that does not conform to the
// "Book Chapter[:Verse]" grammar. Per prd002-relations R1.5.
type FormatError struct {
	// Input is the offending string after canonicalization steps ran.
	Input string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid reference %q: expected 'Book Chapter' or 'Book Chapter:Verse' (e.g. 'Psa 2' or '1Sa 2:1')", e.Input)
}

// Normalize turns a free-form scripture reference into its canonical form:
// a 3-character book token (numeric prefix joined, as in "1Jo"), a space,
// the chapter number, and an optional ":verse" suffix. Psalm references are
// tracked at chapter granularity, so their verse suffix is discarded.
// Normalize is idempotent over its own output (R1.6).
//
//	Normalize("1 john 2:3") == "1Jo 2:3"
//	Normalize("psa 23:1")   == "Psa 23"
//
// A *FormatError is returned when no chapter number follows the book token.
func Normalize(raw string) (string, error) {
	ref := strings.TrimSpace(titleCase(raw))

	// Join numeric book prefixes: "1 John 2" → "1John 2".
	ref = numericPrefixRe.ReplaceAllString(ref, "$1$2")

	// Truncate the book token to its first 3 characters.
	ref = bookTokenRe.ReplaceAllStringFunc(ref, func(tok string) string {
		if len(tok) > 3 {
			return tok[:3]
		}
		return tok
	})

	ref = spaceRunRe.ReplaceAllString(ref, " ")
	ref = colonSpaceRe.ReplaceAllString(ref, ":")

	if !grammarRe.MatchString(ref) {
		return "", &FormatError{Input: ref}
	}

	// Psalm relations exist only at chapter resolution.
	if strings.HasPrefix(ref, "Psa") {
		ref = psalmVerseRe.ReplaceAllString(ref, "Psa $1")
	}

	return ref, nil
}

// titleCase uppercases the first letter of every word and lowercases the
// rest, treating any non-letter as a word boundary ("1 john" → "1 John",
// "1john" → "1John").
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
		} else {
			b.WriteRune(r)
			prevLetter = false
		}
	}
	return b.String()
}
