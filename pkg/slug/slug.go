// Copyright (c) 2026 CodeJourney. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug folds arbitrary Unicode text into comparable ASCII forms.
//
// # Usage
//
// Post titles are written in Spanish and English alike; searching "cafe" must
// find "Café". [Fold] produces the comparison key, [From] a URL-safe slug for
// display ("mi-primer-post").
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// nonAlphanumeric matches any sequence of non-alphanumeric, non-hyphen characters.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9-]+`)
	// multiHyphen collapses multiple consecutive hyphens into one.
	multiHyphen = regexp.MustCompile(`-{2,}`)
	// multiSpace collapses runs of whitespace.
	multiSpace = regexp.MustCompile(`\s+`)
)

// Fold lowercases s, strips accents, and collapses whitespace.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	result, _, _ := transform.String(t, s)
	result = strings.ToLower(result)
	result = multiSpace.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}

// Contains reports whether needle occurs in haystack, ignoring case and accents.
// An empty needle matches everything.
func Contains(haystack, needle string) bool {
	return strings.Contains(Fold(haystack), Fold(needle))
}

// From converts an arbitrary Unicode string into a URL-safe ASCII slug.
//
// # Transformation Pipeline
//
// 1. Folds case and accents (see [Fold]).
// 2. Replaces non-alphanumeric characters with hyphens.
// 3. Collapses multiple hyphens and trims leading/trailing hyphens.
func From(s string) string {
	result := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '-'
	}, Fold(s))

	result = nonAlphanumeric.ReplaceAllString(result, "-")
	result = multiHyphen.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}

// isMn reports whether r is a Unicode non-spacing mark (e.g., accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
