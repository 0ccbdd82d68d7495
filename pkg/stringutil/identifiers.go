// Package stringutil provides identifier and path normalization helpers.
package stringutil

import (
	"strings"
	"unicode"

	"github.com/iancoleman/strcase"
)

// NormalizeDocumentName removes the .md extension from markdown document
// names. This standardizes document identifiers regardless of whether the
// user passed a bare name or a filename.
//
// This function performs normalization only - it assumes the input is already
// a valid identifier and does NOT perform character validation or sanitization.
//
// Examples:
//
//	NormalizeDocumentName("glossary-intake")     // returns "glossary-intake"
//	NormalizeDocumentName("glossary-intake.md")  // returns "glossary-intake"
//	NormalizeDocumentName("my.glossary.md")      // returns "my.glossary"
func NormalizeDocumentName(name string) string {
	return strings.TrimSuffix(name, ".md")
}

// IsMarkdownFile returns true if the file path is a markdown document.
//
// Examples:
//
//	IsMarkdownFile("terms.md")        // returns true
//	IsMarkdownFile("docs/terms.md")   // returns true
//	IsMarkdownFile("terms.yml")       // returns false
func IsMarkdownFile(path string) bool {
	return strings.HasSuffix(path, ".md")
}

// CollapseWhitespace trims a string and folds internal runs of whitespace
// (including newlines from wrapped markdown body text) into single spaces.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Truncate shortens s to at most max runes, appending "..." when truncation
// occurs. A max of 3 or less returns the bare prefix.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

// IsBlankValue reports whether an attribute value extracted from a markdown
// section should be treated as unset. The literal placeholder "<blank>" is
// how templates mark intentionally empty fields.
func IsBlankValue(s string) bool {
	trimmed := strings.TrimSpace(s)
	return trimmed == "" || strings.EqualFold(trimmed, "<blank>")
}

// TitleCamelWords renders a camelCase identifier as spaced title words, for
// property keys shown to users: "displayName" becomes "Display Name".
func TitleCamelWords(s string) string {
	return TitleWords(strcase.ToDelimited(s, ' '))
}

// TitleWords capitalizes the first letter of each whitespace-separated word.
// Used when echoing object type names back in rendered markdown headings.
func TitleWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
