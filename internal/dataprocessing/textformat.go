package dataprocessing

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// TextNormalizer applies the per-column text formatting rules.
// It is not safe for concurrent use.
type TextNormalizer struct {
	title cases.Caser
}

// NewTextNormalizer creates a text normalizer
func NewTextNormalizer() *TextNormalizer {
	return &TextNormalizer{title: cases.Title(language.Und)}
}

// TitleCase upper-cases the first letter of every word and lower-cases the rest.
// A word is a run of letters, so "whole-milk", "o'neil" and "Whole_Milk" become
// "Whole-Milk", "O'Neil" and "Whole_Milk". Applying it twice changes nothing.
func (n *TextNormalizer) TitleCase(s string) string {
	s = norm.NFC.String(s)

	var b strings.Builder
	b.Grow(len(s))

	start := -1
	flush := func(end int) {
		if start >= 0 {
			b.WriteString(n.title.String(s[start:end]))
			start = -1
		}
	}

	for i, r := range s {
		if unicode.IsLetter(r) || unicode.IsMark(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		flush(i)
		b.WriteRune(r)
	}
	flush(len(s))

	return b.String()
}

// Category returns the title-cased category
func (n *TextNormalizer) Category(s string) string {
	return n.TitleCase(s)
}

// StoreLocation returns the title-cased store location
func (n *TextNormalizer) StoreLocation(s string) string {
	return n.TitleCase(s)
}

// PaymentMethod removes every space character; case is kept
func (n *TextNormalizer) PaymentMethod(s string) string {
	return strings.ReplaceAll(norm.NFC.String(s), " ", "")
}

// Product title-cases and then replaces spaces with underscores
func (n *TextNormalizer) Product(s string) string {
	return strings.ReplaceAll(n.TitleCase(s), " ", "_")
}
