// Package textstat measures prompt and checkpoint bodies for display: length,
// a rough token estimate and the markdown heading outline.
package textstat

import (
	"math"
	"strings"
	"unicode/utf8"
)

// Stats describes a body.
type Stats struct {
	Chars          int       `json:"chars" yaml:"chars"`
	TokensEstimate int       `json:"tokens_estimate" yaml:"tokens_estimate"`
	Outline        []Heading `json:"outline,omitempty" yaml:"outline,omitempty"`
}

// Describe returns the Stats of text.
func Describe(text string) Stats {
	return Stats{
		Chars:          CountChars(text),
		TokensEstimate: EstimateTokens(text),
		Outline:        Outline(text),
	}
}

// CountChars returns the character count as runes (not bytes).
func CountChars(text string) int {
	return utf8.RuneCountInString(text)
}

// EstimateTokens estimates token count as 1.3x the word count, rounded up.
func EstimateTokens(text string) int {
	words := strings.Fields(text)
	return int(math.Ceil(float64(len(words)) * 1.3))
}
