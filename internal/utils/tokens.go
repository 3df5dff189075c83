package utils

import (
	"strings"
	"unicode"
)

// Word-count token heuristics.
// Rule of thumb: 1 token ≈ 0.75 words, i.e. 1.33 tokens per word. This is not a tokenizer.

// TokensPerWord is the multiplier applied to word counts.
const TokensPerWord = 1.33

// tokensPerHundredWords keeps the rounding in integer arithmetic.
const tokensPerHundredWords = 133

// CountWords returns the number of whitespace-delimited tokens in text. A byte order
// mark counts as whitespace.
func CountWords(text string) int {
	return len(strings.FieldsFunc(text, isWordSeparator))
}

func isWordSeparator(r rune) bool {
	return r == '\uFEFF' || unicode.IsSpace(r)
}

// CountLines returns the number of segments produced by splitting text on "\n".
// An empty string still counts as one line; displays downstream depend on it.
func CountLines(text string) int {
	return strings.Count(text, "\n") + 1
}

// EstimateTokens approximates the LLM token count of text from its word count.
func EstimateTokens(text string) int {
	return TokensForWords(CountWords(text))
}

// TokensForWords applies TokensPerWord, rounding up.
func TokensForWords(words int) int {
	if words <= 0 {
		return 0
	}
	return (words*tokensPerHundredWords + 99) / 100
}
