package util

import (
	"regexp"
	"strings"
)

var codeFencePattern = regexp.MustCompile("```(?:json)?\\n?")

// StripCodeFence removes Markdown code-fence markers (``` and ```json, with
// the newline that follows an opening fence) anywhere in s and trims
// surrounding whitespace. Unfenced input is only trimmed.
func StripCodeFence(s string) string {
	return strings.TrimSpace(codeFencePattern.ReplaceAllString(s, ""))
}
