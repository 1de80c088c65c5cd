package action

import (
	"VaniAssistant/pkg/utils"
	"regexp"
	"strings"
)

var (
	sentenceEnd = regexp.MustCompile(`([.!?।])\s+`)
	whitespace  = regexp.MustCompile(`\s+`)
)

// Summarize keeps the first n sentences of text, capped at max runes.
func Summarize(text string, n, max int) string {
	text = strings.TrimSpace(whitespace.ReplaceAllString(text, " "))
	if text == "" {
		return ""
	}

	marked := sentenceEnd.ReplaceAllString(text, "$1\x00")
	sentences := strings.Split(marked, "\x00")
	if len(sentences) > n {
		sentences = sentences[:n]
	}

	return utils.Truncate(strings.Join(sentences, " "), max)
}
