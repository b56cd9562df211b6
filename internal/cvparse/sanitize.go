// Package cvparse cleans a language-model reply and validates it against the
// CV schema.
package cvparse

import "strings"

const fence = "```"

// StripCodeFence removes a markdown code fence wrapped around text, with or
// without a "json" tag. Text without a leading fence is only trimmed.
func StripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, fence) {
		return text
	}

	text = strings.TrimPrefix(text, fence)
	if len(text) >= 4 && strings.EqualFold(text[:4], "json") {
		text = text[4:]
	}
	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, fence)
	return strings.TrimSpace(text)
}
