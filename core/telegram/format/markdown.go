// Package format holds small text formatting helpers for outgoing messages.
package format

import "strings"

const (
	mdV1Specials = "_*`["
	mdV2Specials = "_*[]()~`>#+-=|{}.!"
)

// EscapeMarkdown escapes Telegram Markdown (v1) special characters in user
// supplied text so it can be embedded into formatted messages.
func EscapeMarkdown(text string) string {
	return escape(text, mdV1Specials)
}

// EscapeMarkdownV2 escapes the full MarkdownV2 special character set.
func EscapeMarkdownV2(text string) string {
	return escape(text, mdV2Specials)
}

func escape(text, specials string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r < 128 && strings.ContainsRune(specials, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
