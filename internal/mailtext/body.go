package mailtext

import (
	"strings"
	"unicode/utf8"
)

// MaxBodyLength caps body text in tool responses at roughly 12k tokens.
const MaxBodyLength = 50_000

const truncationMarker = "\n\n[body truncated - use outlook_read_item with full_body=true to get the complete text]"

// BodyText picks the plain-text body when it has any content and otherwise
// falls back to stripping the HTML body. The result is trimmed.
func BodyText(plain, htmlBody string) string {
	body := plain
	if strings.TrimSpace(body) == "" && htmlBody != "" {
		body = StripHTML(htmlBody)
	}
	return strings.TrimSpace(body)
}

// Truncate cuts body off at MaxBodyLength and appends a marker telling the
// caller how to retrieve the full text. Bodies within the limit pass
// through unchanged. The cut backs up to a rune boundary so a multi-byte
// character is never split.
func Truncate(body string) string {
	if len(body) <= MaxBodyLength {
		return body
	}
	cut := MaxBodyLength
	for cut > 0 && !utf8.RuneStart(body[cut]) {
		cut--
	}
	return body[:cut] + truncationMarker
}
