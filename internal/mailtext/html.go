package mailtext

import (
	"html"
	"regexp"
	"strings"
)

var (
	stylePattern      = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	scriptPattern     = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	lineBreakPattern  = regexp.MustCompile(`(?i)<br\s*/?>`)
	blockClosePattern = regexp.MustCompile(`(?i)</(p|div|tr|li|h[1-6])>`)
	tagPattern        = regexp.MustCompile(`<[^>]+>`)
	blankRunPattern   = regexp.MustCompile(`\n{3,}`)
)

// StripHTML converts an HTML body to plain text. It drops style and script
// blocks entirely, turns line breaks and block-element closers into
// newlines, removes the remaining tags, decodes entities, and collapses
// runs of blank lines.
func StripHTML(s string) string {
	if s == "" {
		return ""
	}
	text := stylePattern.ReplaceAllString(s, "")
	text = scriptPattern.ReplaceAllString(text, "")
	text = lineBreakPattern.ReplaceAllString(text, "\n")
	text = blockClosePattern.ReplaceAllString(text, "\n")
	text = tagPattern.ReplaceAllString(text, "")
	text = html.UnescapeString(text)
	text = blankRunPattern.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
