package refcache

import (
	"fmt"
	"regexp"
	"strings"
)

// URLLengthThreshold is the longest URL that is passed through unshortened.
const URLLengthThreshold = 80

// urlPattern matches http(s) URLs up to the next whitespace. Trailing
// punctuation is trimmed afterwards; the pattern itself stays greedy so the
// whole run is considered before trimming.
var urlPattern = regexp.MustCompile(`https?://\S+`)

// trailingPunctuation lists characters that commonly follow a URL in prose
// but are unlikely to be part of it.
const trailingPunctuation = `).,;:!?'"`

// ShortenURLs replaces URLs longer than URLLengthThreshold with [url:TOKEN]
// placeholders, caching the original URL under the token. Short URLs and any
// trailing punctuation are preserved verbatim. This is the one path by which
// literal URLs enter the cache as native references; Resolve hands them back
// as-is and IsURL lets callers detect them.
func (c *Cache) ShortenURLs(text string) string {
	return urlPattern.ReplaceAllStringFunc(text, func(match string) string {
		url := strings.TrimRight(match, trailingPunctuation)
		if len(url) <= URLLengthThreshold {
			return match
		}

		token, err := c.Assign(url)
		if err != nil {
			// Token space exhausted for this digest; leave the URL alone.
			return match
		}
		trailing := match[len(url):]
		return fmt.Sprintf("[url:%s]%s", token, trailing)
	})
}

// IsURL reports whether a resolved reference is a literal URL rather than a
// store entry ID.
func IsURL(ref string) bool {
	return strings.HasPrefix(ref, "https://") || strings.HasPrefix(ref, "http://")
}
