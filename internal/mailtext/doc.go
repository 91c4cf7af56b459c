// Package mailtext prepares message and appointment bodies for tool
// responses: HTML-to-text conversion for items without a plain body, and
// length capping so a single oversized email cannot flood a result.
package mailtext
