package dasl

import (
	"fmt"
	"strings"
	"time"
)

// DASL property URNs for the httpmail schema namespace.
const (
	propDate            = `"urn:schemas:httpmail:date"`
	propSubject         = `"urn:schemas:httpmail:subject"`
	propTextDescription = `"urn:schemas:httpmail:textdescription"`
	propSenderName      = `"urn:schemas:httpmail:sendername"`
	propFromEmail       = `"urn:schemas:httpmail:fromemail"`
	propDisplayTo       = `"urn:schemas:httpmail:displayto"`
	propRead            = `"urn:schemas:httpmail:read"`
)

// dateLayout is the YYYY-MM-DD input format accepted from callers.
const dateLayout = "2006-01-02"

// storeTimeLayout is how the store expects timestamps inside filter
// literals. Bounds are always at midnight, so the minute field is fixed.
const storeTimeLayout = "01/02/2006 15:04"

// MailFilter holds the optional criteria of an email search. Zero-value
// fields emit no condition; IsRead is a pointer so that "unset" and "false"
// stay distinguishable.
type MailFilter struct {
	// Query is phrase-matched against subject or body.
	Query string

	// Sender matches the sender display name, or the sender address too
	// when it is a single word.
	Sender string

	// To matches every word against the "displayto" field.
	To string

	// DateFrom and DateTo are YYYY-MM-DD date bounds, both inclusive.
	DateFrom string
	DateTo   string

	// IsRead filters by read state when non-nil.
	IsRead *bool
}

// Compile renders the filter as a single @SQL= DASL expression with all
// conditions ANDed, or the empty string when no criteria are set (meaning
// "no filter", not a vacuous expression).
//
// Date semantics: DateFrom is an inclusive bound at local midnight; DateTo
// is an exclusive bound at midnight of the following day, so the end date
// itself is fully included. A DateTo without a DateFrom is rejected.
func (f MailFilter) Compile() (string, error) {
	if f.DateTo != "" && f.DateFrom == "" {
		return "", fmt.Errorf("date_from is required when date_to is specified")
	}

	var parts []string

	if f.DateFrom != "" {
		from, err := time.ParseInLocation(dateLayout, f.DateFrom, time.Local)
		if err != nil {
			return "", fmt.Errorf("invalid date_from %q: %w", f.DateFrom, err)
		}
		parts = append(parts, fmt.Sprintf("%s >= '%s'", propDate, from.Format(storeTimeLayout)))
	}
	if f.DateTo != "" {
		to, err := time.ParseInLocation(dateLayout, f.DateTo, time.Local)
		if err != nil {
			return "", fmt.Errorf("invalid date_to %q: %w", f.DateTo, err)
		}
		parts = append(parts, fmt.Sprintf("%s < '%s'", propDate, to.AddDate(0, 0, 1).Format(storeTimeLayout)))
	}

	if f.Query != "" {
		safe := escape(f.Query)
		parts = append(parts, fmt.Sprintf("(%s ci_phrasematch '%s' OR %s ci_phrasematch '%s')",
			propSubject, safe, propTextDescription, safe))
	}

	if f.Sender != "" {
		words := strings.Fields(escape(f.Sender))
		if len(words) == 1 {
			parts = append(parts, fmt.Sprintf("(%s LIKE '%%%s%%' OR %s LIKE '%%%s%%')",
				propSenderName, words[0], propFromEmail, words[0]))
		} else {
			// Multi-word senders are display names; require every word in
			// the name and skip the address check.
			wordParts := make([]string, len(words))
			for i, w := range words {
				wordParts[i] = fmt.Sprintf("%s LIKE '%%%s%%'", propSenderName, w)
			}
			parts = append(parts, "("+strings.Join(wordParts, " AND ")+")")
		}
	}

	if f.To != "" {
		words := strings.Fields(escape(f.To))
		wordParts := make([]string, len(words))
		for i, w := range words {
			wordParts[i] = fmt.Sprintf("%s LIKE '%%%s%%'", propDisplayTo, w)
		}
		parts = append(parts, "("+strings.Join(wordParts, " AND ")+")")
	}

	if f.IsRead != nil {
		flag := 0
		if *f.IsRead {
			flag = 1
		}
		parts = append(parts, fmt.Sprintf("%s = %d", propRead, flag))
	}

	if len(parts) == 0 {
		return "", nil
	}
	return "@SQL=" + strings.Join(parts, " AND "), nil
}

// escape doubles single quotes so literals embed safely in DASL strings.
func escape(v string) string {
	return strings.ReplaceAll(v, "'", "''")
}
