package outlook

import (
	"fmt"
	"strings"
)

// isExchangeDN reports whether an address is an Exchange distinguished
// name rather than an SMTP address.
func isExchangeDN(addr string) bool {
	upper := strings.ToUpper(addr)
	return strings.HasPrefix(upper, "/O=") || strings.Contains(upper, "/CN=")
}

// FormatRowSender formats a search-row sender as "Name <email>" without
// attempting Exchange DN resolution; DN addresses fall back to the bare
// display name. The cheap path for listings.
func FormatRowSender(name, email string) string {
	if email != "" && !strings.HasPrefix(strings.ToUpper(email), "/O=") && email != name {
		return fmt.Sprintf("%s <%s>", name, email)
	}
	return name
}

// FormatSender formats a full item's sender as "Name <email>". Exchange
// DN addresses are replaced by the resolved SMTP address when the store
// supplied one, otherwise only the display name is returned.
func FormatSender(item *Item) string {
	name := item.SenderName
	email := item.SenderEmail

	if isExchangeDN(email) {
		if item.SenderSMTP == "" {
			return name
		}
		email = item.SenderSMTP
	}

	if email != "" && email != name {
		return fmt.Sprintf("%s <%s>", name, email)
	}
	return name
}
