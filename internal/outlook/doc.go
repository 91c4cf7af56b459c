// Package outlook defines the data model and store abstraction for a local
// Outlook mailbox: message and appointment rows, full items with their MAPI
// message class, response and busy status codes, and the Store interface
// the MCP tools run against. The HTTP implementation lives in the bridge
// subpackage.
package outlook
