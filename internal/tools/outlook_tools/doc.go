// Package outlook_tools registers the MCP tools for browsing an Outlook
// mailbox: folder listing, email search, calendar search, and full item
// reads. All tools return compact JSON and refer to items by short tokens
// from the reference cache so that results stay cheap to echo back.
package outlook_tools
