package outlook

import (
	"context"
	"errors"
)

// Sentinel errors shared by Store implementations.
var (
	// ErrFolderNotFound means the requested store or folder did not match
	// anything in the mailbox.
	ErrFolderNotFound = errors.New("folder not found")

	// ErrItemNotFound means the entry ID did not resolve to an item.
	ErrItemNotFound = errors.New("item not found")
)

// Scope selects where a message search runs. An empty Folder means the
// default inbox; Store and Folder are case-insensitive partial matches,
// with Store defaulting to the primary mailbox.
type Scope struct {
	Store  string
	Folder string
}

// SearchOptions bound and order a message search. When MailOnly is set,
// rows whose message class is not a plain mail message (meeting requests,
// delivery reports) are dropped before the MaxResults cap is applied, so
// they never consume the result budget.
type SearchOptions struct {
	MaxResults    int
	EarliestFirst bool
	MailOnly      bool
}

// Store is the mailbox access layer the MCP tools run against. All filter
// and restriction strings use the DASL dialect produced by the dasl
// package.
type Store interface {
	// ListFolders enumerates all stores with their non-empty top-level
	// folders. Per-store failures land in StoreFolders.Error.
	ListFolders(ctx context.Context) ([]StoreFolders, error)

	// SearchMessages runs a table-based search over one folder, sorted by
	// sent time, returning at most opts.MaxResults summary rows.
	SearchMessages(ctx context.Context, scope Scope, filter string, opts SearchOptions) ([]MessageRow, error)

	// ExpandCalendar applies a restriction to the default calendar with
	// recurring events expanded into individual occurrences, ascending by
	// start time. The implementation must sort ascending and enable
	// recurrence expansion before restricting; any other order silently
	// drops recurring occurrences.
	ExpandCalendar(ctx context.Context, restriction string) ([]Occurrence, error)

	// GetItem loads the full item behind an entry ID.
	GetItem(ctx context.Context, entryID string) (*Item, error)
}
