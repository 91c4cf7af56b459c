// Package bridge implements outlook.Store against the HTTP JSON API of a
// local Outlook bridge process. The bridge runs next to Outlook, owns the
// MAPI session, and exposes folder listing, table search, recurrence-aware
// calendar expansion, and item retrieval; this package is a thin typed
// client over those endpoints.
package bridge
