// Package refcache maps opaque Outlook entry IDs and long URLs to short,
// human-typable base36 tokens.
//
// Entry IDs from the store are long, opaque and not safe to echo back to an
// AI caller verbatim. The cache assigns each reference a deterministic
// 4-character base36 token (derived from a truncated SHA-256 digest) and
// keeps a bounded, recency-ordered table so tokens from recent searches can
// be redeemed later. Token collisions are disambiguated with a numeric
// suffix; capacity overflow evicts the oldest half of the table in one step.
//
// The cache is a process-lifetime service object shared by all requests and
// guarded by a single mutex. It is created once at startup and passed
// explicitly to everything that needs it.
package refcache
