// Package common provides shared utilities for MCP tool implementations.
// It contains the instrumentation wrapper applied to every tool handler
// and helpers for extracting the mailbox target from tool arguments.
package common
