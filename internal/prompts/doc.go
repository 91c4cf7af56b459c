// Package prompts registers canned mailbox workflows as MCP prompts:
// weekly summaries, daily agendas, meeting prep, unanswered email triage,
// and annual review preparation. Each prompt expands to an instruction
// that drives the outlook_* tools.
package prompts
