package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the mailscope application
var rootCmd = &cobra.Command{
	Use:   "mailscope",
	Short: "MCP server that exposes a local Outlook mailbox to AI assistants",
	Long: `mailscope is a Model Context Protocol (MCP) server that gives AI
assistants read access to a local Microsoft Outlook profile.

It connects to the Outlook bridge sidecar over HTTP and exposes tools
for listing mail stores, searching email and calendar items, and
reading individual items by short reference tokens.`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "mailscope version %s\n" .Version}}`)

	// If no subcommand is provided, run the serve command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())
}
