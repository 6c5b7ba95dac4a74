package cmd

import (
	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "namecards",
	Short: "Tool for laying out and sharing printable name cards",
	Long: `Namecards turns a JSON list of name cards into print-ready A4 sheets of
eight cards each, and packs a card list into a short token for share links.

Cards are read from a file, from stdin ("-"), or from a named set in your
card set library (XDG_DATA_HOME/namecards/sets).`,
	SilenceUsage: true,
}

func init() {
	RootCmd.AddCommand(validateCmd)
}

// Execute runs the root command with the process arguments.
func Execute() error {
	return RootCmd.Execute()
}
