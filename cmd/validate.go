package cmd

import (
	"fmt"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/tidwall/jsonc"

	"github.com/arcanaland/namecards/internal/layout"
	"github.com/arcanaland/namecards/internal/validator"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [set|file|-]",
	Short: "Validate a card list",
	Long: `Validate checks that a card list is a JSON array in which every element
has a non-empty "name" and a string "icon". It also warns about fields that
will not survive a share link, such as names containing "|" or line breaks.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := readSource(cmd, args)
		if err != nil {
			return err
		}

		v := validator.NewValidator(jsonc.ToJSON(src.Data))
		results := v.Validate()

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Validation Results:")
		fmt.Fprintln(out, "-------------------")

		if results.Valid() {
			fmt.Fprintf(out, "%s '%s' is valid: %d cards on %d pages.\n",
				colorize.GreenString("✅"), src.Name, len(results.Cards), layout.PageCount(len(results.Cards)))
		} else {
			fmt.Fprintf(out, "%s '%s' has %d validation errors:\n",
				colorize.RedString("❌"), src.Name, len(results.Errors))
			for i, err := range results.Errors {
				fmt.Fprintf(out, "%d. %s\n", i+1, err)
			}
			return fmt.Errorf("validation failed")
		}

		if len(results.Warnings) > 0 {
			fmt.Fprintln(out, "\n"+colorize.YellowString("Warnings:"))
			for i, warn := range results.Warnings {
				fmt.Fprintf(out, "%d. %s\n", i+1, warn)
			}
		}

		return nil
	},
}
