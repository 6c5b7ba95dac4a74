package cmd

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/arcanaland/namecards/internal/card"
	"github.com/arcanaland/namecards/internal/config"
	"github.com/arcanaland/namecards/internal/token"
)

// clipboardWriteAll is a package-level variable to allow mocking in tests.
var clipboardWriteAll = clipboard.WriteAll

var shareCmd = &cobra.Command{
	Use:   "share [set|file|-]",
	Short: "Print a share link for a card list",
	Long: `Share packs the cards into a short token and prints a link that opens the
card list in the web editor. The link points at base_url from the config file
unless --base-url is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		baseURL, _ := cmd.Flags().GetString("base-url")
		tokenOnly, _ := cmd.Flags().GetBool("token")
		copyOut, _ := cmd.Flags().GetBool("copy")

		_, cards, err := loadCards(cmd, args)
		if err != nil {
			return err
		}
		if len(cards) == 0 {
			return errors.New("no cards to share")
		}

		out := token.Encode(cards)
		if !tokenOnly {
			if baseURL == "" {
				cfg, err := config.LoadConfig()
				if err != nil {
					return err
				}
				baseURL = cfg.BaseURL
			}
			out, err = token.ShareURL(baseURL, cards)
			if err != nil {
				return err
			}
		}

		fmt.Fprintln(cmd.OutOrStdout(), out)

		if copyOut {
			if err := clipboardWriteAll(out); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: could not copy to clipboard: %v\n", err)
			} else {
				fmt.Fprintln(cmd.ErrOrStderr(), "Copied to clipboard.")
			}
		}

		return nil
	},
}

var decodeCmd = &cobra.Command{
	Use:   "decode [token|url]",
	Short: "Print the cards carried by a share token or link",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cards, err := token.FromURL(args[0])
		if err != nil {
			return fmt.Errorf("error decoding: %w", err)
		}

		data, err := card.MarshalIndent(cards)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(shareCmd)
	RootCmd.AddCommand(decodeCmd)

	shareCmd.Flags().String("base-url", "", "Address the share link points at")
	shareCmd.Flags().Bool("token", false, "Print only the token")
	shareCmd.Flags().BoolP("copy", "c", false, "Copy the result to the clipboard")
}
