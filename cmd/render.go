package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/arcanaland/namecards/internal/card"
	"github.com/arcanaland/namecards/internal/config"
	"github.com/arcanaland/namecards/internal/icon"
	"github.com/arcanaland/namecards/internal/layout"
	"github.com/arcanaland/namecards/internal/token"
)

// createOutput is a package-level variable to allow mocking in tests.
var createOutput = func(path string) (io.WriteCloser, error) {
	return os.Create(path)
}

var renderCmd = &cobra.Command{
	Use:   "render [set|file|-]",
	Short: "Render cards as a printable HTML document",
	Long: `Render lays the cards out on A4 pages of eight (two columns, four rows)
and writes an HTML document. By default every page is written, separated by
page breaks, ready for the browser's print dialog. With --page only that page
is written, as a screen preview.

Examples:
  namecards render team.json -o team.html
  namecards render --page 2 team
  namecards render --data "$(namecards share --token team)"
  cat team.json | namecards render - --inline-icons`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		page, _ := cmd.Flags().GetInt("page")
		outPath, _ := cmd.Flags().GetString("out")
		data, _ := cmd.Flags().GetString("data")
		title, _ := cmd.Flags().GetString("title")
		autoPrint, _ := cmd.Flags().GetBool("auto-print")
		inline, _ := cmd.Flags().GetBool("inline-icons")

		var cards []card.Card
		baseDir := "."
		if data != "" {
			decoded, err := token.FromURL(data)
			if err != nil {
				return fmt.Errorf("error decoding share data: %w", err)
			}
			cards = decoded
		} else {
			src, loaded, err := loadCards(cmd, args)
			if err != nil {
				return err
			}
			cards = loaded
			baseDir = src.Dir
		}

		renderer := &layout.Renderer{Title: title, AutoPrint: autoPrint}

		if inline {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			icons, errs := icon.Inline(cards, baseDir, cfg.IconSize)
			for _, err := range errs {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
			}
			renderer.Inline = icons
		}

		write := func(w io.Writer) error {
			if page > 0 {
				return renderer.Preview(w, cards, page)
			}
			return renderer.Print(w, cards)
		}

		if outPath == "" {
			return write(cmd.OutOrStdout())
		}

		file, err := createOutput(outPath)
		if err != nil {
			return fmt.Errorf("error creating output file: %w", err)
		}
		if err := write(file); err != nil {
			_ = file.Close()
			return err
		}
		if err := file.Close(); err != nil {
			return fmt.Errorf("error writing output file: %w", err)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(renderCmd)

	renderCmd.Flags().IntP("page", "p", 0, "Render only this page as a screen preview")
	renderCmd.Flags().StringP("out", "o", "", "Write the document to a file instead of stdout")
	renderCmd.Flags().String("data", "", "Render cards from a share token or share URL")
	renderCmd.Flags().String("title", "", "Document title")
	renderCmd.Flags().Bool("auto-print", false, "Open the print dialog when the document loads")
	renderCmd.Flags().Bool("inline-icons", false, "Embed local icon files as data URIs")
}
