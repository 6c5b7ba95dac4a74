package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	colorize "github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/arcanaland/namecards/internal/card"
	"github.com/arcanaland/namecards/internal/layout"
)

var showCmd = &cobra.Command{
	Use:   "show [set|file|-]",
	Short: "Display the pages of a card list in the terminal",
	Long: `Show prints each page as it will be printed: two columns of four cards,
with empty slots marked. Use --page to show a single page.

Examples:
  namecards show
  namecards show team --page 2`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		page, _ := cmd.Flags().GetInt("page")
		width, _ := cmd.Flags().GetInt("width")

		src, cards, err := loadCards(cmd, args)
		if err != nil {
			return err
		}

		if width <= 0 {
			width = terminalWidth()
		}

		pages := layout.Paginate(cards, layout.PageSize)
		if page > 0 {
			i := layout.ClampPage(page, len(cards)) - 1
			pages = pages[i : i+1]
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s %s (%d cards)\n",
			colorize.CyanString("Set:"), colorize.HiWhiteString("%s", src.Name), len(cards))
		for _, p := range pages {
			displayPage(out, p, layout.PageCount(len(cards)), width)
		}

		return nil
	},
}

func init() {
	RootCmd.AddCommand(showCmd)

	showCmd.Flags().IntP("page", "p", 0, "Show only this page")
	showCmd.Flags().Int("width", 0, "Output width (defaults to the terminal width)")
}

// terminalWidth returns the width of stdout, or 80 when it is not a terminal
func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 80
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// displayPage prints one page as a grid of cells
func displayPage(out io.Writer, p layout.Page, total, width int) {
	// two cells, three border columns
	cellWidth := (width - 3) / layout.Columns
	if cellWidth < 16 {
		cellWidth = 16
	}
	textWidth := cellWidth - 2

	border := "+" + strings.Repeat("-", cellWidth) + "+" + strings.Repeat("-", cellWidth) + "+"

	fmt.Fprintln(out)
	fmt.Fprintln(out, colorize.CyanString("Page %d/%d", p.Number, total))
	fmt.Fprintln(out, border)

	for row := 0; row < len(p.Slots); row += layout.Columns {
		var cells [][]string
		height := 0
		for col := 0; col < layout.Columns && row+col < len(p.Slots); col++ {
			lines := cellLines(p.Slots[row+col], textWidth)
			cells = append(cells, lines)
			height = max(height, len(lines))
		}

		for i := 0; i < height; i++ {
			fmt.Fprint(out, "|")
			for _, lines := range cells {
				line := ""
				if i < len(lines) {
					line = lines[i]
				}
				pad := textWidth - visibleWidth(line)
				if pad < 0 {
					pad = 0
				}
				fmt.Fprint(out, " "+line+strings.Repeat(" ", pad)+" |")
			}
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out, border)
	}
}

// cellLines returns the coloured text lines of one slot
func cellLines(s layout.Slot, width int) []string {
	if !s.Filled {
		return []string{colorize.HiBlackString("·"), "", ""}
	}

	var lines []string
	for _, l := range wrapText(s.Card.Name, width) {
		lines = append(lines, colorize.HiWhiteString("%s", l))
	}
	if s.Card.HasSocial() {
		lines = append(lines, colorize.HiBlackString("%s", truncate(s.Card.Social, width)))
	} else {
		lines = append(lines, "")
	}
	lines = append(lines, iconLine(s.Card, width))
	return lines
}

func iconLine(c card.Card, width int) string {
	if c.Icon == "" {
		return colorize.YellowString("(no icon)")
	}
	return truncate(c.Icon, width)
}

// wrapText wraps text to a specified width
func wrapText(text string, width int) []string {
	var result []string
	var currentLine string
	words := strings.Fields(text)

	if len(words) == 0 {
		return []string{""}
	}

	for _, word := range words {
		word = truncate(word, width)
		if currentLine == "" {
			currentLine = word
		} else if runewidth.StringWidth(currentLine)+1+runewidth.StringWidth(word) <= width {
			currentLine += " " + word
		} else {
			result = append(result, currentLine)
			currentLine = word
		}
	}

	if currentLine != "" {
		result = append(result, currentLine)
	}

	return result
}

// truncate shortens s to width terminal columns, marking the cut with an
// ellipsis
func truncate(s string, width int) string {
	return runewidth.Truncate(s, width, "…")
}

// visibleWidth measures the terminal columns of s, skipping ANSI escape
// sequences. Wide characters such as CJK take two columns.
func visibleWidth(s string) int {
	var b strings.Builder
	inEscape := false
	for _, c := range s {
		if inEscape {
			if c == 'm' {
				inEscape = false
			}
		} else if c == '\033' {
			inEscape = true
		} else {
			b.WriteRune(c)
		}
	}
	return runewidth.StringWidth(b.String())
}
