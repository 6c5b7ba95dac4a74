package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/namecards/internal/config"
	"github.com/arcanaland/namecards/internal/library"
)

// setCmd represents the set command group
var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Manage card sets in your library",
	Long:  `Commands for managing named card sets in your card set library.`,
}

// setListCmd represents the set ls command
var setListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List card sets in your library",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		libraryPath := config.GetLibraryPath()

		if _, err := os.Stat(libraryPath); os.IsNotExist(err) {
			fmt.Fprintf(out, "Card set library at %s does not exist.\n", libraryPath)
			fmt.Fprintln(out, "Run 'namecards set init' to create it.")
			return nil
		}

		defaultSet, err := config.GetDefaultSet()
		if err != nil {
			return fmt.Errorf("error getting default set: %w", err)
		}

		sets, err := library.List(libraryPath)
		if err != nil {
			return err
		}

		if len(sets) == 0 {
			fmt.Fprintln(out, "No card sets found in your library.")
			fmt.Fprintln(out, "You can add sets by copying JSON files to:", libraryPath)
			return nil
		}

		for _, s := range sets {
			if s.Name == defaultSet {
				fmt.Fprintf(out, "* %s (%d cards) %s\n", s.Name, len(s.Cards), colorize.GreenString("[DEFAULT]"))
			} else {
				fmt.Fprintf(out, "  %s (%d cards)\n", s.Name, len(s.Cards))
			}
		}

		return nil
	},
}

// setDefaultCmd represents the set set-default command
var setDefaultCmd = &cobra.Command{
	Use:   "set-default [set_name]",
	Short: "Set the default card set",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		setName := args[0]

		setPath, err := config.GetSetPath(setName)
		if err != nil {
			return err
		}

		// only sets that parse may become the default
		s, err := library.LoadSet(setPath)
		if err != nil {
			return fmt.Errorf("not a valid card set: %w", err)
		}

		if err := config.SetDefaultSet(s.Name); err != nil {
			return fmt.Errorf("error setting default set: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Default set set to: %s\n", s.Name)
		return nil
	},
}

// setInitCmd represents the set init command
var setInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the card set library",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		libraryPath := config.GetLibraryPath()

		samplePath, err := library.Init(libraryPath)
		if err != nil {
			return err
		}

		fmt.Fprintln(out, "Card set library initialized at:", libraryPath)
		fmt.Fprintln(out, "Sample set written to:", filepath.Base(samplePath))

		if _, err := config.LoadConfig(); err != nil {
			return fmt.Errorf("error initializing config: %w", err)
		}

		fmt.Fprintln(out, "Config file initialized at:", config.GetConfigFilePath())
		return nil
	},
}

func init() {
	RootCmd.AddCommand(setCmd)
	setCmd.AddCommand(setListCmd)
	setCmd.AddCommand(setDefaultCmd)
	setCmd.AddCommand(setInitCmd)
}
