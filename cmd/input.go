package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arcanaland/namecards/internal/card"
	"github.com/arcanaland/namecards/internal/config"
	"github.com/arcanaland/namecards/internal/library"
)

// source is the raw card input named on the command line
type source struct {
	Name string
	Dir  string // directory relative icon paths are resolved against
	Data []byte
}

// readSource reads the card input selected by args: "-" for stdin, a set
// name or file path, or the default set when no argument is given. The
// built-in sample set is used when the default set was never written to
// the library.
func readSource(cmd *cobra.Command, args []string) (*source, error) {
	if len(args) > 0 && args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("error reading stdin: %w", err)
		}
		return &source{Name: "stdin", Dir: ".", Data: data}, nil
	}

	var setName string
	if len(args) > 0 {
		setName = args[0]
	} else {
		defaultSet, err := config.GetDefaultSet()
		if err != nil {
			return nil, fmt.Errorf("error getting default set: %w", err)
		}
		setName = defaultSet
	}

	setPath, err := config.GetSetPath(setName)
	if err != nil {
		if setName == library.SampleName {
			data, err := card.MarshalIndent(library.Sample())
			if err != nil {
				return nil, err
			}
			return &source{Name: library.SampleName, Dir: ".", Data: data}, nil
		}
		return nil, err
	}

	data, err := os.ReadFile(setPath)
	if err != nil {
		return nil, fmt.Errorf("error reading card set: %w", err)
	}

	return &source{Name: setName, Dir: filepath.Dir(setPath), Data: data}, nil
}

// loadCards reads and parses the card input selected by args
func loadCards(cmd *cobra.Command, args []string) (*source, []card.Card, error) {
	src, err := readSource(cmd, args)
	if err != nil {
		return nil, nil, err
	}

	cards, err := library.Parse(src.Data)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", src.Name, err)
	}

	return src, cards, nil
}
