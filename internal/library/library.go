package library

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tidwall/jsonc"

	"github.com/arcanaland/namecards/internal/card"
)

// Set is a named card list stored in the library
type Set struct {
	Name  string
	Path  string
	Cards []card.Card
}

// Extensions lists the file extensions recognised as card sets
var Extensions = []string{".json", ".jsonc"}

// Parse strips JSONC comments and trailing commas from data, then parses
// the result as a card list. Plain JSON passes through unchanged.
func Parse(data []byte) ([]card.Card, error) {
	return card.Parse(jsonc.ToJSON(data))
}

// LoadSet loads a card set from a file
func LoadSet(setPath string) (*Set, error) {
	data, err := os.ReadFile(setPath)
	if err != nil {
		return nil, fmt.Errorf("error reading card set: %w", err)
	}

	cards, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", setPath, err)
	}

	return &Set{
		Name:  setName(setPath),
		Path:  setPath,
		Cards: cards,
	}, nil
}

// List returns every loadable set in dir, sorted by name. Files that are
// not card sets are skipped.
func List(dir string) ([]*Set, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("error reading library: %w", err)
	}

	var sets []*Set
	for _, entry := range entries {
		if entry.IsDir() || !isSetFile(entry.Name()) {
			continue
		}

		s, err := LoadSet(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}
		sets = append(sets, s)
	}

	sort.Slice(sets, func(i, j int) bool {
		return sets[i].Name < sets[j].Name
	})

	return sets, nil
}

// Init creates the library directory and writes the sample set if it is
// not there yet. It returns the path of the sample set.
func Init(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating library: %w", err)
	}

	samplePath := filepath.Join(dir, SampleName+".json")
	if _, err := os.Stat(samplePath); err == nil {
		return samplePath, nil
	}

	data, err := card.MarshalIndent(Sample())
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(samplePath, append(data, '\n'), 0644); err != nil {
		return "", fmt.Errorf("error writing sample set: %w", err)
	}

	return samplePath, nil
}

func isSetFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

func setName(setPath string) string {
	base := filepath.Base(setPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
