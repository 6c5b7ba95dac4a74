package library

import (
	"strings"

	"github.com/arcanaland/namecards/internal/card"
)

// SampleName is the file stem of the built-in set
const SampleName = "sample"

// Sample returns the built-in example cards
func Sample() []card.Card {
	names := []string{"Felix", "Aneka", "Bob", "Jack", "Molly", "Simba", "Bear", "Kitty", "Jasmine"}

	cards := make([]card.Card, 0, len(names))
	for _, name := range names {
		cards = append(cards, card.Card{
			Name:   name,
			Icon:   "https://api.dicebear.com/7.x/thumbs/svg?seed=" + name,
			Social: "@" + strings.ToLower(name),
		})
	}
	return cards
}
