package layout

import (
	"github.com/arcanaland/namecards/internal/card"
)

const (
	// Columns and Rows describe the fixed card grid of one A4 sheet
	Columns = 2
	Rows    = 4

	// PageSize is the number of card slots on one page
	PageSize = Columns * Rows
)

// Slot is one position on a page: either a card or an empty placeholder
type Slot struct {
	Card   card.Card
	Filled bool
}

// Page is one printed sheet
type Page struct {
	Number int // 1-based
	Slots  []Slot
}

// Cards returns the cards placed on the page, in order
func (p Page) Cards() []card.Card {
	var cards []card.Card
	for _, s := range p.Slots {
		if s.Filled {
			cards = append(cards, s.Card)
		}
	}
	return cards
}

// Paginate splits cards into pages of size slots, keeping list order. The
// last page is padded with placeholders, and an empty list still yields one
// blank page. A size of zero or less means PageSize.
func Paginate(cards []card.Card, size int) []Page {
	if size <= 0 {
		size = PageSize
	}

	count := pageCount(len(cards), size)
	pages := make([]Page, count)
	for i := range pages {
		pages[i] = Page{Number: i + 1, Slots: make([]Slot, size)}
		for j := 0; j < size; j++ {
			k := i*size + j
			if k < len(cards) {
				pages[i].Slots[j] = Slot{Card: cards[k], Filled: true}
			}
		}
	}

	return pages
}

// PageCount returns how many PageSize pages n cards occupy
func PageCount(n int) int {
	return pageCount(n, PageSize)
}

func pageCount(n, size int) int {
	if n <= 0 {
		return 1
	}
	return (n + size - 1) / size
}

// ClampPage pulls a requested 1-based page number into the valid range
// for n cards
func ClampPage(page, n int) int {
	if page < 1 {
		return 1
	}
	if total := PageCount(n); page > total {
		return total
	}
	return page
}
