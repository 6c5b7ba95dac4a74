package card

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Card represents a single name card
type Card struct {
	Name   string `json:"name"`             // Display name, never blank
	Icon   string `json:"icon"`             // Image URL or opaque identifier, may be empty
	Social string `json:"social,omitempty"` // Optional handle shown under the name
}

// HasSocial reports whether the card carries a social handle
func (c Card) HasSocial() bool {
	return c.Social != ""
}

// ErrNotArray is returned when the input is valid JSON but not an array
var ErrNotArray = errors.New("JSON must be an array")

// ValidationError reports a schema problem with one element of the input.
// Index is 1-based so it can be shown to users as-is.
type ValidationError struct {
	Index int
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("element %d is missing %q", e.Index, e.Field)
}

// Parse decodes a JSON array of cards and validates every element.
// Blank input yields an empty list. Any failure returns no cards at all.
func Parse(input []byte) ([]Card, error) {
	if len(bytes.TrimSpace(input)) == 0 {
		return []Card{}, nil
	}

	var raw any
	if err := json.Unmarshal(input, &raw); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	items, ok := raw.([]any)
	if !ok {
		return nil, ErrNotArray
	}

	cards := make([]Card, 0, len(items))
	for i, item := range items {
		fields, _ := item.(map[string]any)

		name, ok := fields["name"].(string)
		if !ok || strings.TrimSpace(name) == "" {
			return nil, &ValidationError{Index: i + 1, Field: "name"}
		}

		icon, ok := fields["icon"].(string)
		if !ok {
			return nil, &ValidationError{Index: i + 1, Field: "icon"}
		}

		c := Card{Name: name, Icon: icon}
		if social, ok := fields["social"].(string); ok && strings.TrimSpace(social) != "" {
			c.Social = social
		}
		cards = append(cards, c)
	}

	return cards, nil
}

// MarshalIndent renders cards as a 2-space indented JSON array
func MarshalIndent(cards []Card) ([]byte, error) {
	if cards == nil {
		cards = []Card{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(cards); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
