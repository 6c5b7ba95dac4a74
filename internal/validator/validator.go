package validator

import (
	"fmt"
	"strings"

	"github.com/arcanaland/namecards/internal/card"
	"github.com/arcanaland/namecards/internal/token"
)

type ValidationResults struct {
	Cards    []card.Card
	Errors   []string
	Warnings []string
}

// Valid reports whether no errors were found
func (r ValidationResults) Valid() bool {
	return len(r.Errors) == 0
}

type Validator struct {
	Data    []byte
	Results ValidationResults
}

func NewValidator(data []byte) *Validator {
	return &Validator{
		Data:    data,
		Results: ValidationResults{},
	}
}

func (v *Validator) Validate() ValidationResults {
	cards, err := card.Parse(v.Data)
	if err != nil {
		v.Results.Errors = append(v.Results.Errors, err.Error())
		return v.Results
	}
	v.Results.Cards = cards

	if len(cards) == 0 {
		v.Results.Warnings = append(v.Results.Warnings, "no cards defined, output will be a blank sheet")
		return v.Results
	}

	v.validateDelimiters(cards)
	v.validateIcons(cards)
	v.validateNames(cards)

	return v.Results
}

// validateDelimiters flags fields that will not survive a share token
func (v *Validator) validateDelimiters(cards []card.Card) {
	for i, c := range cards {
		fields := []struct {
			name  string
			value string
		}{
			{"name", c.Name},
			{"icon", c.Icon},
			{"social", c.Social},
		}
		for _, f := range fields {
			if strings.Contains(f.value, token.Delimiter) {
				v.Results.Warnings = append(v.Results.Warnings,
					fmt.Sprintf("element %d: %s contains %q, share links will not round-trip", i+1, f.name, token.Delimiter))
			}
			if strings.ContainsAny(f.value, "\r\n") {
				v.Results.Warnings = append(v.Results.Warnings,
					fmt.Sprintf("element %d: %s contains a line break, share links will not round-trip", i+1, f.name))
			}
		}
	}
}

// validateIcons checks icon references
func (v *Validator) validateIcons(cards []card.Card) {
	for i, c := range cards {
		if c.Icon == "" {
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("element %d (%s): icon is empty", i+1, c.Name))
			continue
		}

		if strings.HasPrefix(c.Icon, token.Marker) {
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("element %d (%s): icon starts with %q and will be read back as %s",
					i+1, c.Name, token.Marker, token.SecurePrefix+strings.TrimPrefix(c.Icon, token.Marker)))
		}
	}
}

// validateNames looks for duplicate names
func (v *Validator) validateNames(cards []card.Card) {
	seen := make(map[string]int)
	for i, c := range cards {
		key := strings.TrimSpace(c.Name)
		if first, ok := seen[key]; ok {
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("element %d: name %q already used by element %d", i+1, key, first))
			continue
		}
		seen[key] = i + 1
	}
}
