package token

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/arcanaland/namecards/internal/card"
)

// ShareURL returns base with the encoded cards attached as the data
// query parameter. Other query parameters on base are preserved.
func ShareURL(base string, cards []card.Card) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", base, err)
	}

	q := u.Query()
	q.Set(Param, Encode(cards))
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// FromURL decodes the cards carried by a share URL. A bare token is
// accepted as well.
func FromURL(raw string) ([]card.Card, error) {
	raw = strings.TrimSpace(raw)
	if !strings.Contains(raw, "?") && !strings.Contains(raw, "://") {
		return Decode(raw)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	tok := u.Query().Get(Param)
	if tok == "" {
		return nil, fmt.Errorf("%w: no %q parameter in URL", ErrMalformed, Param)
	}

	return Decode(tok)
}
