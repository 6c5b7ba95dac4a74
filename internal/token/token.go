// Package token turns card lists into compact, URL-embeddable strings and
// back again.
//
// A token is built in three steps: every card becomes a line of the form
// name|icon|social, the joined lines are percent-encoded with the same
// character set as encodeURIComponent, and the result is base64-encoded.
// Icons starting with https:// are shortened to a single marker character.
//
// Fields are not escaped. A name, icon or social handle containing the
// delimiter or a newline does not survive a round trip.
package token

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/arcanaland/namecards/internal/card"
)

const (
	// Delimiter separates the fields of one card line
	Delimiter = "|"
	// Marker stands in for SecurePrefix at the start of an icon
	Marker = "^"
	// SecurePrefix is the scheme prefix replaced by Marker
	SecurePrefix = "https://"
	// Param is the query parameter carrying the token in share URLs
	Param = "data"
)

// ErrMalformed is returned for any token that cannot be decoded
var ErrMalformed = errors.New("malformed token")

// Encode serializes cards into a token
func Encode(cards []card.Card) string {
	lines := make([]string, 0, len(cards))
	for _, c := range cards {
		lines = append(lines, encodeLine(c))
	}
	text := strings.Join(lines, "\n")
	return base64.StdEncoding.EncodeToString([]byte(escape(text)))
}

func encodeLine(c card.Card) string {
	icon := c.Icon
	if strings.HasPrefix(icon, SecurePrefix) {
		icon = Marker + strings.TrimPrefix(icon, SecurePrefix)
	}
	if c.HasSocial() {
		return c.Name + Delimiter + icon + Delimiter + c.Social
	}
	return c.Name + Delimiter + icon
}

// Decode parses a token produced by Encode. It never returns partial
// results: on failure the cards are nil and the error wraps ErrMalformed.
func Decode(tok string) ([]card.Card, error) {
	raw, err := decodeBase64(tok)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	text, err := url.PathUnescape(string(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if !utf8.ValidString(text) {
		return nil, fmt.Errorf("%w: invalid UTF-8", ErrMalformed)
	}

	cards := []card.Card{}
	for i, line := range strings.Split(text, "\n") {
		if line == "" {
			continue
		}
		c, err := decodeLine(line)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformed, i+1, err)
		}
		cards = append(cards, c)
	}

	return cards, nil
}

func decodeLine(line string) (card.Card, error) {
	parts := strings.Split(line, Delimiter)
	if len(parts) < 2 {
		return card.Card{}, errors.New("missing icon field")
	}
	if strings.TrimSpace(parts[0]) == "" {
		return card.Card{}, errors.New("empty name")
	}

	c := card.Card{Name: parts[0], Icon: parts[1]}
	if strings.HasPrefix(c.Icon, Marker) {
		c.Icon = SecurePrefix + strings.TrimPrefix(c.Icon, Marker)
	}
	if len(parts) > 2 && parts[2] != "" {
		c.Social = parts[2]
	}
	return c, nil
}

// decodeBase64 accepts the standard alphabet with or without padding, and
// repairs the usual damage a token picks up in transit: '+' read back as a
// space from a query string, or the URL-safe alphabet. A token mixing the
// two alphabets is rejected.
func decodeBase64(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if strings.ContainsAny(s, "-_") && strings.ContainsAny(s, "+/ ") {
		return nil, errors.New("mixed base64 alphabets")
	}

	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-':
			return '+'
		case '_':
			return '/'
		case '\n', '\r', '\t':
			return -1
		}
		return r
	}, s)

	return base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
}

const upperhex = "0123456789ABCDEF"

// escape percent-encodes every byte outside the encodeURIComponent
// unreserved set. url.QueryEscape differs: it writes spaces as '+' and
// escapes !*'() which would change tokens shared by other clients.
func escape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

func unreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}
