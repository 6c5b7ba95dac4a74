// Package icon embeds local icon files into rendered documents so a
// printed sheet does not depend on files next to it.
package icon

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/nfnt/resize"

	"github.com/arcanaland/namecards/internal/card"
	"github.com/arcanaland/namecards/internal/token"
)

// IsLocal reports whether an icon reference names a file rather than a
// URL. Empty references and marker-prefixed references are not local.
func IsLocal(ref string) bool {
	if ref == "" || strings.HasPrefix(ref, token.Marker) {
		return false
	}
	if strings.HasPrefix(ref, "//") || strings.HasPrefix(ref, "data:") {
		return false
	}
	if i := strings.Index(ref, "://"); i > 0 {
		return false
	}
	return true
}

// Inline loads every local icon referenced by cards, scales it to a px
// square and returns a map from reference to PNG data URI. Icons that
// cannot be read are reported in errs and left out of the map.
func Inline(cards []card.Card, baseDir string, px int) (map[string]template.URL, []error) {
	inline := make(map[string]template.URL)
	var errs []error

	for _, c := range cards {
		if !IsLocal(c.Icon) {
			continue
		}
		if _, done := inline[c.Icon]; done {
			continue
		}

		path := c.Icon
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}

		uri, err := DataURI(path, px)
		if err != nil {
			errs = append(errs, fmt.Errorf("icon for %s: %w", c.Name, err))
			continue
		}
		inline[c.Icon] = uri
	}

	return inline, errs
}

// DataURI reads an image file, resizes it to px by px and encodes it as a
// PNG data URI
func DataURI(path string, px int) (template.URL, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	if px > 0 {
		img = resize.Resize(uint(px), uint(px), square(img), resize.Lanczos3)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}

	return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())), nil
}

// square crops the centre square of img, matching object-fit: cover
func square(img image.Image) image.Image {
	b := img.Bounds()
	side := min(b.Dx(), b.Dy())
	if b.Dx() == b.Dy() {
		return img
	}

	sub, ok := img.(interface {
		SubImage(r image.Rectangle) image.Image
	})
	if !ok {
		return img
	}

	x0 := b.Min.X + (b.Dx()-side)/2
	y0 := b.Min.Y + (b.Dy()-side)/2
	return sub.SubImage(image.Rect(x0, y0, x0+side, y0+side))
}
