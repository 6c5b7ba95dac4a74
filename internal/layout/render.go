package layout

import (
	"fmt"
	"hash/fnv"
	"html/template"
	"io"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/arcanaland/namecards/internal/card"
)

const styles = `
* {
  box-sizing: border-box;
  margin: 0;
  padding: 0;
}

body {
  font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
}

@page {
  size: A4;
  margin: 0;
}

.page {
  width: 210mm;
  height: 297mm;
  padding: 10mm;
  background: white;
  display: grid;
  grid-template-columns: repeat(2, 91mm);
  grid-template-rows: repeat(4, 55mm);
  gap: 0;
  justify-content: center;
  align-content: center;
  page-break-after: always;
}

.page:last-child {
  page-break-after: auto;
}

.card {
  width: 91mm;
  height: 55mm;
  border-left: 1px dashed #ccc;
  border-top: 1px dashed #ccc;
  display: flex;
  flex-direction: column;
  align-items: center;
  justify-content: center;
  padding: 5mm;
}

.card:nth-child(2n) {
  border-right: 1px dashed #ccc;
}

.card:nth-child(n+7) {
  border-bottom: 1px dashed #ccc;
}

.card-icon {
  width: 30mm;
  height: 30mm;
  object-fit: cover;
  border-radius: 50%;
  margin-bottom: 5mm;
  background-color: #f0f0f0;
}

.card-name {
  font-size: 14pt;
  font-weight: bold;
  text-align: center;
  word-break: break-word;
}

.card-social {
  font-size: 11pt;
  color: #888;
  margin-top: 1mm;
  text-align: center;
  word-break: break-word;
}

.card-placeholder {
  color: #999;
  font-size: 10pt;
}

@media print {
  .page {
    margin: 0;
    padding: 10mm;
  }

  .card {
    border: 1px dashed #ccc;
  }
}

@media screen {
  body {
    background: #e9ecef;
    padding: 20px;
  }

  .page {
    margin: 0 auto 20px;
    box-shadow: 0 2px 8px rgba(0, 0, 0, 0.1);
  }
}
`

var templates = template.Must(template.New("document").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>{{.Title}}</title>
<style>` + styles + `</style>
</head>
<body>
<div class="sheets">
{{range .Pages}}{{template "page" .}}{{end}}</div>
{{- if .AutoPrint}}
<script>window.addEventListener("load", function () { window.print(); });</script>
{{- end}}
</body>
</html>
{{define "page"}}<div class="page" data-page="{{.Number}}">
{{range .Slots}}{{if .Filled}}  <div class="card">
    <img class="card-icon" src="{{.Src}}" alt="{{.Card.Name}}" style="background-color: {{.Tint}}" onerror="this.style.display='none'">
    <div class="card-name">{{.Card.Name}}</div>
{{- if .Card.HasSocial}}
    <div class="card-social">{{.Card.Social}}</div>
{{- end}}
  </div>
{{else}}  <div class="card">
    <div class="card-placeholder"></div>
  </div>
{{end}}{{end}}</div>
{{end}}`))

// Renderer turns pages into HTML documents. The zero value is ready to use.
type Renderer struct {
	// Title is written to the document head
	Title string

	// Inline maps an icon reference to a data URI that replaces it as the
	// image source. Only trusted, locally generated URIs belong here.
	Inline map[string]template.URL

	// AutoPrint makes print documents open the print dialog once loaded
	AutoPrint bool
}

type slotView struct {
	Card   card.Card
	Filled bool
	Src    any
	Tint   template.CSS
}

type pageView struct {
	Number int
	Slots  []slotView
}

type documentView struct {
	Title     string
	Pages     []pageView
	AutoPrint bool
}

// Page writes the markup of a single page
func (r *Renderer) Page(w io.Writer, p Page) error {
	if err := templates.ExecuteTemplate(w, "page", r.view(p)); err != nil {
		return fmt.Errorf("error rendering page %d: %w", p.Number, err)
	}
	return nil
}

// Preview writes a screen document showing only the requested page. The
// page number is clamped to the pages that exist.
func (r *Renderer) Preview(w io.Writer, cards []card.Card, page int) error {
	pages := Paginate(cards, PageSize)
	current := pages[ClampPage(page, len(cards))-1]
	return r.document(w, []Page{current}, false)
}

// Print writes a document with every page, separated by page breaks
func (r *Renderer) Print(w io.Writer, cards []card.Card) error {
	return r.document(w, Paginate(cards, PageSize), r.AutoPrint)
}

func (r *Renderer) document(w io.Writer, pages []Page, autoPrint bool) error {
	doc := documentView{
		Title:     r.title(),
		Pages:     make([]pageView, 0, len(pages)),
		AutoPrint: autoPrint,
	}
	for _, p := range pages {
		doc.Pages = append(doc.Pages, r.view(p))
	}

	if err := templates.ExecuteTemplate(w, "document", doc); err != nil {
		return fmt.Errorf("error rendering document: %w", err)
	}
	return nil
}

func (r *Renderer) title() string {
	if r.Title == "" {
		return "namecards"
	}
	return r.Title
}

func (r *Renderer) view(p Page) pageView {
	v := pageView{Number: p.Number, Slots: make([]slotView, len(p.Slots))}
	for i, s := range p.Slots {
		if !s.Filled {
			continue
		}
		var src any = s.Card.Icon
		if uri, ok := r.Inline[s.Card.Icon]; ok {
			src = uri
		} else if isImageData(s.Card.Icon) {
			src = template.URL(s.Card.Icon)
		}
		v.Slots[i] = slotView{
			Card:   s.Card,
			Filled: true,
			Src:    src,
			Tint:   Tint(s.Card.Name),
		}
	}
	return v
}

// isImageData reports whether ref is an inline image. html/template only
// passes http, https and mailto URLs through, and an img element never runs
// script from an image payload.
func isImageData(ref string) bool {
	const prefix = "data:image/"
	return len(ref) > len(prefix) && strings.EqualFold(ref[:len(prefix)], prefix)
}

// Tint returns a soft backdrop colour for a card icon, stable for a name
func Tint(name string) template.CSS {
	h := fnv.New32a()
	h.Write([]byte(name))
	hue := float64(h.Sum32() % 360)
	return template.CSS(colorful.Hsv(hue, 0.18, 0.96).Hex())
}
