package server

import (
	"html/template"
)

type editorView struct {
	Input    string
	Error    string
	Token    string
	ShareURL string
	Page     int
	Total    int
	HasCards bool
}

func (v editorView) PrevPage() int { return v.Page - 1 }
func (v editorView) NextPage() int { return v.Page + 1 }
func (v editorView) HasPrev() bool { return v.Page > 1 }
func (v editorView) HasNext() bool { return v.Page < v.Total }

var editorTemplate = template.Must(template.New("editor").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>namecards</title>
<style>
* { box-sizing: border-box; }
body { margin: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; }
.container { display: flex; height: 100vh; }
.input-panel { width: 400px; padding: 20px; display: flex; flex-direction: column; gap: 10px; border-right: 1px solid #ddd; }
.input-panel textarea { flex: 1; font-family: monospace; font-size: 13px; padding: 10px; }
.error-message { color: #c0392b; background: #fdecea; padding: 8px; border-radius: 4px; }
.button-group { display: flex; gap: 8px; }
.button-group button, .button-group a { padding: 8px 16px; }
.share-url { width: 100%; font-family: monospace; }
.preview-panel { flex: 1; display: flex; flex-direction: column; background: #e9ecef; }
.pagination { display: flex; justify-content: center; align-items: center; gap: 12px; padding: 10px; }
.pagination .disabled { color: #aaa; pointer-events: none; }
.preview-iframe { flex: 1; border: none; width: 100%; }
</style>
</head>
<body>
<div class="container">
  <form class="input-panel" method="post" action="/share">
    <h1>namecards</h1>
    <label for="json-input">JSON Input</label>
    <textarea id="json-input" name="cards" placeholder="Enter JSON array...">{{.Input}}</textarea>
    {{- if .Error}}
    <div class="error-message">{{.Error}}</div>
    {{- end}}
    <div class="button-group">
      <button type="submit">Update</button>
      {{- if .HasCards}}
      <a href="/print?data={{.Token}}" target="_blank">Print</a>
      <button type="button" onclick="navigator.clipboard.writeText(document.getElementById('share-url').value)">Copy link</button>
      {{- end}}
    </div>
    {{- if .HasCards}}
    <input id="share-url" class="share-url" type="text" readonly value="{{.ShareURL}}">
    {{- end}}
  </form>
  <div class="preview-panel">
    <div class="pagination">
      <a href="/?data={{.Token}}&amp;page={{.PrevPage}}"{{if not .HasPrev}} class="disabled"{{end}}>&lt;</a>
      <span>{{if .HasCards}}{{.Page}}/{{.Total}}{{else}}0/0{{end}}</span>
      <a href="/?data={{.Token}}&amp;page={{.NextPage}}"{{if not .HasNext}} class="disabled"{{end}}>&gt;</a>
    </div>
    <iframe class="preview-iframe" title="Preview" src="/preview?data={{.Token}}&amp;page={{.Page}}"></iframe>
  </div>
</div>
</body>
</html>
`))
