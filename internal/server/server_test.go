package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/namecards/internal/card"
	"github.com/arcanaland/namecards/internal/token"
)

var team = []card.Card{
	{Name: "Alice", Icon: "https://example.com/a.png", Social: "@alice"},
	{Name: "Bob", Icon: "b.png"},
}

func newTestServer() *Server {
	return New(Options{BaseURL: "https://cards.example/"})
}

func do(t *testing.T, s *Server, method, target string, body string, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestEditorDefaultsToSample(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodGet, "/", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Felix")
	assert.Contains(t, body, "1/2")
	assert.Contains(t, body, "https://cards.example/?data=")
}

func TestEditorLoadsToken(t *testing.T) {
	target := "/?" + url.Values{"data": {token.Encode(team)}}.Encode()
	rec := do(t, newTestServer(), http.MethodGet, target, "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Alice")
	assert.Contains(t, body, "1/1")
	assert.NotContains(t, body, "Felix")
}

func TestEditorIgnoresBadToken(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodGet, "/?data=invalid-base64!!", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Felix")
	assert.NotContains(t, rec.Body.String(), "error-message\"")
}

func TestShareRedirects(t *testing.T) {
	form := url.Values{"cards": {`[{"name":"Alice","icon":"a.png"}]`}}
	rec := do(t, newTestServer(), http.MethodPost, "/share", form.Encode(), "application/x-www-form-urlencoded")

	require.Equal(t, http.StatusSeeOther, rec.Code)
	loc, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)

	cards, err := token.Decode(loc.Query().Get("data"))
	require.NoError(t, err)
	assert.Equal(t, []card.Card{{Name: "Alice", Icon: "a.png"}}, cards)
}

func TestShareEmptyListStaysEmpty(t *testing.T) {
	for _, input := range []string{"[]", "", "  \n"} {
		s := newTestServer()
		form := url.Values{"cards": {input}}
		rec := do(t, s, http.MethodPost, "/share", form.Encode(), "application/x-www-form-urlencoded")

		require.Equal(t, http.StatusSeeOther, rec.Code)
		loc := rec.Header().Get("Location")
		assert.Equal(t, "/?data=", loc)

		rec = do(t, s, http.MethodGet, loc, "", "")
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.NotContains(t, body, "Felix")
		assert.Contains(t, body, "0/0")
	}
}

func TestShareReportsValidationError(t *testing.T) {
	form := url.Values{"cards": {`[{"icon":"x.png"}]`}}
	rec := do(t, newTestServer(), http.MethodPost, "/share", form.Encode(), "application/x-www-form-urlencoded")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "element 1 is missing &#34;name&#34;")
	assert.Contains(t, body, "0/0")
	assert.Contains(t, body, "x.png")
}

func TestPreview(t *testing.T) {
	cards := make([]card.Card, 9)
	for i := range cards {
		cards[i] = card.Card{Name: "Person", Icon: "p.png"}
	}
	cards[8].Name = "Last"

	target := "/preview?" + url.Values{"data": {token.Encode(cards)}, "page": {"2"}}.Encode()
	rec := do(t, newTestServer(), http.MethodGet, target, "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Equal(t, 1, strings.Count(body, `<div class="page"`))
	assert.Contains(t, body, "Last")
}

func TestPrintBadTokenRendersBlankSheet(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodGet, "/print?data=%25%25", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Equal(t, 1, strings.Count(body, `<div class="page"`))
	assert.Equal(t, 8, strings.Count(body, `class="card-placeholder"`))
	assert.Contains(t, body, "window.print()")
}

func TestAPIEncode(t *testing.T) {
	body, err := json.Marshal(team)
	require.NoError(t, err)

	rec := do(t, newTestServer(), http.MethodPost, "/api/encode", string(body), "application/json")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp encodeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, token.Encode(team), resp.Token)
	assert.Equal(t, 1, resp.Pages)
	assert.True(t, strings.HasPrefix(resp.URL, "https://cards.example/?data="))
}

func TestAPIEncodeRejectsInvalid(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodPost, "/api/encode", `{"name":"Alice"}`, "application/json")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "JSON must be an array", resp.Error)
}

func TestAPIDecode(t *testing.T) {
	target := "/api/decode?" + url.Values{"data": {token.Encode(team)}}.Encode()
	rec := do(t, newTestServer(), http.MethodGet, target, "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var cards []card.Card
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cards))
	assert.Equal(t, team, cards)
}

func TestAPIDecodeMalformed(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodGet, "/api/decode?data=invalid-base64!!", "", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestShareBaseFallsBackToHost(t *testing.T) {
	s := New(Options{})
	body, err := json.Marshal(team)
	require.NoError(t, err)

	rec := do(t, s, http.MethodPost, "/api/encode", string(body), "application/json")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp encodeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, strings.HasPrefix(resp.URL, "http://example.com/?data="), resp.URL)
}
