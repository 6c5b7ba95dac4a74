// Package server provides the browser editor: a page to edit the card JSON,
// preview and print documents, and a small JSON API around the share token.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/arcanaland/namecards/internal/card"
	"github.com/arcanaland/namecards/internal/layout"
	"github.com/arcanaland/namecards/internal/library"
	"github.com/arcanaland/namecards/internal/token"
)

const maxBodyBytes = 1 << 20

// Options configures a Server
type Options struct {
	// BaseURL is the public address share links point at. When empty the
	// address the request came in on is used.
	BaseURL string
	Logger  *zap.Logger
}

// Server serves the editor, preview and API routes
type Server struct {
	router  chi.Router
	logger  *zap.Logger
	baseURL string
}

// New builds a Server with all routes registered
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		router:  chi.NewRouter(),
		logger:  logger,
		baseURL: opts.BaseURL,
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger(logger))
	s.router.Use(middleware.Recoverer)

	s.router.Get("/", s.handleEditor)
	s.router.Post("/share", s.handleShare)
	s.router.Get("/preview", s.handlePreview)
	s.router.Get("/print", s.handlePrint)
	s.router.Route("/api", func(r chi.Router) {
		r.Post("/encode", s.handleEncode)
		r.Get("/decode", s.handleDecode)
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Info("Request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())))
		})
	}
}

func (s *Server) handleEditor(w http.ResponseWriter, r *http.Request) {
	// a present but empty data parameter is a cleared list, not a missing one
	cards := library.Sample()
	if q := r.URL.Query(); q.Has(token.Param) {
		// an undecodable link leaves the editor on its defaults
		if decoded, err := token.Decode(q.Get(token.Param)); err == nil {
			cards = decoded
		} else {
			s.logger.Debug("Ignoring share token", zap.Error(err))
		}
	}

	input, err := card.MarshalIndent(cards)
	if err != nil {
		s.fail(w, err)
		return
	}

	s.renderEditor(w, r, http.StatusOK, string(input), cards, "")
}

func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	input := r.PostFormValue("cards")
	cards, err := card.Parse([]byte(input))
	if err != nil {
		s.renderEditor(w, r, http.StatusBadRequest, input, nil, err.Error())
		return
	}

	http.Redirect(w, r, "/?"+url.Values{token.Param: {token.Encode(cards)}}.Encode(), http.StatusSeeOther)
}

func (s *Server) renderEditor(w http.ResponseWriter, r *http.Request, status int, input string, cards []card.Card, message string) {
	view := editorView{
		Input:    input,
		Error:    message,
		Token:    token.Encode(cards),
		Page:     layout.ClampPage(queryInt(r, "page", 1), len(cards)),
		Total:    layout.PageCount(len(cards)),
		HasCards: len(cards) > 0,
	}

	shareURL, err := token.ShareURL(s.shareBase(r), cards)
	if err != nil {
		s.fail(w, err)
		return
	}
	view.ShareURL = shareURL

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := editorTemplate.Execute(w, view); err != nil {
		s.logger.Error("Rendering editor failed", zap.Error(err))
	}
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	cards := s.cardsOrEmpty(r)
	renderer := &layout.Renderer{}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := renderer.Preview(w, cards, queryInt(r, "page", 1)); err != nil {
		s.logger.Error("Rendering preview failed", zap.Error(err))
	}
}

func (s *Server) handlePrint(w http.ResponseWriter, r *http.Request) {
	cards := s.cardsOrEmpty(r)
	renderer := &layout.Renderer{AutoPrint: true}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := renderer.Print(w, cards); err != nil {
		s.logger.Error("Rendering print document failed", zap.Error(err))
	}
}

type encodeResponse struct {
	Token string `json:"token"`
	URL   string `json:"url"`
	Pages int    `json:"pages"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleEncode(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "error reading body"})
		return
	}

	cards, err := card.Parse(body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	shareURL, err := token.ShareURL(s.shareBase(r), cards)
	if err != nil {
		s.fail(w, err)
		return
	}

	writeJSON(w, http.StatusOK, encodeResponse{
		Token: token.Encode(cards),
		URL:   shareURL,
		Pages: layout.PageCount(len(cards)),
	})
}

func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	cards, err := token.Decode(r.URL.Query().Get(token.Param))
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, cards)
}

// cardsOrEmpty decodes the data parameter. A bad token renders the blank
// sheet rather than an error page.
func (s *Server) cardsOrEmpty(r *http.Request) []card.Card {
	cards, err := token.Decode(r.URL.Query().Get(token.Param))
	if err != nil {
		s.logger.Debug("Ignoring share token", zap.Error(err))
		return nil
	}
	return cards
}

func (s *Server) shareBase(r *http.Request) string {
	if s.baseURL != "" {
		return s.baseURL
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/", scheme, r.Host)
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	s.logger.Error("Request failed", zap.Error(err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func queryInt(r *http.Request, key string, fallback int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return fallback
	}
	return v
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
