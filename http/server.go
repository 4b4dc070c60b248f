package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/jswierad/distill"
	"github.com/jswierad/distill/batch"
	"github.com/rs/zerolog"
)

// DefaultShutdownTimeout bounds graceful shutdown on context cancel.
const DefaultShutdownTimeout = 5 * time.Second

// Server exposes scrape and batch operations over HTTP.
type Server struct {
	Addr      string
	Logger    zerolog.Logger
	Scraper   *batch.Scraper
	Runner    *batch.Runner
	OutputDir string
}

// scrapeRequest is the body of POST /scrape.
type scrapeRequest struct {
	URL            string `json:"url"`
	OutputDir      string `json:"output_dir"`
	IncludeRawText bool   `json:"include_raw_text"`
}

// scrapeResponse is the body of a successful POST /scrape.
type scrapeResponse struct {
	Result  distill.ItemResult `json:"result"`
	Article *distill.Article   `json:"article"`
}

// batchRequest is the body of POST /batch.
type batchRequest struct {
	InputDir  string `json:"input_dir"`
	OutputDir string `json:"output_dir"`
	Format    string `json:"format"`
	Overwrite bool   `json:"overwrite"`
	Limit     int    `json:"limit"`
}

// Handler returns the routed HTTP handler with request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /scrape", s.handleScrape)
	mux.HandleFunc("POST /batch", s.handleBatch)
	return s.logRequests(mux)
}

// ListenAndServe runs the server until the context is canceled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.Addr,
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.Logger.Info().Str("addr", s.Addr).Msg("server listening")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleScrape(w http.ResponseWriter, r *http.Request) {
	var req scrapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, distill.Errorf(distill.EINVALID, "invalid JSON body"))
		return
	}
	if req.URL == "" {
		s.writeError(w, r, distill.Errorf(distill.EINVALID, "url required"))
		return
	}

	outputDir := req.OutputDir
	if outputDir == "" {
		outputDir = s.OutputDir
	}

	result, article, err := s.Scraper.ScrapeOne(r.Context(), req.URL, outputDir, req.IncludeRawText)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, scrapeResponse{Result: result, Article: article})
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, distill.Errorf(distill.EINVALID, "invalid JSON body"))
		return
	}

	format := distill.Format(req.Format)
	if req.Format == "" {
		format = distill.MarkdownFormat
	}

	manifest, err := s.Runner.Run(r.Context(), batch.Options{
		InputDir:  req.InputDir,
		OutputDir: req.OutputDir,
		Format:    format,
		Overwrite: req.Overwrite,
		Limit:     req.Limit,
	}, nil)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, manifest)
}

// writeError maps application error codes onto HTTP status codes.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := distill.ErrorCode(err)
	status := statusFromCode(code)

	if status >= http.StatusInternalServerError {
		s.Logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	}

	writeJSON(w, status, map[string]string{"error": distill.ErrorMessage(err)})
}

func statusFromCode(code string) int {
	switch code {
	case distill.EINVALID:
		return http.StatusBadRequest
	case distill.ENOTFOUND:
		return http.StatusNotFound
	case distill.ENOCONTENT:
		return http.StatusUnprocessableEntity
	case distill.ECONFLICT:
		return http.StatusConflict
	case distill.EUNAVAILABLE:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusRecorder captures the response status for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		s.Logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}
