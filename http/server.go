package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	doccrawler "github.com/Krish-Goyani/DocCrawler"
	"github.com/google/uuid"
)

// DefaultScrapeTimeout bounds one ingestion session end to end.
const DefaultScrapeTimeout = 30 * time.Minute

// Server exposes the pipeline over HTTP: POST /scrape runs an ingestion
// session, POST /query answers search requests. The server is a thin
// layer; all behavior lives in the ingestor and querier.
type Server struct {
	Addr   string
	Logger *slog.Logger

	Ingestor doccrawler.Ingestor
	Querier  doccrawler.Querier

	// ScrapeTimeout bounds a single scrape session; defaults to 30m.
	ScrapeTimeout time.Duration

	server *http.Server
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /scrape", s.handleScrape)
	mux.HandleFunc("POST /query", s.handleQuery)
	return s.recoverPanics(mux)
}

// ListenAndServe serves until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.server = &http.Server{
		Addr:    s.Addr,
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.server.Shutdown(shutdownCtx)
	}
}

type scrapeRequest struct {
	URLs []string `json:"urls"`
}

type scrapeResponse struct {
	UserID  string                   `json:"user_id"`
	Message string                   `json:"message"`
	Result  *doccrawler.IngestResult `json:"result"`
}

// handleScrape runs the full crawl-to-index pipeline for the requested
// URLs under a fresh session ID and a session-wide deadline.
func (s *Server) handleScrape(w http.ResponseWriter, r *http.Request) {
	var req scrapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, doccrawler.Errorf(doccrawler.EINVALID, "invalid request body: %v", err))
		return
	}
	if len(req.URLs) == 0 {
		s.writeError(w, r, doccrawler.Errorf(doccrawler.EINVALID, "at least one URL is required"))
		return
	}

	timeout := s.ScrapeTimeout
	if timeout <= 0 {
		timeout = DefaultScrapeTimeout
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	sessionID := uuid.NewString()
	s.logger().Info("scrape started", "session", sessionID, "urls", len(req.URLs))

	result, err := s.Ingestor.Ingest(ctx, sessionID, req.URLs)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = doccrawler.Errorf(doccrawler.ETIMEOUT, "scrape session %s exceeded %s", sessionID, timeout)
		}
		s.writeError(w, r, err)
		return
	}

	s.logger().Info("scrape finished", "session", sessionID, "upserted", result.Upserted)
	s.writeJSON(w, http.StatusOK, scrapeResponse{
		UserID:  sessionID,
		Message: fmt.Sprintf("indexed %d vectors from %d pages", result.Upserted, result.Pages),
		Result:  result,
	})
}

type queryRequest struct {
	Query   string         `json:"query"`
	Filters map[string]any `json:"filters"`
	Alpha   *float64       `json:"alpha"`
	TopK    int            `json:"top_k"`
	TopN    int            `json:"top_n"`
}

type queryResponse struct {
	Results []doccrawler.RankedDocument `json:"results"`
}

// handleQuery answers a hybrid search request.
func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, doccrawler.Errorf(doccrawler.EINVALID, "invalid request body: %v", err))
		return
	}

	alpha := 0.5
	if req.Alpha != nil {
		alpha = *req.Alpha
	}

	results, err := s.Querier.Query(r.Context(), req.Query, req.Filters, alpha, req.TopK, req.TopN)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if results == nil {
		results = []doccrawler.RankedDocument{}
	}
	s.writeJSON(w, http.StatusOK, queryResponse{Results: results})
}

// recoverPanics converts handler panics into 500 responses instead of
// dropped connections.
func (s *Server) recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger().Error("handler panic", "path", r.URL.Path, "panic", rec)
				s.writeError(w, r, doccrawler.Errorf(doccrawler.EINTERNAL, "internal error"))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// writeError maps application error codes onto HTTP status codes and
// emits a JSON error body. Internal details are logged, not leaked.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := doccrawler.ErrorCode(err)
	status := statusFromCode(code)

	message := doccrawler.ErrorMessage(err)
	if code == doccrawler.EINTERNAL || code == "" {
		s.logger().Error("request failed", "path", r.URL.Path, "error", err)
		code = doccrawler.EINTERNAL
		message = "internal error"
	}

	var body errorResponse
	body.Error.Code = code
	body.Error.Message = message
	s.writeJSON(w, status, body)
}

func statusFromCode(code string) int {
	switch code {
	case doccrawler.EINVALID:
		return http.StatusBadRequest
	case doccrawler.ENOTFOUND:
		return http.StatusNotFound
	case doccrawler.EUNAVAILABLE:
		return http.StatusBadGateway
	case doccrawler.ETIMEOUT:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger().Error("writing response", "error", err)
	}
}

func (s *Server) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
