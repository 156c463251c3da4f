// Package httpapi serves the handwriting generator, signature preparation
// and document page operations over HTTP.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/gogpu/ink"
	"github.com/gogpu/ink/config"
	"github.com/gogpu/ink/document"
	"github.com/gogpu/ink/handwriting"
	"github.com/gogpu/ink/ocr"
	"github.com/gogpu/ink/signature"
)

// Server holds the shared state of the API.
type Server struct {
	cfg        *config.Config
	engine     *handwriting.Engine
	recognizer ocr.Recognizer
	router     chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithRecognizer enables the OCR endpoint.
func WithRecognizer(r ocr.Recognizer) Option {
	return func(s *Server) {
		s.recognizer = r
	}
}

// New creates a server. The handwriting engine is built once from cfg and
// forked per request.
func New(cfg *config.Config, opts ...Option) (*Server, error) {
	e, err := cfg.Engine()
	if err != nil {
		return nil, err
	}
	s := &Server{
		cfg:    cfg,
		engine: e,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.limitBody)

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1/handwriting", func(r chi.Router) {
		r.Get("/presets", s.handlePresets)
		r.Post("/pages", s.handleGenerate)
		r.Post("/preview", s.handlePreview)
	})
	r.Route("/v1/signatures", func(r chi.Router) {
		r.Post("/key", s.handleKey)
		r.Post("/typed", s.handleTyped)
	})
	r.Route("/v1/documents", func(r chi.Router) {
		r.Post("/info", s.handleInfo)
		r.Post("/rotate", s.handleRotate)
		r.Post("/delete", s.handleDelete)
		r.Post("/reorder", s.handleReorder)
		r.Post("/split", s.handleSplit)
		r.Post("/optimize", s.handleOptimize)
		r.Post("/merge", s.handleMerge)
		r.Post("/from-images", s.handleFromImages)
	})
	r.Post("/v1/ocr", s.handleOCR)
	return r
}

func (s *Server) limitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if n := s.cfg.Server.MaxUploadBytes; n > 0 {
			r.Body = http.MaxBytesReader(w, r.Body, n)
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": ink.Version})
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		ink.Logger().Error("httpapi: request failed", "path", r.URL.Path, "err", err)
	} else {
		ink.Logger().Warn("httpapi: rejected request", "path", r.URL.Path, "err", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error(), RequestID: middleware.GetReqID(r.Context())})
}

// errBadRequest marks malformed request parameters.
var errBadRequest = errors.New("bad request")

func statusOf(err error) int {
	var maxErr *http.MaxBytesError
	var ocrErr *ocr.Error
	switch {
	case errors.As(err, &maxErr), errors.Is(err, ink.ErrImageTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, errBadRequest),
		errors.Is(err, signature.ErrInvalidAsset),
		errors.Is(err, signature.ErrEmptyName),
		errors.Is(err, document.ErrInvalidDocument),
		errors.Is(err, document.ErrInvalidRange),
		errors.Is(err, document.ErrInvalidRotation),
		errors.Is(err, document.ErrInvalidOrder),
		errors.Is(err, document.ErrLastPage),
		errors.Is(err, document.ErrNoImages),
		errors.Is(err, handwriting.ErrInvalidPage),
		errors.Is(err, ocr.ErrNoImage):
		return http.StatusBadRequest
	case errors.Is(err, errNoRecognizer):
		return http.StatusNotImplemented
	case errors.As(err, &ocrErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
