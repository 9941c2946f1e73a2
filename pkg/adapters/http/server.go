package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/cssmachine"
	"github.com/aretw0/cssmachine/pkg/adapters/file"
	"github.com/aretw0/cssmachine/pkg/adapters/memory"
	"github.com/aretw0/cssmachine/pkg/domain"
	"github.com/aretw0/cssmachine/pkg/export"
	"github.com/aretw0/cssmachine/pkg/ports"
	"github.com/aretw0/cssmachine/pkg/schema"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Config bounds what a single request may ask the compiler for.
type Config struct {
	MaxStates     int
	MaxTapeLength int
	MaxBodyBytes  int64
	// DataURL adds the inline data URL to share responses.
	DataURL bool
}

// DefaultConfig returns limits suited to a public instance.
func DefaultConfig() Config {
	limits := domain.DefaultLimits()
	return Config{
		MaxStates:     limits.MaxStates,
		MaxTapeLength: limits.MaxTapeLength,
		MaxBodyBytes:  1 << 20,
	}
}

// Limits returns the machine size limits of the configuration.
func (c Config) Limits() domain.Limits {
	return domain.Limits{MaxStates: c.MaxStates, MaxTapeLength: c.MaxTapeLength}
}

// Server serves the compiler over HTTP.
type Server struct {
	Compiler ports.Compiler
	Store    ports.DocumentStore
	Library  ports.MachineLibrary
	Metrics  *Metrics
	Config   Config

	logger  *slog.Logger
	spec    *openapi3.T
	machine *openapi3.Schema
}

// Option configures the Server.
type Option func(*Server)

// WithStore sets where shared documents are kept (default: in memory).
func WithStore(store ports.DocumentStore) Option {
	return func(s *Server) {
		s.Store = store
	}
}

// WithLibrary exposes a machine library under /library.
func WithLibrary(lib ports.MachineLibrary) Option {
	return func(s *Server) {
		s.Library = lib
	}
}

// WithMetrics enables /metrics. The compiler should carry m.Hooks().
func WithMetrics(m *Metrics) Option {
	return func(s *Server) {
		s.Metrics = m
	}
}

// WithConfig replaces the request limits.
func WithConfig(cfg Config) Option {
	return func(s *Server) {
		s.Config = cfg
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewHandler creates the HTTP handler for the compiler.
// It fails only if the embedded API description is invalid.
func NewHandler(compiler ports.Compiler, opts ...Option) (http.Handler, error) {
	s := &Server{
		Compiler: compiler,
		Config:   DefaultConfig(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if s.Store == nil {
		s.Store = memory.NewStore()
	}
	if s.Library == nil {
		s.Library = memory.NewLibrary(nil)
	}
	if s.Config.MaxBodyBytes <= 0 {
		s.Config.MaxBodyBytes = DefaultConfig().MaxBodyBytes
	}

	spec, err := LoadSpec(context.Background())
	if err != nil {
		return nil, err
	}
	if s.machine, err = requestSchema(spec, "MachineConfig"); err != nil {
		return nil, err
	}
	s.spec = spec

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Post("/compile", s.Compile)
	r.Post("/share", s.Share)
	r.Get("/m/{id}", s.GetDocument)
	r.Route("/library", func(r chi.Router) {
		r.Get("/", s.ListMachines)
		r.Get("/{id}", s.GetMachine)
		r.Get("/{id}/html", s.CompileMachine)
	})
	if s.Metrics != nil {
		r.Handle("/metrics", s.Metrics.Handler())
	}

	return enableCORS(r), nil
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Compile handles the POST /compile request.
func (s *Server) Compile(w http.ResponseWriter, r *http.Request) {
	cfg, ok := s.decodeMachine(w, r)
	if !ok {
		return
	}
	html, err := s.Compiler.Compile(r.Context(), cfg)
	if err != nil {
		s.fail(w, r, "Compile", err)
		return
	}
	writeHTML(w, html)
}

// ShareResponse is the body of a successful POST /share.
type ShareResponse struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	DataURL string `json:"data_url,omitempty"`
}

// Share handles the POST /share request.
// Documents are content-addressed, so sharing the same machine twice is a cache hit.
func (s *Server) Share(w http.ResponseWriter, r *http.Request) {
	cfg, ok := s.decodeMachine(w, r)
	if !ok {
		return
	}
	html, err := s.Compiler.Compile(r.Context(), cfg)
	if err != nil {
		s.fail(w, r, "Share", err)
		return
	}

	doc := domain.NewSharedDocument(cfg, html)
	status := http.StatusCreated
	_, err = s.Store.Load(r.Context(), doc.ID)
	switch {
	case err == nil:
		status = http.StatusOK
	case errors.Is(err, domain.ErrDocumentNotFound):
		if err := s.Store.Save(r.Context(), doc); err != nil {
			s.fail(w, r, "Share", fmt.Errorf("failed to store document: %w", err))
			return
		}
	default:
		s.fail(w, r, "Share", err)
		return
	}
	if s.Metrics != nil {
		s.Metrics.shared(status == http.StatusOK)
	}
	s.logger.Info("document shared", "id", doc.ID, "cached", status == http.StatusOK)

	resp := ShareResponse{ID: doc.ID, URL: "/m/" + doc.ID}
	if s.Config.DataURL {
		resp.DataURL = export.DataURL(html)
	}
	writeJSON(w, s.logger, status, resp)
}

// GetDocument handles the GET /m/{id} request.
func (s *Server) GetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.Store.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, "GetDocument", err)
		return
	}
	writeHTML(w, doc.HTML)
}

// ListMachines handles the GET /library request.
func (s *Server) ListMachines(w http.ResponseWriter, r *http.Request) {
	list, err := s.Library.List(r.Context())
	if err != nil {
		s.fail(w, r, "ListMachines", err)
		return
	}
	writeJSON(w, s.logger, http.StatusOK, list)
}

// GetMachine handles the GET /library/{id} request.
func (s *Server) GetMachine(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.Library.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, "GetMachine", err)
		return
	}
	writeJSON(w, s.logger, http.StatusOK, cfg)
}

// CompileMachine handles the GET /library/{id}/html request.
func (s *Server) CompileMachine(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.Library.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, "CompileMachine", err)
		return
	}
	html, err := s.Compiler.Compile(r.Context(), cfg)
	if err != nil {
		s.fail(w, r, "CompileMachine", err)
		return
	}
	writeHTML(w, html)
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if s.spec.Info != nil {
		apiVersion = s.spec.Info.Version
	}
	writeJSON(w, s.logger, http.StatusOK, map[string]string{
		"app":         "cssmachine-http",
		"version":     strings.TrimSpace(cssmachine.Version),
		"api_version": apiVersion,
	})
}

// decodeMachine reads a machine body, checks it against the API schema, and
// applies the configured limits. It writes the error response itself.
func (s *Server) decodeMachine(w http.ResponseWriter, r *http.Request) (domain.MachineConfig, bool) {
	var raw any
	body := http.MaxBytesReader(w, r.Body, s.Config.MaxBodyBytes)
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, s.logger, http.StatusRequestEntityTooLarge, "Request body too large")
			return domain.MachineConfig{}, false
		}
		writeError(w, s.logger, http.StatusBadRequest, "Invalid request body")
		s.logger.Warn("Invalid request body", "path", r.URL.Path, "err", err)
		return domain.MachineConfig{}, false
	}

	if err := s.machine.VisitJSON(raw); err != nil {
		writeError(w, s.logger, http.StatusBadRequest, "Request does not match the MachineConfig schema", err.Error())
		return domain.MachineConfig{}, false
	}
	obj, _ := raw.(map[string]any)
	cfg, err := file.Decode(obj)
	if err != nil {
		writeError(w, s.logger, http.StatusBadRequest, "Invalid machine", err.Error())
		return domain.MachineConfig{}, false
	}

	if err := s.Config.Limits().Check(cfg); err != nil {
		details := make([]string, 0, 2)
		for _, e := range schema.ValidationErrors(err) {
			details = append(details, e.Error())
		}
		writeError(w, s.logger, http.StatusUnprocessableEntity, "Machine exceeds server limits", details...)
		return domain.MachineConfig{}, false
	}
	return cfg, true
}

// fail maps an error to a status code and logs the unexpected ones.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	var agg *schema.AggregateError
	switch {
	case errors.As(err, &agg):
		details := make([]string, 0, len(agg.Errors))
		for _, e := range agg.Errors {
			details = append(details, e.Error())
		}
		writeError(w, s.logger, http.StatusUnprocessableEntity, "Invalid machine", details...)
	case errors.Is(err, domain.ErrMachineNotFound), errors.Is(err, domain.ErrDocumentNotFound):
		writeError(w, s.logger, http.StatusNotFound, err.Error())
	case errors.Is(err, context.Canceled):
		s.logger.Debug(op+" canceled", "path", r.URL.Path)
	default:
		writeError(w, s.logger, http.StatusInternalServerError, fmt.Sprintf("%s error", op))
		s.logger.Error(op+" failed", "path", r.URL.Path, "request_id", middleware.GetReqID(r.Context()), "err", err)
	}
}

type errorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

func writeError(w http.ResponseWriter, logger *slog.Logger, status int, msg string, details ...string) {
	writeJSON(w, logger, status, errorResponse{Error: msg, Details: details})
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("response encode failed", "err", err)
	}
}

func writeHTML(w http.ResponseWriter, html string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, html)
}
