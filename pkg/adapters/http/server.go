package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/aretw0/pathhierarchy/internal/compiler"
	"github.com/aretw0/pathhierarchy/internal/logging"
	"github.com/aretw0/pathhierarchy/pkg/adapters/memory"
	"github.com/aretw0/pathhierarchy/pkg/domain"
	"github.com/aretw0/pathhierarchy/pkg/hierarchy"
	"github.com/aretw0/pathhierarchy/pkg/observability"
	"github.com/aretw0/pathhierarchy/pkg/ports"
	"github.com/go-chi/chi/v5"
)

// MaxBodyBytes caps request documents.
const MaxBodyBytes = 1 << 20

// Server exposes request normalization and the config cache over HTTP.
type Server struct {
	store   ports.ConfigStore
	metrics *observability.Metrics
	logger  *slog.Logger
	parser  *compiler.Parser
}

// Option configures a Server.
type Option func(*Server)

// WithStore sets the config cache. Defaults to an in-memory store.
func WithStore(store ports.ConfigStore) Option {
	return func(s *Server) { s.store = store }
}

// WithMetrics enables instrumentation.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// ConfigResponse describes one finalized config.
// Key addresses the config in the store; CacheKey is shared by every
// config that buckets alike.
type ConfigResponse struct {
	Name     string          `json:"name"`
	Key      string          `json:"key"`
	CacheKey string          `json:"cache_key"`
	Body     json.RawMessage `json:"body"`
	Binary   []byte          `json:"binary,omitempty"`
}

// ListResponse holds the cached keys.
type ListResponse struct {
	Keys []string `json:"keys"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewServer creates a Server with the given options.
func NewServer(opts ...Option) *Server {
	s := &Server{
		parser: compiler.NewParser(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		s.store = memory.NewStore()
	}
	s.logger = logging.Component(s.logger, "http")
	return s
}

// NewHandler creates a new HTTP handler with the given options.
func NewHandler(opts ...Option) http.Handler {
	return NewServer(opts...).Routes()
}

// Routes builds the chi router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Route("/v1", func(r chi.Router) {
		r.Post("/normalize/{name}", s.Normalize)
		r.Post("/configs/{name}", s.SaveConfig)
		r.Get("/configs", s.ListConfigs)
		r.Get("/configs/{key}", s.GetConfig)
		r.Delete("/configs/{key}", s.DeleteConfig)
	})
	return r
}

// Normalize handles POST /v1/normalize/{name}. The body is a JSON or YAML
// request document; the reply carries its canonical text and binary forms.
func (s *Server) Normalize(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.parse(w, r)
	s.metrics.Observe("normalize", err)
	if err != nil {
		s.writeError(w, "Normalize", err)
		return
	}

	resp, err := s.describe(cfg, true)
	if err != nil {
		s.writeError(w, "Normalize", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// SaveConfig handles POST /v1/configs/{name}.
func (s *Server) SaveConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.parse(w, r)
	if err != nil {
		s.metrics.Observe("save", err)
		s.writeError(w, "SaveConfig", err)
		return
	}

	key, err := s.store.Save(r.Context(), cfg)
	s.metrics.Observe("save", err)
	if err != nil {
		s.writeError(w, "SaveConfig", err)
		return
	}
	s.logger.Debug("config saved", "name", cfg.Name(), "key", key)

	resp, err := s.describe(cfg, false)
	if err != nil {
		s.writeError(w, "SaveConfig", err)
		return
	}
	resp.Key = key
	writeJSON(w, http.StatusCreated, resp)
}

// ListConfigs handles GET /v1/configs.
func (s *Server) ListConfigs(w http.ResponseWriter, r *http.Request) {
	keys, err := s.store.List(r.Context())
	s.metrics.Observe("list", err)
	if err != nil {
		s.writeError(w, "ListConfigs", err)
		return
	}
	if keys == nil {
		keys = []string{}
	}
	writeJSON(w, http.StatusOK, ListResponse{Keys: keys})
}

// GetConfig handles GET /v1/configs/{key}.
func (s *Server) GetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.store.Load(r.Context(), chi.URLParam(r, "key"))
	s.metrics.Observe("load", err)
	if err != nil {
		s.writeError(w, "GetConfig", err)
		return
	}

	resp, err := s.describe(cfg, true)
	if err != nil {
		s.writeError(w, "GetConfig", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// DeleteConfig handles DELETE /v1/configs/{key}.
func (s *Server) DeleteConfig(w http.ResponseWriter, r *http.Request) {
	err := s.store.Delete(r.Context(), chi.URLParam(r, "key"))
	s.metrics.Observe("delete", err)
	if err != nil {
		s.writeError(w, "DeleteConfig", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) parse(w http.ResponseWriter, r *http.Request) (hierarchy.Config, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		return hierarchy.Config{}, errors.Join(domain.ErrMalformedRequest, err)
	}
	format := compiler.DetectFormat("", data)
	if ct := r.Header.Get("Content-Type"); ct == "application/yaml" || ct == "text/yaml" {
		format = compiler.FormatYAML
	}
	return s.parser.Parse(chi.URLParam(r, "name"), data, format)
}

func (s *Server) describe(cfg hierarchy.Config, withBinary bool) (ConfigResponse, error) {
	body, err := cfg.MarshalJSON()
	if err != nil {
		return ConfigResponse{}, err
	}
	s.metrics.ObservePayload(observability.FormatJSON, len(body))

	key, err := cfg.StoreKey()
	if err != nil {
		return ConfigResponse{}, err
	}
	resp := ConfigResponse{Name: cfg.Name(), Key: key, CacheKey: cfg.CacheKey(), Body: body}
	if withBinary {
		bin, err := hierarchy.Encode(cfg)
		if err != nil {
			return ConfigResponse{}, err
		}
		s.metrics.ObservePayload(observability.FormatBinary, len(bin))
		resp.Binary = bin
	}
	return resp, nil
}

func (s *Server) writeError(w http.ResponseWriter, op string, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error(op+" failed", "error", err)
	} else {
		s.logger.Warn(op+": rejected request", "error", err)
	}
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

// StatusFor maps domain errors to HTTP status codes.
func StatusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, domain.ErrInvalidArgument), errors.Is(err, domain.ErrMalformedRequest):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrConfigNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}
