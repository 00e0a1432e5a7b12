// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"

	"github.com/okian/dexkeeper/internal/adapters/refdata"
	service "github.com/okian/dexkeeper/internal/app"
	"github.com/okian/dexkeeper/internal/domain/browse"
	"github.com/okian/dexkeeper/internal/domain/model"
	"github.com/okian/dexkeeper/internal/validation"
)

const maxBodyBytes = 10 << 20

// CollectionService is the collection part of the service.
type CollectionService interface {
	Add(ctx context.Context, draft model.Pokemon) (model.Pokemon, error)
	Update(ctx context.Context, id string, edit model.Edit) (model.Pokemon, error)
	Remove(ctx context.Context, id string) error
	Clear(ctx context.Context) error
	Get(ctx context.Context, id string) (model.Pokemon, error)
	List(ctx context.Context, q browse.Query) (browse.Page, error)
	Export(ctx context.Context) ([]model.Pokemon, error)
	Import(ctx context.Context, records []model.Pokemon, replace bool) (service.ImportResult, error)
	EffectiveStats(ctx context.Context, id string) (service.StatReport, error)
}

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	CollectionService
	AnalyticsProvider
	StatsProvider
	Calculator
}

// ReferenceSource serves species and move tables.
type ReferenceSource interface {
	Species(ctx context.Context, key string) (refdata.Species, error)
	Move(ctx context.Context, key string) (refdata.Move, error)
	ListSpecies(ctx context.Context) []refdata.Species
	ListMoves(ctx context.Context) []refdata.Move
}

// Server wires HTTP routes for the business API.
type Server struct {
	cfg Config

	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	referenceHandler  *ReferenceHandler
	calcHandler       *CalcHandler
	collectionHandler *CollectionHandler
	analyticsHandler  *AnalyticsHandler
	dashboardHandler  *dashboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, refs ReferenceSource, opts ...Option) *Server {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Server{
		cfg:               cfg,
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(deps),
		referenceHandler:  NewReferenceHandler(refs),
		calcHandler:       NewCalcHandler(deps),
		collectionHandler: NewCollectionHandler(deps, cfg.now),
		analyticsHandler:  NewAnalyticsHandler(deps),
		dashboardHandler:  newDashboardHandler(),
	}
}

// Routes builds the chi router with the middleware stack and every route.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(s.cfg.corsMiddleware())
	r.Use(MetricsMiddleware)

	r.Get("/healthz", s.healthHandler.HandleHealth)
	r.Get("/metrics", s.healthHandler.HandleMetrics)
	r.Get("/dashboard", s.dashboardHandler.HandleDashboard)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(s.cfg.rateLimitMiddleware())

		r.Get("/status", s.statsHandler.HandleStats)

		r.Get("/species", s.referenceHandler.HandleListSpecies)
		r.Get("/species/{key}", s.referenceHandler.HandleGetSpecies)
		r.Get("/moves", s.referenceHandler.HandleListMoves)
		r.Get("/moves/{key}", s.referenceHandler.HandleGetMove)
		r.Get("/natures", s.referenceHandler.HandleListNatures)
		r.Get("/dex/{id}", s.referenceHandler.HandleDex)

		r.Post("/calc/stats", s.calcHandler.HandleCalcStats)

		r.Route("/collection", func(r chi.Router) {
			r.Get("/", s.collectionHandler.HandleList)
			r.Post("/", s.collectionHandler.HandleAdd)
			r.Delete("/", s.collectionHandler.HandleClear)
			r.Get("/export", s.collectionHandler.HandleExport)
			r.Post("/import", s.collectionHandler.HandleImport)
			r.Get("/{id}", s.collectionHandler.HandleGet)
			r.Put("/{id}", s.collectionHandler.HandleUpdate)
			r.Delete("/{id}", s.collectionHandler.HandleRemove)
			r.Get("/{id}/stats", s.collectionHandler.HandleStats)
		})

		r.Get("/analytics", s.analyticsHandler.HandleAnalytics)
	})

	for _, m := range s.cfg.mounts {
		r.Mount(m.pattern, m.handler)
	}
	return r
}

type errorResponse struct {
	Code    string                  `json:"code"`
	Message string                  `json:"message"`
	Fields  []validation.FieldError `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	resp := errorResponse{Code: code, Message: msg}
	var verr *validation.Error
	if errors.As(err, &verr) {
		resp.Fields = verr.Fields
	}
	writeJSON(w, status, resp)
}

// writeServiceError maps service error kinds to HTTP statuses.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	err = Wrap(op, err)
	switch {
	case errors.Is(err, service.ErrNotFound), errors.Is(err, refdata.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, ErrBadRequest):
		writeError(w, http.StatusBadRequest, "validation_error", err)
	case errors.Is(err, service.ErrUnknownSpecies):
		writeError(w, http.StatusUnprocessableEntity, "unknown_species", err)
	case errors.Is(err, service.ErrNotStarted):
		writeError(w, http.StatusServiceUnavailable, "unavailable", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}

// decodeJSON reads a single JSON value from the request body.
func decodeJSON(w http.ResponseWriter, r *http.Request, op string, v any) bool {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	data, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "too_large", NewKind(op, ErrTooLarge))
			return false
		}
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return false
	}
	return true
}

// Config holds the middleware and clock settings of a Server.
type Config struct {
	corsOrigins  []string
	rateLimitRPM int
	now          func() time.Time
	mounts       []mount
}

type mount struct {
	pattern string
	handler http.Handler
}

// Option applies a configuration option to the Server.
type Option func(*Config)

func defaultConfig() Config {
	return Config{corsOrigins: []string{"*"}, now: time.Now}
}

// WithCORSOrigins sets the allowed browser origins.
func WithCORSOrigins(origins []string) Option {
	return func(c *Config) {
		if len(origins) > 0 {
			c.corsOrigins = origins
		}
	}
}

// WithRateLimit caps requests per minute per client IP on /api/v1. Zero disables it.
func WithRateLimit(rpm int) Option {
	return func(c *Config) {
		if rpm >= 0 {
			c.rateLimitRPM = rpm
		}
	}
}

// WithClock sets the clock used for export file names.
func WithClock(now func() time.Time) Option {
	return func(c *Config) {
		if now != nil {
			c.now = now
		}
	}
}

// WithMount attaches an extra handler, e.g. API docs, under pattern.
func WithMount(pattern string, h http.Handler) Option {
	return func(c *Config) {
		if h != nil {
			c.mounts = append(c.mounts, mount{pattern: pattern, handler: h})
		}
	}
}
