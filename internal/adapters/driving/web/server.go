package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/hashicorp/go-multierror"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/BASILR00T/kawnhub-sub000/internal/core/ports/driving"
	"github.com/BASILR00T/kawnhub-sub000/internal/logger"
)

// API endpoints are relative to apiPrefix.
const (
	apiPrefix          = "/api"
	searchEndpoint     = "/search"
	topicsEndpoint     = "/topics"
	topicEndpoint      = "/topics/{id}"
	corpusEndpoint     = "/corpus"
	invalidateEndpoint = "/corpus/invalidate"
	metricsEndpoint    = "/metrics"
	healthEndpoint     = "/healthz"

	shutdownTimeout = 5 * time.Second
)

// Config holds the dependencies and settings of the HTTP server.
type Config struct {
	Search driving.SearchService
	Topics driving.TopicService
	Corpus driving.CorpusService

	// Gatherer serves /metrics. Defaults to prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer

	ListenAddr string

	// RateLimit is the sustained request rate per second for /api routes.
	// Zero disables rate limiting.
	RateLimit float64
	RateBurst int
}

func (cfg *Config) validate() error {
	var err error
	if cfg.Search == nil {
		err = multierror.Append(err, ErrNoSearchService)
	}
	if cfg.Topics == nil {
		err = multierror.Append(err, ErrNoTopicService)
	}
	if cfg.Corpus == nil {
		err = multierror.Append(err, ErrNoCorpusService)
	}
	if cfg.ListenAddr == "" {
		err = multierror.Append(err, ErrNoListenAddr)
	}
	if cfg.RateLimit < 0 || cfg.RateBurst < 0 {
		err = multierror.Append(err, ErrInvalidRateLimit)
	}
	return err
}

// Server is the HTTP front end.
type Server struct {
	cfg    Config
	router *mux.Router
}

// NewServer validates cfg and builds the router.
func NewServer(cfg Config) (*Server, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("web server: config validation failed: %w", err)
	}
	if cfg.Gatherer == nil {
		cfg.Gatherer = prometheus.DefaultGatherer
	}

	s := &Server{
		cfg:    cfg,
		router: mux.NewRouter(),
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.router.Use(requestID)

	api := s.router.PathPrefix(apiPrefix).Subrouter()
	if s.cfg.RateLimit > 0 {
		burst := s.cfg.RateBurst
		if burst == 0 {
			burst = 1
		}
		api.Use(rateLimit(rate.NewLimiter(rate.Limit(s.cfg.RateLimit), burst)))
	}

	api.HandleFunc(searchEndpoint, s.handleSearch).Methods(http.MethodGet)
	api.HandleFunc(topicsEndpoint, s.handleListTopics).Methods(http.MethodGet)
	api.HandleFunc(topicsEndpoint, s.handleCreateTopic).Methods(http.MethodPost)
	api.HandleFunc(topicEndpoint, s.handleGetTopic).Methods(http.MethodGet)
	api.HandleFunc(topicEndpoint, s.handlePutTopic).Methods(http.MethodPut)
	api.HandleFunc(topicEndpoint, s.handleDeleteTopic).Methods(http.MethodDelete)
	api.HandleFunc(corpusEndpoint, s.handleCorpusStats).Methods(http.MethodGet)
	api.HandleFunc(invalidateEndpoint, s.handleInvalidate).Methods(http.MethodPost)

	s.router.Handle(metricsEndpoint, promhttp.HandlerFor(s.cfg.Gatherer, promhttp.HandlerOpts{})).
		Methods(http.MethodGet)
	s.router.HandleFunc(healthEndpoint, s.handleHealth).Methods(http.MethodGet)

	s.router.NotFoundHandler = http.HandlerFunc(s.handleNotFound)
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	l, err := net.Listen("tcp", s.cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.cfg.ListenAddr, err)
	}
	return s.Serve(ctx, l)
}

// Serve serves on l until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("starting web server on %s", l.Addr())
	err := srv.Serve(l)
	if errors.Is(err, http.ErrServerClosed) {
		err = nil
	}
	return err
}
