// Package api assembles the HTTP surface of the service: the authenticated
// v1 routes, the OpenAPI document with its playground, metrics and optional
// profiling.
package api

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggest/swgui/v5emb"
	"go.opentelemetry.io/otel"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"phishguard/internal/api/handler/v1handler"
	"phishguard/internal/config"
	"phishguard/pkg/controller"
)

//go:embed specs/v1.yaml
var v1Spec []byte

const (
	specPath = "/specs/v1.yaml"
	docsPath = "/v1/docs"

	timeoutBody = `{"code":"TIMEOUT","message":"request timed out"}`
)

// Options configures NewServer. Zero timeouts keep the net/http defaults,
// except RequestTimeout which must be set.
type Options struct {
	SecHandlerOptions *v1handler.SecHandlerOptions
	HandlerOptions    v1handler.Options

	Addr              string
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	MaxHeaderBytes    int

	// RequestTimeout bounds each handler. Escalated analyses wait for the
	// model, so it has to exceed the LLM client timeout.
	RequestTimeout time.Duration

	MetricsPath    string
	AllowedOrigins []string
	Pprof          bool
}

func NewOptions(cfg *config.Config) Options {
	return Options{
		SecHandlerOptions: v1handler.NewSecHandlerOptions(cfg),
		HandlerOptions:    v1handler.NewHandlerOptions(cfg),

		Addr:              cfg.HTTP.Addr,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		MaxHeaderBytes:    cfg.HTTP.MaxHeaderBytes,
		RequestTimeout:    cfg.HTTP.RequestTimeout,

		MetricsPath:    cfg.HTTP.MetricsPath,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		Pprof:          cfg.HTTP.Pprof,
	}
}

type Deps struct {
	v1handler.Deps
}

// Server is an http.Server that also owns the OpenTelemetry meter provider
// backing the Prometheus exporter.
type Server struct {
	*http.Server

	meters *sdkmetric.MeterProvider
}

// Shutdown stops accepting requests, waits for in-flight ones and then
// flushes the meter provider.
func (s *Server) Shutdown(ctx context.Context) error {
	return errors.Join(s.Server.Shutdown(ctx), s.meters.Shutdown(ctx))
}

// NewServer builds the router and the server around it. Requests pass
// through access logging, then CORS, then a per-request timeout.
func NewServer(deps Deps, opts Options) (*Server, error) {
	if opts.RequestTimeout <= 0 {
		return nil, errors.New("request timeout must be positive")
	}

	secHandler, err := v1handler.NewSecHandler(opts.SecHandlerOptions)
	if err != nil {
		return nil, fmt.Errorf("could not create sec handler: %w", err)
	}

	exp, err := otelprom.New(otelprom.WithRegisterer(prometheus.DefaultRegisterer))
	if err != nil {
		return nil, fmt.Errorf("could not create otel exporter: %w", err)
	}
	meters := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exp))
	otel.SetMeterProvider(meters)

	r := chi.NewRouter()
	r.Use(controller.WithLogger, controller.CORS(opts.AllowedOrigins))

	if opts.MetricsPath != "" {
		r.Handle(opts.MetricsPath, promhttp.Handler())
	}
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Get(specPath, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(v1Spec)
	})
	r.Handle(docsPath+"/*", v5emb.New("PhishGuard Analysis Service", specPath, docsPath+"/"))
	r.Mount("/v1", v1handler.New(deps.Deps, opts.HandlerOptions).Routes(secHandler.Middleware))
	if opts.Pprof {
		r.Handle(controller.PprofPrefix+"*", controller.PprofMux())
	}

	return &Server{
		Server: &http.Server{
			Addr:              opts.Addr,
			Handler:           http.TimeoutHandler(r, opts.RequestTimeout, timeoutBody),
			ReadTimeout:       opts.ReadTimeout,
			ReadHeaderTimeout: opts.ReadHeaderTimeout,
			WriteTimeout:      opts.WriteTimeout,
			IdleTimeout:       opts.IdleTimeout,
			MaxHeaderBytes:    opts.MaxHeaderBytes,
		},
		meters: meters,
	}, nil
}
