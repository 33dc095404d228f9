// Package v1handler implements the /v1 HTTP API on top of the analyzer.
package v1handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"phishguard/internal/analyzer"
	"phishguard/internal/config"
	"phishguard/pkg/logger"
	"phishguard/pkg/serrors"
	"phishguard/pkg/storage"
)

const (
	// DefaultLimit is the page size of analysis listings.
	DefaultLimit = 20
	// MaxLimit caps the page size of analysis listings.
	MaxLimit = 100
	// MaxBodyBytes bounds request bodies. Page content is the largest payload.
	MaxBodyBytes = 1 << 20
)

// Deps are the collaborators of the handler. Jobs may be nil when the
// storage backend has no job queue.
type Deps struct {
	Analyzer analyzer.Analyzer
	Jobs     storage.JobStorage
}

// Options tune the handler.
type Options struct {
	// SyncMaxAttempts is the retry budget of enqueued blacklist syncs.
	SyncMaxAttempts int
}

// NewHandlerOptions constructs an Options value from the provided application config.
func NewHandlerOptions(cfg *config.Config) Options {
	return Options{SyncMaxAttempts: cfg.Worker.MaxAttempts}
}

// Handler serves the /v1 routes.
type Handler struct {
	deps    Deps
	options Options
}

func New(deps Deps, options Options) *Handler {
	return &Handler{deps: deps, options: options}
}

// Routes returns the v1 routes relative to their mount point. Every route
// passes through auth.
func (h *Handler) Routes(auth func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(auth)

	r.Post("/analyze", h.Analyze)
	r.Post("/analyze/page", h.AnalyzePage)
	r.Get("/analyses", h.Analyses)
	r.Get("/analyses/{id}", h.Analysis)
	r.Post("/corpus/reload", h.ReloadCorpus)
	r.Post("/blacklist/sync", h.SyncBlacklist)
	r.Delete("/cache", h.InvalidateCache)

	return r
}

// ErrorResponse is the body and status of a failed request.
type ErrorResponse struct {
	StatusCode int
	Code       string
	Message    string
}

var kindStatus = map[serrors.Kind]int{ //nolint: gochecknoglobals
	serrors.ErrBadRequest:   http.StatusBadRequest,
	serrors.ErrUnauthorized: http.StatusUnauthorized,
	serrors.ErrNotFound:     http.StatusNotFound,
	serrors.ErrRateLimited:  http.StatusTooManyRequests,
	serrors.ErrUnavailable:  http.StatusServiceUnavailable,
	serrors.ErrTimeout:      http.StatusGatewayTimeout,
}

var kindMessage = map[serrors.Kind]string{ //nolint: gochecknoglobals
	serrors.ErrBadRequest:   "bad request",
	serrors.ErrUnauthorized: "unauthorized",
	serrors.ErrNotFound:     "resource not found",
	serrors.ErrRateLimited:  "too many requests",
	serrors.ErrUnavailable:  "service unavailable",
	serrors.ErrTimeout:      "request timed out",
}

// NewError maps err to a response. Errors without a semantic kind, and
// internal ones, are logged and answered with a generic 500.
func (h *Handler) NewError(ctx context.Context, err error) *ErrorResponse {
	kind := serrors.KindOf(err)
	status, ok := kindStatus[kind]
	if !ok {
		logger.Error(ctx, "request failed", zap.Error(err))

		return &ErrorResponse{
			StatusCode: http.StatusInternalServerError,
			Code:       serrors.ErrInternal.Error(),
			Message:    "internal error",
		}
	}

	msg := kindMessage[kind]
	var semantic *serrors.Error
	if errors.As(err, &semantic) && semantic.Message() != "" {
		msg = semantic.Message()
	}

	return &ErrorResponse{StatusCode: status, Code: kind.Error(), Message: msg}
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	res := h.NewError(r.Context(), err)
	writeJSON(w, res.StatusCode, encodeError(res))
}
