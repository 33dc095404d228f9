// Package llm defines the port used to ask a hosted language model for a
// phishing verdict, together with the HTTP plumbing shared by the provider
// implementations in the gemini and glm sub-packages.
//
//go:generate mockgen -package mockllm -source=llm.go -destination=mock/mockllm.go *
package llm

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/go-faster/jx"
	"go.uber.org/zap"

	"phishguard/pkg/logger"
	"phishguard/pkg/serrors"
)

const (
	// DefaultTimeout bounds a single provider call.
	DefaultTimeout = 30 * time.Second
	// DefaultMaxRetries is the number of retries after the first attempt.
	DefaultMaxRetries = 2
	// Temperature is sent to every provider.
	Temperature = 0.3
	// MaxOutputTokens caps the length of a reply.
	MaxOutputTokens = 1024

	maxErrorBody = 200
)

var (
	// ErrEmptyResponse is returned when a provider replies without any text.
	ErrEmptyResponse = errors.New("llm returned an empty response")
	// ErrNoAPIKey is returned by clients created without an API key.
	ErrNoAPIKey = serrors.With(serrors.ErrUnavailable, "llm api key is not configured")
)

// Client sends a single prompt to a hosted model.
type Client interface {
	// Provider names the backing service, e.g. "gemini".
	Provider() string
	// Complete returns the raw text of the model reply.
	Complete(ctx context.Context, systemPrompt, prompt string) (string, error)
}

// Options configures a provider client.
type Options struct {
	APIKey     string
	Model      string
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	// Backoff returns the wait before the given retry (1-based). The default
	// waits 2^attempt seconds.
	Backoff func(attempt int) time.Duration
}

// WithDefaults fills zero fields.
func (o Options) WithDefaults(model, baseURL string) Options {
	if o.Model == "" {
		o.Model = model
	}
	if o.BaseURL == "" {
		o.BaseURL = baseURL
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.MaxRetries < 0 {
		o.MaxRetries = 0
	}
	if o.Backoff == nil {
		o.Backoff = ExponentialBackoff
	}

	return o
}

// ExponentialBackoff waits 2^attempt seconds.
func ExponentialBackoff(attempt int) time.Duration {
	return time.Duration(math.Pow(2, float64(attempt))) * time.Second
}

// StatusError is returned for non-2xx provider responses.
type StatusError struct {
	Provider string
	Code     int
	Body     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s api error %d: %s", e.Provider, e.Code, e.Body)
}

// Retryable reports whether the request may succeed when repeated.
func (e *StatusError) Retryable() bool {
	return e.Code >= http.StatusInternalServerError
}

// Kind maps the status to a semantic error kind.
func (e *StatusError) Kind() serrors.Kind {
	if k := serrors.FromStatus(e.Code); k != nil {
		return k
	}

	return serrors.ErrUnavailable
}

// Retry calls fn until it succeeds, fails with a non-retryable error or runs
// out of retries. Only 5xx StatusErrors are retried.
func Retry(ctx context.Context, provider string, opts Options, fn func(ctx context.Context) (string, error)) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= opts.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := opts.Backoff(attempt)
			logger.Get(ctx).Debug("retrying llm call",
				zap.String("provider", provider), zap.Int("attempt", attempt), zap.Duration("delay", delay))

			select {
			case <-ctx.Done():
				return "", fmt.Errorf("llm retry aborted: %w", ctx.Err())
			case <-time.After(delay):
			}
		}

		callCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
		out, err := fn(callCtx)
		cancel()
		if err == nil {
			return out, nil
		}

		lastErr = err
		logger.Get(ctx).Warn("llm call failed",
			zap.String("provider", provider), zap.Int("attempt", attempt+1), zap.Error(err))

		var statusErr *StatusError
		if !errors.As(err, &statusErr) || !statusErr.Retryable() {
			break
		}
	}

	var statusErr *StatusError
	if errors.As(lastErr, &statusErr) {
		return "", serrors.Wrap(statusErr.Kind(), lastErr, "%s request failed", provider)
	}
	if errors.Is(lastErr, context.DeadlineExceeded) {
		return "", serrors.Wrap(serrors.ErrTimeout, lastErr, "%s request timed out", provider)
	}

	return "", lastErr
}

// Post sends body to endpoint and returns the response body of a 2xx reply.
func Post(ctx context.Context, httpClient *http.Client, provider, endpoint string,
	headers map[string]string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if len(b) > maxErrorBody {
			b = b[:maxErrorBody]
		}

		return nil, &StatusError{Provider: provider, Code: resp.StatusCode, Body: string(b)}
	}

	return b, nil
}

// First decodes the first element of a JSON array with fn and skips the rest.
func First(d *jx.Decoder, fn func(d *jx.Decoder) error) error {
	i := 0

	return d.Arr(func(d *jx.Decoder) error {
		defer func() { i++ }()
		if i > 0 {
			return d.Skip()
		}

		return fn(d)
	})
}
