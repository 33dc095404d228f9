package gemini_test

import (
	"context"
	"io"
	"net/http"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-faster/jx"
	"github.com/stretchr/testify/require"

	"phishguard/pkg/llm"
	"phishguard/pkg/llm/gemini"
	"phishguard/pkg/logger"
	"phishguard/pkg/serrors"
)

func TestMain(m *testing.M) {
	logger.Setup(logger.DevelopmentEnvironment)

	os.Exit(m.Run())
}

type rtFunc func(*http.Request) (*http.Response, error)

func (f rtFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

const okBody = `{
  "candidates": [
    {"content": {"parts": [{"text": "{\"verdict\":\"safe\"}"}, {"text": "ignored"}], "role": "model"}},
    {"content": {"parts": [{"text": "second candidate"}]}}
  ],
  "usageMetadata": {"totalTokenCount": 42}
}`

func response(code int, body string) *http.Response {
	return &http.Response{StatusCode: code, Body: io.NopCloser(strings.NewReader(body))}
}

func noWait(int) time.Duration { return 0 }

func TestClient_Complete(t *testing.T) {
	c := gemini.New(&http.Client{Transport: rtFunc(func(r *http.Request) (*http.Response, error) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1beta/models/gemini-2.5-flash-lite:generateContent", r.URL.Path)
		require.Equal(t, "secret", r.URL.Query().Get("key"))
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		b, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.True(t, jx.Valid(b))
		require.Contains(t, string(b), `"system_instruction":{"parts":[{"text":"sys"}]}`)
		require.Contains(t, string(b), `"maxOutputTokens":1024`)

		return response(http.StatusOK, okBody), nil
	})}, llm.Options{APIKey: "secret"})

	require.Equal(t, gemini.Provider, c.Provider())
	out, err := c.Complete(context.Background(), "sys", "user prompt")
	require.NoError(t, err)
	require.JSONEq(t, `{"verdict":"safe"}`, out)
}

func TestClient_Complete_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	c := gemini.New(&http.Client{Transport: rtFunc(func(*http.Request) (*http.Response, error) {
		if calls.Add(1) < 3 {
			return response(http.StatusServiceUnavailable, "overloaded"), nil
		}

		return response(http.StatusOK, okBody), nil
	})}, llm.Options{APIKey: "secret", MaxRetries: 2, Backoff: noWait})

	_, err := c.Complete(context.Background(), "sys", "prompt")
	require.NoError(t, err)
	require.EqualValues(t, 3, calls.Load())
}

func TestClient_Complete_GivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	c := gemini.New(&http.Client{Transport: rtFunc(func(*http.Request) (*http.Response, error) {
		calls.Add(1)

		return response(http.StatusInternalServerError, strings.Repeat("x", 500)), nil
	})}, llm.Options{APIKey: "secret", MaxRetries: 2, Backoff: noWait})

	_, err := c.Complete(context.Background(), "sys", "prompt")
	require.ErrorIs(t, err, serrors.ErrUnavailable)
	require.EqualValues(t, 3, calls.Load())

	var statusErr *llm.StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Len(t, statusErr.Body, 200)
}

func TestClient_Complete_DoesNotRetryClientErrors(t *testing.T) {
	tests := []struct {
		name string
		code int
		kind serrors.Kind
	}{
		{name: "rate limited", code: http.StatusTooManyRequests, kind: serrors.ErrRateLimited},
		{name: "unauthorized", code: http.StatusForbidden, kind: serrors.ErrUnauthorized},
		{name: "bad request", code: http.StatusBadRequest, kind: serrors.ErrBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			c := gemini.New(&http.Client{Transport: rtFunc(func(*http.Request) (*http.Response, error) {
				calls.Add(1)

				return response(tt.code, "nope"), nil
			})}, llm.Options{APIKey: "secret", MaxRetries: 2, Backoff: noWait})

			_, err := c.Complete(context.Background(), "sys", "prompt")
			require.ErrorIs(t, err, tt.kind)
			require.EqualValues(t, 1, calls.Load())
		})
	}
}

func TestClient_Complete_NoAPIKey(t *testing.T) {
	c := gemini.New(nil, llm.Options{})

	_, err := c.Complete(context.Background(), "sys", "prompt")
	require.ErrorIs(t, err, llm.ErrNoAPIKey)
}

func TestDecodeResponse(t *testing.T) {
	_, err := gemini.DecodeResponse([]byte(`{"candidates":[]}`))
	require.ErrorIs(t, err, llm.ErrEmptyResponse)

	_, err = gemini.DecodeResponse([]byte(`not json`))
	require.Error(t, err)
}
