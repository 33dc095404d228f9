package kisa_test

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"phishguard/pkg/kisa"
	"phishguard/pkg/serrors"
)

// rtFunc allows using a function as an http.RoundTripper.
type rtFunc func(*http.Request) (*http.Response, error)

func (f rtFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func respond(status int, body string) rtFunc {
	return func(*http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: status,
			Body:       io.NopCloser(strings.NewReader(body)),
			Header:     make(http.Header),
		}, nil
	}
}

const pageBody = `{
  "currentCount": 4,
  "data": [
    {"날짜": "2024-01-02", "홈페이지주소": "http://Evil-Naver.com/login"},
    {"날짜": "2024-01-02", "홈페이지주소": "kakao-event.net/prize"},
    {"날짜": "2024-01-02", "홈페이지주소": "evil-naver.com"},
    {"날짜": "2024-01-02", "홈페이지주소": ""},
    {"날짜": "2024-01-02"}
  ],
  "matchCount": 2345,
  "page": 2,
  "perPage": 1000,
  "totalCount": 2345
}`

func TestClient_FetchPage(t *testing.T) {
	var got *http.Request
	rt := func(r *http.Request) (*http.Response, error) {
		got = r
		return respond(http.StatusOK, pageBody)(r)
	}
	c := kisa.New(&http.Client{Transport: rtFunc(rt)}, "secret key", kisa.WithBaseURL("https://feed.test/v1"))

	page, err := c.FetchPage(context.Background(), 2)
	require.NoError(t, err)
	require.Equal(t, "feed.test", got.URL.Host)
	require.Equal(t, "secret key", got.URL.Query().Get("serviceKey"))
	require.Equal(t, "2", got.URL.Query().Get("page"))
	require.Equal(t, "1000", got.URL.Query().Get("perPage"))
	require.Equal(t, "JSON", got.URL.Query().Get("returnType"))

	require.Equal(t, 2, page.Number)
	require.Equal(t, 2345, page.TotalCount)
	require.Equal(t, 3, page.TotalPages())
	require.Equal(t, []string{"evil-naver.com", "kakao-event.net"}, page.Hostnames)
}

func TestClient_FetchPage_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		kind   error
	}{
		{name: "rate limited", status: http.StatusTooManyRequests, kind: serrors.ErrRateLimited},
		{name: "bad key", status: http.StatusUnauthorized, body: `{"code":-4}`, kind: serrors.ErrUnauthorized},
		{name: "forbidden", status: http.StatusForbidden, kind: serrors.ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := kisa.New(&http.Client{Transport: respond(tt.status, tt.body)}, "key")
			_, err := c.FetchPage(context.Background(), 1)
			require.ErrorIs(t, err, tt.kind)
		})
	}

	t.Run("server error", func(t *testing.T) {
		c := kisa.New(&http.Client{Transport: respond(http.StatusBadGateway, "upstream down")}, "key")
		_, err := c.FetchPage(context.Background(), 1)
		require.ErrorContains(t, err, "status 502")
	})

	t.Run("invalid body", func(t *testing.T) {
		c := kisa.New(&http.Client{Transport: respond(http.StatusOK, `{"data": 12}`)}, "key")
		_, err := c.FetchPage(context.Background(), 1)
		require.ErrorContains(t, err, "could not decode kisa page")
	})

	t.Run("no key", func(t *testing.T) {
		c := kisa.New(http.DefaultClient, "")
		require.False(t, c.Configured())
		_, err := c.FetchPage(context.Background(), 1)
		require.ErrorIs(t, err, serrors.ErrUnavailable)
	})
}

func TestDecodePage_NullData(t *testing.T) {
	page, err := kisa.DecodePage([]byte(`{"page":1,"perPage":10,"totalCount":0,"data":null}`))
	require.NoError(t, err)
	require.Empty(t, page.Hostnames)
	require.Equal(t, 0, page.TotalPages())
}

func TestHostname(t *testing.T) {
	tests := []struct {
		in   string
		host string
		ok   bool
	}{
		{in: "http://example.com/path", host: "example.com", ok: true},
		{in: "HTTPS://Example.COM:8443/x", host: "example.com", ok: true},
		{in: "example.com/login?x=1", host: "example.com", ok: true},
		{in: "  sub.example.co.kr  ", host: "sub.example.co.kr", ok: true},
		{in: "", ok: false},
		{in: "http://", ok: false},
		{in: "http://%zz", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			host, ok := kisa.Hostname(tt.in)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.host, host)
		})
	}
}
