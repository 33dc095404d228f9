// Package kisa reads the KISA phishing-site feed published on the Korean
// public data portal (odcloud).
package kisa

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-faster/jx"

	"phishguard/pkg/serrors"
)

const (
	// DefaultBaseURL is the odcloud dataset endpoint of the feed.
	DefaultBaseURL = "https://api.odcloud.kr/api/15109780/v1/uddi:707478dd-938f-4155-badb-fae6202ee7ed"
	// DefaultPageSize is the largest page the portal serves.
	DefaultPageSize = 1000
	// Source is the blacklist source name of hostnames read from the feed.
	Source = "kisa"

	urlField     = "홈페이지주소"
	maxErrorBody = 200
)

// ErrNoServiceKey is returned when the client was created without a key.
var ErrNoServiceKey = serrors.With(serrors.ErrUnavailable, "kisa: no service key configured")

// Page is one page of the feed.
type Page struct {
	Number     int
	PerPage    int
	TotalCount int
	// Hostnames are the lower-cased, de-duplicated hosts of the page in feed order.
	Hostnames []string
}

// TotalPages is the number of pages the feed spans at this page size.
func (p Page) TotalPages() int {
	if p.PerPage <= 0 {
		return 0
	}

	return (p.TotalCount + p.PerPage - 1) / p.PerPage
}

// Client fetches feed pages.
type Client struct {
	httpClient *http.Client
	baseURL    string
	serviceKey string
	pageSize   int
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL replaces DefaultBaseURL.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// WithPageSize replaces DefaultPageSize.
func WithPageSize(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// New creates a feed client authenticated with serviceKey.
func New(httpClient *http.Client, serviceKey string, opts ...Option) *Client {
	c := &Client{
		httpClient: httpClient,
		baseURL:    DefaultBaseURL,
		serviceKey: serviceKey,
		pageSize:   DefaultPageSize,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Configured reports whether a service key is set.
func (c *Client) Configured() bool { return c.serviceKey != "" }

// PageSize returns the number of entries requested per page.
func (c *Client) PageSize() int { return c.pageSize }

// FetchPage downloads page number (1-based).
//
// A 429 answer is reported as serrors.ErrRateLimited and 401/403 as
// serrors.ErrUnauthorized.
func (c *Client) FetchPage(ctx context.Context, number int) (*Page, error) {
	if !c.Configured() {
		return nil, ErrNoServiceKey
	}

	q := url.Values{}
	q.Set("serviceKey", c.serviceKey)
	q.Set("page", strconv.Itoa(number))
	q.Set("perPage", strconv.Itoa(c.pageSize))
	q.Set("returnType", "JSON")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
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

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, serrors.With(serrors.ErrRateLimited, "kisa: rate limited on page %d", number)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, serrors.With(serrors.ErrUnauthorized, "kisa: service key rejected: %s", truncate(b))
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, fmt.Errorf("kisa feed returned status %d: %s", resp.StatusCode, truncate(b))
	}

	page, err := DecodePage(b)
	if err != nil {
		return nil, err
	}
	if page.Number == 0 {
		page.Number = number
	}
	if page.PerPage == 0 {
		page.PerPage = c.pageSize
	}

	return page, nil
}

// DecodePage parses an odcloud page body.
func DecodePage(body []byte) (*Page, error) {
	page := &Page{}
	seen := make(map[string]struct{})

	d := jx.DecodeBytes(body)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "page":
			n, err := d.Int()
			page.Number = n

			return err
		case "perPage":
			n, err := d.Int()
			page.PerPage = n

			return err
		case "totalCount":
			n, err := d.Int()
			page.TotalCount = n

			return err
		case "data":
			if d.Next() == jx.Null {
				return d.Null()
			}

			return d.Arr(func(d *jx.Decoder) error {
				raw, err := decodeEntry(d)
				if err != nil {
					return err
				}
				host, ok := Hostname(raw)
				if !ok {
					return nil
				}
				if _, dup := seen[host]; !dup {
					seen[host] = struct{}{}
					page.Hostnames = append(page.Hostnames, host)
				}

				return nil
			})
		default:
			return d.Skip()
		}
	})
	if err != nil {
		return nil, fmt.Errorf("could not decode kisa page: %w", err)
	}

	return page, nil
}

// decodeEntry returns the URL field of one feed row.
func decodeEntry(d *jx.Decoder) (string, error) {
	var raw string
	err := d.Obj(func(d *jx.Decoder, key string) error {
		if key != urlField || d.Next() != jx.String {
			return d.Skip()
		}
		s, err := d.Str()
		raw = s

		return err
	})

	return raw, err
}

// Hostname extracts the lower-cased host of a feed URL. Entries often lack a
// scheme, in which case http is assumed.
func Hostname(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	host := strings.ToLower(u.Hostname())

	return host, host != ""
}

func truncate(b []byte) string {
	s := string(b)
	if len(s) > maxErrorBody {
		s = s[:maxErrorBody]
	}

	return s
}
