package registrar_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"phishguard/pkg/registrar"
	mockregistrar "phishguard/pkg/registrar/mock"
	"phishguard/pkg/serrors"
)

// rtFunc allows using a function as an http.RoundTripper.
type rtFunc func(*http.Request) (*http.Response, error)

func (f rtFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

const rdapBody = `{
  "objectClassName": "domain",
  "ldhName": "EXAMPLE.COM",
  "events": [
    {"eventAction": "expiration", "eventDate": "2026-08-13T04:00:00Z"},
    {"eventAction": "registration", "eventDate": "1995-08-14T04:00:00Z"}
  ],
  "entities": [
    {
      "objectClassName": "entity",
      "roles": ["technical"],
      "vcardArray": ["vcard", [["version", {}, "text", "4.0"], ["fn", {}, "text", "Tech Contact"]]]
    },
    {
      "objectClassName": "entity",
      "roles": ["registrar"],
      "vcardArray": ["vcard", [["version", {}, "text", "4.0"], ["fn", {}, "text", "RESERVED-IANA"]]]
    }
  ]
}`

func TestParseDate(t *testing.T) {
	want := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	for _, s := range []string{"2024-03-05T00:00:00Z", "2024-03-05", "05-Mar-2024", "2024.03.05", " 2024-03-05 00:00:00 "} {
		got, err := registrar.ParseDate(s)
		require.NoError(t, err, s)
		require.True(t, want.Equal(got), s)
	}

	_, err := registrar.ParseDate("yesterday")
	require.Error(t, err)
}

func TestParseRDAP(t *testing.T) {
	rec, err := registrar.ParseRDAP("example.com", []byte(rdapBody))
	require.NoError(t, err)
	require.Equal(t, "example.com", rec.Domain)
	require.Equal(t, registrar.SourceRDAP, rec.Source)
	require.Equal(t, "RESERVED-IANA", rec.Registrar)
	require.True(t, time.Date(1995, 8, 14, 4, 0, 0, 0, time.UTC).Equal(rec.CreatedAt))
}

func TestParseRDAP_NoRegistration(t *testing.T) {
	_, err := registrar.ParseRDAP("example.com", []byte(`{"events":[{"eventAction":"last changed","eventDate":"2024-01-01T00:00:00Z"}]}`))
	require.ErrorIs(t, err, registrar.ErrNoCreationDate)

	_, err = registrar.ParseRDAP("example.com", []byte(`not json`))
	require.Error(t, err)
}

func TestRDAP_Lookup(t *testing.T) {
	c := registrar.NewRDAP(&http.Client{Transport: rtFunc(func(r *http.Request) (*http.Response, error) {
		require.Equal(t, "rdap.example.net", r.URL.Host)
		require.Equal(t, "/domain/example.com", r.URL.Path)

		return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(strings.NewReader(rdapBody))}, nil
	})}, "https://rdap.example.net/")

	rec, err := c.Lookup(context.Background(), "example.com")
	require.NoError(t, err)
	require.Equal(t, 1995, rec.CreatedAt.Year())
}

func TestRDAP_Lookup_NotFound(t *testing.T) {
	c := registrar.NewRDAP(&http.Client{Transport: rtFunc(func(*http.Request) (*http.Response, error) {
		return &http.Response{StatusCode: http.StatusNotFound, Body: io.NopCloser(strings.NewReader(`{}`))}, nil
	})}, "")

	_, err := c.Lookup(context.Background(), "nope.example")
	require.ErrorIs(t, err, serrors.ErrNotFound)
}

func TestChain_Lookup(t *testing.T) {
	ctrl := gomock.NewController(t)
	primary := mockregistrar.NewMockLookup(ctrl)
	fallback := mockregistrar.NewMockLookup(ctrl)

	want := registrar.Record{Domain: "example.com", Source: registrar.SourceRDAP}
	primary.EXPECT().Lookup(gomock.Any(), "example.com").Return(registrar.Record{}, errors.New("whois refused"))
	fallback.EXPECT().Lookup(gomock.Any(), "example.com").Return(want, nil)

	got, err := registrar.Chain{primary, fallback}.Lookup(context.Background(), "example.com")
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestChain_Lookup_AllFail(t *testing.T) {
	ctrl := gomock.NewController(t)
	primary := mockregistrar.NewMockLookup(ctrl)
	fallback := mockregistrar.NewMockLookup(ctrl)

	errWhois := errors.New("whois refused")
	primary.EXPECT().Lookup(gomock.Any(), gomock.Any()).Return(registrar.Record{}, errWhois)
	fallback.EXPECT().Lookup(gomock.Any(), gomock.Any()).Return(registrar.Record{}, registrar.ErrNoCreationDate)

	_, err := registrar.Chain{primary, fallback}.Lookup(context.Background(), "example.com")
	require.ErrorIs(t, err, errWhois)
	require.ErrorIs(t, err, registrar.ErrNoCreationDate)

	_, err = registrar.Chain{}.Lookup(context.Background(), "example.com")
	require.Error(t, err)
}
