package normalizer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"phishguard/internal/normalizer"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want normalizer.ParsedURL
	}{
		{
			name: "full https URL",
			in:   "https://www.naver.com/path?q=test&lang=ko#top",
			want: normalizer.ParsedURL{
				Protocol: "https:",
				Hostname: "www.naver.com",
				Path:     "/path",
				QueryParams: []normalizer.QueryParam{
					{Key: "q", Value: "test"},
					{Key: "lang", Value: "ko"},
				},
				Fragment:          "top",
				RegistrableDomain: "naver.com",
				Subdomain:         "www",
				TopLevelSuffix:    "com",
			},
		},
		{
			name: "missing scheme is retried with https",
			in:   "Example.co.kr",
			want: normalizer.ParsedURL{
				Protocol:          "https:",
				Hostname:          "example.co.kr",
				Path:              "/",
				RegistrableDomain: "example.co.kr",
				TopLevelSuffix:    "co.kr",
			},
		},
		{
			name: "host and port without scheme",
			in:   "shop.example.com:8443/cart",
			want: normalizer.ParsedURL{
				Protocol:          "https:",
				Hostname:          "shop.example.com",
				Port:              "8443",
				Path:              "/cart",
				RegistrableDomain: "example.com",
				Subdomain:         "shop",
				TopLevelSuffix:    "com",
			},
		},
		{
			name: "ipv4 literal",
			in:   "http://192.168.0.1:8080/admin",
			want: normalizer.ParsedURL{
				Protocol:    "http:",
				Hostname:    "192.168.0.1",
				Port:        "8080",
				Path:        "/admin",
				IsIPLiteral: true,
			},
		},
		{
			name: "bracketed ipv6 loopback",
			in:   "http://[::1]:3000/",
			want: normalizer.ParsedURL{
				Protocol:    "http:",
				Hostname:    "::1",
				Port:        "3000",
				Path:        "/",
				IsIPLiteral: true,
				IsLocalhost: true,
			},
		},
		{
			name: "localhost",
			in:   "http://localhost:8080",
			want: normalizer.ParsedURL{
				Protocol:          "http:",
				Hostname:          "localhost",
				Port:              "8080",
				Path:              "/",
				RegistrableDomain: "localhost",
				IsLocalhost:       true,
			},
		},
		{
			name: "repeated query keys keep last value",
			in:   "http://a.com/?x=1&y=2&x=3",
			want: normalizer.ParsedURL{
				Protocol:          "http:",
				Hostname:          "a.com",
				Path:              "/",
				QueryParams:       []normalizer.QueryParam{{Key: "x", Value: "3"}, {Key: "y", Value: "2"}},
				RegistrableDomain: "a.com",
				TopLevelSuffix:    "com",
			},
		},
		{
			name: "empty input",
			in:   "   ",
			want: normalizer.ParsedURL{},
		},
		{
			name: "unparseable input",
			in:   "http://[::1",
			want: normalizer.ParsedURL{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, normalizer.Parse(tc.in))
		})
	}
}

func TestParse_NonWebProtocol(t *testing.T) {
	p := normalizer.Parse("javascript:alert(1)")
	require.Equal(t, "javascript:", p.Protocol)
	require.False(t, p.IsWeb())
	require.False(t, p.Analyzable())

	p = normalizer.Parse("ftp://files.example.com/a.txt")
	require.True(t, p.Analyzable())
	require.False(t, p.IsWeb())
}

func TestParsedURL_Query(t *testing.T) {
	p := normalizer.Parse("https://a.com/?token=abc%20def")
	v, ok := p.Query("token")
	require.True(t, ok)
	require.Equal(t, "abc def", v)

	_, ok = p.Query("missing")
	require.False(t, ok)
}

func TestRegistrableDomain(t *testing.T) {
	cases := map[string]string{
		"deep.sub.bbc.co.uk": "bbc.co.uk",
		"localhost":          "localhost",
		"www.naver.com":      "naver.com",
		"naver.com":          "naver.com",
		"m.shop.kakao.co.kr": "kakao.co.kr",
		"co.kr":              "co.kr",
		"a.b.c.example.io":   "example.io",
		"WWW.Google.COM":     "google.com",
	}
	for in, want := range cases {
		require.Equal(t, want, normalizer.RegistrableDomain(in), in)
	}
}

func TestLookupDomain(t *testing.T) {
	cases := map[string]string{
		"www.naver.com":       "naver.com",
		"m.shop.kakao.co.kr":  "kakao.co.kr",
		"shop.example.com.pl": "example.com.pl",
		"user.github.io":      "github.io",
		"com.pl":              "com.pl",
		"localhost":           "localhost",
	}
	for in, want := range cases {
		require.Equal(t, want, normalizer.LookupDomain(in), in)
	}
}

func TestBaseName(t *testing.T) {
	require.Equal(t, "naver", normalizer.BaseName("m.naver.com"))
	require.Equal(t, "bbc", normalizer.BaseName("www.bbc.co.uk"))
	require.Equal(t, "localhost", normalizer.BaseName("localhost"))
}

func TestIsKnownSuffix(t *testing.T) {
	require.True(t, normalizer.IsKnownSuffix("com"))
	require.True(t, normalizer.IsKnownSuffix(".co.kr"))
	require.True(t, normalizer.IsKnownSuffix("GOV.UK"))
	require.False(t, normalizer.IsKnownSuffix("zz"))
	require.False(t, normalizer.IsKnownSuffix("evil.com"))
}

func TestDecodeInternationalized(t *testing.T) {
	cases := []struct {
		name string
		in   string
		out  string
	}{
		{name: "ascii untouched", in: "naver.com", out: "naver.com"},
		{name: "korean label", in: "xn--9t4b11yi5a.com", out: "테스트.com"},
		{name: "only encoded labels decoded", in: "www.xn--mnchen-3ya.de", out: "www.münchen.de"},
		{name: "uppercase prefix", in: "XN--9T4B11YI5A.com", out: "테스트.com"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.out, normalizer.DecodeInternationalized(tc.in))
		})
	}
}

func TestCanonical(t *testing.T) {
	cases := []struct {
		name string
		in   string
		out  string
		ok   bool
	}{
		{name: "lowercase scheme and host; add root path", in: "HTTP://Example.COM", out: "http://example.com/", ok: true},
		{name: "missing scheme", in: "naver.com/login", out: "https://naver.com/login", ok: true},
		{name: "remove default https port", in: "https://example.com:443/", out: "https://example.com/", ok: true},
		{name: "keep non-default port", in: "http://example.com:8080/", out: "http://example.com:8080/", ok: true},
		{name: "clean path and drop trailing slash", in: "http://example.com//a/./b/../c/", out: "http://example.com/a/c", ok: true},
		{name: "sort query", in: "http://example.com/p?b=2&a=2&a=1", out: "http://example.com/p?a=1&a=2&b=2", ok: true},
		{name: "drop fragment and user info", in: "https://user:pw@example.com/p#frag", out: "https://example.com/p", ok: true},
		{name: "ipv6 with port", in: "http://[2001:db8::1]:8080/a", out: "http://[2001:db8::1]:8080/a", ok: true},
		{name: "no host", in: "http://", ok: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := normalizer.Canonical(tc.in)
			if !tc.ok {
				require.Error(t, err)

				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.out, got)
		})
	}
}
