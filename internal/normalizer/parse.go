package normalizer

import (
	"net/url"
	"regexp"
	"strings"
)

// defaultScheme is prefixed to inputs that do not parse as absolute URLs.
const defaultScheme = "https://"

var (
	ipv4Pattern = regexp.MustCompile(`^(\d{1,3}\.){3}\d{1,3}$`) //nolint: gochecknoglobals
	ipv6Pattern = regexp.MustCompile(`^[0-9a-fA-F:]+$`)         //nolint: gochecknoglobals

	loopbackHosts = map[string]struct{}{ //nolint: gochecknoglobals
		"localhost": {},
		"127.0.0.1": {},
		"[::1]":     {},
		"::1":       {},
		"0.0.0.0":   {},
	}
)

// QueryParam is a single query-string pair.
type QueryParam struct {
	Key   string
	Value string
}

// ParsedURL holds the components of a URL. The zero value means the input
// could not be parsed.
type ParsedURL struct {
	// Protocol is the lower-cased scheme followed by a colon, e.g. "https:".
	Protocol string
	// Hostname is the lower-cased host without port or IPv6 brackets.
	Hostname string
	Port     string
	Path     string
	// QueryParams keeps the order in which keys first appear; a repeated key
	// holds its last value.
	QueryParams []QueryParam
	Fragment    string

	RegistrableDomain string
	Subdomain         string
	TopLevelSuffix    string

	IsIPLiteral bool
	IsLocalhost bool
}

// Analyzable reports whether downstream detectors should run for this URL.
func (p ParsedURL) Analyzable() bool {
	return p.Hostname != "" && !p.IsIPLiteral && !p.IsLocalhost
}

// IsWeb reports whether the URL uses http or https.
func (p ParsedURL) IsWeb() bool {
	return p.Protocol == "http:" || p.Protocol == "https:"
}

// Query returns the value stored for key.
func (p ParsedURL) Query(key string) (string, bool) {
	for _, q := range p.QueryParams {
		if q.Key == key {
			return q.Value, true
		}
	}

	return "", false
}

// Parse splits raw into its components. Inputs without a scheme are retried
// with "https://" prefixed; inputs that still fail produce a zero ParsedURL.
func Parse(raw string) ParsedURL {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ParsedURL{}
	}

	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || hostPortOnly(u) {
		if strings.Contains(raw, "://") {
			return ParsedURL{}
		}
		u, err = url.Parse(defaultScheme + raw)
		if err != nil {
			return ParsedURL{}
		}
	}

	out := ParsedURL{
		Protocol:    strings.ToLower(u.Scheme) + ":",
		Hostname:    strings.ToLower(u.Hostname()),
		Port:        u.Port(),
		Path:        u.EscapedPath(),
		QueryParams: orderedQuery(u.RawQuery),
		Fragment:    u.Fragment,
	}
	if out.Path == "" && out.Hostname != "" {
		out.Path = "/"
	}
	if out.Hostname == "" {
		return out
	}

	_, out.IsLocalhost = loopbackHosts[out.Hostname]
	isIPv6 := strings.HasPrefix(u.Host, "[") ||
		(strings.Contains(out.Hostname, ":") && ipv6Pattern.MatchString(out.Hostname))
	out.IsIPLiteral = ipv4Pattern.MatchString(out.Hostname) || isIPv6
	if out.IsIPLiteral {
		return out
	}

	out.RegistrableDomain = RegistrableDomain(out.Hostname)
	out.TopLevelSuffix = Suffix(out.RegistrableDomain)
	out.Subdomain = strings.TrimSuffix(strings.TrimSuffix(out.Hostname, out.RegistrableDomain), ".")

	return out
}

// hostPortOnly detects inputs such as "example.com:8080/path" that url.Parse
// reads as an opaque URL with the host as scheme.
func hostPortOnly(u *url.URL) bool {
	if u.Host != "" || u.Opaque == "" {
		return false
	}

	port, _, _ := strings.Cut(u.Opaque, "/")
	if port == "" {
		return false
	}
	for _, r := range port {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}

// orderedQuery decodes a raw query string keeping first-seen key order.
func orderedQuery(rawQuery string) []QueryParam {
	if rawQuery == "" {
		return nil
	}

	var out []QueryParam
	index := make(map[string]int)
	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		if k, err := url.QueryUnescape(key); err == nil {
			key = k
		}
		if v, err := url.QueryUnescape(value); err == nil {
			value = v
		}

		if i, ok := index[key]; ok {
			out[i].Value = value

			continue
		}
		index[key] = len(out)
		out = append(out, QueryParam{Key: key, Value: value})
	}

	return out
}
