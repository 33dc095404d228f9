package normalizer

import (
	"fmt"
	"net"
	"net/url"
	"path"
	"sort"
	"strings"
)

// Canonical returns a stable textual form of raw used as the URL of stored
// analyses:
//   - scheme and host are lower-cased, and a missing scheme becomes https
//   - internationalized host labels are decoded
//   - user info and the fragment are removed
//   - the path is cleaned and a trailing slash dropped (except for "/")
//   - default ports are dropped
//   - query parameters are sorted by key and value
func Canonical(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if (err != nil || u.Scheme == "" || hostPortOnly(u)) && !strings.Contains(raw, "://") {
		u, err = url.Parse(defaultScheme + raw)
	}
	if err != nil {
		return "", fmt.Errorf("could not parse URL: %w", err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("could not parse URL: missing host in %q", raw)
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.User = nil
	u.Fragment = ""
	u.RawFragment = ""

	cleaned := path.Clean("/" + u.Path)
	if cleaned != "/" {
		cleaned = strings.TrimRight(cleaned, "/")
	}
	u.Path = cleaned
	u.RawPath = ""

	host := DecodeInternationalized(strings.ToLower(u.Hostname()))
	port := u.Port()
	if (u.Scheme == "http" && port == "80") || (u.Scheme == "https" && port == "443") {
		port = ""
	}
	switch {
	case port != "":
		u.Host = net.JoinHostPort(host, port)
	case strings.Contains(host, ":"):
		u.Host = "[" + host + "]"
	default:
		u.Host = host
	}

	if u.RawQuery != "" {
		q := u.Query()
		for k := range q {
			sort.Strings(q[k])
		}
		u.RawQuery = q.Encode()
	}

	return u.String(), nil
}
