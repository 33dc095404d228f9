package analyzer

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"phishguard/internal/normalizer"
	"phishguard/pkg/logger"
)

// whitelisted reports whether the hostname belongs to a corpus domain or to a
// configured or request-supplied trusted domain. An unavailable corpus only
// disables the corpus half of the check.
func (a *analyzer) whitelisted(ctx context.Context, parsed normalizer.ParsedURL, extra []string) bool {
	if Trusted(parsed.Hostname, parsed.RegistrableDomain, a.options.Whitelist) ||
		Trusted(parsed.Hostname, parsed.RegistrableDomain, extra) {
		return true
	}

	snap, err := a.deps.Corpus.Get(ctx)
	if err != nil {
		logger.Warn(ctx, "known domain corpus unavailable for whitelist", zap.Error(err))

		return false
	}
	_, owned := snap.Owner(parsed.Hostname)

	return owned
}

// Trusted reports whether hostname, or its registrable domain, matches one of
// domains exactly or as a subdomain. Comparison ignores case.
func Trusted(hostname, registrable string, domains []string) bool {
	for _, d := range domains {
		d = strings.ToLower(strings.TrimSpace(d))
		if d == "" {
			continue
		}
		if hostname == d || registrable == d || strings.HasSuffix(hostname, "."+d) {
			return true
		}
	}

	return false
}
