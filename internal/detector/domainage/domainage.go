// Package domainage rates a destination by how recently its domain was
// registered.
package domainage

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"phishguard/internal/cache"
	"phishguard/internal/detector"
	"phishguard/internal/normalizer"
	"phishguard/pkg/domain"
	"phishguard/pkg/logger"
	"phishguard/pkg/registrar"
)

const (
	// Weight is the aggregation weight of the domain age detector.
	Weight = 0.15
	// DefaultCacheTTL is how long a lookup result is reused.
	DefaultCacheTTL = 24 * time.Hour
	// DefaultCacheSize bounds the number of cached lookups.
	DefaultCacheSize = 1000
)

const day = 24 * time.Hour

// Detector looks up the registration date of the registrable domain.
type Detector struct {
	lookup registrar.Lookup
	cache  *cache.TTL[string, domain.Finding]
	now    func() time.Time
}

// Option customizes a Detector.
type Option func(*Detector)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(d *Detector) { d.now = now }
}

// WithCache replaces the lookup cache.
func WithCache(c *cache.TTL[string, domain.Finding]) Option {
	return func(d *Detector) { d.cache = c }
}

// New creates a domain age detector backed by lookup.
func New(lookup registrar.Lookup, opts ...Option) *Detector {
	d := &Detector{
		lookup: lookup,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.cache == nil {
		d.cache = cache.New[string, domain.Finding]("domain_age", DefaultCacheTTL, DefaultCacheSize,
			cache.WithClock(d.now))
	}

	return d
}

// LookupFailed is the details error tag of a finding whose registration
// lookup failed.
const LookupFailed = "lookup_failed"

func (d *Detector) Key() string     { return detector.KeyDomainAge }
func (d *Detector) Name() string    { return "DomainAgeDetector" }
func (d *Detector) Weight() float64 { return Weight }

// Analyze reports the age of the registrable domain of dc.Hostname. A failed
// lookup yields a zero-confidence finding tagged lookup_failed and is not
// cached.
func (d *Detector) Analyze(ctx context.Context, dc detector.Context) (domain.Finding, error) {
	registrable := normalizer.LookupDomain(dc.Hostname)
	if f, ok := d.cache.Get(registrable); ok {
		logger.Debug(ctx, "domain age cache hit", zap.String("domain", registrable))

		return f, nil
	}

	rec, err := d.lookup.Lookup(ctx, registrable)
	if err != nil {
		logger.Warn(ctx, "domain age lookup failed", zap.String("domain", registrable), zap.Error(err))

		return domain.Finding{
			Confidence: 0,
			Reason:     fmt.Sprintf("could not look up registration of %s: %v", registrable, err),
			Details: domain.Details{
				"error":    LookupFailed,
				"hostname": dc.Hostname,
			},
		}, nil
	}

	f := Score(dc.Hostname, rec, d.now())
	d.cache.Set(registrable, f)

	return f, nil
}

// Score converts a registration record into a finding. Younger domains are
// riskier; WHOIS dates are trusted more than RDAP ones.
func Score(hostname string, rec registrar.Record, now time.Time) domain.Finding {
	ageDays := int(now.Sub(rec.CreatedAt) / day)

	var (
		risk   int
		reason string
	)
	switch {
	case ageDays < 30:
		risk = 70
		reason = fmt.Sprintf("the domain was registered %d days ago; new domains are often used for phishing", ageDays)
	case ageDays < 90:
		risk = 50
		reason = fmt.Sprintf("the domain was registered about %d weeks ago", ageDays/7)
	case ageDays < 365:
		risk = 30
		reason = fmt.Sprintf("the domain was registered about %d months ago", ageDays/30)
	default:
		risk = 5
		reason = fmt.Sprintf("the domain was registered about %d years ago", ageDays/365)
	}

	confidence := 0.6
	if rec.Source == registrar.SourceWhois {
		confidence = 0.8
	}

	name := rec.Registrar
	if name == "" {
		name = "unknown"
	}

	return domain.Finding{
		Risk:       risk,
		Confidence: confidence,
		Reason:     reason,
		Details: domain.Details{
			"hostname":     hostname,
			"creationDate": rec.CreatedAt.Format(time.RFC3339),
			"ageDays":      ageDays,
			"registrar":    name,
			"source":       rec.Source,
		},
	}
}
