package typosquat

import (
	"context"

	"go.uber.org/zap"

	"phishguard/internal/corpus"
	"phishguard/internal/detector"
	"phishguard/pkg/domain"
	"phishguard/pkg/logger"
)

// Weight is the aggregation weight of the typosquat detector.
const Weight = 0.4

// Detector runs the Matcher against the current corpus snapshot.
type Detector struct {
	store   *corpus.Store
	matcher Matcher
}

// NewDetector creates a typosquat detector reading the corpus from store.
func NewDetector(store *corpus.Store, matcher Matcher) *Detector {
	return &Detector{store: store, matcher: matcher}
}

func (d *Detector) Key() string     { return detector.KeyTyposquat }
func (d *Detector) Name() string    { return "TyposquatDetector" }
func (d *Detector) Weight() float64 { return Weight }

// Analyze matches the hostname of dc. A corpus that cannot be loaded is
// treated as empty.
func (d *Detector) Analyze(ctx context.Context, dc detector.Context) (domain.Finding, error) {
	snapshot, err := d.store.Get(ctx)
	if err != nil {
		logger.Warn(ctx, "known domain corpus unavailable", zap.Error(err))
	}

	return d.matcher.Analyze(dc.Hostname, snapshot.Entries()), nil
}
