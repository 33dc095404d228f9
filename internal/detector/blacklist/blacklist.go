// Package blacklist flags hostnames reported to a phishing registry. The
// hostname set is read from storage once, kept in memory and dropped with
// Invalidate after every feed synchronization.
package blacklist

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"phishguard/internal/detector"
	"phishguard/pkg/domain"
	"phishguard/pkg/logger"
	"phishguard/pkg/metrics"
)

const (
	// Weight is the aggregation weight of the blacklist detector.
	Weight = 0.25
	// DefaultSource is the registry whose sync state is reported on misses.
	DefaultSource = "kisa"
)

// Store is the read side of the blacklist storage.
type Store interface {
	BlacklistHostnames(ctx context.Context) ([]string, error)
	SyncState(ctx context.Context, source string) (*domain.SyncState, error)
}

type hostnameSet map[string]struct{}

// Detector matches hostnames against the in-memory blacklist.
type Detector struct {
	store  Store
	source string

	group singleflight.Group

	mu         sync.RWMutex
	set        hostnameSet
	generation uint64
}

var _ detector.Detector = (*Detector)(nil)

// New builds a detector reading hostnames from store. A nil store leaves the
// detector unconfigured: every finding has zero confidence.
func New(store Store, source string) *Detector {
	if source == "" {
		source = DefaultSource
	}

	return &Detector{store: store, source: source}
}

func (d *Detector) Key() string     { return detector.KeyBlacklist }
func (d *Detector) Name() string    { return "KisaBlacklistDetector" }
func (d *Detector) Weight() float64 { return Weight }

// Analyze reports risk 100 when the hostname, or the hostname without a
// leading "www.", is blacklisted.
func (d *Detector) Analyze(ctx context.Context, dc detector.Context) (domain.Finding, error) {
	if d.store == nil {
		return detector.Skipped("blacklist is not configured", domain.Details{"skipped": true}), nil
	}

	set, err := d.load(ctx)
	if err != nil {
		return domain.Finding{}, err
	}
	if len(set) == 0 {
		return detector.Skipped("blacklist has no entries yet", domain.Details{"empty": true}), nil
	}

	hostname := strings.ToLower(dc.Hostname)
	candidates := []string{hostname}
	if bare, ok := strings.CutPrefix(hostname, "www."); ok && bare != "" {
		candidates = append(candidates, bare)
	}
	for _, candidate := range candidates {
		if _, ok := set[candidate]; ok {
			logger.Get(ctx).Warn("blacklisted hostname",
				zap.String("detector", d.Key()), zap.String("hostname", candidate))

			return domain.Finding{
				Risk:       100,
				Confidence: 1,
				Reason:     "hostname is listed in the phishing blacklist",
				Details: domain.Details{
					"source":        strings.ToUpper(d.source),
					"matchType":     "hostname",
					"matchedEntry":  candidate,
					"blacklistSize": len(set),
				},
			}, nil
		}
	}

	details := domain.Details{"blacklistSize": len(set), "lastSync": nil}
	state, err := d.store.SyncState(ctx, d.source)
	if err != nil {
		logger.Get(ctx).Debug("could not read blacklist sync state",
			zap.String("detector", d.Key()), zap.Error(err))
	} else if state != nil {
		details["lastSync"] = state.LastSyncAt.UTC().Format(time.RFC3339)
	}

	return domain.Finding{
		Risk:       0,
		Confidence: 0.9,
		Reason:     "hostname is not listed in the phishing blacklist",
		Details:    details,
	}, nil
}

// Invalidate drops the in-memory set. The next analysis reloads it.
func (d *Detector) Invalidate() {
	d.mu.Lock()
	d.set = nil
	d.generation++
	d.mu.Unlock()
}

// Size returns the number of loaded hostnames, 0 when nothing is loaded.
func (d *Detector) Size() int {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return len(d.set)
}

func (d *Detector) load(ctx context.Context) (hostnameSet, error) {
	d.mu.RLock()
	set, generation := d.set, d.generation
	d.mu.RUnlock()
	if set != nil {
		return set, nil
	}

	v, err, _ := d.group.Do(fmt.Sprint(generation), func() (any, error) {
		hostnames, err := d.store.BlacklistHostnames(ctx)
		if err != nil {
			return nil, fmt.Errorf("could not load blacklist: %w", err)
		}

		loaded := make(hostnameSet, len(hostnames))
		for _, h := range hostnames {
			loaded[strings.ToLower(h)] = struct{}{}
		}

		d.mu.Lock()
		if d.generation == generation {
			d.set = loaded
		}
		d.mu.Unlock()

		metrics.BlacklistSize.Set(float64(len(loaded)))
		logger.Get(ctx).Info("blacklist loaded", zap.Int("hostnames", len(loaded)))

		return loaded, nil
	})
	if err != nil {
		return nil, err //nolint: wrapcheck
	}

	return v.(hostnameSet), nil
}
