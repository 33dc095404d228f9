package corpus

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"phishguard/internal/normalizer"
	"phishguard/internal/similarity"
	"phishguard/pkg/domain"
	"phishguard/pkg/logger"
)

// Snapshot is an immutable view of the corpus.
type Snapshot struct {
	entries  []domain.KnownDomain
	loadedAt time.Time
}

// NewSnapshot wraps entries in a Snapshot.
func NewSnapshot(entries []domain.KnownDomain) *Snapshot {
	return &Snapshot{entries: entries, loadedAt: time.Now()}
}

// Entries returns the corpus entries in load order. Callers must not modify them.
func (s *Snapshot) Entries() []domain.KnownDomain {
	if s == nil {
		return nil
	}

	return s.entries
}

// Len returns the number of entries.
func (s *Snapshot) Len() int {
	return len(s.Entries())
}

// LoadedAt returns when the snapshot was built.
func (s *Snapshot) LoadedAt() time.Time {
	if s == nil {
		return time.Time{}
	}

	return s.loadedAt
}

// Owner returns the entry whose primary domain or alias is hostname or a
// parent of hostname.
func (s *Snapshot) Owner(hostname string) (domain.KnownDomain, bool) {
	for _, e := range s.Entries() {
		if e.Owns(hostname) {
			return e, true
		}
	}

	return domain.KnownDomain{}, false
}

// SimilarDomain is a corpus entry that resembles a hostname.
type SimilarDomain struct {
	Name         string  `json:"name"`
	Domain       string  `json:"domain"`
	Category     string  `json:"category"`
	Similarity   float64 `json:"similarity"`
	IsExactMatch bool    `json:"isExactMatch"`
}

// SimilarDomains lists up to limit entries whose base name scores at least
// minScore against the base name of hostname, best first.
func (s *Snapshot) SimilarDomains(hostname string, minScore float64, limit int) []SimilarDomain {
	base := normalizer.BaseName(hostname)

	var out []SimilarDomain
	for _, e := range s.Entries() {
		score := similarity.Similarity(base, firstLabel(e.PrimaryDomain))
		if score < minScore {
			continue
		}
		out = append(out, SimilarDomain{
			Name:         e.DisplayName,
			Domain:       e.PrimaryDomain,
			Category:     e.Category,
			Similarity:   roundTo2(score),
			IsExactMatch: e.Owns(hostname),
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Similarity > out[j].Similarity })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out
}

// Store keeps the current corpus snapshot. Concurrent callers that find the
// store empty share a single load; Reload swaps the snapshot atomically.
type Store struct {
	provider Provider
	current  atomic.Pointer[Snapshot]
	group    singleflight.Group
}

// NewStore creates a Store backed by provider. Nothing is loaded until the
// first call to Get or Reload.
func NewStore(provider Provider) *Store {
	return &Store{provider: provider}
}

// Get returns the current snapshot, loading it on first use. A failed load is
// not remembered; the next call tries again.
func (s *Store) Get(ctx context.Context) (*Snapshot, error) {
	if snap := s.current.Load(); snap != nil {
		return snap, nil
	}

	return s.load(ctx)
}

// Reload fetches the corpus again and replaces the current snapshot.
func (s *Store) Reload(ctx context.Context) (*Snapshot, error) {
	return s.load(ctx)
}

func (s *Store) load(ctx context.Context) (*Snapshot, error) {
	v, err, _ := s.group.Do("load", func() (any, error) {
		entries, err := s.provider.Load(context.WithoutCancel(ctx))
		if err != nil {
			return nil, fmt.Errorf("could not load corpus: %w", err)
		}

		snap := NewSnapshot(entries)
		s.current.Store(snap)
		logger.Info(ctx, "known domain corpus loaded", zap.Int("entries", snap.Len()))

		return snap, nil
	})
	if err != nil {
		return nil, err //nolint: wrapcheck
	}

	return v.(*Snapshot), nil //nolint: forcetypeassert
}

func firstLabel(host string) string {
	label, _, _ := strings.Cut(host, ".")

	return label
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
