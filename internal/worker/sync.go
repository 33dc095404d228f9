package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"phishguard/pkg/domain"
	"phishguard/pkg/kisa"
	"phishguard/pkg/logger"
	"phishguard/pkg/metrics"
	"phishguard/pkg/storage"
)

const (
	// DefaultPageDelay is the pause between feed pages.
	DefaultPageDelay = 300 * time.Millisecond
	// DefaultIncrementalPages is the number of newest pages an incremental sync reads.
	DefaultIncrementalPages = 5
)

// Feed is a paged source of reported phishing hostnames.
type Feed interface {
	FetchPage(ctx context.Context, number int) (*kisa.Page, error)
}

// Invalidator drops an in-memory copy of the blacklist.
type Invalidator interface {
	Invalidate()
}

// SyncOptions tune a Syncer.
type SyncOptions struct {
	PageDelay        time.Duration
	IncrementalPages int
	Source           string
}

// SyncResult summarizes a finished synchronization.
type SyncResult struct {
	Mode domain.SyncMode
	// Pages is the number of feed pages read.
	Pages int
	// Fetched is the number of distinct hostnames read from the feed.
	Fetched int
	// Added is the number of hostnames that were not stored before.
	Added int64
	// Total is the number of stored hostnames after the sync.
	Total int64
}

// Syncer copies the feed into blacklist storage. It is used by the River
// worker and directly by the CLI; concurrent calls are serialized.
type Syncer struct {
	feed        Feed
	storage     storage.Storage
	invalidator Invalidator
	options     SyncOptions

	mu    sync.Mutex
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewSyncer creates a Syncer. invalidator may be nil.
func NewSyncer(feed Feed, st storage.Storage, invalidator Invalidator, options SyncOptions) *Syncer {
	if options.PageDelay < 0 {
		options.PageDelay = 0
	}
	if options.IncrementalPages <= 0 {
		options.IncrementalPages = DefaultIncrementalPages
	}
	if options.Source == "" {
		options.Source = kisa.Source
	}

	return &Syncer{
		feed:        feed,
		storage:     st,
		invalidator: invalidator,
		options:     options,
		now:         time.Now,
		sleep:       sleepCtx,
	}
}

// WithClock replaces the clock and the page delay used by the syncer. It is
// meant for tests.
func (s *Syncer) WithClock(now func() time.Time, sleep func(ctx context.Context, d time.Duration) error) *Syncer {
	s.now = now
	s.sleep = sleep

	return s
}

// Sync runs one synchronization.
//
// A full sync reads every page and replaces the stored hostnames of the
// source in one transaction; any failed page aborts it and keeps the current
// set. An incremental sync reads the newest pages and merges them.
func (s *Syncer) Sync(ctx context.Context, mode domain.SyncMode) (*SyncResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx = logger.WithFields(ctx, zap.String("mode", string(mode)), zap.String("source", s.options.Source))
	logger.Info(ctx, "blacklist sync started")

	var (
		res *SyncResult
		err error
	)
	switch mode {
	case domain.SyncModeFull:
		res, err = s.full(ctx)
	case domain.SyncModeIncremental:
		res, err = s.incremental(ctx)
	default:
		_, err = NewJobArgs(mode, 0)
	}
	if err != nil {
		metrics.BlacklistSyncs.WithLabelValues(string(mode), "failure").Inc()

		return nil, err
	}

	metrics.BlacklistSyncs.WithLabelValues(string(mode), "success").Inc()
	metrics.BlacklistSyncRows.WithLabelValues(string(mode)).Add(float64(res.Added))
	if s.invalidator != nil {
		s.invalidator.Invalidate()
	}
	logger.Info(ctx, "blacklist sync complete",
		zap.Int("pages", res.Pages),
		zap.Int("fetched", res.Fetched),
		zap.Int64("added", res.Added),
		zap.Int64("total", res.Total))

	return res, nil
}

func (s *Syncer) full(ctx context.Context) (*SyncResult, error) {
	first, err := s.feed.FetchPage(ctx, 1)
	if err != nil {
		return nil, fmt.Errorf("could not fetch page 1: %w", err)
	}

	collected := newCollector()
	collected.add(first.Hostnames)
	totalPages := first.TotalPages()
	logger.Info(ctx, "blacklist feed size", zap.Int("totalCount", first.TotalCount), zap.Int("totalPages", totalPages))

	pages := 1
	for number := 2; number <= totalPages; number++ {
		if err := s.sleep(ctx, s.options.PageDelay); err != nil {
			return nil, fmt.Errorf("sync interrupted: %w", err)
		}

		page, err := s.feed.FetchPage(ctx, number)
		if err != nil {
			return nil, fmt.Errorf("could not fetch page %d: %w", number, err)
		}
		collected.add(page.Hostnames)
		pages++
		if number%DefaultIncrementalPages == 0 {
			logger.Debug(ctx, "blacklist sync progress", zap.Int("page", number), zap.Int("hostnames", collected.len()))
		}
	}

	res := &SyncResult{Mode: domain.SyncModeFull, Pages: pages, Fetched: collected.len()}
	err = s.storage.WithTx(ctx, func(st storage.AllStorage) error {
		before, err := st.BlacklistCount(ctx)
		if err != nil {
			return fmt.Errorf("could not count blacklist: %w", err)
		}
		if _, err := st.DeleteBlacklistSource(ctx, s.options.Source); err != nil {
			return fmt.Errorf("could not clear blacklist source: %w", err)
		}
		if _, err := st.AddBlacklistEntries(ctx, collected.entries(s.options.Source, s.now().UTC())...); err != nil {
			return fmt.Errorf("could not store blacklist: %w", err)
		}
		total, err := st.BlacklistCount(ctx)
		if err != nil {
			return fmt.Errorf("could not count blacklist: %w", err)
		}
		res.Total = total
		res.Added = max(total-before, 0)

		return st.SaveSyncState(ctx, s.state(domain.SyncModeFull, first.TotalCount, pages))
	})
	if err != nil {
		return nil, fmt.Errorf("could not replace blacklist: %w", err)
	}

	return res, nil
}

func (s *Syncer) incremental(ctx context.Context) (*SyncResult, error) {
	collected := newCollector()
	totalCount, pages := 0, 0
	for number := 1; number <= s.options.IncrementalPages; number++ {
		if number > 1 {
			if err := s.sleep(ctx, s.options.PageDelay); err != nil {
				return nil, fmt.Errorf("sync interrupted: %w", err)
			}
		}

		page, err := s.feed.FetchPage(ctx, number)
		if err != nil {
			return nil, fmt.Errorf("could not fetch page %d: %w", number, err)
		}
		collected.add(page.Hostnames)
		totalCount = page.TotalCount
		pages++
		if number >= page.TotalPages() {
			break
		}
	}

	added, err := s.storage.AddBlacklistEntries(ctx, collected.entries(s.options.Source, s.now().UTC())...)
	if err != nil {
		return nil, fmt.Errorf("could not store blacklist: %w", err)
	}
	total, err := s.storage.BlacklistCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not count blacklist: %w", err)
	}
	if err := s.storage.SaveSyncState(ctx, s.state(domain.SyncModeIncremental, totalCount, pages)); err != nil {
		return nil, fmt.Errorf("could not save sync state: %w", err)
	}

	return &SyncResult{
		Mode:    domain.SyncModeIncremental,
		Pages:   pages,
		Fetched: collected.len(),
		Added:   added,
		Total:   total,
	}, nil
}

// Import stores hostnames read from a local list and invalidates the
// in-memory blacklist.
func (s *Syncer) Import(ctx context.Context, source string, hostnames []string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	collected := newCollector()
	for _, raw := range hostnames {
		if host, ok := kisa.Hostname(raw); ok {
			collected.add([]string{host})
		}
	}

	added, err := s.storage.AddBlacklistEntries(ctx, collected.entries(source, s.now().UTC())...)
	if err != nil {
		return 0, fmt.Errorf("could not import blacklist: %w", err)
	}
	if s.invalidator != nil {
		s.invalidator.Invalidate()
	}
	logger.Info(ctx, "blacklist imported", zap.String("source", source), zap.Int64("added", added))

	return added, nil
}

func (s *Syncer) state(mode domain.SyncMode, totalCount, lastPage int) domain.SyncState {
	return domain.SyncState{
		Source:     s.options.Source,
		Mode:       mode,
		TotalCount: totalCount,
		LastPage:   lastPage,
		LastSyncAt: s.now().UTC(),
	}
}

// collector keeps hostnames in first-seen order without duplicates.
type collector struct {
	seen  map[string]struct{}
	order []string
}

func newCollector() *collector {
	return &collector{seen: make(map[string]struct{})}
}

func (c *collector) add(hostnames []string) {
	for _, h := range hostnames {
		if _, ok := c.seen[h]; ok {
			continue
		}
		c.seen[h] = struct{}{}
		c.order = append(c.order, h)
	}
}

func (c *collector) len() int { return len(c.order) }

func (c *collector) entries(source string, at time.Time) []domain.BlacklistEntry {
	out := make([]domain.BlacklistEntry, 0, len(c.order))
	for _, h := range c.order {
		out = append(out, domain.BlacklistEntry{Hostname: h, Source: source, AddedAt: at})
	}

	return out
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
