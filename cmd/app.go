package main

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"phishguard/internal/analyzer"
	"phishguard/internal/cache"
	"phishguard/internal/config"
	"phishguard/internal/corpus"
	"phishguard/internal/detector"
	"phishguard/internal/detector/blacklist"
	"phishguard/internal/detector/content"
	"phishguard/internal/detector/domainage"
	llmdetector "phishguard/internal/detector/llm"
	"phishguard/internal/detector/protocol"
	"phishguard/internal/ensemble"
	"phishguard/internal/typosquat"
	"phishguard/internal/worker"
	"phishguard/pkg/domain"
	"phishguard/pkg/kisa"
	"phishguard/pkg/llm"
	"phishguard/pkg/llm/gemini"
	"phishguard/pkg/llm/glm"
	"phishguard/pkg/logger"
	"phishguard/pkg/registrar"
	"phishguard/pkg/storage"
	"phishguard/pkg/storage/postgres"
	"phishguard/pkg/storage/sqlite"
)

// feedTimeout bounds a single KISA page request.
const feedTimeout = time.Minute

// app holds the collaborators shared by the subcommands.
type app struct {
	storage   storage.Storage
	pg        *postgres.PgSQL
	corpus    *corpus.Store
	blacklist *blacklist.Detector
	analyzer  analyzer.Analyzer
	syncer    *worker.Syncer
}

// getPostgres creates a PostgreSQL client using configuration values and returns it
// along with a cleanup function to close the connection pool.
func getPostgres(ctx context.Context, cfg *config.Config) (*postgres.PgSQL, func()) {
	pgsql, err := postgres.New(ctx, postgres.Options{
		Username:           cfg.Database.Username,
		Password:           cfg.Database.Password,
		Host:               cfg.Database.Host,
		Port:               cfg.Database.Port,
		Database:           cfg.Database.DatabaseName,
		ConnMaxLifetime:    cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime:    cfg.Database.ConnMaxIdleTime,
		MaxOpenConnections: cfg.Database.MaxOpenConnections,
		MaxIdleConnections: cfg.Database.MaxIdleConnections,
		SslMode:            cfg.Database.SslMode,
	})
	if err != nil {
		logger.Fatal(ctx, "could not create postgres storage", zap.Error(err))
	}

	return pgsql, func() {
		logger.Info(ctx, "closing postgres client...")
		if err = pgsql.Close(); err != nil {
			logger.Warn(ctx, "could not close postgres connection", zap.Error(err))
		}
	}
}

// getSQLite opens the SQLite store, applying pending migrations.
func getSQLite(ctx context.Context, cfg *config.Config) (*sqlite.SQLite, func()) {
	db, err := sqlite.New(ctx, sqlite.Options{
		Path:      cfg.Blacklist.SQLitePath,
		EnableWAL: true,
		Migrate:   true,
	})
	if err != nil {
		logger.Fatal(ctx, "could not create sqlite storage", zap.Error(err))
	}

	return db, func() {
		logger.Info(ctx, "closing sqlite database...")
		if err = db.Close(); err != nil {
			logger.Warn(ctx, "could not close sqlite database", zap.Error(err))
		}
	}
}

// newApp opens the configured storage and builds the analysis pipeline on top
// of it. The returned function releases the storage.
func newApp(ctx context.Context, cfg *config.Config) (*app, func()) {
	a := &app{}
	var closeStrg func()
	switch cfg.Blacklist.Driver {
	case config.DriverSQLite:
		a.storage, closeStrg = getSQLite(ctx, cfg)
	default:
		a.pg, closeStrg = getPostgres(ctx, cfg)
		a.storage = a.pg
	}

	a.corpus = corpus.NewStore(corpus.NewFileProvider(cfg.Corpus.Path))
	a.blacklist = blacklist.New(a.storage, kisa.Source)

	registry, err := detector.NewRegistry(
		typosquat.NewDetector(a.corpus, typosquat.NewMatcher()),
		protocol.New(),
		content.New(),
		domainage.New(
			registrar.Chain{
				registrar.NewWhois(cfg.Whois.Timeout),
				registrar.NewRDAP(&http.Client{Timeout: cfg.Whois.Timeout}, cfg.Whois.RDAPURL),
			},
			domainage.WithCache(cache.New[string, domain.Finding](
				"domain_age", cfg.Whois.CacheTTL, domainage.DefaultCacheSize,
			)),
		),
		a.blacklist,
	)
	if err != nil {
		closeStrg()
		logger.Fatal(ctx, "could not create detector registry", zap.Error(err))
	}

	escalation := llmdetector.New(newLLMClient(ctx, cfg), a.corpus,
		llmdetector.WithRatePerMinute(cfg.LLM.RatePerMinute))

	a.analyzer = analyzer.New(analyzer.Deps{
		Ensemble: ensemble.New(registry,
			ensemble.WithEscalation(escalation),
			ensemble.WithEscalationBand(cfg.Ensemble.EscalationMin, cfg.Ensemble.EscalationMax),
		),
		Corpus:  a.corpus,
		Cache:   analyzer.NewResultCache(cfg.Cache.TTL, cfg.Cache.MaxEntries),
		Storage: a.storage,
	}, analyzer.NewOptions(cfg))

	feed := kisa.New(&http.Client{Timeout: feedTimeout}, cfg.Blacklist.KisaServiceKey,
		kisa.WithBaseURL(cfg.Blacklist.KisaBaseURL),
		kisa.WithPageSize(cfg.Blacklist.PageSize),
	)
	a.syncer = worker.NewSyncer(feed, a.storage, a.blacklist, worker.SyncOptions{
		PageDelay:        cfg.Blacklist.PageDelay,
		IncrementalPages: cfg.Blacklist.IncrementalPages,
		Source:           kisa.Source,
	})

	return a, closeStrg
}

// newLLMClient returns the configured model client, or nil when no API key is
// set. A nil client leaves the escalation detector unavailable.
func newLLMClient(ctx context.Context, cfg *config.Config) llm.Client {
	if cfg.LLM.APIKey == "" {
		logger.Info(ctx, "llm api key is not set, escalation is disabled")

		return nil
	}

	opts := llm.Options{
		APIKey:     cfg.LLM.APIKey,
		Model:      cfg.LLM.Model,
		BaseURL:    cfg.LLM.BaseURL,
		Timeout:    cfg.LLM.Timeout,
		MaxRetries: cfg.LLM.MaxRetries,
	}
	if cfg.LLM.Provider == config.ProviderGLM {
		return glm.New(&http.Client{}, opts)
	}

	return gemini.New(&http.Client{}, opts)
}
