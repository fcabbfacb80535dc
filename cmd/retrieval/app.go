package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/Adithya-Monish-Kumar-K/wiki-retrieval/internal/analytics"
	"github.com/Adithya-Monish-Kumar-K/wiki-retrieval/internal/indexer"
	"github.com/Adithya-Monish-Kumar-K/wiki-retrieval/internal/searcher/boolean"
	"github.com/Adithya-Monish-Kumar-K/wiki-retrieval/internal/searcher/executor"
	"github.com/Adithya-Monish-Kumar-K/wiki-retrieval/internal/searcher/phrase"
	"github.com/Adithya-Monish-Kumar-K/wiki-retrieval/internal/textstore"
	"github.com/Adithya-Monish-Kumar-K/wiki-retrieval/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/wiki-retrieval/pkg/health"
	"github.com/Adithya-Monish-Kumar-K/wiki-retrieval/pkg/kafka"
	"github.com/Adithya-Monish-Kumar-K/wiki-retrieval/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/wiki-retrieval/pkg/metrics"
	"github.com/Adithya-Monish-Kumar-K/wiki-retrieval/pkg/postgres"
	pkgredis "github.com/Adithya-Monish-Kumar-K/wiki-retrieval/pkg/redis"
	"github.com/Adithya-Monish-Kumar-K/wiki-retrieval/pkg/resilience"
	"github.com/urfave/cli/v2"
)

// app holds everything a command needs once the config is loaded.
type app struct {
	cfg       *config.Config
	metrics   *metrics.Metrics
	store     textstore.Store
	collector *analytics.Collector
	pg        *postgres.Client
	redis     *pkgredis.Client
	breaker   *resilience.Breaker
	closers   []func() error
}

func setupLogger(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if lvl := c.String("log-level"); lvl != "" {
		cfg.Logging.Level = lvl
	}
	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)
	c.App.Metadata = map[string]any{"config": cfg}
	return nil
}

func newApp(ctx context.Context, c *cli.Context) (*app, error) {
	cfg, ok := c.App.Metadata["config"].(*config.Config)
	if !ok {
		return nil, fmt.Errorf("config not loaded")
	}
	if p := c.String("corpus"); p != "" {
		cfg.Corpus.Path = p
	}
	if cfg.Corpus.Path == "" {
		return nil, fmt.Errorf("corpus path is required (--corpus or corpus.path)")
	}

	a := &app{cfg: cfg, metrics: metrics.New(nil)}
	if err := a.openStore(ctx); err != nil {
		a.close()
		return nil, err
	}
	if cfg.Kafka.Enabled {
		producer := kafka.NewProducer(cfg.Kafka, cfg.Kafka.Topics.QueryEvents)
		a.collector = analytics.NewCollector(producer, 10000, 100, 0)
		a.collector.Start(ctx)
		a.closers = append(a.closers, func() error {
			a.collector.Close()
			return producer.Close()
		})
		slog.Info("query analytics enabled", "topic", cfg.Kafka.Topics.QueryEvents)
	}
	return a, nil
}

func (a *app) openStore(ctx context.Context) error {
	var backing textstore.Store
	switch a.cfg.TextStore.Backend {
	case "postgres":
		pg, err := postgres.New(ctx, a.cfg.Postgres)
		if err != nil {
			return err
		}
		a.closers = append(a.closers, pg.Close)
		a.pg = pg
		ps := textstore.NewPostgresStore(pg.DB, pg)
		if err := ps.EnsureSchema(ctx); err != nil {
			return err
		}
		backing = ps
	default:
		fs, err := textstore.NewFileStore(a.cfg.TextStore.Dir)
		if err != nil {
			return err
		}
		backing = fs
	}
	a.store = backing

	if !a.cfg.TextStore.Cache {
		return nil
	}
	rc, err := pkgredis.NewClient(ctx, a.cfg.Redis)
	if err != nil {
		slog.Warn("redis unavailable, text caching disabled", "error", err)
		return nil
	}
	a.closers = append(a.closers, rc.Close)
	a.redis = rc
	a.breaker = resilience.NewBreaker("redis", 5, 30*time.Second)
	cached := textstore.NewCachedStore(backing, rc, pkgredis.IsNilError, a.cfg.Redis.CacheTTL).
		WithObserver(cacheObserver{a.metrics}).
		WithBreaker(a.breaker)
	// Ids are reassigned on every build.
	if err := cached.Invalidate(ctx); err != nil {
		slog.Warn("failed to invalidate text cache", "error", err)
	}
	a.store = cached
	slog.Info("text cache enabled", "addr", a.cfg.Redis.Addr, "ttl", a.cfg.Redis.CacheTTL)
	return nil
}

func (a *app) build(ctx context.Context) (*indexer.Engine, error) {
	return indexer.BuildFile(ctx, a.cfg.Corpus.Path,
		indexer.WithTextSink(a.store),
		indexer.WithMetrics(a.metrics),
	)
}

func (a *app) executor(engine *indexer.Engine) (*executor.Executor, error) {
	strategy, err := boolean.ParseStrategy(a.cfg.Search.DefaultStrategy)
	if err != nil {
		return nil, err
	}
	alg, err := phrase.ParseAlgorithm(a.cfg.Search.DefaultAlgorithm)
	if err != nil {
		return nil, err
	}
	opts := executor.Options{
		Metrics:          a.metrics,
		MaxQueryDepth:    a.cfg.Search.MaxQueryDepth,
		DefaultStrategy:  strategy,
		DefaultAlgorithm: alg,
	}
	if a.collector != nil {
		opts.Tracker = a.collector
	}
	return executor.New(engine, a.store, opts), nil
}

// checker reports the index as down until built is set. Redis is degraded
// while its breaker is open since queries fall back to the backing store.
func (a *app) checker(built *atomic.Bool) *health.Checker {
	c := health.NewChecker()
	c.Register("index", func(context.Context) error {
		if !built.Load() {
			return errors.New("index not built")
		}
		return nil
	})
	if a.pg != nil {
		c.Register("postgres", a.pg.Ping)
	}
	if a.redis != nil {
		c.Register("redis", func(ctx context.Context) error {
			if st := a.breaker.State(); st != resilience.StateClosed {
				return health.Degraded(fmt.Errorf("circuit %s", st))
			}
			if err := a.redis.Ping(ctx); err != nil {
				return health.Degraded(err)
			}
			return nil
		})
	}
	return c
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			slog.Warn("error during shutdown", "error", err)
		}
	}
}

type cacheObserver struct {
	m *metrics.Metrics
}

func (o cacheObserver) Hit()  { o.m.TextCacheHitsTotal.Inc() }
func (o cacheObserver) Miss() { o.m.TextCacheMissesTotal.Inc() }

// parseLine splits a shell line of the form "kind[:variant] query".
func parseLine(line string) (executor.Query, error) {
	head, text, ok := strings.Cut(strings.TrimSpace(line), " ")
	if !ok || strings.TrimSpace(text) == "" {
		return executor.Query{}, fmt.Errorf("expected \"kind[:variant] query\", got %q", line)
	}
	name, variant, _ := strings.Cut(head, ":")
	kind, err := executor.ParseKind(name)
	if err != nil {
		return executor.Query{}, err
	}
	return executor.Query{Text: strings.TrimSpace(text), Kind: kind, Variant: variant}, nil
}
