// Package executor dispatches a query to the index that answers its kind and
// maps the resulting article ids to titles.
package executor

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Adithya-Monish-Kumar-K/wiki-retrieval/internal/analytics"
	"github.com/Adithya-Monish-Kumar-K/wiki-retrieval/internal/indexer"
	"github.com/Adithya-Monish-Kumar-K/wiki-retrieval/internal/indexer/postings"
	"github.com/Adithya-Monish-Kumar-K/wiki-retrieval/internal/searcher/boolean"
	"github.com/Adithya-Monish-Kumar-K/wiki-retrieval/internal/searcher/parser"
	"github.com/Adithya-Monish-Kumar-K/wiki-retrieval/internal/searcher/phrase"
	apperrors "github.com/Adithya-Monish-Kumar-K/wiki-retrieval/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/wiki-retrieval/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/wiki-retrieval/pkg/metrics"
)

// Query is a search string plus the kind of search to run. Variant names the
// boolean strategy or phrase algorithm; empty selects the executor default.
type Query struct {
	Text    string
	Kind    Kind
	Variant string
}

// Tracker receives one event per executed query.
type Tracker interface {
	Track(ev analytics.QueryEvent)
}

type Options struct {
	Metrics          *metrics.Metrics
	Tracker          Tracker
	MaxQueryDepth    int
	DefaultStrategy  boolean.Strategy
	DefaultAlgorithm phrase.Algorithm
	Concurrency      int
}

type Executor struct {
	engine    *indexer.Engine
	evaluator *boolean.Evaluator
	phrases   *phrase.Matcher
	parser    *parser.Parser
	opts      Options
}

// New returns an executor over engine. texts backs exact phrase
// verification and may be nil when no Exact queries will be run.
func New(engine *indexer.Engine, texts phrase.TextSource, opts Options) *Executor {
	depth := opts.MaxQueryDepth
	if depth <= 0 {
		depth = parser.DefaultMaxDepth
	}
	return &Executor{
		engine:    engine,
		evaluator: boolean.New(engine.Lists, engine.Bits),
		phrases:   phrase.New(engine.Lists, engine.Triples, texts).WithConcurrency(opts.Concurrency),
		parser:    parser.New(depth),
		opts:      opts,
	}
}

// Search runs q and returns the matching titles ordered by article id. A
// malformed boolean expression yields no titles and no error. An unknown
// variant and a missing article text are returned as errors.
func (e *Executor) Search(ctx context.Context, q Query) ([]string, error) {
	q.Text = strings.TrimSpace(q.Text)
	queryID := analytics.NewQueryID()
	ctx = logger.WithQueryID(ctx, queryID)
	log := logger.FromContext(ctx).With("component", "query-executor")
	start := time.Now()

	variant, titles, err := e.dispatch(ctx, q)
	if errors.Is(err, apperrors.ErrMalformedQuery) {
		log.Debug("malformed query", "query", q.Text, "error", err)
		titles, err = []string{}, nil
	}
	elapsed := time.Since(start)

	result := analytics.ResultHit
	switch {
	case err != nil:
		result = analytics.ResultError
		log.Warn("query failed", "kind", q.Kind.String(), "variant", variant, "error", err)
	case len(titles) == 0:
		result = analytics.ResultZeroResult
	}
	log.Debug("query executed",
		"kind", q.Kind.String(),
		"variant", variant,
		"results", len(titles),
		"latency", elapsed,
	)
	e.record(q, variant, result, len(titles), elapsed)
	if e.opts.Tracker != nil {
		e.opts.Tracker.Track(analytics.QueryEvent{
			ID:        queryID,
			Kind:      q.Kind.String(),
			Variant:   variant,
			Query:     q.Text,
			Result:    result,
			Hits:      len(titles),
			LatencyUs: elapsed.Microseconds(),
			ErrorKind: errorKind(err),
			Timestamp: start.UTC(),
		})
	}
	if err != nil {
		return nil, err
	}
	return titles, nil
}

func (e *Executor) dispatch(ctx context.Context, q Query) (string, []string, error) {
	switch q.Kind {
	case SingleWord:
		return "", e.engine.Lookup(q.Text), nil

	case Boolean:
		strategy := e.opts.DefaultStrategy
		if q.Variant != "" {
			s, err := boolean.ParseStrategy(q.Variant)
			if err != nil {
				return "unknown", nil, err
			}
			strategy = s
		}
		root, err := e.parser.Parse(q.Text)
		if err != nil {
			return strategy.String(), nil, err
		}
		return strategy.String(), e.evaluator.Evaluate(root, strategy), nil

	case Prefix:
		return "", e.engine.Lists.Titles(e.engine.Trie.Find(q.Text)), nil

	case Exact:
		alg := e.opts.DefaultAlgorithm
		if q.Variant != "" {
			a, err := phrase.ParseAlgorithm(q.Variant)
			if err != nil {
				return "unknown", nil, err
			}
			alg = a
		}
		ids, err := e.phrases.Search(ctx, q.Text, alg)
		if err != nil {
			return alg.String(), nil, err
		}
		return alg.String(), e.phrases.Titles(ids), nil

	case Fuzzy:
		return "", e.engine.Lists.Titles(postings.List(e.engine.Triples.Fuzzy(q.Text))), nil

	default:
		return "", nil, apperrors.Newf(apperrors.ErrInvalidInput, "query kind %s", q.Kind)
	}
}

func (e *Executor) record(q Query, variant string, result analytics.Result, hits int, elapsed time.Duration) {
	m := e.opts.Metrics
	if m == nil {
		return
	}
	kind := q.Kind.String()
	m.QueriesTotal.WithLabelValues(kind, variant, string(result)).Inc()
	m.QueryLatency.WithLabelValues(kind).Observe(elapsed.Seconds())
	m.QueryResultsCount.WithLabelValues(kind).Observe(float64(hits))
}

func errorKind(err error) string {
	if err == nil {
		return ""
	}
	return apperrors.Kind(err)
}
