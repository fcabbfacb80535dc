// Package metrics defines the Prometheus collectors for index builds and
// query execution and exposes an HTTP handler for scraping.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors for the retrieval engine.
type Metrics struct {
	QueriesTotal         *prometheus.CounterVec
	QueryLatency         *prometheus.HistogramVec
	QueryResultsCount    *prometheus.HistogramVec
	ArticlesIndexed      prometheus.Gauge
	ArticlesSkipped      prometheus.Counter
	VocabularySize       prometheus.Gauge
	TrieNodes            prometheus.Gauge
	TriplesIndexed       prometheus.Gauge
	IndexBuildDuration   prometheus.Histogram
	TextCacheHitsTotal   prometheus.Counter
	TextCacheMissesTotal prometheus.Counter
}

// New creates all collectors and registers them with reg. Passing nil
// registers with the process-wide default registry.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		QueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "retrieval_queries_total",
				Help: "Total queries by kind, variant, and result (hit, zero_result, error).",
			},
			[]string{"kind", "variant", "result"},
		),
		QueryLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "retrieval_query_latency_seconds",
				Help:    "Query latency in seconds.",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			},
			[]string{"kind"},
		),
		QueryResultsCount: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "retrieval_query_results_count",
				Help:    "Number of titles returned per query.",
				Buckets: []float64{0, 1, 5, 10, 50, 100, 500, 1000},
			},
			[]string{"kind"},
		),
		ArticlesIndexed: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "retrieval_articles_indexed",
				Help: "Number of articles in the current index.",
			},
		),
		ArticlesSkipped: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "retrieval_articles_skipped_total",
				Help: "Articles dropped during indexing because they had no title.",
			},
		),
		VocabularySize: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "retrieval_vocabulary_size",
				Help: "Number of distinct terms in the inverted index.",
			},
		),
		TrieNodes: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "retrieval_trie_nodes",
				Help: "Number of nodes in the prefix trie.",
			},
		),
		TriplesIndexed: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "retrieval_triples_indexed",
				Help: "Number of distinct word triples in the fuzzy index.",
			},
		),
		IndexBuildDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "retrieval_index_build_seconds",
				Help:    "Wall time of a full index build.",
				Buckets: prometheus.ExponentialBuckets(0.01, 2, 14),
			},
		),
		TextCacheHitsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "retrieval_text_cache_hits_total",
				Help: "Article text reads served from Redis.",
			},
		),
		TextCacheMissesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "retrieval_text_cache_misses_total",
				Help: "Article text reads that fell through to the backing store.",
			},
		),
	}

	reg.MustRegister(
		m.QueriesTotal,
		m.QueryLatency,
		m.QueryResultsCount,
		m.ArticlesIndexed,
		m.ArticlesSkipped,
		m.VocabularySize,
		m.TrieNodes,
		m.TriplesIndexed,
		m.IndexBuildDuration,
		m.TextCacheHitsTotal,
		m.TextCacheMissesTotal,
	)

	return m
}

// Handler returns the Prometheus scrape HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
