package arabic

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collectors are not registered anywhere. Register Collectors() on the
// registry that should export them.
var metricsFactory = promauto.With(nil)

var (
	// Documents added to (or replaced in) any InvertedIndex.
	documentsIndexed = metricsFactory.NewCounter(prometheus.CounterOpts{
		Name: "arabic_documents_indexed_total",
		Help: "Total number of documents analyzed into a stem index",
	})

	// Documents removed from any InvertedIndex.
	documentsDeleted = metricsFactory.NewCounter(prometheus.CounterOpts{
		Name: "arabic_documents_deleted_total",
		Help: "Total number of documents removed from a stem index",
	})

	// Tokens produced by the tokenizer for indexed documents, before
	// stopword removal.
	tokensAnalyzed = metricsFactory.NewCounter(prometheus.CounterOpts{
		Name: "arabic_tokens_analyzed_total",
		Help: "Total number of word tokens seen while indexing",
	})

	// Stems written into the index.
	stemsIndexed = metricsFactory.NewCounter(prometheus.CounterOpts{
		Name: "arabic_stems_indexed_total",
		Help: "Total number of stems recorded in a stem index",
	})

	// Queries answered, by kind ("bm25" or "boolean").
	queriesTotal = metricsFactory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "arabic_queries_total",
			Help: "Total number of queries run against a stem index",
		},
		[]string{"kind"},
	)
)

// Collectors returns every metric the package maintains, ready to be
// registered:
//
//	reg := prometheus.NewRegistry()
//	reg.MustRegister(arabic.Collectors()...)
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		documentsIndexed,
		documentsDeleted,
		tokensAnalyzed,
		stemsIndexed,
		queriesTotal,
	}
}
