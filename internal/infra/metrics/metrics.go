package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var recordsPublishedTotal = promauto.With(prometheus.DefaultRegisterer).NewCounterVec(
	prometheus.CounterOpts{
		Name: "clusterwatch_records_published_total",
		Help: "Total number of records handed to the publisher, by record type.",
	},
	[]string{"type"},
)

var publishErrorsTotal = promauto.With(prometheus.DefaultRegisterer).NewCounterVec(
	prometheus.CounterOpts{
		Name: "clusterwatch_publish_errors_total",
		Help: "Total number of records the publisher rejected, by record type.",
	},
	[]string{"type"},
)

var enrichmentFailuresTotal = promauto.With(prometheus.DefaultRegisterer).NewCounterVec(
	prometheus.CounterOpts{
		Name: "clusterwatch_enrichment_failures_total",
		Help: "Total number of record fields left at their default because a lookup failed.",
	},
	[]string{"field"},
)

var crdBreakerTripped = promauto.With(prometheus.DefaultRegisterer).NewGauge(
	prometheus.GaugeOpts{
		Name: "clusterwatch_crd_breaker_tripped",
		Help: "Set to 1 once custom resource lookups are short-circuited for the life of the process.",
	},
)

var activeWatches = promauto.With(prometheus.DefaultRegisterer).NewGauge(
	prometheus.GaugeOpts{
		Name: "clusterwatch_active_watches",
		Help: "Number of clusters currently watched.",
	},
)

var snapshotFailuresTotal = promauto.With(prometheus.DefaultRegisterer).NewCounter(
	prometheus.CounterOpts{
		Name: "clusterwatch_snapshot_failures_total",
		Help: "Total number of aborted cluster snapshot attempts.",
	},
)

var cacheLookupsTotal = promauto.With(prometheus.DefaultRegisterer).NewCounterVec(
	prometheus.CounterOpts{
		Name: "clusterwatch_cache_lookups_total",
		Help: "Total number of TTL cache lookups, by cache and result (hit or miss).",
	},
	[]string{"cache", "result"},
)

// RecordPublished counts a record accepted by the publisher.
func RecordPublished(recordType string) {
	recordsPublishedTotal.WithLabelValues(recordType).Inc()
}

// RecordPublishError counts a record the publisher failed to accept.
func RecordPublishError(recordType string) {
	publishErrorsTotal.WithLabelValues(recordType).Inc()
}

// RecordEnrichmentFailure counts a degraded record field.
func RecordEnrichmentFailure(field string) {
	enrichmentFailuresTotal.WithLabelValues(field).Inc()
}

// SetCRDBreakerTripped flips the breaker gauge to 1.
func SetCRDBreakerTripped() {
	crdBreakerTripped.Set(1)
}

// SetActiveWatches reports the number of live watches.
func SetActiveWatches(n int) {
	activeWatches.Set(float64(n))
}

// RecordSnapshotFailure counts an aborted snapshot.
func RecordSnapshotFailure() {
	snapshotFailuresTotal.Inc()
}

// RecordCacheLookup counts a cache hit or miss.
func RecordCacheLookup(cache string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}

	cacheLookupsTotal.WithLabelValues(cache, result).Inc()
}
