// Package metrics collects run metrics in Prometheus form. A CLI run is
// short-lived, so instead of serving /metrics the registry is written to a
// node_exporter textfile when the run ends.
package metrics

import (
	"fmt"
	"strconv"
	"time"

	"devscout/pkg/aggregator"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector records HTTP, source and reply-scrape metrics
type Collector struct {
	requests       *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	sourceFetches  *prometheus.CounterVec
	recordsAdded   *prometheus.CounterVec
	sourceLatency  *prometheus.HistogramVec
	runRecords     *prometheus.GaugeVec
	lastRun        *prometheus.GaugeVec
	replyScrapes   *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics with reg
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "devscout_http_requests_total",
			Help: "Outbound HTTP requests by host and status code (0 for transport failures).",
		}, []string{"host", "status_code"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "devscout_http_request_duration_seconds",
			Help:    "Outbound HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"host"}),
		sourceFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "devscout_source_fetches_total",
			Help: "Source fetches by run kind and result.",
		}, []string{"kind", "result"}),
		recordsAdded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "devscout_source_records_added_total",
			Help: "Records merged into a run after deduplication.",
		}, []string{"kind"}),
		sourceLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "devscout_source_fetch_duration_seconds",
			Help:    "Time spent in one source fetch.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"kind"}),
		runRecords: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "devscout_run_records",
			Help: "Records in the final collection of the last run.",
		}, []string{"kind"}),
		lastRun: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "devscout_last_run_timestamp_seconds",
			Help: "Unix time the last run of a kind finished.",
		}, []string{"kind"}),
		replyScrapes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "devscout_reply_scrapes_total",
			Help: "Reply thread scrapes by result.",
		}, []string{"result"}),
	}

	reg.MustRegister(
		c.requests,
		c.requestLatency,
		c.sourceFetches,
		c.recordsAdded,
		c.sourceLatency,
		c.runRecords,
		c.lastRun,
		c.replyScrapes,
	)

	return c
}

// ObserveRequest records one outbound request
func (c *Collector) ObserveRequest(host string, status int, d time.Duration) {
	c.requests.WithLabelValues(host, strconv.Itoa(status)).Inc()
	c.requestLatency.WithLabelValues(host).Observe(d.Seconds())
}

// SourceObserver returns an aggregator outcome hook that records every
// source of a run under kind
func (c *Collector) SourceObserver(kind string) func(aggregator.Outcome) {
	return func(o aggregator.Outcome) {
		result := "ok"
		if o.Err != nil {
			result = "failed"
		}
		c.sourceFetches.WithLabelValues(kind, result).Inc()
		c.recordsAdded.WithLabelValues(kind).Add(float64(o.Added))
		c.sourceLatency.WithLabelValues(kind).Observe(o.Duration.Seconds())
	}
}

// RecordRun records the size of a finished run's collection
func (c *Collector) RecordRun(kind string, records int, finished time.Time) {
	c.runRecords.WithLabelValues(kind).Set(float64(records))
	c.lastRun.WithLabelValues(kind).Set(float64(finished.Unix()))
}

// RecordReplyScrape records one reply thread scrape
func (c *Collector) RecordReplyScrape(ok bool) {
	result := "ok"
	if !ok {
		result = "failed"
	}
	c.replyScrapes.WithLabelValues(result).Inc()
}

// WriteTextfile writes everything g gathers to path in the Prometheus text
// format. An empty path is a no-op.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
