// Package promstats exposes an Emitter's delivery counters to Prometheus,
// so a process can see how many of its own measurements were dropped.
package promstats

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stripe/emitter"
)

// StatsSource is anything that reports emitter.Stats, usually an
// *emitter.Emitter.
type StatsSource interface {
	Stats() emitter.Stats
}

// Collector is a prometheus.Collector reading an emitter's counters at
// scrape time.
type Collector struct {
	source StatsSource

	transmitted *prometheus.Desc
	failed      *prometheus.Desc
	sampledOut  *prometheus.Desc
	invalid     *prometheus.Desc
	buffered    *prometheus.Desc
}

var _ prometheus.Collector = &Collector{}

// NewCollector returns a Collector for source. Every metric name starts
// with namespace, and constLabels is attached to all of them.
func NewCollector(namespace string, constLabels prometheus.Labels, source StatsSource) *Collector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "statsd", name), help, nil, constLabels)
	}
	return &Collector{
		source:      source,
		transmitted: desc("payloads_transmitted_total", "Payloads accepted by the transport."),
		failed:      desc("payloads_failed_total", "Payloads the transport failed to send."),
		sampledOut:  desc("measurements_sampled_out_total", "Measurements skipped by sampling."),
		invalid:     desc("measurements_invalid_total", "Measurements dropped for an unknown kind or a non-positive sample rate."),
		buffered:    desc("measurements_buffered_total", "Measurements added to the batch buffer."),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.transmitted
	ch <- c.failed
	ch <- c.sampledOut
	ch <- c.invalid
	ch <- c.buffered
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	stats := c.source.Stats()
	ch <- prometheus.MustNewConstMetric(c.transmitted, prometheus.CounterValue, float64(stats.Transmitted))
	ch <- prometheus.MustNewConstMetric(c.failed, prometheus.CounterValue, float64(stats.Failed))
	ch <- prometheus.MustNewConstMetric(c.sampledOut, prometheus.CounterValue, float64(stats.SampledOut))
	ch <- prometheus.MustNewConstMetric(c.invalid, prometheus.CounterValue, float64(stats.Invalid))
	ch <- prometheus.MustNewConstMetric(c.buffered, prometheus.CounterValue, float64(stats.Buffered))
}
