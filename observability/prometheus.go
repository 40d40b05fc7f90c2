package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/ndimage"
)

// PrometheusCollector implements ndimage.MetricsCollector.
type PrometheusCollector struct {
	forgeLatency *prometheus.HistogramVec
	forgedBytes  prometheus.Counter
	releases     prometheus.Counter
	releaseBytes prometheus.Counter
	liveBytes    prometheus.Gauge
	views        *prometheus.CounterVec
}

var _ ndimage.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheusCollector creates the ndimage metrics under namespace and
// registers them with reg. A nil reg uses prometheus.DefaultRegisterer.
func NewPrometheusCollector(reg prometheus.Registerer, namespace string) (*PrometheusCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &PrometheusCollector{
		forgeLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ndimage_forge_duration_seconds",
			Help:      "Latency of image forge operations",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		}, []string{"status"}),
		forgedBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ndimage_forged_bytes_total",
			Help:      "Total bytes of data blocks allocated",
		}),
		releases: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ndimage_block_releases_total",
			Help:      "Total data blocks released",
		}),
		releaseBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ndimage_released_bytes_total",
			Help:      "Total bytes of data blocks released",
		}),
		liveBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ndimage_live_bytes",
			Help:      "Bytes held by data blocks that are still referenced",
		}),
		views: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ndimage_views_total",
			Help:      "Total views created, by kind",
		}, []string{"kind"}),
	}

	for _, m := range []prometheus.Collector{
		c.forgeLatency,
		c.forgedBytes,
		c.releases,
		c.releaseBytes,
		c.liveBytes,
		c.views,
	} {
		if err := reg.Register(m); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// RecordForge implements ndimage.MetricsCollector.
func (c *PrometheusCollector) RecordForge(bytes int, d time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	c.forgeLatency.WithLabelValues(status).Observe(d.Seconds())
	if err == nil {
		c.forgedBytes.Add(float64(bytes))
		c.liveBytes.Add(float64(bytes))
	}
}

// RecordRelease implements ndimage.MetricsCollector.
func (c *PrometheusCollector) RecordRelease(bytes int) {
	c.releases.Inc()
	c.releaseBytes.Add(float64(bytes))
	c.liveBytes.Sub(float64(bytes))
}

// RecordView implements ndimage.MetricsCollector.
func (c *PrometheusCollector) RecordView(kind string) {
	c.views.WithLabelValues(kind).Inc()
}
