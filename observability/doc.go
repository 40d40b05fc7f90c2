// Package observability exports ndimage metrics to Prometheus.
//
//	reg := prometheus.NewRegistry()
//	collector, err := observability.NewPrometheusCollector(reg, "myapp")
//	if err != nil {
//		return err
//	}
//	img, err := ndimage.New(sizes, 1, datatype.SFloat, ndimage.WithMetricsCollector(collector))
package observability
