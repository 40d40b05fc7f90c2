package ndimage

import (
	"log/slog"

	"github.com/hupe1980/ndimage/resource"
)

type options struct {
	metricsCollector MetricsCollector
	logger           *Logger
	controller       *resource.Controller
	allocator        Allocator
}

// Option configures how an image allocates and reports. Options given to
// NewRaw or New are inherited by every view and QuickCopy of the image.
type Option func(*options)

// WithMetricsCollector configures a metrics collector for forge, release and
// view events. Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &ndimage.BasicMetricsCollector{}
//	img := ndimage.NewRaw(ndimage.WithMetricsCollector(metrics))
//	// ... forge, view, strip ...
//	stats := metrics.GetStats()
//	fmt.Printf("Forges: %d, live bytes: %d\n", stats.ForgeCount, stats.LiveBytes)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for forge and release events.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := ndimage.NewJSONLogger(slog.LevelDebug)
//	img := ndimage.NewRaw(ndimage.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithResourceController makes forging reserve the data block size from c.
// Forging fails with a runtime error wrapping ErrMemoryLimitExceeded when the
// reservation would exceed c's limit; the reservation is returned when the
// block is released.
func WithResourceController(c *resource.Controller) Option {
	return func(o *options) {
		o.controller = c
	}
}

// WithAllocator configures where data blocks are allocated. If nil is
// passed, the default HeapAllocator is used.
func WithAllocator(a Allocator) Option {
	return func(o *options) {
		if a == nil {
			a = HeapAllocator{}
		}
		o.allocator = a
	}
}

func applyOptions(optFns []Option) *options {
	o := &options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		allocator:        HeapAllocator{},
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(o)
		}
	}
	return o
}
