package eval

import (
	"digital.vasic.gauntlet/pkg/logging"
	"digital.vasic.gauntlet/pkg/metrics"
	"digital.vasic.gauntlet/pkg/monitor"
)

// Option configures a Runner.
type Option func(*Runner)

// WithLogger attaches a structured logger for lifecycle events.
func WithLogger(logger logging.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithCollector attaches a monitor collector that receives one
// started event and one terminal event per challenge.
func WithCollector(collector *monitor.Collector) Option {
	return func(r *Runner) {
		r.collector = collector
	}
}

// WithMetrics attaches a metrics collector that records the
// outcome and duration of every evaluated challenge.
func WithMetrics(m *metrics.RunMetrics) Option {
	return func(r *Runner) {
		r.metrics = m
	}
}

// WithModel records the model identifier stamped into the run
// report.
func WithModel(model string) Option {
	return func(r *Runner) {
		r.model = model
	}
}

// WithProvider records the provider identifier stamped into the
// run report.
func WithProvider(provider string) Option {
	return func(r *Runner) {
		r.provider = provider
	}
}
