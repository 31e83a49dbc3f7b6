package runner

import (
	"time"

	"digital.vasic.testnames/pkg/listener"
	"digital.vasic.testnames/pkg/logging"
	"digital.vasic.testnames/pkg/metrics"
)

// Option configures a Runner.
type Option func(*Runner)

// WithListeners adds listeners notified after the naming listener.
func WithListeners(ls ...listener.Listener) Option {
	return func(r *Runner) {
		r.extra = append(r.extra, ls...)
	}
}

// WithLogger sets the logger used by the runner.
func WithLogger(logger logging.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m metrics.NamingMetrics) Option {
	return func(r *Runner) {
		r.metrics = m
	}
}

// WithTest registers the function executed for method.
func WithTest(method string, fn TestFunc) Option {
	return func(r *Runner) {
		r.tests[method] = fn
	}
}

// WithTests registers several test functions by method name.
func WithTests(tests map[string]TestFunc) Option {
	return func(r *Runner) {
		for name, fn := range tests {
			r.tests[name] = fn
		}
	}
}

// WithRegistry registers every test function of reg. Functions
// added later with WithTest take precedence.
func WithRegistry(reg *Registry) Option {
	return func(r *Runner) {
		for _, name := range reg.Methods() {
			if _, set := r.tests[name]; set {
				continue
			}
			if fn, ok := reg.Get(name); ok {
				r.tests[name] = fn
			}
		}
	}
}

// WithTimeout sets the per-invocation timeout. Zero disables it.
func WithTimeout(timeout time.Duration) Option {
	return func(r *Runner) {
		r.timeout = timeout
	}
}
