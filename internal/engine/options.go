package engine

import "go.uber.org/zap"

// Option configures an Engine at construction time, styled on the
// functional-options idiom used by the pack's fsm builder package.
type Option func(*Engine)

// WithLogger attaches a structured logger used for diagnostics only -
// never for control flow. The default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMaxSteps sets the step budget. 0 means unbounded (see spec §5); the
// default, applied if this option is never supplied, is 1000.
func WithMaxSteps(maxSteps uint64) Option {
	return func(e *Engine) {
		e.maxSteps = maxSteps
	}
}
