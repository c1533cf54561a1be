package cubetimer

import "log/slog"

// Option configures a History.
type Option func(*History)

// WithClock overrides the wall clock used for sync record dates.
func WithClock(clock Clock) Option {
	return func(h *History) {
		h.clock = clock
	}
}

// WithLogger enables structured logging of database operations. By
// default the History is silent.
func WithLogger(logger *slog.Logger) Option {
	return func(h *History) {
		h.logger = logger
	}
}

// WithSyncWrites controls whether the store fsyncs on every commit.
// Defaults to true; disable for tests.
func WithSyncWrites(enabled bool) Option {
	return func(h *History) {
		h.syncWrites = enabled
	}
}
