package keyed

import (
	"log/slog"
	"time"
)

// DuplicatePolicy decides what a pass does when two items share a key.
type DuplicatePolicy uint8

const (
	// DuplicateLastWins keeps a single view per key, bound to the last
	// occurrence in the sequence.
	DuplicateLastWins DuplicatePolicy = iota

	// DuplicateReject fails the pass with a *DuplicateKeyError before the
	// host is touched.
	DuplicateReject
)

// String returns the policy name.
func (p DuplicatePolicy) String() string {
	switch p {
	case DuplicateLastWins:
		return "last-wins"
	case DuplicateReject:
		return "reject"
	default:
		return "unknown"
	}
}

// Observer receives the outcome of every completed pass.
type Observer interface {
	ObservePass(list string, stats Stats, elapsed time.Duration)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(list string, stats Stats, elapsed time.Duration)

// ObservePass implements Observer.
func (f ObserverFunc) ObservePass(list string, stats Stats, elapsed time.Duration) {
	f(list, stats, elapsed)
}

type config struct {
	name       string
	logger     *slog.Logger
	observer   Observer
	duplicates DuplicatePolicy
}

// Option configures a List.
type Option func(*config)

// WithName labels the list in logs and observer callbacks.
func WithName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithObserver registers an observer for pass statistics.
func WithObserver(o Observer) Option {
	return func(c *config) {
		c.observer = o
	}
}

// WithDuplicatePolicy sets the duplicate key policy.
func WithDuplicatePolicy(p DuplicatePolicy) Option {
	return func(c *config) {
		c.duplicates = p
	}
}

func defaultLogger() *slog.Logger {
	return slog.Default()
}
