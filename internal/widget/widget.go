// Package widget refreshes the dashboard's read-only display widgets.
//
// Each widget is an independent, timeout-bounded fetch. When a fetch fails
// the widget serves its last good value while that value is younger than
// the max-stale age, then its fallback value if it has one, and otherwise
// reports the error.
package widget

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"
)

// ErrNoData is returned by fetchers when the source answered but carried
// nothing usable.
var ErrNoData = errors.New("no usable data")

// Cell is the state of one widget after a refresh.
type Cell[T any] struct {
	Value     T
	FetchedAt time.Time
	Stale     bool
	Fallback  bool
	Err       error
}

// OK reports whether the cell carries a value to show.
func (c Cell[T]) OK() bool { return c.Err == nil }

// FetchFunc loads a fresh widget value.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// Widget wraps a FetchFunc with the stale and fallback policy.
type Widget[T any] struct {
	name     string
	fetch    FetchFunc[T]
	timeout  time.Duration
	maxStale time.Duration
	fallback *T
	now      func() time.Time
	log      *slog.Logger

	mu       sync.Mutex
	last     T
	lastAt   time.Time
	haveLast bool
}

// Options tune a Widget.
type Options[T any] struct {
	Timeout  time.Duration
	MaxStale time.Duration
	Fallback *T
	Logger   *slog.Logger
	Now      func() time.Time
}

// New returns a Widget named name.
func New[T any](name string, fetch FetchFunc[T], opt Options[T]) *Widget[T] {
	w := &Widget[T]{
		name:     name,
		fetch:    fetch,
		timeout:  opt.Timeout,
		maxStale: opt.MaxStale,
		fallback: opt.Fallback,
		now:      opt.Now,
		log:      opt.Logger,
	}
	if w.now == nil {
		w.now = time.Now
	}
	if w.log == nil {
		w.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return w
}

// Refresh fetches a new value and applies the stale and fallback policy.
func (w *Widget[T]) Refresh(ctx context.Context) Cell[T] {
	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}

	v, err := w.fetch(ctx)
	now := w.now()

	w.mu.Lock()
	defer w.mu.Unlock()

	if err == nil {
		w.last, w.lastAt, w.haveLast = v, now, true
		return Cell[T]{Value: v, FetchedAt: now}
	}

	w.log.Warn("widget refresh failed", "widget", w.name, "error", err)
	if w.haveLast && (w.maxStale <= 0 || now.Sub(w.lastAt) <= w.maxStale) {
		return Cell[T]{Value: w.last, FetchedAt: w.lastAt, Stale: true}
	}
	if w.fallback != nil {
		return Cell[T]{Value: *w.fallback, FetchedAt: now, Fallback: true}
	}
	return Cell[T]{Err: err}
}
