package todos

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidLimit is returned for a non-positive limit. No transition is
// dispatched in that case.
var ErrInvalidLimit = errors.New("todos: limit must be positive")

// Fetcher issues fetches against a Source and applies their outcomes to a
// Store.
//
// Fetches are not coordinated: overlapping calls each dispatch their own
// Started and settle independently, and every success appends to the list.
type Fetcher struct {
	store   *Store
	source  Source
	logger  *slog.Logger
	metrics *Metrics
	timeout time.Duration
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithLogger sets the logger used for settled fetches.
func WithLogger(l *slog.Logger) FetcherOption {
	return func(f *Fetcher) { f.logger = l }
}

// WithMetrics records fetch metrics on m.
func WithMetrics(m *Metrics) FetcherOption {
	return func(f *Fetcher) { f.metrics = m }
}

// WithTimeout bounds each remote call. Zero means no bound.
func WithTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) { f.timeout = d }
}

// NewFetcher creates a fetcher applying outcomes from source to store.
func NewFetcher(store *Store, source Source, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		store:  store,
		source: source,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Store returns the store outcomes are applied to.
func (f *Fetcher) Store() *Store { return f.store }

// FetchTodos requests up to limit records.
//
// Started is dispatched before FetchTodos returns. The remote call runs on
// its own goroutine and is not cancelled when ctx is; only ctx values are
// kept. Exactly one of Succeeded or Failed is dispatched when it settles,
// after which the returned channel yields nil or the cause of the failure
// and is closed. Transport and decode failures are applied as Failed, the
// same as a rejected response.
func (f *Fetcher) FetchTodos(ctx context.Context, limit int) <-chan error {
	done := make(chan error, 1)
	if limit <= 0 {
		done <- ErrInvalidLimit
		close(done)
		return done
	}

	id := uuid.NewString()
	f.metrics.fetchStarted()
	f.store.Dispatch(Started{RequestID: id, Limit: limit})

	ctx = context.WithoutCancel(ctx)
	go func() {
		defer close(done)
		done <- f.settle(ctx, id, limit)
	}()
	return done
}

func (f *Fetcher) settle(ctx context.Context, id string, limit int) error {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	start := time.Now()
	records, err := f.source.List(ctx, limit)
	f.metrics.fetchSettled(err, time.Since(start))

	if err != nil {
		f.store.Dispatch(Failed{RequestID: id, Message: FailureMessage})
		f.logger.Warn("fetch todos failed",
			"request_id", id,
			"limit", limit,
			"outcome", outcome(err),
			"error", err,
		)
		return err
	}

	f.store.Dispatch(Succeeded{RequestID: id, Payload: records})
	f.logger.Debug("fetch todos succeeded",
		"request_id", id,
		"limit", limit,
		"count", len(records),
	)
	return nil
}
