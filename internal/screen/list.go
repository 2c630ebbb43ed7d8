package screen

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/idilsaglam/healthlog/internal/model"
)

// FetchState is the list controller's position in Idle -> Fetching -> Idle.
type FetchState int

const (
	Idle FetchState = iota
	Fetching
)

func (s FetchState) String() string {
	if s == Fetching {
		return "fetching"
	}
	return "idle"
}

// PageSource fetches one page. api.Appointments.Index and
// api.Treatments.Index fit as method values.
type PageSource[T any] func(ctx context.Context, q model.PageQuery) ([]T, error)

type ListOptions struct {
	// PageSize is what a full page holds; a shorter page ends the list.
	// Zero means only an empty page ends it.
	PageSize int
	// FailureMessage is the toast shown when a fetch fails.
	FailureMessage string
	// AdvanceOnFailure moves the cursor even when a fetch fails, so a
	// retry skips the failed page. Off by default.
	AdvanceOnFailure bool
	Logger           *zap.Logger
}

// ListFetcher grows one ordered display list from successive pages.
// Page 1 replaces the list, later pages append to it.
type ListFetcher[T any] struct {
	source PageSource[T]
	notify Notifier
	opts   ListOptions
	log    *zap.Logger

	mu       sync.Mutex
	items    []T
	page     int
	search   string
	hasMore  bool
	state    FetchState
	disposed bool
}

func NewListFetcher[T any](source PageSource[T], notify Notifier, opts ListOptions) *ListFetcher[T] {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &ListFetcher[T]{
		source:  source,
		notify:  notify,
		opts:    opts,
		log:     log,
		page:    1,
		hasMore: true,
	}
}

// LoadNextPage requests the page under the cursor. Callers must wait for
// one call to return before issuing the next; an overlapping call gets
// ErrFetchInProgress and nothing is sent.
func (f *ListFetcher[T]) LoadNextPage(ctx context.Context, search string) error {
	f.mu.Lock()
	switch {
	case f.disposed:
		f.mu.Unlock()
		return ErrDisposed
	case f.state == Fetching:
		f.mu.Unlock()
		return ErrFetchInProgress
	case !f.hasMore:
		f.mu.Unlock()
		return ErrNoMorePages
	}
	f.state = Fetching
	page := f.page
	f.mu.Unlock()

	data, err := f.source(ctx, model.PageQuery{Page: page, Search: search})

	f.mu.Lock()
	f.state = Idle
	if f.disposed {
		f.mu.Unlock()
		return ErrDisposed
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		f.mu.Unlock()
		return ctxErr
	}
	f.search = search

	if err != nil {
		if f.opts.AdvanceOnFailure {
			f.page++
		}
		f.mu.Unlock()
		f.log.Warn("screen.ListFetcher.LoadNextPage failed",
			zap.Int("page", page),
			zap.String("search", search),
			zap.Error(err),
		)
		f.notify.Error(f.opts.FailureMessage)
		return err
	}

	if len(data) > 0 {
		if page == 1 {
			f.items = append([]T(nil), data...)
		} else {
			f.items = append(f.items, data...)
		}
	}
	if len(data) == 0 || (f.opts.PageSize > 0 && len(data) < f.opts.PageSize) {
		f.hasMore = false
	}
	f.page++
	total := len(f.items)
	f.mu.Unlock()

	f.log.Debug("screen.ListFetcher.LoadNextPage succeeded",
		zap.Int("page", page),
		zap.Int("received", len(data)),
		zap.Int("total", total),
	)
	return nil
}

// Restart drops the list and loads page 1 for a new search term.
func (f *ListFetcher[T]) Restart(ctx context.Context, search string) error {
	f.mu.Lock()
	if f.disposed {
		f.mu.Unlock()
		return ErrDisposed
	}
	if f.state == Fetching {
		f.mu.Unlock()
		return ErrFetchInProgress
	}
	f.page = 1
	f.hasMore = true
	f.items = nil
	f.mu.Unlock()
	return f.LoadNextPage(ctx, search)
}

// Dispose detaches the controller from its screen. Fetches still in flight
// finish without touching state or raising toasts.
func (f *ListFetcher[T]) Dispose() {
	f.mu.Lock()
	f.disposed = true
	f.mu.Unlock()
}

// Items returns a copy of the display list.
func (f *ListFetcher[T]) Items() []T {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]T(nil), f.items...)
}

// Page is the cursor: the page the next LoadNextPage will request.
func (f *ListFetcher[T]) Page() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.page
}

func (f *ListFetcher[T]) HasMore() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hasMore
}

func (f *ListFetcher[T]) Search() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.search
}

func (f *ListFetcher[T]) State() FetchState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *ListFetcher[T]) Fetching() bool { return f.State() == Fetching }
