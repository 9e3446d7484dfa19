package listview

import (
	"context"
	"maps"
	"sync"

	pkgerrors "github.com/atelieamado/backoffice-api/pkg/errors"
	"github.com/atelieamado/backoffice-api/pkg/logger"
	"github.com/atelieamado/backoffice-api/pkg/pagination"
)

// Query is one bounded range request against a remote collection.
type Query struct {
	Pagination pagination.Params
	Filters    map[string]string
	Search     string
}

// Result carries one page of rows plus the total count the store returned
// alongside them.
type Result[T any] struct {
	Rows       []T
	TotalCount int
}

// Fetcher executes a query against the remote collection. Implementations
// live in the domain services.
type Fetcher[T any] interface {
	FetchPage(ctx context.Context, q Query) (Result[T], error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc[T any] func(ctx context.Context, q Query) (Result[T], error)

func (f FetcherFunc[T]) FetchPage(ctx context.Context, q Query) (Result[T], error) {
	return f(ctx, q)
}

type snapshot[T any] struct {
	rows   []T
	window pagination.Window
}

// View owns the visible state of one paginated list: the current rows, the
// page window, the active filters and search term. Changing a filter or the
// search term resets the page to 1; changing the page alone does not touch
// filters. Responses to superseded requests are discarded so a slow early
// fetch can never overwrite a later one.
type View[T any] struct {
	mu      sync.Mutex
	name    string
	perPage int
	fetcher Fetcher[T]
	logg    *logger.Logger

	page    int
	filters map[string]string
	search  string

	rows   []T
	window pagination.Window
	stale  bool

	seq uint64

	// last result fetched without a search term, replayed when the term
	// is cleared instead of re-querying with an empty pattern
	unsearched *snapshot[T]
}

// New builds an empty view with a fixed page size.
func New[T any](name string, perPage int, fetcher Fetcher[T], logg *logger.Logger) *View[T] {
	if perPage <= 0 {
		perPage = pagination.DefaultPerPage
	}
	return &View[T]{
		name:    name,
		perPage: perPage,
		fetcher: fetcher,
		logg:    logg,
		page:    1,
		filters: map[string]string{},
	}
}

// Refresh re-executes the current query.
func (v *View[T]) Refresh(ctx context.Context) error {
	return v.fetch(ctx)
}

// SetPage moves to the requested page without touching filters or search.
func (v *View[T]) SetPage(ctx context.Context, page int) error {
	v.mu.Lock()
	if page < 1 {
		page = 1
	}
	v.page = page
	v.mu.Unlock()
	return v.fetch(ctx)
}

// SetFilter sets or clears (empty value) an equality filter and resets the
// page to 1 before fetching.
func (v *View[T]) SetFilter(ctx context.Context, field, value string) error {
	v.mu.Lock()
	if value == "" {
		delete(v.filters, field)
	} else {
		v.filters[field] = value
	}
	v.page = 1
	v.unsearched = nil
	v.mu.Unlock()
	return v.fetch(ctx)
}

// SetSearch applies a case-insensitive substring search combined with the
// active filters, resetting the page to 1. Clearing the term replays the
// last unsearched result set for the current filters instead of issuing a
// query with an empty pattern.
func (v *View[T]) SetSearch(ctx context.Context, term string) error {
	v.mu.Lock()
	if term == "" {
		v.search = ""
		if v.unsearched != nil {
			v.rows = v.unsearched.rows
			v.window = v.unsearched.window
			v.page = v.unsearched.window.Page
			v.stale = false
			v.mu.Unlock()
			return nil
		}
		v.page = 1
		v.mu.Unlock()
		return v.fetch(ctx)
	}
	v.search = term
	v.page = 1
	v.mu.Unlock()
	return v.fetch(ctx)
}

// UpdateRow rewrites the first row matching the predicate in place. Used by
// edit sessions to reconcile local state after a successful commit.
func (v *View[T]) UpdateRow(match func(T) bool, update func(T) T) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	for i, row := range v.rows {
		if match(row) {
			v.rows[i] = update(row)
			return true
		}
	}
	return false
}

// Rows returns a copy of the currently visible rows.
func (v *View[T]) Rows() []T {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]T, len(v.rows))
	copy(out, v.rows)
	return out
}

// Window returns the current page window.
func (v *View[T]) Window() pagination.Window {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.window
}

// Stale reports whether the visible rows predate a failed fetch.
func (v *View[T]) Stale() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.stale
}

// Search returns the active search term.
func (v *View[T]) Search() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.search
}

// Filters returns a copy of the active equality filters.
func (v *View[T]) Filters() map[string]string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return maps.Clone(v.filters)
}

func (v *View[T]) fetch(ctx context.Context) error {
	return v.fetchAttempt(ctx, true)
}

// fetchAttempt runs one query. When the requested page turns out to be past
// the last page it clamps and refetches once rather than showing an empty
// page silently.
func (v *View[T]) fetchAttempt(ctx context.Context, allowClamp bool) error {
	v.mu.Lock()
	v.seq++
	issued := v.seq
	q := Query{
		Pagination: pagination.Params{Page: v.page, PerPage: v.perPage},
		Filters:    maps.Clone(v.filters),
		Search:     v.search,
	}
	fetcher := v.fetcher
	v.mu.Unlock()

	res, err := fetcher.FetchPage(ctx, q)

	v.mu.Lock()
	if issued != v.seq {
		// a newer request was issued while this one was in flight
		v.mu.Unlock()
		return nil
	}
	if err != nil {
		v.stale = true
		v.mu.Unlock()
		if v.logg != nil {
			v.logg.Error(v.logg.WithView(ctx, v.name), "list fetch failed", err)
		}
		if typed := pkgerrors.As(err); typed != nil {
			return typed
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch "+v.name)
	}

	window := pagination.Window{
		Page:       q.Pagination.Normalize().Page,
		PerPage:    v.perPage,
		TotalCount: res.TotalCount,
	}
	if allowClamp && window.OutOfRange() {
		v.page = window.Clamped().Page
		v.mu.Unlock()
		return v.fetchAttempt(ctx, false)
	}

	v.rows = res.Rows
	v.window = window.Clamped()
	v.page = v.window.Page
	v.stale = false
	if q.Search == "" {
		v.unsearched = &snapshot[T]{rows: res.Rows, window: v.window}
	}
	v.mu.Unlock()
	return nil
}
