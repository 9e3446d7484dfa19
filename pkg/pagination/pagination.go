package pagination

const (
	// DefaultPerPage is the standard page size when a view does not fix one.
	DefaultPerPage = 10
	// MaxPerPage caps how many rows any range query can request.
	MaxPerPage = 50
)

// Params holds offset pagination inputs from controllers or views.
type Params struct {
	Page    int
	PerPage int
}

// Normalize enforces a minimum page of 1 and the configured page size bounds.
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage <= 0 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	return p
}

// Offset returns the number of rows preceding the requested page.
func (p Params) Offset() int {
	p = p.Normalize()
	return (p.Page - 1) * p.PerPage
}

// Range returns the inclusive row range [start, end] the remote store is
// asked for, mirroring the range header convention of the collection API.
func (p Params) Range() (start, end int) {
	p = p.Normalize()
	start = p.Offset()
	return start, start + p.PerPage - 1
}

// Window is the derived page bound for a list view: the page that was
// fetched, its size, and the total count returned alongside the rows.
type Window struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	TotalCount int `json:"total_count"`
}

// TotalPages derives the page bound from the last known total count.
// An empty collection still has one (empty) page.
func (w Window) TotalPages() int {
	if w.TotalCount <= 0 {
		return 1
	}
	per := w.PerPage
	if per <= 0 {
		per = DefaultPerPage
	}
	return (w.TotalCount + per - 1) / per
}

// OutOfRange reports whether the window's page exceeds its page bound.
func (w Window) OutOfRange() bool {
	return w.Page > w.TotalPages()
}

// Clamped returns the window with its page forced into [1, TotalPages].
func (w Window) Clamped() Window {
	if w.Page < 1 {
		w.Page = 1
	}
	if max := w.TotalPages(); w.Page > max {
		w.Page = max
	}
	return w
}
