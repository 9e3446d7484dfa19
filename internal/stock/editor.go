package stock

import (
	"context"
	"sync"

	"github.com/atelieamado/backoffice-api/internal/listview"
	pkgerrors "github.com/atelieamado/backoffice-api/pkg/errors"
)

// Committer persists a staged quantity. *Service satisfies it.
type Committer interface {
	UpdateQuantity(ctx context.Context, id int64, quantity int) (*Row, error)
}

type editSession struct {
	id       int64
	original int
	staged   int
}

// Editor manages the quantity edit lifecycle for one stock list view. At
// most one row is in edit at a time: beginning an edit on another row
// discards the previous session without persisting it. A failed commit
// keeps the session open so the staged value is not lost.
type Editor struct {
	mu        sync.Mutex
	view      *listview.View[Row]
	committer Committer
	session   *editSession
}

// NewEditor binds an editor to a view and a committer.
func NewEditor(view *listview.View[Row], committer Committer) *Editor {
	return &Editor{view: view, committer: committer}
}

// Begin opens an edit session on the given row, staging its current value.
func (e *Editor) Begin(id int64, current int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.session = &editSession{id: id, original: current, staged: current}
}

// Stage replaces the staged value. Any integer is accepted into local
// state; validation happens at commit time.
func (e *Editor) Stage(value int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "no edit session active")
	}
	e.session.staged = value
	return nil
}

// Cancel discards the staged value with no remote call.
func (e *Editor) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.session = nil
}

// Editing returns the row id and staged value of the active session, if any.
func (e *Editor) Editing() (id int64, staged int, ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		return 0, 0, false
	}
	return e.session.id, e.session.staged, true
}

// Commit validates the staged value, persists it, and reconciles the row in
// the bound view. On any failure the session stays open.
func (e *Editor) Commit(ctx context.Context) error {
	e.mu.Lock()
	if e.session == nil {
		e.mu.Unlock()
		return pkgerrors.New(pkgerrors.CodeStateConflict, "no edit session active")
	}
	id := e.session.id
	staged := e.session.staged
	e.mu.Unlock()

	if staged < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be a non-negative integer").
			WithDetails(map[string]any{"quantity": staged})
	}

	updated, err := e.committer.UpdateQuantity(ctx, id, staged)
	if err != nil {
		return err
	}

	if e.view != nil {
		e.view.UpdateRow(
			func(r Row) bool { return r.ID == id },
			func(r Row) Row {
				if updated != nil {
					return *updated
				}
				r.Quantity = staged
				return r
			},
		)
	}

	e.mu.Lock()
	// only clear if no newer session replaced this one mid-commit
	if e.session != nil && e.session.id == id {
		e.session = nil
	}
	e.mu.Unlock()
	return nil
}
