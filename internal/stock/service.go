package stock

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/atelieamado/backoffice-api/internal/listview"
	"github.com/atelieamado/backoffice-api/pkg/db/models"
	pkgerrors "github.com/atelieamado/backoffice-api/pkg/errors"
	"github.com/atelieamado/backoffice-api/pkg/pagination"
	"github.com/atelieamado/backoffice-api/pkg/storage/assets"
)

// Store exposes the persistence surface the service depends on.
type Store interface {
	List(ctx context.Context, page pagination.Params, filters ListFilters) (*ListResult, error)
	FindByID(ctx context.Context, id int64) (*models.StockItem, error)
	UpdateQuantity(ctx context.Context, id int64, quantity int) error
}

// Row is the list projection of a stock item with its photo resolved to a
// public URL.
type Row struct {
	ID       int64           `json:"id"`
	Name     string          `json:"nome"`
	Quantity int             `json:"quantidade"`
	Price    decimal.Decimal `json:"valor"`
	ImageURL string          `json:"image_url,omitempty"`
}

// ListPage is one resolved page of stock rows plus its window.
type ListPage struct {
	Items  []Row             `json:"items"`
	Window pagination.Window `json:"window"`
}

// Service implements stock listing and the quantity update behind the
// optimistic editor.
type Service struct {
	repo     Store
	resolver assets.Resolver
	perPage  int
}

// NewService builds the stock service.
func NewService(repo Store, resolver assets.Resolver, perPage int) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("stock store required")
	}
	if perPage <= 0 {
		perPage = pagination.DefaultPerPage
	}
	return &Service{repo: repo, resolver: resolver, perPage: perPage}, nil
}

func (s *Service) toRow(item models.StockItem) Row {
	return Row{
		ID:       item.ID,
		Name:     item.Name,
		Quantity: item.Quantity,
		Price:    item.Price,
		ImageURL: s.resolver.StockImageURL(item.Image),
	}
}

// List returns one page of stock rows. Pages past the bound are clamped to
// the last page and re-fetched.
func (s *Service) List(ctx context.Context, page pagination.Params, filters ListFilters) (*ListPage, error) {
	if page.PerPage <= 0 {
		page.PerPage = s.perPage
	}
	page = page.Normalize()

	result, err := s.repo.List(ctx, page, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list stock")
	}

	window := pagination.Window{Page: page.Page, PerPage: page.PerPage, TotalCount: result.TotalCount}
	if window.OutOfRange() {
		page.Page = window.Clamped().Page
		result, err = s.repo.List(ctx, page, filters)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list stock")
		}
		window = pagination.Window{Page: page.Page, PerPage: page.PerPage, TotalCount: result.TotalCount}
	}

	rows := make([]Row, 0, len(result.Items))
	for _, item := range result.Items {
		rows = append(rows, s.toRow(item))
	}
	return &ListPage{Items: rows, Window: window.Clamped()}, nil
}

// FetchPage adapts the service to the list view engine.
func (s *Service) FetchPage(ctx context.Context, q listview.Query) (listview.Result[Row], error) {
	result, err := s.repo.List(ctx, q.Pagination, ListFilters{Query: q.Search})
	if err != nil {
		return listview.Result[Row]{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list stock")
	}
	rows := make([]Row, 0, len(result.Items))
	for _, item := range result.Items {
		rows = append(rows, s.toRow(item))
	}
	return listview.Result[Row]{Rows: rows, TotalCount: result.TotalCount}, nil
}

// UpdateQuantity persists a new on-hand quantity. Negative values are
// rejected before any remote call.
func (s *Service) UpdateQuantity(ctx context.Context, id int64, quantity int) (*Row, error) {
	if quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be a non-negative integer").
			WithDetails(map[string]any{"quantity": quantity})
	}

	if err := s.repo.UpdateQuantity(ctx, id, quantity); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "stock item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update stock quantity")
	}

	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload stock item")
	}
	row := s.toRow(*item)
	return &row, nil
}
