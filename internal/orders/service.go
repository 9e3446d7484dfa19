package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/atelieamado/backoffice-api/internal/listview"
	"github.com/atelieamado/backoffice-api/pkg/db/models"
	"github.com/atelieamado/backoffice-api/pkg/enums"
	pkgerrors "github.com/atelieamado/backoffice-api/pkg/errors"
	"github.com/atelieamado/backoffice-api/pkg/pagination"
	"github.com/atelieamado/backoffice-api/pkg/storage/assets"
)

// Store exposes the persistence surface the service depends on.
type Store interface {
	List(ctx context.Context, page pagination.Params, filters ListFilters) (*ListResult, error)
	FindByID(ctx context.Context, id int64) (*models.Order, error)
	FindDetail(ctx context.Context, id int64) (*models.Order, error)
	SetStatus(ctx context.Context, id int64, status enums.OrderStatus) error
}

// ListPage is one resolved page of order summaries plus its window.
type ListPage struct {
	Orders []OrderSummary    `json:"orders"`
	Window pagination.Window `json:"window"`
}

// Service implements order listing, detail aggregation and the finalize
// transition.
type Service struct {
	repo     Store
	resolver assets.Resolver
	perPage  int
}

// NewService builds the order service.
func NewService(repo Store, resolver assets.Resolver, perPage int) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders store required")
	}
	if perPage <= 0 {
		perPage = pagination.DefaultPerPage
	}
	return &Service{repo: repo, resolver: resolver, perPage: perPage}, nil
}

// List returns one page of order summaries. A page past the last one is
// clamped to the last page and re-fetched rather than returned empty.
func (s *Service) List(ctx context.Context, page pagination.Params, filters ListFilters) (*ListPage, error) {
	if page.PerPage <= 0 {
		page.PerPage = s.perPage
	}
	page = page.Normalize()

	result, err := s.repo.List(ctx, page, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}

	window := pagination.Window{Page: page.Page, PerPage: page.PerPage, TotalCount: result.TotalCount}
	if window.OutOfRange() {
		page.Page = window.Clamped().Page
		result, err = s.repo.List(ctx, page, filters)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
		}
		window = pagination.Window{Page: page.Page, PerPage: page.PerPage, TotalCount: result.TotalCount}
	}

	summaries := make([]OrderSummary, 0, len(result.Orders))
	for _, order := range result.Orders {
		summaries = append(summaries, summarize(order))
	}
	return &ListPage{Orders: summaries, Window: window.Clamped()}, nil
}

// FetchPage adapts the service to the list view engine.
func (s *Service) FetchPage(ctx context.Context, q listview.Query) (listview.Result[OrderSummary], error) {
	filters := ListFilters{Query: q.Search}
	if raw, ok := q.Filters["status"]; ok && raw != "" {
		status, err := enums.ParseOrderStatus(raw)
		if err != nil {
			return listview.Result[OrderSummary]{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "status filter")
		}
		filters.Status = &status
	}

	result, err := s.repo.List(ctx, q.Pagination, filters)
	if err != nil {
		return listview.Result[OrderSummary]{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}

	summaries := make([]OrderSummary, 0, len(result.Orders))
	for _, order := range result.Orders {
		summaries = append(summaries, summarize(order))
	}
	return listview.Result[OrderSummary]{Rows: summaries, TotalCount: result.TotalCount}, nil
}

// Detail returns the composed order view with every line item's assets
// resolved. Any failure aborts the whole detail; partial views are never
// returned.
func (s *Service) Detail(ctx context.Context, id int64) (*OrderDetail, error) {
	order, err := s.repo.FindDetail(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order detail")
	}

	detail := &OrderDetail{
		ID:               order.ID,
		CustomerName:     order.CustomerName,
		ContactZap:       order.ContactZap,
		ContactInstagram: order.ContactInstagram,
		Total:            order.Total,
		Status:           order.Status,
		PaymentMethod:    order.PaymentMethod,
		PaymentStatus:    order.PaymentStatus,
		DeliveryDate:     order.DeliveryDate,
		CreatedAt:        order.CreatedAt,
		Items:            make([]DetailLineItem, 0, len(order.Items)),
	}

	for _, item := range order.Items {
		line := DetailLineItem{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.Price,
			LineTotal: item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))),
		}
		if item.StockItem != nil {
			line.ProductName = item.StockItem.Name
			line.ProductImageURL = s.resolver.StockImageURL(item.StockItem.Image)
		}
		if item.Estampa != nil {
			line.PrintURL = s.resolver.PrintURL(*item.Estampa)
		}
		detail.Items = append(detail.Items, line)
	}
	return detail, nil
}

// Finalize moves a pending order to finalized. Any other starting status is
// rejected without mutation; a repeated finalize is therefore a precondition
// error, never a second transition.
func (s *Service) Finalize(ctx context.Context, id int64) (*OrderSummary, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}

	if order.Status != enums.OrderStatusPending {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "order is not pending").
			WithDetails(map[string]any{"status": order.Status.String()})
	}

	if err := s.repo.SetStatus(ctx, id, enums.OrderStatusFinalized); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "finalize order")
	}

	order.Status = enums.OrderStatusFinalized
	summary := summarize(*order)
	return &summary, nil
}
