package orders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/atelieamado/backoffice-api/internal/listview"
	"github.com/atelieamado/backoffice-api/pkg/config"
	"github.com/atelieamado/backoffice-api/pkg/db/models"
	"github.com/atelieamado/backoffice-api/pkg/enums"
	pkgerrors "github.com/atelieamado/backoffice-api/pkg/errors"
	"github.com/atelieamado/backoffice-api/pkg/pagination"
	"github.com/atelieamado/backoffice-api/pkg/storage/assets"
)

type stubStore struct {
	orders    map[int64]*models.Order
	listCalls []pagination.Params
	listErr   error
	setErr    error
	statuses  []enums.OrderStatus
}

func newStubStore(orders ...*models.Order) *stubStore {
	s := &stubStore{orders: map[int64]*models.Order{}}
	for _, o := range orders {
		s.orders[o.ID] = o
	}
	return s
}

func (s *stubStore) List(_ context.Context, page pagination.Params, filters ListFilters) (*ListResult, error) {
	s.listCalls = append(s.listCalls, page)
	if s.listErr != nil {
		return nil, s.listErr
	}
	matched := make([]models.Order, 0, len(s.orders))
	for _, o := range s.orders {
		if filters.Status != nil && o.Status != *filters.Status {
			continue
		}
		matched = append(matched, *o)
	}
	start, end := page.Range()
	if start >= len(matched) {
		return &ListResult{Orders: []models.Order{}, TotalCount: len(matched)}, nil
	}
	if end >= len(matched) {
		end = len(matched) - 1
	}
	return &ListResult{Orders: matched[start : end+1], TotalCount: len(matched)}, nil
}

func (s *stubStore) FindByID(_ context.Context, id int64) (*models.Order, error) {
	order, ok := s.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *order
	return &clone, nil
}

func (s *stubStore) FindDetail(ctx context.Context, id int64) (*models.Order, error) {
	return s.FindByID(ctx, id)
}

func (s *stubStore) SetStatus(_ context.Context, id int64, status enums.OrderStatus) error {
	if s.setErr != nil {
		return s.setErr
	}
	order, ok := s.orders[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	order.Status = status
	s.statuses = append(s.statuses, status)
	return nil
}

func testResolver() assets.Resolver {
	return assets.NewResolver(config.StorageConfig{
		PublicBaseURL: "https://cdn.example.com/storage/v1/object/public",
		Bucket:        "produtos",
	})
}

func pendingOrder(id int64) *models.Order {
	return &models.Order{
		ID:            id,
		CustomerName:  "Ana",
		Total:         decimal.NewFromInt(120),
		Status:        enums.OrderStatusPending,
		PaymentStatus: enums.PaymentStatusWaiting,
		CreatedAt:     time.Now().UTC(),
	}
}

func TestServiceFinalize_transitionsOnce(t *testing.T) {
	store := newStubStore(pendingOrder(42))
	svc, err := NewService(store, testResolver(), 15)
	require.NoError(t, err)

	summary, err := svc.Finalize(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusFinalized, summary.Status)
	assert.Equal(t, enums.BadgeToneSuccess, summary.StatusBadge)

	// second call finds a finalized order and must not transition again
	_, err = svc.Finalize(context.Background(), 42)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.As(err).Code())
	assert.Len(t, store.statuses, 1)
}

func TestServiceFinalize_missingOrder(t *testing.T) {
	svc, err := NewService(newStubStore(), testResolver(), 15)
	require.NoError(t, err)

	_, err = svc.Finalize(context.Background(), 7)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestServiceFinalize_keepsStateOnStoreFailure(t *testing.T) {
	store := newStubStore(pendingOrder(42))
	store.setErr = errors.New("connection reset")
	svc, err := NewService(store, testResolver(), 15)
	require.NoError(t, err)

	_, err = svc.Finalize(context.Background(), 42)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeDependency, pkgerrors.As(err).Code())
	assert.True(t, pkgerrors.IsRetryable(err))
}

func TestServiceList_clampsPageBeyondBound(t *testing.T) {
	store := newStubStore(pendingOrder(1), pendingOrder(2), pendingOrder(3))
	svc, err := NewService(store, testResolver(), 2)
	require.NoError(t, err)

	page, err := svc.List(context.Background(), pagination.Params{Page: 9, PerPage: 2}, ListFilters{})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Window.Page)
	assert.Len(t, page.Orders, 1)
	require.Len(t, store.listCalls, 2)
	assert.Equal(t, 2, store.listCalls[1].Page)
}

func TestServiceDetail_resolvesAssetFamiliesIndependently(t *testing.T) {
	estampa := "flor.png"
	order := pendingOrder(42)
	order.Items = []models.OrderLineItem{
		{
			ID:       1,
			OrderID:  42,
			Quantity: 3,
			Price:    decimal.NewFromInt(40),
			Estampa:  &estampa,
			StockItem: &models.StockItem{
				ID:    7,
				Name:  "Camiseta Basica",
				Image: "camiseta.png",
			},
		},
		{
			ID:       2,
			OrderID:  42,
			Quantity: 1,
			Price:    decimal.NewFromInt(25),
		},
	}
	store := newStubStore(order)
	svc, err := NewService(store, testResolver(), 15)
	require.NoError(t, err)

	detail, err := svc.Detail(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, detail.Items, 2)

	first := detail.Items[0]
	assert.Equal(t, "https://cdn.example.com/storage/v1/object/public/produtos/Imagens/Estoque/camiseta.png", first.ProductImageURL)
	assert.Equal(t, "https://cdn.example.com/storage/v1/object/public/produtos/Imagens/Estampas/flor.png", first.PrintURL)
	assert.True(t, first.LineTotal.Equal(decimal.NewFromInt(120)))

	// orphaned line item: no stock row, no stamp, never a dangling URL
	second := detail.Items[1]
	assert.Empty(t, second.ProductImageURL)
	assert.Empty(t, second.PrintURL)
}

func TestServiceDetail_missingOrderAbortsWhole(t *testing.T) {
	svc, err := NewService(newStubStore(), testResolver(), 15)
	require.NoError(t, err)

	detail, err := svc.Detail(context.Background(), 404)
	require.Error(t, err)
	assert.Nil(t, detail)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestServiceFetchPage_statusFilter(t *testing.T) {
	finalized := pendingOrder(2)
	finalized.Status = enums.OrderStatusFinalized
	store := newStubStore(pendingOrder(1), finalized)
	svc, err := NewService(store, testResolver(), 15)
	require.NoError(t, err)

	res, err := svc.FetchPage(context.Background(), listview.Query{
		Pagination: pagination.Params{Page: 1, PerPage: 10},
		Filters:    map[string]string{"status": "pending"},
	})
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, int64(1), res.Rows[0].ID)

	_, err = svc.FetchPage(context.Background(), listview.Query{
		Pagination: pagination.Params{Page: 1, PerPage: 10},
		Filters:    map[string]string{"status": "shipped"},
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}
