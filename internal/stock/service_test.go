package stock

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/atelieamado/backoffice-api/pkg/errors"
	"github.com/atelieamado/backoffice-api/pkg/pagination"
)

func TestServiceUpdateQuantity_validation(t *testing.T) {
	store := newStubStore(stockItem(7, "Camiseta", 5))
	svc := newTestService(t, store)

	_, err := svc.UpdateQuantity(context.Background(), 7, -2)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
	assert.Zero(t, store.updates)

	row, err := svc.UpdateQuantity(context.Background(), 7, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, row.Quantity)
}

func TestServiceUpdateQuantity_missingItem(t *testing.T) {
	svc := newTestService(t, newStubStore())

	_, err := svc.UpdateQuantity(context.Background(), 99, 3)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestServiceRowResolvesImage(t *testing.T) {
	item := stockItem(7, "Camiseta", 5)
	svc := newTestService(t, newStubStore(item))

	row := svc.toRow(*item)
	assert.Equal(t, "https://cdn.example.com/storage/v1/object/public/produtos/Imagens/Estoque/Camiseta.png", row.ImageURL)

	item.Image = ""
	row = svc.toRow(*item)
	assert.Empty(t, row.ImageURL, "missing fragment must not produce a dangling URL")
}

func TestServiceList_clampsPageBeyondBound(t *testing.T) {
	store := newStubStore(stockItem(1, "A", 1), stockItem(2, "B", 2), stockItem(3, "C", 3))
	svc := newTestService(t, store)

	page, err := svc.List(context.Background(), pagination.Params{Page: 5, PerPage: 2}, ListFilters{})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Window.Page)
	assert.Equal(t, 3, page.Window.TotalCount)
}
