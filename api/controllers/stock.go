package controllers

import (
	"context"
	"net/http"

	"github.com/atelieamado/backoffice-api/api/responses"
	"github.com/atelieamado/backoffice-api/api/validators"
	"github.com/atelieamado/backoffice-api/internal/stock"
	"github.com/atelieamado/backoffice-api/pkg/logger"
	"github.com/atelieamado/backoffice-api/pkg/pagination"
)

// StockService is the slice of the stock service the controllers use.
type StockService interface {
	List(ctx context.Context, page pagination.Params, filters stock.ListFilters) (*stock.ListPage, error)
	UpdateQuantity(ctx context.Context, id int64, quantity int) (*stock.Row, error)
}

// ListStock serves the paginated, searchable stock list.
func ListStock(svc StockService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := parsePageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters := stock.ListFilters{
			Query: validators.SanitizeSearch(r.URL.Query().Get("q"), 120),
		}
		list, err := svc.List(r.Context(), page, filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

type updateQuantityBody struct {
	Quantity *int `json:"quantity" validate:"required,min=0"`
}

// UpdateStockQuantity commits a staged quantity for one stock item.
func UpdateStockQuantity(svc StockService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateQuantityBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		row, err := svc.UpdateQuantity(r.Context(), id, *body.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, row)
	}
}
