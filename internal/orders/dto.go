package orders

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/atelieamado/backoffice-api/pkg/db/models"
	"github.com/atelieamado/backoffice-api/pkg/enums"
)

// ListFilters narrows the order list. Query matches the customer name,
// case-insensitively, as a substring.
type ListFilters struct {
	Status *enums.OrderStatus
	Query  string
}

// ListResult is one page of orders plus the filtered total.
type ListResult struct {
	Orders     []models.Order
	TotalCount int
}

// OrderSummary is the list-row projection of an order.
type OrderSummary struct {
	ID            int64               `json:"id"`
	CustomerName  string              `json:"customer_name"`
	Total         decimal.Decimal     `json:"total"`
	Status        enums.OrderStatus   `json:"status"`
	StatusBadge   enums.BadgeTone     `json:"status_badge"`
	PaymentStatus enums.PaymentStatus `json:"payment_status"`
	PaymentBadge  enums.BadgeTone     `json:"payment_badge"`
	ItemCount     int                 `json:"item_count"`
	DeliveryDate  *time.Time          `json:"data_entrega,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
}

// DetailLineItem is one line of the composed detail view. ProductImageURL
// comes from the referenced stock item's photo; PrintURL from the line
// item's own stamp reference. They resolve independently and either may be
// empty.
type DetailLineItem struct {
	ID              int64           `json:"id"`
	ProductID       *int64          `json:"product_id,omitempty"`
	ProductName     string          `json:"product_name"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	LineTotal       decimal.Decimal `json:"line_total"`
	ProductImageURL string          `json:"product_image_url,omitempty"`
	PrintURL        string          `json:"print_url,omitempty"`
}

// OrderDetail is the composed view model returned by the detail endpoint.
type OrderDetail struct {
	ID               int64               `json:"id"`
	CustomerName     string              `json:"customer_name"`
	ContactZap       *string             `json:"contact_zap,omitempty"`
	ContactInstagram *string             `json:"contact_instagram,omitempty"`
	Total            decimal.Decimal     `json:"total"`
	Status           enums.OrderStatus   `json:"status"`
	PaymentMethod    enums.PaymentMethod `json:"payment_method"`
	PaymentStatus    enums.PaymentStatus `json:"payment_status"`
	DeliveryDate     *time.Time          `json:"data_entrega,omitempty"`
	CreatedAt        time.Time           `json:"created_at"`
	Items            []DetailLineItem    `json:"items"`
}

func summarize(order models.Order) OrderSummary {
	return OrderSummary{
		ID:            order.ID,
		CustomerName:  order.CustomerName,
		Total:         order.Total,
		Status:        order.Status,
		StatusBadge:   order.Status.Badge(),
		PaymentStatus: order.PaymentStatus,
		PaymentBadge:  order.PaymentStatus.Badge(),
		ItemCount:     len(order.Items),
		DeliveryDate:  order.DeliveryDate,
		CreatedAt:     order.CreatedAt,
	}
}
