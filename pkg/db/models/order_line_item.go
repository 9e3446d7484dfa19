package models

import (
	"github.com/shopspring/decimal"
)

// OrderLineItem is the snapshot of one item within an order. Price is the
// unit price captured at order time and is never recomputed from the stock
// item's current price. ProductID is nullable because legacy stock rows may
// have been deleted after the order was placed.
type OrderLineItem struct {
	ID        int64           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	OrderID   int64           `gorm:"column:order_id;not null" json:"order_id"`
	ProductID *int64          `gorm:"column:product_id" json:"product_id,omitempty"`
	Quantity  int             `gorm:"column:quantity;not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null" json:"price"`
	Estampa   *string         `gorm:"column:estampa" json:"estampa,omitempty"`
	StockItem *StockItem      `gorm:"foreignKey:ProductID;references:ID" json:"estoque,omitempty"`
}

// TableName maps OrderLineItem onto the legacy order_items table.
func (OrderLineItem) TableName() string {
	return "order_items"
}
