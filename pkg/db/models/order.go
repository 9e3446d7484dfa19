package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/atelieamado/backoffice-api/pkg/enums"
)

// Order is a customer order created by the checkout flow. This service only
// ever mutates its status; every other column is read-only here.
type Order struct {
	ID               int64               `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	CustomerName     string              `gorm:"column:customer_name;not null" json:"customer_name"`
	Total            decimal.Decimal     `gorm:"column:total;type:numeric(12,2);not null" json:"total"`
	Status           enums.OrderStatus   `gorm:"column:status;not null;default:'pending'" json:"status"`
	PaymentMethod    enums.PaymentMethod `gorm:"column:payment_method" json:"payment_method"`
	PaymentStatus    enums.PaymentStatus `gorm:"column:payment_status;not null;default:'waiting'" json:"payment_status"`
	ContactZap       *string             `gorm:"column:contact_zap" json:"contact_zap,omitempty"`
	ContactInstagram *string             `gorm:"column:contact_instagram" json:"contact_instagram,omitempty"`
	DeliveryDate     *time.Time          `gorm:"column:data_entrega" json:"data_entrega,omitempty"`
	Items            []OrderLineItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order_items,omitempty"`
	CreatedAt        time.Time           `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// TableName maps Order onto the legacy orders table.
func (Order) TableName() string {
	return "orders"
}
