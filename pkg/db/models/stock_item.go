package models

import (
	"github.com/shopspring/decimal"
)

// StockItem is one product in the estoque table. Column names stay in
// Portuguese to match the legacy schema. Only Quantity is mutated here;
// everything else belongs to admin tooling.
type StockItem struct {
	ID       int64           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name     string          `gorm:"column:nome;not null" json:"nome"`
	Quantity int             `gorm:"column:quantidade;not null;default:0" json:"quantidade"`
	Price    decimal.Decimal `gorm:"column:valor;type:numeric(12,2);not null" json:"valor"`
	Image    string          `gorm:"column:imagem" json:"imagem"`
}

// TableName maps StockItem onto the legacy estoque table.
func (StockItem) TableName() string {
	return "estoque"
}
