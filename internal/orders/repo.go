package orders

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/atelieamado/backoffice-api/pkg/db/models"
	"github.com/atelieamado/backoffice-api/pkg/enums"
	"github.com/atelieamado/backoffice-api/pkg/pagination"
)

// Repository wires together order persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// List returns one page of orders plus the count matching the same filters.
// Sort order is fixed: open orders first (status descending sorts pending
// ahead of finalized ahead of cancelled), oldest first within a status, id
// as the tie breaker so pages never interleave.
func (r *Repository) List(ctx context.Context, page pagination.Params, filters ListFilters) (*ListResult, error) {
	page = page.Normalize()

	qb := r.db.WithContext(ctx).Model(&models.Order{})
	if filters.Status != nil {
		qb = qb.Where("status = ?", *filters.Status)
	}
	if search := strings.TrimSpace(filters.Query); search != "" {
		qb = qb.Where("LOWER(customer_name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var total int64
	if err := qb.Count(&total).Error; err != nil {
		return nil, err
	}

	var rows []models.Order
	err := qb.
		Preload("Items").
		Order("status DESC").
		Order("created_at ASC").
		Order("id ASC").
		Offset(page.Offset()).
		Limit(page.PerPage).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	return &ListResult{Orders: rows, TotalCount: int(total)}, nil
}

// FindByID loads the order without associations.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// FindDetail loads the order with its line items and each item's referenced
// stock row.
func (r *Repository) FindDetail(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Preload("Items.StockItem").
		First(&order, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// SetStatus rewrites the order's status by primary key.
func (r *Repository) SetStatus(ctx context.Context, id int64, status enums.OrderStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", status).
		Error
}
