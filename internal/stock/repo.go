package stock

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/atelieamado/backoffice-api/pkg/db/models"
	"github.com/atelieamado/backoffice-api/pkg/pagination"
)

// ListFilters narrows the stock list. Query matches the item name,
// case-insensitively, as a substring.
type ListFilters struct {
	Query string
}

// ListResult is one page of stock items plus the filtered total.
type ListResult struct {
	Items      []models.StockItem
	TotalCount int
}

// Repository wires together stock persistence.
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

// List returns one page of stock items ordered by name, with the count
// matching the same filters.
func (r *Repository) List(ctx context.Context, page pagination.Params, filters ListFilters) (*ListResult, error) {
	page = page.Normalize()

	qb := r.db.WithContext(ctx).Model(&models.StockItem{})
	if search := strings.TrimSpace(filters.Query); search != "" {
		qb = qb.Where("LOWER(nome) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var total int64
	if err := qb.Count(&total).Error; err != nil {
		return nil, err
	}

	var rows []models.StockItem
	err := qb.
		Order("nome ASC").
		Order("id ASC").
		Offset(page.Offset()).
		Limit(page.PerPage).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	return &ListResult{Items: rows, TotalCount: int(total)}, nil
}

// FindByID loads a single stock item.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.StockItem, error) {
	var item models.StockItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateQuantity rewrites the on-hand quantity scoped by primary key.
func (r *Repository) UpdateQuantity(ctx context.Context, id int64, quantity int) error {
	result := r.db.WithContext(ctx).
		Model(&models.StockItem{}).
		Where("id = ?", id).
		Update("quantidade", quantity)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
