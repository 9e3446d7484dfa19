package producers

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/atelieamado/backoffice-api/pkg/db/models"
	"github.com/atelieamado/backoffice-api/pkg/pagination"
)

// ListResult is one page of producer images plus the producer's total.
type ListResult struct {
	Images     []models.ProducerImage
	TotalCount int
}

// Repository wires together producer image persistence.
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

// DistinctProducers returns every producer name appearing in the image
// table, sorted. There is no producers table; the grouping key is the data.
func (r *Repository) DistinctProducers(ctx context.Context) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&models.ProducerImage{}).
		Distinct("produtora").
		Order("produtora ASC").
		Pluck("produtora", &names).
		Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

// ListImages returns one page of a producer's images plus that producer's
// total. Producer matching is exact; an unknown producer yields an empty
// page, not an error.
func (r *Repository) ListImages(ctx context.Context, producer string, page pagination.Params) (*ListResult, error) {
	page = page.Normalize()
	producer = strings.TrimSpace(producer)

	qb := r.db.WithContext(ctx).
		Model(&models.ProducerImage{}).
		Where("produtora = ?", producer)

	var total int64
	if err := qb.Count(&total).Error; err != nil {
		return nil, err
	}

	var rows []models.ProducerImage
	err := qb.
		Order("imagem_nome ASC").
		Order("id ASC").
		Offset(page.Offset()).
		Limit(page.PerPage).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	return &ListResult{Images: rows, TotalCount: int(total)}, nil
}
