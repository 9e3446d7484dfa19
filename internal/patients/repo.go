package patients

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/atelieamado/backoffice-api/pkg/db/models"
	"github.com/atelieamado/backoffice-api/pkg/pagination"
)

// autocompleteLimit caps the suggestion dropdown.
const autocompleteLimit = 5

// ListResult is one page of patients plus the filtered total.
type ListResult struct {
	Patients   []models.Patient
	TotalCount int
}

// Repository wires together patient persistence.
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

// List returns one page of patients ordered by name.
func (r *Repository) List(ctx context.Context, page pagination.Params, query string) (*ListResult, error) {
	page = page.Normalize()

	qb := r.db.WithContext(ctx).Model(&models.Patient{})
	if search := strings.TrimSpace(query); search != "" {
		qb = qb.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var total int64
	if err := qb.Count(&total).Error; err != nil {
		return nil, err
	}

	var rows []models.Patient
	err := qb.
		Order("name ASC").
		Order("id ASC").
		Offset(page.Offset()).
		Limit(page.PerPage).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	return &ListResult{Patients: rows, TotalCount: int(total)}, nil
}

// Autocomplete returns up to five name matches for the dropdown.
func (r *Repository) Autocomplete(ctx context.Context, term string) ([]models.Patient, error) {
	var rows []models.Patient
	err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ?", "%"+strings.ToLower(strings.TrimSpace(term))+"%").
		Order("name ASC").
		Limit(autocompleteLimit).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByID loads a single patient.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Patient, error) {
	var patient models.Patient
	if err := r.db.WithContext(ctx).First(&patient, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &patient, nil
}

// Create inserts a new patient row.
func (r *Repository) Create(ctx context.Context, patient *models.Patient) (*models.Patient, error) {
	if err := r.db.WithContext(ctx).Create(patient).Error; err != nil {
		return nil, err
	}
	return patient, nil
}
