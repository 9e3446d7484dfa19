package patients

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/atelieamado/backoffice-api/internal/listview"
	"github.com/atelieamado/backoffice-api/pkg/db/models"
	pkgerrors "github.com/atelieamado/backoffice-api/pkg/errors"
	"github.com/atelieamado/backoffice-api/pkg/pagination"
)

// Store exposes the persistence surface the service depends on.
type Store interface {
	List(ctx context.Context, page pagination.Params, query string) (*ListResult, error)
	Autocomplete(ctx context.Context, term string) ([]models.Patient, error)
	FindByID(ctx context.Context, id int64) (*models.Patient, error)
	Create(ctx context.Context, patient *models.Patient) (*models.Patient, error)
}

// ListPage is one resolved page of patients plus its window.
type ListPage struct {
	Patients []models.Patient  `json:"patients"`
	Window   pagination.Window `json:"window"`
}

// CreateInput holds the validated payload to register a patient.
type CreateInput struct {
	Name        string
	Phone       string
	Email       string
	BornDate    *time.Time
	Responsible string
}

// Service implements patient listing, lookup and registration.
type Service struct {
	repo    Store
	perPage int
}

// NewService builds the patient service.
func NewService(repo Store, perPage int) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("patients store required")
	}
	if perPage <= 0 {
		perPage = pagination.DefaultPerPage
	}
	return &Service{repo: repo, perPage: perPage}, nil
}

// List returns one page of patients. Pages past the bound are clamped.
func (s *Service) List(ctx context.Context, page pagination.Params, query string) (*ListPage, error) {
	if page.PerPage <= 0 {
		page.PerPage = s.perPage
	}
	page = page.Normalize()

	result, err := s.repo.List(ctx, page, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list patients")
	}

	window := pagination.Window{Page: page.Page, PerPage: page.PerPage, TotalCount: result.TotalCount}
	if window.OutOfRange() {
		page.Page = window.Clamped().Page
		result, err = s.repo.List(ctx, page, query)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list patients")
		}
		window = pagination.Window{Page: page.Page, PerPage: page.PerPage, TotalCount: result.TotalCount}
	}

	return &ListPage{Patients: result.Patients, Window: window.Clamped()}, nil
}

// FetchPage adapts the service to the list view engine.
func (s *Service) FetchPage(ctx context.Context, q listview.Query) (listview.Result[models.Patient], error) {
	result, err := s.repo.List(ctx, q.Pagination, q.Search)
	if err != nil {
		return listview.Result[models.Patient]{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list patients")
	}
	return listview.Result[models.Patient]{Rows: result.Patients, TotalCount: result.TotalCount}, nil
}

// Autocomplete returns up to five suggestions for a typed prefix. A blank
// term yields no suggestions rather than the whole table.
func (s *Service) Autocomplete(ctx context.Context, term string) ([]models.Patient, error) {
	if strings.TrimSpace(term) == "" {
		return []models.Patient{}, nil
	}
	rows, err := s.repo.Autocomplete(ctx, term)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "patient autocomplete")
	}
	return rows, nil
}

// Find loads one patient by id.
func (s *Service) Find(ctx context.Context, id int64) (*models.Patient, error) {
	patient, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "patient not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load patient")
	}
	return patient, nil
}

// Create registers a new patient.
func (s *Service) Create(ctx context.Context, input CreateInput) (*models.Patient, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "patient name required")
	}

	patient := &models.Patient{
		Name:        name,
		Phone:       strings.TrimSpace(input.Phone),
		Email:       strings.TrimSpace(input.Email),
		BornDate:    input.BornDate,
		Responsible: strings.TrimSpace(input.Responsible),
	}
	created, err := s.repo.Create(ctx, patient)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create patient")
	}
	return created, nil
}
