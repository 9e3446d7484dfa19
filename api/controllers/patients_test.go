package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/atelieamado/backoffice-api/internal/patients"
	"github.com/atelieamado/backoffice-api/pkg/db/models"
	"github.com/atelieamado/backoffice-api/pkg/pagination"
)

type stubPatientsService struct {
	list         func(ctx context.Context, page pagination.Params, query string) (*patients.ListPage, error)
	autocomplete func(ctx context.Context, term string) ([]models.Patient, error)
	find         func(ctx context.Context, id int64) (*models.Patient, error)
	create       func(ctx context.Context, input patients.CreateInput) (*models.Patient, error)
}

func (s *stubPatientsService) List(ctx context.Context, page pagination.Params, query string) (*patients.ListPage, error) {
	return s.list(ctx, page, query)
}

func (s *stubPatientsService) Autocomplete(ctx context.Context, term string) ([]models.Patient, error) {
	return s.autocomplete(ctx, term)
}

func (s *stubPatientsService) Find(ctx context.Context, id int64) (*models.Patient, error) {
	return s.find(ctx, id)
}

func (s *stubPatientsService) Create(ctx context.Context, input patients.CreateInput) (*models.Patient, error) {
	return s.create(ctx, input)
}

func TestCreatePatientCreated(t *testing.T) {
	svc := &stubPatientsService{
		create: func(_ context.Context, input patients.CreateInput) (*models.Patient, error) {
			return &models.Patient{ID: 1, Name: input.Name}, nil
		},
	}

	r := httptest.NewRequest(http.MethodPost, "/api/v1/patients",
		strings.NewReader(`{"name": "Joana", "email": "joana@example.com", "born_date": "1990-04-12"}`))
	w := httptest.NewRecorder()
	CreatePatient(svc, nil)(w, r)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 but got %d", w.Code)
	}
}

func TestCreatePatientRejectsBadBornDate(t *testing.T) {
	svc := &stubPatientsService{
		create: func(context.Context, patients.CreateInput) (*models.Patient, error) {
			t.Fatal("service must not be called for a malformed date")
			return nil, nil
		},
	}

	r := httptest.NewRequest(http.MethodPost, "/api/v1/patients",
		strings.NewReader(`{"name": "Joana", "born_date": "12/04/1990"}`))
	w := httptest.NewRecorder()
	CreatePatient(svc, nil)(w, r)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 but got %d", w.Code)
	}
}

func TestCreatePatientRequiresName(t *testing.T) {
	svc := &stubPatientsService{
		create: func(context.Context, patients.CreateInput) (*models.Patient, error) {
			t.Fatal("service must not be called without a name")
			return nil, nil
		},
	}

	r := httptest.NewRequest(http.MethodPost, "/api/v1/patients", strings.NewReader(`{"email": "a@b.com"}`))
	w := httptest.NewRecorder()
	CreatePatient(svc, nil)(w, r)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 but got %d", w.Code)
	}
}

func TestPatientAutocompletePassesTerm(t *testing.T) {
	var gotTerm string
	svc := &stubPatientsService{
		autocomplete: func(_ context.Context, term string) ([]models.Patient, error) {
			gotTerm = term
			return []models.Patient{{ID: 1, Name: "Maria"}}, nil
		},
	}

	r := httptest.NewRequest(http.MethodGet, "/api/v1/patients/autocomplete?q=mar", nil)
	w := httptest.NewRecorder()
	PatientAutocomplete(svc, nil)(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 but got %d", w.Code)
	}
	if gotTerm != "mar" {
		t.Fatalf("expected term mar, got %q", gotTerm)
	}
}
