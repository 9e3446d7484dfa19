package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/atelieamado/backoffice-api/api/responses"
	"github.com/atelieamado/backoffice-api/api/validators"
	"github.com/atelieamado/backoffice-api/internal/patients"
	"github.com/atelieamado/backoffice-api/pkg/db/models"
	pkgerrors "github.com/atelieamado/backoffice-api/pkg/errors"
	"github.com/atelieamado/backoffice-api/pkg/logger"
	"github.com/atelieamado/backoffice-api/pkg/pagination"
)

// PatientsService is the slice of the patient service the controllers use.
type PatientsService interface {
	List(ctx context.Context, page pagination.Params, query string) (*patients.ListPage, error)
	Autocomplete(ctx context.Context, term string) ([]models.Patient, error)
	Find(ctx context.Context, id int64) (*models.Patient, error)
	Create(ctx context.Context, input patients.CreateInput) (*models.Patient, error)
}

// ListPatients serves the paginated, searchable patient list.
func ListPatients(svc PatientsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := parsePageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		query := validators.SanitizeSearch(r.URL.Query().Get("q"), 120)
		list, err := svc.List(r.Context(), page, query)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// PatientAutocomplete serves up to five name suggestions for the dropdown.
func PatientAutocomplete(svc PatientsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		term := validators.SanitizeSearch(r.URL.Query().Get("q"), 120)
		rows, err := svc.Autocomplete(r.Context(), term)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"patients": rows})
	}
}

// PatientDetail serves a single patient record.
func PatientDetail(svc PatientsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "patientId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		patient, err := svc.Find(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, patient)
	}
}

type createPatientBody struct {
	Name        string  `json:"name" validate:"required,min=2,max=120"`
	Phone       string  `json:"phone" validate:"omitempty,max=32"`
	Email       string  `json:"email" validate:"omitempty,email"`
	BornDate    *string `json:"born_date" validate:"omitempty"`
	Responsible string  `json:"responsible" validate:"omitempty,max=120"`
}

// CreatePatient registers a new patient.
func CreatePatient(svc PatientsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body createPatientBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := patients.CreateInput{
			Name:        body.Name,
			Phone:       body.Phone,
			Email:       body.Email,
			Responsible: body.Responsible,
		}
		if body.BornDate != nil && *body.BornDate != "" {
			born, err := time.Parse("2006-01-02", *body.BornDate)
			if err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeValidation, err, "born_date must be YYYY-MM-DD"))
				return
			}
			input.BornDate = &born
		}

		created, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}
