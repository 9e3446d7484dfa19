package controllers

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/atelieamado/backoffice-api/api/responses"
	"github.com/atelieamado/backoffice-api/internal/producers"
	pkgerrors "github.com/atelieamado/backoffice-api/pkg/errors"
	"github.com/atelieamado/backoffice-api/pkg/logger"
	"github.com/atelieamado/backoffice-api/pkg/pagination"
)

// ProducersService is the slice of the producer service the controllers use.
type ProducersService interface {
	Producers(ctx context.Context) ([]string, error)
	Gallery(ctx context.Context, producer string, page pagination.Params) (*producers.GalleryPage, error)
}

// ListProducers serves the distinct producer names.
func ListProducers(svc ProducersService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		names, err := svc.Producers(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"producers": names})
	}
}

// ProducerGallery serves one producer's paginated stamp images.
func ProducerGallery(svc ProducersService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimSpace(chi.URLParam(r, "producer"))
		producer, err := url.PathUnescape(raw)
		if err != nil || strings.TrimSpace(producer) == "" {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "producer name is required"))
			return
		}

		page, err := parsePageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		gallery, err := svc.Gallery(r.Context(), producer, page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, gallery)
	}
}
