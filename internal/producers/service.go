package producers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/multierr"

	"github.com/atelieamado/backoffice-api/internal/listview"
	pkgerrors "github.com/atelieamado/backoffice-api/pkg/errors"
	"github.com/atelieamado/backoffice-api/pkg/logger"
	"github.com/atelieamado/backoffice-api/pkg/pagination"
	"github.com/atelieamado/backoffice-api/pkg/redis"
	"github.com/atelieamado/backoffice-api/pkg/storage/assets"
)

// Store exposes the persistence surface the service depends on.
type Store interface {
	DistinctProducers(ctx context.Context) ([]string, error)
	ListImages(ctx context.Context, producer string, page pagination.Params) (*ListResult, error)
}

// Cache is the slice of the redis client the service uses. The distinct
// producer lookup is a full-table scan upstream, so its result is cached.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	CacheKey(scope string, parts ...string) string
}

// GalleryImage is one stamp image with its public URL resolved.
type GalleryImage struct {
	ID       int64  `json:"id"`
	Producer string `json:"produtora"`
	Name     string `json:"imagem_nome"`
	URL      string `json:"url,omitempty"`
}

// GalleryPage is one resolved page of a producer's images plus its window.
type GalleryPage struct {
	Producer string            `json:"produtora"`
	Images   []GalleryImage    `json:"images"`
	Window   pagination.Window `json:"window"`
}

// Service lists producers and their stamp image galleries.
type Service struct {
	repo     Store
	cache    Cache
	resolver assets.Resolver
	logg     *logger.Logger
	cacheTTL time.Duration
	perPage  int
}

// NewService builds the producer service. cache may be nil, in which case
// every producer lookup hits the store.
func NewService(repo Store, cache Cache, resolver assets.Resolver, logg *logger.Logger, cacheTTL time.Duration, perPage int) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("producers store required")
	}
	if perPage <= 0 {
		perPage = pagination.DefaultPerPage
	}
	return &Service{
		repo:     repo,
		cache:    cache,
		resolver: resolver,
		logg:     logg,
		cacheTTL: cacheTTL,
		perPage:  perPage,
	}, nil
}

// Producers returns the distinct producer names, serving from cache when
// possible. Cache failures are collected and logged but never surface: the
// store remains the source of truth.
func (s *Service) Producers(ctx context.Context) ([]string, error) {
	var cacheErrs error

	if s.cache != nil {
		key := s.cache.CacheKey("producers")
		raw, err := s.cache.Get(ctx, key)
		switch {
		case err == nil:
			var names []string
			jsonErr := json.Unmarshal([]byte(raw), &names)
			if jsonErr == nil {
				return names, nil
			}
			cacheErrs = multierr.Append(cacheErrs, jsonErr)
		case !errors.Is(err, redis.Nil):
			cacheErrs = multierr.Append(cacheErrs, err)
		}
	}

	names, err := s.repo.DistinctProducers(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list producers")
	}

	if s.cache != nil {
		if payload, jsonErr := json.Marshal(names); jsonErr == nil {
			if setErr := s.cache.Set(ctx, s.cache.CacheKey("producers"), payload, s.cacheTTL); setErr != nil {
				cacheErrs = multierr.Append(cacheErrs, setErr)
			}
		}
	}

	if cacheErrs != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", cacheErrs.Error()), "producers cache degraded")
	}
	return names, nil
}

// Gallery returns one page of a producer's stamp images with URLs resolved.
// Pages past the bound are clamped. An unknown producer yields an empty
// gallery.
func (s *Service) Gallery(ctx context.Context, producer string, page pagination.Params) (*GalleryPage, error) {
	if producer == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "producer name required")
	}
	if page.PerPage <= 0 {
		page.PerPage = s.perPage
	}
	page = page.Normalize()

	result, err := s.repo.ListImages(ctx, producer, page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list producer images")
	}

	window := pagination.Window{Page: page.Page, PerPage: page.PerPage, TotalCount: result.TotalCount}
	if window.OutOfRange() {
		page.Page = window.Clamped().Page
		result, err = s.repo.ListImages(ctx, producer, page)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list producer images")
		}
		window = pagination.Window{Page: page.Page, PerPage: page.PerPage, TotalCount: result.TotalCount}
	}

	images := make([]GalleryImage, 0, len(result.Images))
	for _, img := range result.Images {
		images = append(images, GalleryImage{
			ID:       img.ID,
			Producer: img.Producer,
			Name:     img.ImageName,
			URL:      s.resolver.PrintURL(img.ImageName),
		})
	}
	return &GalleryPage{Producer: producer, Images: images, Window: window.Clamped()}, nil
}

// GalleryFetcher adapts one producer's gallery to the list view engine.
func (s *Service) GalleryFetcher(producer string) listview.Fetcher[GalleryImage] {
	return listview.FetcherFunc[GalleryImage](func(ctx context.Context, q listview.Query) (listview.Result[GalleryImage], error) {
		result, err := s.repo.ListImages(ctx, producer, q.Pagination)
		if err != nil {
			return listview.Result[GalleryImage]{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list producer images")
		}
		images := make([]GalleryImage, 0, len(result.Images))
		for _, img := range result.Images {
			images = append(images, GalleryImage{
				ID:       img.ID,
				Producer: img.Producer,
				Name:     img.ImageName,
				URL:      s.resolver.PrintURL(img.ImageName),
			})
		}
		return listview.Result[GalleryImage]{Rows: images, TotalCount: result.TotalCount}, nil
	})
}
