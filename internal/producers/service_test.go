package producers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelieamado/backoffice-api/pkg/config"
	pkgerrors "github.com/atelieamado/backoffice-api/pkg/errors"
	"github.com/atelieamado/backoffice-api/pkg/db/models"
	"github.com/atelieamado/backoffice-api/pkg/pagination"
	"github.com/atelieamado/backoffice-api/pkg/redis"
	"github.com/atelieamado/backoffice-api/pkg/storage/assets"
)

type stubStore struct {
	producers   []string
	images      map[string][]models.ProducerImage
	listCalls   int
	distinctErr error
}

func (s *stubStore) DistinctProducers(_ context.Context) ([]string, error) {
	s.listCalls++
	if s.distinctErr != nil {
		return nil, s.distinctErr
	}
	return s.producers, nil
}

func (s *stubStore) ListImages(_ context.Context, producer string, page pagination.Params) (*ListResult, error) {
	page = page.Normalize()
	all := s.images[producer]
	start, end := page.Range()
	if start >= len(all) {
		return &ListResult{Images: []models.ProducerImage{}, TotalCount: len(all)}, nil
	}
	if end >= len(all) {
		end = len(all) - 1
	}
	return &ListResult{Images: all[start : end+1], TotalCount: len(all)}, nil
}

type stubCache struct {
	values map[string]string
	getErr error
	setErr error
	sets   int
}

func newStubCache() *stubCache {
	return &stubCache{values: map[string]string{}}
}

func (c *stubCache) Get(_ context.Context, key string) (string, error) {
	if c.getErr != nil {
		return "", c.getErr
	}
	value, ok := c.values[key]
	if !ok {
		return "", redis.Nil
	}
	return value, nil
}

func (c *stubCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.sets++
	switch v := value.(type) {
	case []byte:
		c.values[key] = string(v)
	case string:
		c.values[key] = v
	}
	return nil
}

func (c *stubCache) CacheKey(scope string, parts ...string) string {
	key := "atelie:cache:" + scope
	for _, part := range parts {
		key += ":" + part
	}
	return key
}

func newTestService(t *testing.T, store *stubStore, cache Cache) *Service {
	t.Helper()
	resolver := assets.NewResolver(config.StorageConfig{
		PublicBaseURL: "https://cdn.example.com/storage/v1/object/public",
		Bucket:        "produtos",
	})
	svc, err := NewService(store, cache, resolver, nil, 5*time.Minute, 10)
	require.NoError(t, err)
	return svc
}

func TestServiceProducers_cachesDistinctLookup(t *testing.T) {
	store := &stubStore{producers: []string{"Arte Lua", "Estudio Sol"}}
	cache := newStubCache()
	svc := newTestService(t, store, cache)

	names, err := svc.Producers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Arte Lua", "Estudio Sol"}, names)
	assert.Equal(t, 1, store.listCalls)
	assert.Equal(t, 1, cache.sets)

	// second call is served from cache
	names, err = svc.Producers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Arte Lua", "Estudio Sol"}, names)
	assert.Equal(t, 1, store.listCalls)
}

func TestServiceProducers_cacheFailureFallsThrough(t *testing.T) {
	store := &stubStore{producers: []string{"Estudio Sol"}}
	cache := newStubCache()
	cache.getErr = errors.New("connection refused")
	cache.setErr = errors.New("connection refused")
	svc := newTestService(t, store, cache)

	names, err := svc.Producers(context.Background())
	require.NoError(t, err, "cache trouble must not fail the lookup")
	assert.Equal(t, []string{"Estudio Sol"}, names)
	assert.Equal(t, 1, store.listCalls)
}

func TestServiceProducers_storeFailure(t *testing.T) {
	store := &stubStore{distinctErr: errors.New("connection reset")}
	svc := newTestService(t, store, nil)

	_, err := svc.Producers(context.Background())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeDependency, pkgerrors.As(err).Code())
}

func TestServiceGallery_resolvesPrintURLs(t *testing.T) {
	store := &stubStore{images: map[string][]models.ProducerImage{
		"Estudio Sol": {
			{ID: 1, Producer: "Estudio Sol", ImageName: "sol.png"},
			{ID: 2, Producer: "Estudio Sol", ImageName: ""},
		},
	}}
	svc := newTestService(t, store, nil)

	gallery, err := svc.Gallery(context.Background(), "Estudio Sol", pagination.Params{Page: 1, PerPage: 10})
	require.NoError(t, err)
	require.Len(t, gallery.Images, 2)
	assert.Equal(t, "https://cdn.example.com/storage/v1/object/public/produtos/Imagens/Estampas/sol.png", gallery.Images[0].URL)
	assert.Empty(t, gallery.Images[1].URL, "blank fragment must not produce a dangling URL")
}

func TestServiceGallery_clampsPageBeyondBound(t *testing.T) {
	images := make([]models.ProducerImage, 0, 12)
	for i := 0; i < 12; i++ {
		images = append(images, models.ProducerImage{ID: int64(i + 1), Producer: "Estudio Sol", ImageName: "img.png"})
	}
	store := &stubStore{images: map[string][]models.ProducerImage{"Estudio Sol": images}}
	svc := newTestService(t, store, nil)

	gallery, err := svc.Gallery(context.Background(), "Estudio Sol", pagination.Params{Page: 7, PerPage: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, gallery.Window.Page)
	assert.Len(t, gallery.Images, 2)
}

func TestServiceGallery_requiresProducer(t *testing.T) {
	svc := newTestService(t, &stubStore{}, nil)

	_, err := svc.Gallery(context.Background(), "", pagination.Params{Page: 1, PerPage: 10})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}
