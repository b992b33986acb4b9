package catalog

import (
	"context"
	"time"

	"plugevents/internal/shared/constants"
	"plugevents/pkg/cache"
)

type Service interface {
	SetCacheService(cacheService cache.Service)
	ListEvents(ctx context.Context, query ListQuery) ([]ListedEvent, error)
	GetFeaturedEvents(ctx context.Context, limit int) ([]Event, error)
	GetEvent(ctx context.Context, id string) (*EventDetail, error)
	GetRelatedEvents(ctx context.Context, id string, limit int) ([]Event, error)
	GetCategories(ctx context.Context) ([]string, error)
}

type service struct {
	catalog      *Catalog
	now          func() time.Time
	cacheService cache.Service
}

func NewService(catalog *Catalog, now func() time.Time) Service {
	if now == nil {
		now = time.Now
	}
	return &service{
		catalog: catalog,
		now:     now,
	}
}

// SetCacheService injects the cache service dependency
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

// cached runs fetch through the cache when one is configured.
func (s *service) cached(ctx context.Context, key string, ttl time.Duration, dest interface{}, fetch func() interface{}) error {
	if s.cacheService == nil {
		return assign(fetch(), dest)
	}
	return s.cacheService.GetOrSet(ctx, key, ttl, func() (interface{}, error) {
		return fetch(), nil
	}, dest)
}

func (s *service) ListEvents(ctx context.Context, query ListQuery) ([]ListedEvent, error) {
	now := s.now()
	key := constants.BuildEventListKey(now.Format(DateLayout), query.Category)

	var listed []ListedEvent
	err := s.cached(ctx, key, constants.TTL_EVENT_LIST, &listed, func() interface{} {
		return s.catalog.ListByDate(now, query)
	})
	return listed, err
}

func (s *service) GetFeaturedEvents(ctx context.Context, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = DefaultFeaturedLimit
	}

	var featured []Event
	err := s.cached(ctx, constants.BuildFeaturedKey(limit), constants.TTL_EVENT_FEATURED, &featured, func() interface{} {
		return s.catalog.ListFeatured(limit)
	})
	return featured, err
}

func (s *service) GetEvent(ctx context.Context, id string) (*EventDetail, error) {
	event, err := s.catalog.FindByID(id)
	if err != nil {
		return nil, err
	}

	return &EventDetail{
		Event:   *event,
		IsPast:  event.IsPastAt(s.now()),
		Related: s.catalog.ListRelated(event, DefaultRelatedLimit),
	}, nil
}

func (s *service) GetRelatedEvents(ctx context.Context, id string, limit int) ([]Event, error) {
	event, err := s.catalog.FindByID(id)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}
	return s.catalog.ListRelated(event, limit), nil
}

func (s *service) GetCategories(ctx context.Context) ([]string, error) {
	var categories []string
	err := s.cached(ctx, constants.CACHE_KEY_EVENTS_CATEGORIES, constants.TTL_EVENT_CATEGORIES, &categories, func() interface{} {
		return s.catalog.Categories()
	})
	return categories, err
}

// assign copies src into dest for the uncached path, mirroring what a cache round trip yields.
func assign(src, dest interface{}) error {
	switch d := dest.(type) {
	case *[]ListedEvent:
		*d = src.([]ListedEvent)
	case *[]Event:
		*d = src.([]Event)
	case *[]string:
		*d = src.([]string)
	}
	return nil
}
