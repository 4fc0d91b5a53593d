package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"umrah-storefront/internal/cache"
	"umrah-storefront/internal/domain"
)

const maxPageSize = 100

type productSource interface {
	ListProducts(ctx context.Context, first int, after string) (*domain.ProductPage, error)
	ProductByHandle(ctx context.Context, handle string) (*domain.ProductDetail, error)
}

// Service serves catalog reads through a read-through cache.
type Service struct {
	source productSource
	cache  cache.Cache
	ttl    time.Duration
	logger *zap.Logger
}

func New(source productSource, c cache.Cache, ttl time.Duration, logger *zap.Logger) *Service {
	if c == nil {
		c = cache.Noop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{source: source, cache: c, ttl: ttl, logger: logger.Named("catalog_service")}
}

func (s *Service) List(ctx context.Context, first int, after string) (*domain.ProductPage, error) {
	if first <= 0 {
		first = 20
	}
	if first > maxPageSize {
		first = maxPageSize
	}
	key := fmt.Sprintf("products:%d:%s", first, after)

	var page domain.ProductPage
	if s.lookup(ctx, key, &page) {
		return &page, nil
	}
	fetched, err := s.source.ListProducts(ctx, first, after)
	if err != nil {
		return nil, err
	}
	s.store(ctx, key, fetched)
	return fetched, nil
}

func (s *Service) Get(ctx context.Context, handle string) (*domain.ProductDetail, error) {
	handle = strings.ToLower(strings.TrimSpace(handle))
	if handle == "" {
		return nil, domain.ErrNotFound
	}
	key := "product:" + handle

	var detail domain.ProductDetail
	if s.lookup(ctx, key, &detail) {
		return &detail, nil
	}
	fetched, err := s.source.ProductByHandle(ctx, handle)
	if err != nil {
		return nil, err
	}
	s.store(ctx, key, fetched)
	return fetched, nil
}

// cache errors degrade to a miss; the platform stays the source of truth.
func (s *Service) lookup(ctx context.Context, key string, dst any) bool {
	hit, err := s.cache.Get(ctx, key, dst)
	if err != nil {
		s.logger.Warn("catalog cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return hit
}

func (s *Service) store(ctx context.Context, key string, v any) {
	if err := s.cache.Set(ctx, key, v, s.ttl); err != nil {
		s.logger.Warn("catalog cache write failed", zap.String("key", key), zap.Error(err))
	}
}
