package session

import (
	"context"

	"umrah-storefront/internal/domain"
)

// Repository persists sessions. Save is a compare-and-swap on Session.Version: it fails
// with domain.ErrVersionConflict when the stored version moved on, and bumps the version
// of the passed session on success.
type Repository interface {
	Create(ctx context.Context, currency string) (*domain.Session, error)
	Get(ctx context.Context, id string) (*domain.Session, error)
	Save(ctx context.Context, s *domain.Session) error
}
