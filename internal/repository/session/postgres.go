package session

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"umrah-storefront/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &postgresRepo{pool: pool, logger: logger.Named("session_repo")}
}

const sessionColumns = `id::text, items, remote_cart, cart_dirty, customer_token, customer_token_expires_at, customer, currency, version, created_at, updated_at`

func (r *postgresRepo) Create(ctx context.Context, currency string) (*domain.Session, error) {
	q := `
INSERT INTO sessions (currency)
VALUES ($1)
RETURNING ` + sessionColumns
	s, err := scanSession(r.pool.QueryRow(ctx, q, currency))
	if err != nil {
		r.logger.Error("create session", zap.Error(err))
		return nil, err
	}
	r.logger.Debug("created session", zap.String("session_id", s.ID))
	return s, nil
}

func (r *postgresRepo) Get(ctx context.Context, id string) (*domain.Session, error) {
	q := `
SELECT ` + sessionColumns + `
FROM sessions
WHERE id = $1
`
	s, err := scanSession(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidUUID(err) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("get session", zap.String("session_id", id), zap.Error(err))
		return nil, err
	}
	return s, nil
}

func (r *postgresRepo) Save(ctx context.Context, s *domain.Session) error {
	const q = `
UPDATE sessions
SET items = $3,
    remote_cart = $4,
    cart_dirty = $5,
    customer_token = $6,
    customer_token_expires_at = $7,
    customer = $8,
    currency = $9,
    version = version + 1,
    updated_at = NOW()
WHERE id = $1 AND version = $2
RETURNING version, updated_at
`
	items := s.Items
	if items == nil {
		items = []domain.CartItem{}
	}
	var (
		version   int64
		updatedAt time.Time
	)
	err := r.pool.QueryRow(ctx, q,
		s.ID,
		s.Version,
		items,
		s.RemoteCart,
		s.CartDirty,
		s.CustomerToken,
		s.CustomerTokenExpiresAt,
		s.Customer,
		s.Currency,
	).Scan(&version, &updatedAt)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			r.logger.Error("save session", zap.String("session_id", s.ID), zap.Error(err))
			return err
		}
		var exists bool
		if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM sessions WHERE id = $1)`, s.ID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return domain.ErrNotFound
		}
		r.logger.Warn("session version conflict", zap.String("session_id", s.ID), zap.Int64("version", s.Version))
		return domain.ErrVersionConflict
	}
	s.Version = version
	s.UpdatedAt = updatedAt
	return nil
}

func scanSession(row pgx.Row) (*domain.Session, error) {
	var s domain.Session
	if err := row.Scan(
		&s.ID,
		&s.Items,
		&s.RemoteCart,
		&s.CartDirty,
		&s.CustomerToken,
		&s.CustomerTokenExpiresAt,
		&s.Customer,
		&s.Currency,
		&s.Version,
		&s.CreatedAt,
		&s.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &s, nil
}

// isInvalidUUID reports a malformed session id (invalid_text_representation).
func isInvalidUUID(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22P02"
}
