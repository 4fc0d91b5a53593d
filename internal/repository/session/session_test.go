package session

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"umrah-storefront/internal/domain"
	"umrah-storefront/internal/migrate"
)

func TestMemory_SaveBumpsVersion(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory()

	s, err := repo.Create(ctx, "USD")
	require.NoError(t, err)
	assert.Equal(t, int64(1), s.Version)

	s.Items = []domain.CartItem{{VariantID: "gid://v/1", Quantity: 2, Price: decimal.NewFromInt(10)}}
	require.NoError(t, repo.Save(ctx, s))
	assert.Equal(t, int64(2), s.Version)

	fetched, err := repo.Get(ctx, s.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Items, 1)
	assert.Equal(t, 2, fetched.Items[0].Quantity)
}

func TestMemory_StaleVersionConflicts(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory()

	s, err := repo.Create(ctx, "SAR")
	require.NoError(t, err)

	a, err := repo.Get(ctx, s.ID)
	require.NoError(t, err)
	b, err := repo.Get(ctx, s.ID)
	require.NoError(t, err)

	require.NoError(t, repo.Save(ctx, a))
	assert.ErrorIs(t, repo.Save(ctx, b), domain.ErrVersionConflict)
}

func TestMemory_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory()

	s, err := repo.Create(ctx, "USD")
	require.NoError(t, err)
	s.Items = []domain.CartItem{{VariantID: "v1", Quantity: 1}}
	require.NoError(t, repo.Save(ctx, s))

	s.Items[0].Quantity = 99
	fetched, err := repo.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, fetched.Items[0].Quantity)
}

func TestMemory_UnknownSession(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory()

	_, err := repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, repo.Save(ctx, &domain.Session{ID: "missing", Version: 1}), domain.ErrNotFound)
}

func TestPostgres_CreateSaveGet(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	_, err := migrate.Apply(ctx, pool)
	require.NoError(t, err, "apply migrations")
	_, err = pool.Exec(ctx, `TRUNCATE sessions`)
	require.NoError(t, err)

	repo := NewPostgres(pool, nil)
	created, err := repo.Create(ctx, "MYR")
	require.NoError(t, err)
	assert.Equal(t, "MYR", created.Currency)
	assert.Empty(t, created.Items)

	created.Items = []domain.CartItem{{
		VariantID:        "gid://shopify/ProductVariant/1",
		Quantity:         2,
		Title:            "Desert Safari",
		Price:            decimal.RequireFromString("45.00"),
		CustomAttributes: &domain.CustomAttributes{Date: "2026-03-01", Adults: "2", TotalGuests: "2"},
	}}
	created.RemoteCart = &domain.RemoteCart{ID: "gid://shopify/Cart/abc", CheckoutURL: "https://shop.example/checkout"}
	require.NoError(t, repo.Save(ctx, created))
	assert.Equal(t, int64(2), created.Version)

	fetched, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Items, 1)
	assert.Equal(t, "2026-03-01", fetched.Items[0].Date())
	assert.True(t, fetched.Items[0].Price.Equal(decimal.RequireFromString("45")))
	require.NotNil(t, fetched.RemoteCart)
	assert.Equal(t, "gid://shopify/Cart/abc", fetched.RemoteCart.ID)

	stale := *fetched
	stale.Version = 1
	assert.ErrorIs(t, repo.Save(ctx, &stale), domain.ErrVersionConflict)

	_, err = repo.Get(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func testPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err, "connect db")
	return pool
}
