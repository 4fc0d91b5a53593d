package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"umrah-storefront/internal/domain"
	sessionrepo "umrah-storefront/internal/repository/session"
)

func TestIssue_UsesDefaultCurrency(t *testing.T) {
	svc := New(sessionrepo.NewMemory(), "sar", nil)

	sess, err := svc.Issue(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, "SAR", sess.Currency)
}

func TestGet_EmptyID(t *testing.T) {
	svc := New(sessionrepo.NewMemory(), "", nil)

	_, err := svc.Get(context.Background(), " ")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate_FailedCallbackPersistsNothing(t *testing.T) {
	ctx := context.Background()
	svc := New(sessionrepo.NewMemory(), "USD", nil)
	sess, err := svc.Issue(ctx)
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = svc.Update(ctx, sess.ID, func(s *domain.Session) error {
		s.Items = []domain.CartItem{{VariantID: "v1", Quantity: 1}}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	fetched, err := svc.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Empty(t, fetched.Items)
	assert.Equal(t, sess.Version, fetched.Version)
}

func TestUpdate_SkipSave(t *testing.T) {
	ctx := context.Background()
	svc := New(sessionrepo.NewMemory(), "USD", nil)
	sess, err := svc.Issue(ctx)
	require.NoError(t, err)

	got, err := svc.SetCurrency(ctx, sess.ID, "usd")
	require.NoError(t, err)
	assert.Equal(t, sess.Version, got.Version)

	got, err = svc.SetCurrency(ctx, sess.ID, "myr")
	require.NoError(t, err)
	assert.Equal(t, "MYR", got.Currency)
	assert.Equal(t, sess.Version+1, got.Version)
}

func TestUpdate_SerializesConcurrentWriters(t *testing.T) {
	ctx := context.Background()
	svc := New(sessionrepo.NewMemory(), "USD", nil)
	sess, err := svc.Issue(ctx)
	require.NoError(t, err)

	const writers = 20
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Update(ctx, sess.ID, func(s *domain.Session) error {
				s.Items = append(s.Items, domain.CartItem{VariantID: "v", Quantity: 1})
				return nil
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	fetched, err := svc.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Len(t, fetched.Items, writers)
	assert.Equal(t, 0, svc.locks.size())
}

func TestUpdate_LockWaitHonoursContext(t *testing.T) {
	ctx := context.Background()
	svc := New(sessionrepo.NewMemory(), "USD", nil)
	sess, err := svc.Issue(ctx)
	require.NoError(t, err)

	entered := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		_, err := svc.Update(ctx, sess.ID, func(s *domain.Session) error {
			close(entered)
			<-release
			return ErrSkipSave
		})
		done <- err
	}()
	<-entered

	waitCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	called := false
	_, err = svc.Update(waitCtx, sess.ID, func(s *domain.Session) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, called)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, 0, svc.locks.size())

	_, err = svc.Update(ctx, sess.ID, func(s *domain.Session) error { return ErrSkipSave })
	require.NoError(t, err)
}

func TestKeyedMutex_CancelledWaiterReleasesKey(t *testing.T) {
	k := newKeyedMutex()
	unlock, err := k.Lock(context.Background(), "a")
	require.NoError(t, err)

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = k.Lock(cancelled, "a")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, k.size())

	unlock()
	assert.Equal(t, 0, k.size())
}
