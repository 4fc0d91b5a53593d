package session

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"umrah-storefront/internal/domain"
)

// ErrSkipSave may be returned by an Update callback to finish without writing.
var ErrSkipSave = errors.New("session unchanged")

type sessionRepo interface {
	Create(ctx context.Context, currency string) (*domain.Session, error)
	Get(ctx context.Context, id string) (*domain.Session, error)
	Save(ctx context.Context, s *domain.Session) error
}

type Service struct {
	repo            sessionRepo
	locks           *keyedMutex
	defaultCurrency string
	logger          *zap.Logger
}

func New(repo sessionRepo, defaultCurrency string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if strings.TrimSpace(defaultCurrency) == "" {
		defaultCurrency = "USD"
	}
	return &Service{
		repo:            repo,
		locks:           newKeyedMutex(),
		defaultCurrency: strings.ToUpper(defaultCurrency),
		logger:          logger.Named("session_service"),
	}
}

// Issue starts a new empty session in the default currency.
func (s *Service) Issue(ctx context.Context) (*domain.Session, error) {
	sess, err := s.repo.Create(ctx, s.defaultCurrency)
	if err != nil {
		return nil, err
	}
	s.logger.Info("session issued", zap.String("session_id", sess.ID))
	return sess, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Session, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

// Update runs fn against the latest copy of the session and persists the result.
// Calls for the same session are serialized within this process; writers in other
// processes are detected by the repository's version check. If fn fails nothing is saved.
// Waiting for the session lock ends with ctx.
func (s *Service) Update(ctx context.Context, id string, fn func(*domain.Session) error) (*domain.Session, error) {
	unlock, err := s.locks.Lock(ctx, id)
	if err != nil {
		return nil, err
	}
	defer unlock()

	sess, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(sess); err != nil {
		if errors.Is(err, ErrSkipSave) {
			return sess, nil
		}
		return nil, err
	}
	if err := s.repo.Save(ctx, sess); err != nil {
		if errors.Is(err, domain.ErrVersionConflict) {
			s.logger.Warn("concurrent session update rejected", zap.String("session_id", id))
		}
		return nil, err
	}
	return sess, nil
}

// SetCurrency stores the selected display currency. code must already be validated.
func (s *Service) SetCurrency(ctx context.Context, id, code string) (*domain.Session, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	return s.Update(ctx, id, func(sess *domain.Session) error {
		if sess.Currency == code {
			return ErrSkipSave
		}
		sess.Currency = code
		return nil
	})
}
