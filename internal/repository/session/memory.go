package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"umrah-storefront/internal/domain"
)

// Memory keeps sessions in process memory. Used by tests and DB-less runs.
type Memory struct {
	mu       sync.Mutex
	sessions map[string]domain.Session
	now      func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		sessions: make(map[string]domain.Session),
		now:      time.Now,
	}
}

func (m *Memory) Create(_ context.Context, currency string) (*domain.Session, error) {
	now := m.now().UTC()
	s := domain.Session{
		ID:        uuid.NewString(),
		Currency:  currency,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return clone(s)
}

func (m *Memory) Get(_ context.Context, id string) (*domain.Session, error) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	m.mu.Unlock()
	if !ok {
		return nil, domain.ErrNotFound
	}
	return clone(s)
}

func (m *Memory) Save(_ context.Context, s *domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.sessions[s.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if stored.Version != s.Version {
		return domain.ErrVersionConflict
	}
	s.Version++
	s.UpdatedAt = m.now().UTC()
	cp, err := clone(*s)
	if err != nil {
		return err
	}
	m.sessions[s.ID] = *cp
	return nil
}

// clone deep-copies through JSON, the same path the Postgres columns take.
func clone(s domain.Session) (*domain.Session, error) {
	items, err := json.Marshal(s.Items)
	if err != nil {
		return nil, err
	}
	out := s
	out.Items = nil
	if err := json.Unmarshal(items, &out.Items); err != nil {
		return nil, err
	}
	if s.RemoteCart != nil {
		rc := *s.RemoteCart
		rc.Lines = append([]domain.RemoteCartLine(nil), s.RemoteCart.Lines...)
		out.RemoteCart = &rc
	}
	if s.Customer != nil {
		c := *s.Customer
		out.Customer = &c
	}
	return &out, nil
}
