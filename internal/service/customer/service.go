package customer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"umrah-storefront/internal/commerce"
	"umrah-storefront/internal/domain"
	sessionsvc "umrah-storefront/internal/service/session"
)

var (
	// ErrInvalidCredentials is returned when email/password do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type platform interface {
	CreateAccessToken(ctx context.Context, email, password string) (*domain.AccessToken, error)
	DeleteAccessToken(ctx context.Context, token string) error
	CreateCustomer(ctx context.Context, in commerce.CustomerInput) (*domain.Customer, error)
	Customer(ctx context.Context, token string) (*domain.Customer, error)
	CustomerOrders(ctx context.Context, token string, first int) ([]domain.Order, error)
}

type sessionStore interface {
	Get(ctx context.Context, id string) (*domain.Session, error)
	Update(ctx context.Context, id string, fn func(*domain.Session) error) (*domain.Session, error)
}

// Service handles customer signup/login flows against the commerce platform and keeps
// the resulting access token in the session.
type Service struct {
	platform    platform
	sessions    sessionStore
	passwordMin int
	ordersPage  int
	now         func() time.Time
	logger      *zap.Logger
}

func New(p platform, sessions sessionStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		platform:    p,
		sessions:    sessions,
		passwordMin: 8,
		ordersPage:  20,
		now:         time.Now,
		logger:      logger.Named("customer_service"),
	}
}

// RegisterInput captures fields expected by the register endpoint.
type RegisterInput struct {
	Email            string `json:"email"`
	Password         string `json:"password"`
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	Phone            string `json:"phone"`
	AcceptsMarketing bool   `json:"acceptsMarketing"`
}

// Login exchanges credentials for an access token and binds it to the session.
func (s *Service) Login(ctx context.Context, sessionID, email, password string) (*domain.Customer, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	password = strings.TrimSpace(password)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password required", domain.ErrInvalidInput)
	}

	token, err := s.platform.CreateAccessToken(ctx, email, password)
	if err != nil {
		var userErr *commerce.UserError
		if errors.As(err, &userErr) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	profile, err := s.platform.Customer(ctx, token.Token)
	if err != nil {
		return nil, fmt.Errorf("load customer: %w", err)
	}

	_, err = s.sessions.Update(ctx, sessionID, func(sess *domain.Session) error {
		sess.CustomerToken = token.Token
		if !token.ExpiresAt.IsZero() {
			exp := token.ExpiresAt
			sess.CustomerTokenExpiresAt = &exp
		} else {
			sess.CustomerTokenExpiresAt = nil
		}
		sess.Customer = profile
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("customer logged in", zap.String("session_id", sessionID), zap.String("customer_id", profile.ID))
	return profile, nil
}

// Register creates the account and logs it in.
func (s *Service) Register(ctx context.Context, sessionID string, in RegisterInput) (*domain.Customer, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" {
		return nil, fmt.Errorf("%w: email required", domain.ErrInvalidInput)
	}
	password := strings.TrimSpace(in.Password)
	if err := validatePassword(password, s.passwordMin); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	_, err := s.platform.CreateCustomer(ctx, commerce.CustomerInput{
		Email:            email,
		Password:         password,
		FirstName:        strings.TrimSpace(in.FirstName),
		LastName:         strings.TrimSpace(in.LastName),
		Phone:            strings.TrimSpace(in.Phone),
		AcceptsMarketing: in.AcceptsMarketing,
	})
	if err != nil {
		var userErr *commerce.UserError
		if errors.As(err, &userErr) && userErr.Code == "TAKEN" {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}
	return s.Login(ctx, sessionID, email, password)
}

// Logout always clears the session's token; revoking it remotely is best effort.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	var token string
	_, err := s.sessions.Update(ctx, sessionID, func(sess *domain.Session) error {
		token = sess.CustomerToken
		if token == "" && sess.Customer == nil {
			return sessionsvc.ErrSkipSave
		}
		sess.ClearCustomer()
		return nil
	})
	if err != nil {
		return err
	}
	if token != "" {
		if err := s.platform.DeleteAccessToken(ctx, token); err != nil {
			s.logger.Warn("revoke customer token", zap.String("session_id", sessionID), zap.Error(err))
		}
	}
	return nil
}

// Profile reloads the customer behind the session's token.
func (s *Service) Profile(ctx context.Context, sessionID string) (*domain.Customer, error) {
	token, err := s.token(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	profile, err := s.platform.Customer(ctx, token)
	if err != nil {
		return nil, s.handleTokenError(ctx, sessionID, err)
	}
	_, err = s.sessions.Update(ctx, sessionID, func(sess *domain.Session) error {
		if sess.CustomerToken != token {
			return sessionsvc.ErrSkipSave
		}
		sess.Customer = profile
		return nil
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *Service) Orders(ctx context.Context, sessionID string) ([]domain.Order, error) {
	token, err := s.token(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	orders, err := s.platform.CustomerOrders(ctx, token, s.ordersPage)
	if err != nil {
		return nil, s.handleTokenError(ctx, sessionID, err)
	}
	return orders, nil
}

// Bookings lists the dated order lines, newest order first.
func (s *Service) Bookings(ctx context.Context, sessionID string) ([]domain.Booking, error) {
	orders, err := s.Orders(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return bookingsFrom(orders), nil
}

func bookingsFrom(orders []domain.Order) []domain.Booking {
	bookings := make([]domain.Booking, 0)
	for _, o := range orders {
		for _, l := range o.Lines {
			if l.CustomAttributes == nil || l.CustomAttributes.Date == "" {
				continue
			}
			bookings = append(bookings, domain.Booking{
				OrderID:     o.ID,
				OrderName:   o.Name,
				ProcessedAt: o.ProcessedAt,
				Title:       l.Title,
				Quantity:    l.Quantity,
				Attributes:  *l.CustomAttributes,
			})
		}
	}
	return bookings
}

func (s *Service) token(ctx context.Context, sessionID string) (string, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if !sess.LoggedIn(s.now()) {
		return "", domain.ErrUnauthenticated
	}
	return sess.CustomerToken, nil
}

// handleTokenError logs the session out when the platform no longer knows the token.
func (s *Service) handleTokenError(ctx context.Context, sessionID string, err error) error {
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	if _, clearErr := s.sessions.Update(ctx, sessionID, func(sess *domain.Session) error {
		sess.ClearCustomer()
		return nil
	}); clearErr != nil {
		s.logger.Warn("clear revoked token", zap.String("session_id", sessionID), zap.Error(clearErr))
	}
	return domain.ErrUnauthenticated
}

func validatePassword(p string, min int) error {
	if len(p) < min {
		return fmt.Errorf("password must be at least %d characters", min)
	}
	hasUpper := false
	hasLower := false
	hasDigit := false
	for _, r := range p {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return errors.New("password must contain at least 1 uppercase letter, 1 lowercase letter, and 1 number")
	}
	return nil
}
