package cart

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"umrah-storefront/internal/domain"
	sessionsvc "umrah-storefront/internal/service/session"
)

// Service keeps the session's local cart and the commerce platform's cart in step.
type Service struct {
	remote   remoteCarts
	sessions sessionStore
	opts     Options
	logger   *zap.Logger
}

type remoteCarts interface {
	CreateCart(ctx context.Context, lines []domain.RemoteLineInput) (*domain.RemoteCart, error)
	UpdateCart(ctx context.Context, cartID string, lines []domain.RemoteLineInput) (*domain.RemoteCart, error)
}

type sessionStore interface {
	Get(ctx context.Context, id string) (*domain.Session, error)
	Update(ctx context.Context, id string, fn func(*domain.Session) error) (*domain.Session, error)
}

type Options struct {
	// SyncQuantityUpdates pushes quantity changes to the remote cart immediately.
	// When false they stay local and are reconciled at checkout.
	SyncQuantityUpdates bool
}

func New(remote remoteCarts, sessions sessionStore, opts Options, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{remote: remote, sessions: sessions, opts: opts, logger: logger.Named("cart_service")}
}

type AddInput struct {
	VariantID        string                   `json:"variantId"`
	Quantity         int                      `json:"quantity"`
	Title            string                   `json:"title"`
	Price            decimal.Decimal          `json:"price"`
	Image            string                   `json:"image,omitempty"`
	ProductID        string                   `json:"productId"`
	CustomAttributes *domain.CustomAttributes `json:"customAttributes,omitempty"`
}

// View is the cart as returned to callers.
type View struct {
	Items       []domain.CartItem  `json:"items"`
	RemoteCart  *domain.RemoteCart `json:"remoteCart"`
	Subtotal    decimal.Decimal    `json:"subtotal"`
	ItemCount   int                `json:"itemCount"`
	CheckoutURL string             `json:"checkoutUrl,omitempty"`
	Currency    string             `json:"currency"`
}

func viewOf(s *domain.Session) *View {
	v := &View{
		Items:      s.Items,
		RemoteCart: s.RemoteCart,
		Subtotal:   decimal.Zero,
		Currency:   s.Currency,
	}
	if v.Items == nil {
		v.Items = []domain.CartItem{}
	}
	for _, it := range s.Items {
		v.Subtotal = v.Subtotal.Add(it.Subtotal())
		v.ItemCount += it.Quantity
	}
	if s.RemoteCart != nil && !s.CartDirty {
		v.CheckoutURL = s.RemoteCart.CheckoutURL
	}
	return v
}

func (s *Service) Get(ctx context.Context, sessionID string) (*View, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return viewOf(sess), nil
}

// Add merges in into the cart and pushes the whole cart to the remote side.
func (s *Service) Add(ctx context.Context, sessionID string, in AddInput) (*View, error) {
	in.VariantID = strings.TrimSpace(in.VariantID)
	if in.VariantID == "" {
		return nil, fmt.Errorf("%w: variantId required", domain.ErrInvalidInput)
	}
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidInput)
	}
	if in.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price must not be negative", domain.ErrInvalidInput)
	}
	item := domain.CartItem{
		VariantID:        in.VariantID,
		Quantity:         in.Quantity,
		Title:            in.Title,
		Price:            in.Price,
		Image:            in.Image,
		ProductID:        in.ProductID,
		CustomAttributes: in.CustomAttributes,
	}

	sess, err := s.sessions.Update(ctx, sessionID, func(sess *domain.Session) error {
		return s.sync(ctx, sess, mergeItem(sess.Items, item))
	})
	if err != nil {
		return nil, err
	}
	return viewOf(sess), nil
}

// Remove drops every line of variantID. Removing the last line forgets the remote cart.
func (s *Service) Remove(ctx context.Context, sessionID, variantID string) (*View, error) {
	variantID = strings.TrimSpace(variantID)
	if variantID == "" {
		return nil, fmt.Errorf("%w: variantId required", domain.ErrInvalidInput)
	}
	sess, err := s.sessions.Update(ctx, sessionID, func(sess *domain.Session) error {
		return s.remove(ctx, sess, variantID)
	})
	if err != nil {
		return nil, err
	}
	return viewOf(sess), nil
}

func (s *Service) remove(ctx context.Context, sess *domain.Session, variantID string) error {
	items, removed := removeVariant(sess.Items, variantID)
	if !removed {
		return sessionsvc.ErrSkipSave
	}
	if len(items) == 0 {
		sess.ClearCart()
		return nil
	}
	return s.sync(ctx, sess, items)
}

// UpdateQuantity sets the quantity of variantID; qty <= 0 removes it.
func (s *Service) UpdateQuantity(ctx context.Context, sessionID, variantID string, qty int) (*View, error) {
	variantID = strings.TrimSpace(variantID)
	if variantID == "" {
		return nil, fmt.Errorf("%w: variantId required", domain.ErrInvalidInput)
	}
	sess, err := s.sessions.Update(ctx, sessionID, func(sess *domain.Session) error {
		if qty <= 0 {
			return s.remove(ctx, sess, variantID)
		}
		items, found := setQuantity(sess.Items, variantID, qty)
		if !found {
			return sessionsvc.ErrSkipSave
		}
		if s.opts.SyncQuantityUpdates {
			return s.sync(ctx, sess, items)
		}
		sess.Items = items
		sess.CartDirty = sess.RemoteCart != nil
		return nil
	})
	if err != nil {
		return nil, err
	}
	return viewOf(sess), nil
}

// Clear empties the cart and forgets the remote cart.
func (s *Service) Clear(ctx context.Context, sessionID string) (*View, error) {
	sess, err := s.sessions.Update(ctx, sessionID, func(sess *domain.Session) error {
		sess.ClearCart()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return viewOf(sess), nil
}

// Checkout returns the remote checkout URL, pushing the local cart first when the
// remote side is missing or behind.
func (s *Service) Checkout(ctx context.Context, sessionID string) (string, error) {
	sess, err := s.sessions.Update(ctx, sessionID, func(sess *domain.Session) error {
		if len(sess.Items) == 0 {
			return domain.ErrEmptyCart
		}
		if sess.RemoteCart != nil && !sess.CartDirty && sess.RemoteCart.CheckoutURL != "" {
			return sessionsvc.ErrSkipSave
		}
		return s.sync(ctx, sess, sess.Items)
	})
	if err != nil {
		return "", err
	}
	if sess.RemoteCart == nil || sess.RemoteCart.CheckoutURL == "" {
		return "", fmt.Errorf("remote cart has no checkout url")
	}
	return sess.RemoteCart.CheckoutURL, nil
}

// sync replaces the remote cart's lines with items. A rejected update is treated as an
// expired cart and answered with exactly one fresh creation. sess is only touched on success.
func (s *Service) sync(ctx context.Context, sess *domain.Session, items []domain.CartItem) error {
	lines := remoteLines(items)

	var remote *domain.RemoteCart
	if sess.RemoteCart != nil && sess.RemoteCart.ID != "" {
		updated, err := s.remote.UpdateCart(ctx, sess.RemoteCart.ID, lines)
		if err != nil {
			s.logger.Warn("remote cart update failed, creating a new cart",
				zap.String("session_id", sess.ID),
				zap.String("cart_id", sess.RemoteCart.ID),
				zap.Error(err),
			)
		} else {
			remote = updated
		}
	}
	if remote == nil {
		created, err := s.remote.CreateCart(ctx, lines)
		if err != nil {
			s.logger.Error("remote cart creation failed", zap.String("session_id", sess.ID), zap.Error(err))
			return fmt.Errorf("create remote cart: %w", err)
		}
		remote = created
	}

	sess.Items = items
	sess.RemoteCart = remote
	sess.CartDirty = false
	return nil
}
