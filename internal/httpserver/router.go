package httpserver

import (
	"context"
	"errors"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"umrah-storefront/internal/currency"
	"umrah-storefront/internal/domain"
	"umrah-storefront/internal/faq"
	"umrah-storefront/internal/logger"
	cartsvc "umrah-storefront/internal/service/cart"
	contactsvc "umrah-storefront/internal/service/contact"
	customersvc "umrah-storefront/internal/service/customer"
)

type sessionService interface {
	Issue(ctx context.Context) (*domain.Session, error)
	Get(ctx context.Context, id string) (*domain.Session, error)
	SetCurrency(ctx context.Context, id, code string) (*domain.Session, error)
}

type productService interface {
	List(ctx context.Context, first int, after string) (*domain.ProductPage, error)
	Get(ctx context.Context, handle string) (*domain.ProductDetail, error)
}

type cartService interface {
	Get(ctx context.Context, sessionID string) (*cartsvc.View, error)
	Add(ctx context.Context, sessionID string, in cartsvc.AddInput) (*cartsvc.View, error)
	Remove(ctx context.Context, sessionID, variantID string) (*cartsvc.View, error)
	UpdateQuantity(ctx context.Context, sessionID, variantID string, qty int) (*cartsvc.View, error)
	Clear(ctx context.Context, sessionID string) (*cartsvc.View, error)
	Checkout(ctx context.Context, sessionID string) (string, error)
}

type customerService interface {
	Login(ctx context.Context, sessionID, email, password string) (*domain.Customer, error)
	Register(ctx context.Context, sessionID string, in customersvc.RegisterInput) (*domain.Customer, error)
	Logout(ctx context.Context, sessionID string) error
	Profile(ctx context.Context, sessionID string) (*domain.Customer, error)
	Orders(ctx context.Context, sessionID string) ([]domain.Order, error)
	Bookings(ctx context.Context, sessionID string) ([]domain.Booking, error)
}

type contactService interface {
	Submit(ctx context.Context, in contactsvc.Input, remoteIP string) (*contactsvc.Result, error)
}

// Deps bundles the services behind the routes.
type Deps struct {
	SessionSvc  sessionService
	ProductSvc  productService
	CartSvc     cartService
	CustomerSvc customerService
	ContactSvc  contactService
	Currencies  *currency.Table
	FAQ         *faq.Matcher
	// DB is pinged by /readyz; nil when sessions live in memory.
	DB pinger

	CORSAllowOrigins []string
}

func (d Deps) validate() error {
	switch {
	case d.SessionSvc == nil:
		return errors.New("httpserver: session service required")
	case d.ProductSvc == nil:
		return errors.New("httpserver: product service required")
	case d.CartSvc == nil:
		return errors.New("httpserver: cart service required")
	case d.CustomerSvc == nil:
		return errors.New("httpserver: customer service required")
	case d.ContactSvc == nil:
		return errors.New("httpserver: contact service required")
	case d.Currencies == nil:
		return errors.New("httpserver: currency table required")
	case d.FAQ == nil:
		return errors.New("httpserver: faq matcher required")
	}
	return nil
}

// buildRouter wires routes for the API.
func buildRouter(log *zap.Logger, deps Deps) (*gin.Engine, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	router := gin.New()
	router.Use(logger.GinMiddleware(log), logger.Recovery(log))
	router.Use(corsMiddleware(deps.CORSAllowOrigins))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.DB))

	h := &handlers{deps: deps}
	api := router.Group("/api")

	api.POST("/sessions", h.createSession)
	api.POST("/chat", h.chat)
	api.POST("/contact", h.contact)

	public := api.Group("", sessionMiddleware(deps.SessionSvc, false))
	public.GET("/products", h.listProducts)
	public.GET("/products/:handle", h.getProduct)
	public.GET("/currencies", h.listCurrencies)

	scoped := api.Group("", sessionMiddleware(deps.SessionSvc, true))
	scoped.PUT("/currency", h.setCurrency)

	scoped.GET("/cart", h.getCart)
	scoped.POST("/cart/items", h.addCartItem)
	scoped.PATCH("/cart/items", h.updateCartItem)
	scoped.DELETE("/cart/items", h.removeCartItem)
	scoped.DELETE("/cart", h.clearCart)
	scoped.POST("/checkout", h.checkout)

	scoped.POST("/auth/login", h.login)
	scoped.POST("/auth/register", h.register)
	scoped.POST("/auth/logout", h.logout)

	scoped.GET("/account", h.account)
	scoped.GET("/account/orders", h.orders)
	scoped.GET("/account/bookings", h.bookings)

	return router, nil
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", sessionHeader},
		ExposeHeaders:    []string{sessionHeader},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

type handlers struct {
	deps Deps
}
