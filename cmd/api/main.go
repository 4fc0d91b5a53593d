package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"umrah-storefront/internal/cache"
	"umrah-storefront/internal/commerce"
	"umrah-storefront/internal/config"
	"umrah-storefront/internal/currency"
	"umrah-storefront/internal/db"
	"umrah-storefront/internal/faq"
	"umrah-storefront/internal/httpserver"
	"umrah-storefront/internal/logger"
	"umrah-storefront/internal/migrate"
	sessionrepo "umrah-storefront/internal/repository/session"
	cartsvc "umrah-storefront/internal/service/cart"
	catalogsvc "umrah-storefront/internal/service/catalog"
	contactsvc "umrah-storefront/internal/service/contact"
	customersvc "umrah-storefront/internal/service/customer"
	sessionsvc "umrah-storefront/internal/service/session"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()

	log, err := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cfg.Log.Output})
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	ctx := context.Background()

	deps := httpserver.Deps{CORSAllowOrigins: cfg.CORSAllowOrigins}

	var sessions sessionrepo.Repository
	switch cfg.SessionStore {
	case "memory":
		log.Warn("sessions are kept in memory and will not survive a restart")
		sessions = sessionrepo.NewMemory()
	default:
		pool, err := db.Connect(ctx, cfg.DBConnString, db.Options{MaxConns: cfg.DBMaxConns, SlowQuery: cfg.DBSlowQuery}, log)
		if err != nil {
			log.Fatal("connect to db", zap.Error(err))
		}
		defer pool.Close()
		version, err := migrate.Apply(ctx, pool)
		if err != nil {
			log.Fatal("apply migrations", zap.Error(err))
		}
		log.Info("session schema ready", zap.Uint("version", version))
		sessions = sessionrepo.NewPostgres(pool, log)
		deps.DB = pool
	}

	client, err := commerce.New(commerce.Config{
		Endpoint:    cfg.Commerce.Endpoint,
		AccessToken: cfg.Commerce.AccessToken,
		Timeout:     cfg.Commerce.Timeout,
	}, log)
	if err != nil {
		log.Fatal("init commerce client", zap.Error(err))
	}

	var catalogCache cache.Cache = cache.Noop{}
	if cfg.Redis.Addr != "" {
		rdb, err := cache.Connect(ctx, cache.RedisConfig{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			log.Warn("redis unavailable, catalog cache disabled", zap.Error(err))
		} else {
			defer rdb.Close()
			catalogCache = cache.NewRedis(rdb, "storefront:", log)
		}
	}

	matcher := faq.Default()
	if cfg.FAQPath != "" {
		if matcher, err = faq.LoadFile(cfg.FAQPath); err != nil {
			log.Fatal("load faq table", zap.String("path", cfg.FAQPath), zap.Error(err))
		}
	}

	currencies := currency.NewTable()
	if _, ok := currencies.Lookup(cfg.Currency.Default); !ok {
		log.Fatal("unsupported default currency", zap.String("currency", cfg.Currency.Default))
	}
	refresher := currency.NewRefresher(currencies, currency.RefresherConfig{
		URL:      cfg.Currency.RatesURL,
		Interval: cfg.Currency.RefreshInterval,
	}, log)
	if err := refresher.Start(ctx); err != nil {
		log.Fatal("start rate refresher", zap.Error(err))
	}

	mailer := contactsvc.NewSendGridMailer(cfg.Contact.SendGridAPIKey, cfg.Contact.FromName, log)
	contactCfg := contactsvc.Config{From: cfg.Contact.From, To: cfg.Contact.To}
	var contactSvc *contactsvc.Service
	if cfg.Contact.RecaptchaSecret != "" {
		captcha := contactsvc.NewRecaptchaVerifier(cfg.Contact.RecaptchaSecret, cfg.Contact.RecaptchaURL)
		contactSvc = contactsvc.New(captcha, mailer, contactCfg, log)
	} else {
		contactSvc = contactsvc.New(nil, mailer, contactCfg, log)
	}

	sessionService := sessionsvc.New(sessions, cfg.Currency.Default, log)
	deps.SessionSvc = sessionService
	deps.ProductSvc = catalogsvc.New(client, catalogCache, cfg.Redis.CatalogTTL, log)
	deps.CartSvc = cartsvc.New(client, sessionService, cartsvc.Options{SyncQuantityUpdates: cfg.SyncQuantityUpdates}, log)
	deps.CustomerSvc = customersvc.New(client, sessionService, log)
	deps.ContactSvc = contactSvc
	deps.Currencies = currencies
	deps.FAQ = matcher

	srv, err := httpserver.New(cfg.HTTPAddr, log, deps)
	if err != nil {
		log.Fatal("init server", zap.Error(err))
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		log.Info("received signal, shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := refresher.Stop(shutdownCtx); err != nil {
		log.Warn("stop rate refresher", zap.Error(err))
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	} else {
		log.Info("server stopped")
	}
}
