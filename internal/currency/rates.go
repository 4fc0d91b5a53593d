package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// RefresherConfig configures the exchange-rate refresh loop.
type RefresherConfig struct {
	// URL returns a Base-relative rate table, e.g. https://open.er-api.com/v6/latest/USD.
	URL      string
	Interval time.Duration
	Timeout  time.Duration
}

type ratesResponse struct {
	Result string                     `json:"result"`
	Base   string                     `json:"base_code"`
	Rates  map[string]decimal.Decimal `json:"rates"`
}

// Refresher periodically pulls exchange rates into a Table. A failed pull keeps the
// previous rates and marks the table stale.
type Refresher struct {
	table  *Table
	client *http.Client
	logger *zap.Logger
	config RefresherConfig

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

func NewRefresher(table *Table, cfg RefresherConfig, logger *zap.Logger) *Refresher {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Refresher{
		table:  table,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger.Named("currency_refresher"),
		config: cfg,
	}
}

// Start runs one refresh immediately and then one per interval until Stop.
// An empty URL disables the loop and leaves the fallback rates in place.
func (r *Refresher) Start(ctx context.Context) error {
	r.mu.Lock()
	if r.isRunning {
		r.mu.Unlock()
		return nil
	}
	if r.config.URL == "" {
		r.mu.Unlock()
		r.logger.Info("exchange-rate refresh disabled, using fallback rates")
		return nil
	}
	r.isRunning = true
	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.mu.Unlock()

	r.wg.Add(1)
	go r.run(ctx)

	r.logger.Info("exchange-rate refresher started", zap.Duration("interval", r.config.Interval))
	return nil
}

// Stop cancels the loop and waits for it to exit or for ctx to expire.
func (r *Refresher) Stop(ctx context.Context) error {
	r.mu.Lock()
	if !r.isRunning {
		r.mu.Unlock()
		return nil
	}
	r.isRunning = false
	cancel := r.cancel
	r.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		r.logger.Info("exchange-rate refresher stopped")
		return nil
	case <-ctx.Done():
		r.logger.Warn("exchange-rate refresher stop timed out")
		return ctx.Err()
	}
}

func (r *Refresher) run(ctx context.Context) {
	defer r.wg.Done()

	r.refreshLogged(ctx)

	ticker := time.NewTicker(r.config.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.refreshLogged(ctx)
		}
	}
}

func (r *Refresher) refreshLogged(ctx context.Context) {
	if err := r.Refresh(ctx); err != nil {
		r.logger.Warn("exchange-rate refresh failed, keeping previous rates", zap.Error(err))
	}
}

// Refresh performs a single pull.
func (r *Refresher) Refresh(ctx context.Context) error {
	rates, err := r.fetch(ctx)
	if err != nil {
		r.table.markStale()
		return err
	}
	n, err := r.table.ApplyRates(rates)
	if err != nil {
		r.table.markStale()
		return err
	}
	r.logger.Debug("exchange rates refreshed", zap.Int("updated", n))
	return nil
}

func (r *Refresher) fetch(ctx context.Context) (map[string]decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.config.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build rates request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch rates: unexpected status %d", resp.StatusCode)
	}

	var body ratesResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode rates: %w", err)
	}
	if body.Result != "" && body.Result != "success" {
		return nil, fmt.Errorf("rates service returned result %q", body.Result)
	}
	if body.Base != "" && body.Base != Base {
		return nil, fmt.Errorf("rates base %q, want %q", body.Base, Base)
	}
	return body.Rates, nil
}
