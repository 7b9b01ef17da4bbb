// Package search sequences a flight search end to end: location resolution,
// rate limiting, cache lookup, the provider call and the price
// diversification pass.
package search

import (
	"context"
	"errors"
	"time"

	"github.com/redeflights/flightsearch/internal/airports"
	"github.com/redeflights/flightsearch/internal/cache"
	"github.com/redeflights/flightsearch/internal/location"
	"github.com/redeflights/flightsearch/internal/metrics"
	"github.com/redeflights/flightsearch/internal/models"
	"github.com/redeflights/flightsearch/internal/pricing"
	"github.com/redeflights/flightsearch/internal/providers"
	"github.com/redeflights/flightsearch/internal/ratelimit"
	"github.com/redeflights/flightsearch/pkg/logger"
)

type Config struct {
	MockMode bool
	Timeout  time.Duration
}

type Orchestrator struct {
	provider providers.Provider
	demo     providers.Provider
	cfg      Config
	cache    cache.Cache
	limiter  *ratelimit.ProviderLimiter
	metrics  *metrics.Metrics
	log      logger.Logger
}

func NewOrchestrator(
	provider providers.Provider,
	cfg Config,
	c cache.Cache,
	limiter *ratelimit.ProviderLimiter,
	m *metrics.Metrics,
	log logger.Logger,
) *Orchestrator {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 25 * time.Second
	}
	return &Orchestrator{
		provider: provider,
		demo:     providers.NewDemoProvider(),
		cfg:      cfg,
		cache:    c,
		limiter:  limiter,
		metrics:  m,
		log:      log,
	}
}

// Search resolves locations and runs the provider pipeline. In mock mode the
// demo adapter answers directly and the live provider is never contacted. A
// confirmed-empty provider answer surfaces as an error, never as an empty
// list.
func (o *Orchestrator) Search(ctx context.Context, req models.SearchRequest) ([]models.Offer, error) {
	req.Origin = location.Resolve(req.Origin)
	req.Destination = location.Resolve(req.Destination)

	if o.cfg.MockMode {
		o.log.Info("serving demo offers (mock mode enabled)", "origin", req.Origin, "destination", req.Destination)
		offers, err := o.demo.Search(ctx, req)
		o.metrics.SearchesTotal.WithLabelValues(o.demo.Name(), "ok").Inc()
		return offers, err
	}

	if cached, found := o.cache.Get(ctx, req); found {
		o.metrics.CacheHits.Inc()
		o.log.Info("search served from cache", "origin", req.Origin, "destination", req.Destination)
		return cached, nil
	}

	if err := o.limiter.Wait(ctx, o.provider.Name()); err != nil {
		return nil, err
	}

	searchCtx, cancel := context.WithTimeout(ctx, o.cfg.Timeout)
	defer cancel()

	start := time.Now()
	offers, err := o.provider.Search(searchCtx, req)
	o.metrics.SearchDuration.WithLabelValues(o.provider.Name()).Observe(time.Since(start).Seconds())

	if err != nil {
		o.metrics.SearchesTotal.WithLabelValues(o.provider.Name(), outcomeFor(err)).Inc()
		return nil, err
	}
	o.metrics.SearchesTotal.WithLabelValues(o.provider.Name(), "ok").Inc()

	pricing.Diversify(offers)

	if err := o.cache.Set(ctx, req, offers); err != nil {
		o.log.Warn("failed to cache search results", "error", err)
	}

	return offers, nil
}

// Suggestions filters the static airport table and, on a miss, consults the
// provider's autocomplete service when it has one. Autocomplete failures
// fall back to the static result.
func (o *Orchestrator) Suggestions(ctx context.Context, query string) []models.Airport {
	static := airports.Suggest(query)
	if len(static) > 0 || o.cfg.MockMode {
		return static
	}

	suggester, ok := o.provider.(providers.Suggester)
	if !ok {
		return static
	}

	remote, err := suggester.Suggest(ctx, query)
	if err != nil {
		o.log.Warn("autocomplete failed, using static airports", "error", err)
		return static
	}
	return remote
}

// Authenticate attempts a token acquisition against the active provider.
func (o *Orchestrator) Authenticate(ctx context.Context) error {
	if o.cfg.MockMode {
		return o.demo.Authenticate(ctx)
	}
	return o.provider.Authenticate(ctx)
}

// ProviderName reports the active provider for health reporting.
func (o *Orchestrator) ProviderName() string {
	if o.cfg.MockMode {
		return o.demo.Name()
	}
	return o.provider.Name()
}

func outcomeFor(err error) string {
	if errors.Is(err, providers.ErrNoResults) {
		return "no_results"
	}
	return "error"
}
