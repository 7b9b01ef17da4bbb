package main

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/redeflights/flightsearch/internal/cache"
	"github.com/redeflights/flightsearch/internal/config"
	"github.com/redeflights/flightsearch/internal/handler"
	"github.com/redeflights/flightsearch/internal/metrics"
	"github.com/redeflights/flightsearch/internal/providers"
	"github.com/redeflights/flightsearch/internal/ratelimit"
	"github.com/redeflights/flightsearch/internal/search"
	"github.com/redeflights/flightsearch/pkg/logger"
)

func main() {
	log := logger.NewLogger()
	cfg := config.Load()

	provider := buildProvider(cfg, log)
	log.Info("flight provider initialized", "provider", provider.Name(), "mockMode", cfg.MockMode)

	rateLimiter := ratelimit.NewProviderLimiter(ratelimit.DefaultConfig())
	rateLimiter.SetProviderLimit("amadeus", 10, 20)
	rateLimiter.SetProviderLimit("sabre", 10, 20)

	var offerCache cache.Cache
	if cfg.CacheEnabled {
		redisCache, err := cache.NewRedisCache(cache.RedisConfig{
			Host: cfg.RedisHost,
			Port: cfg.RedisPort,
			TTL:  cfg.RedisTTL,
		})
		if err != nil {
			log.Fatal("failed to connect to redis", "error", err)
		}
		offerCache = redisCache
		log.Info("redis cache enabled", "host", cfg.RedisHost, "port", cfg.RedisPort, "ttl", cfg.RedisTTL)
	} else {
		offerCache = cache.NewNoOpCache()
		log.Info("cache disabled")
	}

	m := metrics.New(prometheus.DefaultRegisterer)

	orchestrator := search.NewOrchestrator(provider, search.Config{
		MockMode: cfg.MockMode,
		Timeout:  cfg.SearchTimeout,
	}, offerCache, rateLimiter, m, log)

	searchHandler := handler.NewSearchHandler(orchestrator, log)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())

	e.GET("/", handler.Root)
	api := e.Group("/api")
	api.POST("/flights/search", searchHandler.Search)
	api.GET("/flights/search", searchHandler.Search)
	api.GET("/flights/suggestions", searchHandler.Suggestions)
	api.GET("/health", searchHandler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	log.Info("starting flight search server", "port", cfg.Port)
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", "error", err)
	}
}

func buildProvider(cfg *config.Config, log logger.Logger) providers.Provider {
	searchClient := &http.Client{Timeout: cfg.SearchTimeout}
	authClient := &http.Client{Timeout: cfg.AuthTimeout}

	switch cfg.Provider {
	case "sabre":
		return providers.NewSabreProvider(providers.SabreConfig{
			BaseURL:      cfg.SabreBaseURL,
			ClientID:     cfg.SabreClientID,
			ClientSecret: cfg.SabreClientSecret,
			PseudoCity:   cfg.SabrePCC,
			MaxResults:   cfg.MaxResults,
		}, searchClient, authClient, log)
	default:
		return providers.NewAmadeusProvider(providers.AmadeusConfig{
			BaseURL:      cfg.AmadeusBaseURL,
			ClientID:     cfg.AmadeusClientID,
			ClientSecret: cfg.AmadeusClientSecret,
			Currency:     cfg.Currency,
			MaxResults:   cfg.MaxResults,
		}, searchClient, authClient, log)
	}
}
