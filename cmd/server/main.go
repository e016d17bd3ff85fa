package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/viraldaily/viraldaily-go/internal/config"
	"github.com/viraldaily/viraldaily-go/internal/db"
	"github.com/viraldaily/viraldaily-go/internal/handler"
	"github.com/viraldaily/viraldaily-go/internal/metrics"
	"github.com/viraldaily/viraldaily-go/internal/middleware"
	"github.com/viraldaily/viraldaily-go/internal/repository"
	"github.com/viraldaily/viraldaily-go/internal/router"
	"github.com/viraldaily/viraldaily-go/internal/service"
	"github.com/viraldaily/viraldaily-go/internal/source"
)

func main() {
	cfg := config.Load()
	middleware.InitLogger(cfg.LogLevel, "viraldaily-api")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The snapshot store is optional: without it the aggregation core is
	// fully functional and only analytics is unavailable.
	var pool *pgxpool.Pool
	if cfg.DatabaseURL != "" {
		var err error
		pool, err = db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Printf("snapshot store unavailable, analytics disabled: %v", err)
			pool = nil
		} else {
			defer pool.Close()
		}
	} else {
		log.Println("no DATABASE_URL configured, analytics disabled")
	}

	metrics.Init(pool)

	cache := service.NewCacheService(cfg.RedisURL)
	defer cache.Close()

	// Adapter calls are bounded by per-call contexts, not a client timeout.
	httpClient := &http.Client{}
	adapters := []source.Adapter{
		source.NewYouTube(httpClient, cfg.YouTubeAPIKey),
		source.NewTikTok(httpClient, cfg.TikTokAccessToken),
		source.NewTwitter(httpClient, cfg.TwitterBearerToken),
	}

	var snapshotRepo *repository.SnapshotRepo
	var snapshotWorker *service.SnapshotWorker
	if pool != nil {
		snapshotRepo = repository.NewSnapshotRepo(pool)
		snapshotWorker = service.NewSnapshotWorker(snapshotRepo)
		go snapshotWorker.Start(ctx)
	}

	scores := service.NewScoreService()
	aggregator := service.NewAggregatorService(
		adapters,
		source.NewFallbackGenerator(),
		scores,
		snapshotWorker,
		cfg.FetchTimeout,
	)
	tiers := service.NewTierService(cfg.ProAPIKeys, cfg.BusinessAPIKeys)
	analytics := service.NewAnalyticsService(snapshotRepo)

	app := fiber.New(fiber.Config{
		AppName:      "Viral Daily API",
		ServerHeader: "ViralDaily",
	})

	handlers := &router.Handlers{
		Video:     handler.NewVideoHandler(aggregator, tiers, cache),
		Plans:     handler.NewPlansHandler(),
		Analytics: handler.NewAnalyticsHandler(analytics, tiers),
		Health:    handler.NewHealthHandler(pool, cache.Client()),
	}
	router.Setup(app, handlers, tiers.ResolveTier, cfg.CORSOrigins)

	go func() {
		<-ctx.Done()
		log.Println("shutting down")
		_ = app.Shutdown()
	}()

	log.Printf("Viral Daily backend starting on :%s (env=%s)", cfg.Port, cfg.Environment)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
