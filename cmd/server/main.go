package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"emend/internal/audit"
	"emend/internal/blocklist"
	jwttoken "emend/internal/jwt_token"
	"emend/internal/notify"
	"emend/internal/platform/config"
	"emend/internal/platform/database"
	"emend/internal/platform/httpserver"
	"emend/internal/platform/kafka"
	"emend/internal/platform/logger"
	"emend/internal/platform/metrics"
	platformredis "emend/internal/platform/redis"
	"emend/internal/review/enumerate"
	"emend/internal/review/handler"
	"emend/internal/review/onboarding"
	"emend/internal/review/risk"
	"emend/internal/review/service"
	userstore "emend/internal/user/store"
	"emend/pkg/platform/middleware/auth"
	"emend/pkg/platform/middleware/metadata"
	"emend/pkg/platform/middleware/request"
)

const maxBodyBytes = 1 << 20

// main wires dependencies and keeps the server lifecycle small. Business
// logic lives in the internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(logger.ParseLevel(cfg.LogLevel))

	ctx := context.Background()

	db, err := database.Open(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Error("postgres unavailable", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis unavailable", "error", err)
		os.Exit(1)
	}
	var blocked blocklist.Store
	if redisClient != nil {
		defer redisClient.Close()
		blocked = blocklist.NewRedis(redisClient.Client)
	} else {
		log.Warn("redis not configured, block list checks run against an empty in-memory store")
		blocked = blocklist.NewMemory()
	}

	producer, err := kafka.NewProducer(cfg.Kafka, log)
	if err != nil {
		log.Error("kafka unavailable", "error", err)
		os.Exit(1)
	}
	defer producer.Close()

	m := metrics.New()

	svc := service.New(
		userstore.NewPostgres(db),
		blocked,
		enumerate.NewGate(enumerate.NewPostgresStore(db)),
		onboarding.NewGate(onboarding.NewHTTPClient(cfg.OnboardingURL, cfg.DownstreamTimeout), log),
		risk.NewHTTPClient(cfg.RiskEngineURL, cfg.DownstreamTimeout),
		audit.NewPublisher(audit.NewPostgresStore(db)),
		notify.NewDispatcher(producer, cfg.Kafka.SettlementTopic, cfg.Kafka.CustodyTopic, m),
		log,
		service.WithMetrics(m),
	)

	jwtService := jwttoken.NewJWTService(cfg.JWTSigningKey, "emend", "emend-clients")
	reviewHandler := handler.New(svc, log)

	router := chi.NewRouter()
	router.Use(request.Recovery(log))
	router.Use(request.RequestID)
	router.Use(metadata.ClientMetadata)
	router.Use(request.Logger(log))

	router.Handle("/metrics", promhttp.Handler())
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	router.Group(func(r chi.Router) {
		r.Use(request.BodyLimit(maxBodyBytes))
		r.Use(request.ContentTypeJSON)
		r.Use(auth.RequireAuth(jwtService, log))
		reviewHandler.Routes(r)
	})

	srv := httpserver.New(cfg.Addr, router)

	go func() {
		log.Info("starting emend", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
