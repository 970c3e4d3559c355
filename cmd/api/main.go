// @title           RushHour Scheduling API
// @version         1.0
// @description     Multi-tenant appointment scheduling for service providers.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rushhour/scheduling/internal/api"
	"github.com/rushhour/scheduling/internal/api/metrics"
	"github.com/rushhour/scheduling/internal/core/service"
	"github.com/rushhour/scheduling/internal/infrastructure/config"
	"github.com/rushhour/scheduling/internal/infrastructure/credentials"
	mongodb "github.com/rushhour/scheduling/internal/infrastructure/db/mongo"
	"github.com/rushhour/scheduling/internal/infrastructure/db/postgres"
	redisdb "github.com/rushhour/scheduling/internal/infrastructure/db/redis"
	"github.com/rushhour/scheduling/internal/infrastructure/queue"
	"github.com/rushhour/scheduling/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.Init(logger.Options{Service: "rushhour-api"})
		boot.Fatal().Err(err).Msg("load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
		Service: "rushhour-api",
	})

	// --- Postgres ---
	gdb, err := postgres.Connect(cfg.Postgres)
	if err != nil {
		log.Fatal().Err(err).Msg("connect postgres")
	}
	if err := postgres.AutoMigrate(gdb); err != nil {
		log.Fatal().Err(err).Msg("migrate postgres")
	}
	store := postgres.NewStore(gdb)

	// --- MongoDB (audit trail) ---
	mongoClient, mdb, err := mongodb.Connect(ctx, mongodb.Config{
		URI:            cfg.Mongo.URI,
		Database:       cfg.Mongo.Database,
		AppName:        cfg.Mongo.AppName,
		ConnectTimeout: cfg.Mongo.ConnectTimeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect mongo")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("disconnect mongo")
		}
	}()
	auditRepo := mongodb.NewAuditRepository(mdb)
	if err := auditRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("ensure audit indexes")
	}

	// --- Redis (booking lock) ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:        cfg.Redis.Addr,
		Password:    cfg.Redis.Password,
		DB:          cfg.Redis.DB,
		PoolSize:    cfg.Redis.PoolSize,
		DialTimeout: cfg.Redis.DialTimeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect redis")
	}
	defer rdb.Close()
	locker := redisdb.NewBookingLocker(rdb, cfg.Redis.BookingLockTTL)

	// --- Audit dispatcher ---
	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, auditRepo, logger.Component("audit"))
	dispatcher.Start()
	metrics.RegisterAuditQueueDepth(dispatcher.Pending)

	// --- Services ---
	creds := credentials.NewStore(cfg.JWTSecret, cfg.TokenTTL, cfg.HashIterations)
	guard := service.NewAuthorizationGuard(store.Relations(), logger.Component("guard"))
	svcLog := logger.Component("service")

	authService := service.NewAuthService(store.Accounts(), creds, dispatcher, svcLog)
	if cfg.Admin.Email != "" {
		if _, err := authService.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password); err != nil {
			log.Fatal().Err(err).Msg("ensure admin account")
		}
	}

	e := api.NewRouter(api.Dependencies{
		Tokens:       creds,
		Auth:         authService,
		Accounts:     authService,
		Providers:    service.NewProviderService(store, guard, dispatcher, svcLog),
		Employees:    service.NewEmployeeService(store, guard, creds, dispatcher, svcLog),
		Clients:      service.NewClientService(store, guard, creds, dispatcher, svcLog),
		Activities:   service.NewActivityService(store, guard, dispatcher, svcLog),
		Appointments: service.NewAppointmentService(store, guard, locker, dispatcher, svcLog),
		Audit:        service.NewAuditService(auditRepo, guard, svcLog),
		Postgres:     store,
		Mongo:        mdb,
		Redis:        rdb,
		Log:          logger.Component("http"),
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	if err := dispatcher.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Int("pending", dispatcher.Pending()).Msg("audit dispatcher did not drain")
	}
	if sqlDB, err := gdb.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info().Msg("stopped")
}
