// Command api runs the shop HTTP API.
//
// @title                       Shop API
// @version                     1.0
// @description                 Users, authentication and product catalog.
// @BasePath                    /
// @securityDefinitions.apikey  TokenAuth
// @in                          header
// @name                        token
// @description                 "Bearer <jwt>"
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	_ "github.com/storefront/shop-api/docs"
	"github.com/storefront/shop-api/internal/api"
	"github.com/storefront/shop-api/internal/core/ports"
	"github.com/storefront/shop-api/internal/core/service"
	mongostore "github.com/storefront/shop-api/internal/infrastructure/db/mongo"
	redisstore "github.com/storefront/shop-api/internal/infrastructure/db/redis"
	"github.com/storefront/shop-api/internal/infrastructure/http/handlers"
	"github.com/storefront/shop-api/internal/infrastructure/queue"
	"github.com/storefront/shop-api/internal/pkg/config"
	"github.com/storefront/shop-api/pkg/logger"
)

const shutdownTimeout = 20 * time.Second

func main() {
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(rootCtx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "shop-api",
	})

	if err := run(rootCtx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("api stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	tokens, err := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return err
	}

	// --- Storage ---
	client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			log.Error().Err(err).Msg("mongo disconnect failed")
		}
	}()

	userRepo := mongostore.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("ensure user indexes: %w", err)
	}
	productRepo := mongostore.NewProductRepository(db)

	readiness := handlers.NewHealthDependenciesHandler(db, nil)
	var cache ports.ProductCache
	if cfg.Redis.Addr != "" {
		rdb, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer rdb.Close()

		cache = redisstore.NewProductCache(rdb, cfg.Redis.CacheTTL)
		readiness = handlers.NewHealthDependenciesHandler(db, rdb)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("product cache enabled")
	}

	// --- Events ---
	var publisher ports.EventPublisher = queue.NewLogPublisher(logger.Component("events"))
	if len(cfg.Events.Brokers) > 0 {
		kp := queue.NewKafkaPublisher(cfg.Events.Brokers, cfg.Events.Topic)
		defer func() {
			if err := kp.Close(); err != nil {
				log.Error().Err(err).Msg("kafka close failed")
			}
		}()
		publisher = kp
		log.Info().Strs("brokers", cfg.Events.Brokers).Str("topic", cfg.Events.Topic).Msg("publishing events to kafka")
	}

	dispatcher := queue.NewDispatcher(cfg.Events.Workers, publisher, logger.Component("events"))
	dispatcher.Start(context.Background())
	defer dispatcher.Stop()

	// --- Services ---
	authService := service.NewAuthService(userRepo, tokens, dispatcher, logger.Component("auth"))
	userService := service.NewUserService(userRepo, dispatcher, logger.Component("users"))
	productService := service.NewProductService(productRepo, cache, dispatcher, logger.Component("products"))

	if cfg.Admin.Enabled() {
		if err := authService.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Email, cfg.Admin.Password); err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
	}

	e := api.NewRouter(api.Deps{
		Auth:      authService,
		Users:     userService,
		Products:  productService,
		Tokens:    tokens,
		Readiness: readiness,
		Log:       logger.Component("http"),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("api listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown initiated")
	case err := <-serveErr:
		return fmt.Errorf("http server: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}
	return nil
}
