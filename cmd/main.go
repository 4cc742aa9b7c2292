package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "ecommerce_backend/docs"
	"ecommerce_backend/internal/config"
	"ecommerce_backend/internal/handlers"
	"ecommerce_backend/internal/logger"
	"ecommerce_backend/internal/repository"
	"ecommerce_backend/internal/repository/db"
	"ecommerce_backend/internal/server"
	"ecommerce_backend/internal/service"
)

const shutdownTimeout = 10 * time.Second

// @title                       E-commerce API
// @version                     1.0
// @description                 Signup/login, item catalog and per-user cart.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load(config.Options{})
	if err != nil {
		fmt.Fprintln(os.Stderr, "error reading config:", err)
		os.Exit(1)
	}

	// init logger
	log := logger.Get(cfg.Logging.Level, cfg.Logging.Format)
	defer func() { _ = log.Sync() }()

	if err := cfg.Validate(); err != nil {
		log.Fatalw("invalid config", "err", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// open stores
	repos, closeStores, err := openRepository(ctx, cfg, log)
	if err != nil {
		log.Fatalw("failed to open store", "driver", cfg.Database.Driver, "err", err)
	}
	defer closeStores()

	// wire dependencies
	services := service.NewService(repos, service.AuthConfig{
		SigningKey:       []byte(cfg.Auth.JWTSecret),
		MaxLoginAttempts: cfg.Auth.MaxLoginAttempts,
		LoginCooldown:    cfg.Auth.LoginCooldown,
	})
	apiHandler := handlers.NewHandler(services, log, handlers.WithAllowedOrigins(cfg.CORS.AllowedOrigins...))

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, cfg.Server.Port, apiHandler, log)

	// graceful shutdown
	waitForShutdown(cancel, srv, log)
}

// openRepository builds the repository for the configured driver and, when
// Redis is configured, attaches the login attempt store.
func openRepository(ctx context.Context, cfg *config.Config, log *logger.Logger) (*repository.Repository, func(), error) {
	var (
		repos   *repository.Repository
		closers []func()
	)
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	switch cfg.Database.Driver {
	case config.DriverMongo:
		client, mdb, err := db.ConnectMongo(ctx, cfg.Database.MongoURI, cfg.Database.MongoDatabase)
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Errorw("failed to disconnect mongo", "err", err)
			}
		})
		repos = repository.NewMongoRepository(mdb)
		log.Infow("store_ready", "driver", config.DriverMongo, "database", cfg.Database.MongoDatabase)
	default:
		sqlDB, err := db.InitSQLite(cfg.Database.Path)
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, func() {
			if err := sqlDB.Close(); err != nil {
				log.Errorw("failed to close sqlite", "err", err)
			}
		})
		repos = repository.NewSQLiteRepository(sqlDB)
		log.Infow("store_ready", "driver", config.DriverSQLite, "path", cfg.Database.Path)
	}

	if cfg.Redis.Addr == "" {
		log.Infow("login throttling disabled; redis.addr not set")
		return repos, closeAll, nil
	}
	rdb, err := db.ConnectRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		closeAll()
		return nil, nil, err
	}
	closers = append(closers, func() { _ = rdb.Close() })
	repos.Attempts = repository.NewAttemptsRedis(rdb)
	log.Infow("login throttling enabled", "redis", cfg.Redis.Addr, "max_attempts", cfg.Auth.MaxLoginAttempts)

	return repos, closeAll, nil
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		log.Infow("http server listening", "port", port)
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
