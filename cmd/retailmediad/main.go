package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"gorm.io/gorm"

	"retailmedia-backend/config"
	"retailmedia-backend/internal/api"
	"retailmedia-backend/internal/db"
	"retailmedia-backend/internal/notification"
	"retailmedia-backend/internal/store"
)

func main() {
	logger := log.New(os.Stdout, "retailmedia-backend ", log.LstdFlags)

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
		}
		logger.Printf("no config file at %s, using defaults (in-memory sqlite, seeded)", configPath)
		cfg = config.Default()
	} else {
		logger.Printf("configuration loaded successfully from %s", configPath)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		source store.DataSource
		gormDB *gorm.DB
	)
	if cfg.Database.Driver == "memory" {
		source = store.NewMemStore(cfg.Catalog.FakeLatency())
		logger.Println("in-memory data source initialized (seeded)")
	} else {
		gormDB, err = db.Init(&cfg.Database)
		if err != nil {
			logger.Fatalf("failed to initialize database: %v", err)
		}
		if cfg.Database.Seed {
			if err := store.Seed(ctx, gormDB); err != nil {
				logger.Fatalf("failed to seed catalog: %v", err)
			}
		}
		source = store.NewGormStore(gormDB)
		logger.Println("data store initialized")
	}

	// Push notifications need both VAPID keys and a database for the
	// subscription mapping; without either the feature stays off.
	var (
		webpushOptions *webpush.Options
		pool           *notification.WorkerPool
	)
	if gormDB != nil && cfg.Push.PublicKey != "" && cfg.Push.PrivateKey != "" {
		webpushOptions = &webpush.Options{
			VAPIDPublicKey:  cfg.Push.PublicKey,
			VAPIDPrivateKey: cfg.Push.PrivateKey,
			Subscriber:      cfg.Push.Subject,
			TTL:             cfg.Push.TTL,
		}
		pool = notification.NewWorkerPool(cfg.WorkerPool.Size, gormDB, webpushOptions)
		pool.Start(ctx)
		logger.Printf("notification worker pool started (size %d)", cfg.WorkerPool.Size)
	} else {
		logger.Println("push notifications disabled (missing VAPID keys or database)")
	}

	router := api.NewRouter(source, gormDB, cfg, webpushOptions, pool)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
