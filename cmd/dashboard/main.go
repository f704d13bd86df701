package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/sricharancheeti/Bloomington-Service-Request-Dashboard/internal/cache"
	"github.com/sricharancheeti/Bloomington-Service-Request-Dashboard/internal/config"
	"github.com/sricharancheeti/Bloomington-Service-Request-Dashboard/internal/core"
	apphttp "github.com/sricharancheeti/Bloomington-Service-Request-Dashboard/internal/http"
	applog "github.com/sricharancheeti/Bloomington-Service-Request-Dashboard/internal/log"
	"github.com/sricharancheeti/Bloomington-Service-Request-Dashboard/internal/source"
	"github.com/sricharancheeti/Bloomington-Service-Request-Dashboard/internal/source/csvfile"
	"github.com/sricharancheeti/Bloomington-Service-Request-Dashboard/internal/source/socrata"
	"github.com/sricharancheeti/Bloomington-Service-Request-Dashboard/internal/source/sqlitefile"
	"github.com/sricharancheeti/Bloomington-Service-Request-Dashboard/internal/store"
	"github.com/sricharancheeti/Bloomington-Service-Request-Dashboard/internal/watch"
)

func main() {
	// Local development convenience; a missing .env is fine.
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	var src source.Source
	switch cfg.DataSource {
	case config.SourceCSV:
		src = csvfile.New(cfg.CSVPath)
	case config.SourceSocrata:
		src = socrata.New(cfg.SocrataURL, &http.Client{Timeout: 30 * time.Second})
	case config.SourceSQLite:
		src = sqlitefile.NewReader(cfg.SQLiteDBPath)
	}
	logger.Info("Initialized record source", "source", src.Key())

	tableCache := cache.NewLRUCache[core.Table](cfg.CacheSize, cfg.CacheTTL)
	cacheManager := cache.NewManager()
	cacheManager.Register(tableCache)
	cacheManager.StartCleanup(10 * time.Minute)
	defer cacheManager.Stop()

	st := store.New(src, store.WithCache(tableCache))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.WatchDataset {
		if path := cfg.DatasetPath(); path != "" {
			if err := watch.New(path, st).Start(ctx); err != nil {
				logger.Warn("Failed to start dataset watcher", "error", err, applog.FieldDatasetPath, path)
			} else {
				logger.Info("Watching dataset for changes", applog.FieldDatasetPath, path)
			}
		}
	}

	srv := apphttp.NewServer(":"+cfg.Port, st, logger)

	// Server timeouts and limits.
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 60 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting dashboard server",
		applog.FieldOperation, applog.OpStartup,
		"port", cfg.Port,
		applog.FieldSource, src.Key())
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully", applog.FieldOperation, applog.OpShutdown)
}
