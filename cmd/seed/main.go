// Command seed converts a bulk CSV export into the SQLite dataset the
// dashboard's sqlite source reads. It runs offline; the server never
// writes to the database.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	applog "github.com/sricharancheeti/Bloomington-Service-Request-Dashboard/internal/log"
	"github.com/sricharancheeti/Bloomington-Service-Request-Dashboard/internal/source/csvfile"
	"github.com/sricharancheeti/Bloomington-Service-Request-Dashboard/internal/source/sqlitefile"
)

func main() {
	var (
		csvPath = flag.String("csv", "./data/Cleaned_Open311.csv", "path to the CSV export to import")
		dbPath  = flag.String("db", "./data/requests.db", "path of the SQLite dataset to create")
		timeout = flag.Duration("timeout", 5*time.Minute, "overall import timeout")
	)
	flag.Parse()

	logger := applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentSeed)
	applog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	start := time.Now()
	table, err := csvfile.New(*csvPath).Fetch(ctx)
	if err != nil {
		logger.Error("Failed to read CSV export", "error", err, applog.FieldDatasetPath, *csvPath)
		os.Exit(1)
	}
	logger.Info("CSV export read", applog.FieldDatasetPath, *csvPath, applog.FieldRecordCount, len(table))

	writer, err := sqlitefile.NewWriter(*dbPath)
	if err != nil {
		logger.Error("Failed to open SQLite dataset", "error", err, applog.FieldDatasetPath, *dbPath)
		os.Exit(1)
	}
	defer func() {
		if err := writer.Close(); err != nil {
			logger.Warn("Failed to close SQLite dataset", "error", err)
		}
	}()

	if err := writer.Insert(ctx, table); err != nil {
		logger.Error("Failed to write records", "error", err, applog.FieldDatasetPath, *dbPath)
		os.Exit(1)
	}

	logger.Info("Dataset seeded",
		applog.FieldDatasetPath, *dbPath,
		applog.FieldRecordCount, len(table),
		"duration_ms", time.Since(start).Milliseconds())
}
