// Command seed bulk-imports catalog posts from an Excel spreadsheet.
// Usage: go run cmd/seed/main.go -file posts.xlsx [-config config.yml]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/yeai-tech/catalog-api/internal/config"
	"github.com/yeai-tech/catalog-api/internal/database"
	"github.com/yeai-tech/catalog-api/internal/importer"
	"github.com/yeai-tech/catalog-api/internal/logger"
	"github.com/yeai-tech/catalog-api/internal/repository"
)

func main() {
	filePath := flag.String("file", "", "Path to the Excel file to import")
	configPath := flag.String("config", config.GetConfigPath("config.yml"), "Path to configuration file")
	flag.Parse()

	if *filePath == "" {
		fmt.Fprintln(os.Stderr, "Error: -file is required")
		flag.Usage()
		os.Exit(1)
	}

	if err := run(*filePath, *configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(filePath, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.Debug)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("open import file: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, importErrors := importer.ParseExcelFile(f)
	for _, ie := range importErrors {
		log.Warn("Skipping invalid row",
			logger.Int("row", ie.Row),
			logger.String("reason", ie.Error),
		)
	}
	if len(rows) == 0 {
		return fmt.Errorf("no valid rows in %s (%d rejected)", filePath, len(importErrors))
	}

	db, err := database.New(cfg, log)
	if err != nil {
		return fmt.Errorf("database connection: %w", err)
	}
	defer func() { _ = db.Close() }()

	posts := repository.NewPostRepository(db.DB(), log)

	ctx := context.Background()
	imported := 0
	for _, row := range rows {
		post := importer.ToPost(row)
		if err := posts.Create(ctx, post); err != nil {
			log.Error("Failed to import row",
				logger.Int("row", row.Row),
				logger.String("post_title", row.Title),
				logger.Error(err),
			)
			continue
		}
		imported++
	}

	log.Info("Import finished",
		logger.Int("imported", imported),
		logger.Int("rejected", len(importErrors)),
		logger.Int("failed", len(rows)-imported),
	)
	return nil
}
