// Package bootstrap handles application initialization and lifecycle
// management for the catalog-api service.
package bootstrap

import (
	"fmt"

	"github.com/yeai-tech/catalog-api/internal/assets"
	"github.com/yeai-tech/catalog-api/internal/logger"
	"github.com/yeai-tech/catalog-api/internal/metadata"
	"github.com/yeai-tech/catalog-api/internal/moderation"
	"github.com/yeai-tech/catalog-api/internal/notifier"
	"github.com/yeai-tech/catalog-api/internal/repository"
)

const version = "dev"

// Start initializes and starts the catalog-api application.
func Start() error {
	// Phase 1: Load config and create logger
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := CreateLogger(cfg, version)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	// Phase 2: Setup database
	db, err := SetupDatabase(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			log.Error("Failed to close database", logger.Error(closeErr))
		}
	}()

	// Phase 3: Setup view guard (Redis when enabled, in-process otherwise)
	guard, guardCleanup := SetupViewGuard(cfg, log)
	defer guardCleanup()

	// Phase 4: Asset store and outbound mail
	assetStore, err := assets.NewStore(cfg.Assets.Dir, cfg.Assets.PublicURL)
	if err != nil {
		return fmt.Errorf("failed to create asset store: %w", err)
	}

	mailer, err := notifier.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to create notifier: %w", err)
	}
	if mailer == nil {
		log.Info("SMTP not configured, outbound mail disabled")
	}

	// Phase 5: Repositories and services
	posts := repository.NewPostRepository(db.DB(), log)
	news := repository.NewNewsRepository(db.DB(), log)
	bookmarks := repository.NewBookmarkRepository(db.DB(), log)
	submissions := repository.NewSubmissionRepository(db.DB(), log)

	extractor := metadata.NewExtractor(log, nil)
	modService := moderation.NewService(submissions, assetStore, mailer, extractor, log)

	// Phase 6: Setup and run HTTP server
	server := SetupHTTPServer(cfg, ServerDeps{
		Posts:       posts,
		News:        news,
		Bookmarks:   bookmarks,
		Submissions: submissions,
		Moderation:  modService,
		Guard:       guard,
		Assets:      assetStore,
		Notifier:    mailer,
		Logger:      log,
	})

	log.Info("Starting HTTP server",
		logger.String("host", cfg.Server.Host),
		logger.Int("port", cfg.Server.Port),
	)

	if runErr := server.Run(); runErr != nil {
		log.Error("Server error", logger.Error(runErr))
		return fmt.Errorf("server error: %w", runErr)
	}

	log.Info("Server exited")
	return nil
}
