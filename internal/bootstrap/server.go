package bootstrap

import (
	"github.com/yeai-tech/catalog-api/internal/api"
	"github.com/yeai-tech/catalog-api/internal/config"
	"github.com/yeai-tech/catalog-api/internal/handlers"
	"github.com/yeai-tech/catalog-api/internal/logger"
	"github.com/yeai-tech/catalog-api/internal/moderation"
	"github.com/yeai-tech/catalog-api/internal/notifier"
	"github.com/yeai-tech/catalog-api/internal/repository"
	"github.com/yeai-tech/catalog-api/internal/server"
	"github.com/yeai-tech/catalog-api/internal/viewguard"
)

// ServerDeps mirrors api.Deps so callers assemble everything in one place.
type ServerDeps struct {
	Posts       *repository.PostRepository
	News        *repository.NewsRepository
	Bookmarks   *repository.BookmarkRepository
	Submissions *repository.SubmissionRepository
	Moderation  *moderation.Service
	Guard       viewguard.Guard
	Assets      handlers.AssetResolver
	Notifier    *notifier.Notifier
	Logger      logger.Logger
}

// SetupHTTPServer creates and configures the HTTP server.
func SetupHTTPServer(cfg *config.Config, deps ServerDeps) *server.Server {
	router := api.NewRouter(cfg, api.Deps{
		Posts:       deps.Posts,
		News:        deps.News,
		Bookmarks:   deps.Bookmarks,
		Submissions: deps.Submissions,
		Moderation:  deps.Moderation,
		Guard:       deps.Guard,
		Assets:      deps.Assets,
		Notifier:    deps.Notifier,
		Logger:      deps.Logger,
	})
	return server.New(cfg, router, deps.Logger)
}
