package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/yeai-tech/catalog-api/internal/config"
	"github.com/yeai-tech/catalog-api/internal/handlers"
	"github.com/yeai-tech/catalog-api/internal/logger"
	"github.com/yeai-tech/catalog-api/internal/moderation"
	"github.com/yeai-tech/catalog-api/internal/notifier"
	"github.com/yeai-tech/catalog-api/internal/repository"
	"github.com/yeai-tech/catalog-api/internal/viewguard"
)

const corsMaxAgeHours = 12

// Deps carries everything the route handlers need.
type Deps struct {
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

func NewRouter(cfg *config.Config, deps Deps) *gin.Engine {
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// CORS middleware - must be first
	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.CORSOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Content-Length", "Accept-Encoding",
			"X-CSRF-Token", "Authorization", "accept", "origin",
			"Cache-Control", "X-Requested-With", "X-Session-Key",
		},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           corsMaxAgeHours * time.Hour,
	}))

	// Middleware
	router.Use(ginLogger(deps.Logger))
	router.Use(gin.Recovery())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	postHandler := handlers.NewPostHandler(deps.Posts, deps.Assets, deps.Logger)
	newsHandler := handlers.NewNewsHandler(deps.News, deps.Assets, deps.Logger)
	categoryHandler := handlers.NewCategoryHandler(deps.Posts, deps.News, deps.Logger)
	viewHandler := handlers.NewViewHandler(deps.Posts, deps.Guard, deps.Logger)
	bookmarkHandler := handlers.NewBookmarkHandler(deps.Bookmarks, deps.Submissions, deps.Assets, deps.Logger)
	submissionHandler := handlers.NewSubmissionHandler(
		deps.Moderation, deps.Submissions, deps.Notifier, deps.Assets, deps.Logger)

	// Catalog listings
	router.GET("/postsByCategory", postHandler.ListByCategory)
	router.GET("/postById/:id", postHandler.GetByID)
	router.GET("/popularPosts/:category", postHandler.Popular)
	router.GET("/trendingPosts", postHandler.Trending)
	router.GET("/postImage/:id", postHandler.Image)
	router.GET("/newsByCategory", newsHandler.ListByCategory)
	router.GET("/allCategories", categoryHandler.List)
	router.GET("/categories", categoryHandler.List)

	// View counting
	router.PUT("/updatePostView", viewHandler.Register)
	router.POST("/updatePostView", viewHandler.Register)

	// Bookmarks
	router.PUT("/toggleBookmark", bookmarkHandler.Toggle)
	router.PUT("/updateBookmark", bookmarkHandler.Add)
	router.DELETE("/removeBookmark", bookmarkHandler.Remove)
	router.GET("/getBookmarks", bookmarkHandler.ListIDs)
	router.GET("/getBookmarkPosts", bookmarkHandler.ListPosts)
	router.GET("/bookmarked-posts/:userId", bookmarkHandler.ListPosts)

	// Submission workflow
	router.POST("/send-email", submissionHandler.Submit)
	router.GET("/update-tool-status", submissionHandler.Decide)
	router.POST("/report-issue", submissionHandler.ReportIssue)
	router.GET("/added-posts/:userId", submissionHandler.AddedPosts)

	return router
}

func ginLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		log.Info("HTTP request",
			logger.String("method", method),
			logger.String("path", path),
			logger.Int("status_code", statusCode),
			logger.String("client_ip", c.ClientIP()),
			logger.Duration("duration", duration),
		)
	}
}
