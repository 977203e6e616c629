package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"inkwell/pkg/config"
	"inkwell/pkg/jwt"
	"inkwell/pkg/logger"
	"inkwell/pkg/middleware"
	"inkwell/pkg/queue"
	"inkwell/pkg/s3"
	blogHTTP "inkwell/services/blog/internal/controller/http"
	"inkwell/services/blog/internal/repo/persistent"
	"inkwell/services/blog/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "inkwell/services/blog/docs" // Swagger docs
)

// Run wires the blog service and serves it until SIGINT or SIGTERM.
// The S3, RabbitMQ and Redis clients are optional and may be nil.
func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, s3Client *s3.Client, queueClient *queue.Client, redisClient *redis.Client) {
	jwtService := jwt.NewService(cfg.JWTSecret)

	// Optional collaborators stay nil interfaces when their client is missing
	var (
		storage   usecase.ImageStorage
		publisher usecase.EventPublisher
		throttle  usecase.Throttle
		counter   middleware.Counter
	)
	if s3Client != nil {
		storage = s3Client
	}
	if queueClient != nil {
		publisher = queueClient
	}
	if redisClient != nil {
		throttle = redisClient
		counter = redisClient
	}

	// Initialize repositories
	postRepo := persistent.NewPostRepository(db)
	tagRepo := persistent.NewTagRepository(db)
	engagementRepo := persistent.NewEngagementRepository(db)
	commentRepo := persistent.NewCommentRepository(db)
	reportRepo := persistent.NewReportRepository(db)
	userRepo := persistent.NewUserRepository(db)

	// Initialize use cases
	postUseCase := usecase.NewPostUseCase(postRepo, tagRepo, storage, publisher, cfg.StrictTags(), log)
	engagementUseCase := usecase.NewEngagementUseCase(engagementRepo, postRepo, log)
	commentUseCase := usecase.NewCommentUseCase(commentRepo, postRepo, log)
	tagUseCase := usecase.NewTagUseCase(tagRepo)
	reportUseCase := usecase.NewReportUseCase(reportRepo, publisher, log)
	userUseCase := usecase.NewUserUseCase(userRepo, jwtService, throttle, log)

	// Initialize HTTP handlers
	postHandler := blogHTTP.NewPostHandler(postUseCase, log)
	engagementHandler := blogHTTP.NewEngagementHandler(engagementUseCase, log)
	commentHandler := blogHTTP.NewCommentHandler(commentUseCase, log)
	tagHandler := blogHTTP.NewTagHandler(tagUseCase, log)
	reportHandler := blogHTTP.NewReportHandler(reportUseCase, log)
	userHandler := blogHTTP.NewUserHandler(userUseCase, log)

	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	{
		api.POST("/users/register", userHandler.Register)
		api.POST("/users/login", userHandler.Login)
		api.POST("/password_resets", userHandler.RequestPasswordReset)

		api.GET("/posts", postHandler.ListPosts)
		api.GET("/posts/:uid", postHandler.GetPost)
		api.GET("/posts/:uid/comments", commentHandler.ListComments)
		api.GET("/tags", tagHandler.ListTags)
	}

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(jwtService))
	protected.Use(middleware.RateLimitMiddleware(counter, cfg.RateLimitPerMinute, time.Minute))
	{
		protected.GET("/users/:uid", userHandler.GetUser)
		protected.PUT("/users/:uid", userHandler.UpdateUser)

		protected.POST("/posts", postHandler.CreatePost)
		protected.POST("/posts/images", postHandler.UploadImage)
		protected.PUT("/posts/:uid", postHandler.UpdatePost)
		protected.PUT("/posts/:uid/tags", postHandler.SetPostTags)
		protected.DELETE("/posts/:uid", postHandler.DeletePost)

		protected.POST("/posts/:uid/comments", commentHandler.CreateComment)
		protected.PUT("/comments/:uid", commentHandler.UpdateComment)
		protected.DELETE("/comments/:uid", commentHandler.DeleteComment)

		protected.POST("/claps", engagementHandler.AddClap)
		protected.GET("/bookmarks", engagementHandler.ListBookmarks)
		protected.POST("/bookmarks", engagementHandler.AddBookmark)
		protected.DELETE("/bookmarks", engagementHandler.RemoveBookmark)

		protected.POST("/reports", reportHandler.CreateReport)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	go func() {
		log.Info("Blog service starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down blog service...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Close database connection
	sqlDB, err := db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error("Error closing database: %v", err)
		}
	}

	// Close Redis connection
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing Redis: %v", err)
		}
	}

	// Close RabbitMQ connection
	if queueClient != nil {
		queueClient.Close()
	}

	log.Info("Blog service exited")
}
