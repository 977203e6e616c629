package main

import (
	"inkwell/pkg/cache"
	"inkwell/pkg/config"
	"inkwell/pkg/database"
	"inkwell/pkg/logger"
	"inkwell/pkg/queue"
	"inkwell/pkg/s3"
	"inkwell/services/blog/internal/app"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// @title           Inkwell Blog API
// @version         1.0
// @description     Posts, tags, claps, bookmarks and comments for the Inkwell blogging platform.

// @host      localhost:1337
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func init() {
	gin.SetMode(gin.ReleaseMode)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if cfg.JWTSecret == "your-secret-key-change-in-production" || cfg.JWTSecret == "" {
		panic("JWT_SECRET must be set in environment variables")
	}

	log := logger.New()

	db, err := database.NewPostgresDB(cfg, log)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	// Migrations are handled by goose - see cmd/migrate/main.go

	var redisClient *redis.Client
	if client, err := cache.NewRedisClient(cfg); err != nil {
		log.Warn("Redis unavailable, rate limiting and reset throttling disabled: %v", err)
	} else {
		redisClient = client
	}

	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Warn("RabbitMQ unavailable, events will not be published: %v", err)
		queueClient = nil
	}

	var s3Client *s3.Client
	if cfg.AWSAccessKeyID != "" {
		s3Client, err = s3.NewClient(cfg)
		if err != nil {
			log.Warn("S3 unavailable, image uploads disabled: %v", err)
			s3Client = nil
		}
	}

	app.Run(cfg, log, db, s3Client, queueClient, redisClient)
}
