package usecase

import (
	"context"
	"errors"
	"io"
	"time"

	"inkwell/services/blog/internal/entity"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// EventPublisher is satisfied by *queue.Client.
type EventPublisher interface {
	Publish(routingKey string, event map[string]interface{}) error
}

// ImageStorage is satisfied by *s3.Client.
type ImageStorage interface {
	UploadFile(key string, body io.Reader, contentType string) (string, error)
}

// Throttle is the subset of *redis.Client used to rate limit password resets.
type Throttle interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
}

// notFound turns a missing-row error into a caller-facing not-found error.
func notFound(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entity.NewNotFoundError(message)
	}
	return err
}
