package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"inkwell/pkg/jwt"
	"inkwell/pkg/logger"
	"inkwell/services/blog/internal/entity"
	"inkwell/services/blog/internal/repo/persistent"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	passwordResetTTL      = time.Hour
	passwordResetCooldown = time.Minute
)

type UserUseCase interface {
	Register(ctx context.Context, name, email, password string) (*entity.User, string, error)
	Login(ctx context.Context, email, password string) (*entity.User, string, error)
	GetUser(ctx context.Context, uid string) (*entity.User, error)
	UpdateUser(ctx context.Context, actor entity.Actor, uid string, changes entity.UserUpdate) (*entity.User, error)
	RequestPasswordReset(ctx context.Context, email string) (*entity.PasswordReset, error)
}

type userUseCase struct {
	userRepo   persistent.UserRepository
	jwtService *jwt.Service
	throttle   Throttle
	logger     *logger.Logger
	now        func() time.Time
}

func NewUserUseCase(
	userRepo persistent.UserRepository,
	jwtService *jwt.Service,
	throttle Throttle,
	logger *logger.Logger,
) UserUseCase {
	return &userUseCase{
		userRepo:   userRepo,
		jwtService: jwtService,
		throttle:   throttle,
		logger:     logger,
		now:        time.Now,
	}
}

func (uc *userUseCase) Register(ctx context.Context, name, email, password string) (*entity.User, string, error) {
	email = strings.TrimSpace(email)
	if strings.TrimSpace(name) == "" || email == "" || password == "" {
		return nil, "", entity.NewValidationError("Missing required fields")
	}

	_, err := uc.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, "", entity.NewValidationError("User already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		uc.logger.Error("Failed to hash password: %v", err)
		return nil, "", fmt.Errorf("failed to process registration: %w", err)
	}

	now := uc.now().Unix()
	user := &entity.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, entity.ErrConflict) {
			return nil, "", entity.NewValidationError("User already exists")
		}
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := uc.jwtService.GenerateToken(user.UID, user.Email, user.IsAdmin)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	return user, token, nil
}

func (uc *userUseCase) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	if email == "" || password == "" {
		return nil, "", entity.NewValidationError("Missing required fields")
	}

	user, err := uc.userRepo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", entity.NewValidationError("Invalid credentials")
		}
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", entity.NewValidationError("Invalid credentials")
	}

	token, err := uc.jwtService.GenerateToken(user.UID, user.Email, user.IsAdmin)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	return user, token, nil
}

func (uc *userUseCase) GetUser(ctx context.Context, uid string) (*entity.User, error) {
	user, err := uc.userRepo.GetByUID(ctx, uid)
	if err != nil {
		return nil, notFound(err, "User not found")
	}
	return user, nil
}

func (uc *userUseCase) UpdateUser(ctx context.Context, actor entity.Actor, uid string, changes entity.UserUpdate) (*entity.User, error) {
	if !actor.CanModify(uid) {
		return nil, entity.NewForbiddenError("Not authorized to update this user")
	}
	if changes.Name != nil && strings.TrimSpace(*changes.Name) == "" {
		return nil, entity.NewValidationError("Name cannot be empty")
	}

	if err := uc.userRepo.Update(ctx, uid, changes, uc.now().Unix()); err != nil {
		return nil, notFound(err, "User not found")
	}
	return uc.GetUser(ctx, uid)
}

// RequestPasswordReset issues a one hour reset token. Requests for the same
// email are limited to one per minute when a throttle is configured.
func (uc *userUseCase) RequestPasswordReset(ctx context.Context, email string) (*entity.PasswordReset, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, entity.NewValidationError("user_email is required")
	}

	if _, err := uc.userRepo.GetByEmail(ctx, email); err != nil {
		return nil, notFound(err, "User not found")
	}

	if uc.throttle != nil {
		allowed, err := uc.throttle.SetNX(ctx, "password_reset:"+strings.ToLower(email), 1, passwordResetCooldown).Result()
		if err != nil {
			uc.logger.Warn("Password reset throttle unavailable: %v", err)
		} else if !allowed {
			return nil, entity.NewTooManyRequestsError("Password reset already requested, try again later")
		}
	}

	now := uc.now()
	reset := &entity.PasswordReset{
		UserEmail: email,
		Token:     uuid.New().String(),
		CreatedAt: now.Unix(),
		ExpireAt:  now.Add(passwordResetTTL).Unix(),
	}
	if err := uc.userRepo.CreatePasswordReset(ctx, reset); err != nil {
		return nil, fmt.Errorf("failed to create password reset: %w", err)
	}
	return reset, nil
}
