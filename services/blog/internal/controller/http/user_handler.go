package http

import (
	"net/http"

	"inkwell/pkg/logger"
	"inkwell/services/blog/internal/entity"
	"inkwell/services/blog/internal/usecase"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userUseCase usecase.UserUseCase
	logger      *logger.Logger
}

func NewUserHandler(userUseCase usecase.UserUseCase, logger *logger.Logger) *UserHandler {
	return &UserHandler{userUseCase: userUseCase, logger: logger}
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateUserRequest struct {
	Name         *string           `json:"name"`
	Bio          *string           `json:"bio"`
	ProfileImage *string           `json:"profile_image"`
	SocialLinks  map[string]string `json:"social_links"`
}

type PasswordResetRequest struct {
	UserEmail string `json:"user_email"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *entity.User `json:"user"`
}

// Register godoc
// @Summary      Register a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Registration data"
// @Success      201  {object}  AuthResponse
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /users/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required fields"})
		return
	}

	user, token, err := h.userUseCase.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		respondError(c, h.logger, err, "register user")
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{Token: token, User: user})
}

// Login godoc
// @Summary      Log in
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Credentials"
// @Success      200  {object}  AuthResponse
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /users/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required fields"})
		return
	}

	user, token, err := h.userUseCase.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.logger, err, "log in user")
		return
	}

	c.JSON(http.StatusOK, AuthResponse{Token: token, User: user})
}

// GetUser godoc
// @Summary      Get user profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        uid path string true "User uid"
// @Success      200  {object}  entity.User
// @Failure      404  {object}  map[string]string
// @Router       /users/{uid} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userUseCase.GetUser(c.Request.Context(), c.Param("uid"))
	if err != nil {
		respondError(c, h.logger, err, "get user")
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateUser godoc
// @Summary      Update user profile
// @Description  Partial update of name, bio, profile image and social links. Self or admin only.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        uid path string true "User uid"
// @Param        request body UpdateUserRequest true "Fields to change"
// @Success      200  {object}  entity.User
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /users/{uid} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	user, err := h.userUseCase.UpdateUser(c.Request.Context(), currentActor(c), c.Param("uid"), entity.UserUpdate{
		Name:         req.Name,
		Bio:          req.Bio,
		ProfileImage: req.ProfileImage,
		SocialLinks:  req.SocialLinks,
	})
	if err != nil {
		respondError(c, h.logger, err, "update user")
		return
	}

	c.JSON(http.StatusOK, user)
}

// RequestPasswordReset godoc
// @Summary      Request a password reset token
// @Description  Issues a token valid for one hour. Limited to one request per email per minute.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body PasswordResetRequest true "Account email"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      429  {object}  map[string]string
// @Router       /password_resets [post]
func (h *UserHandler) RequestPasswordReset(c *gin.Context) {
	var req PasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "user_email is required"})
		return
	}

	reset, err := h.userUseCase.RequestPasswordReset(c.Request.Context(), req.UserEmail)
	if err != nil {
		respondError(c, h.logger, err, "request password reset")
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": reset.Token, "expire_at": reset.ExpireAt})
}
