package http

import (
	"net/http"

	"inkwell/pkg/logger"
	"inkwell/services/blog/internal/usecase"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentUseCase usecase.CommentUseCase
	logger         *logger.Logger
}

func NewCommentHandler(commentUseCase usecase.CommentUseCase, logger *logger.Logger) *CommentHandler {
	return &CommentHandler{
		commentUseCase: commentUseCase,
		logger:         logger,
	}
}

type CreateCommentRequest struct {
	Content          string  `json:"content"`
	ParentCommentUID *string `json:"parent_comment_uid"`
}

type UpdateCommentRequest struct {
	Content string `json:"content"`
}

// CreateComment godoc
// @Summary      Comment on a post
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        uid path string true "Post uid"
// @Param        request body CreateCommentRequest true "Comment data"
// @Success      201  {object}  entity.Comment
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{uid}/comments [post]
func (h *CommentHandler) CreateComment(c *gin.Context) {
	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	actor := currentActor(c)
	comment, err := h.commentUseCase.CreateComment(c.Request.Context(), actor.UserUID, c.Param("uid"), req.Content, req.ParentCommentUID)
	if err != nil {
		respondError(c, h.logger, err, "create comment")
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// ListComments godoc
// @Summary      List comments of a post
// @Description  Oldest first.
// @Tags         comments
// @Produce      json
// @Param        uid path string true "Post uid"
// @Success      200  {array}   entity.Comment
// @Failure      404  {object}  map[string]string
// @Router       /posts/{uid}/comments [get]
func (h *CommentHandler) ListComments(c *gin.Context) {
	comments, err := h.commentUseCase.ListComments(c.Request.Context(), c.Param("uid"))
	if err != nil {
		respondError(c, h.logger, err, "list comments")
		return
	}

	c.JSON(http.StatusOK, comments)
}

// UpdateComment godoc
// @Summary      Edit a comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        uid path string true "Comment uid"
// @Param        request body UpdateCommentRequest true "New content"
// @Success      200  {object}  entity.Comment
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /comments/{uid} [put]
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	var req UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	comment, err := h.commentUseCase.UpdateComment(c.Request.Context(), currentActor(c), c.Param("uid"), req.Content)
	if err != nil {
		respondError(c, h.logger, err, "update comment")
		return
	}

	c.JSON(http.StatusOK, comment)
}

// DeleteComment godoc
// @Summary      Delete a comment
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        uid path string true "Comment uid"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /comments/{uid} [delete]
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	if err := h.commentUseCase.DeleteComment(c.Request.Context(), currentActor(c), c.Param("uid")); err != nil {
		respondError(c, h.logger, err, "delete comment")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}
