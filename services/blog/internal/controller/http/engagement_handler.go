package http

import (
	"errors"
	"io"
	"net/http"

	"inkwell/pkg/logger"
	"inkwell/services/blog/internal/entity"
	"inkwell/services/blog/internal/usecase"

	"github.com/gin-gonic/gin"
)

type EngagementHandler struct {
	engagementUseCase usecase.EngagementUseCase
	logger            *logger.Logger
}

func NewEngagementHandler(engagementUseCase usecase.EngagementUseCase, logger *logger.Logger) *EngagementHandler {
	return &EngagementHandler{
		engagementUseCase: engagementUseCase,
		logger:            logger,
	}
}

type ClapRequest struct {
	PostUID   string `json:"post_uid" binding:"required"`
	Increment int    `json:"increment"`
}

type ClapResponse struct {
	entity.Clap
	ClapTotal int64 `json:"clap_total"`
}

type BookmarkRequest struct {
	PostUID string `json:"post_uid"`
}

// AddClap godoc
// @Summary      Clap for a post
// @Description  Adds increment claps (default 1) to the caller's count for the post.
// @Tags         claps
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body ClapRequest true "Clap data"
// @Success      200  {object}  ClapResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /claps [post]
func (h *EngagementHandler) AddClap(c *gin.Context) {
	var req ClapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "post_uid is required"})
		return
	}

	actor := currentActor(c)
	clap, total, err := h.engagementUseCase.AddClap(c.Request.Context(), actor.UserUID, req.PostUID, req.Increment)
	if err != nil {
		respondError(c, h.logger, err, "add clap")
		return
	}

	c.JSON(http.StatusOK, ClapResponse{Clap: *clap, ClapTotal: total})
}

// AddBookmark godoc
// @Summary      Bookmark a post
// @Description  Idempotent. Bookmarking an already bookmarked post succeeds with created=false.
// @Tags         bookmarks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body BookmarkRequest true "Bookmark data"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /bookmarks [post]
func (h *EngagementHandler) AddBookmark(c *gin.Context) {
	postUID, ok := bookmarkPostUID(c)
	if !ok {
		return
	}

	actor := currentActor(c)
	created, err := h.engagementUseCase.AddBookmark(c.Request.Context(), actor.UserUID, postUID)
	if err != nil {
		respondError(c, h.logger, err, "add bookmark")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_uid":   actor.UserUID,
		"post_uid":   postUID,
		"bookmarked": true,
		"created":    created,
	})
}

// RemoveBookmark godoc
// @Summary      Remove a bookmark
// @Description  Idempotent. Removing a missing bookmark succeeds.
// @Tags         bookmarks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body   BookmarkRequest false "Bookmark data"
// @Param        post_uid query  string          false "Post uid when no body is sent"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /bookmarks [delete]
func (h *EngagementHandler) RemoveBookmark(c *gin.Context) {
	postUID, ok := bookmarkPostUID(c)
	if !ok {
		return
	}

	actor := currentActor(c)
	if err := h.engagementUseCase.RemoveBookmark(c.Request.Context(), actor.UserUID, postUID); err != nil {
		respondError(c, h.logger, err, "remove bookmark")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Bookmark removed successfully"})
}

// ListBookmarks godoc
// @Summary      List bookmarked posts
// @Description  The caller's bookmarked posts, newest bookmark first.
// @Tags         bookmarks
// @Produce      json
// @Security     BearerAuth
// @Param        page  query int false "Page number (default 1)"
// @Param        limit query int false "Page size (default 10, max 100)"
// @Success      200  {array}   entity.Post
// @Failure      500  {object}  map[string]string
// @Router       /bookmarks [get]
func (h *EngagementHandler) ListBookmarks(c *gin.Context) {
	actor := currentActor(c)
	posts, err := h.engagementUseCase.ListBookmarks(c.Request.Context(), actor.UserUID, pageFilter(c))
	if err != nil {
		respondError(c, h.logger, err, "list bookmarks")
		return
	}

	c.JSON(http.StatusOK, posts)
}

// bookmarkPostUID reads post_uid from the JSON body, falling back to the
// query string for clients that cannot send a DELETE body.
func bookmarkPostUID(c *gin.Context) (string, bool) {
	var req BookmarkRequest
	if c.Request.Body != nil && c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
			return "", false
		}
	}
	if req.PostUID == "" {
		req.PostUID = c.Query("post_uid")
	}
	if req.PostUID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "post_uid is required"})
		return "", false
	}
	return req.PostUID, true
}
