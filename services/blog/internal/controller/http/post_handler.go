package http

import (
	"net/http"
	"strings"

	"inkwell/pkg/logger"
	"inkwell/services/blog/internal/entity"
	"inkwell/services/blog/internal/usecase"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postUseCase usecase.PostUseCase
	logger      *logger.Logger
}

func NewPostHandler(postUseCase usecase.PostUseCase, logger *logger.Logger) *PostHandler {
	return &PostHandler{
		postUseCase: postUseCase,
		logger:      logger,
	}
}

type CreatePostRequest struct {
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	FeaturedImage *string  `json:"featured_image"`
	Status        string   `json:"status"`
	Tags          []string `json:"tags"`
}

// UpdatePostRequest uses pointers so that absent fields are left untouched.
// "tags": [] clears the tag set while an absent "tags" keeps it.
type UpdatePostRequest struct {
	Title         *string   `json:"title"`
	Content       *string   `json:"content"`
	FeaturedImage *string   `json:"featured_image"`
	Status        *string   `json:"status"`
	Tags          *[]string `json:"tags"`
}

type SetTagsRequest struct {
	Tags *[]string `json:"tags"`
}

// CreatePost godoc
// @Summary      Create a new post
// @Description  Create a post with optional tags. Status defaults to draft.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreatePostRequest true "Post data"
// @Success      201  {object}  entity.Post
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	actor := currentActor(c)
	post, err := h.postUseCase.CreatePost(c.Request.Context(), actor.UserUID, entity.PostInput{
		Title:         req.Title,
		Content:       req.Content,
		Status:        entity.PostStatus(req.Status),
		FeaturedImage: req.FeaturedImage,
		Tags:          req.Tags,
	})
	if err != nil {
		respondError(c, h.logger, err, "create post")
		return
	}

	c.JSON(http.StatusCreated, post)
}

// ListPosts godoc
// @Summary      List published posts
// @Description  Published posts, newest first, filtered by a search term on title or content and by tag.
// @Tags         posts
// @Produce      json
// @Param        search query string false "Case-insensitive substring of title or content"
// @Param        tag    query string false "Tag uid"
// @Param        page   query int    false "Page number (default 1)"
// @Param        limit  query int    false "Page size (default 10, max 100)"
// @Success      200  {array}   entity.Post
// @Failure      500  {object}  map[string]string
// @Router       /posts [get]
func (h *PostHandler) ListPosts(c *gin.Context) {
	filter := pageFilter(c)
	filter.Search = strings.TrimSpace(c.Query("search"))
	filter.Tag = strings.TrimSpace(c.Query("tag"))

	posts, err := h.postUseCase.ListPosts(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, err, "list posts")
		return
	}

	c.JSON(http.StatusOK, posts)
}

// GetPost godoc
// @Summary      Get post by uid
// @Description  Post details with author, tags and clap total.
// @Tags         posts
// @Produce      json
// @Param        uid path string true "Post uid"
// @Success      200  {object}  entity.Post
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /posts/{uid} [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	post, err := h.postUseCase.GetPost(c.Request.Context(), c.Param("uid"))
	if err != nil {
		respondError(c, h.logger, err, "get post")
		return
	}

	c.JSON(http.StatusOK, post)
}

// UpdatePost godoc
// @Summary      Update post
// @Description  Partial update. A present "tags" field replaces the whole tag set. Author or admin only.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        uid path string true "Post uid"
// @Param        request body UpdatePostRequest true "Fields to change"
// @Success      200  {object}  entity.Post
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /posts/{uid} [put]
func (h *PostHandler) UpdatePost(c *gin.Context) {
	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	changes := entity.PostUpdate{
		Title:         req.Title,
		Content:       req.Content,
		FeaturedImage: req.FeaturedImage,
		Tags:          req.Tags,
	}
	if req.Status != nil {
		status := entity.PostStatus(*req.Status)
		changes.Status = &status
	}

	post, err := h.postUseCase.UpdatePost(c.Request.Context(), currentActor(c), c.Param("uid"), changes)
	if err != nil {
		respondError(c, h.logger, err, "update post")
		return
	}

	c.JSON(http.StatusOK, post)
}

// SetPostTags godoc
// @Summary      Replace post tags
// @Description  Makes the given list the complete tag set. An absent "tags" field changes nothing.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        uid path string true "Post uid"
// @Param        request body SetTagsRequest true "Tag uids"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{uid}/tags [put]
func (h *PostHandler) SetPostTags(c *gin.Context) {
	var req SetTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	postUID := c.Param("uid")
	tags, err := h.postUseCase.SetPostTags(c.Request.Context(), currentActor(c), postUID, req.Tags)
	if err != nil {
		respondError(c, h.logger, err, "set post tags")
		return
	}

	c.JSON(http.StatusOK, gin.H{"post_uid": postUID, "tags": tags})
}

// DeletePost godoc
// @Summary      Delete post
// @Description  Deletes the post with its tags, claps, bookmarks and comments. Author or admin only.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        uid path string true "Post uid"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /posts/{uid} [delete]
func (h *PostHandler) DeletePost(c *gin.Context) {
	if err := h.postUseCase.DeletePost(c.Request.Context(), currentActor(c), c.Param("uid")); err != nil {
		respondError(c, h.logger, err, "delete post")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

// UploadImage godoc
// @Summary      Upload featured image
// @Description  Stores an image (jpg, png, gif, webp) and returns its public URL.
// @Tags         posts
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        image formData file true "Image file"
// @Success      201  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /posts/images [post]
func (h *PostHandler) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "image file is required"})
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		respondError(c, h.logger, err, "open uploaded image")
		return
	}
	defer src.Close()

	actor := currentActor(c)
	url, err := h.postUseCase.UploadFeaturedImage(
		c.Request.Context(),
		actor.UserUID,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		src,
	)
	if err != nil {
		respondError(c, h.logger, err, "upload image")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": url})
}
