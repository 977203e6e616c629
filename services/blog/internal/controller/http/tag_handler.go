package http

import (
	"net/http"

	"inkwell/pkg/logger"
	"inkwell/services/blog/internal/usecase"

	"github.com/gin-gonic/gin"
)

type TagHandler struct {
	tagUseCase usecase.TagUseCase
	logger     *logger.Logger
}

func NewTagHandler(tagUseCase usecase.TagUseCase, logger *logger.Logger) *TagHandler {
	return &TagHandler{tagUseCase: tagUseCase, logger: logger}
}

// ListTags godoc
// @Summary      List tags
// @Description  All tags ordered by name.
// @Tags         tags
// @Produce      json
// @Success      200  {array}   entity.Tag
// @Failure      500  {object}  map[string]string
// @Router       /tags [get]
func (h *TagHandler) ListTags(c *gin.Context) {
	tags, err := h.tagUseCase.ListTags(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "list tags")
		return
	}

	c.JSON(http.StatusOK, tags)
}
