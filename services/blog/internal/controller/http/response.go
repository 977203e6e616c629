package http

import (
	"errors"
	"net/http"
	"strconv"

	"inkwell/pkg/logger"
	"inkwell/pkg/middleware"
	"inkwell/services/blog/internal/entity"

	"github.com/gin-gonic/gin"
)

const serverErrorMessage = "Server Error"

// respondError writes the status for a known error kind with its message.
// Anything else is logged and reported as a bare server error.
func respondError(c *gin.Context, log *logger.Logger, err error, action string) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, entity.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, entity.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, entity.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, entity.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, entity.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, entity.ErrTooManyRequests):
		status = http.StatusTooManyRequests
	}

	if status == http.StatusInternalServerError {
		log.Error("Failed to %s: %v", action, err)
		c.JSON(status, gin.H{"message": serverErrorMessage})
		return
	}
	c.JSON(status, gin.H{"message": err.Error()})
}

func currentActor(c *gin.Context) entity.Actor {
	userID, isAdmin := middleware.CurrentUser(c)
	return entity.Actor{UserUID: userID, IsAdmin: isAdmin}
}

// pageFilter reads page and limit. Values that do not parse are left at
// zero and replaced with defaults on normalization.
func pageFilter(c *gin.Context) entity.PostFilter {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	return entity.PostFilter{Page: page, Limit: limit}.Normalize()
}
