package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/looplj/chirphub/internal/objects"
	"github.com/looplj/chirphub/internal/server/biz"
)

// JSONError returns a JSON error response and adds the error to gin context for access logging.
func JSONError(c *gin.Context, status int, err error) {
	_ = c.Error(err)
	c.JSON(status, objects.ErrorResponse{
		Error: objects.Error{
			Type:    http.StatusText(status),
			Message: err.Error(),
		},
	})
}

// serviceError maps service errors onto HTTP statuses. A denied row reads as
// absent, so denials surface as 404 rather than 403.
func serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, biz.ErrNotFound):
		JSONError(c, http.StatusNotFound, errors.New("not found"))
	case errors.Is(err, biz.ErrUnauthorized):
		JSONError(c, http.StatusUnauthorized, errors.New("authentication required"))
	case errors.Is(err, biz.ErrInvalidInput):
		JSONError(c, http.StatusBadRequest, errors.New("invalid request"))
	default:
		JSONError(c, http.StatusInternalServerError, errors.New("internal server error"))
	}
}
