package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/looplj/chirphub/internal/log"
)

// Recovery converts handler panics into a 500 response instead of tearing
// down the connection.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error(c.Request.Context(), "panic recovered",
					log.String("path", c.Request.URL.Path),
					log.Any("panic", r),
				)

				AbortWithError(c, http.StatusInternalServerError, errors.New("internal server error"))
			}
		}()

		c.Next()
	}
}
