package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/looplj/chirphub/internal/server/biz"
)

// bearerToken extracts the bearer token from the Authorization header. An
// absent header is not an error; identity is optional on most routes.
func bearerToken(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", nil
	}

	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return "", errors.New("malformed authorization header")
	}

	return token, nil
}

// WithIdentity resolves the caller identity from the Authorization header.
// Requests without a token proceed anonymously; a present but invalid token
// is rejected rather than downgraded.
func WithIdentity(auth *biz.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c)
		if err != nil {
			AbortWithError(c, http.StatusUnauthorized, err)
			return
		}

		ctx, err := auth.ResolveIdentity(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, biz.ErrInvalidJWT) {
				AbortWithError(c, http.StatusUnauthorized, errors.New("invalid token"))
			} else {
				AbortWithError(c, http.StatusInternalServerError, errors.New("failed to resolve identity"))
			}

			return
		}

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireIdentity rejects anonymous requests. Routes that create content
// mount it after WithIdentity.
func RequireIdentity(auth *biz.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, err := auth.CurrentUserID(c.Request.Context())
		if err != nil {
			AbortWithError(c, http.StatusUnauthorized, errors.New("authentication required"))
			return
		}

		c.Next()
	}
}
