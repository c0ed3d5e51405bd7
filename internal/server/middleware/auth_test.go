package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/looplj/chirphub/internal/authz"
	"github.com/looplj/chirphub/internal/server/biz"
)

func identityRouter(t *testing.T) (*gin.Engine, *biz.AuthService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	auth := biz.NewAuthService(biz.AuthConfig{SecretKey: "middleware-test-secret"})

	router := gin.New()
	router.Use(WithIdentity(auth))

	router.GET("/whoami", func(c *gin.Context) {
		userID, ok := authz.ActingUserID(c.Request.Context())
		if !ok {
			c.JSON(http.StatusOK, gin.H{"user": "anonymous"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"user": userID})
	})

	authed := router.Group("", RequireIdentity(auth))
	authed.GET("/private", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	return router, auth
}

func TestWithIdentity(t *testing.T) {
	router, auth := identityRouter(t)

	t.Run("valid token resolves user", func(t *testing.T) {
		token, err := auth.GenerateToken(context.Background(), "u1")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"user":"u1"`)
	})

	t.Run("no token proceeds anonymously", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"user":"anonymous"`)
	})

	t.Run("invalid token rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer bogus")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequireIdentity(t *testing.T) {
	router, auth := identityRouter(t)

	t.Run("anonymous blocked", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("authenticated allowed", func(t *testing.T) {
		token, err := auth.GenerateToken(context.Background(), "u1")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
