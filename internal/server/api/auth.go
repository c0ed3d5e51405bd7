package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/looplj/chirphub/internal/server/biz"
)

type AuthHandlersParams struct {
	fx.In

	AuthService    *biz.AuthService
	ProfileService *biz.ProfileService
}

func NewAuthHandlers(params AuthHandlersParams) *AuthHandlers {
	return &AuthHandlers{
		AuthService:    params.AuthService,
		ProfileService: params.ProfileService,
	}
}

type AuthHandlers struct {
	AuthService    *biz.AuthService
	ProfileService *biz.ProfileService
}

type TokenRequest struct {
	UserID string `json:"userID" binding:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

// Token mints a bearer token for a user id. Identity is established by a
// trusted upstream; this endpoint only encodes it.
func (h *AuthHandlers) Token(c *gin.Context) {
	var (
		ctx = c.Request.Context()
		req TokenRequest
	)

	err := c.ShouldBindJSON(&req)
	if err != nil {
		JSONError(c, http.StatusBadRequest, errors.New("invalid request format"))
		return
	}

	token, err := h.AuthService.GenerateToken(ctx, req.UserID)
	if err != nil {
		JSONError(c, http.StatusInternalServerError, errors.New("internal server error"))
		return
	}

	c.JSON(http.StatusOK, TokenResponse{Token: token})
}

// Me returns the caller's own profile.
func (h *AuthHandlers) Me(c *gin.Context) {
	ctx := c.Request.Context()

	userID, err := h.AuthService.CurrentUserID(ctx)
	if err != nil {
		serviceError(c, err)
		return
	}

	profile, err := h.ProfileService.Get(ctx, userID)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// MeAdmin reports the caller's admin status.
func (h *AuthHandlers) MeAdmin(c *gin.Context) {
	ctx := c.Request.Context()

	isAdmin, err := h.ProfileService.IsAdmin(ctx, "")
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"isAdmin": isAdmin})
}
