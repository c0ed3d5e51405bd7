package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/looplj/chirphub/internal/server/biz"
)

type ProfileHandlersParams struct {
	fx.In

	AuthService    *biz.AuthService
	ProfileService *biz.ProfileService
}

func NewProfileHandlers(params ProfileHandlersParams) *ProfileHandlers {
	return &ProfileHandlers{
		AuthService:    params.AuthService,
		ProfileService: params.ProfileService,
	}
}

type ProfileHandlers struct {
	AuthService    *biz.AuthService
	ProfileService *biz.ProfileService
}

// GetProfile returns the profile of a user by id.
func (h *ProfileHandlers) GetProfile(c *gin.Context) {
	ctx := c.Request.Context()

	profile, err := h.ProfileService.Get(ctx, c.Param("userID"))
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

type UpsertProfileRequest struct {
	Username string `json:"username" binding:"required"`
}

// UpsertProfile creates or updates the caller's own profile.
func (h *ProfileHandlers) UpsertProfile(c *gin.Context) {
	var (
		ctx = c.Request.Context()
		req UpsertProfileRequest
	)

	err := c.ShouldBindJSON(&req)
	if err != nil {
		JSONError(c, http.StatusBadRequest, errors.New("invalid request format"))
		return
	}

	userID, err := h.AuthService.CurrentUserID(ctx)
	if err != nil {
		serviceError(c, err)
		return
	}

	profile, err := h.ProfileService.UpsertSelf(ctx, userID, req.Username)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}
