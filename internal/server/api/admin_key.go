package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/looplj/chirphub/internal/objects"
	"github.com/looplj/chirphub/internal/server/biz"
)

type AdminKeyHandlersParams struct {
	fx.In

	AuthService       *biz.AuthService
	ProfileService    *biz.ProfileService
	AdminKeyService   *biz.AdminKeyService
	RedemptionService *biz.RedemptionService
}

func NewAdminKeyHandlers(params AdminKeyHandlersParams) *AdminKeyHandlers {
	return &AdminKeyHandlers{
		AuthService:       params.AuthService,
		ProfileService:    params.ProfileService,
		AdminKeyService:   params.AdminKeyService,
		RedemptionService: params.RedemptionService,
	}
}

type AdminKeyHandlers struct {
	AuthService       *biz.AuthService
	ProfileService    *biz.ProfileService
	AdminKeyService   *biz.AdminKeyService
	RedemptionService *biz.RedemptionService
}

type RedeemRequest struct {
	KeyCode string `json:"keyCode" binding:"required"`
}

// Redeem consumes an admin key for the caller. The response only says
// whether redemption happened; it never explains a failure.
func (h *AdminKeyHandlers) Redeem(c *gin.Context) {
	var (
		ctx = c.Request.Context()
		req RedeemRequest
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

	redeemed := h.RedemptionService.Redeem(ctx, req.KeyCode, userID)

	c.JSON(http.StatusOK, objects.RedemptionResult{Redeemed: redeemed})
}

type SeedKeysRequest struct {
	Codes []string `json:"codes" binding:"required"`
}

// SeedKeys inserts new admin keys. Admin-only.
func (h *AdminKeyHandlers) SeedKeys(c *gin.Context) {
	var (
		ctx = c.Request.Context()
		req SeedKeysRequest
	)

	err := c.ShouldBindJSON(&req)
	if err != nil {
		JSONError(c, http.StatusBadRequest, errors.New("invalid request format"))
		return
	}

	isAdmin, err := h.ProfileService.IsAdmin(ctx, "")
	if err != nil {
		serviceError(c, err)
		return
	}

	if !isAdmin {
		JSONError(c, http.StatusNotFound, errors.New("not found"))
		return
	}

	err = h.AdminKeyService.Seed(ctx, req.Codes)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"seeded": len(req.Codes)})
}
