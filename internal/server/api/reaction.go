package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/looplj/chirphub/internal/server/biz"
	"github.com/looplj/chirphub/internal/storage"
)

type ReactionHandlersParams struct {
	fx.In

	ReactionService *biz.ReactionService
}

func NewReactionHandlers(params ReactionHandlersParams) *ReactionHandlers {
	return &ReactionHandlers{
		ReactionService: params.ReactionService,
	}
}

type ReactionHandlers struct {
	ReactionService *biz.ReactionService
}

func reactionKind(c *gin.Context) storage.ReactionKind {
	return storage.ReactionKind(c.Param("kind"))
}

func (h *ReactionHandlers) CreateReaction(c *gin.Context) {
	reaction, err := h.ReactionService.Create(c.Request.Context(), reactionKind(c), c.Param("postID"))
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, reaction)
}

func (h *ReactionHandlers) GetReaction(c *gin.Context) {
	reaction, err := h.ReactionService.Get(c.Request.Context(), reactionKind(c), c.Param("reactionID"))
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, reaction)
}

func (h *ReactionHandlers) DeleteReaction(c *gin.Context) {
	err := h.ReactionService.Delete(c.Request.Context(), reactionKind(c), c.Param("reactionID"))
	if err != nil {
		serviceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
