package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/looplj/chirphub/internal/server/biz"
)

type CommentHandlersParams struct {
	fx.In

	CommentService *biz.CommentService
}

func NewCommentHandlers(params CommentHandlersParams) *CommentHandlers {
	return &CommentHandlers{
		CommentService: params.CommentService,
	}
}

type CommentHandlers struct {
	CommentService *biz.CommentService
}

type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *CommentHandlers) CreateComment(c *gin.Context) {
	var (
		ctx = c.Request.Context()
		req CreateCommentRequest
	)

	err := c.ShouldBindJSON(&req)
	if err != nil {
		JSONError(c, http.StatusBadRequest, errors.New("invalid request format"))
		return
	}

	comment, err := h.CommentService.Create(ctx, c.Param("postID"), req.Content)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

func (h *CommentHandlers) GetComment(c *gin.Context) {
	comment, err := h.CommentService.Get(c.Request.Context(), c.Param("commentID"))
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, comment)
}

func (h *CommentHandlers) ListComments(c *gin.Context) {
	comments, err := h.CommentService.ListByPost(c.Request.Context(), c.Param("postID"))
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *CommentHandlers) UpdateComment(c *gin.Context) {
	var (
		ctx = c.Request.Context()
		req UpdateCommentRequest
	)

	err := c.ShouldBindJSON(&req)
	if err != nil {
		JSONError(c, http.StatusBadRequest, errors.New("invalid request format"))
		return
	}

	comment, err := h.CommentService.Update(ctx, c.Param("commentID"), req.Content)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, comment)
}
