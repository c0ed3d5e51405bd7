package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/looplj/chirphub/internal/server/biz"
	"github.com/looplj/chirphub/internal/storage"
)

type PostHandlersParams struct {
	fx.In

	PostService *biz.PostService
}

func NewPostHandlers(params PostHandlersParams) *PostHandlers {
	return &PostHandlers{
		PostService: params.PostService,
	}
}

type PostHandlers struct {
	PostService *biz.PostService
}

type CreatePostRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *PostHandlers) CreatePost(c *gin.Context) {
	var (
		ctx = c.Request.Context()
		req CreatePostRequest
	)

	err := c.ShouldBindJSON(&req)
	if err != nil {
		JSONError(c, http.StatusBadRequest, errors.New("invalid request format"))
		return
	}

	post, err := h.PostService.Create(ctx, req.Content)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

func (h *PostHandlers) GetPost(c *gin.Context) {
	post, err := h.PostService.Get(c.Request.Context(), c.Param("postID"))
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

type UpdatePostRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *PostHandlers) UpdatePost(c *gin.Context) {
	var (
		ctx = c.Request.Context()
		req UpdatePostRequest
	)

	err := c.ShouldBindJSON(&req)
	if err != nil {
		JSONError(c, http.StatusBadRequest, errors.New("invalid request format"))
		return
	}

	post, err := h.PostService.Update(ctx, c.Param("postID"), req.Content)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

type ModeratePostRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *PostHandlers) ModeratePost(c *gin.Context) {
	var (
		ctx = c.Request.Context()
		req ModeratePostRequest
	)

	err := c.ShouldBindJSON(&req)
	if err != nil {
		JSONError(c, http.StatusBadRequest, errors.New("invalid request format"))
		return
	}

	post, err := h.PostService.Moderate(ctx, c.Param("postID"), storage.PostStatus(req.Status))
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *PostHandlers) DeletePost(c *gin.Context) {
	err := h.PostService.Delete(c.Request.Context(), c.Param("postID"))
	if err != nil {
		serviceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
