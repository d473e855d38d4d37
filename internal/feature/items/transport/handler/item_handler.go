// Package handler serves the anonymous items API.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"goal_backend/internal/feature/items/domain/entity"
	"goal_backend/internal/feature/items/transport/http/dto"
	"goal_backend/internal/feature/items/usecase"
	"goal_backend/internal/platform/apperr"
)

type ItemUsecase interface {
	List(ctx context.Context) ([]entity.Item, error)
	Create(ctx context.Context, name string) (*entity.Item, error)
	Delete(ctx context.Context, id string) error
}

type ItemHandler struct {
	items ItemUsecase
}

func NewItemHandler(items ItemUsecase) *ItemHandler {
	return &ItemHandler{items: items}
}

func (h *ItemHandler) List(c *gin.Context) {
	items, err := h.items.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewItemList(items))
}

func (h *ItemHandler) Create(c *gin.Context) {
	var req dto.ItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperr.Validation(usecase.MsgNameRequired))
		return
	}

	item, err := h.items.Create(c.Request.Context(), req.Name)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewItemRes(item))
}

func (h *ItemHandler) Delete(c *gin.Context) {
	if err := h.items.Delete(c.Request.Context(), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.DeleteItemRes{Success: true})
}
