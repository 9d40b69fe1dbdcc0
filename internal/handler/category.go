package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/iceymoss/echo-news/internal/repo"
)

type CategoryHandler struct {
	categories *repo.CategoryRepo
}

func NewCategoryHandler(categories *repo.CategoryRepo) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

func (h *CategoryHandler) List(c *gin.Context) {
	list, err := h.categories.List(c.Request.Context())
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, list)
}
