package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/iceymoss/echo-news/internal/service"
	"github.com/iceymoss/echo-news/pkg/db/objects"
	"github.com/iceymoss/echo-news/pkg/xerr"
)

// InteractionHandler 点赞/收藏开关与清单
type InteractionHandler struct {
	interactions *service.InteractionService
}

func NewInteractionHandler(interactions *service.InteractionService) *InteractionHandler {
	return &InteractionHandler{interactions: interactions}
}

func (h *InteractionHandler) Like(c *gin.Context) {
	h.toggle(c, objects.InteractionLike)
}

func (h *InteractionHandler) Save(c *gin.Context) {
	h.toggle(c, objects.InteractionSave)
}

func (h *InteractionHandler) toggle(c *gin.Context, kind string) {
	id := paramUint(c, "id")
	if id == 0 {
		Fail(c, xerr.New(xerr.ErrBadRequest, "Requisição inválida."))
		return
	}
	result, err := h.interactions.Toggle(c.Request.Context(), CurrentUserID(c), id, kind)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, result)
}

func (h *InteractionHandler) Liked(c *gin.Context) {
	h.list(c, objects.InteractionLike)
}

func (h *InteractionHandler) Saved(c *gin.Context) {
	h.list(c, objects.InteractionSave)
}

func (h *InteractionHandler) list(c *gin.Context, kind string) {
	filter := service.ListFilter{
		Term:     c.Query("q"),
		Category: c.Query("categoria"),
	}
	var list []*objects.Article
	var err error
	if kind == objects.InteractionLike {
		list, err = h.interactions.Liked(c.Request.Context(), CurrentUserID(c), filter)
	} else {
		list, err = h.interactions.Saved(c.Request.Context(), CurrentUserID(c), filter)
	}
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, NewArticleViews(list))
}
