package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/iceymoss/echo-news/internal/service"
	"github.com/iceymoss/echo-news/pkg/xerr"
)

// ProfileHandler 兴趣档案
type ProfileHandler struct {
	profiles *service.ProfileService
}

func NewProfileHandler(profiles *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

func (h *ProfileHandler) Get(c *gin.Context) {
	profile, err := h.profiles.Get(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, profile)
}

func (h *ProfileHandler) UpdateInterests(c *gin.Context) {
	var in struct {
		CategoryIDs []uint `json:"category_ids"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		Fail(c, xerr.New(xerr.ErrBadRequest, "Requisição inválida."))
		return
	}
	profile, err := h.profiles.UpdateInterests(c.Request.Context(), CurrentUserID(c), in.CategoryIDs)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, profile)
}

func (h *ProfileHandler) UpdateBio(c *gin.Context) {
	var in struct {
		Bio string `json:"bio"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		Fail(c, xerr.New(xerr.ErrBadRequest, "Requisição inválida."))
		return
	}
	profile, err := h.profiles.UpdateBio(c.Request.Context(), CurrentUserID(c), in.Bio)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, profile)
}
