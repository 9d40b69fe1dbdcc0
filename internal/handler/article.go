package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/iceymoss/echo-news/internal/service"
	"github.com/iceymoss/echo-news/pkg/xerr"
)

// ArticleHandler 文章发布、详情、检索与筛选
type ArticleHandler struct {
	articles *service.ArticleService
}

func NewArticleHandler(articles *service.ArticleService) *ArticleHandler {
	return &ArticleHandler{articles: articles}
}

func (h *ArticleHandler) Publish(c *gin.Context) {
	var in service.PublishInput
	if err := c.ShouldBindJSON(&in); err != nil {
		Fail(c, xerr.New(xerr.ErrBadRequest, "Requisição inválida."))
		return
	}
	article, err := h.articles.Publish(c.Request.Context(), CurrentUserID(c), in)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, NewArticleView(article))
}

func (h *ArticleHandler) Update(c *gin.Context) {
	id := paramUint(c, "id")
	if id == 0 {
		Fail(c, xerr.New(xerr.ErrBadRequest, "Requisição inválida."))
		return
	}
	var in service.PublishInput
	if err := c.ShouldBindJSON(&in); err != nil {
		Fail(c, xerr.New(xerr.ErrBadRequest, "Requisição inválida."))
		return
	}
	article, err := h.articles.Update(c.Request.Context(), id, in)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, NewArticleView(article))
}

// Detail 详情页；?notificacao= 带上来源通知 ID 时顺手置已读
func (h *ArticleHandler) Detail(c *gin.Context) {
	id := paramUint(c, "id")
	if id == 0 {
		Fail(c, xerr.New(xerr.ErrBadRequest, "Requisição inválida."))
		return
	}
	notifID := queryUint(c, "notificacao")

	detail, err := h.articles.Get(c.Request.Context(), id, CurrentUserID(c), notifID)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, gin.H{
		"article": NewArticleView(detail.Article),
		"liked":   detail.Liked,
		"saved":   detail.Saved,
		"related": NewArticleViews(detail.Related),
	})
}

func (h *ArticleHandler) Search(c *gin.Context) {
	list, err := h.articles.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, NewArticleViews(list))
}

func (h *ArticleHandler) Filter(c *gin.Context) {
	list, err := h.articles.FilterByCategory(c.Request.Context(), c.Query("categoria"))
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, NewArticleViews(list))
}

func paramUint(c *gin.Context, name string) uint {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0
	}
	return uint(v)
}

func queryUint(c *gin.Context, name string) uint {
	v, err := strconv.ParseUint(c.Query(name), 10, 64)
	if err != nil {
		return 0
	}
	return uint(v)
}
