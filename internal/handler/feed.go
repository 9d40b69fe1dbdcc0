package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/iceymoss/echo-news/internal/service"
)

// FeedHandler 推荐流与首页
type FeedHandler struct {
	recommender *service.Recommender
}

func NewFeedHandler(recommender *service.Recommender) *FeedHandler {
	return &FeedHandler{recommender: recommender}
}

// Feed 个性化推荐，匿名退化为全站最新
func (h *FeedHandler) Feed(c *gin.Context) {
	list, err := h.recommender.Recommend(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, NewArticleViews(list))
}

// Dashboard 首页数据
func (h *FeedHandler) Dashboard(c *gin.Context) {
	view, err := h.recommender.Dashboard(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, gin.H{
		"recommended": NewArticleViews(view.Recommended),
		"urgent":      NewArticleViews(view.Urgent),
		"latest":      NewArticleViews(view.Latest),
		"categories":  view.Categories,
	})
}
