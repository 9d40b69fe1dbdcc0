package handler

import (
	"github.com/iceymoss/echo-news/pkg/db/objects"
	"github.com/iceymoss/echo-news/pkg/utils"
)

// ArticleView 文章的对外视图，附带按巴西时区格式化的发布日期
type ArticleView struct {
	*objects.Article
	PublishedAtDisplay string `json:"published_at_display"`
}

func NewArticleView(a *objects.Article) *ArticleView {
	if a == nil {
		return nil
	}
	return &ArticleView{
		Article:            a,
		PublishedAtDisplay: utils.FormatPublishDate(a.PublishedAt),
	}
}

func NewArticleViews(list []*objects.Article) []*ArticleView {
	views := make([]*ArticleView, 0, len(list))
	for _, a := range list {
		views = append(views, NewArticleView(a))
	}
	return views
}
