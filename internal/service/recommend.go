package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/iceymoss/echo-news/pkg/db/objects"
	"github.com/iceymoss/echo-news/pkg/logger"
)

// 推荐列表长度上限
const recommendLimit = 10

// 兜底时取兴趣积分最高的栏目数
const historyTopCategories = 3

type RecommendArticleStore interface {
	ListRecent(ctx context.Context, limit int) ([]*objects.Article, error)
	ListByCategoryIDs(ctx context.Context, categoryIDs []uint, limit int) ([]*objects.Article, error)
	ListTopLiked(ctx context.Context, limit int) ([]*objects.Article, error)
	ListUrgent(ctx context.Context, excludeIDs []uint, limit int) ([]*objects.Article, error)
	ListLatestNonUrgent(ctx context.Context, limit int) ([]*objects.Article, error)
}

type HistoryReader interface {
	TopCategoryIDs(ctx context.Context, userID uint, n int) ([]uint, error)
}

type CategoryLister interface {
	List(ctx context.Context) ([]*objects.Category, error)
}

// Recommender 三级兜底的推荐引擎：兴趣档案 → 兴趣积分 → 全站最新
type Recommender struct {
	articles   RecommendArticleStore
	profiles   ProfileReader
	history    HistoryReader
	categories CategoryLister
}

func NewRecommender(articles RecommendArticleStore, profiles ProfileReader, history HistoryReader, categories CategoryLister) *Recommender {
	return &Recommender{
		articles:   articles,
		profiles:   profiles,
		history:    history,
		categories: categories,
	}
}

// Recommend 给用户生成最多 10 条推荐，userID 为 0 表示匿名
//
// 第一级：兴趣档案非空就按档案栏目出结果并直接返回，
// 哪怕这些栏目下当前一篇文章都没有也不再落到第二级。
// 第二级：按兴趣积分取前三个栏目。第三级：全站最新。
// 数据缺失不算错误，逐级降级。
func (s *Recommender) Recommend(ctx context.Context, userID uint) ([]*objects.Article, error) {
	if userID == 0 {
		return s.articles.ListRecent(ctx, recommendLimit)
	}

	interests, err := s.profiles.InterestCategoryIDs(ctx, userID)
	if err != nil {
		logger.Warn("读取兴趣档案失败，降级处理", zap.Uint("user_id", userID), zap.Error(err))
		interests = nil
	}
	if len(interests) > 0 {
		list, err := s.articles.ListByCategoryIDs(ctx, interests, recommendLimit)
		if err != nil {
			return nil, err
		}
		// 档案存在即短路，空结果也原样返回
		return list, nil
	}

	topCats, err := s.history.TopCategoryIDs(ctx, userID, historyTopCategories)
	if err != nil {
		logger.Warn("读取兴趣积分失败，降级处理", zap.Uint("user_id", userID), zap.Error(err))
		topCats = nil
	}
	if len(topCats) > 0 {
		return s.articles.ListByCategoryIDs(ctx, topCats, recommendLimit)
	}

	return s.articles.ListRecent(ctx, recommendLimit)
}

// DashboardView 首页聚合数据
type DashboardView struct {
	Recommended []*objects.Article  `json:"recommended"`
	Urgent      []*objects.Article  `json:"urgent"`
	Latest      []*objects.Article  `json:"latest"`
	Categories  []*objects.Category `json:"categories"`
}

// Dashboard 首页：推荐位 3 条（匿名用点赞榜）、加急位 5 条（去重）、最新普通 5 条、栏目清单
func (s *Recommender) Dashboard(ctx context.Context, userID uint) (*DashboardView, error) {
	var recommended []*objects.Article
	var err error
	if userID == 0 {
		recommended, err = s.articles.ListTopLiked(ctx, 3)
	} else {
		recommended, err = s.Recommend(ctx, userID)
		if err == nil && len(recommended) > 3 {
			recommended = recommended[:3]
		}
	}
	if err != nil {
		return nil, err
	}

	excludeIDs := make([]uint, 0, len(recommended))
	for _, a := range recommended {
		excludeIDs = append(excludeIDs, a.ID)
	}

	urgent, err := s.articles.ListUrgent(ctx, excludeIDs, 5)
	if err != nil {
		logger.Warn("加急位查询失败", zap.Error(err))
	}
	latest, err := s.articles.ListLatestNonUrgent(ctx, 5)
	if err != nil {
		logger.Warn("最新位查询失败", zap.Error(err))
	}
	cats, err := s.categories.List(ctx)
	if err != nil {
		logger.Warn("栏目清单查询失败", zap.Error(err))
	}

	return &DashboardView{
		Recommended: recommended,
		Urgent:      urgent,
		Latest:      latest,
		Categories:  cats,
	}, nil
}
