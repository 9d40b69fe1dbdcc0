package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/iceymoss/echo-news/pkg/db/objects"
	"github.com/iceymoss/echo-news/pkg/logger"
	"github.com/iceymoss/echo-news/pkg/sensitive"
	"github.com/iceymoss/echo-news/pkg/xerr"
)

type ArticleStore interface {
	Create(ctx context.Context, article *objects.Article) error
	GetByID(ctx context.Context, id uint) (*objects.Article, error)
	UpdateWithPrevNotify(ctx context.Context, article *objects.Article) (bool, error)
	Search(ctx context.Context, term string, limit int) ([]*objects.Article, error)
	ListByCategoryName(ctx context.Context, name string, limit int) ([]*objects.Article, error)
	ListLatestNonUrgent(ctx context.Context, limit int) ([]*objects.Article, error)
	ListRelated(ctx context.Context, categoryIDs, excludeIDs []uint, limit int) ([]*objects.Article, error)
}

type CategoryGetter interface {
	GetByID(ctx context.Context, id uint) (*objects.Category, error)
}

type InteractionReader interface {
	Exists(ctx context.Context, userID, articleID uint, kind string) (bool, error)
}

type NotificationMarker interface {
	GetOwned(ctx context.Context, id, userID uint) (*objects.Notification, error)
	MarkRead(ctx context.Context, id, userID uint) error
}

// PublishEvent 文章入库后的提交事件，扇出等监听器凭它判断是否触发
type PublishEvent struct {
	Article *objects.Article
	// PrevNotify 更新前存量记录的 Notify 值，新建恒为 false
	PrevNotify bool
	// New 是否新建记录
	New bool
}

// ShouldNotify 只有 Notify 从 false 变为 true（含新建即 true）才触发
func (e PublishEvent) ShouldNotify() bool {
	if e.New {
		return e.Article.Notify
	}
	return e.Article.Notify && !e.PrevNotify
}

// PublishHook 文章提交后的监听器，失败只记日志，绝不拖垮保存
type PublishHook interface {
	AfterPublish(ctx context.Context, evt PublishEvent) error
}

// ArticleService 文章发布、更新、检索与详情
type ArticleService struct {
	articles      ArticleStore
	categories    CategoryGetter
	interactions  InteractionReader
	notifications NotificationMarker
	profiles      ProfileReader
	tx            TxRunner
	filter        *sensitive.Word
	hooks         []PublishHook
}

func NewArticleService(
	articles ArticleStore,
	categories CategoryGetter,
	interactions InteractionReader,
	notifications NotificationMarker,
	profiles ProfileReader,
	tx TxRunner,
	filter *sensitive.Word,
) *ArticleService {
	return &ArticleService{
		articles:      articles,
		categories:    categories,
		interactions:  interactions,
		notifications: notifications,
		profiles:      profiles,
		tx:            tx,
		filter:        filter,
	}
}

// RegisterHook 注册提交事件监听器
func (s *ArticleService) RegisterHook(h PublishHook) {
	s.hooks = append(s.hooks, h)
}

// PublishInput 发布/更新入参
type PublishInput struct {
	Title        string `json:"title"`
	Content      string `json:"content"`
	Photographer string `json:"photographer"`
	CategoryID   *uint  `json:"category_id"`
	Urgent       bool   `json:"urgent"`
	Notify       bool   `json:"notify"`
}

func (s *ArticleService) validate(ctx context.Context, in *PublishInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return xerr.New(xerr.ErrMissingParameter, "O título é obrigatório.")
	}
	if strings.TrimSpace(in.Content) == "" {
		return xerr.New(xerr.ErrMissingParameter, "O conteúdo é obrigatório.")
	}
	if s.filter != nil {
		if ok, word := s.filter.Validate(in.Title + " " + in.Content); !ok {
			return xerr.New(xerr.ErrBlockedContent, fmt.Sprintf("Conteúdo contém termo bloqueado: %s", word))
		}
	}
	if in.CategoryID != nil {
		cat, err := s.categories.GetByID(ctx, *in.CategoryID)
		if err != nil {
			return err
		}
		if cat == nil {
			return xerr.New(xerr.ErrInvalidInput, "Categoria inválida.")
		}
	}
	return nil
}

// Publish 新建文章并派发提交事件
func (s *ArticleService) Publish(ctx context.Context, authorID uint, in PublishInput) (*objects.Article, error) {
	if err := s.validate(ctx, &in); err != nil {
		return nil, err
	}

	article := &objects.Article{
		Title:        strings.TrimSpace(in.Title),
		Content:      in.Content,
		Photographer: in.Photographer,
		CategoryID:   in.CategoryID,
		Urgent:       in.Urgent,
		Notify:       in.Notify,
	}
	if authorID > 0 {
		article.AuthorID = &authorID
	}
	if err := s.articles.Create(ctx, article); err != nil {
		return nil, err
	}

	s.dispatch(ctx, PublishEvent{Article: article, PrevNotify: false, New: true})
	return article, nil
}

// Update 更新文章；旧的 Notify 值在同一事务里读出，随事件带给监听器
func (s *ArticleService) Update(ctx context.Context, id uint, in PublishInput) (*objects.Article, error) {
	if err := s.validate(ctx, &in); err != nil {
		return nil, err
	}

	existing, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, xerr.New(xerr.ErrNotFound, "Notícia não encontrada.")
	}

	updated := &objects.Article{
		ID:           id,
		Title:        strings.TrimSpace(in.Title),
		Content:      in.Content,
		Photographer: in.Photographer,
		CategoryID:   in.CategoryID,
		Urgent:       in.Urgent,
		Notify:       in.Notify,
	}

	var prevNotify bool
	err = s.tx.Execute(ctx, nil, func(ctx context.Context) error {
		prev, err := s.articles.UpdateWithPrevNotify(ctx, updated)
		if err != nil {
			return err
		}
		prevNotify = prev
		return nil
	})
	if err != nil {
		return nil, err
	}

	fresh, err := s.articles.GetByID(ctx, id)
	if err != nil || fresh == nil {
		// 更新已提交，取不到快照就用内存版本派发
		logger.Warn("更新后回读失败", zap.Uint("article_id", id), zap.Error(err))
		fresh = updated
	}

	s.dispatch(ctx, PublishEvent{Article: fresh, PrevNotify: prevNotify, New: false})
	return fresh, nil
}

// dispatch 挨个执行监听器，失败告警但不向上传播
func (s *ArticleService) dispatch(ctx context.Context, evt PublishEvent) {
	for _, h := range s.hooks {
		if err := h.AfterPublish(ctx, evt); err != nil {
			logger.Warn("提交事件监听器执行失败，文章保存不受影响",
				zap.Uint("article_id", evt.Article.ID),
				zap.Error(err))
		}
	}
}

// ArticleDetail 详情页数据
type ArticleDetail struct {
	Article *objects.Article   `json:"article"`
	Liked   bool               `json:"liked"`
	Saved   bool               `json:"saved"`
	Related []*objects.Article `json:"related"`
}

// Get 文章详情；notifID 非零时顺手把对应的未读通知置已读
func (s *ArticleService) Get(ctx context.Context, id, userID, notifID uint) (*ArticleDetail, error) {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, xerr.New(xerr.ErrNotFound, "Notícia não encontrada.")
	}

	detail := &ArticleDetail{Article: article}

	if userID > 0 && notifID > 0 {
		notif, err := s.notifications.GetOwned(ctx, notifID, userID)
		if err != nil {
			logger.Warn("通知查询失败", zap.Uint("notif_id", notifID), zap.Error(err))
		} else if notif != nil && !notif.Read {
			if err := s.notifications.MarkRead(ctx, notifID, userID); err != nil {
				logger.Warn("通知置已读失败", zap.Uint("notif_id", notifID), zap.Error(err))
			}
		}
	}

	if userID > 0 {
		if liked, err := s.interactions.Exists(ctx, userID, id, objects.InteractionLike); err == nil {
			detail.Liked = liked
		}
		if saved, err := s.interactions.Exists(ctx, userID, id, objects.InteractionSave); err == nil {
			detail.Saved = saved
		}
	}

	detail.Related = s.related(ctx, article, userID)
	return detail, nil
}

// related 相关阅读 3 条：优先兴趣栏目，其次同栏目，不够再拿最新补位
func (s *ArticleService) related(ctx context.Context, article *objects.Article, userID uint) []*objects.Article {
	const relatedLimit = 3

	var categoryIDs []uint
	if userID > 0 {
		if interests, err := s.profiles.InterestCategoryIDs(ctx, userID); err == nil {
			categoryIDs = interests
		}
	}
	if len(categoryIDs) == 0 && article.CategoryID != nil {
		categoryIDs = []uint{*article.CategoryID}
	}

	related, err := s.articles.ListRelated(ctx, categoryIDs, []uint{article.ID}, relatedLimit)
	if err != nil {
		logger.Warn("相关阅读查询失败", zap.Error(err))
		return nil
	}

	if len(related) < relatedLimit {
		exclude := []uint{article.ID}
		for _, a := range related {
			exclude = append(exclude, a.ID)
		}
		more, err := s.articles.ListRelated(ctx, nil, exclude, relatedLimit-len(related))
		if err == nil {
			related = append(related, more...)
		}
	}
	return related
}

// Search 标题/正文检索，最多 20 条
func (s *ArticleService) Search(ctx context.Context, term string) ([]*objects.Article, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, xerr.New(xerr.ErrMissingParameter, "Termo não fornecido")
	}
	return s.articles.Search(ctx, term, 20)
}

// FilterByCategory 按栏目名出非加急最新 5 条，"Tendências" 表示不限栏目
func (s *ArticleService) FilterByCategory(ctx context.Context, name string) ([]*objects.Article, error) {
	if strings.TrimSpace(name) == "" {
		return nil, xerr.New(xerr.ErrMissingParameter, "Categoria não fornecida.")
	}
	if name == "Tendências" {
		return s.articles.ListLatestNonUrgent(ctx, 5)
	}
	return s.articles.ListByCategoryName(ctx, name, 5)
}
