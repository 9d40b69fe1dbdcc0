package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/iceymoss/echo-news/pkg/db"
	"github.com/iceymoss/echo-news/pkg/db/objects"
	"github.com/iceymoss/echo-news/pkg/transaction"
)

type ArticleRepo struct{}

func NewArticleRepo() *ArticleRepo { return &ArticleRepo{} }

func (r *ArticleRepo) Create(ctx context.Context, article *objects.Article) error {
	return transaction.GetTransactionOrDB(ctx, db.GetConn()).Create(article).Error
}

func (r *ArticleRepo) GetByID(ctx context.Context, id uint) (*objects.Article, error) {
	var article objects.Article
	err := transaction.GetTransactionOrDB(ctx, db.GetConn()).
		Preload("Category").First(&article, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &article, err
}

func (r *ArticleRepo) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := transaction.GetTransactionOrDB(ctx, db.GetConn()).
		Model(&objects.Article{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// UpdateWithPrevNotify 更新文章并返回更新前的 Notify 值
// 读旧值和写新值在同一事务内完成，扇出据此判断 false→true 跳变
func (r *ArticleRepo) UpdateWithPrevNotify(ctx context.Context, article *objects.Article) (bool, error) {
	conn := transaction.GetTransactionOrDB(ctx, db.GetConn())

	var prev objects.Article
	if err := conn.Select("notify").First(&prev, article.ID).Error; err != nil {
		return false, err
	}
	err := conn.Model(&objects.Article{}).Where("id = ?", article.ID).
		Updates(map[string]any{
			"title":        article.Title,
			"content":      article.Content,
			"photographer": article.Photographer,
			"category_id":  article.CategoryID,
			"urgent":       article.Urgent,
			"notify":       article.Notify,
		}).Error
	return prev.Notify, err
}

// UpdateCounter 回写计数缓存
func (r *ArticleRepo) UpdateCounter(ctx context.Context, id uint, kind string, count int64) error {
	column := "like_count"
	if kind == objects.InteractionSave {
		column = "save_count"
	}
	return transaction.GetTransactionOrDB(ctx, db.GetConn()).
		Model(&objects.Article{}).Where("id = ?", id).
		Update(column, count).Error
}

// ListRecent 最新文章
func (r *ArticleRepo) ListRecent(ctx context.Context, limit int) ([]*objects.Article, error) {
	var list []*objects.Article
	err := transaction.GetTransactionOrDB(ctx, db.GetConn()).
		Preload("Category").
		Order("published_at DESC").Limit(limit).Find(&list).Error
	return list, err
}

// ListByCategoryIDs 指定栏目内的最新文章
func (r *ArticleRepo) ListByCategoryIDs(ctx context.Context, categoryIDs []uint, limit int) ([]*objects.Article, error) {
	if len(categoryIDs) == 0 {
		return nil, nil
	}
	var list []*objects.Article
	err := transaction.GetTransactionOrDB(ctx, db.GetConn()).
		Preload("Category").
		Where("category_id IN ?", categoryIDs).
		Order("published_at DESC").Limit(limit).Find(&list).Error
	return list, err
}

// ListByCategoryName 按栏目名过滤非加急文章
func (r *ArticleRepo) ListByCategoryName(ctx context.Context, name string, limit int) ([]*objects.Article, error) {
	var list []*objects.Article
	err := transaction.GetTransactionOrDB(ctx, db.GetConn()).
		Preload("Category").
		Joins("JOIN categories ON categories.id = articles.category_id").
		Where("LOWER(categories.name) = LOWER(?) AND articles.urgent = ?", name, false).
		Order("articles.published_at DESC").Limit(limit).Find(&list).Error
	return list, err
}

// Search 标题/正文子串检索
func (r *ArticleRepo) Search(ctx context.Context, term string, limit int) ([]*objects.Article, error) {
	pattern := "%" + term + "%"
	var list []*objects.Article
	err := transaction.GetTransactionOrDB(ctx, db.GetConn()).
		Preload("Category").
		Where("title LIKE ? OR content LIKE ?", pattern, pattern).
		Order("published_at DESC").Limit(limit).Find(&list).Error
	return list, err
}

// ListUrgent 加急文章，可排除已展示的 ID
func (r *ArticleRepo) ListUrgent(ctx context.Context, excludeIDs []uint, limit int) ([]*objects.Article, error) {
	conn := transaction.GetTransactionOrDB(ctx, db.GetConn()).
		Preload("Category").Where("urgent = ?", true)
	if len(excludeIDs) > 0 {
		conn = conn.Where("id NOT IN ?", excludeIDs)
	}
	var list []*objects.Article
	err := conn.Order("published_at DESC").Limit(limit).Find(&list).Error
	return list, err
}

// ListLatestNonUrgent 最新的普通文章
func (r *ArticleRepo) ListLatestNonUrgent(ctx context.Context, limit int) ([]*objects.Article, error) {
	var list []*objects.Article
	err := transaction.GetTransactionOrDB(ctx, db.GetConn()).
		Preload("Category").
		Where("urgent = ?", false).
		Order("published_at DESC").Limit(limit).Find(&list).Error
	return list, err
}

// ListTopLiked 点赞最多的文章，匿名首页用
func (r *ArticleRepo) ListTopLiked(ctx context.Context, limit int) ([]*objects.Article, error) {
	var list []*objects.Article
	err := transaction.GetTransactionOrDB(ctx, db.GetConn()).
		Preload("Category").
		Order("like_count DESC").Limit(limit).Find(&list).Error
	return list, err
}

// ListRelated 相关阅读：优先给定栏目集合，排除指定 ID
func (r *ArticleRepo) ListRelated(ctx context.Context, categoryIDs []uint, excludeIDs []uint, limit int) ([]*objects.Article, error) {
	conn := transaction.GetTransactionOrDB(ctx, db.GetConn()).Preload("Category")
	if len(categoryIDs) > 0 {
		conn = conn.Where("category_id IN ?", categoryIDs)
	}
	if len(excludeIDs) > 0 {
		conn = conn.Where("id NOT IN ?", excludeIDs)
	}
	var list []*objects.Article
	err := conn.Order("published_at DESC").Limit(limit).Find(&list).Error
	return list, err
}

// IDsTouchedSince 近期有互动的文章 ID，对账任务用
func (r *ArticleRepo) IDsTouchedSince(ctx context.Context, since time.Time) ([]uint, error) {
	var ids []uint
	err := transaction.GetTransactionOrDB(ctx, db.GetConn()).
		Model(&objects.Interaction{}).
		Where("created_at >= ?", since).
		Distinct("article_id").Pluck("article_id", &ids).Error
	return ids, err
}

// AllIDs 全部文章 ID，全量对账用
func (r *ArticleRepo) AllIDs(ctx context.Context) ([]uint, error) {
	var ids []uint
	err := transaction.GetTransactionOrDB(ctx, db.GetConn()).
		Model(&objects.Article{}).Pluck("id", &ids).Error
	return ids, err
}
