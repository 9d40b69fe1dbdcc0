package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/iceymoss/echo-news/pkg/db"
	"github.com/iceymoss/echo-news/pkg/db/objects"
	"github.com/iceymoss/echo-news/pkg/transaction"
)

type InteractionRepo struct{}

func NewInteractionRepo() *InteractionRepo { return &InteractionRepo{} }

// Get 查指定 (user, article, kind) 的台账记录，不存在返回 nil
func (r *InteractionRepo) Get(ctx context.Context, userID, articleID uint, kind string) (*objects.Interaction, error) {
	var rec objects.Interaction
	err := transaction.GetTransactionOrDB(ctx, db.GetConn()).
		Where("user_id = ? AND article_id = ? AND kind = ?", userID, articleID, kind).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &rec, err
}

func (r *InteractionRepo) Create(ctx context.Context, rec *objects.Interaction) error {
	return transaction.GetTransactionOrDB(ctx, db.GetConn()).Create(rec).Error
}

func (r *InteractionRepo) Delete(ctx context.Context, id uint) error {
	return transaction.GetTransactionOrDB(ctx, db.GetConn()).
		Delete(&objects.Interaction{}, id).Error
}

// Count 台账内某文章某类型的实时计数，计数缓存以此为准
func (r *InteractionRepo) Count(ctx context.Context, articleID uint, kind string) (int64, error) {
	var count int64
	err := transaction.GetTransactionOrDB(ctx, db.GetConn()).
		Model(&objects.Interaction{}).
		Where("article_id = ? AND kind = ?", articleID, kind).
		Count(&count).Error
	return count, err
}

// ListByUserKind 用户的点赞/收藏记录，按互动时间倒序，带文章
func (r *InteractionRepo) ListByUserKind(ctx context.Context, userID uint, kind string) ([]*objects.Interaction, error) {
	var list []*objects.Interaction
	err := transaction.GetTransactionOrDB(ctx, db.GetConn()).
		Preload("Article").Preload("Article.Category").
		Where("user_id = ? AND kind = ?", userID, kind).
		Order("created_at DESC").Find(&list).Error
	return list, err
}

// Exists 用户是否对文章有该类型互动
func (r *InteractionRepo) Exists(ctx context.Context, userID, articleID uint, kind string) (bool, error) {
	rec, err := r.Get(ctx, userID, articleID, kind)
	return rec != nil, err
}
