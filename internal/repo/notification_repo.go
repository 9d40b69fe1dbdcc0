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

type NotificationRepo struct{}

func NewNotificationRepo() *NotificationRepo { return &NotificationRepo{} }

// CreateBatch 批量写入通知，扇出唯一的写入口
func (r *NotificationRepo) CreateBatch(ctx context.Context, list []*objects.Notification) error {
	if len(list) == 0 {
		return nil
	}
	return transaction.GetTransactionOrDB(ctx, db.GetConn()).Create(&list).Error
}

// ListUnread 未读通知（只含仍挂着文章的），可按栏目集合过滤
func (r *NotificationRepo) ListUnread(ctx context.Context, userID uint, categoryIDs []uint, offset, limit int) ([]*objects.Notification, int64, error) {
	conn := transaction.GetTransactionOrDB(ctx, db.GetConn()).
		Model(&objects.Notification{}).
		Where("notifications.user_id = ? AND notifications.is_read = ? AND notifications.article_id IS NOT NULL", userID, false)
	if len(categoryIDs) > 0 {
		conn = conn.
			Joins("JOIN articles ON articles.id = notifications.article_id").
			Where("articles.category_id IN ?", categoryIDs)
	}

	var total int64
	if err := conn.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var list []*objects.Notification
	err := conn.Preload("Article").Preload("Article.Category").
		Order("notifications.created_at DESC").
		Offset(offset).Limit(limit).Find(&list).Error
	return list, total, err
}

// ListRead 已读通知（只含仍挂着文章的）
func (r *NotificationRepo) ListRead(ctx context.Context, userID uint, offset, limit int) ([]*objects.Notification, int64, error) {
	conn := transaction.GetTransactionOrDB(ctx, db.GetConn()).
		Model(&objects.Notification{}).
		Where("user_id = ? AND is_read = ? AND article_id IS NOT NULL", userID, true)

	var total int64
	if err := conn.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var list []*objects.Notification
	err := conn.Preload("Article").Preload("Article.Category").
		Order("created_at DESC").
		Offset(offset).Limit(limit).Find(&list).Error
	return list, total, err
}

// CountUnread 未读总数，不做栏目过滤，角标用
func (r *NotificationRepo) CountUnread(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := transaction.GetTransactionOrDB(ctx, db.GetConn()).
		Model(&objects.Notification{}).
		Where("user_id = ? AND is_read = ? AND article_id IS NOT NULL", userID, false).
		Count(&count).Error
	return count, err
}

// GetOwned 取属于指定用户的通知，不存在或不属于返回 nil
func (r *NotificationRepo) GetOwned(ctx context.Context, id, userID uint) (*objects.Notification, error) {
	var notif objects.Notification
	err := transaction.GetTransactionOrDB(ctx, db.GetConn()).
		Where("id = ? AND user_id = ?", id, userID).First(&notif).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &notif, err
}

// MarkRead 单条置已读
func (r *NotificationRepo) MarkRead(ctx context.Context, id, userID uint) error {
	return transaction.GetTransactionOrDB(ctx, db.GetConn()).
		Model(&objects.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true).Error
}

// MarkAllRead 用户全部未读一次置已读
func (r *NotificationRepo) MarkAllRead(ctx context.Context, userID uint) error {
	return transaction.GetTransactionOrDB(ctx, db.GetConn()).
		Model(&objects.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}

// DeleteReadOlderThan 清理早于给定时间的已读通知，返回删除条数
func (r *NotificationRepo) DeleteReadOlderThan(ctx context.Context, before time.Time) (int64, error) {
	res := transaction.GetTransactionOrDB(ctx, db.GetConn()).
		Where("is_read = ? AND created_at < ?", true, before).
		Delete(&objects.Notification{})
	return res.RowsAffected, res.Error
}
