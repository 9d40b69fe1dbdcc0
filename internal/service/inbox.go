package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/iceymoss/echo-news/pkg/db/objects"
	"github.com/iceymoss/echo-news/pkg/logger"
	"github.com/iceymoss/echo-news/pkg/xerr"
)

type InboxStore interface {
	ListUnread(ctx context.Context, userID uint, categoryIDs []uint, offset, limit int) ([]*objects.Notification, int64, error)
	ListRead(ctx context.Context, userID uint, offset, limit int) ([]*objects.Notification, int64, error)
	CountUnread(ctx context.Context, userID uint) (int64, error)
	GetOwned(ctx context.Context, id, userID uint) (*objects.Notification, error)
	MarkRead(ctx context.Context, id, userID uint) error
	MarkAllRead(ctx context.Context, userID uint) error
}

// InboxService 通知收件箱：未读/已读两节独立分页，外加未读角标
type InboxService struct {
	notifications InboxStore
	profiles      ProfileReader
	rdb           *redis.Client // 可为 nil，nil 时角标直查库
	pageSize      int
}

func NewInboxService(notifications InboxStore, profiles ProfileReader, rdb *redis.Client, pageSize int) *InboxService {
	if pageSize <= 0 {
		pageSize = 5
	}
	return &InboxService{
		notifications: notifications,
		profiles:      profiles,
		rdb:           rdb,
		pageSize:      pageSize,
	}
}

// NotificationPage 单节分页结果
type NotificationPage struct {
	Items []*objects.Notification `json:"items"`
	Page  int                     `json:"page"`
	Pages int                     `json:"pages"`
	Total int64                   `json:"total"`
}

// InboxView 收件箱视图
type InboxView struct {
	Unread      NotificationPage `json:"unread"`
	Read        NotificationPage `json:"read"`
	UnreadCount int64            `json:"unread_count"`
}

// List 拉取收件箱；未读节在兴趣档案非空时按兴趣栏目过滤，
// 未读总数始终不做栏目过滤
func (s *InboxService) List(ctx context.Context, userID uint, pageUnread, pageRead int) (*InboxView, error) {
	interests, err := s.profiles.InterestCategoryIDs(ctx, userID)
	if err != nil {
		logger.Warn("读取兴趣档案失败，未读节不做过滤", zap.Uint("user_id", userID), zap.Error(err))
		interests = nil
	}

	unread, err := s.pageOf(ctx, pageUnread, func(offset, limit int) ([]*objects.Notification, int64, error) {
		return s.notifications.ListUnread(ctx, userID, interests, offset, limit)
	})
	if err != nil {
		return nil, err
	}

	read, err := s.pageOf(ctx, pageRead, func(offset, limit int) ([]*objects.Notification, int64, error) {
		return s.notifications.ListRead(ctx, userID, offset, limit)
	})
	if err != nil {
		return nil, err
	}

	count, err := s.notifications.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.cacheBadge(ctx, userID, count)

	return &InboxView{Unread: *unread, Read: *read, UnreadCount: count}, nil
}

// pageOf 页码越界时收敛到最后一页，页码从 1 起
func (s *InboxService) pageOf(ctx context.Context, page int, fetch func(offset, limit int) ([]*objects.Notification, int64, error)) (*NotificationPage, error) {
	if page < 1 {
		page = 1
	}

	items, total, err := fetch((page-1)*s.pageSize, s.pageSize)
	if err != nil {
		return nil, err
	}

	pages := int((total + int64(s.pageSize) - 1) / int64(s.pageSize))
	if pages < 1 {
		pages = 1
	}
	if page > pages {
		page = pages
		items, total, err = fetch((page-1)*s.pageSize, s.pageSize)
		if err != nil {
			return nil, err
		}
	}

	if items == nil {
		items = []*objects.Notification{}
	}
	return &NotificationPage{Items: items, Page: page, Pages: pages, Total: total}, nil
}

// MarkRead 幂等置已读；不存在或不属于该用户按未找到处理
func (s *InboxService) MarkRead(ctx context.Context, notifID, userID uint) error {
	notif, err := s.notifications.GetOwned(ctx, notifID, userID)
	if err != nil {
		return err
	}
	if notif == nil {
		return xerr.New(xerr.ErrNotFound, "Notificação não encontrada.")
	}
	if !notif.Read {
		if err := s.notifications.MarkRead(ctx, notifID, userID); err != nil {
			return err
		}
	}
	s.refreshBadge(ctx, userID)
	return nil
}

// MarkAllRead 一次置已读全部未读
func (s *InboxService) MarkAllRead(ctx context.Context, userID uint) error {
	if err := s.notifications.MarkAllRead(ctx, userID); err != nil {
		return err
	}
	s.cacheBadge(ctx, userID, 0)
	return nil
}

// UnreadBadge 未读角标数，优先走 redis 缓存
func (s *InboxService) UnreadBadge(ctx context.Context, userID uint) (int64, error) {
	if s.rdb != nil {
		if val, err := s.rdb.Get(ctx, badgeKey(userID)).Result(); err == nil {
			if count, perr := strconv.ParseInt(val, 10, 64); perr == nil {
				return count, nil
			}
		}
	}
	count, err := s.notifications.CountUnread(ctx, userID)
	if err != nil {
		return 0, err
	}
	s.cacheBadge(ctx, userID, count)
	return count, nil
}

func (s *InboxService) refreshBadge(ctx context.Context, userID uint) {
	count, err := s.notifications.CountUnread(ctx, userID)
	if err != nil {
		return
	}
	s.cacheBadge(ctx, userID, count)
}

func (s *InboxService) cacheBadge(ctx context.Context, userID uint, count int64) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Set(ctx, badgeKey(userID), count, time.Hour).Err(); err != nil {
		logger.Debug("角标缓存写入失败", zap.Uint("user_id", userID), zap.Error(err))
	}
}

func badgeKey(userID uint) string {
	return fmt.Sprintf("notify:unread:%d", userID)
}
