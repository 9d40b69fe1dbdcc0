package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/iceymoss/echo-news/internal/core"
	"github.com/iceymoss/echo-news/internal/repo"
	"github.com/iceymoss/echo-news/pkg/logger"
)

const defaultRetentionDays = 30

func init() {
	Register("notification_purge", func() core.Job {
		return &NotificationPurgeJob{notifications: repo.NewNotificationRepo()}
	})
}

// NotificationPurgeJob 清理超过保留期的已读通知
// params.retention_days 控制保留天数，默认 30
type NotificationPurgeJob struct {
	notifications *repo.NotificationRepo
}

func (j *NotificationPurgeJob) Identifier() string { return "notification_purge" }

func (j *NotificationPurgeJob) Run(ctx context.Context, params map[string]any) error {
	days := paramFloat(params, "retention_days")
	if days <= 0 {
		days = defaultRetentionDays
	}

	cutoff := time.Now().AddDate(0, 0, -int(days))
	deleted, err := j.notifications.DeleteReadOlderThan(ctx, cutoff)
	if err != nil {
		return err
	}

	logger.Info("✅ 通知清理完成", zap.Int64("deleted", deleted), zap.Time("cutoff", cutoff))
	return nil
}
