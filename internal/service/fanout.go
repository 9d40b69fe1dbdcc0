package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/iceymoss/echo-news/pkg/db/objects"
	"github.com/iceymoss/echo-news/pkg/logger"
)

// 通知标题前缀与截断长度，按字符数截断而不是字节数
const (
	headlinePrefix  = "🚨 NOVIDADE: "
	headlineMaxRune = 250
)

type FanoutProfileStore interface {
	UserIDsInterestedIn(ctx context.Context, categoryID uint) ([]uint, error)
}

type NotificationWriter interface {
	CreateBatch(ctx context.Context, list []*objects.Notification) error
}

// Fanout 兴趣扇出监听器：文章的 Notify 从 false 跳到 true 时，
// 给每个关注该栏目的用户各写一条未读通知
type Fanout struct {
	profiles      FanoutProfileStore
	notifications NotificationWriter
}

var _ PublishHook = (*Fanout)(nil)

func NewFanout(profiles FanoutProfileStore, notifications NotificationWriter) *Fanout {
	return &Fanout{profiles: profiles, notifications: notifications}
}

// Headline 生成通知标题，正文取文章标题前 250 个字符
func Headline(title string) string {
	runes := []rune(title)
	if len(runes) > headlineMaxRune {
		runes = runes[:headlineMaxRune]
	}
	return headlinePrefix + string(runes)
}

// AfterPublish 实现 PublishHook；无栏目的文章不论开关如何都跳过。
// 同一篇文章再次经历 false→true 会再次扇出，除上一次存量值外无其他抑制。
func (f *Fanout) AfterPublish(ctx context.Context, evt PublishEvent) error {
	if !evt.ShouldNotify() || evt.Article.CategoryID == nil {
		return nil
	}

	userIDs, err := f.profiles.UserIDsInterestedIn(ctx, *evt.Article.CategoryID)
	if err != nil {
		return err
	}
	if len(userIDs) == 0 {
		return nil
	}

	articleID := evt.Article.ID
	headline := Headline(evt.Article.Title)
	list := make([]*objects.Notification, 0, len(userIDs))
	for _, uid := range userIDs {
		list = append(list, &objects.Notification{
			UserID:    uid,
			Headline:  headline,
			ArticleID: &articleID,
			Read:      false,
		})
	}

	if err := f.notifications.CreateBatch(ctx, list); err != nil {
		return err
	}

	logger.Info("通知扇出完成",
		zap.Uint("article_id", articleID),
		zap.Int("recipients", len(list)))
	return nil
}
