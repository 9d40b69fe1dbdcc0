package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iceymoss/echo-news/pkg/db/objects"
	"github.com/iceymoss/echo-news/pkg/xerr"
)

func seedNotification(f *fakeNotifications, userID uint, categoryID *uint, read bool, age time.Duration) *objects.Notification {
	articleID := f.nextID + 100
	n := &objects.Notification{
		UserID:    userID,
		Headline:  "🚨 NOVIDADE: título",
		ArticleID: &articleID,
		Article:   &objects.Article{ID: articleID, CategoryID: categoryID},
		Read:      read,
		CreatedAt: time.Now().Add(-age),
	}
	f.nextID++
	n.ID = f.nextID
	f.items = append(f.items, n)
	return n
}

func newInboxFixture(pageSize int) (*InboxService, *fakeNotifications, *fakeProfiles) {
	notifs := &fakeNotifications{}
	profiles := newFakeProfiles()
	svc := NewInboxService(notifs, profiles, nil, pageSize)
	return svc, notifs, profiles
}

func TestListSplitsUnreadAndRead(t *testing.T) {
	svc, notifs, _ := newInboxFixture(5)
	seedNotification(notifs, 7, nil, false, time.Hour)
	seedNotification(notifs, 7, nil, false, time.Minute)
	seedNotification(notifs, 7, nil, true, 2*time.Hour)
	seedNotification(notifs, 8, nil, false, time.Minute)

	view, err := svc.List(context.Background(), 7, 1, 1)
	require.NoError(t, err)

	assert.Len(t, view.Unread.Items, 2)
	assert.Len(t, view.Read.Items, 1)
	assert.Equal(t, int64(2), view.UnreadCount)
	// 最新在前
	assert.True(t, view.Unread.Items[0].CreatedAt.After(view.Unread.Items[1].CreatedAt))
}

func TestListFiltersUnreadByInterests(t *testing.T) {
	svc, notifs, profiles := newInboxFixture(5)
	profiles.interests[7] = []uint{10}

	seedNotification(notifs, 7, uintPtr(10), false, time.Minute)
	seedNotification(notifs, 7, uintPtr(20), false, time.Hour)

	view, err := svc.List(context.Background(), 7, 1, 1)
	require.NoError(t, err)

	// 未读节按兴趣过滤，总数不过滤
	assert.Len(t, view.Unread.Items, 1)
	assert.Equal(t, int64(2), view.UnreadCount)
}

func TestListPaginatesAtFive(t *testing.T) {
	svc, notifs, _ := newInboxFixture(5)
	for i := 0; i < 12; i++ {
		seedNotification(notifs, 7, nil, false, time.Duration(i)*time.Minute)
	}

	view, err := svc.List(context.Background(), 7, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, view.Unread.Page)
	assert.Equal(t, 3, view.Unread.Pages)
	assert.Len(t, view.Unread.Items, 5)

	// 越界页码收敛到最后一页
	view, err = svc.List(context.Background(), 7, 9, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, view.Unread.Page)
	assert.Len(t, view.Unread.Items, 2)
}

func TestMarkReadIsIdempotentAndOwned(t *testing.T) {
	svc, notifs, _ := newInboxFixture(5)
	n := seedNotification(notifs, 7, nil, false, time.Minute)

	require.NoError(t, svc.MarkRead(context.Background(), n.ID, 7))
	assert.True(t, n.Read)

	// 重复置已读不报错
	require.NoError(t, svc.MarkRead(context.Background(), n.ID, 7))

	// 别人的通知按未找到处理
	err := svc.MarkRead(context.Background(), n.ID, 8)
	require.Error(t, err)
	assert.Equal(t, xerr.ErrNotFound, xerr.Code(err))
}

func TestMarkAllReadEmptiesUnreadSection(t *testing.T) {
	svc, notifs, _ := newInboxFixture(5)
	seedNotification(notifs, 7, nil, false, time.Minute)
	seedNotification(notifs, 7, nil, false, time.Hour)

	require.NoError(t, svc.MarkAllRead(context.Background(), 7))

	view, err := svc.List(context.Background(), 7, 1, 1)
	require.NoError(t, err)
	assert.Empty(t, view.Unread.Items)
	assert.Equal(t, int64(0), view.UnreadCount)
	assert.Len(t, view.Read.Items, 2)
}

func TestUnreadBadgeWithoutRedisHitsStore(t *testing.T) {
	svc, notifs, _ := newInboxFixture(5)
	seedNotification(notifs, 7, nil, false, time.Minute)

	count, err := svc.UnreadBadge(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
