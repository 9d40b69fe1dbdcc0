package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iceymoss/echo-news/pkg/db/objects"
	"github.com/iceymoss/echo-news/pkg/sensitive"
	"github.com/iceymoss/echo-news/pkg/xerr"
)

type hookRecorder struct {
	events []PublishEvent
	err    error
}

func (h *hookRecorder) AfterPublish(_ context.Context, evt PublishEvent) error {
	h.events = append(h.events, evt)
	return h.err
}

func newArticleFixture(filter *sensitive.Word) (*ArticleService, *fakeArticles, *fakeNotifications, *hookRecorder) {
	articles := newFakeArticles()
	notifs := &fakeNotifications{}
	hook := &hookRecorder{}
	cats := &fakeCategories{items: []*objects.Category{{ID: 10, Name: "Saúde"}}}

	svc := NewArticleService(articles, cats, newFakeLedger(), notifs, newFakeProfiles(), fakeTx{}, filter)
	svc.RegisterHook(hook)
	return svc, articles, notifs, hook
}

func TestPublishDispatchesNewEvent(t *testing.T) {
	svc, articles, _, hook := newArticleFixture(nil)

	article, err := svc.Publish(context.Background(), 3, PublishInput{
		Title:      "Nova vacina",
		Content:    "conteúdo",
		CategoryID: uintPtr(10),
		Notify:     true,
	})
	require.NoError(t, err)
	require.NotZero(t, article.ID)
	assert.Len(t, articles.items, 1)

	require.Len(t, hook.events, 1)
	evt := hook.events[0]
	assert.True(t, evt.New)
	assert.False(t, evt.PrevNotify)
	assert.True(t, evt.ShouldNotify())
}

func TestPublishRejectsMissingFields(t *testing.T) {
	svc, articles, _, _ := newArticleFixture(nil)

	_, err := svc.Publish(context.Background(), 3, PublishInput{Title: " ", Content: "x"})
	require.Error(t, err)
	assert.Equal(t, xerr.ErrMissingParameter, xerr.Code(err))
	assert.Empty(t, articles.items)
}

func TestPublishRejectsBlockedContent(t *testing.T) {
	filter := sensitive.NewWordFromList([]string{"aposta garantida"})
	svc, articles, _, hook := newArticleFixture(filter)

	_, err := svc.Publish(context.Background(), 3, PublishInput{
		Title:   "Ganhe com aposta garantida",
		Content: "conteúdo",
	})
	require.Error(t, err)
	assert.Equal(t, xerr.ErrBlockedContent, xerr.Code(err))
	assert.Empty(t, articles.items)
	assert.Empty(t, hook.events)
}

func TestPublishRejectsUnknownCategory(t *testing.T) {
	svc, _, _, _ := newArticleFixture(nil)

	_, err := svc.Publish(context.Background(), 3, PublishInput{
		Title:      "t",
		Content:    "c",
		CategoryID: uintPtr(99),
	})
	require.Error(t, err)
	assert.Equal(t, xerr.ErrInvalidInput, xerr.Code(err))
}

func TestUpdateCarriesPreviousNotifyFlag(t *testing.T) {
	svc, articles, _, hook := newArticleFixture(nil)
	articles.add(&objects.Article{ID: 1, Title: "t", Content: "c", Notify: true})

	_, err := svc.Update(context.Background(), 1, PublishInput{Title: "t2", Content: "c2", Notify: true})
	require.NoError(t, err)

	require.Len(t, hook.events, 1)
	evt := hook.events[0]
	assert.False(t, evt.New)
	assert.True(t, evt.PrevNotify)
	// true→true 不该再次触发
	assert.False(t, evt.ShouldNotify())
}

func TestUpdateFiresOnFalseToTrue(t *testing.T) {
	svc, articles, _, hook := newArticleFixture(nil)
	articles.add(&objects.Article{ID: 1, Title: "t", Content: "c", Notify: false})

	_, err := svc.Update(context.Background(), 1, PublishInput{Title: "t", Content: "c", Notify: true})
	require.NoError(t, err)

	require.Len(t, hook.events, 1)
	assert.True(t, hook.events[0].ShouldNotify())
}

func TestUpdateUnknownArticle(t *testing.T) {
	svc, _, _, _ := newArticleFixture(nil)

	_, err := svc.Update(context.Background(), 42, PublishInput{Title: "t", Content: "c"})
	require.Error(t, err)
	assert.Equal(t, xerr.ErrNotFound, xerr.Code(err))
}

func TestHookErrorNeverFailsPublish(t *testing.T) {
	svc, _, _, hook := newArticleFixture(nil)
	hook.err = errors.New("smtp indisponível")

	_, err := svc.Publish(context.Background(), 3, PublishInput{Title: "t", Content: "c", Notify: true})
	assert.NoError(t, err)
}

func TestGetMarksSourceNotificationRead(t *testing.T) {
	svc, articles, notifs, _ := newArticleFixture(nil)
	articles.add(&objects.Article{ID: 1, Title: "t", Content: "c"})

	articleID := uint(1)
	require.NoError(t, notifs.CreateBatch(context.Background(), []*objects.Notification{
		{UserID: 7, Headline: "h", ArticleID: &articleID},
	}))

	detail, err := svc.Get(context.Background(), 1, 7, notifs.items[0].ID)
	require.NoError(t, err)
	assert.Equal(t, uint(1), detail.Article.ID)
	assert.True(t, notifs.items[0].Read)

	// 不属于该用户的通知不动
	require.NoError(t, notifs.CreateBatch(context.Background(), []*objects.Notification{
		{UserID: 8, Headline: "h", ArticleID: &articleID},
	}))
	_, err = svc.Get(context.Background(), 1, 7, notifs.items[1].ID)
	require.NoError(t, err)
	assert.False(t, notifs.items[1].Read)
}

func TestGetReportsInteractionFlags(t *testing.T) {
	articles := newFakeArticles()
	articles.add(&objects.Article{ID: 1, Title: "t", Content: "c"})
	ledger := newFakeLedger()
	require.NoError(t, ledger.Create(context.Background(), &objects.Interaction{
		UserID: 7, ArticleID: 1, Kind: objects.InteractionLike,
	}))

	svc := NewArticleService(articles, &fakeCategories{}, ledger, &fakeNotifications{}, newFakeProfiles(), fakeTx{}, nil)

	detail, err := svc.Get(context.Background(), 1, 7, 0)
	require.NoError(t, err)
	assert.True(t, detail.Liked)
	assert.False(t, detail.Saved)
}

func TestSearchRequiresTerm(t *testing.T) {
	svc, articles, _, _ := newArticleFixture(nil)
	articles.add(&objects.Article{ID: 1, Title: "Copa do mundo", Content: "c"})

	_, err := svc.Search(context.Background(), "  ")
	require.Error(t, err)
	assert.Equal(t, xerr.ErrMissingParameter, xerr.Code(err))

	list, err := svc.Search(context.Background(), "Copa")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestFilterTendenciasMeansAll(t *testing.T) {
	svc, articles, _, _ := newArticleFixture(nil)
	cat := &objects.Category{ID: 10, Name: "Saúde"}
	articles.add(&objects.Article{ID: 1, Title: "a", Content: "c", CategoryID: uintPtr(10), Category: cat})
	articles.add(&objects.Article{ID: 2, Title: "b", Content: "c"})

	list, err := svc.FilterByCategory(context.Background(), "Tendências")
	require.NoError(t, err)
	assert.Len(t, list, 2)

	list, err = svc.FilterByCategory(context.Background(), "Saúde")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, uint(1), list[0].ID)
}
