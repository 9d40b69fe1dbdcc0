package service

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/iceymoss/echo-news/pkg/db/objects"
)

// 内存版仓储，覆盖各服务依赖的窄接口

type fakeArticles struct {
	items    []*objects.Article
	counters map[string]int64
	nextID   uint
}

func newFakeArticles() *fakeArticles {
	return &fakeArticles{counters: make(map[string]int64)}
}

func (f *fakeArticles) add(a *objects.Article) *objects.Article {
	if a.ID == 0 {
		f.nextID++
		a.ID = f.nextID
	} else if a.ID > f.nextID {
		f.nextID = a.ID
	}
	f.items = append(f.items, a)
	return a
}

func (f *fakeArticles) sorted() []*objects.Article {
	out := make([]*objects.Article, len(f.items))
	copy(out, f.items)
	sort.Slice(out, func(i, j int) bool {
		return out[i].PublishedAt.After(out[j].PublishedAt)
	})
	return out
}

func clip(list []*objects.Article, limit int) []*objects.Article {
	if limit > 0 && len(list) > limit {
		return list[:limit]
	}
	return list
}

func (f *fakeArticles) Create(_ context.Context, a *objects.Article) error {
	if a.PublishedAt.IsZero() {
		a.PublishedAt = time.Now()
	}
	f.add(a)
	return nil
}

func (f *fakeArticles) GetByID(_ context.Context, id uint) (*objects.Article, error) {
	for _, a := range f.items {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, nil
}

func (f *fakeArticles) Exists(_ context.Context, id uint) (bool, error) {
	for _, a := range f.items {
		if a.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeArticles) UpdateWithPrevNotify(_ context.Context, in *objects.Article) (bool, error) {
	for _, a := range f.items {
		if a.ID == in.ID {
			prev := a.Notify
			a.Title = in.Title
			a.Content = in.Content
			a.Photographer = in.Photographer
			a.CategoryID = in.CategoryID
			a.Urgent = in.Urgent
			a.Notify = in.Notify
			return prev, nil
		}
	}
	return false, fmt.Errorf("article %d not found", in.ID)
}

func (f *fakeArticles) UpdateCounter(_ context.Context, id uint, kind string, count int64) error {
	f.counters[fmt.Sprintf("%d:%s", id, kind)] = count
	return nil
}

func (f *fakeArticles) counter(id uint, kind string) int64 {
	return f.counters[fmt.Sprintf("%d:%s", id, kind)]
}

func (f *fakeArticles) ListRecent(_ context.Context, limit int) ([]*objects.Article, error) {
	return clip(f.sorted(), limit), nil
}

func (f *fakeArticles) ListByCategoryIDs(_ context.Context, categoryIDs []uint, limit int) ([]*objects.Article, error) {
	if len(categoryIDs) == 0 {
		return nil, nil
	}
	set := make(map[uint]struct{}, len(categoryIDs))
	for _, id := range categoryIDs {
		set[id] = struct{}{}
	}
	var out []*objects.Article
	for _, a := range f.sorted() {
		if a.CategoryID == nil {
			continue
		}
		if _, ok := set[*a.CategoryID]; ok {
			out = append(out, a)
		}
	}
	return clip(out, limit), nil
}

func (f *fakeArticles) ListByCategoryName(_ context.Context, name string, limit int) ([]*objects.Article, error) {
	var out []*objects.Article
	for _, a := range f.sorted() {
		if a.Urgent || a.Category == nil {
			continue
		}
		if strings.EqualFold(a.Category.Name, name) {
			out = append(out, a)
		}
	}
	return clip(out, limit), nil
}

func (f *fakeArticles) Search(_ context.Context, term string, limit int) ([]*objects.Article, error) {
	var out []*objects.Article
	for _, a := range f.sorted() {
		if strings.Contains(a.Title, term) || strings.Contains(a.Content, term) {
			out = append(out, a)
		}
	}
	return clip(out, limit), nil
}

func (f *fakeArticles) ListUrgent(_ context.Context, excludeIDs []uint, limit int) ([]*objects.Article, error) {
	skip := make(map[uint]struct{}, len(excludeIDs))
	for _, id := range excludeIDs {
		skip[id] = struct{}{}
	}
	var out []*objects.Article
	for _, a := range f.sorted() {
		if !a.Urgent {
			continue
		}
		if _, ok := skip[a.ID]; ok {
			continue
		}
		out = append(out, a)
	}
	return clip(out, limit), nil
}

func (f *fakeArticles) ListLatestNonUrgent(_ context.Context, limit int) ([]*objects.Article, error) {
	var out []*objects.Article
	for _, a := range f.sorted() {
		if !a.Urgent {
			out = append(out, a)
		}
	}
	return clip(out, limit), nil
}

func (f *fakeArticles) ListTopLiked(_ context.Context, limit int) ([]*objects.Article, error) {
	out := make([]*objects.Article, len(f.items))
	copy(out, f.items)
	sort.Slice(out, func(i, j int) bool {
		return out[i].LikeCount > out[j].LikeCount
	})
	return clip(out, limit), nil
}

func (f *fakeArticles) ListRelated(_ context.Context, categoryIDs, excludeIDs []uint, limit int) ([]*objects.Article, error) {
	skip := make(map[uint]struct{}, len(excludeIDs))
	for _, id := range excludeIDs {
		skip[id] = struct{}{}
	}
	cats := make(map[uint]struct{}, len(categoryIDs))
	for _, id := range categoryIDs {
		cats[id] = struct{}{}
	}
	var out []*objects.Article
	for _, a := range f.sorted() {
		if _, ok := skip[a.ID]; ok {
			continue
		}
		if len(cats) > 0 {
			if a.CategoryID == nil {
				continue
			}
			if _, ok := cats[*a.CategoryID]; !ok {
				continue
			}
		}
		out = append(out, a)
	}
	return clip(out, limit), nil
}

type fakeProfiles struct {
	interests map[uint][]uint
	followers map[uint][]uint
	bios      map[uint]string
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{
		interests: make(map[uint][]uint),
		followers: make(map[uint][]uint),
		bios:      make(map[uint]string),
	}
}

func (f *fakeProfiles) InterestCategoryIDs(_ context.Context, userID uint) ([]uint, error) {
	return f.interests[userID], nil
}

func (f *fakeProfiles) UserIDsInterestedIn(_ context.Context, categoryID uint) ([]uint, error) {
	return f.followers[categoryID], nil
}

func (f *fakeProfiles) ReplaceInterests(_ context.Context, userID uint, categoryIDs []uint) error {
	f.interests[userID] = categoryIDs
	return nil
}

func (f *fakeProfiles) GetOrCreate(_ context.Context, userID uint) (*objects.Profile, error) {
	return &objects.Profile{UserID: userID, Bio: f.bios[userID]}, nil
}

func (f *fakeProfiles) UpdateBio(_ context.Context, userID uint, bio string) error {
	f.bios[userID] = bio
	return nil
}

type fakeHistory struct {
	top map[uint][]uint
}

func (f *fakeHistory) TopCategoryIDs(_ context.Context, userID uint, n int) ([]uint, error) {
	ids := f.top[userID]
	if len(ids) > n {
		ids = ids[:n]
	}
	return ids, nil
}

type fakeCategories struct {
	items []*objects.Category
}

func (f *fakeCategories) List(_ context.Context) ([]*objects.Category, error) {
	return f.items, nil
}

func (f *fakeCategories) GetByID(_ context.Context, id uint) (*objects.Category, error) {
	for _, c := range f.items {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCategories) GetByIDs(_ context.Context, ids []uint) ([]*objects.Category, error) {
	var out []*objects.Category
	for _, id := range ids {
		for _, c := range f.items {
			if c.ID == id {
				out = append(out, c)
				break
			}
		}
	}
	return out, nil
}

type fakeLedger struct {
	records  []*objects.Interaction
	articles map[uint]*objects.Article
	nextID   uint
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{articles: make(map[uint]*objects.Article)}
}

func (f *fakeLedger) Get(_ context.Context, userID, articleID uint, kind string) (*objects.Interaction, error) {
	for _, rec := range f.records {
		if rec.UserID == userID && rec.ArticleID == articleID && rec.Kind == kind {
			return rec, nil
		}
	}
	return nil, nil
}

func (f *fakeLedger) Create(_ context.Context, rec *objects.Interaction) error {
	f.nextID++
	rec.ID = f.nextID
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	f.records = append(f.records, rec)
	return nil
}

func (f *fakeLedger) Delete(_ context.Context, id uint) error {
	for i, rec := range f.records {
		if rec.ID == id {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeLedger) Count(_ context.Context, articleID uint, kind string) (int64, error) {
	var count int64
	for _, rec := range f.records {
		if rec.ArticleID == articleID && rec.Kind == kind {
			count++
		}
	}
	return count, nil
}

func (f *fakeLedger) ListByUserKind(_ context.Context, userID uint, kind string) ([]*objects.Interaction, error) {
	var out []*objects.Interaction
	for _, rec := range f.records {
		if rec.UserID == userID && rec.Kind == kind {
			rec.Article = f.articles[rec.ArticleID]
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (f *fakeLedger) Exists(_ context.Context, userID, articleID uint, kind string) (bool, error) {
	rec, _ := f.Get(nil, userID, articleID, kind)
	return rec != nil, nil
}

// fakeTx 直接在当前协程跑事务体，不接数据库
type fakeTx struct{}

func (fakeTx) Execute(ctx context.Context, _ *sql.TxOptions, operation func(ctx context.Context) error) error {
	return operation(ctx)
}

type fakeNotifications struct {
	items  []*objects.Notification
	nextID uint
}

func (f *fakeNotifications) CreateBatch(_ context.Context, list []*objects.Notification) error {
	for _, n := range list {
		f.nextID++
		n.ID = f.nextID
		if n.CreatedAt.IsZero() {
			n.CreatedAt = time.Now()
		}
		f.items = append(f.items, n)
	}
	return nil
}

func (f *fakeNotifications) filtered(userID uint, read bool, categoryIDs []uint) []*objects.Notification {
	cats := make(map[uint]struct{}, len(categoryIDs))
	for _, id := range categoryIDs {
		cats[id] = struct{}{}
	}
	var out []*objects.Notification
	for _, n := range f.items {
		if n.UserID != userID || n.Read != read || n.ArticleID == nil {
			continue
		}
		if len(cats) > 0 {
			if n.Article == nil || n.Article.CategoryID == nil {
				continue
			}
			if _, ok := cats[*n.Article.CategoryID]; !ok {
				continue
			}
		}
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func page(list []*objects.Notification, offset, limit int) []*objects.Notification {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list
}

func (f *fakeNotifications) ListUnread(_ context.Context, userID uint, categoryIDs []uint, offset, limit int) ([]*objects.Notification, int64, error) {
	all := f.filtered(userID, false, categoryIDs)
	return page(all, offset, limit), int64(len(all)), nil
}

func (f *fakeNotifications) ListRead(_ context.Context, userID uint, offset, limit int) ([]*objects.Notification, int64, error) {
	all := f.filtered(userID, true, nil)
	return page(all, offset, limit), int64(len(all)), nil
}

func (f *fakeNotifications) CountUnread(_ context.Context, userID uint) (int64, error) {
	return int64(len(f.filtered(userID, false, nil))), nil
}

func (f *fakeNotifications) GetOwned(_ context.Context, id, userID uint) (*objects.Notification, error) {
	for _, n := range f.items {
		if n.ID == id && n.UserID == userID {
			return n, nil
		}
	}
	return nil, nil
}

func (f *fakeNotifications) MarkRead(_ context.Context, id, userID uint) error {
	for _, n := range f.items {
		if n.ID == id && n.UserID == userID {
			n.Read = true
		}
	}
	return nil
}

func (f *fakeNotifications) MarkAllRead(_ context.Context, userID uint) error {
	for _, n := range f.items {
		if n.UserID == userID {
			n.Read = true
		}
	}
	return nil
}

type fakeUsers struct {
	items  []*objects.User
	nextID uint
}

func (f *fakeUsers) Create(_ context.Context, user *objects.User) error {
	f.nextID++
	user.ID = f.nextID
	f.items = append(f.items, user)
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id uint) (*objects.User, error) {
	for _, u := range f.items {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (*objects.User, error) {
	for _, u := range f.items {
		if strings.EqualFold(u.Username, username) {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*objects.User, error) {
	for _, u := range f.items {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) UpdatePassword(_ context.Context, userID uint, hash string) error {
	for _, u := range f.items {
		if u.ID == userID {
			u.Password = hash
			return nil
		}
	}
	return fmt.Errorf("user %d not found", userID)
}

type fakeSender struct {
	sent []sentMail
	err  error
}

type sentMail struct {
	to   string
	code string
}

func (f *fakeSender) SendResetCode(to, code string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{to: to, code: code})
	return nil
}

func uintPtr(v uint) *uint { return &v }
