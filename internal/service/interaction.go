package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/iceymoss/echo-news/pkg/db/objects"
	"github.com/iceymoss/echo-news/pkg/xerr"
)

type LedgerStore interface {
	Get(ctx context.Context, userID, articleID uint, kind string) (*objects.Interaction, error)
	Create(ctx context.Context, rec *objects.Interaction) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context, articleID uint, kind string) (int64, error)
	ListByUserKind(ctx context.Context, userID uint, kind string) ([]*objects.Interaction, error)
}

type CounterStore interface {
	Exists(ctx context.Context, id uint) (bool, error)
	UpdateCounter(ctx context.Context, id uint, kind string, count int64) error
}

// InteractionService 点赞/收藏开关与计数同步
type InteractionService struct {
	ledger   LedgerStore
	articles CounterStore
	tx       TxRunner
}

func NewInteractionService(ledger LedgerStore, articles CounterStore, tx TxRunner) *InteractionService {
	return &InteractionService{ledger: ledger, articles: articles, tx: tx}
}

// ToggleResult Fired=true 表示本次创建了记录，false 表示撤销了
type ToggleResult struct {
	Fired    bool  `json:"fired"`
	NewCount int64 `json:"new_count"`
}

// Toggle 开关一次互动并同步计数
//
// 判存、增删、按台账重算计数、回写缓存在同一个事务里完成，
// 任一步失败整体回滚，保证台账和计数不脱节。
// 计数永远从台账 COUNT 重算，不走增量加减。
func (s *InteractionService) Toggle(ctx context.Context, userID, articleID uint, kind string) (*ToggleResult, error) {
	if !objects.ValidInteractionKind(kind) {
		return nil, xerr.New(xerr.ErrInvalidInput, fmt.Sprintf("Tipo de interação inválido: %s", kind))
	}

	exists, err := s.articles.Exists(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, xerr.New(xerr.ErrNotFound, "Notícia não encontrada.")
	}

	result := &ToggleResult{}
	err = s.tx.Execute(ctx, nil, func(ctx context.Context) error {
		rec, err := s.ledger.Get(ctx, userID, articleID, kind)
		if err != nil {
			return err
		}
		if rec != nil {
			if err := s.ledger.Delete(ctx, rec.ID); err != nil {
				return err
			}
			result.Fired = false
		} else {
			if err := s.ledger.Create(ctx, &objects.Interaction{
				UserID:    userID,
				ArticleID: articleID,
				Kind:      kind,
			}); err != nil {
				return err
			}
			result.Fired = true
		}

		count, err := s.ledger.Count(ctx, articleID, kind)
		if err != nil {
			return err
		}
		result.NewCount = count
		return s.articles.UpdateCounter(ctx, articleID, kind, count)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ListFilter 点赞/收藏清单的筛选条件
type ListFilter struct {
	Term     string
	Category string
}

// Liked 用户点赞过的文章，最近互动在前
func (s *InteractionService) Liked(ctx context.Context, userID uint, filter ListFilter) ([]*objects.Article, error) {
	return s.listByKind(ctx, userID, objects.InteractionLike, filter)
}

// Saved 用户收藏过的文章，最近互动在前
func (s *InteractionService) Saved(ctx context.Context, userID uint, filter ListFilter) ([]*objects.Article, error) {
	return s.listByKind(ctx, userID, objects.InteractionSave, filter)
}

func (s *InteractionService) listByKind(ctx context.Context, userID uint, kind string, filter ListFilter) ([]*objects.Article, error) {
	records, err := s.ledger.ListByUserKind(ctx, userID, kind)
	if err != nil {
		return nil, err
	}

	term := strings.ToLower(strings.TrimSpace(filter.Term))
	category := strings.TrimSpace(filter.Category)

	seen := make(map[uint]struct{}, len(records))
	articles := make([]*objects.Article, 0, len(records))
	for _, rec := range records {
		a := rec.Article
		if a == nil {
			continue
		}
		if _, dup := seen[a.ID]; dup {
			continue
		}
		if category != "" {
			if a.Category == nil || !strings.EqualFold(a.Category.Name, category) {
				continue
			}
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(a.Title), term) &&
			!strings.Contains(strings.ToLower(a.Content), term) {
			continue
		}
		seen[a.ID] = struct{}{}
		articles = append(articles, a)
	}
	return articles, nil
}
