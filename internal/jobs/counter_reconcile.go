package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/iceymoss/echo-news/internal/core"
	"github.com/iceymoss/echo-news/internal/repo"
	"github.com/iceymoss/echo-news/pkg/db/objects"
	"github.com/iceymoss/echo-news/pkg/logger"
)

func init() {
	Register("counter_reconcile", func() core.Job {
		return &CounterReconcileJob{
			articles:     repo.NewArticleRepo(),
			interactions: repo.NewInteractionRepo(),
		}
	})
}

// CounterReconcileJob 按互动流水重算文章的点赞/收藏计数
//
// 计数列只是流水的缓存，切换操作在事务里同步回写；这个任务
// 周期性兜底修复可能的漂移。params.window_hours > 0 时只对账
// 窗口内有过互动的文章，否则全量。
type CounterReconcileJob struct {
	articles     *repo.ArticleRepo
	interactions *repo.InteractionRepo
}

func (j *CounterReconcileJob) Identifier() string { return "counter_reconcile" }

func (j *CounterReconcileJob) Run(ctx context.Context, params map[string]any) error {
	var ids []uint
	var err error

	window := paramFloat(params, "window_hours")
	if window > 0 {
		since := time.Now().Add(-time.Duration(window * float64(time.Hour)))
		ids, err = j.articles.IDsTouchedSince(ctx, since)
	} else {
		ids, err = j.articles.AllIDs(ctx)
	}
	if err != nil {
		return err
	}

	fixed := 0
	for _, id := range ids {
		for _, kind := range []string{objects.InteractionLike, objects.InteractionSave} {
			count, err := j.interactions.Count(ctx, id, kind)
			if err != nil {
				return err
			}
			if err := j.articles.UpdateCounter(ctx, id, kind, count); err != nil {
				return err
			}
		}
		fixed++
	}

	logger.Info("✅ 计数对账完成", zap.Int("articles", fixed), zap.Float64("window_hours", window))
	return nil
}

func paramFloat(params map[string]any, key string) float64 {
	switch v := params[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return 0
	}
}
