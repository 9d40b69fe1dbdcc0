package repo

import (
	"context"

	"github.com/iceymoss/echo-news/pkg/db"
	"github.com/iceymoss/echo-news/pkg/db/objects"
	"github.com/iceymoss/echo-news/pkg/transaction"
)

// HistoryRepo 兴趣积分只读仓库，积分由外部流程维护
type HistoryRepo struct{}

func NewHistoryRepo() *HistoryRepo { return &HistoryRepo{} }

// TopCategoryIDs 积分最高的前 n 个栏目
func (r *HistoryRepo) TopCategoryIDs(ctx context.Context, userID uint, n int) ([]uint, error) {
	var ids []uint
	err := transaction.GetTransactionOrDB(ctx, db.GetConn()).
		Model(&objects.InterestHistory{}).
		Where("user_id = ?", userID).
		Order("score DESC").Limit(n).
		Pluck("category_id", &ids).Error
	return ids, err
}
