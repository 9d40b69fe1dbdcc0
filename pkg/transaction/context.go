package transaction

import (
	"context"

	"gorm.io/gorm"
)

// txContextKey 在 context 中存放事务的标识键
type txContextKey struct{}

// WithTransaction 将事务对象注入 context，用于跨 repo 传递
func WithTransaction(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txContextKey{}, tx)
}

// GetTransactionOrDB 从 context 取事务对象，不存在则退回默认连接
func GetTransactionOrDB(ctx context.Context, defaultDB *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txContextKey{}).(*gorm.DB); ok && tx != nil {
		return tx.WithContext(ctx)
	}
	return defaultDB.WithContext(ctx)
}
