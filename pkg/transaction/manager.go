package transaction

import (
	"context"
	"database/sql"

	"github.com/cockroachdb/cockroach-go/v2/crdb/crdbgorm"
	"gorm.io/gorm"

	"github.com/iceymoss/echo-news/pkg/db"
)

// Manager 管理数据库事务生命周期和上下文传播
type Manager struct {
	db *gorm.DB
}

// NewManager 创建事务管理器，自动重试、自动提交或回滚
func NewManager() *Manager {
	return &Manager{
		db: db.GetConn(),
	}
}

// Execute 在事务中执行业务操作
// - ctx: 上下文，用于超时控制和取消
// - opts: 事务隔离级别选项
// - operation: 事务内执行的业务逻辑
func (m *Manager) Execute(
	ctx context.Context,
	opts *sql.TxOptions,
	operation func(ctx context.Context) error,
) error {
	return crdbgorm.ExecuteTx(ctx, m.db, opts, func(tx *gorm.DB) error {
		// 把事务实例注入上下文，repo 层经 GetTransactionOrDB 取用
		return operation(WithTransaction(ctx, tx))
	})
}
