// Package service 承载门户的业务规则：推荐、通知扇出、
// 互动台账与计数同步、收件箱、账号与找回密码
package service

import (
	"context"
	"database/sql"
)

// ProfileReader 读取用户兴趣栏目集合，档案缺失按空集处理
type ProfileReader interface {
	InterestCategoryIDs(ctx context.Context, userID uint) ([]uint, error)
}

// TxRunner 事务执行器，生产实现是 pkg/transaction.Manager
type TxRunner interface {
	Execute(ctx context.Context, opts *sql.TxOptions, operation func(ctx context.Context) error) error
}
