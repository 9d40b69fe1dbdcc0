package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/iceymoss/echo-news/pkg/db"
	"github.com/iceymoss/echo-news/pkg/db/objects"
	"github.com/iceymoss/echo-news/pkg/transaction"
)

type CategoryRepo struct{}

func NewCategoryRepo() *CategoryRepo { return &CategoryRepo{} }

// List 全部栏目，按名称排序
func (r *CategoryRepo) List(ctx context.Context) ([]*objects.Category, error) {
	var list []*objects.Category
	err := transaction.GetTransactionOrDB(ctx, db.GetConn()).
		Order("name").Find(&list).Error
	return list, err
}

func (r *CategoryRepo) GetByIDs(ctx context.Context, ids []uint) ([]*objects.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var list []*objects.Category
	err := transaction.GetTransactionOrDB(ctx, db.GetConn()).
		Where("id IN ?", ids).Find(&list).Error
	return list, err
}

func (r *CategoryRepo) GetByID(ctx context.Context, id uint) (*objects.Category, error) {
	var cat objects.Category
	err := transaction.GetTransactionOrDB(ctx, db.GetConn()).First(&cat, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &cat, err
}

// GetByName 按名称查栏目，不区分大小写
func (r *CategoryRepo) GetByName(ctx context.Context, name string) (*objects.Category, error) {
	var cat objects.Category
	err := transaction.GetTransactionOrDB(ctx, db.GetConn()).
		Where("LOWER(name) = LOWER(?)", name).First(&cat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &cat, err
}
