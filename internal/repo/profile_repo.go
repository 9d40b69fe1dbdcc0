package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/iceymoss/echo-news/pkg/db"
	"github.com/iceymoss/echo-news/pkg/db/objects"
	"github.com/iceymoss/echo-news/pkg/transaction"
)

type ProfileRepo struct{}

func NewProfileRepo() *ProfileRepo { return &ProfileRepo{} }

// GetOrCreate 取用户兴趣档案，不存在则创建空档案
func (r *ProfileRepo) GetOrCreate(ctx context.Context, userID uint) (*objects.Profile, error) {
	conn := transaction.GetTransactionOrDB(ctx, db.GetConn())

	var profile objects.Profile
	err := conn.Preload("Categories").Where("user_id = ?", userID).First(&profile).Error
	if err == nil {
		return &profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	profile = objects.Profile{UserID: userID}
	if err := conn.Create(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// InterestCategoryIDs 用户兴趣栏目 ID 集合，无档案视为空集
func (r *ProfileRepo) InterestCategoryIDs(ctx context.Context, userID uint) ([]uint, error) {
	profile, err := r.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	return profile.CategoryIDs(), nil
}

// ReplaceInterests 整体替换兴趣栏目集合，空集合即清空
func (r *ProfileRepo) ReplaceInterests(ctx context.Context, userID uint, categoryIDs []uint) error {
	conn := transaction.GetTransactionOrDB(ctx, db.GetConn())

	profile, err := r.GetOrCreate(ctx, userID)
	if err != nil {
		return err
	}

	if len(categoryIDs) == 0 {
		return conn.Model(profile).Association("Categories").Clear()
	}

	var cats []objects.Category
	if err := conn.Where("id IN ?", categoryIDs).Find(&cats).Error; err != nil {
		return err
	}
	return conn.Model(profile).Association("Categories").Replace(cats)
}

// UpdateBio 更新个人简介
func (r *ProfileRepo) UpdateBio(ctx context.Context, userID uint, bio string) error {
	conn := transaction.GetTransactionOrDB(ctx, db.GetConn())
	if _, err := r.GetOrCreate(ctx, userID); err != nil {
		return err
	}
	return conn.Model(&objects.Profile{}).
		Where("user_id = ?", userID).Update("bio", bio).Error
}

// UserIDsInterestedIn 关注了指定栏目的用户 ID，扇出定向用
func (r *ProfileRepo) UserIDsInterestedIn(ctx context.Context, categoryID uint) ([]uint, error) {
	var ids []uint
	err := transaction.GetTransactionOrDB(ctx, db.GetConn()).
		Model(&objects.Profile{}).
		Joins("JOIN profile_categories pc ON pc.profile_id = profiles.id").
		Where("pc.category_id = ?", categoryID).
		Pluck("profiles.user_id", &ids).Error
	return ids, err
}
