package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/iceymoss/echo-news/pkg/db"
	"github.com/iceymoss/echo-news/pkg/db/objects"
	"github.com/iceymoss/echo-news/pkg/transaction"
)

type UserRepo struct{}

func NewUserRepo() *UserRepo { return &UserRepo{} }

func (r *UserRepo) Create(ctx context.Context, user *objects.User) error {
	return transaction.GetTransactionOrDB(ctx, db.GetConn()).Create(user).Error
}

func (r *UserRepo) GetByID(ctx context.Context, id uint) (*objects.User, error) {
	var user objects.User
	err := transaction.GetTransactionOrDB(ctx, db.GetConn()).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, err
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*objects.User, error) {
	var user objects.User
	err := transaction.GetTransactionOrDB(ctx, db.GetConn()).
		Where("LOWER(username) = LOWER(?)", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, err
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*objects.User, error) {
	var user objects.User
	err := transaction.GetTransactionOrDB(ctx, db.GetConn()).
		Where("LOWER(email) = LOWER(?)", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, err
}

func (r *UserRepo) UpdatePassword(ctx context.Context, userID uint, hash string) error {
	return transaction.GetTransactionOrDB(ctx, db.GetConn()).
		Model(&objects.User{}).Where("id = ?", userID).
		Update("password", hash).Error
}
