package service

import (
	"context"

	"github.com/iceymoss/echo-news/pkg/db/objects"
	"github.com/iceymoss/echo-news/pkg/xerr"
)

type ProfileStore interface {
	GetOrCreate(ctx context.Context, userID uint) (*objects.Profile, error)
	ReplaceInterests(ctx context.Context, userID uint, categoryIDs []uint) error
	UpdateBio(ctx context.Context, userID uint, bio string) error
}

type CategoryBatchGetter interface {
	GetByIDs(ctx context.Context, ids []uint) ([]*objects.Category, error)
}

// ProfileService 兴趣档案管理；档案只由用户自己的偏好编辑流程改动
type ProfileService struct {
	profiles   ProfileStore
	categories CategoryBatchGetter
}

func NewProfileService(profiles ProfileStore, categories CategoryBatchGetter) *ProfileService {
	return &ProfileService{profiles: profiles, categories: categories}
}

// Get 取档案，首次访问自动建档
func (s *ProfileService) Get(ctx context.Context, userID uint) (*objects.Profile, error) {
	return s.profiles.GetOrCreate(ctx, userID)
}

// UpdateInterests 整体替换兴趣栏目，空集合表示清空；未知栏目 ID 拒绝
func (s *ProfileService) UpdateInterests(ctx context.Context, userID uint, categoryIDs []uint) (*objects.Profile, error) {
	if len(categoryIDs) > 0 {
		cats, err := s.categories.GetByIDs(ctx, categoryIDs)
		if err != nil {
			return nil, err
		}
		if len(cats) != len(dedupeIDs(categoryIDs)) {
			return nil, xerr.New(xerr.ErrInvalidInput, "Categoria inválida.")
		}
	}
	if err := s.profiles.ReplaceInterests(ctx, userID, categoryIDs); err != nil {
		return nil, err
	}
	return s.profiles.GetOrCreate(ctx, userID)
}

// UpdateBio 更新个人简介
func (s *ProfileService) UpdateBio(ctx context.Context, userID uint, bio string) (*objects.Profile, error) {
	if err := s.profiles.UpdateBio(ctx, userID, bio); err != nil {
		return nil, err
	}
	return s.profiles.GetOrCreate(ctx, userID)
}

func dedupeIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
