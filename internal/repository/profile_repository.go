package repository

import (
	"folio-go/internal/model"

	"gorm.io/gorm"
)

// ProfileRepository 接口定义了站点个人资料（单行）的持久化操作。
type ProfileRepository interface {
	Get() (*model.Profile, error)
	Save(profile *model.Profile) error
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository 创建一个新的 ProfileRepository 实例。
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// Get 返回唯一的一行个人资料记录。
func (r *profileRepository) Get() (*model.Profile, error) {
	var profile model.Profile
	err := r.db.First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Save 创建或更新个人资料记录。
func (r *profileRepository) Save(profile *model.Profile) error {
	return r.db.Save(profile).Error
}
