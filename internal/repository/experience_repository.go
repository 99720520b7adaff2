package repository

import (
	"folio-go/internal/model"

	"gorm.io/gorm"
)

// ExperienceRepository 接口定义了工作经历的持久化操作。
type ExperienceRepository interface {
	Create(exp *model.WorkExperience) error
	Update(exp *model.WorkExperience) error
	Delete(id uint) error
	FindByID(id uint) (*model.WorkExperience, error)
	FindAll() ([]model.WorkExperience, error)
}

type experienceRepository struct {
	db *gorm.DB
}

// NewExperienceRepository 创建一个新的 ExperienceRepository 实例。
func NewExperienceRepository(db *gorm.DB) ExperienceRepository {
	return &experienceRepository{db: db}
}

// Create 在数据库中创建一条工作经历记录。
func (r *experienceRepository) Create(exp *model.WorkExperience) error {
	return r.db.Create(exp).Error
}

// Update 更新一条已存在的工作经历记录。
func (r *experienceRepository) Update(exp *model.WorkExperience) error {
	return r.db.Save(exp).Error
}

// Delete 删除指定 ID 的工作经历记录。
func (r *experienceRepository) Delete(id uint) error {
	return r.db.Delete(&model.WorkExperience{}, id).Error
}

// FindByID 根据 ID 查找一条工作经历记录。
func (r *experienceRepository) FindByID(id uint) (*model.WorkExperience, error) {
	var exp model.WorkExperience
	err := r.db.First(&exp, id).Error
	if err != nil {
		return nil, err
	}
	return &exp, nil
}

// FindAll 按展示顺序返回全部工作经历（先按 sort_order，再按开始时间倒序）。
func (r *experienceRepository) FindAll() ([]model.WorkExperience, error) {
	var exps []model.WorkExperience
	err := r.db.Order("sort_order asc, start_date desc").Find(&exps).Error
	return exps, err
}
