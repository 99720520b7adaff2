package repository

import (
	"folio-go/internal/model"

	"gorm.io/gorm"
)

// ProjectRepository 接口定义了项目数据的持久化操作。
type ProjectRepository interface {
	Create(project *model.Project) error
	Update(project *model.Project) error
	Delete(id uint) error
	FindByID(id uint) (*model.Project, error)
	FindBySlug(slug string) (*model.Project, error)
	FindWithPagination(publishedOnly, featuredOnly bool, offset, limit int) ([]model.Project, int64, error)
}

type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository 创建一个新的 ProjectRepository 实例。
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

// Create 在数据库中创建一条项目记录。
func (r *projectRepository) Create(project *model.Project) error {
	return r.db.Create(project).Error
}

// Update 更新一条已存在的项目记录。
func (r *projectRepository) Update(project *model.Project) error {
	return r.db.Save(project).Error
}

// Delete 删除指定 ID 的项目记录。
func (r *projectRepository) Delete(id uint) error {
	return r.db.Delete(&model.Project{}, id).Error
}

// FindByID 根据 ID 查找一条项目记录。
func (r *projectRepository) FindByID(id uint) (*model.Project, error) {
	var project model.Project
	err := r.db.First(&project, id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// FindBySlug 根据 slug 查找一条项目记录。
func (r *projectRepository) FindBySlug(slug string) (*model.Project, error) {
	var project model.Project
	err := r.db.Where("slug = ?", slug).First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// FindWithPagination 分页检索项目记录，返回项目列表、总记录数和可能发生的错误。
func (r *projectRepository) FindWithPagination(publishedOnly, featuredOnly bool, offset, limit int) ([]model.Project, int64, error) {
	var projects []model.Project
	var total int64

	db := r.db.Model(&model.Project{})
	if publishedOnly {
		db = db.Where("published = ?", true)
	}
	if featuredOnly {
		db = db.Where("featured = ?", true)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("featured desc, created_at desc").Offset(offset).Limit(limit).Find(&projects).Error
	if err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}
