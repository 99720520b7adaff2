package repository

import (
	"folio-go/internal/model"

	"gorm.io/gorm"
)

// ReviewRepository 接口定义了访客评价的持久化操作。
type ReviewRepository interface {
	Create(review *model.Review) error
	Update(review *model.Review) error
	Delete(id uint) error
	FindByID(id uint) (*model.Review, error)
	FindByStatus(status string, offset, limit int) ([]model.Review, int64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository 创建一个新的 ReviewRepository 实例。
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create 在数据库中创建一条评价记录。
func (r *reviewRepository) Create(review *model.Review) error {
	return r.db.Create(review).Error
}

// Update 更新一条已存在的评价记录。
func (r *reviewRepository) Update(review *model.Review) error {
	return r.db.Save(review).Error
}

// Delete 删除指定 ID 的评价记录。
func (r *reviewRepository) Delete(id uint) error {
	return r.db.Delete(&model.Review{}, id).Error
}

// FindByID 根据 ID 查找一条评价记录。
func (r *reviewRepository) FindByID(id uint) (*model.Review, error) {
	var review model.Review
	err := r.db.First(&review, id).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// FindByStatus 分页检索评价记录，status 为空时返回全部状态。
func (r *reviewRepository) FindByStatus(status string, offset, limit int) ([]model.Review, int64, error) {
	var reviews []model.Review
	var total int64

	db := r.db.Model(&model.Review{})
	if status != "" {
		db = db.Where("status = ?", status)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("created_at desc").Offset(offset).Limit(limit).Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}
