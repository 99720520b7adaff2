package repository

import (
	"folio-go/internal/model"

	"gorm.io/gorm"
)

// PostRepository 接口定义了博客文章的持久化操作。
type PostRepository interface {
	Create(post *model.BlogPost) error
	Update(post *model.BlogPost) error
	Delete(id uint) error
	FindByID(id uint) (*model.BlogPost, error)
	FindBySlug(slug string) (*model.BlogPost, error)
	FindWithPagination(publishedOnly bool, offset, limit int) ([]model.BlogPost, int64, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository 创建一个新的 PostRepository 实例。
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// Create 在数据库中创建一篇博客文章。
func (r *postRepository) Create(post *model.BlogPost) error {
	return r.db.Create(post).Error
}

// Update 更新一篇已存在的博客文章。
func (r *postRepository) Update(post *model.BlogPost) error {
	return r.db.Save(post).Error
}

// Delete 删除指定 ID 的博客文章。
func (r *postRepository) Delete(id uint) error {
	return r.db.Delete(&model.BlogPost{}, id).Error
}

// FindByID 根据 ID 查找一篇博客文章。
func (r *postRepository) FindByID(id uint) (*model.BlogPost, error) {
	var post model.BlogPost
	err := r.db.First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// FindBySlug 根据 slug 查找一篇博客文章。
func (r *postRepository) FindBySlug(slug string) (*model.BlogPost, error) {
	var post model.BlogPost
	err := r.db.Where("slug = ?", slug).First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// FindWithPagination 分页检索博客文章，publishedOnly 为 true 时只返回已发布的文章。
func (r *postRepository) FindWithPagination(publishedOnly bool, offset, limit int) ([]model.BlogPost, int64, error) {
	var posts []model.BlogPost
	var total int64

	db := r.db.Model(&model.BlogPost{})
	if publishedOnly {
		db = db.Where("published = ?", true)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("created_at desc").Offset(offset).Limit(limit).Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}
