package repository

import (
	"time"

	"folio-go/internal/model"

	"gorm.io/gorm"
)

// MessageRepository 接口定义了访客留言的持久化操作。
type MessageRepository interface {
	Create(message *model.ContactMessage) error
	Update(message *model.ContactMessage) error
	Delete(id uint) error
	FindByID(id uint) (*model.ContactMessage, error)
	FindWithPagination(status string, offset, limit int) ([]model.ContactMessage, int64, error)
	MarkNotified(id uint, at time.Time) error
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository 创建一个新的 MessageRepository 实例。
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

// Create 在数据库中创建一条留言记录。
func (r *messageRepository) Create(message *model.ContactMessage) error {
	return r.db.Create(message).Error
}

// Update 更新一条已存在的留言记录。
func (r *messageRepository) Update(message *model.ContactMessage) error {
	return r.db.Save(message).Error
}

// Delete 删除指定 ID 的留言记录。
func (r *messageRepository) Delete(id uint) error {
	return r.db.Delete(&model.ContactMessage{}, id).Error
}

// FindByID 根据 ID 查找一条留言记录。
func (r *messageRepository) FindByID(id uint) (*model.ContactMessage, error) {
	var message model.ContactMessage
	err := r.db.First(&message, id).Error
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// FindWithPagination 分页检索留言记录，status 为空时返回全部状态。
func (r *messageRepository) FindWithPagination(status string, offset, limit int) ([]model.ContactMessage, int64, error) {
	var messages []model.ContactMessage
	var total int64

	db := r.db.Model(&model.ContactMessage{})
	if status != "" {
		db = db.Where("status = ?", status)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("created_at desc").Offset(offset).Limit(limit).Find(&messages).Error
	if err != nil {
		return nil, 0, err
	}

	return messages, total, nil
}

// MarkNotified 记录留言的通知完成时间。
func (r *messageRepository) MarkNotified(id uint, at time.Time) error {
	return r.db.Model(&model.ContactMessage{}).Where("id = ?", id).Update("notified_at", at).Error
}
