package model

import "time"

// 评价审核状态。
const (
	ReviewStatusPending  = "pending"
	ReviewStatusApproved = "approved"
)

// Review 对应于数据库中的 'reviews' 表，访客提交后需管理员审核才对外展示。
type Review struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Author    string    `gorm:"type:varchar(100);not null" json:"author"`
	Company   string    `gorm:"type:varchar(150)" json:"company"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Rating    int       `gorm:"not null;default:5" json:"rating"` // 1-5
	Status    string    `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (Review) TableName() string {
	return "reviews"
}
