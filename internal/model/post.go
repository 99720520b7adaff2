package model

import "time"

// BlogPost 对应于数据库中的 'blog_posts' 表。
type BlogPost struct {
	ID          uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string     `gorm:"type:varchar(200);not null" json:"title"`
	Slug        string     `gorm:"type:varchar(200);uniqueIndex;not null" json:"slug"`
	Summary     string     `gorm:"type:varchar(500)" json:"summary"`
	Content     string     `gorm:"type:longtext;not null" json:"content"`
	Tags        string     `gorm:"type:varchar(255)" json:"tags"`
	CoverObject string     `gorm:"type:varchar(255)" json:"coverObject"`
	Published   bool       `gorm:"not null;default:false" json:"published"`
	PublishedAt *time.Time `gorm:"default:null" json:"publishedAt"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (BlogPost) TableName() string {
	return "blog_posts"
}
