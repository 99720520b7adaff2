package model

import "time"

// Project 对应于数据库中的 'projects' 表。
type Project struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string    `gorm:"type:varchar(150);not null" json:"title"`
	Slug        string    `gorm:"type:varchar(150);uniqueIndex;not null" json:"slug"`
	Summary     string    `gorm:"type:varchar(500)" json:"summary"`
	Description string    `gorm:"type:text" json:"description"`
	// Tags 以逗号分隔存储，如 "go,gin,redis"
	Tags        string    `gorm:"type:varchar(255)" json:"tags"`
	CoverObject string    `gorm:"type:varchar(255)" json:"coverObject"`
	RepoURL     string    `gorm:"type:varchar(255)" json:"repoUrl"`
	DemoURL     string    `gorm:"type:varchar(255)" json:"demoUrl"`
	Featured    bool      `gorm:"not null;default:false" json:"featured"`
	Published   bool      `gorm:"not null;default:false" json:"published"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (Project) TableName() string {
	return "projects"
}
