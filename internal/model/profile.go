package model

import "time"

// Profile 对应于数据库中的 'profile' 表，站点只维护一行记录。
type Profile struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	FullName     string    `gorm:"type:varchar(100);not null" json:"fullName"`
	Title        string    `gorm:"type:varchar(150)" json:"title"`
	Bio          string    `gorm:"type:text" json:"bio"`
	Email        string    `gorm:"type:varchar(255)" json:"email"`
	Phone        string    `gorm:"type:varchar(50)" json:"phone"`
	Location     string    `gorm:"type:varchar(100)" json:"location"`
	GithubURL    string    `gorm:"type:varchar(255)" json:"githubUrl"`
	LinkedinURL  string    `gorm:"type:varchar(255)" json:"linkedinUrl"`
	AvatarObject string    `gorm:"type:varchar(255)" json:"avatarObject"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (Profile) TableName() string {
	return "profile"
}

// WorkExperience 对应于数据库中的 'work_experiences' 表。
type WorkExperience struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Company   string    `gorm:"type:varchar(150);not null" json:"company"`
	Position  string    `gorm:"type:varchar(150);not null" json:"position"`
	Summary   string    `gorm:"type:text" json:"summary"`
	StartDate string    `gorm:"type:varchar(10);not null" json:"startDate"` // YYYY-MM-DD
	EndDate   *string   `gorm:"type:varchar(10)" json:"endDate"`            // NULL 表示至今
	Location  string    `gorm:"type:varchar(100)" json:"location"`
	SortOrder int       `gorm:"not null;default:0" json:"sortOrder"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (WorkExperience) TableName() string {
	return "work_experiences"
}
