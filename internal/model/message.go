package model

import "time"

// 留言处理状态。
const (
	MessageStatusNew  = "new"
	MessageStatusRead = "read"
)

// ContactMessage 对应于数据库中的 'contact_messages' 表。
// 联系表单与聊天助手的排期提交最终都写入这张表。
type ContactMessage struct {
	ID            uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string     `gorm:"type:varchar(100);not null" json:"name"`
	Email         string     `gorm:"type:varchar(255);not null;index" json:"email"`
	Subject       string     `gorm:"type:varchar(200);not null" json:"subject"`
	Message       string     `gorm:"type:text;not null" json:"message"`
	WantsCall     bool       `gorm:"not null;default:false" json:"wantsCall"`
	PreferredDate string     `gorm:"type:varchar(10)" json:"preferredDate"`
	PreferredTime string     `gorm:"type:varchar(5)" json:"preferredTime"`
	Status        string     `gorm:"type:varchar(20);not null;default:'new'" json:"status"`
	NotifiedAt    *time.Time `gorm:"default:null" json:"notifiedAt"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"createdAt"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (ContactMessage) TableName() string {
	return "contact_messages"
}
