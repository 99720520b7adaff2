// Package assistant 实现了站点聊天助手的会话状态机：
// 消息列表维护、意图识别、固定话术回复，以及排期提交的校验与投递。
package assistant

import "time"

// Role 表示消息的发送方。
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// QuickOption 是附着在一条助手消息上的快捷按钮。
// 附着之后不再变更。
type QuickOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Icon  string `json:"icon"`
}

// 四个固定的快捷选项值。
const (
	OptionSchedule = "schedule"
	OptionQuestion = "question"
	OptionProjects = "projects"
	OptionServices = "services"
)

// ChatMessage 是会话中的一条消息。
// ID 在会话生命周期内单调分配，创建顺序是唯一的排序依据；
// Timestamp 仅作展示，不参与排序或过期。
type ChatMessage struct {
	ID        uint64        `json:"id"`
	Role      Role          `json:"role"`
	Content   string        `json:"content"`
	Timestamp time.Time     `json:"timestamp"`
	Options   []QuickOption `json:"options,omitempty"`
}

// ScheduleRequest 是内联排期表单的一次填写。
// 它不单独落库，成功提交后以通用留言的形式转发。
type ScheduleRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Date  string `json:"date"` // YYYY-MM-DD
	Time  string `json:"time"` // 必须取自 AllowedTimes
	Topic string `json:"topic"`
}

// AllowedTimes 是排期表单可选的时间段。
var AllowedTimes = []string{"09:00", "10:00", "11:00", "14:00", "15:00", "16:00", "17:00"}

// IsAllowedTime 判断给定时间段是否在可选集合内。
func IsAllowedTime(t string) bool {
	for _, allowed := range AllowedTimes {
		if t == allowed {
			return true
		}
	}
	return false
}

// ContactSubmission 是发往留言存储接口的一次结构化提交。
type ContactSubmission struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Subject       string `json:"subject"`
	Message       string `json:"message"`
	WantsCall     bool   `json:"wantsCall,omitempty"`
	PreferredDate string `json:"preferredDate,omitempty"`
	PreferredTime string `json:"preferredTime,omitempty"`
	// 验证码字段只在公开联系表单链路上出现，不参与投递载荷。
	CaptchaID     string `json:"-"`
	CaptchaAnswer int    `json:"-"`
}
