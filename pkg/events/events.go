// Package events 定义了通过 Kafka 传递的事件载荷。
package events

// MessageReceivedEvent 表示一条新的访客留言已写入数据库，等待通知处理。
type MessageReceivedEvent struct {
	MessageID     uint   `json:"message_id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Subject       string `json:"subject"`
	WantsCall     bool   `json:"wants_call"`
	PreferredDate string `json:"preferred_date,omitempty"`
	PreferredTime string `json:"preferred_time,omitempty"`
}
