// Package pipeline 实现留言事件的后台通知管道。
package pipeline

import (
	"context"
	"time"

	"folio-go/internal/repository"
	"folio-go/pkg/events"
	"folio-go/pkg/log"
)

// Notifier 消费留言事件，向站长发出新留言通知并回写通知时间。
// 当前通知渠道为结构化日志，接入邮件或 IM 时只需替换 notify 实现。
type Notifier struct {
	messageRepo repository.MessageRepository
}

// NewNotifier 创建一个新的 Notifier 实例。
func NewNotifier(messageRepo repository.MessageRepository) *Notifier {
	return &Notifier{messageRepo: messageRepo}
}

// Process 处理一条留言事件。留言已被删除时视为处理成功。
func (n *Notifier) Process(ctx context.Context, event events.MessageReceivedEvent) error {
	message, err := n.messageRepo.FindByID(event.MessageID)
	if err != nil {
		log.Warnf("留言不存在，跳过通知: messageID=%d", event.MessageID)
		return nil
	}
	if message.NotifiedAt != nil {
		// 消费者重启后可能重复投递，已通知过的直接跳过
		return nil
	}

	n.notify(event)

	if err := n.messageRepo.MarkNotified(message.ID, time.Now()); err != nil {
		return err
	}
	return nil
}

func (n *Notifier) notify(event events.MessageReceivedEvent) {
	fields := []interface{}{
		"messageID", event.MessageID,
		"name", event.Name,
		"email", event.Email,
		"subject", event.Subject,
	}
	if event.WantsCall {
		fields = append(fields,
			"wantsCall", true,
			"preferredDate", event.PreferredDate,
			"preferredTime", event.PreferredTime,
		)
	}
	log.Infow("收到新留言", fields...)
}
