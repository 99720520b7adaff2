package service

import (
	"context"

	"folio-go/internal/assistant"
	"folio-go/internal/model"
	"folio-go/internal/repository"
	"folio-go/pkg/events"
	"folio-go/pkg/log"
)

// MessageEventProducer 供留言服务在落库后向通知管道投递事件。
type MessageEventProducer interface {
	ProduceMessageEvent(event events.MessageReceivedEvent) error
}

// MessageService 接口定义了访客留言的业务操作。
type MessageService interface {
	// SubmitMessage 接收一次提交。验证失败或验证码不匹配时留言不落库；
	// 验证码不匹配时第二个返回值携带新签发的挑战。
	SubmitMessage(ctx context.Context, sub assistant.ContactSubmission) (*model.ContactMessage, *Challenge, error)
	ListMessages(status string, page, pageSize int) ([]model.ContactMessage, int64, error)
	MarkRead(id uint) error
	Delete(id uint) error
}

type messageService struct {
	messageRepo repository.MessageRepository
	captchaSvc  CaptchaService
	producer    MessageEventProducer
}

// NewMessageService 创建一个新的 MessageService 实例。
func NewMessageService(messageRepo repository.MessageRepository, captchaSvc CaptchaService, producer MessageEventProducer) MessageService {
	return &messageService{
		messageRepo: messageRepo,
		captchaSvc:  captchaSvc,
		producer:    producer,
	}
}

// SubmitMessage 校验并保存一次留言提交，保存成功后异步通知仅尽力而为。
func (s *messageService) SubmitMessage(ctx context.Context, sub assistant.ContactSubmission) (*model.ContactMessage, *Challenge, error) {
	// 验证码校验先于字段校验与任何写入：答错快速失败并重新出题，
	// 未携带挑战的提交（如助手排期）跳过
	if sub.CaptchaID != "" {
		next, err := s.captchaSvc.Verify(ctx, sub.CaptchaID, sub.CaptchaAnswer)
		if err != nil {
			return nil, next, err
		}
	}

	normalized, err := assistant.ValidateSubmission(sub)
	if err != nil {
		return nil, nil, err
	}

	message := &model.ContactMessage{
		Name:          normalized.Name,
		Email:         normalized.Email,
		Subject:       normalized.Subject,
		Message:       normalized.Message,
		WantsCall:     normalized.WantsCall,
		PreferredDate: normalized.PreferredDate,
		PreferredTime: normalized.PreferredTime,
		Status:        model.MessageStatusNew,
	}
	if err := s.messageRepo.Create(message); err != nil {
		return nil, nil, err
	}

	// 投递失败只记录日志：留言已落库，通知管道不阻塞提交
	event := events.MessageReceivedEvent{
		MessageID:     message.ID,
		Name:          message.Name,
		Email:         message.Email,
		Subject:       message.Subject,
		WantsCall:     message.WantsCall,
		PreferredDate: message.PreferredDate,
		PreferredTime: message.PreferredTime,
	}
	if err := s.producer.ProduceMessageEvent(event); err != nil {
		log.Warnf("投递留言事件失败: messageID=%d, error: %v", message.ID, err)
	}

	return message, nil, nil
}

// ListMessages 分页返回留言，供管理后台使用。
func (s *messageService) ListMessages(status string, page, pageSize int) ([]model.ContactMessage, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.messageRepo.FindWithPagination(status, (page-1)*pageSize, pageSize)
}

// MarkRead 将一条留言标记为已读。
func (s *messageService) MarkRead(id uint) error {
	message, err := s.messageRepo.FindByID(id)
	if err != nil {
		return err
	}
	message.Status = model.MessageStatusRead
	return s.messageRepo.Update(message)
}

// Delete 删除一条留言。
func (s *messageService) Delete(id uint) error {
	return s.messageRepo.Delete(id)
}
