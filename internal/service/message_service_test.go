package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"folio-go/internal/assistant"
	"folio-go/internal/model"
	"folio-go/internal/repository"
	"folio-go/internal/service"
	"folio-go/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// recordingProducer 记录投递的事件，供断言使用。
type recordingProducer struct {
	events []events.MessageReceivedEvent
	err    error
}

func (p *recordingProducer) ProduceMessageEvent(event events.MessageReceivedEvent) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func newMessageTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.ContactMessage{}))
	return db
}

func newMessageService(t *testing.T) (service.MessageService, service.CaptchaService, *memoryCaptchaRepository, *recordingProducer, *gorm.DB) {
	t.Helper()
	db := newMessageTestDB(t)
	captchaRepo := newMemoryCaptchaRepository()
	captchaSvc := service.NewCaptchaService(captchaRepo, 10*time.Minute)
	producer := &recordingProducer{}
	svc := service.NewMessageService(repository.NewMessageRepository(db), captchaSvc, producer)
	return svc, captchaSvc, captchaRepo, producer, db
}

func TestSubmitMessageStoresAndNotifies(t *testing.T) {
	svc, captchaSvc, _, producer, db := newMessageService(t)
	ctx := context.Background()

	challenge, err := captchaSvc.Issue(ctx)
	require.NoError(t, err)

	message, next, err := svc.SubmitMessage(ctx, assistant.ContactSubmission{
		Name:          "Jean Dupont",
		Email:         "jean@example.com",
		Message:       "I would like to talk about a project.",
		WantsCall:     true,
		PreferredDate: "2026-09-10",
		PreferredTime: "14:00",
		CaptchaID:     challenge.CaptchaID,
		CaptchaAnswer: challenge.A + challenge.B,
	})
	require.NoError(t, err)
	assert.Nil(t, next)
	require.NotNil(t, message)
	assert.NotZero(t, message.ID)
	// 未填主题时使用默认主题
	assert.Equal(t, assistant.DefaultSubject, message.Subject)
	assert.Equal(t, model.MessageStatusNew, message.Status)

	var stored model.ContactMessage
	require.NoError(t, db.First(&stored, message.ID).Error)
	assert.Equal(t, "jean@example.com", stored.Email)
	assert.True(t, stored.WantsCall)
	assert.Equal(t, "2026-09-10", stored.PreferredDate)

	require.Len(t, producer.events, 1)
	assert.Equal(t, message.ID, producer.events[0].MessageID)
	assert.Equal(t, "14:00", producer.events[0].PreferredTime)
}

func TestSubmitMessageInvalidEmailIsRejectedBeforeStorage(t *testing.T) {
	svc, _, _, producer, db := newMessageService(t)

	_, _, err := svc.SubmitMessage(context.Background(), assistant.ContactSubmission{
		Name:    "Jean",
		Email:   "jean@",
		Message: "hello",
	})

	var vErr *assistant.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "email", vErr.Field)

	var count int64
	require.NoError(t, db.Model(&model.ContactMessage{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.Empty(t, producer.events)
}

func TestSubmitMessageWrongCaptchaReturnsFreshChallenge(t *testing.T) {
	svc, captchaSvc, _, producer, db := newMessageService(t)
	ctx := context.Background()

	challenge, err := captchaSvc.Issue(ctx)
	require.NoError(t, err)

	_, next, err := svc.SubmitMessage(ctx, assistant.ContactSubmission{
		Name:          "Jean",
		Email:         "jean@example.com",
		Message:       "hello",
		CaptchaID:     challenge.CaptchaID,
		CaptchaAnswer: challenge.A + challenge.B + 1,
	})
	require.ErrorIs(t, err, assistant.ErrCaptchaMismatch)
	require.NotNil(t, next)
	assert.NotEqual(t, challenge.CaptchaID, next.CaptchaID)

	var count int64
	require.NoError(t, db.Model(&model.ContactMessage{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.Empty(t, producer.events)

	// 新挑战可直接用于下一次提交
	message, _, err := svc.SubmitMessage(ctx, assistant.ContactSubmission{
		Name:          "Jean",
		Email:         "jean@example.com",
		Message:       "hello",
		CaptchaID:     next.CaptchaID,
		CaptchaAnswer: next.A + next.B,
	})
	require.NoError(t, err)
	assert.NotZero(t, message.ID)
}

func TestSubmitMessageChecksCaptchaBeforeFieldValidation(t *testing.T) {
	// 字段与验证码同时出错时先报验证码不匹配，旧挑战被消费并重新出题
	svc, captchaSvc, captchaRepo, _, db := newMessageService(t)
	ctx := context.Background()

	challenge, err := captchaSvc.Issue(ctx)
	require.NoError(t, err)

	_, next, err := svc.SubmitMessage(ctx, assistant.ContactSubmission{
		Name:          "",
		Email:         "jean@example.com",
		Message:       "hello",
		CaptchaID:     challenge.CaptchaID,
		CaptchaAnswer: challenge.A + challenge.B + 1,
	})
	require.ErrorIs(t, err, assistant.ErrCaptchaMismatch)
	require.NotNil(t, next)
	assert.NotEqual(t, challenge.CaptchaID, next.CaptchaID)

	_, found := captchaRepo.answerOf(challenge.CaptchaID)
	assert.False(t, found)

	var count int64
	require.NoError(t, db.Model(&model.ContactMessage{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSubmitMessageWithoutCaptchaSkipsVerification(t *testing.T) {
	// 聊天助手排期路径不携带验证码，直接落库
	svc, _, _, producer, _ := newMessageService(t)

	message, next, err := svc.SubmitMessage(context.Background(), assistant.ContactSubmission{
		Name:    "Marie",
		Email:   "marie@example.com",
		Subject: "Schedule a Call: 2026-09-11 10:00",
		Message: "architecture review (2026-09-11 10:00)",
	})
	require.NoError(t, err)
	assert.Nil(t, next)
	assert.NotZero(t, message.ID)
	require.Len(t, producer.events, 1)
}

func TestSubmitMessageProducerFailureDoesNotFailSubmission(t *testing.T) {
	svc, _, _, producer, db := newMessageService(t)
	producer.err = errors.New("kafka unavailable")

	message, _, err := svc.SubmitMessage(context.Background(), assistant.ContactSubmission{
		Name:    "Jean",
		Email:   "jean@example.com",
		Message: "hello",
	})
	require.NoError(t, err)

	var stored model.ContactMessage
	require.NoError(t, db.First(&stored, message.ID).Error)
	assert.Equal(t, model.MessageStatusNew, stored.Status)
}

func TestMarkReadUpdatesStatus(t *testing.T) {
	svc, _, _, _, db := newMessageService(t)

	message, _, err := svc.SubmitMessage(context.Background(), assistant.ContactSubmission{
		Name:    "Jean",
		Email:   "jean@example.com",
		Message: "hello",
	})
	require.NoError(t, err)

	require.NoError(t, svc.MarkRead(message.ID))

	var stored model.ContactMessage
	require.NoError(t, db.First(&stored, message.ID).Error)
	assert.Equal(t, model.MessageStatusRead, stored.Status)

	messages, total, err := svc.ListMessages(model.MessageStatusRead, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, messages, 1)
	assert.Equal(t, message.ID, messages[0].ID)
}
