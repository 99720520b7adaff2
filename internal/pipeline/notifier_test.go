package pipeline_test

import (
	"context"
	"testing"

	"folio-go/internal/model"
	"folio-go/internal/pipeline"
	"folio-go/internal/repository"
	"folio-go/pkg/events"
	"folio-go/pkg/log"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	log.Init("error", "console", "stdout")
	m.Run()
}

func newNotifierTest(t *testing.T) (*pipeline.Notifier, repository.MessageRepository, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.ContactMessage{}))
	repo := repository.NewMessageRepository(db)
	return pipeline.NewNotifier(repo), repo, db
}

func TestProcessMarksMessageNotified(t *testing.T) {
	notifier, repo, _ := newNotifierTest(t)

	message := &model.ContactMessage{
		Name:    "Jean",
		Email:   "jean@example.com",
		Subject: "Hello",
		Message: "hi",
		Status:  model.MessageStatusNew,
	}
	require.NoError(t, repo.Create(message))

	err := notifier.Process(context.Background(), events.MessageReceivedEvent{
		MessageID: message.ID,
		Name:      message.Name,
		Email:     message.Email,
		Subject:   message.Subject,
	})
	require.NoError(t, err)

	stored, err := repo.FindByID(message.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.NotifiedAt)
}

func TestProcessIsIdempotentForNotifiedMessages(t *testing.T) {
	notifier, repo, _ := newNotifierTest(t)

	message := &model.ContactMessage{
		Name:    "Jean",
		Email:   "jean@example.com",
		Subject: "Hello",
		Message: "hi",
		Status:  model.MessageStatusNew,
	}
	require.NoError(t, repo.Create(message))

	event := events.MessageReceivedEvent{MessageID: message.ID}
	require.NoError(t, notifier.Process(context.Background(), event))

	first, err := repo.FindByID(message.ID)
	require.NoError(t, err)
	require.NotNil(t, first.NotifiedAt)

	// 重复投递不改变已记录的通知时间
	require.NoError(t, notifier.Process(context.Background(), event))
	second, err := repo.FindByID(message.ID)
	require.NoError(t, err)
	assert.Equal(t, first.NotifiedAt.Unix(), second.NotifiedAt.Unix())
}

func TestProcessSkipsDeletedMessages(t *testing.T) {
	notifier, _, _ := newNotifierTest(t)

	// 留言已被管理员删除时事件被静默跳过
	err := notifier.Process(context.Background(), events.MessageReceivedEvent{MessageID: 9999})
	assert.NoError(t, err)
}
