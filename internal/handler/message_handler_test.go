package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"folio-go/internal/handler"
	"folio-go/internal/model"
	"folio-go/internal/repository"
	"folio-go/internal/service"
	"folio-go/pkg/events"
	"folio-go/pkg/log"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	log.Init("error", "console", "stdout")
	gin.SetMode(gin.TestMode)
	m.Run()
}

// memoryCaptchaRepository 是 CaptchaRepository 的内存实现，测试中替代 Redis。
type memoryCaptchaRepository struct {
	mu      sync.Mutex
	answers map[string]int
}

func newMemoryCaptchaRepository() *memoryCaptchaRepository {
	return &memoryCaptchaRepository{answers: make(map[string]int)}
}

func (r *memoryCaptchaRepository) Save(_ context.Context, captchaID string, answer int, _ time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.answers[captchaID] = answer
	return nil
}

func (r *memoryCaptchaRepository) Get(_ context.Context, captchaID string) (int, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	answer, ok := r.answers[captchaID]
	return answer, ok, nil
}

func (r *memoryCaptchaRepository) Delete(_ context.Context, captchaID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.answers, captchaID)
	return nil
}

func (r *memoryCaptchaRepository) answerOf(captchaID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.answers[captchaID]
}

type noopProducer struct{}

func (noopProducer) ProduceMessageEvent(events.MessageReceivedEvent) error { return nil }

func newMessageRouter(t *testing.T) (*gin.Engine, *memoryCaptchaRepository, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.ContactMessage{}))

	captchaRepo := newMemoryCaptchaRepository()
	captchaSvc := service.NewCaptchaService(captchaRepo, 10*time.Minute)
	messageSvc := service.NewMessageService(repository.NewMessageRepository(db), captchaSvc, noopProducer{})
	h := handler.NewMessageHandler(messageSvc, captchaSvc)

	r := gin.New()
	r.GET("/api/v1/captcha", h.GetCaptcha)
	r.POST("/api/v1/messages", h.Submit)
	return r, captchaRepo, db
}

func getCaptcha(t *testing.T, r *gin.Engine) (id, question string) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/captcha", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			CaptchaID string `json:"captchaId"`
			Question  string `json:"question"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.CaptchaID)
	return resp.Data.CaptchaID, resp.Data.Question
}

func postMessage(t *testing.T, r *gin.Engine, payload map[string]interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/messages", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestCaptchaEndpointIssuesQuestion(t *testing.T) {
	r, repo, _ := newMessageRouter(t)

	id, question := getCaptcha(t, r)
	assert.Regexp(t, `^\d+ \+ \d+ = \?$`, question)
	assert.Positive(t, repo.answerOf(id))
}

func TestSubmitMessageHappyPath(t *testing.T) {
	r, repo, db := newMessageRouter(t)
	id, _ := getCaptcha(t, r)

	w := postMessage(t, r, map[string]interface{}{
		"name":          "Jean Dupont",
		"email":         "jean@example.com",
		"message":       "Let's build something.",
		"captchaId":     id,
		"captchaAnswer": repo.answerOf(id),
	})
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, db.Model(&model.ContactMessage{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSubmitMessageWrongCaptchaReturnsNewChallenge(t *testing.T) {
	r, repo, db := newMessageRouter(t)
	id, _ := getCaptcha(t, r)

	w := postMessage(t, r, map[string]interface{}{
		"name":          "Jean",
		"email":         "jean@example.com",
		"message":       "hello",
		"captchaId":     id,
		"captchaAnswer": repo.answerOf(id) + 1,
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp struct {
		Error   string `json:"error"`
		Captcha struct {
			CaptchaID string `json:"captchaId"`
			Question  string `json:"question"`
		} `json:"captcha"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Error)
	require.NotEmpty(t, resp.Captcha.CaptchaID)
	assert.NotEqual(t, id, resp.Captcha.CaptchaID)

	// 验证码失败时不落库
	var count int64
	require.NoError(t, db.Model(&model.ContactMessage{}).Count(&count).Error)
	assert.Zero(t, count)

	// 响应中的新挑战可直接用于重试
	w = postMessage(t, r, map[string]interface{}{
		"name":          "Jean",
		"email":         "jean@example.com",
		"message":       "hello",
		"captchaId":     resp.Captcha.CaptchaID,
		"captchaAnswer": repo.answerOf(resp.Captcha.CaptchaID),
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSubmitMessageValidationFailureNamesField(t *testing.T) {
	r, repo, db := newMessageRouter(t)
	id, _ := getCaptcha(t, r)

	w := postMessage(t, r, map[string]interface{}{
		"name":          "Jean",
		"email":         "not-an-email",
		"message":       "hello",
		"captchaId":     id,
		"captchaAnswer": repo.answerOf(id),
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Field string `json:"field"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "email", resp.Field)

	var count int64
	require.NoError(t, db.Model(&model.ContactMessage{}).Count(&count).Error)
	assert.Zero(t, count)
}
