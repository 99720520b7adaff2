package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"folio-go/internal/assistant"
	"folio-go/internal/service"
	"folio-go/pkg/log"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	log.Init("error", "console", "stdout")
	m.Run()
}

// memoryCaptchaRepository 是 CaptchaRepository 的内存实现，供测试替换 Redis。
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

func (r *memoryCaptchaRepository) answerOf(captchaID string) (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	answer, ok := r.answers[captchaID]
	return answer, ok
}

func TestCaptchaIssueStoresSum(t *testing.T) {
	repo := newMemoryCaptchaRepository()
	svc := service.NewCaptchaService(repo, 10*time.Minute)

	challenge, err := svc.Issue(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, challenge.CaptchaID)

	assert.GreaterOrEqual(t, challenge.A, 1)
	assert.LessOrEqual(t, challenge.A, 9)
	assert.GreaterOrEqual(t, challenge.B, 1)
	assert.LessOrEqual(t, challenge.B, 9)

	stored, ok := repo.answerOf(challenge.CaptchaID)
	require.True(t, ok)
	assert.Equal(t, challenge.A+challenge.B, stored)
}

func TestCaptchaVerifyCorrectAnswerConsumesChallenge(t *testing.T) {
	repo := newMemoryCaptchaRepository()
	svc := service.NewCaptchaService(repo, 10*time.Minute)
	ctx := context.Background()

	challenge, err := svc.Issue(ctx)
	require.NoError(t, err)

	next, err := svc.Verify(ctx, challenge.CaptchaID, challenge.A+challenge.B)
	require.NoError(t, err)
	assert.Nil(t, next)

	// 挑战一次性使用，答对后重放同一 ID 视为不匹配
	_, ok := repo.answerOf(challenge.CaptchaID)
	assert.False(t, ok)
	next, err = svc.Verify(ctx, challenge.CaptchaID, challenge.A+challenge.B)
	assert.ErrorIs(t, err, assistant.ErrCaptchaMismatch)
	assert.NotNil(t, next)
}

func TestCaptchaVerifyWrongAnswerRegeneratesChallenge(t *testing.T) {
	repo := newMemoryCaptchaRepository()
	svc := service.NewCaptchaService(repo, 10*time.Minute)
	ctx := context.Background()

	challenge, err := svc.Issue(ctx)
	require.NoError(t, err)

	next, err := svc.Verify(ctx, challenge.CaptchaID, challenge.A+challenge.B+1)
	require.True(t, errors.Is(err, assistant.ErrCaptchaMismatch))
	require.NotNil(t, next)
	assert.NotEqual(t, challenge.CaptchaID, next.CaptchaID)

	// 旧挑战已作废，新挑战答案已入库
	_, oldExists := repo.answerOf(challenge.CaptchaID)
	assert.False(t, oldExists)
	stored, ok := repo.answerOf(next.CaptchaID)
	require.True(t, ok)
	assert.Equal(t, next.A+next.B, stored)
}

func TestCaptchaVerifyUnknownIDBehavesLikeMismatch(t *testing.T) {
	repo := newMemoryCaptchaRepository()
	svc := service.NewCaptchaService(repo, 10*time.Minute)

	next, err := svc.Verify(context.Background(), "does-not-exist", 7)
	assert.ErrorIs(t, err, assistant.ErrCaptchaMismatch)
	require.NotNil(t, next)
	assert.NotEmpty(t, next.CaptchaID)
}
