package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

// CaptchaRepository 接口定义了验证码挑战答案的存取操作。
type CaptchaRepository interface {
	Save(ctx context.Context, captchaID string, answer int, ttl time.Duration) error
	Get(ctx context.Context, captchaID string) (answer int, found bool, err error)
	Delete(ctx context.Context, captchaID string) error
}

type redisCaptchaRepository struct {
	redisClient *redis.Client
}

// NewCaptchaRepository 创建一个新的 CaptchaRepository 实例。
func NewCaptchaRepository(redisClient *redis.Client) CaptchaRepository {
	return &redisCaptchaRepository{redisClient: redisClient}
}

func captchaKey(captchaID string) string {
	return fmt.Sprintf("captcha:%s", captchaID)
}

// Save 在 Redis 中保存验证码答案并设置过期时间。
func (r *redisCaptchaRepository) Save(ctx context.Context, captchaID string, answer int, ttl time.Duration) error {
	if err := r.redisClient.Set(ctx, captchaKey(captchaID), answer, ttl).Err(); err != nil {
		return fmt.Errorf("保存验证码挑战失败: %w", err)
	}
	return nil
}

// Get 从 Redis 中读取验证码答案，挑战不存在或已过期时 found 为 false。
func (r *redisCaptchaRepository) Get(ctx context.Context, captchaID string) (int, bool, error) {
	val, err := r.redisClient.Get(ctx, captchaKey(captchaID)).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("读取验证码挑战失败: %w", err)
	}
	answer, err := strconv.Atoi(val)
	if err != nil {
		return 0, false, fmt.Errorf("验证码挑战数据损坏: %w", err)
	}
	return answer, true, nil
}

// Delete 删除一条验证码挑战记录。
func (r *redisCaptchaRepository) Delete(ctx context.Context, captchaID string) error {
	return r.redisClient.Del(ctx, captchaKey(captchaID)).Err()
}
