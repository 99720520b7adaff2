package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"folio-go/internal/assistant"
	"folio-go/internal/repository"
	"folio-go/pkg/token"
)

// Challenge 是下发给前端的一道算术验证码题目，答案只保存在服务端。
type Challenge struct {
	CaptchaID string `json:"captchaId"`
	A         int    `json:"a"`
	B         int    `json:"b"`
}

// Question 返回题面文本，例如 "3 + 5 = ?"。
func (c *Challenge) Question() string {
	return fmt.Sprintf("%d + %d = ?", c.A, c.B)
}

// CaptchaService 接口定义了算术验证码的签发与校验操作。
type CaptchaService interface {
	Issue(ctx context.Context) (*Challenge, error)
	Verify(ctx context.Context, captchaID string, answer int) (*Challenge, error)
}

type captchaService struct {
	captchaRepo repository.CaptchaRepository
	ttl         time.Duration
}

// NewCaptchaService 创建一个新的 CaptchaService 实例。
func NewCaptchaService(captchaRepo repository.CaptchaRepository, ttl time.Duration) CaptchaService {
	return &captchaService{
		captchaRepo: captchaRepo,
		ttl:         ttl,
	}
}

// Issue 生成一道新的加法题并保存答案，操作数范围 1-9。
func (s *captchaService) Issue(ctx context.Context) (*Challenge, error) {
	challenge := &Challenge{
		CaptchaID: token.GenerateRandomString(8),
		A:         rand.Intn(9) + 1,
		B:         rand.Intn(9) + 1,
	}
	if err := s.captchaRepo.Save(ctx, challenge.CaptchaID, challenge.A+challenge.B, s.ttl); err != nil {
		return nil, err
	}
	return challenge, nil
}

// Verify 校验一次验证码提交。校验在任何网络发送之前完成：
// 答案正确时删除挑战并返回 (nil, nil)；
// 挑战不存在、已过期或答案错误时作废旧挑战、签发新挑战，
// 并连同 ErrCaptchaMismatch 一起返回，供调用方回传给前端重试。
func (s *captchaService) Verify(ctx context.Context, captchaID string, answer int) (*Challenge, error) {
	expected, found, err := s.captchaRepo.Get(ctx, captchaID)
	if err != nil {
		return nil, err
	}

	if found && expected == answer {
		if err := s.captchaRepo.Delete(ctx, captchaID); err != nil {
			return nil, err
		}
		return nil, nil
	}

	// 一题只允许答一次：答错即作废，防止穷举
	if found {
		if err := s.captchaRepo.Delete(ctx, captchaID); err != nil {
			return nil, err
		}
	}
	next, err := s.Issue(ctx)
	if err != nil {
		return nil, err
	}
	return next, assistant.ErrCaptchaMismatch
}
