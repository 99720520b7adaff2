package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"folio-go/internal/assistant"

	"github.com/go-redis/redis/v8"
)

// SessionRepository 定义了聊天助手会话记录在 Redis 中的镜像操作。
// 控制器内存中的消息列表是权威数据，这里只做带 TTL 的持久化镜像，
// 供会话恢复与管理后台排查使用。
type SessionRepository interface {
	SaveTranscript(ctx context.Context, sessionID string, messages []assistant.ChatMessage) error
	GetTranscript(ctx context.Context, sessionID string) ([]assistant.ChatMessage, error)
	DeleteTranscript(ctx context.Context, sessionID string) error
}

type redisSessionRepository struct {
	redisClient *redis.Client
	ttl         time.Duration
}

// NewSessionRepository 创建一个新的 SessionRepository 实例。
func NewSessionRepository(redisClient *redis.Client, ttl time.Duration) SessionRepository {
	return &redisSessionRepository{redisClient: redisClient, ttl: ttl}
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("assistant:session:%s", sessionID)
}

// SaveTranscript 将会话消息序列化后写入 Redis，只保留最近 50 条。
func (r *redisSessionRepository) SaveTranscript(ctx context.Context, sessionID string, messages []assistant.ChatMessage) error {
	if len(messages) > 50 {
		messages = messages[len(messages)-50:]
	}
	jsonData, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("序列化会话记录失败: %w", err)
	}
	if err := r.redisClient.Set(ctx, sessionKey(sessionID), jsonData, r.ttl).Err(); err != nil {
		return fmt.Errorf("写入会话记录失败: %w", err)
	}
	return nil
}

// GetTranscript 从 Redis 读取会话记录，不存在时返回空列表。
func (r *redisSessionRepository) GetTranscript(ctx context.Context, sessionID string) ([]assistant.ChatMessage, error) {
	jsonData, err := r.redisClient.Get(ctx, sessionKey(sessionID)).Result()
	if err == redis.Nil {
		return []assistant.ChatMessage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("读取会话记录失败: %w", err)
	}
	var messages []assistant.ChatMessage
	if err := json.Unmarshal([]byte(jsonData), &messages); err != nil {
		return nil, fmt.Errorf("反序列化会话记录失败: %w", err)
	}
	return messages, nil
}

// DeleteTranscript 删除一条会话记录。
func (r *redisSessionRepository) DeleteTranscript(ctx context.Context, sessionID string) error {
	return r.redisClient.Del(ctx, sessionKey(sessionID)).Err()
}
