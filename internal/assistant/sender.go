package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Sender 将一次通过校验的提交写入留言存储接口。
// 每次提交恰好发出一个请求，任何失败都不自动重试。
type Sender interface {
	Send(ctx context.Context, sub ContactSubmission) error
}

// HTTPSender 是 Sender 的 HTTP 实现：向留言存储接口 POST 一个 JSON 载荷。
type HTTPSender struct {
	endpoint string
	client   *http.Client
}

// NewHTTPSender 创建一个指向给定留言存储接口的 HTTPSender。
func NewHTTPSender(endpoint string) *HTTPSender {
	return &HTTPSender{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Send 校验提交后发出唯一一次 POST。
// 字段校验失败返回 *ValidationError（不发请求）；
// 传输层异常返回 *NetworkError；非 2xx 响应返回 *ServerRejectedError，
// 错误文案优先取响应体中的 error 字段。
func (s *HTTPSender) Send(ctx context.Context, sub ContactSubmission) error {
	sub, err := ValidateSubmission(sub)
	if err != nil {
		return err
	}

	body, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("序列化提交载荷失败: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("构造提交请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	// 仅在非 2xx 时解析响应体，提取服务端给出的错误文案
	rejected := &ServerRejectedError{StatusCode: resp.StatusCode, Message: "submission was rejected"}
	var parsed struct {
		Error string `json:"error"`
	}
	if decodeErr := json.NewDecoder(resp.Body).Decode(&parsed); decodeErr == nil && parsed.Error != "" {
		rejected.Message = parsed.Error
	}
	return rejected
}
