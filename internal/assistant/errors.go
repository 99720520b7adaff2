package assistant

import (
	"errors"
	"fmt"
)

// ErrCaptchaMismatch 表示验证码答案与服务端保存的算式结果不一致。
// 校验发生在任何网络或存储写入之前，命中后挑战会被重新生成。
var ErrCaptchaMismatch = errors.New("captcha answer mismatch")

// ValidationError 表示提交在发出前未通过字段校验。
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid submission field: %s", e.Field)
}

// ServerRejectedError 表示留言存储接口返回了非 2xx 响应。
type ServerRejectedError struct {
	StatusCode int
	Message    string
}

func (e *ServerRejectedError) Error() string {
	return fmt.Sprintf("server rejected submission (status %d): %s", e.StatusCode, e.Message)
}

// NetworkError 表示请求未能到达留言存储接口（传输层异常）。
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network failure: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
