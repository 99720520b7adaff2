package assistant

import (
	"regexp"
	"strings"
)

// DefaultSubject 是留言主题为空时使用的固定值。
const DefaultSubject = "Contact Form Submission"

// 简单的 local@domain.tld 形状校验，不追求 RFC 完备。
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail 判断邮箱是否符合 local@domain.tld 的基本形状。
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidateSubmission 对提交做去空格与必填校验，返回规范化后的副本。
// 校验失败返回 *ValidationError，调用方不应发出任何网络请求。
func ValidateSubmission(sub ContactSubmission) (ContactSubmission, error) {
	sub.Name = strings.TrimSpace(sub.Name)
	sub.Email = strings.TrimSpace(sub.Email)
	sub.Subject = strings.TrimSpace(sub.Subject)
	sub.Message = strings.TrimSpace(sub.Message)

	if sub.Name == "" {
		return sub, &ValidationError{Field: "name"}
	}
	if sub.Email == "" || !IsValidEmail(sub.Email) {
		return sub, &ValidationError{Field: "email"}
	}
	if sub.Message == "" {
		return sub, &ValidationError{Field: "message"}
	}
	if sub.Subject == "" {
		sub.Subject = DefaultSubject
	}
	return sub, nil
}
