// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"folio-go/internal/assistant"
	"folio-go/internal/model"
	"folio-go/internal/service"
	"folio-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// MessageHandler 负责处理联系表单留言与验证码相关的 API 请求。
type MessageHandler struct {
	messageService service.MessageService
	captchaService service.CaptchaService
}

// NewMessageHandler 创建一个新的 MessageHandler 实例。
func NewMessageHandler(messageService service.MessageService, captchaService service.CaptchaService) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
		captchaService: captchaService,
	}
}

// GetCaptcha 签发一道新的算术验证码题目（公开接口）。
func (h *MessageHandler) GetCaptcha(c *gin.Context) {
	challenge, err := h.captchaService.Issue(c.Request.Context())
	if err != nil {
		log.Error("GetCaptcha: failed to issue challenge", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "服务器内部错误"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "success",
		"data": gin.H{
			"captchaId": challenge.CaptchaID,
			"a":         challenge.A,
			"b":         challenge.B,
			"question":  challenge.Question(),
		},
	})
}

// SubmitMessageRequest 定义了提交留言 API 的请求体结构。
type SubmitMessageRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Subject       string `json:"subject"`
	Message       string `json:"message"`
	WantsCall     bool   `json:"wantsCall"`
	PreferredDate string `json:"preferredDate"`
	PreferredTime string `json:"preferredTime"`
	// 联系表单携带验证码；聊天助手的排期投递不带，由服务层跳过校验
	CaptchaID     string `json:"captchaId"`
	CaptchaAnswer int    `json:"captchaAnswer"`
}

// Submit 接收一次联系表单提交（公开接口）。
// 字段校验与验证码校验都在落库之前完成；验证码不匹配时
// 响应携带新签发的题目供前端直接替换。
func (h *MessageHandler) Submit(c *gin.Context) {
	var req SubmitMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求负载"})
		return
	}

	sub := assistant.ContactSubmission{
		Name:          req.Name,
		Email:         req.Email,
		Subject:       req.Subject,
		Message:       req.Message,
		WantsCall:     req.WantsCall,
		PreferredDate: req.PreferredDate,
		PreferredTime: req.PreferredTime,
		CaptchaID:     req.CaptchaID,
		CaptchaAnswer: req.CaptchaAnswer,
	}

	message, nextChallenge, err := h.messageService.SubmitMessage(c.Request.Context(), sub)
	if err != nil {
		var vErr *assistant.ValidationError
		switch {
		case errors.As(err, &vErr):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "字段校验失败",
				"field": vErr.Field,
			})
		case errors.Is(err, assistant.ErrCaptchaMismatch):
			resp := gin.H{"error": "验证码答案不正确"}
			if nextChallenge != nil {
				resp["captcha"] = gin.H{
					"captchaId": nextChallenge.CaptchaID,
					"a":         nextChallenge.A,
					"b":         nextChallenge.B,
					"question":  nextChallenge.Question(),
				}
			}
			c.JSON(http.StatusUnprocessableEntity, resp)
		default:
			log.Error("SubmitMessage: failed", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "服务器内部错误"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "留言提交成功",
		"data":    gin.H{"id": message.ID},
	})
}

// messageView 是管理后台留言列表的展示结构，时间统一格式化输出。
type messageView struct {
	ID            uint            `json:"id"`
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	Subject       string          `json:"subject"`
	Message       string          `json:"message"`
	WantsCall     bool            `json:"wantsCall"`
	PreferredDate string          `json:"preferredDate,omitempty"`
	PreferredTime string          `json:"preferredTime,omitempty"`
	Status        string          `json:"status"`
	Notified      bool            `json:"notified"`
	CreatedAt     model.LocalTime `json:"createdAt"`
}

// List 分页返回留言（管理接口），可按 status 过滤。
func (h *MessageHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	status := c.Query("status")

	messages, total, err := h.messageService.ListMessages(status, page, pageSize)
	if err != nil {
		log.Error("ListMessages: failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "服务器内部错误"})
		return
	}

	views := make([]messageView, 0, len(messages))
	for _, m := range messages {
		views = append(views, messageView{
			ID:            m.ID,
			Name:          m.Name,
			Email:         m.Email,
			Subject:       m.Subject,
			Message:       m.Message,
			WantsCall:     m.WantsCall,
			PreferredDate: m.PreferredDate,
			PreferredTime: m.PreferredTime,
			Status:        m.Status,
			Notified:      m.NotifiedAt != nil,
			CreatedAt:     model.LocalTime(m.CreatedAt),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "success",
		"data": gin.H{
			"items": views,
			"total": total,
		},
	})
}

// MarkRead 将一条留言标记为已读（管理接口）。
func (h *MessageHandler) MarkRead(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的 ID"})
		return
	}

	if err := h.messageService.MarkRead(uint(id)); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "留言不存在"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "留言已标记为已读"})
}

// Delete 删除一条留言（管理接口）。
func (h *MessageHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的 ID"})
		return
	}

	if err := h.messageService.Delete(uint(id)); err != nil {
		log.Error("DeleteMessage: failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "服务器内部错误"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "留言删除成功"})
}
