// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"folio-go/internal/assistant"
	"folio-go/internal/config"
	"folio-go/internal/repository"
	"folio-go/pkg/log"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // 允许所有来源
	},
}

// AssistantHandler 负责处理聊天助手挂件的 API 请求。
// 控制器内存状态是权威数据，每次变更后向 Redis 镜像一份会话记录。
type AssistantHandler struct {
	manager     *assistant.Manager
	sessionRepo repository.SessionRepository
	cfg         config.AssistantConfig
}

// NewAssistantHandler 创建一个新的 AssistantHandler 实例。
func NewAssistantHandler(manager *assistant.Manager, sessionRepo repository.SessionRepository, cfg config.AssistantConfig) *AssistantHandler {
	return &AssistantHandler{
		manager:     manager,
		sessionRepo: sessionRepo,
		cfg:         cfg,
	}
}

// sessionState 是会话状态的统一响应结构。
type sessionState struct {
	Open             bool                    `json:"open"`
	SchedulerVisible bool                    `json:"schedulerVisible"`
	RedirectVisible  bool                    `json:"redirectVisible"`
	Messages         []assistant.ChatMessage `json:"messages"`
}

func snapshot(ctrl *assistant.Controller) sessionState {
	open, schedulerVisible, redirectVisible := ctrl.State()
	return sessionState{
		Open:             open,
		SchedulerVisible: schedulerVisible,
		RedirectVisible:  redirectVisible,
		Messages:         ctrl.Messages(),
	}
}

// mirror 将会话记录写入 Redis，失败只记录日志。
func (h *AssistantHandler) mirror(c *gin.Context, sessionID string, ctrl *assistant.Controller) {
	if err := h.sessionRepo.SaveTranscript(c.Request.Context(), sessionID, ctrl.Messages()); err != nil {
		log.Warnf("镜像会话记录失败: sessionID=%s, error: %v", sessionID, err)
	}
}

// lookup 根据路径参数查找控制器，不存在时直接写出 404。
func (h *AssistantHandler) lookup(c *gin.Context) (string, *assistant.Controller, bool) {
	sessionID := c.Param("id")
	ctrl, err := h.manager.Get(sessionID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "会话不存在"})
		return "", nil, false
	}
	return sessionID, ctrl, true
}

// CreateSession 新建一个聊天会话。
// 语言取 NEXT_LOCALE cookie，缺省时使用配置的默认语言。
func (h *AssistantHandler) CreateSession(c *gin.Context) {
	localeValue, err := c.Cookie("NEXT_LOCALE")
	if err != nil {
		localeValue = h.cfg.DefaultLocale
	}
	locale := assistant.ParseLocale(localeValue)

	sessionID, ctrl := h.manager.Create(locale)
	log.Infof("聊天会话已创建: sessionID=%s, locale=%s", sessionID, locale)

	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "success",
		"data": gin.H{
			"sessionId": sessionID,
			"locale":    ctrl.Locale(),
		},
	})
}

// Open 打开挂件，首次打开会播种问候消息。
func (h *AssistantHandler) Open(c *gin.Context) {
	sessionID, ctrl, ok := h.lookup(c)
	if !ok {
		return
	}
	ctrl.Open()
	h.mirror(c, sessionID, ctrl)
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "data": snapshot(ctrl), "message": "success"})
}

// Close 关闭挂件。
func (h *AssistantHandler) Close(c *gin.Context) {
	sessionID, ctrl, ok := h.lookup(c)
	if !ok {
		return
	}
	ctrl.Close()
	h.mirror(c, sessionID, ctrl)
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "data": snapshot(ctrl), "message": "success"})
}

// GetState 返回会话消息与可见性状态的快照。
func (h *AssistantHandler) GetState(c *gin.Context) {
	_, ctrl, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "data": snapshot(ctrl), "message": "success"})
}

// SendTextRequest 定义了发送文本消息 API 的请求体结构。
type SendTextRequest struct {
	Text string `json:"text"`
}

// SendText 处理一段用户输入。空白输入被静默忽略，回复经输入延迟后追加。
func (h *AssistantHandler) SendText(c *gin.Context) {
	sessionID, ctrl, ok := h.lookup(c)
	if !ok {
		return
	}

	var req SendTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求负载"})
		return
	}

	ctrl.SendUserText(req.Text)
	h.mirror(c, sessionID, ctrl)
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "data": snapshot(ctrl), "message": "success"})
}

// SelectOptionRequest 定义了点击快捷选项 API 的请求体结构。
type SelectOptionRequest struct {
	Value string `json:"value" binding:"required"`
}

// SelectOption 处理一次快捷选项点击，未知值被静默忽略。
func (h *AssistantHandler) SelectOption(c *gin.Context) {
	sessionID, ctrl, ok := h.lookup(c)
	if !ok {
		return
	}

	var req SelectOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求负载"})
		return
	}

	ctrl.SelectQuickOption(req.Value)
	h.mirror(c, sessionID, ctrl)
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "data": snapshot(ctrl), "message": "success"})
}

// SubmitScheduleRequest 定义了提交排期表单 API 的请求体结构。
type SubmitScheduleRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Date  string `json:"date"`
	Time  string `json:"time"`
	Topic string `json:"topic"`
}

// SubmitSchedule 提交内联排期表单。
// 表单不完整时控制器静默忽略；投递失败时会话内不追加消息，
// 错误通过响应返回给前端展示。
func (h *AssistantHandler) SubmitSchedule(c *gin.Context) {
	sessionID, ctrl, ok := h.lookup(c)
	if !ok {
		return
	}

	var req SubmitScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求负载"})
		return
	}

	err := ctrl.SubmitSchedule(c.Request.Context(), assistant.ScheduleRequest{
		Name:  req.Name,
		Email: req.Email,
		Date:  req.Date,
		Time:  req.Time,
		Topic: req.Topic,
	})
	h.mirror(c, sessionID, ctrl)
	if err != nil {
		var vErr *assistant.ValidationError
		var srvErr *assistant.ServerRejectedError
		var netErr *assistant.NetworkError
		switch {
		case errors.As(err, &vErr):
			c.JSON(http.StatusBadRequest, gin.H{"error": "字段校验失败", "field": vErr.Field})
		case errors.As(err, &srvErr):
			c.JSON(http.StatusBadGateway, gin.H{"error": srvErr.Message})
		case errors.As(err, &netErr):
			c.JSON(http.StatusBadGateway, gin.H{"error": "留言服务暂时不可用，请稍后重试"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "服务器内部错误"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "data": snapshot(ctrl), "message": "success"})
}

// GetTranscript 返回 Redis 中镜像的会话记录，供会话恢复使用。
func (h *AssistantHandler) GetTranscript(c *gin.Context) {
	sessionID := c.Param("id")
	messages, err := h.sessionRepo.GetTranscript(c.Request.Context(), sessionID)
	if err != nil {
		log.Errorf("GetTranscript: failed, sessionID=%s, error: %v", sessionID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "服务器内部错误"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "data": messages, "message": "success"})
}

// DeleteSession 移除一个会话及其 Redis 镜像。
func (h *AssistantHandler) DeleteSession(c *gin.Context) {
	sessionID := c.Param("id")
	h.manager.Remove(sessionID)
	if err := h.sessionRepo.DeleteTranscript(c.Request.Context(), sessionID); err != nil {
		log.Warnf("删除会话记录失败: sessionID=%s, error: %v", sessionID, err)
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "会话已移除"})
}

// wsCommand 是 WebSocket 通道上的客户端指令。
type wsCommand struct {
	Type  string `json:"type"` // open | close | text | option
	Value string `json:"value"`
}

// HandleWS 处理一个挂件的 WebSocket 连接。
// 每收到一条指令就回推一次完整的会话状态快照，
// 延迟回复到达后由前端通过下一条指令或轮询取回。
func (h *AssistantHandler) HandleWS(c *gin.Context) {
	sessionID := c.Param("id")
	ctrl, err := h.manager.Get(sessionID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "会话不存在"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("WebSocket 升级失败", err)
		return
	}
	defer conn.Close()

	log.Infof("WebSocket 连接已建立: sessionID=%s", sessionID)

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			log.Warnf("从 WebSocket 读取消息失败: %v", err)
			break
		}

		var cmd wsCommand
		if err := json.Unmarshal(message, &cmd); err != nil {
			errResp, _ := json.Marshal(map[string]string{"error": "无法解析指令"})
			_ = conn.WriteMessage(websocket.TextMessage, errResp)
			continue
		}

		switch cmd.Type {
		case "open":
			ctrl.Open()
		case "close":
			ctrl.Close()
		case "text":
			ctrl.SendUserText(cmd.Value)
		case "option":
			ctrl.SelectQuickOption(cmd.Value)
		default:
			// 未知指令静默忽略，与控制器的容错语义保持一致
		}

		h.mirror(c, sessionID, ctrl)
		state, _ := json.Marshal(snapshot(ctrl))
		if err := conn.WriteMessage(websocket.TextMessage, state); err != nil {
			log.Warnf("向 WebSocket 写入状态失败: %v", err)
			break
		}
	}
}
