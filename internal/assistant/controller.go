package assistant

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"folio-go/pkg/log"
)

// Controller 是一个会话的聊天状态机。
//
// 单把互斥锁串行化所有消息追加，消息顺序由定时器触发顺序决定；
// 延迟回复通过 generation 检查丢弃对已清空会话的过期写入。
// 消息列表在会话生命周期内只追加不删除。
type Controller struct {
	locale       Locale
	strings      StringTable
	scheduler    Scheduler
	sender       Sender
	resetOnClose bool

	mu         sync.Mutex
	open       bool
	messages   []ChatMessage
	nextID     uint64
	generation uint64

	// 两条路径刻意不同：输入关键词打开内联表单，点击快捷选项给出跳转链接。
	schedulerVisible bool
	redirectVisible  bool

	form ScheduleRequest
}

// NewController 创建一个绑定语言、调度器与发送器的会话控制器。
func NewController(locale Locale, scheduler Scheduler, sender Sender, resetOnClose bool) *Controller {
	return &Controller{
		locale:       locale,
		strings:      Strings(locale),
		scheduler:    scheduler,
		sender:       sender,
		resetOnClose: resetOnClose,
	}
}

// Locale 返回会话绑定的语言。
func (c *Controller) Locale() Locale {
	return c.locale
}

// append 在持锁状态下追加一条消息并分配单调 ID。
func (c *Controller) append(role Role, content string, options []QuickOption) {
	c.nextID++
	c.messages = append(c.messages, ChatMessage{
		ID:        c.nextID,
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
		Options:   options,
	})
}

// Open 打开挂件。首次打开且历史为空时播种一条带四个快捷选项的问候消息，
// 重复打开不会重复播种。
func (c *Controller) Open() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = true
	if len(c.messages) == 0 {
		c.append(RoleAssistant, c.strings.Greeting, greetingOptions(c.strings))
	}
}

// Close 关闭挂件。配置了 resetOnClose 时清空历史并递增 generation，
// 使仍在途的定时回复失效。
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = false
	if c.resetOnClose {
		c.messages = nil
		c.generation++
		c.schedulerVisible = false
		c.redirectVisible = false
		c.form = ScheduleRequest{}
	}
}

// IsOpen 返回挂件当前是否可见。
func (c *Controller) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

// SendUserText 处理一段用户输入。
// 去空格后为空则静默忽略；否则先追加用户消息，
// 经过"正在输入"延迟后按意图优先级追加唯一一条助手回复。
// 排期意图额外打开内联排期表单。
func (c *Controller) SendUserText(text string) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return
	}

	c.mu.Lock()
	c.append(RoleUser, text, nil)
	gen := c.generation
	c.mu.Unlock()

	intent := DetectIntent(trimmed)
	c.scheduler.AfterTyping(func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.generation != gen {
			// 会话已被清空，丢弃过期回复
			return
		}
		switch intent {
		case IntentSchedule:
			c.schedulerVisible = true
			c.append(RoleAssistant, c.strings.ScheduleReply, nil)
		case IntentProjects:
			c.append(RoleAssistant, c.strings.ProjectsReply, nil)
		case IntentServices:
			c.append(RoleAssistant, c.strings.ServicesReply, nil)
		default:
			// 仅兜底回复携带快捷选项，引导用户回到已知话题
			c.append(RoleAssistant, c.strings.FallbackReply, followUpOptions(c.strings))
		}
	})
}

// SelectQuickOption 处理一次快捷选项点击：
// 先追加一条回显选项文案的用户消息，延迟后追加对应的固定回复。
// schedule 选项展示跳转链接而非内联表单。未知值静默忽略。
func (c *Controller) SelectQuickOption(value string) {
	var label, reply string
	redirect := false

	switch value {
	case OptionSchedule:
		label, reply = c.strings.LabelSchedule, c.strings.RedirectReply
		redirect = true
	case OptionQuestion:
		label, reply = c.strings.LabelQuestion, c.strings.QuestionReply
	case OptionProjects:
		label, reply = c.strings.LabelProjects, c.strings.ProjectsReply
	case OptionServices:
		label, reply = c.strings.LabelServices, c.strings.ServicesReply
	default:
		return
	}

	c.mu.Lock()
	c.append(RoleUser, label, nil)
	gen := c.generation
	c.mu.Unlock()

	c.scheduler.AfterTyping(func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.generation != gen {
			return
		}
		if redirect {
			c.redirectVisible = true
		}
		c.append(RoleAssistant, reply, nil)
	})
}

// SubmitSchedule 提交内联排期表单。
// 任一必填字段为空或时间段不在可选集合内时静默忽略（不追加消息）。
// 成功：隐藏内联表单，追加带单个 question 快捷选项的确认消息，清空表单。
// 失败：表单保持打开、内容保留，会话中不追加错误消息，仅记录日志并把
// 错误返回给调用方展示。
func (c *Controller) SubmitSchedule(ctx context.Context, req ScheduleRequest) error {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" ||
		strings.TrimSpace(req.Date) == "" || !IsAllowedTime(req.Time) {
		return nil
	}

	c.mu.Lock()
	c.form = req
	gen := c.generation
	c.mu.Unlock()

	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		topic = c.strings.SubjectPrefix
	}
	sub := ContactSubmission{
		Name:          req.Name,
		Email:         req.Email,
		Subject:       fmt.Sprintf("%s: %s %s", c.strings.SubjectPrefix, req.Date, req.Time),
		Message:       fmt.Sprintf("%s (%s %s)", topic, req.Date, req.Time),
		WantsCall:     true,
		PreferredDate: req.Date,
		PreferredTime: req.Time,
	}

	// 网络调用在锁外进行，单次发出、失败不重试
	if err := c.sender.Send(ctx, sub); err != nil {
		log.Warnf("排期提交投递失败: %v", err)
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generation != gen {
		return nil
	}
	c.schedulerVisible = false
	c.form = ScheduleRequest{}
	c.append(RoleAssistant, c.strings.ScheduleDone, []QuickOption{
		{Label: c.strings.LabelQuestion, Value: OptionQuestion, Icon: "help-circle"},
	})
	return nil
}

// Messages 返回会话消息列表的一个副本。
func (c *Controller) Messages() []ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	copied := make([]ChatMessage, len(c.messages))
	copy(copied, c.messages)
	return copied
}

// State 返回挂件的可见性状态快照。
func (c *Controller) State() (open, schedulerVisible, redirectVisible bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open, c.schedulerVisible, c.redirectVisible
}

// Form 返回当前排期表单内容的快照。
func (c *Controller) Form() ScheduleRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form
}
