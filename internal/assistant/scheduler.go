package assistant

import "time"

// Scheduler 抽象了助手回复前的"正在输入"停顿：
// 一段回复前的短暂停顿，加一段模拟打字的较长停顿，两段顺序执行。
// 测试中可注入同步实现以消除真实定时器。
type Scheduler interface {
	AfterTyping(fn func())
}

// TimerScheduler 使用真实定时器实现两段停顿。
type TimerScheduler struct {
	PreDelay    time.Duration
	TypingDelay time.Duration
}

// NewTimerScheduler 创建一个使用真实定时器的 Scheduler。
func NewTimerScheduler(preDelay, typingDelay time.Duration) *TimerScheduler {
	return &TimerScheduler{PreDelay: preDelay, TypingDelay: typingDelay}
}

// AfterTyping 先等待 PreDelay，再等待 TypingDelay，然后执行 fn。
// 定时器一旦启动不支持取消，fn 最终一定会执行。
func (s *TimerScheduler) AfterTyping(fn func()) {
	time.AfterFunc(s.PreDelay, func() {
		time.AfterFunc(s.TypingDelay, fn)
	})
}

// SyncScheduler 立即同步执行回调，供测试使用。
type SyncScheduler struct{}

// AfterTyping 直接执行 fn。
func (SyncScheduler) AfterTyping(fn func()) {
	fn()
}
