package assistant

import (
	"errors"
	"sync"

	"folio-go/pkg/token"
)

// ErrSessionNotFound 表示给定的会话 ID 不存在或已被移除。
var ErrSessionNotFound = errors.New("assistant session not found")

// Manager 持有所有活跃的会话控制器。
// 每个渲染出的挂件对应一个控制器实例，不存在跨会话共享状态。
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Controller
	factory  func(locale Locale) *Controller
}

// NewManager 创建一个会话管理器，factory 决定新会话如何构造控制器。
func NewManager(factory func(locale Locale) *Controller) *Manager {
	return &Manager{
		sessions: make(map[string]*Controller),
		factory:  factory,
	}
}

// Create 新建一个会话并返回其 ID 与控制器。
func (m *Manager) Create(locale Locale) (string, *Controller) {
	sessionID := token.GenerateRandomString(16)
	ctrl := m.factory(locale)

	m.mu.Lock()
	m.sessions[sessionID] = ctrl
	m.mu.Unlock()

	return sessionID, ctrl
}

// Get 根据会话 ID 查找控制器。
func (m *Manager) Get(sessionID string) (*Controller, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ctrl, ok := m.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return ctrl, nil
}

// Remove 移除一个会话。在途的定时回复仍会在对应控制器上完成，
// 但控制器不再可达，最终由 GC 回收。
func (m *Manager) Remove(sessionID string) {
	m.mu.Lock()
	delete(m.sessions, sessionID)
	m.mu.Unlock()
}
