package session

import (
	"sync"

	"github.com/SangJLee1103/InstagramClone/internal/errors"
	"github.com/SangJLee1103/InstagramClone/internal/model"
)

// Manager 持有进程级的当前会话用户。登录/会话恢复时写入一次，
// 各容器只读；读写均受锁保护，绝不隐式初始化。
type Manager struct {
	mu      sync.RWMutex
	current *model.User
}

// NewManager 创建一个新的会话管理器
func NewManager() *Manager {
	return &Manager{}
}

// Set 在登录或会话恢复成功后写入当前用户
func (m *Manager) Set(user *model.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = user
}

// Clear 在登出时清除当前用户
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = nil
}

// Current 返回当前用户的副本
func (m *Manager) Current() (*model.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return nil, false
	}
	user := *m.current
	return &user, true
}

// UID 返回当前用户ID；未登录时返回 ErrMissingToken
func (m *Manager) UID() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return "", errors.New(errors.ErrMissingToken, "no session user")
	}
	return m.current.UID, nil
}
