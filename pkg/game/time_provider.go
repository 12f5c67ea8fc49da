package game

import (
	"sync"
	"time"
)

// TimeProvider 提供当前时间
//
// 冷却和波次计时都基于此接口，实现必须是单调的（不受系统时钟调整影响）
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider 使用 time.Now，返回值带单调时钟读数，
// 两个读数相减使用单调时钟，不会因系统时间回拨而倒退
type RealTimeProvider struct{}

// NewRealTimeProvider 创建真实时间提供者
func NewRealTimeProvider() *RealTimeProvider {
	return &RealTimeProvider{}
}

// Now 返回当前时间
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// MockTimeProvider 可控的时间源，用于测试
type MockTimeProvider struct {
	mu          sync.RWMutex
	currentTime time.Time
}

// NewMockTimeProvider 以给定起始时间创建 mock 时间源
func NewMockTimeProvider(startTime time.Time) *MockTimeProvider {
	return &MockTimeProvider{currentTime: startTime}
}

// Now 返回当前 mock 时间
func (m *MockTimeProvider) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentTime
}

// SetTime 设置当前时间
func (m *MockTimeProvider) SetTime(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = t
}

// Advance 将时间前进 d
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = m.currentTime.Add(d)
}
