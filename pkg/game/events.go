package game

import (
	"github.com/decker502/survival/pkg/ecs"
	"github.com/decker502/survival/pkg/types"
)

// EventType 模拟层事件类型
type EventType string

const (
	EventWaveStarted    EventType = "wave_started"     // Wave = 新波次
	EventWavePulseEnded EventType = "wave_pulse_ended" // Wave = 提示窗口结束的波次
	EventZombieSpawned  EventType = "zombie_spawned"   // Actor, Wave
	EventPlayerDamaged  EventType = "player_damaged"   // Actor = 攻击者, Amount, Health
	EventGameOver       EventType = "game_over"
	EventZombieKilled   EventType = "zombie_killed" // Actor
	EventZombieRemoved  EventType = "zombie_removed"
	EventItemAcquired   EventType = "item_acquired" // Item
	EventGameReset      EventType = "game_reset"
	EventTuningApplied  EventType = "tuning_applied"
)

// Event 模拟层向表现层发出的通知
// 表现层每帧 Drain 一次，替代对共享状态的轮询
type Event struct {
	Type   EventType
	Wave   int
	Actor  ecs.EntityID
	Amount int
	Health int
	Item   types.ItemID
}

// EventQueue 简单的 FIFO 队列
type EventQueue struct {
	items []Event
}

// NewEventQueue 创建事件队列
func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Push 追加事件
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain 返回所有事件并清空队列
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Len 返回未消费的事件数
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
