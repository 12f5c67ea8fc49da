package systems

import (
	"log"
	"time"

	"github.com/decker502/survival/pkg/config"
	"github.com/decker502/survival/pkg/game"
)

// ShopState 武器商店的显示状态
type ShopState struct {
	PlayerNear          bool // 玩家在交互距离内（显示 "Press E" 提示）
	ShowObtainedMessage bool // 刚获得物品的提示仍在显示时间内
	PlayerHasItem       bool // 玩家是否已经拥有商店物品
}

// ShopSystem 武器商店
//
// 商店固定在竞技场中的一个位置。玩家水平距离在交互距离以内时可以按 E 领取物品，
// 每局只能领取一次。领取后提示信息显示 messageDuration。
// 状态显式存放在系统中，由表现层通过 State 查询。
type ShopSystem struct {
	player *game.PlayerState
	events *game.EventQueue
	clock  game.TimeProvider
	tuning *config.TuningConfig

	near         bool
	messageUntil time.Time
}

// NewShopSystem 创建武器商店系统
func NewShopSystem(player *game.PlayerState, events *game.EventQueue, clock game.TimeProvider, tuning *config.TuningConfig) *ShopSystem {
	return &ShopSystem{
		player: player,
		events: events,
		clock:  clock,
		tuning: tuning,
	}
}

// SetTuning 替换调参
func (s *ShopSystem) SetTuning(tuning *config.TuningConfig) {
	s.tuning = tuning
}

// Update 根据玩家位置刷新是否在交互范围内
func (s *ShopSystem) Update() {
	pos, known := s.player.Position()
	s.near = known && pos.HorizontalDistanceTo(s.tuning.Shop.Position) <= s.tuning.Shop.InteractionDistance
}

// Interact 玩家在商店按下交互键
//
// 返回：
//   - bool: 本次是否获得了物品（不在范围内、已经拥有或游戏结束时返回 false）
func (s *ShopSystem) Interact() bool {
	if !s.near || s.player.IsGameOver() {
		return false
	}

	item := s.tuning.Shop.Item
	if !s.player.AcquireItem(item) {
		return false
	}

	s.messageUntil = s.clock.Now().Add(s.tuning.Shop.MessageDuration.Std())
	s.events.Push(game.Event{Type: game.EventItemAcquired, Item: item})
	log.Printf("[ShopSystem] Player obtained %s", item)
	return true
}

// State 返回当前显示状态
func (s *ShopSystem) State() ShopState {
	return ShopState{
		PlayerNear:          s.near,
		ShowObtainedMessage: s.clock.Now().Before(s.messageUntil),
		PlayerHasItem:       s.player.HasItem(s.tuning.Shop.Item),
	}
}

// Reset 清除提示状态（物品由 PlayerState.Reset 清除）
func (s *ShopSystem) Reset() {
	s.near = false
	s.messageUntil = time.Time{}
}
