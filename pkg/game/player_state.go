package game

import (
	"log"
	"sort"
	"time"

	"github.com/decker502/survival/pkg/ecs"
	"github.com/decker502/survival/pkg/types"
)

// diagonalFactor 斜向移动时每个轴乘以 1/√2，保持速度一致
const diagonalFactor = 0.707

// MoveIntent 玩家的移动意图（由键盘状态映射而来）
// X/Z 为水平方向分量，物理层乘以移动速度后施加冲量
type MoveIntent struct {
	X    float64
	Z    float64
	Jump bool
}

// PlayerState 玩家状态：生命值、游戏结束标记、物品集合、受击冷却
//
// 不变量：
//   - health 只会因受伤下降，只有 Reset 能恢复
//   - gameOver 每局只会从 false 变为 true 一次
//   - 物品集合无序且不重复，重复获取返回 false
type PlayerState struct {
	health    int
	maxHealth int
	gameOver  bool

	inventory map[types.ItemID]bool

	// lastDamageTime 每个攻击者最后一次造成伤害的时间（按攻击者独立冷却）
	lastDamageTime map[ecs.EntityID]time.Time

	position      types.Vec3
	positionKnown bool

	moveX, moveZ  float64
	jumpRequested bool
}

// NewPlayerState 创建玩家状态
func NewPlayerState(maxHealth int) *PlayerState {
	p := &PlayerState{maxHealth: maxHealth}
	p.Reset()
	return p
}

// Health 返回当前生命值
func (p *PlayerState) Health() int {
	return p.health
}

// MaxHealth 返回最大生命值
func (p *PlayerState) MaxHealth() int {
	return p.maxHealth
}

// IsGameOver 是否已经游戏结束
func (p *PlayerState) IsGameOver() bool {
	return p.gameOver
}

// ApplyDamage 扣除生命值，结果不低于 0
//
// 返回值表示本次调用是否触发了游戏结束（每局只会返回一次 true）。
// 游戏结束后或伤害非正时为空操作。
func (p *PlayerState) ApplyDamage(amount int) bool {
	if p.gameOver || amount <= 0 {
		return false
	}

	p.health -= amount
	if p.health < 0 {
		p.health = 0
	}

	if p.health == 0 {
		p.gameOver = true
		log.Printf("[PlayerState] Game over")
		return true
	}
	return false
}

// CanTakeDamageFrom 检查指定攻击者的冷却是否已经结束
// 从未造成过伤害的攻击者视为冷却已结束
func (p *PlayerState) CanTakeDamageFrom(attacker ecs.EntityID, now time.Time, cooldown time.Duration) bool {
	last, ok := p.lastDamageTime[attacker]
	if !ok {
		return true
	}
	return now.Sub(last) >= cooldown
}

// ApplyDamageFrom 记录攻击时间并扣除生命值
// 返回值同 ApplyDamage
func (p *PlayerState) ApplyDamageFrom(attacker ecs.EntityID, amount int, now time.Time) bool {
	if p.gameOver {
		return false
	}
	p.lastDamageTime[attacker] = now
	return p.ApplyDamage(amount)
}

// ForgetAttacker 移除攻击者的冷却记录（僵尸被移除时调用）
func (p *PlayerState) ForgetAttacker(attacker ecs.EntityID) {
	delete(p.lastDamageTime, attacker)
}

// AcquireItem 获取物品
// 已持有时不做任何修改并返回 false
func (p *PlayerState) AcquireItem(item types.ItemID) bool {
	if p.inventory[item] {
		return false
	}
	p.inventory[item] = true
	log.Printf("[PlayerState] Acquired item %s", item)
	return true
}

// HasItem 是否持有物品
func (p *PlayerState) HasItem(item types.ItemID) bool {
	return p.inventory[item]
}

// ListItems 返回持有物品的副本（按字母顺序排序，保证输出稳定）
func (p *PlayerState) ListItems() []types.ItemID {
	items := make([]types.ItemID, 0, len(p.inventory))
	for item := range p.inventory {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i] < items[j] })
	return items
}

// SetPosition 写入物理层解算后的位置；known 为 false 表示本帧没有读数
func (p *PlayerState) SetPosition(pos types.Vec3, known bool) {
	p.position = pos
	p.positionKnown = known
}

// Position 返回玩家位置以及位置是否可用
func (p *PlayerState) Position() (types.Vec3, bool) {
	return p.position, p.positionKnown
}

// SetMoveKeys 根据 WASD 按键状态设置移动意图
// W 为 -Z 方向，S 为 +Z，A 为 -X，D 为 +X
func (p *PlayerState) SetMoveKeys(forward, back, left, right bool) {
	x, z := 0.0, 0.0
	if forward {
		z -= 1
	}
	if back {
		z += 1
	}
	if left {
		x -= 1
	}
	if right {
		x += 1
	}

	if x != 0 && z != 0 {
		x *= diagonalFactor
		z *= diagonalFactor
	}

	p.moveX, p.moveZ = x, z
}

// RequestJump 请求跳跃，由下一次 TakeMoveIntent 消费
func (p *PlayerState) RequestJump() {
	p.jumpRequested = true
}

// TakeMoveIntent 取出本帧的移动意图并消费跳跃请求
// 游戏结束后移动指令被抑制，始终返回零值
func (p *PlayerState) TakeMoveIntent() MoveIntent {
	jump := p.jumpRequested
	p.jumpRequested = false

	if p.gameOver {
		return MoveIntent{}
	}
	return MoveIntent{X: p.moveX, Z: p.moveZ, Jump: jump}
}

// Reset 恢复默认值：满血、清空物品与冷却记录
// 位置由物理层持有，不在这里清除
func (p *PlayerState) Reset() {
	p.health = p.maxHealth
	p.gameOver = false
	p.inventory = make(map[types.ItemID]bool)
	p.lastDamageTime = make(map[ecs.EntityID]time.Time)
	p.moveX, p.moveZ = 0, 0
	p.jumpRequested = false
}

// SetMaxHealth 修改最大生命值（调参热更新时使用）
// 回满到新上限要等下一次 Reset；当前生命值超过新上限时截断，不会增加
func (p *PlayerState) SetMaxHealth(maxHealth int) {
	p.maxHealth = maxHealth
	if p.health > maxHealth {
		p.health = maxHealth
	}
}
