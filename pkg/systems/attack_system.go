package systems

import (
	"log"
	"time"

	"github.com/decker502/survival/pkg/components"
	"github.com/decker502/survival/pkg/config"
	"github.com/decker502/survival/pkg/ecs"
	"github.com/decker502/survival/pkg/game"
)

// AttackSystem 持剑攻击
//
// 玩家拥有商店出售的武器（shop.item）时可以挥剑，对水平距离 sword.range 以内的所有存活僵尸造成伤害。
// 两次挥剑至少间隔 sword.cooldown。
type AttackSystem struct {
	entityManager *ecs.EntityManager
	registry      *ActorRegistry
	player        *game.PlayerState
	clock         game.TimeProvider
	tuning        *config.TuningConfig

	lastSwing time.Time
	swung     bool
}

// NewAttackSystem 创建攻击系统
func NewAttackSystem(em *ecs.EntityManager, registry *ActorRegistry, player *game.PlayerState, clock game.TimeProvider, tuning *config.TuningConfig) *AttackSystem {
	return &AttackSystem{
		entityManager: em,
		registry:      registry,
		player:        player,
		clock:         clock,
		tuning:        tuning,
	}
}

// SetTuning 替换调参
func (s *AttackSystem) SetTuning(tuning *config.TuningConfig) {
	s.tuning = tuning
}

// Attack 挥剑
//
// 返回：
//   - int: 本次命中的僵尸数（没有武器、冷却中或游戏结束时为 0）
func (s *AttackSystem) Attack() int {
	if s.player.IsGameOver() || !s.player.HasItem(s.tuning.Shop.Item) {
		return 0
	}

	now := s.clock.Now()
	if s.swung && now.Sub(s.lastSwing) < s.tuning.Sword.Cooldown.Std() {
		return 0
	}
	s.lastSwing = now
	s.swung = true

	playerPos, known := s.player.Position()
	if !known {
		return 0
	}

	hits := 0
	for _, id := range s.registry.ZombieIDs() {
		pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		if !ok || !pos.Known {
			continue
		}
		health, ok := ecs.GetComponent[*components.HealthComponent](s.entityManager, id)
		if !ok || !health.IsAlive {
			continue
		}
		if pos.HorizontalDistanceTo(playerPos) > s.tuning.Sword.Range {
			continue
		}

		s.registry.DamageActor(id, s.tuning.Sword.Damage)
		hits++
	}

	if hits > 0 {
		log.Printf("[AttackSystem] Sword hit %d zombies", hits)
	}
	return hits
}

// IsSwinging 挥剑动画是否仍在播放
func (s *AttackSystem) IsSwinging() bool {
	return s.swung && s.clock.Now().Sub(s.lastSwing) < s.tuning.Sword.SwingDuration.Std()
}

// Reset 清除冷却
func (s *AttackSystem) Reset() {
	s.swung = false
	s.lastSwing = time.Time{}
}
