package systems

import (
	"log"

	"github.com/decker502/survival/pkg/components"
	"github.com/decker502/survival/pkg/config"
	"github.com/decker502/survival/pkg/ecs"
	"github.com/decker502/survival/pkg/game"
)

// CombatSystem 接触伤害系统
//
// 每帧检查存活僵尸与玩家的水平距离，在 damageRange 以内的僵尸对玩家造成伤害。
// 冷却按攻击者分别计算：同一个僵尸两次伤害至少间隔 damageCooldown，
// 不同僵尸之间互不影响。玩家生命值归零的瞬间进入游戏结束，本帧剩余僵尸不再处理。
type CombatSystem struct {
	entityManager *ecs.EntityManager
	registry      *ActorRegistry
	player        *game.PlayerState
	events        *game.EventQueue
	clock         game.TimeProvider
	tuning        *config.TuningConfig
}

// NewCombatSystem 创建接触伤害系统
func NewCombatSystem(em *ecs.EntityManager, registry *ActorRegistry, player *game.PlayerState, events *game.EventQueue, clock game.TimeProvider, tuning *config.TuningConfig) *CombatSystem {
	return &CombatSystem{
		entityManager: em,
		registry:      registry,
		player:        player,
		events:        events,
		clock:         clock,
		tuning:        tuning,
	}
}

// SetTuning 替换调参
func (s *CombatSystem) SetTuning(tuning *config.TuningConfig) {
	s.tuning = tuning
}

// Update 执行一次接触伤害判定
//
// 返回：
//   - int: 本帧命中玩家的次数
func (s *CombatSystem) Update() int {
	if s.player.IsGameOver() {
		return 0
	}

	playerPos, known := s.player.Position()
	if !known {
		return 0
	}

	now := s.clock.Now()
	cooldown := s.tuning.Combat.DamageCooldown.Std()
	hits := 0

	for _, id := range s.registry.ZombieIDs() {
		health, ok := ecs.GetComponent[*components.HealthComponent](s.entityManager, id)
		if !ok || !health.IsAlive {
			continue
		}
		pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		if !ok || !pos.Known {
			continue
		}
		zombie, ok := ecs.GetComponent[*components.ZombieComponent](s.entityManager, id)
		if !ok {
			continue
		}

		if pos.HorizontalDistanceTo(playerPos) > s.tuning.Combat.DamageRange {
			continue
		}
		if !s.player.CanTakeDamageFrom(id, now, cooldown) {
			continue
		}

		gameOver := s.player.ApplyDamageFrom(id, zombie.Damage, now)
		hits++
		s.events.Push(game.Event{
			Type:   game.EventPlayerDamaged,
			Actor:  id,
			Amount: zombie.Damage,
			Health: s.player.Health(),
		})

		if gameOver {
			log.Printf("[CombatSystem] Player killed by zombie %d", id)
			s.events.Push(game.Event{Type: game.EventGameOver, Actor: id})
			break
		}
	}

	return hits
}
