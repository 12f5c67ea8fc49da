package systems

import (
	"log"
	"math"

	"github.com/decker502/survival/pkg/components"
	"github.com/decker502/survival/pkg/config"
	"github.com/decker502/survival/pkg/ecs"
	"github.com/decker502/survival/pkg/game"
	"github.com/decker502/survival/pkg/types"
)

// SteerTowards 计算从 from 追向 to 的水平速度指令
//
// 规则：
//   - 只看水平 (X, Z) 平面，Y 被忽略
//   - 水平距离 <= minSeparation 时返回 (0, 0)，避免在玩家身上抖动
//   - 否则沿单位方向乘以 speed，每个轴分别限制在 [-maxSpeed, maxSpeed]
func SteerTowards(from, to types.Vec3, speed, minSeparation, maxSpeed float64) (vx, vz float64) {
	dx := to.X - from.X
	dz := to.Z - from.Z
	dist := math.Hypot(dx, dz)
	if dist <= minSeparation || dist == 0 {
		return 0, 0
	}

	vx = clampAxis(dx/dist*speed, maxSpeed)
	vz = clampAxis(dz/dist*speed, maxSpeed)
	return vx, vz
}

func clampAxis(v, limit float64) float64 {
	return math.Max(-limit, math.Min(limit, v))
}

// PursuitSystem 追击系统
//
// 每帧为每个存活且位置已知的僵尸写入朝向玩家的水平速度指令。
// 竖直速度不在这里处理。游戏结束后所有指令被关闭，不再追击。
type PursuitSystem struct {
	entityManager *ecs.EntityManager
	registry      *ActorRegistry
	player        *game.PlayerState
	tuning        *config.TuningConfig

	verbose bool
}

// NewPursuitSystem 创建追击系统
func NewPursuitSystem(em *ecs.EntityManager, registry *ActorRegistry, player *game.PlayerState, tuning *config.TuningConfig) *PursuitSystem {
	return &PursuitSystem{
		entityManager: em,
		registry:      registry,
		player:        player,
		tuning:        tuning,
	}
}

// SetTuning 替换调参
func (s *PursuitSystem) SetTuning(tuning *config.TuningConfig) {
	s.tuning = tuning
}

// SetVerbose 设置是否输出详细日志
func (s *PursuitSystem) SetVerbose(verbose bool) {
	s.verbose = verbose
}

// Update 更新所有僵尸的速度指令
// 遍历的是本帧开始时的僵尸快照
func (s *PursuitSystem) Update() {
	ids := s.registry.ZombieIDs()

	playerPos, known := s.player.Position()
	if s.player.IsGameOver() || !known {
		s.deactivateAll(ids)
		return
	}

	for _, id := range ids {
		vel, ok := ecs.GetComponent[*components.VelocityComponent](s.entityManager, id)
		if !ok {
			continue
		}

		health, hasHealth := ecs.GetComponent[*components.HealthComponent](s.entityManager, id)
		pos, hasPos := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		zombie, hasZombie := ecs.GetComponent[*components.ZombieComponent](s.entityManager, id)
		if !hasHealth || !hasPos || !hasZombie || !health.IsAlive || !pos.Known {
			vel.VX, vel.VZ, vel.Active = 0, 0, false
			continue
		}

		vel.VX, vel.VZ = SteerTowards(pos.Vec3, playerPos, zombie.Speed, s.tuning.Steering.MinSeparation, s.tuning.Steering.MaxSpeed)
		vel.Active = true

		if s.verbose {
			log.Printf("[PursuitSystem] Zombie %d velocity (%.2f, %.2f)", id, vel.VX, vel.VZ)
		}
	}
}

// VelocityCommand 一个僵尸本帧的水平速度指令
type VelocityCommand struct {
	ID ecs.EntityID
	VX float64
	VZ float64
}

// Commands 返回所有处于激活状态的速度指令（按生成顺序）
func (s *PursuitSystem) Commands() []VelocityCommand {
	ids := ecs.GetEntitiesWith2[*components.ZombieComponent, *components.VelocityComponent](s.entityManager)
	cmds := make([]VelocityCommand, 0, len(ids))
	for _, id := range ids {
		vel, _ := ecs.GetComponent[*components.VelocityComponent](s.entityManager, id)
		if vel == nil || !vel.Active {
			continue
		}
		cmds = append(cmds, VelocityCommand{ID: id, VX: vel.VX, VZ: vel.VZ})
	}
	return cmds
}

func (s *PursuitSystem) deactivateAll(ids []ecs.EntityID) {
	for _, id := range ids {
		if vel, ok := ecs.GetComponent[*components.VelocityComponent](s.entityManager, id); ok {
			vel.VX, vel.VZ, vel.Active = 0, 0, false
		}
	}
}
