package entities

import (
	"fmt"

	"github.com/decker502/survival/pkg/components"
	"github.com/decker502/survival/pkg/config"
	"github.com/decker502/survival/pkg/ecs"
	"github.com/decker502/survival/pkg/types"
)

// NewZombieEntity 创建普通僵尸实体
// 速度、伤害根据波次由调参计算，生命值为满血
//
// 参数:
//   - em: 实体管理器
//   - tuning: 调参（决定属性随波次的成长）
//   - waveNumber: 生成该僵尸的波次
//   - position: 生成位置（由 SpawnPlacer 计算）
//
// 返回:
//   - ecs.EntityID: 创建的僵尸实体ID，如果失败返回 0
//   - error: 如果创建失败返回错误信息
func NewZombieEntity(em *ecs.EntityManager, tuning *config.TuningConfig, waveNumber int, position types.Vec3) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if tuning == nil {
		return 0, fmt.Errorf("tuning cannot be nil")
	}

	id := em.CreateEntity()

	ecs.AddComponent(em, id, &components.PositionComponent{
		Vec3:  position,
		Known: true,
	})
	ecs.AddComponent(em, id, &components.VelocityComponent{})
	ecs.AddComponent(em, id, &components.HealthComponent{
		CurrentHealth: tuning.Zombie.MaxHealth,
		MaxHealth:     tuning.Zombie.MaxHealth,
		IsAlive:       true,
	})
	ecs.AddComponent(em, id, &components.ZombieComponent{
		Type:       types.ZombieBasic,
		WaveNumber: waveNumber,
		Speed:      tuning.ZombieSpeed(waveNumber),
		Damage:     tuning.ZombieDamage(waveNumber),
	})

	return id, nil
}
