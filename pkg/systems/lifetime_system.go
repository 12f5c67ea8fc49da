package systems

import (
	"github.com/decker502/survival/pkg/components"
	"github.com/decker502/survival/pkg/ecs"
)

// LifetimeSystem 管理尸体的停留时间
// 过期的僵尸通过 ActorRegistry 移除，以便触发移除回调
type LifetimeSystem struct {
	entityManager *ecs.EntityManager
	registry      *ActorRegistry
}

// NewLifetimeSystem 创建一个新的生命周期系统
func NewLifetimeSystem(em *ecs.EntityManager, registry *ActorRegistry) *LifetimeSystem {
	return &LifetimeSystem{
		entityManager: em,
		registry:      registry,
	}
}

// Update 更新所有拥有生命周期组件的实体
func (s *LifetimeSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith1[*components.LifetimeComponent](s.entityManager)

	for _, id := range entities {
		lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id)
		if !ok {
			continue
		}

		lifetime.CurrentLifetime += deltaTime

		if lifetime.CurrentLifetime >= lifetime.MaxLifetime {
			lifetime.IsExpired = true
		}

		if lifetime.IsExpired {
			if !s.registry.RemoveActor(id) {
				s.entityManager.DestroyEntity(id)
			}
		}
	}
}
