package systems

import (
	"log"

	"github.com/decker502/survival/pkg/components"
	"github.com/decker502/survival/pkg/config"
	"github.com/decker502/survival/pkg/ecs"
	"github.com/decker502/survival/pkg/entities"
	"github.com/decker502/survival/pkg/game"
	"github.com/decker502/survival/pkg/types"
)

// Zombie 僵尸状态的只读快照
// 供表现层和物理层读取，修改快照不会影响注册表
type Zombie struct {
	ID         ecs.EntityID
	Type       types.ZombieType
	Position   types.Vec3
	WaveNumber int
	Health     int
	MaxHealth  int
	Speed      float64
	Damage     int
	IsAlive    bool
}

// ActorRegistry 敌对僵尸的权威集合
//
// 职责：
//   - 按波次批量生成僵尸（数量、属性由调参决定）
//   - 僵尸受伤与死亡标记（死亡的僵尸保留在集合中，等待显式移除）
//   - 显式移除与整局清空
//   - 按生成顺序提供快照
//
// 僵尸ID由 EntityManager 分配，整个注册表生命周期内不复用（包括 ClearAll 之后）
type ActorRegistry struct {
	entityManager *ecs.EntityManager
	placer        *SpawnPlacer
	tuning        *config.TuningConfig
	events        *game.EventQueue

	// removeListeners 僵尸被移除时回调，用于清理其他模块中的引用（例如受击冷却记录）
	removeListeners []func(id ecs.EntityID)
}

// NewActorRegistry 创建僵尸注册表
//
// 参数：
//   - em: 实体管理器
//   - placer: 生成位置计算器
//   - tuning: 调参
//   - events: 事件队列（可为 nil）
func NewActorRegistry(em *ecs.EntityManager, placer *SpawnPlacer, tuning *config.TuningConfig, events *game.EventQueue) *ActorRegistry {
	return &ActorRegistry{
		entityManager: em,
		placer:        placer,
		tuning:        tuning,
		events:        events,
	}
}

// SetTuning 替换调参，只影响之后生成的僵尸
func (r *ActorRegistry) SetTuning(tuning *config.TuningConfig) {
	r.tuning = tuning
}

// OnRemove 登记移除回调
func (r *ActorRegistry) OnRemove(fn func(id ecs.EntityID)) {
	r.removeListeners = append(r.removeListeners, fn)
}

// SpawnWave 生成一波僵尸
//
// 数量为 floor(baseCount + waveNumber*scaleFactor)，
// 每个僵尸的速度、伤害根据波次计算，生命值为满血。
//
// 返回：
//   - []Zombie: 本次新生成的僵尸快照（调用方可以忽略）
func (r *ActorRegistry) SpawnWave(waveNumber int) []Zombie {
	count := r.tuning.ZombieCount(waveNumber)
	spawned := make([]Zombie, 0, count)

	log.Printf("[ActorRegistry] Spawning %d zombies for wave %d", count, waveNumber)

	for i := 0; i < count; i++ {
		position := r.placer.PlaceAroundRing(r.tuning.Spawn.Radius, r.tuning.Spawn.Variance, r.tuning.Spawn.Height)

		id, err := entities.NewZombieEntity(r.entityManager, r.tuning, waveNumber, position)
		if err != nil {
			log.Printf("[ActorRegistry] ERROR: failed to create zombie: %v", err)
			continue
		}

		r.events.Push(game.Event{Type: game.EventZombieSpawned, Actor: id, Wave: waveNumber})

		if z, ok := r.Get(id); ok {
			spawned = append(spawned, z)
		}
	}

	return spawned
}

// RemoveActor 删除僵尸及其所有组件，并通知移除回调
// 僵尸不存在时为空操作
func (r *ActorRegistry) RemoveActor(id ecs.EntityID) bool {
	if !ecs.HasComponent[*components.ZombieComponent](r.entityManager, id) {
		return false
	}

	r.entityManager.RemoveEntity(id)
	for _, fn := range r.removeListeners {
		fn(id)
	}
	r.events.Push(game.Event{Type: game.EventZombieRemoved, Actor: id})
	return true
}

// DamageActor 对僵尸造成伤害，生命值不低于 0
//
// 生命值归零时将 IsAlive 置为 false，但记录保留在注册表中，
// 由调用方（或配置了尸体停留时间的 LifetimeSystem）显式移除。
// 对不存在或已死亡的僵尸为空操作。
//
// 返回值表示本次调用是否杀死了该僵尸。
func (r *ActorRegistry) DamageActor(id ecs.EntityID, amount int) bool {
	if amount <= 0 {
		return false
	}

	health, ok := ecs.GetComponent[*components.HealthComponent](r.entityManager, id)
	if !ok || !health.IsAlive {
		return false
	}

	health.CurrentHealth -= amount
	if health.CurrentHealth > 0 {
		return false
	}

	health.CurrentHealth = 0
	health.IsAlive = false

	if vel, ok := ecs.GetComponent[*components.VelocityComponent](r.entityManager, id); ok {
		vel.VX, vel.VZ, vel.Active = 0, 0, false
	}

	if linger := r.tuning.Zombie.CorpseLinger.Std(); linger > 0 {
		ecs.AddComponent(r.entityManager, id, &components.LifetimeComponent{
			MaxLifetime: linger.Seconds(),
		})
	}

	r.events.Push(game.Event{Type: game.EventZombieKilled, Actor: id})
	log.Printf("[ActorRegistry] Zombie %d killed", id)
	return true
}

// ClearAll 移除所有僵尸（整局重置时使用）
// 只移除僵尸实体，不影响同一 EntityManager 中的其他实体
func (r *ActorRegistry) ClearAll() {
	ids := r.ZombieIDs()
	for _, id := range ids {
		r.entityManager.RemoveEntity(id)
	}
	if len(ids) > 0 {
		log.Printf("[ActorRegistry] Cleared %d zombies", len(ids))
	}
}

// Count 返回注册表中的僵尸数量（包括已死亡但尚未移除的）
func (r *ActorRegistry) Count() int {
	return len(r.ZombieIDs())
}

// AliveCount 返回存活僵尸数量
func (r *ActorRegistry) AliveCount() int {
	alive := 0
	for _, id := range r.ZombieIDs() {
		if h, ok := ecs.GetComponent[*components.HealthComponent](r.entityManager, id); ok && h.IsAlive {
			alive++
		}
	}
	return alive
}

// ZombieIDs 返回所有僵尸ID（按生成顺序）
// 返回的是新切片，遍历期间修改注册表是安全的
func (r *ActorRegistry) ZombieIDs() []ecs.EntityID {
	return ecs.GetEntitiesWith1[*components.ZombieComponent](r.entityManager)
}

// List 返回所有僵尸的快照（按生成顺序）
func (r *ActorRegistry) List() []Zombie {
	ids := r.ZombieIDs()
	result := make([]Zombie, 0, len(ids))
	for _, id := range ids {
		if z, ok := r.Get(id); ok {
			result = append(result, z)
		}
	}
	return result
}

// Get 返回单个僵尸的快照
func (r *ActorRegistry) Get(id ecs.EntityID) (Zombie, bool) {
	zombie, ok := ecs.GetComponent[*components.ZombieComponent](r.entityManager, id)
	if !ok {
		return Zombie{}, false
	}

	z := Zombie{
		ID:         id,
		Type:       zombie.Type,
		WaveNumber: zombie.WaveNumber,
		Speed:      zombie.Speed,
		Damage:     zombie.Damage,
	}
	if pos, ok := ecs.GetComponent[*components.PositionComponent](r.entityManager, id); ok {
		z.Position = pos.Vec3
	}
	if health, ok := ecs.GetComponent[*components.HealthComponent](r.entityManager, id); ok {
		z.Health = health.CurrentHealth
		z.MaxHealth = health.MaxHealth
		z.IsAlive = health.IsAlive
	}
	return z, true
}

// SetPosition 写入物理层解算后的位置；known 为 false 表示本帧没有读数
func (r *ActorRegistry) SetPosition(id ecs.EntityID, pos types.Vec3, known bool) {
	p, ok := ecs.GetComponent[*components.PositionComponent](r.entityManager, id)
	if !ok {
		return
	}
	if known {
		p.Vec3 = pos
	}
	p.Known = known
}
