package systems

import (
	"math/rand"
	"time"

	"github.com/decker502/survival/pkg/config"
	"github.com/decker502/survival/pkg/ecs"
	"github.com/decker502/survival/pkg/game"
	"github.com/decker502/survival/pkg/types"
)

// testStartTime 所有测试共用的起始时间
var testStartTime = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// testWorld 测试用的模拟层组件集合
type testWorld struct {
	em        *ecs.EntityManager
	tuning    *config.TuningConfig
	clock     *game.MockTimeProvider
	scheduler *game.TimerScheduler
	player    *game.PlayerState
	events    *game.EventQueue
	registry  *ActorRegistry
}

// newTestWorld 创建测试用的模拟层（固定随机种子、模拟时钟）
func newTestWorld() *testWorld {
	tuning := config.DefaultTuning()
	clock := game.NewMockTimeProvider(testStartTime)
	em := ecs.NewEntityManager()
	events := game.NewEventQueue()
	player := game.NewPlayerState(tuning.Player.MaxHealth)
	player.SetPosition(types.Vec3{}, true)

	return &testWorld{
		em:        em,
		tuning:    tuning,
		clock:     clock,
		scheduler: game.NewTimerScheduler(clock),
		player:    player,
		events:    events,
		registry:  NewActorRegistry(em, NewSpawnPlacer(rand.New(rand.NewSource(42))), tuning, events),
	}
}

// spawnAt 生成一波并把第一个僵尸放到指定位置，返回其ID
func (w *testWorld) spawnAt(wave int, pos types.Vec3) ecs.EntityID {
	spawned := w.registry.SpawnWave(wave)
	id := spawned[0].ID
	w.registry.SetPosition(id, pos, true)
	return id
}

// moveAllAway 把所有僵尸移到远处
func (w *testWorld) moveAllAway() {
	for _, id := range w.registry.ZombieIDs() {
		w.registry.SetPosition(id, types.Vec3{X: 100, Z: 100}, true)
	}
}

// countEvents 统计指定类型的事件数量
func countEvents(events []game.Event, typ game.EventType) int {
	n := 0
	for _, e := range events {
		if e.Type == typ {
			n++
		}
	}
	return n
}
