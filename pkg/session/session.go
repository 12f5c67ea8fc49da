// Package session 把模拟层的各个系统组合成一局游戏
//
// Session 是表现层（渲染、物理、输入）与模拟层之间唯一的接触面：
// 表现层通过 GameAPI 查询和下达指令，通过 PositionSource 回传物理解算后的位置，
// 通过 DrainEvents 获取通知。Session 本身不加锁，所有调用必须来自同一个 goroutine
// （需要跨 goroutine 驱动时使用 Runner）。
package session

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/decker502/survival/pkg/config"
	"github.com/decker502/survival/pkg/ecs"
	"github.com/decker502/survival/pkg/game"
	"github.com/decker502/survival/pkg/systems"
	"github.com/decker502/survival/pkg/types"
)

// GameAPI 表现层可见的查询与指令
type GameAPI interface {
	PlayerHealth() int
	IsGameOver() bool
	ZombieCount() int
	Zombies() []systems.Zombie
	Wave() int
	SecondsUntilNextWave() int
	IsWaveActive() bool
	WaveStatus() systems.WaveStatus

	StartNewWave()
	ResetGame()
	GiveItem(item types.ItemID) bool
	HasItem(item types.ItemID) bool
	Items() []types.ItemID
}

// PositionSource 物理层回传的位置读数
// 返回 false 表示本帧没有读数（物理层尚未就绪或该实体还没有刚体）
type PositionSource interface {
	PlayerPosition() (types.Vec3, bool)
	ActorPosition(id ecs.EntityID) (types.Vec3, bool)
}

// Options Session 的构造参数
type Options struct {
	// Tuning 调参，为 nil 时使用默认值
	Tuning *config.TuningConfig
	// Clock 时钟，为 nil 时使用真实时间
	Clock game.TimeProvider
	// Rand 生成位置的随机数源，为 nil 时以当前时间为种子
	Rand *rand.Rand
	// Positions 位置来源，可以稍后通过 SetPositionSource 设置
	Positions PositionSource
	// Verbose 输出详细日志
	Verbose bool
}

// Session 一局游戏
type Session struct {
	tuning *config.TuningConfig
	clock  game.TimeProvider

	entityManager *ecs.EntityManager
	gameState     *game.GameState
	scheduler     *game.TimerScheduler
	events        *game.EventQueue
	player        *game.PlayerState

	registry *systems.ActorRegistry
	pursuit  *systems.PursuitSystem
	combat   *systems.CombatSystem
	waves    *systems.WaveTimingSystem
	shop     *systems.ShopSystem
	attack   *systems.AttackSystem
	lifetime *systems.LifetimeSystem

	positions PositionSource
}

var _ GameAPI = (*Session)(nil)

// New 创建一局游戏并启动波次倒计时
//
// 非法调参在这里被拒绝，运行期间不会再因配置出错。
func New(opts Options) (*Session, error) {
	tuning := opts.Tuning
	if tuning == nil {
		tuning = config.DefaultTuning()
	}
	if err := tuning.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tuning: %w", err)
	}

	clock := opts.Clock
	if clock == nil {
		clock = game.NewRealTimeProvider()
	}

	em := ecs.NewEntityManager()
	gs := game.NewGameState()
	scheduler := game.NewTimerScheduler(clock)
	events := game.NewEventQueue()
	player := game.NewPlayerState(tuning.Player.MaxHealth)

	registry := systems.NewActorRegistry(em, systems.NewSpawnPlacer(opts.Rand), tuning, events)
	registry.OnRemove(player.ForgetAttacker)

	s := &Session{
		tuning:        tuning,
		clock:         clock,
		entityManager: em,
		gameState:     gs,
		scheduler:     scheduler,
		events:        events,
		player:        player,
		registry:      registry,
		pursuit:       systems.NewPursuitSystem(em, registry, player, tuning),
		combat:        systems.NewCombatSystem(em, registry, player, events, clock, tuning),
		waves:         systems.NewWaveTimingSystem(em, gs, scheduler, registry, player, events, tuning),
		shop:          systems.NewShopSystem(player, events, clock, tuning),
		attack:        systems.NewAttackSystem(em, registry, player, clock, tuning),
		lifetime:      systems.NewLifetimeSystem(em, registry),
		positions:     opts.Positions,
	}

	s.pursuit.SetVerbose(opts.Verbose)
	s.waves.SetVerbose(opts.Verbose)
	s.waves.Start()

	log.Printf("[Session] Started: wave interval %ds, player health %d", tuning.WaveIntervalSeconds(), tuning.Player.MaxHealth)
	return s, nil
}

// SetPositionSource 设置物理层位置来源
func (s *Session) SetPositionSource(src PositionSource) {
	s.positions = src
}

// Tick 执行一帧模拟
//
// 执行顺序：
//  1. 到期的定时器（1Hz 倒计时、提示窗口结束）
//  2. 读取物理层位置（每帧只读一次）
//  3. 追击 → 接触伤害 → 商店范围 → 尸体停留
//  4. 清理标记删除的实体
func (s *Session) Tick(deltaTime float64) {
	s.gameState.Advance(deltaTime)
	s.scheduler.RunDue()
	s.syncPositions()

	s.pursuit.Update()
	s.combat.Update()
	s.shop.Update()
	s.lifetime.Update(deltaTime)

	s.entityManager.RemoveMarkedEntities()
}

// syncPositions 读取物理层解算后的位置
// 缺失的读数只让对应的实体在本帧被跳过
func (s *Session) syncPositions() {
	if s.positions == nil {
		return
	}

	pos, ok := s.positions.PlayerPosition()
	s.player.SetPosition(pos, ok)

	for _, id := range s.registry.ZombieIDs() {
		pos, ok := s.positions.ActorPosition(id)
		s.registry.SetPosition(id, pos, ok)
	}
}

// PlayerHealth 当前生命值
func (s *Session) PlayerHealth() int {
	return s.player.Health()
}

// PlayerMaxHealth 最大生命值
func (s *Session) PlayerMaxHealth() int {
	return s.player.MaxHealth()
}

// PlayerPosition 最近一次读取到的玩家位置
func (s *Session) PlayerPosition() (types.Vec3, bool) {
	return s.player.Position()
}

// IsGameOver 是否已经游戏结束
func (s *Session) IsGameOver() bool {
	return s.player.IsGameOver()
}

// ZombieCount 注册表中的僵尸数量（包括尚未移除的尸体）
func (s *Session) ZombieCount() int {
	return s.registry.Count()
}

// AliveZombieCount 存活僵尸数量
func (s *Session) AliveZombieCount() int {
	return s.registry.AliveCount()
}

// Zombies 所有僵尸的快照
func (s *Session) Zombies() []systems.Zombie {
	return s.registry.List()
}

// Wave 当前波次
func (s *Session) Wave() int {
	return s.waves.GetCurrentWave()
}

// SecondsUntilNextWave 距离下一波的秒数
func (s *Session) SecondsUntilNextWave() int {
	return s.waves.GetSecondsUntilNextWave()
}

// IsWaveActive 是否处于波次开始提示窗口
func (s *Session) IsWaveActive() bool {
	return s.waves.IsWaveActive()
}

// WaveStatus HUD 显示状态
func (s *Session) WaveStatus() systems.WaveStatus {
	return s.waves.Status()
}

// StartNewWave 手动进入下一波
func (s *Session) StartNewWave() {
	s.waves.AdvanceWaveManually()
}

// ResetGame 开始新的一局
//
// 先丢弃所有定时器（递增代数），再清空僵尸、玩家和计时状态，
// 重置之前登记的回调不会再被执行。
func (s *Session) ResetGame() {
	s.scheduler.Reset()
	s.registry.ClearAll()
	s.entityManager.RemoveMarkedEntities()
	s.player.Reset()
	s.shop.Reset()
	s.attack.Reset()
	generation := s.gameState.Reset()
	s.waves.Reset()

	s.events.Push(game.Event{Type: game.EventGameReset})
	log.Printf("[Session] Game reset (generation %d)", generation)
}

// GiveItem 直接给予物品，已拥有时返回 false
func (s *Session) GiveItem(item types.ItemID) bool {
	if !s.player.AcquireItem(item) {
		return false
	}
	s.events.Push(game.Event{Type: game.EventItemAcquired, Item: item})
	return true
}

// HasItem 是否拥有物品
func (s *Session) HasItem(item types.ItemID) bool {
	return s.player.HasItem(item)
}

// Items 物品列表（副本）
func (s *Session) Items() []types.ItemID {
	return s.player.ListItems()
}

// RemoveZombie 移除僵尸（通常用于尸体）
func (s *Session) RemoveZombie(id ecs.EntityID) bool {
	return s.registry.RemoveActor(id)
}

// DamageZombie 对僵尸造成伤害，返回是否杀死
func (s *Session) DamageZombie(id ecs.EntityID, amount int) bool {
	return s.registry.DamageActor(id, amount)
}

// Interact 在商店附近按下交互键
func (s *Session) Interact() bool {
	return s.shop.Interact()
}

// ShopState 商店显示状态
func (s *Session) ShopState() systems.ShopState {
	return s.shop.State()
}

// Attack 挥剑，返回命中数
func (s *Session) Attack() int {
	return s.attack.Attack()
}

// IsSwinging 挥剑动画是否在播放
func (s *Session) IsSwinging() bool {
	return s.attack.IsSwinging()
}

// SetMoveKeys 设置 WASD 按键状态
func (s *Session) SetMoveKeys(forward, back, left, right bool) {
	s.player.SetMoveKeys(forward, back, left, right)
}

// RequestJump 请求跳跃
func (s *Session) RequestJump() {
	s.player.RequestJump()
}

// PlayerIntent 取出本帧的玩家移动意图，供物理层施加
func (s *Session) PlayerIntent() game.MoveIntent {
	return s.player.TakeMoveIntent()
}

// VelocityCommands 本帧的僵尸速度指令，供物理层施加
// 游戏结束后不再输出任何指令
func (s *Session) VelocityCommands() []systems.VelocityCommand {
	if s.player.IsGameOver() {
		return nil
	}
	return s.pursuit.Commands()
}

// DrainEvents 取出自上次调用以来的所有事件
func (s *Session) DrainEvents() []game.Event {
	return s.events.Drain()
}

// Generation 当前重置代数
func (s *Session) Generation() uint64 {
	return s.gameState.Generation
}

// LevelTime 本局已运行的模拟时间（秒）
func (s *Session) LevelTime() float64 {
	return s.gameState.LevelTime
}

// Tuning 当前调参
func (s *Session) Tuning() *config.TuningConfig {
	return s.tuning
}

// ApplyTuning 热更新调参
//
// 新调参只影响之后的计算：已经生成的僵尸保留原有属性，
// 新的波次间隔从下一次倒计时重置开始生效，新的最大生命值从下一次重置开始生效。
func (s *Session) ApplyTuning(tuning *config.TuningConfig) error {
	if err := tuning.Validate(); err != nil {
		return fmt.Errorf("rejecting tuning update: %w", err)
	}

	s.tuning = tuning
	s.registry.SetTuning(tuning)
	s.pursuit.SetTuning(tuning)
	s.combat.SetTuning(tuning)
	s.waves.SetTuning(tuning)
	s.shop.SetTuning(tuning)
	s.attack.SetTuning(tuning)
	s.player.SetMaxHealth(tuning.Player.MaxHealth)

	s.events.Push(game.Event{Type: game.EventTuningApplied})
	log.Printf("[Session] Tuning applied")
	return nil
}
