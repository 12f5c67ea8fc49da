package systems

import (
	"log"
	"time"

	"github.com/decker502/survival/pkg/components"
	"github.com/decker502/survival/pkg/config"
	"github.com/decker502/survival/pkg/ecs"
	"github.com/decker502/survival/pkg/game"
)

// WaveStatus 倒计时区域显示的状态
type WaveStatus int

const (
	// WaveStatusWaiting 正常等待下一波
	WaveStatusWaiting WaveStatus = iota
	// WaveStatusPreparing 倒计时进入准备阶段
	WaveStatusPreparing
	// WaveStatusStarting 波次刚刚开始（提示窗口内）
	WaveStatusStarting
)

// String 返回 HUD 使用的状态文本
func (s WaveStatus) String() string {
	switch s {
	case WaveStatusStarting:
		return "WAVE STARTING!"
	case WaveStatusPreparing:
		return "PREPARE!"
	default:
		return "NEXT WAVE IN"
	}
}

// WaveTimingSystem 波次计时系统
//
// 职责：
//   - 每秒递减一次倒计时（由 TimerScheduler 的 1Hz 定时器驱动）
//   - 倒计时递减前 <= 1 时进入下一波：波次 +1，生成僵尸，倒计时重置为波次间隔
//   - 波次开始后的提示窗口（IsWaveActive），窗口结束由一次性定时器清除
//   - 支持手动触发下一波、暂停/恢复、整局重置
//
// 架构说明：
//   - 使用 WaveTimerComponent 存储状态
//   - 定时器与帧逻辑在同一个 goroutine 中执行，不需要加锁
//   - 游戏结束后倒计时停止，但手动触发仍然有效
type WaveTimingSystem struct {
	entityManager *ecs.EntityManager
	gameState     *game.GameState
	scheduler     *game.TimerScheduler
	registry      *ActorRegistry
	player        *game.PlayerState
	events        *game.EventQueue
	tuning        *config.TuningConfig

	// timerEntityID 计时器组件所在的实体ID
	timerEntityID ecs.EntityID

	// countdownTimer 当前的 1Hz 倒计时定时器
	countdownTimer game.TimerID

	// verbose 是否输出详细日志
	verbose bool
}

// NewWaveTimingSystem 创建波次计时系统
//
// 参数：
//   - em: 实体管理器
//   - gs: 本局游戏状态
//   - scheduler: 协作式定时器
//   - registry: 僵尸注册表（新波次在这里生成）
//   - player: 玩家状态（游戏结束时停止倒计时）
//   - events: 事件队列
//   - tuning: 调参
//
// 返回：
//   - *WaveTimingSystem: 波次计时系统实例（尚未启动，需要调用 Start）
func NewWaveTimingSystem(em *ecs.EntityManager, gs *game.GameState, scheduler *game.TimerScheduler, registry *ActorRegistry, player *game.PlayerState, events *game.EventQueue, tuning *config.TuningConfig) *WaveTimingSystem {
	system := &WaveTimingSystem{
		entityManager: em,
		gameState:     gs,
		scheduler:     scheduler,
		registry:      registry,
		player:        player,
		events:        events,
		tuning:        tuning,
	}

	system.createTimerEntity()

	return system
}

// createTimerEntity 创建计时器组件实体
func (s *WaveTimingSystem) createTimerEntity() {
	entityID := s.entityManager.CreateEntity()
	s.timerEntityID = entityID

	ecs.AddComponent(s.entityManager, entityID, &components.WaveTimerComponent{
		CurrentWave:          1,
		SecondsUntilNextWave: s.tuning.WaveIntervalSeconds(),
	})

	log.Printf("[WaveTimingSystem] Created timer entity (ID: %d), interval: %ds", entityID, s.tuning.WaveIntervalSeconds())
}

// Start 登记 1Hz 倒计时定时器
// TimerScheduler 重置后需要重新调用
func (s *WaveTimingSystem) Start() {
	s.countdownTimer = s.scheduler.Every(time.Second, s.CountdownSecond)
}

// restartCountdown 取消旧的倒计时定时器并从现在开始重新计相位
func (s *WaveTimingSystem) restartCountdown() {
	if s.countdownTimer != 0 {
		s.scheduler.Cancel(s.countdownTimer)
	}
	s.Start()
}

// CountdownSecond 倒计时走一秒
//
// 暂停或游戏结束时不递减。
// 递减前 <= 1 时触发下一波（AdvanceWave 会把倒计时重置为波次间隔）。
func (s *WaveTimingSystem) CountdownSecond() {
	timer := s.getTimerComponent()
	if timer == nil {
		return
	}

	if timer.IsPaused || s.player.IsGameOver() {
		return
	}

	if timer.SecondsUntilNextWave <= 1 {
		s.AdvanceWave()
		return
	}

	timer.SecondsUntilNextWave--

	if s.verbose {
		log.Printf("[WaveTimingSystem] Countdown: %ds", timer.SecondsUntilNextWave)
	}
}

// AdvanceWave 进入下一波
//
// 执行流程：
//  1. 波次 +1
//  2. 在注册表中生成本波僵尸
//  3. 打开提示窗口，并登记窗口结束定时器
//  4. 倒计时重置为波次间隔
func (s *WaveTimingSystem) AdvanceWave() {
	timer := s.getTimerComponent()
	if timer == nil {
		return
	}

	timer.CurrentWave++
	wave := timer.CurrentWave

	spawned := s.registry.SpawnWave(wave)

	timer.IsWaveActive = true
	timer.WavesTriggered++
	timer.SecondsUntilNextWave = s.tuning.WaveIntervalSeconds()

	s.events.Push(game.Event{Type: game.EventWaveStarted, Wave: wave})
	s.scheduler.After(s.tuning.Wave.Pulse.Std(), func() { s.endPulse(wave) })

	levelTime := 0.0
	if s.gameState != nil {
		levelTime = s.gameState.LevelTime
	}
	log.Printf("[WaveTimingSystem] ✅ Wave %d triggered at time %.2fs (%d zombies)", wave, levelTime, len(spawned))
}

// AdvanceWaveManually 立即进入下一波（调试/测试入口）
// 与倒计时触发的效果相同，倒计时同样重置为完整间隔；
// 1Hz 定时器从触发时刻重新开始，下一波至少间隔完整的波次间隔
func (s *WaveTimingSystem) AdvanceWaveManually() {
	log.Printf("[WaveTimingSystem] Manual wave trigger")
	s.AdvanceWave()
	s.restartCountdown()
}

// endPulse 提示窗口结束
// 期间若已经进入更新的波次，则由那一波自己的定时器负责清除
func (s *WaveTimingSystem) endPulse(wave int) {
	timer := s.getTimerComponent()
	if timer == nil || timer.CurrentWave != wave {
		return
	}

	timer.IsWaveActive = false
	s.events.Push(game.Event{Type: game.EventWavePulseEnded, Wave: wave})
}

// Reset 恢复到第 1 波、完整倒计时
// 调用方负责先重置 TimerScheduler，本方法会重新登记倒计时定时器
func (s *WaveTimingSystem) Reset() {
	timer := s.getTimerComponent()
	if timer == nil {
		return
	}

	timer.CurrentWave = 1
	timer.SecondsUntilNextWave = s.tuning.WaveIntervalSeconds()
	timer.IsWaveActive = false
	timer.IsPaused = false
	timer.WavesTriggered = 0

	s.Start()

	log.Printf("[WaveTimingSystem] Reset to wave 1, countdown %ds", timer.SecondsUntilNextWave)
}

// SetTuning 替换调参
// 新的波次间隔从下一次倒计时重置开始生效
func (s *WaveTimingSystem) SetTuning(tuning *config.TuningConfig) {
	s.tuning = tuning
}

// Pause 暂停计时器
func (s *WaveTimingSystem) Pause() {
	timer := s.getTimerComponent()
	if timer == nil {
		return
	}

	timer.IsPaused = true
	log.Printf("[WaveTimingSystem] Timer paused at %ds", timer.SecondsUntilNextWave)
}

// Resume 恢复计时器
func (s *WaveTimingSystem) Resume() {
	timer := s.getTimerComponent()
	if timer == nil {
		return
	}

	timer.IsPaused = false
	log.Printf("[WaveTimingSystem] Timer resumed at %ds", timer.SecondsUntilNextWave)
}

// Status 返回当前显示状态
func (s *WaveTimingSystem) Status() WaveStatus {
	timer := s.getTimerComponent()
	if timer == nil {
		return WaveStatusWaiting
	}

	if timer.IsWaveActive {
		return WaveStatusStarting
	}
	if time.Duration(timer.SecondsUntilNextWave)*time.Second <= s.tuning.Wave.Preparation.Std() {
		return WaveStatusPreparing
	}
	return WaveStatusWaiting
}

// GetCurrentWave 获取当前波次（从 1 开始）
func (s *WaveTimingSystem) GetCurrentWave() int {
	timer := s.getTimerComponent()
	if timer == nil {
		return 0
	}
	return timer.CurrentWave
}

// GetSecondsUntilNextWave 获取距离下一波的秒数
func (s *WaveTimingSystem) GetSecondsUntilNextWave() int {
	timer := s.getTimerComponent()
	if timer == nil {
		return 0
	}
	return timer.SecondsUntilNextWave
}

// IsWaveActive 是否处于波次开始提示窗口
func (s *WaveTimingSystem) IsWaveActive() bool {
	timer := s.getTimerComponent()
	return timer != nil && timer.IsWaveActive
}

// SetVerbose 设置是否输出详细日志
func (s *WaveTimingSystem) SetVerbose(verbose bool) {
	s.verbose = verbose
}

// getTimerComponent 获取计时器组件
func (s *WaveTimingSystem) getTimerComponent() *components.WaveTimerComponent {
	timer, ok := ecs.GetComponent[*components.WaveTimerComponent](s.entityManager, s.timerEntityID)
	if !ok {
		return nil
	}
	return timer
}

// GetTimerEntityID 获取计时器实体ID（用于测试）
func (s *WaveTimingSystem) GetTimerEntityID() ecs.EntityID {
	return s.timerEntityID
}
