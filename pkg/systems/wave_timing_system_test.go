package systems

import (
	"testing"
	"time"

	"github.com/decker502/survival/pkg/components"
	"github.com/decker502/survival/pkg/ecs"
	"github.com/decker502/survival/pkg/game"
)

// newTestWaveTiming 创建已启动的波次计时系统
func newTestWaveTiming(world *testWorld) *WaveTimingSystem {
	system := NewWaveTimingSystem(world.em, game.NewGameState(), world.scheduler, world.registry, world.player, world.events, world.tuning)
	system.Start()
	return system
}

// advanceSeconds 以 1 秒为步长推进模拟时钟并执行到期定时器
func advanceSeconds(world *testWorld, seconds int) {
	for i := 0; i < seconds; i++ {
		world.clock.Advance(time.Second)
		world.scheduler.RunDue()
	}
}

// TestWaveTimingSystem_Creation 测试系统创建
func TestWaveTimingSystem_Creation(t *testing.T) {
	world := newTestWorld()
	system := newTestWaveTiming(world)

	if system.GetTimerEntityID() == 0 {
		t.Fatal("Expected timer entity to be created")
	}
	if _, ok := ecs.GetComponent[*components.WaveTimerComponent](world.em, system.GetTimerEntityID()); !ok {
		t.Fatal("Expected WaveTimerComponent on timer entity")
	}
	if system.GetCurrentWave() != 1 {
		t.Errorf("Expected wave 1, got %d", system.GetCurrentWave())
	}
	if system.GetSecondsUntilNextWave() != 120 {
		t.Errorf("Expected 120s countdown, got %d", system.GetSecondsUntilNextWave())
	}
	if world.registry.Count() != 0 {
		t.Errorf("Expected no zombies before the first wave, got %d", world.registry.Count())
	}
}

// TestWaveTimingSystem_CountdownTriggersWave 120 秒后自动进入第 2 波
func TestWaveTimingSystem_CountdownTriggersWave(t *testing.T) {
	world := newTestWorld()
	system := newTestWaveTiming(world)

	advanceSeconds(world, 119)
	if system.GetCurrentWave() != 1 {
		t.Fatalf("Expected wave 1 at t=119s, got %d", system.GetCurrentWave())
	}
	if system.GetSecondsUntilNextWave() != 1 {
		t.Fatalf("Expected 1s remaining at t=119s, got %d", system.GetSecondsUntilNextWave())
	}

	advanceSeconds(world, 1)
	if system.GetCurrentWave() != 2 {
		t.Fatalf("Expected wave 2 at t=120s, got %d", system.GetCurrentWave())
	}
	if world.registry.Count() != 5 {
		t.Errorf("Expected 5 zombies, got %d", world.registry.Count())
	}
	if system.GetSecondsUntilNextWave() != 120 {
		t.Errorf("Expected countdown reset to 120, got %d", system.GetSecondsUntilNextWave())
	}
}

// TestWaveTimingSystem_PulseWindow 提示窗口在 pulse 时长后关闭
func TestWaveTimingSystem_PulseWindow(t *testing.T) {
	world := newTestWorld()
	system := newTestWaveTiming(world)

	system.AdvanceWaveManually()
	if !system.IsWaveActive() || system.Status() != WaveStatusStarting {
		t.Fatal("Expected wave to be active right after trigger")
	}

	world.clock.Advance(2999 * time.Millisecond)
	world.scheduler.RunDue()
	if !system.IsWaveActive() {
		t.Error("Pulse window should still be open at 2999ms")
	}

	world.clock.Advance(time.Millisecond)
	world.scheduler.RunDue()
	if system.IsWaveActive() {
		t.Error("Pulse window should close at 3000ms")
	}

	if countEvents(world.events.Drain(), game.EventWavePulseEnded) != 1 {
		t.Error("Expected one pulse ended event")
	}
}

// TestWaveTimingSystem_ManualTrigger 手动触发与计时触发是同一个转换
func TestWaveTimingSystem_ManualTrigger(t *testing.T) {
	world := newTestWorld()
	system := newTestWaveTiming(world)

	advanceSeconds(world, 100)
	system.AdvanceWaveManually()

	if system.GetCurrentWave() != 2 {
		t.Fatalf("Expected wave 2, got %d", system.GetCurrentWave())
	}
	if system.GetSecondsUntilNextWave() != 120 {
		t.Errorf("Expected countdown reset to 120, got %d", system.GetSecondsUntilNextWave())
	}

	// 原本的第 120 秒不会再次触发
	advanceSeconds(world, 20)
	if system.GetCurrentWave() != 2 {
		t.Errorf("Timer should not double fire, got wave %d", system.GetCurrentWave())
	}

	advanceSeconds(world, 100)
	if system.GetCurrentWave() != 3 {
		t.Errorf("Expected wave 3 after a full interval, got %d", system.GetCurrentWave())
	}

	events := world.events.Drain()
	if n := countEvents(events, game.EventWaveStarted); n != 2 {
		t.Errorf("Expected 2 wave started events, got %d", n)
	}
	if world.registry.Count() != 5+6 {
		t.Errorf("Expected %d zombies, got %d", 5+6, world.registry.Count())
	}
}

// TestWaveTimingSystem_ManualTriggerGetsFullInterval 在两次倒计时之间手动触发，
// 下一次自动波次仍然要等满完整间隔
func TestWaveTimingSystem_ManualTriggerGetsFullInterval(t *testing.T) {
	world := newTestWorld()
	system := newTestWaveTiming(world)

	world.clock.Advance(900 * time.Millisecond)
	world.scheduler.RunDue()
	system.AdvanceWaveManually()
	triggeredAt := world.clock.Now()

	for system.GetCurrentWave() < 3 {
		world.clock.Advance(100 * time.Millisecond)
		world.scheduler.RunDue()
		if world.clock.Now().Sub(triggeredAt) > 200*time.Second {
			t.Fatal("Wave 3 never fired")
		}
	}

	if elapsed := world.clock.Now().Sub(triggeredAt); elapsed < 120*time.Second {
		t.Errorf("Expected wave 3 at least 120s after the manual trigger, got %v", elapsed)
	}
	if world.scheduler.Pending() != 2 {
		// 倒计时 + 第 3 波的提示窗口
		t.Errorf("Expected exactly one countdown timer plus one pulse timer, got %d pending", world.scheduler.Pending())
	}
}

// TestWaveTimingSystem_WaveMonotonic 每次递增正好对应一次生成
func TestWaveTimingSystem_WaveMonotonic(t *testing.T) {
	world := newTestWorld()
	system := newTestWaveTiming(world)

	last := system.GetCurrentWave()
	for i := 0; i < 5; i++ {
		before := world.registry.Count()
		system.AdvanceWaveManually()
		wave := system.GetCurrentWave()
		if wave != last+1 {
			t.Fatalf("Expected wave %d, got %d", last+1, wave)
		}
		if got := world.registry.Count() - before; got != world.tuning.ZombieCount(wave) {
			t.Errorf("wave %d: expected %d spawned, got %d", wave, world.tuning.ZombieCount(wave), got)
		}
		last = wave
	}
}

// TestWaveTimingSystem_StopsOnGameOver 游戏结束后倒计时停止
func TestWaveTimingSystem_StopsOnGameOver(t *testing.T) {
	world := newTestWorld()
	system := newTestWaveTiming(world)

	advanceSeconds(world, 10)
	world.player.ApplyDamage(1000)
	advanceSeconds(world, 200)

	if system.GetCurrentWave() != 1 {
		t.Errorf("Expected wave 1 after game over, got %d", system.GetCurrentWave())
	}
	if system.GetSecondsUntilNextWave() != 110 {
		t.Errorf("Expected countdown frozen at 110, got %d", system.GetSecondsUntilNextWave())
	}
}

// TestWaveTimingSystem_PauseResume 测试暂停/恢复
func TestWaveTimingSystem_PauseResume(t *testing.T) {
	world := newTestWorld()
	system := newTestWaveTiming(world)

	system.Pause()
	advanceSeconds(world, 30)
	if system.GetSecondsUntilNextWave() != 120 {
		t.Errorf("Expected countdown unchanged while paused, got %d", system.GetSecondsUntilNextWave())
	}

	system.Resume()
	advanceSeconds(world, 30)
	if system.GetSecondsUntilNextWave() != 90 {
		t.Errorf("Expected 90s remaining, got %d", system.GetSecondsUntilNextWave())
	}
}

// TestWaveTimingSystem_Status 测试显示状态
func TestWaveTimingSystem_Status(t *testing.T) {
	world := newTestWorld()
	system := newTestWaveTiming(world)

	if system.Status() != WaveStatusWaiting {
		t.Errorf("Expected waiting, got %v", system.Status())
	}

	advanceSeconds(world, 110)
	if system.Status() != WaveStatusPreparing {
		t.Errorf("Expected preparing at 10s remaining, got %v", system.Status())
	}

	if WaveStatusStarting.String() != "WAVE STARTING!" || WaveStatusPreparing.String() != "PREPARE!" || WaveStatusWaiting.String() != "NEXT WAVE IN" {
		t.Error("Unexpected status text")
	}
}

// TestWaveTimingSystem_Reset 重置后旧的定时器不再生效
func TestWaveTimingSystem_Reset(t *testing.T) {
	world := newTestWorld()
	system := newTestWaveTiming(world)

	system.AdvanceWaveManually()
	advanceSeconds(world, 1)

	world.scheduler.Reset()
	system.Reset()

	if system.GetCurrentWave() != 1 || system.GetSecondsUntilNextWave() != 120 || system.IsWaveActive() {
		t.Fatalf("Unexpected state after reset: wave=%d seconds=%d active=%v",
			system.GetCurrentWave(), system.GetSecondsUntilNextWave(), system.IsWaveActive())
	}

	world.events.Drain()
	advanceSeconds(world, 5)
	if countEvents(world.events.Drain(), game.EventWavePulseEnded) != 0 {
		t.Error("Stale pulse timer fired after reset")
	}
	if system.GetSecondsUntilNextWave() != 115 {
		t.Errorf("Expected exactly one countdown timer after reset, got %ds remaining", system.GetSecondsUntilNextWave())
	}
}
