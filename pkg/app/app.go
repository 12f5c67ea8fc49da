// Package app 提供桌面客户端的核心包装器
//
// App 把模拟层（session）、物理层（physics）和渲染组合成 ebiten.Game。
// 桌面端通过 main.go 调用 NewApp()。
package app

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"log"
	"math/rand"
	"time"

	"github.com/decker502/survival/pkg/config"
	"github.com/decker502/survival/pkg/embedded"
	"github.com/decker502/survival/pkg/game"
	"github.com/decker502/survival/pkg/physics"
	"github.com/decker502/survival/pkg/session"
	"github.com/decker502/survival/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	// WindowWidth 逻辑屏幕宽度
	WindowWidth = 800
	// WindowHeight 逻辑屏幕高度
	WindowHeight = 600

	// DefaultTuningPath 内置调参文件
	DefaultTuningPath = "data/tuning.yaml"

	frameDelta = 1.0 / 60.0
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Tuning 初始调参（为 nil 时使用内置默认值）
	Tuning *config.TuningConfig
	// TuningPath 调参文件路径，非空时监听文件变化并热更新
	TuningPath string
	// Seed 随机种子，0 表示使用当前时间
	Seed int64
}

// LoadTuning 加载调参
// path 为空时读取内置的 data/tuning.yaml
func LoadTuning(path string) (*config.TuningConfig, error) {
	if path != "" {
		return config.LoadTuning(path)
	}

	data, err := embedded.ReadFile(DefaultTuningPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded tuning: %w", err)
	}
	return config.ParseTuning(data)
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	session *session.Session
	world   *physics.World
	watcher *config.TuningWatcher
	view    utils.ArenaView
	hud     *hudState
	verbose bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	tuning := cfg.Tuning
	if tuning == nil {
		tuning = config.DefaultTuning()
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s, err := session.New(session.Options{
		Tuning:  tuning,
		Rand:    rand.New(rand.NewSource(seed)),
		Verbose: cfg.Verbose,
	})
	if err != nil {
		return nil, fmt.Errorf("会话创建失败: %w", err)
	}

	world := physics.NewWorld(tuning)
	s.SetPositionSource(world)

	a := &App{
		session: s,
		world:   world,
		view:    utils.FitArena(WindowWidth, WindowHeight, physics.ArenaHalfSize, 20),
		hud:     newHUDState(tuning.Player.MaxHealth),
		verbose: cfg.Verbose,
	}

	if cfg.TuningPath != "" {
		watcher, err := config.NewTuningWatcher(cfg.TuningPath)
		if err != nil {
			return nil, fmt.Errorf("调参文件监听失败: %w", err)
		}
		a.watcher = watcher
		log.Printf("[App] Watching tuning file: %s", cfg.TuningPath)
	}

	return a, nil
}

// Close 释放文件监听
func (a *App) Close() error {
	if a.watcher != nil {
		return a.watcher.Close()
	}
	return nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(WindowWidth, WindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	controls := utils.ReadControls()
	if controls.Quit {
		return ebiten.Termination
	}

	a.pollTuning()
	a.handleControls(controls)
	a.step(frameDelta)
	return nil
}

// handleControls 把键盘状态转换为会话指令
func (a *App) handleControls(c utils.Controls) {
	a.session.SetMoveKeys(c.Forward, c.Back, c.Left, c.Right)
	if c.Jump {
		a.session.RequestJump()
	}
	if c.Interact {
		a.session.Interact()
	}
	if c.Attack {
		a.session.Attack()
	}
	if c.NextWave {
		a.session.StartNewWave()
	}
	if c.Reset {
		a.session.ResetGame()
		a.world.ResetPlayer()
	}
}

// step 推进一帧：模拟 → 物理 → 事件
func (a *App) step(dt float64) {
	a.session.Tick(dt)

	a.world.Sync(a.session.Zombies())
	a.world.ApplyCommands(a.session.VelocityCommands())
	a.world.ApplyPlayerIntent(a.session.PlayerIntent())
	a.world.Step(dt)

	for _, evt := range a.session.DrainEvents() {
		a.hud.handleEvent(evt, a.session)
		if a.verbose && evt.Type != game.EventZombieSpawned {
			log.Printf("[App] Event %s wave=%d actor=%d amount=%d", evt.Type, evt.Wave, evt.Actor, evt.Amount)
		}
	}
	a.hud.update(a.session, dt)
}

// pollTuning 非阻塞地读取调参热更新
func (a *App) pollTuning() {
	if a.watcher == nil {
		return
	}

	select {
	case tuning, ok := <-a.watcher.Updates:
		if !ok {
			a.watcher = nil
			return
		}
		if err := a.applyTuning(tuning); err != nil {
			log.Printf("[App] %v", err)
		}
	case err, ok := <-a.watcher.Errors:
		if ok {
			log.Printf("[App] Tuning reload failed: %v", err)
		}
	default:
	}
}

func (a *App) applyTuning(tuning *config.TuningConfig) error {
	if tuning == nil {
		return errors.New("nil tuning update")
	}
	if err := a.session.ApplyTuning(tuning); err != nil {
		return err
	}
	a.world.SetTuning(tuning)
	return nil
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	drawArena(screen, a.view, a.session)
	drawHUD(screen, a.session, a.hud)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return WindowWidth, WindowHeight
}

// Session 返回当前会话（测试与调试用）
func (a *App) Session() *session.Session {
	return a.session
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
