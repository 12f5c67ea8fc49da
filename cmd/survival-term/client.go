package main

import (
	"context"
	"fmt"

	"github.com/decker502/survival/pkg/game"
	"github.com/decker502/survival/pkg/physics"
	"github.com/decker502/survival/pkg/session"
	"github.com/decker502/survival/pkg/utils"
	"github.com/gdamore/tcell/v2"
)

// 终端没有按键抬起事件，移动键按下后保持若干帧，靠键盘自动重复续期
const holdFrames = 6

const hudRows = 3

// keyHold 记录移动键剩余的保持帧数
type keyHold struct {
	forward, back, left, right int
}

// press 按下一个移动键
func (k *keyHold) press(r rune) bool {
	switch r {
	case 'w', 'W':
		k.forward = holdFrames
	case 's', 'S':
		k.back = holdFrames
	case 'a', 'A':
		k.left = holdFrames
	case 'd', 'D':
		k.right = holdFrames
	default:
		return false
	}
	return true
}

// tick 消耗一帧，返回本帧四个方向是否按住
func (k *keyHold) tick() (forward, back, left, right bool) {
	forward, back, left, right = k.forward > 0, k.back > 0, k.left > 0, k.right > 0
	for _, v := range []*int{&k.forward, &k.back, &k.left, &k.right} {
		if *v > 0 {
			*v--
		}
	}
	return
}

func (k *keyHold) clear() {
	*k = keyHold{}
}

// termClient 终端客户端；除 pollInput 外所有方法都在 Runner 的 goroutine 中执行
type termClient struct {
	screen tcell.Screen
	world  *physics.World
	tones  *tonePlayer
	keys   keyHold
}

func newTermClient(screen tcell.Screen, world *physics.World, tones *tonePlayer) *termClient {
	return &termClient{screen: screen, world: world, tones: tones}
}

// pollInput 读取终端事件并投递到 Runner
func (c *termClient) pollInput(runner *session.Runner, quit context.CancelFunc) {
	for {
		ev := c.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return
		case *tcell.EventResize:
			runner.Do(func(*session.Session) { c.screen.Sync() })
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
				quit()
				return
			}
			key, r := ev.Key(), ev.Rune()
			runner.Do(func(s *session.Session) { c.handleKey(s, key, r) })
		}
	}
}

// handleKey 把一次按键转换为会话指令
func (c *termClient) handleKey(s *session.Session, key tcell.Key, r rune) {
	switch key {
	case tcell.KeyUp:
		r = 'w'
	case tcell.KeyDown:
		r = 's'
	case tcell.KeyLeft:
		r = 'a'
	case tcell.KeyRight:
		r = 'd'
	case tcell.KeyRune:
	default:
		return
	}

	if c.keys.press(r) {
		return
	}

	switch r {
	case ' ':
		s.RequestJump()
	case 'e', 'E':
		s.Interact()
	case 'f', 'F':
		s.Attack()
	case 'n', 'N':
		s.StartNewWave()
	case 'r', 'R':
		s.ResetGame()
		c.world.ResetPlayer()
		c.keys.clear()
	}
}

// frame 每帧：输入 → 物理 → 事件 → 绘制
func (c *termClient) frame(s *session.Session, dt float64) {
	s.SetMoveKeys(c.keys.tick())

	c.world.Sync(s.Zombies())
	c.world.ApplyCommands(s.VelocityCommands())
	c.world.ApplyPlayerIntent(s.PlayerIntent())
	c.world.Step(dt)

	for _, evt := range s.DrainEvents() {
		switch evt.Type {
		case game.EventPlayerDamaged:
			c.tones.hit()
		case game.EventWaveStarted:
			c.tones.wave()
		}
	}

	c.draw(s)
}

// cellFor 把世界坐标 (x, z) 映射到竞技场区域内的字符格
func cellFor(x, z float64, cols, rows int) (col, row int) {
	span := 2 * physics.ArenaHalfSize
	fx := utils.Clamp01((x + physics.ArenaHalfSize) / span)
	fz := utils.Clamp01((z + physics.ArenaHalfSize) / span)
	return int(fx * float64(cols-1)), int(fz * float64(rows-1))
}

func (c *termClient) put(col, row int, r rune, style tcell.Style) {
	c.screen.SetContent(col, row, r, nil, style)
}

func (c *termClient) print(col, row int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		c.put(col+i, row, r, style)
	}
}

func healthStyle(tier utils.HealthTier) tcell.Style {
	switch tier {
	case utils.HealthGood:
		return tcell.StyleDefault.Foreground(tcell.ColorGreen)
	case utils.HealthWarning:
		return tcell.StyleDefault.Foreground(tcell.ColorYellow)
	default:
		return tcell.StyleDefault.Foreground(tcell.ColorRed)
	}
}

func (c *termClient) draw(s *session.Session) {
	c.screen.Clear()
	width, height := c.screen.Size()
	cols, rows := width, height-hudRows
	if cols < 10 || rows < 5 {
		c.print(0, 0, "terminal too small", tcell.StyleDefault)
		c.screen.Show()
		return
	}

	tuning := s.Tuning()
	border := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for x := 0; x < cols; x++ {
		c.put(x, 0, '-', border)
		c.put(x, rows-1, '-', border)
	}
	for y := 0; y < rows; y++ {
		c.put(0, y, '|', border)
		c.put(cols-1, y, '|', border)
	}

	shop := tuning.Shop.Position
	sc, sr := cellFor(shop.X, shop.Z, cols, rows)
	c.put(sc, sr, '$', tcell.StyleDefault.Foreground(tcell.ColorYellow))

	for _, z := range s.Zombies() {
		zc, zr := cellFor(z.Position.X, z.Position.Z, cols, rows)
		if z.IsAlive {
			c.put(zc, zr, 'Z', healthStyle(utils.HealthTierFor(z.Health, z.MaxHealth)))
		} else {
			c.put(zc, zr, 'x', tcell.StyleDefault.Foreground(tcell.ColorGray))
		}
	}

	if pos, ok := s.PlayerPosition(); ok {
		pc, pr := cellFor(pos.X, pos.Z, cols, rows)
		glyph := '@'
		if s.IsSwinging() {
			glyph = '*'
		}
		c.put(pc, pr, glyph, tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true))
	}

	// HUD
	hud := tcell.StyleDefault
	c.print(0, rows, fmt.Sprintf("WAVE %d  %s %s  zombies: %d",
		s.Wave(), s.WaveStatus(), utils.FormatCountdown(s.SecondsUntilNextWave()), s.AliveZombieCount()), hud)
	c.print(0, rows+1, fmt.Sprintf("HP %d/%d", s.PlayerHealth(), s.PlayerMaxHealth()),
		healthStyle(utils.HealthTierFor(s.PlayerHealth(), s.PlayerMaxHealth())))

	shopState := s.ShopState()
	switch {
	case s.IsGameOver():
		c.print(14, rows+1, "GAME OVER - press R to restart", tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true))
	case shopState.ShowObtainedMessage:
		c.print(14, rows+1, fmt.Sprintf("Obtained %s!", tuning.Shop.Item), tcell.StyleDefault.Foreground(tcell.ColorYellow))
	case shopState.PlayerNear && !shopState.PlayerHasItem:
		c.print(14, rows+1, fmt.Sprintf("Press E to get %s", tuning.Shop.Item), tcell.StyleDefault.Foreground(tcell.ColorYellow))
	}
	c.print(0, rows+2, "WASD move  SPACE jump  E shop  F attack  N wave  R reset  ESC quit", border)

	c.screen.Show()
}
