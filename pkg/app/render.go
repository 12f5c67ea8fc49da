package app

import (
	"fmt"
	"image/color"
	"math"

	"github.com/decker502/survival/pkg/game"
	"github.com/decker502/survival/pkg/physics"
	"github.com/decker502/survival/pkg/session"
	"github.com/decker502/survival/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"
)

const (
	damageFlashDuration = 0.3 // 秒
	healthApproachRate  = 8.0
	shopHalfSize        = 1.0 // 商店方块半边长（世界单位）
)

// hudState 只属于表现层的显示状态（平滑血条、提示淡出、受伤闪烁）
type hudState struct {
	displayHealth float64
	pulseElapsed  float64
	damageFlash   float64
}

func newHUDState(maxHealth int) *hudState {
	return &hudState{displayHealth: float64(maxHealth), pulseElapsed: 1e9}
}

func (h *hudState) handleEvent(evt game.Event, s *session.Session) {
	switch evt.Type {
	case game.EventWaveStarted:
		h.pulseElapsed = 0
	case game.EventPlayerDamaged:
		h.damageFlash = damageFlashDuration
	case game.EventGameReset:
		h.damageFlash = 0
		h.pulseElapsed = 1e9
		h.resync(s)
	case game.EventTuningApplied:
		h.resync(s)
	}
}

// resync 最大生命值可能已经改变，血条直接跳到当前值，不做平滑
func (h *hudState) resync(s *session.Session) {
	h.displayHealth = math.Min(float64(s.PlayerHealth()), float64(s.PlayerMaxHealth()))
}

func (h *hudState) update(s *session.Session, dt float64) {
	h.displayHealth = utils.Approach(h.displayHealth, float64(s.PlayerHealth()), healthApproachRate, dt)
	h.pulseElapsed += dt
	if h.damageFlash > 0 {
		h.damageFlash -= dt
	}
}

// healthColor 血条颜色
func healthColor(tier utils.HealthTier) color.Color {
	switch tier {
	case utils.HealthGood:
		return colornames.Limegreen
	case utils.HealthWarning:
		return colornames.Orange
	default:
		return colornames.Red
	}
}

// drawArena 俯视绘制竞技场、商店、僵尸和玩家
func drawArena(screen *ebiten.Image, view utils.ArenaView, s *session.Session) {
	screen.Fill(colornames.Darkolivegreen)
	tuning := s.Tuning()

	// 边界
	x0, y0 := view.WorldToScreen(-physics.ArenaHalfSize, -physics.ArenaHalfSize)
	size := float32(view.Length(2 * physics.ArenaHalfSize))
	vector.StrokeRect(screen, float32(x0), float32(y0), size, size, 2, colornames.Saddlebrown, false)

	// 生成环
	cx, cy := view.WorldToScreen(0, 0)
	vector.StrokeCircle(screen, float32(cx), float32(cy), float32(view.Length(tuning.Spawn.Radius)), 1, colornames.Dimgray, true)

	// 武器商店
	shop := tuning.Shop.Position
	sx, sy := view.WorldToScreen(shop.X-shopHalfSize, shop.Z-shopHalfSize)
	shopSize := float32(view.Length(2 * shopHalfSize))
	vector.DrawFilledRect(screen, float32(sx), float32(sy), shopSize, shopSize, colornames.Goldenrod, false)
	if s.ShopState().PlayerNear {
		scx, scy := view.WorldToScreen(shop.X, shop.Z)
		vector.StrokeCircle(screen, float32(scx), float32(scy), float32(view.Length(tuning.Shop.InteractionDistance)), 1, colornames.Gold, true)
	}

	// 僵尸
	for _, z := range s.Zombies() {
		zx, zy := view.WorldToScreen(z.Position.X, z.Position.Z)
		r := float32(view.Length(physics.ZombieRadius))
		clr := color.Color(colornames.Seagreen)
		if !z.IsAlive {
			clr = colornames.Gray
		}
		vector.DrawFilledCircle(screen, float32(zx), float32(zy), r, clr, true)

		if z.IsAlive && z.Health < z.MaxHealth {
			w := r * 2
			frac := float32(utils.HealthFraction(z.Health, z.MaxHealth))
			vector.DrawFilledRect(screen, float32(zx)-r, float32(zy)-r-5, w, 3, colornames.Black, false)
			vector.DrawFilledRect(screen, float32(zx)-r, float32(zy)-r-5, w*frac, 3, healthColor(utils.HealthTierFor(z.Health, z.MaxHealth)), false)
		}
	}

	// 玩家
	if pos, ok := s.PlayerPosition(); ok {
		px, py := view.WorldToScreen(pos.X, pos.Z)
		r := float32(view.Length(physics.PlayerRadius))
		// 跳跃时稍微放大
		r *= 1 + float32(pos.Y-physics.PlayerRadius)*0.15
		vector.DrawFilledCircle(screen, float32(px), float32(py), r, colornames.Royalblue, true)

		if s.IsSwinging() {
			vector.StrokeCircle(screen, float32(px), float32(py), float32(view.Length(tuning.Sword.Range)), 2, colornames.Silver, true)
		}
	}
}

// drawHUD 绘制波次、倒计时、生命值和提示
func drawHUD(screen *ebiten.Image, s *session.Session, h *hudState) {
	tuning := s.Tuning()

	// 受伤闪烁
	if h.damageFlash > 0 {
		alpha := uint8(120 * h.damageFlash / damageFlashDuration)
		vector.DrawFilledRect(screen, 0, 0, WindowWidth, WindowHeight, color.RGBA{R: 180, A: alpha}, false)
	}

	// 左上角：波次与倒计时
	vector.DrawFilledRect(screen, 8, 8, 180, 64, color.RGBA{A: 160}, false)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("WAVE %d", s.Wave()), 16, 12)
	ebitenutil.DebugPrintAt(screen, s.WaveStatus().String(), 16, 30)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s   zombies: %d", utils.FormatCountdown(s.SecondsUntilNextWave()), s.AliveZombieCount()), 16, 48)

	// 左下角：生命值
	maxHealth := s.PlayerMaxHealth()
	barW := float32(200)
	frac := float32(utils.Clamp01(h.displayHealth / float64(maxHealth)))
	vector.DrawFilledRect(screen, 16, WindowHeight-36, barW, 16, colornames.Black, false)
	vector.DrawFilledRect(screen, 16, WindowHeight-36, barW*frac, 16, healthColor(utils.HealthTierFor(s.PlayerHealth(), maxHealth)), false)
	vector.StrokeRect(screen, 16, WindowHeight-36, barW, 16, 1, colornames.White, false)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("HP %d/%d", s.PlayerHealth(), maxHealth), 224, WindowHeight-36)

	// 物品与商店提示
	shop := s.ShopState()
	switch {
	case shop.ShowObtainedMessage:
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Obtained %s!", tuning.Shop.Item), WindowWidth/2-50, WindowHeight-80)
	case shop.PlayerNear && !shop.PlayerHasItem:
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Press E to get %s", tuning.Shop.Item), WindowWidth/2-70, WindowHeight-80)
	case shop.PlayerNear:
		ebitenutil.DebugPrintAt(screen, "Weapon Shop", WindowWidth/2-40, WindowHeight-80)
	}
	if items := s.Items(); len(items) > 0 {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Items: %v  [F] attack", items), WindowWidth-240, WindowHeight-36)
	}

	// 波次开始提示
	if alpha := utils.PulseAlpha(h.pulseElapsed, tuning.Wave.Pulse.Std().Seconds()); alpha > 0 && s.IsWaveActive() {
		vector.DrawFilledRect(screen, WindowWidth/2-110, 80, 220, 36, color.RGBA{R: 140, G: 20, B: 20, A: uint8(200 * alpha)}, false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("WAVE %d STARTING!", s.Wave()), WindowWidth/2-60, 90)
	}

	// 游戏结束
	if s.IsGameOver() {
		vector.DrawFilledRect(screen, 0, WindowHeight/2-40, WindowWidth, 80, color.RGBA{A: 200}, false)
		ebitenutil.DebugPrintAt(screen, "GAME OVER", WindowWidth/2-30, WindowHeight/2-16)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("You survived until wave %d. Press R to restart.", s.Wave()), WindowWidth/2-150, WindowHeight/2+4)
	}

	ebitenutil.DebugPrintAt(screen, "WASD move  SPACE jump  E interact  N next wave  R reset", 200, 12)
}
