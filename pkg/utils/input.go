package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Controls 存储当前帧的键盘状态
//
// 移动键是持续状态，其余是本帧刚按下的边沿触发
type Controls struct {
	Forward, Back, Left, Right bool // WASD / 方向键

	Jump     bool // 空格
	Interact bool // E
	Attack   bool // F
	NextWave bool // N
	Reset    bool // R
	Quit     bool // Esc
}

// ReadControls 读取当前帧的键盘状态
func ReadControls() Controls {
	return Controls{
		Forward: ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		Back:    ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		Left:    ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right:   ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),

		Jump:     inpututil.IsKeyJustPressed(ebiten.KeySpace),
		Interact: inpututil.IsKeyJustPressed(ebiten.KeyE),
		Attack:   inpututil.IsKeyJustPressed(ebiten.KeyF),
		NextWave: inpututil.IsKeyJustPressed(ebiten.KeyN),
		Reset:    inpututil.IsKeyJustPressed(ebiten.KeyR),
		Quit:     inpututil.IsKeyJustPressed(ebiten.KeyEscape),
	}
}
