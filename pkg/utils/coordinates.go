package utils

// ArenaView 竞技场俯视投影参数
//
// 世界坐标的水平面 (X, Z) 映射到屏幕：屏幕 X 对应世界 X，屏幕 Y 对应世界 Z。
// 世界原点位于 (CenterX, CenterY)，每个世界单位为 Scale 像素。
type ArenaView struct {
	CenterX float64
	CenterY float64
	Scale   float64
}

// WorldToScreen 世界坐标 (x, z) 转屏幕坐标
//
// # 计算公式
//
//	screenX = CenterX + x * Scale
//	screenY = CenterY + z * Scale
func (v ArenaView) WorldToScreen(x, z float64) (screenX, screenY float64) {
	return v.CenterX + x*v.Scale, v.CenterY + z*v.Scale
}

// ScreenToWorld 屏幕坐标转世界坐标 (x, z)
func (v ArenaView) ScreenToWorld(screenX, screenY float64) (x, z float64) {
	if v.Scale == 0 {
		return 0, 0
	}
	return (screenX - v.CenterX) / v.Scale, (screenY - v.CenterY) / v.Scale
}

// Length 世界长度转像素
func (v ArenaView) Length(worldLength float64) float64 {
	return worldLength * v.Scale
}

// FitArena 计算能完整显示边长为 2*halfSize 的竞技场的投影
// margin 为四周留白（像素）
func FitArena(screenW, screenH int, halfSize, margin float64) ArenaView {
	w := float64(screenW) - 2*margin
	h := float64(screenH) - 2*margin
	size := w
	if h < size {
		size = h
	}
	scale := 1.0
	if halfSize > 0 && size > 0 {
		scale = size / (2 * halfSize)
	}
	return ArenaView{
		CenterX: float64(screenW) / 2,
		CenterY: float64(screenH) / 2,
		Scale:   scale,
	}
}
