package components

// VelocityComponent 追击系统输出的水平速度指令
//
// 只包含水平分量 (VX, VZ)，竖直速度归物理协作方所有，这里不做修改。
// Active 为 false 时物理层不应施加该指令（死亡、位置未知或游戏结束）
type VelocityComponent struct {
	VX     float64
	VZ     float64
	Active bool
}
