package components

import "github.com/decker502/survival/pkg/types"

// ZombieComponent 僵尸的静态属性
// 所有字段在生成时根据波次计算，之后不再改变
type ZombieComponent struct {
	Type       types.ZombieType
	WaveNumber int     // 生成该僵尸的波次
	Speed      float64 // 1 + wave*0.1（默认调参）
	Damage     int     // 10 + wave*2（默认调参）
}
