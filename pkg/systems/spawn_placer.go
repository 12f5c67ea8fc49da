package systems

import (
	"math"
	"math/rand"
	"time"

	"github.com/decker502/survival/pkg/types"
)

// SpawnPlacer 计算新僵尸在竞技场外环上的生成位置
// 纯函数式：除随机数源外没有副作用
type SpawnPlacer struct {
	rng *rand.Rand
}

// NewSpawnPlacer 创建生成位置计算器
// rng 为 nil 时使用以当前时间为种子的随机数源
func NewSpawnPlacer(rng *rand.Rand) *SpawnPlacer {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &SpawnPlacer{rng: rng}
}

// PlaceAroundRing 在环上随机取点
//
// 角度均匀分布于 [0, 2π)，水平距离均匀分布于 [radius, radius+variance]，
// 返回 (cos(angle)*distance, height, sin(angle)*distance)
func (p *SpawnPlacer) PlaceAroundRing(radius, variance, height float64) types.Vec3 {
	angle := p.rng.Float64() * math.Pi * 2
	distance := radius + p.rng.Float64()*variance

	return types.Vec3{
		X: math.Cos(angle) * distance,
		Y: height,
		Z: math.Sin(angle) * distance,
	}
}
