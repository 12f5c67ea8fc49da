package types

import "math"

// Vec3 世界坐标 (x, y, z)
// Y 轴为竖直方向，追击和伤害判定只使用水平面 (X, Z)
type Vec3 struct {
	X, Y, Z float64
}

// Sub 返回 v - o
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// HorizontalLength 水平面上的长度（忽略 Y）
func (v Vec3) HorizontalLength() float64 {
	return math.Hypot(v.X, v.Z)
}

// HorizontalDistanceTo 到另一点的水平距离
func (v Vec3) HorizontalDistanceTo(o Vec3) float64 {
	return o.Sub(v).HorizontalLength()
}
