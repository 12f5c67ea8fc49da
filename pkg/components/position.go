package components

import "github.com/decker502/survival/pkg/types"

// PositionComponent 实体的世界坐标
//
// 位置由物理协作方在每帧开始时写回；
// Known 为 false 表示本帧没有可用的读数（例如物理刚体尚未就绪），
// 依赖位置的系统应跳过该实体而不是中断整帧处理
type PositionComponent struct {
	types.Vec3
	Known bool
}
