// Package types 定义共享的基础类型
package types

// ZombieType 定义僵尸的类型
// 目前只有普通僵尸，类型字段为后续扩展预留
type ZombieType string

const (
	// ZombieBasic 普通僵尸
	ZombieBasic ZombieType = "basic"
)

// ItemID 可获取物品的标识符
// 玩家持有的物品集合决定了哪些动作可用（例如持剑才能攻击）
type ItemID string

const (
	// ItemSword 武器商店出售的剑
	ItemSword ItemID = "Sword"
)
