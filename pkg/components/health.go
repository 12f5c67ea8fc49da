package components

// HealthComponent 存储实体的生命值信息
// 用于僵尸等可被攻击的实体
//
// 不变量：CurrentHealth >= 0；IsAlive 只会从 true 变为 false 一次
type HealthComponent struct {
	CurrentHealth int  // 当前生命值
	MaxHealth     int  // 最大生命值
	IsAlive       bool // 是否存活，生命值归零时置为 false
}
