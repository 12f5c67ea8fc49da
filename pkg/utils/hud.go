// Package utils 提供通用工具函数
package utils

import "fmt"

// FormatCountdown 把秒数格式化为 m:ss
// 负数按 0 处理
func FormatCountdown(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// HealthTier 血条颜色档位
type HealthTier int

const (
	// HealthGood 生命值 > 60%
	HealthGood HealthTier = iota
	// HealthWarning 生命值 > 30%
	HealthWarning
	// HealthCritical 其余情况
	HealthCritical
)

// String 档位名称
func (t HealthTier) String() string {
	switch t {
	case HealthGood:
		return "good"
	case HealthWarning:
		return "warning"
	default:
		return "critical"
	}
}

// HealthTierFor 根据当前/最大生命值计算档位
// maxHealth <= 0 视为危险
func HealthTierFor(health, maxHealth int) HealthTier {
	if maxHealth <= 0 {
		return HealthCritical
	}
	percent := float64(health) * 100 / float64(maxHealth)
	switch {
	case percent > 60:
		return HealthGood
	case percent > 30:
		return HealthWarning
	default:
		return HealthCritical
	}
}

// HealthFraction 生命值比例，限制在 [0, 1]
func HealthFraction(health, maxHealth int) float64 {
	if maxHealth <= 0 {
		return 0
	}
	return Clamp01(float64(health) / float64(maxHealth))
}
