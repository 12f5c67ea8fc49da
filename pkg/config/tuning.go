package config

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/decker502/survival/pkg/types"
	"gopkg.in/yaml.v3"
)

// Duration 包装 time.Duration，使 YAML 中可以写 "1s"、"120s"、"1500ms"
type Duration time.Duration

// UnmarshalYAML 解析 Go duration 字符串
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return fmt.Errorf("duration must be a string like \"1s\": %w", err)
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML 输出 Go duration 字符串
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Std 转换为 time.Duration
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// SpawnTuning 生成环与每波数量
type SpawnTuning struct {
	Radius      float64 `yaml:"radius"`      // 生成环内半径
	Variance    float64 `yaml:"variance"`    // 半径随机增量 [0, variance]
	Height      float64 `yaml:"height"`      // 生成高度（地面以上）
	BaseCount   float64 `yaml:"baseCount"`   // 每波基础数量
	ScaleFactor float64 `yaml:"scaleFactor"` // 每波额外数量系数
}

// ZombieTuning 僵尸属性随波次的成长
type ZombieTuning struct {
	MaxHealth     int      `yaml:"maxHealth"`
	BaseSpeed     float64  `yaml:"baseSpeed"`
	SpeedPerWave  float64  `yaml:"speedPerWave"`
	BaseDamage    int      `yaml:"baseDamage"`
	DamagePerWave int      `yaml:"damagePerWave"`
	CorpseLinger  Duration `yaml:"corpseLinger"` // 0 表示不自动移除尸体，由外部调用方移除
}

// SteeringTuning 追击转向参数
type SteeringTuning struct {
	MinSeparation float64 `yaml:"minSeparation"` // 小于等于此水平距离时停止移动
	MaxSpeed      float64 `yaml:"maxSpeed"`      // 每个轴的速度上限
}

// CombatTuning 接触伤害参数
type CombatTuning struct {
	DamageRange    float64  `yaml:"damageRange"`    // 水平距离
	DamageCooldown Duration `yaml:"damageCooldown"` // 同一攻击者的伤害间隔
}

// WaveTuning 波次计时参数
type WaveTuning struct {
	Interval    Duration `yaml:"interval"`    // 波次间隔（整秒）
	Pulse       Duration `yaml:"pulse"`       // 波次开始提示窗口
	Preparation Duration `yaml:"preparation"` // 倒计时小于等于此值时显示 PREPARE!
}

// PlayerTuning 玩家参数
type PlayerTuning struct {
	MaxHealth int     `yaml:"maxHealth"`
	MoveSpeed float64 `yaml:"moveSpeed"` // 每帧移动冲量
	JumpForce float64 `yaml:"jumpForce"`
	Damping   float64 `yaml:"damping"` // 每帧水平速度保留比例
}

// ShopTuning 武器商店参数
type ShopTuning struct {
	Position            types.Vec3   `yaml:"position"`
	InteractionDistance float64      `yaml:"interactionDistance"`
	MessageDuration     Duration     `yaml:"messageDuration"`
	Item                types.ItemID `yaml:"item"`
}

// SwordTuning 持剑攻击参数
type SwordTuning struct {
	Range         float64  `yaml:"range"`
	Damage        int      `yaml:"damage"`
	Cooldown      Duration `yaml:"cooldown"`
	SwingDuration Duration `yaml:"swingDuration"`
}

// TuningConfig 模拟层的全部调参
type TuningConfig struct {
	Spawn    SpawnTuning    `yaml:"spawn"`
	Zombie   ZombieTuning   `yaml:"zombie"`
	Steering SteeringTuning `yaml:"steering"`
	Combat   CombatTuning   `yaml:"combat"`
	Wave     WaveTuning     `yaml:"wave"`
	Player   PlayerTuning   `yaml:"player"`
	Shop     ShopTuning     `yaml:"shop"`
	Sword    SwordTuning    `yaml:"sword"`
}

// DefaultTuning 返回默认调参
func DefaultTuning() *TuningConfig {
	return &TuningConfig{
		Spawn: SpawnTuning{
			Radius:      8,
			Variance:    2,
			Height:      1,
			BaseCount:   2,
			ScaleFactor: 1.5,
		},
		Zombie: ZombieTuning{
			MaxHealth:     100,
			BaseSpeed:     1,
			SpeedPerWave:  0.1,
			BaseDamage:    10,
			DamagePerWave: 2,
			CorpseLinger:  0,
		},
		Steering: SteeringTuning{
			MinSeparation: 0.5,
			MaxSpeed:      3,
		},
		Combat: CombatTuning{
			DamageRange:    1.2,
			DamageCooldown: Duration(1000 * time.Millisecond),
		},
		Wave: WaveTuning{
			Interval:    Duration(120 * time.Second),
			Pulse:       Duration(3000 * time.Millisecond),
			Preparation: Duration(10 * time.Second),
		},
		Player: PlayerTuning{
			MaxHealth: 100,
			MoveSpeed: 5,
			JumpForce: 8,
			Damping:   0.9,
		},
		Shop: ShopTuning{
			Position:            types.Vec3{X: 8, Y: 3, Z: 8},
			InteractionDistance: 2.5,
			MessageDuration:     Duration(2000 * time.Millisecond),
			Item:                types.ItemSword,
		},
		Sword: SwordTuning{
			Range:         2,
			Damage:        50,
			Cooldown:      Duration(500 * time.Millisecond),
			SwingDuration: Duration(200 * time.Millisecond),
		},
	}
}

// LoadTuning 从 YAML 文件加载调参
// 文件中未出现的字段保留默认值
func LoadTuning(filepath string) (*TuningConfig, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read tuning file %s: %w", filepath, err)
	}

	cfg, err := ParseTuning(data)
	if err != nil {
		return nil, fmt.Errorf("tuning file %s: %w", filepath, err)
	}
	return cfg, nil
}

// ParseTuning 从 YAML 数据解析调参（以默认值为底）
func ParseTuning(data []byte) (*TuningConfig, error) {
	cfg := DefaultTuning()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse tuning YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tuning: %w", err)
	}

	return cfg, nil
}

// Validate 验证调参的合法性
// 非法配置属于编程/配置错误，应在构造时拒绝，而不是在运行时出错
func (c *TuningConfig) Validate() error {
	if c == nil {
		return fmt.Errorf("tuning config is nil")
	}

	if c.Spawn.Radius < 0 {
		return fmt.Errorf("spawn.radius cannot be negative, got %g", c.Spawn.Radius)
	}
	if c.Spawn.Variance < 0 {
		return fmt.Errorf("spawn.variance cannot be negative, got %g", c.Spawn.Variance)
	}
	if c.Spawn.BaseCount < 0 {
		return fmt.Errorf("spawn.baseCount cannot be negative, got %g", c.Spawn.BaseCount)
	}
	if c.Spawn.ScaleFactor < 0 {
		return fmt.Errorf("spawn.scaleFactor cannot be negative, got %g", c.Spawn.ScaleFactor)
	}

	if c.Zombie.MaxHealth <= 0 {
		return fmt.Errorf("zombie.maxHealth must be positive, got %d", c.Zombie.MaxHealth)
	}
	if c.Zombie.BaseSpeed < 0 || c.Zombie.SpeedPerWave < 0 {
		return fmt.Errorf("zombie speed cannot be negative (base %g, per wave %g)", c.Zombie.BaseSpeed, c.Zombie.SpeedPerWave)
	}
	if c.Zombie.BaseDamage < 0 || c.Zombie.DamagePerWave < 0 {
		return fmt.Errorf("zombie damage cannot be negative (base %d, per wave %d)", c.Zombie.BaseDamage, c.Zombie.DamagePerWave)
	}
	if c.Zombie.CorpseLinger < 0 {
		return fmt.Errorf("zombie.corpseLinger cannot be negative, got %s", c.Zombie.CorpseLinger.Std())
	}

	if c.Steering.MinSeparation < 0 {
		return fmt.Errorf("steering.minSeparation cannot be negative, got %g", c.Steering.MinSeparation)
	}
	if c.Steering.MaxSpeed <= 0 {
		return fmt.Errorf("steering.maxSpeed must be positive, got %g", c.Steering.MaxSpeed)
	}

	if c.Combat.DamageRange < 0 {
		return fmt.Errorf("combat.damageRange cannot be negative, got %g", c.Combat.DamageRange)
	}
	if c.Combat.DamageCooldown < 0 {
		return fmt.Errorf("combat.damageCooldown cannot be negative, got %s", c.Combat.DamageCooldown.Std())
	}

	if c.Wave.Interval.Std() < time.Second {
		return fmt.Errorf("wave.interval must be at least 1s, got %s", c.Wave.Interval.Std())
	}
	if c.Wave.Interval.Std()%time.Second != 0 {
		return fmt.Errorf("wave.interval must be whole seconds, got %s", c.Wave.Interval.Std())
	}
	if c.Wave.Pulse < 0 || c.Wave.Preparation < 0 {
		return fmt.Errorf("wave.pulse and wave.preparation cannot be negative")
	}

	if c.Player.MaxHealth <= 0 {
		return fmt.Errorf("player.maxHealth must be positive, got %d", c.Player.MaxHealth)
	}
	if c.Player.MoveSpeed < 0 || c.Player.JumpForce < 0 {
		return fmt.Errorf("player.moveSpeed and player.jumpForce cannot be negative")
	}
	if c.Player.Damping < 0 || c.Player.Damping > 1 {
		return fmt.Errorf("player.damping must be within [0, 1], got %g", c.Player.Damping)
	}

	if c.Shop.InteractionDistance < 0 {
		return fmt.Errorf("shop.interactionDistance cannot be negative, got %g", c.Shop.InteractionDistance)
	}
	if c.Shop.Item == "" {
		return fmt.Errorf("shop.item is required")
	}
	if c.Shop.MessageDuration < 0 {
		return fmt.Errorf("shop.messageDuration cannot be negative")
	}

	if c.Sword.Range < 0 || c.Sword.Damage < 0 {
		return fmt.Errorf("sword.range and sword.damage cannot be negative")
	}
	if c.Sword.Cooldown < 0 || c.Sword.SwingDuration < 0 {
		return fmt.Errorf("sword.cooldown and sword.swingDuration cannot be negative")
	}

	return nil
}

// ZombieCount 计算指定波次生成的僵尸数量
// floor(baseCount + wave * scaleFactor)
func (c *TuningConfig) ZombieCount(waveNumber int) int {
	n := int(math.Floor(c.Spawn.BaseCount + float64(waveNumber)*c.Spawn.ScaleFactor))
	if n < 0 {
		return 0
	}
	return n
}

// ZombieSpeed 计算指定波次僵尸的移动速度
func (c *TuningConfig) ZombieSpeed(waveNumber int) float64 {
	return c.Zombie.BaseSpeed + float64(waveNumber)*c.Zombie.SpeedPerWave
}

// ZombieDamage 计算指定波次僵尸的接触伤害
func (c *TuningConfig) ZombieDamage(waveNumber int) int {
	return c.Zombie.BaseDamage + waveNumber*c.Zombie.DamagePerWave
}

// WaveIntervalSeconds 波次间隔（整秒）
func (c *TuningConfig) WaveIntervalSeconds() int {
	return int(c.Wave.Interval.Std() / time.Second)
}

// Clone 返回调参的副本
func (c *TuningConfig) Clone() *TuningConfig {
	copied := *c
	return &copied
}
