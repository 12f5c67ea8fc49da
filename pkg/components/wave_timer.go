package components

// WaveTimerComponent 波次计时器组件
// 存储波次刷新计时状态，供 WaveTimingSystem 使用
// 注意：遵循 ECS 原则，组件仅存储数据，不包含方法
//
// 时间单位说明：
// 倒计时以整秒为单位，由 1Hz 定时器每秒递减一次
type WaveTimerComponent struct {
	// CurrentWave 当前波次（从 1 开始，单调不减）
	CurrentWave int

	// SecondsUntilNextWave 距离下一波的秒数
	// 每秒递减，当递减前 <= 1 时触发下一波并重置为波次间隔
	SecondsUntilNextWave int

	// IsWaveActive 波次刚开始的提示窗口（默认3秒）
	// 仅供表现层显示，不参与逻辑判断
	IsWaveActive bool

	// IsPaused 是否暂停
	// 暂停时倒计时不递减（游戏结束时暂停）
	IsPaused bool

	// WavesTriggered 本局已触发的波次数（调试用）
	WavesTriggered int
}
