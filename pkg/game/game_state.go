package game

// GameState 存储一局游戏的会话级状态
//
// 由 session 创建并注入到需要它的系统中，所有权归模拟线程
type GameState struct {
	// Generation 重置代数
	// 每次 ResetGame 递增；重置前登记的定时回调携带旧代数，执行前会被丢弃
	Generation uint64

	// LevelTime 本局已运行的模拟时间（秒），重置时归零
	LevelTime float64

	// TickCount 本局已执行的帧数
	TickCount uint64
}

// NewGameState 创建新的会话状态
func NewGameState() *GameState {
	return &GameState{}
}

// Advance 推进一帧
func (gs *GameState) Advance(deltaTime float64) {
	gs.LevelTime += deltaTime
	gs.TickCount++
}

// Reset 开始新的一局，返回新的代数
func (gs *GameState) Reset() uint64 {
	gs.Generation++
	gs.LevelTime = 0
	gs.TickCount = 0
	return gs.Generation
}
