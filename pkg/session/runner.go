package session

import (
	"context"
	"time"
)

// FrameFunc 每帧 Tick 之后在 Runner 的 goroutine 中调用
// dt 为本帧经过的秒数
type FrameFunc func(s *Session, dt float64)

// Runner 在单个 goroutine 中驱动 Session
//
// 帧计时器、外部指令（Do）和 FrameFunc 都在 Run 的循环里串行执行，
// 因此模拟帧、定时器回调和指令之间永远不会并发，也不会重入。
type Runner struct {
	session *Session
	inbox   chan func(*Session)
	tickHz  int
	onFrame FrameFunc
	done    chan struct{}
}

// NewRunner 创建 Runner
// tickHz <= 0 时使用 60
func NewRunner(s *Session, tickHz int, onFrame FrameFunc) *Runner {
	if tickHz <= 0 {
		tickHz = 60
	}
	return &Runner{
		session: s,
		inbox:   make(chan func(*Session), 256),
		tickHz:  tickHz,
		onFrame: onFrame,
		done:    make(chan struct{}),
	}
}

// Do 投递一个在模拟 goroutine 中执行的操作
// Run 已经退出时直接丢弃
func (r *Runner) Do(fn func(*Session)) {
	select {
	case r.inbox <- fn:
	case <-r.done:
	}
}

// Query 在模拟 goroutine 中执行 fn 并等待其完成
func (r *Runner) Query(ctx context.Context, fn func(*Session)) error {
	finished := make(chan struct{})
	r.Do(func(s *Session) {
		fn(s)
		close(finished)
	})

	select {
	case <-finished:
		return nil
	case <-r.done:
		return context.Canceled
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run 运行模拟循环直到 ctx 结束
func (r *Runner) Run(ctx context.Context) error {
	defer close(r.done)

	ticker := time.NewTicker(time.Second / time.Duration(r.tickHz))
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-r.inbox:
			fn(r.session)
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			r.session.Tick(dt)
			if r.onFrame != nil {
				r.onFrame(r.session, dt)
			}
		}
	}
}
