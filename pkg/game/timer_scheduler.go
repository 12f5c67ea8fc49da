package game

import (
	"time"
)

// TimerID 定时器句柄
type TimerID uint64

type scheduledTimer struct {
	id         TimerID
	due        time.Time
	interval   time.Duration // 0 表示一次性
	generation uint64
	fn         func()
}

// TimerScheduler 协作式定时器
//
// 回调不会在独立的 goroutine 中执行，而是在模拟帧内由 RunDue 调用，
// 因此与帧逻辑交替执行、永不并发。每个定时器登记时记录当前代数，
// Reset 之后代数递增，旧代数的回调即使到期也会被丢弃。
type TimerScheduler struct {
	clock      TimeProvider
	generation uint64
	nextID     TimerID
	timers     []*scheduledTimer
}

// NewTimerScheduler 创建定时器调度器
func NewTimerScheduler(clock TimeProvider) *TimerScheduler {
	return &TimerScheduler{
		clock:  clock,
		nextID: 1,
	}
}

// After 登记一次性回调，d 之后执行
func (s *TimerScheduler) After(d time.Duration, fn func()) TimerID {
	return s.add(d, 0, fn)
}

// Every 登记周期回调，每隔 interval 执行一次
func (s *TimerScheduler) Every(interval time.Duration, fn func()) TimerID {
	if interval <= 0 {
		interval = time.Millisecond
	}
	return s.add(interval, interval, fn)
}

func (s *TimerScheduler) add(d, interval time.Duration, fn func()) TimerID {
	id := s.nextID
	s.nextID++
	s.timers = append(s.timers, &scheduledTimer{
		id:         id,
		due:        s.clock.Now().Add(d),
		interval:   interval,
		generation: s.generation,
		fn:         fn,
	})
	return id
}

// Cancel 取消定时器
func (s *TimerScheduler) Cancel(id TimerID) {
	for i, t := range s.timers {
		if t.id == id {
			s.timers = append(s.timers[:i], s.timers[i+1:]...)
			return
		}
	}
}

// Reset 丢弃所有定时器并递增代数
func (s *TimerScheduler) Reset() {
	s.generation++
	s.timers = nil
}

// Generation 返回当前代数
func (s *TimerScheduler) Generation() uint64 {
	return s.generation
}

// Pending 返回未执行的定时器数量
func (s *TimerScheduler) Pending() int {
	return len(s.timers)
}

// RunDue 执行所有已到期的回调，返回执行的回调数
//
// 周期定时器落后多个周期时会补齐执行（例如一帧卡顿了 3 秒，1Hz 倒计时会执行 3 次），
// 保证倒计时与真实时间一致。回调内部可以登记新定时器或调用 Reset。
func (s *TimerScheduler) RunDue() int {
	now := s.clock.Now()
	generation := s.generation
	fired := 0

	for {
		t := s.nextDue(now)
		if t == nil {
			return fired
		}

		if t.interval > 0 {
			t.due = t.due.Add(t.interval)
		} else {
			s.Cancel(t.id)
		}

		if t.generation != s.generation {
			continue
		}
		t.fn()
		fired++

		// 回调中发生了重置，剩下的旧定时器已经被清空
		if s.generation != generation {
			return fired
		}
	}
}

// nextDue 返回最早到期的定时器，同时到期时按登记顺序
func (s *TimerScheduler) nextDue(now time.Time) *scheduledTimer {
	var earliest *scheduledTimer
	for _, t := range s.timers {
		if t.due.After(now) {
			continue
		}
		if earliest == nil || t.due.Before(earliest.due) {
			earliest = t
		}
	}
	return earliest
}
