// Package timer 提供基于单调时钟的延迟回调调度器
//
// 调度器不依赖系统时间：时钟只由游戏循环通过 Advance() 推进，
// 因此所有回调都在 Update() 所在的 goroutine 上串行执行，无需加锁。
package timer

import (
	"sort"
	"time"
)

// Handle 指向一个已调度的回调
//
// 零值 Handle 表示"没有挂起的计时器"，对其调用 Stop() 是安全的空操作。
type Handle struct {
	s  *Scheduler
	id uint64
}

// Stop 取消回调
// 对已触发、已取消或零值句柄调用时为空操作
func (h Handle) Stop() {
	if h.s == nil {
		return
	}
	h.s.Cancel(h)
}

// Pending 返回回调是否仍在等待触发
func (h Handle) Pending() bool {
	if h.s == nil {
		return false
	}
	_, ok := h.s.entries[h.id]
	return ok
}

type entry struct {
	id  uint64
	due time.Duration
	fn  func()
}

// Scheduler 延迟回调调度器
//
// 职责：
//   - 维护单调时钟（自创建起经过的时间）
//   - 在 Advance() 时按到期时间顺序触发回调，同一时刻按调度顺序触发
//   - 回调中可以继续调度或取消其他回调
type Scheduler struct {
	now     time.Duration
	nextID  uint64
	entries map[uint64]*entry
}

// NewScheduler 创建调度器，时钟从 0 开始
func NewScheduler() *Scheduler {
	return &Scheduler{
		entries: make(map[uint64]*entry),
	}
}

// Now 返回调度器的单调时间
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After 在 d 之后触发 fn
// d <= 0 的回调会在下一次 Advance() 中触发
func (s *Scheduler) After(d time.Duration, fn func()) Handle {
	if d < 0 {
		d = 0
	}
	s.nextID++
	s.entries[s.nextID] = &entry{id: s.nextID, due: s.now + d, fn: fn}
	return Handle{s: s, id: s.nextID}
}

// Cancel 取消回调，重复取消不报错
func (s *Scheduler) Cancel(h Handle) {
	if h.s != s {
		return
	}
	delete(s.entries, h.id)
}

// Pending 返回等待触发的回调数量
func (s *Scheduler) Pending() int {
	return len(s.entries)
}

// Advance 推进时钟并触发所有到期回调
//
// 回调执行时 Now() 等于其到期时间，便于回调内以准确的时间基准继续调度。
// 回调内新调度且在本次推进范围内到期的回调同样会被触发。
func (s *Scheduler) Advance(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	target := s.now + dt

	for {
		next := s.nextDue(target)
		if next == nil {
			break
		}
		delete(s.entries, next.id)
		s.now = next.due
		next.fn()
	}

	s.now = target
}

// nextDue 返回最早到期（不晚于 target）的回调
func (s *Scheduler) nextDue(target time.Duration) *entry {
	var due []*entry
	for _, e := range s.entries {
		if e.due <= target {
			due = append(due, e)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].due != due[j].due {
			return due[i].due < due[j].due
		}
		return due[i].id < due[j].id
	})
	return due[0]
}
