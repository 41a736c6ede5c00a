package answer

import (
	"log"
	"time"

	"github.com/decker502/coffee-oracle/pkg/timer"
)

// Rand 随机数来源
type Rand interface {
	Intn(n int) int
}

// Counter 记录成功揭示次数
type Counter interface {
	// Increment 返回递增后的计数，以及本次是否应触发庆祝
	Increment() (count int, celebrate bool)
	Reset()
}

// Celebrator 在达到点击阈值时播放庆祝动画
type Celebrator interface {
	Fire(originX, originY float64)
}

// Effects 揭示答案时的视觉效果
type Effects interface {
	// Pulse 咖啡杯缩放脉冲
	Pulse()
	// SpawnRevealParticles 在咖啡杯处喷出粒子
	SpawnRevealParticles()
	// CupCenter 返回咖啡杯当前的屏幕中心
	CupCenter() (x, y float64)
}

// Timings 答案序列的时间参数
type Timings struct {
	SwapDelay   time.Duration // 隐藏旧答案到显示新答案
	Visible     time.Duration // 显示到自动隐藏
	PromptDelay time.Duration // 自动隐藏到恢复提问
}

// DefaultTimings 返回默认时间参数
func DefaultTimings() Timings {
	return Timings{
		SwapDelay:   300 * time.Millisecond,
		Visible:     5000 * time.Millisecond,
		PromptDelay: 300 * time.Millisecond,
	}
}

// State 答案的可见状态（供渲染读取）
type State struct {
	Visible       bool
	Text          string
	PromptVisible bool
	Standing      bool // 常驻文字，不自动隐藏
}

// Sequencer 答案揭示序列
//
// 生命周期：
//
//	Reveal → 立即隐藏旧答案和提问 → 300ms 后显示新答案
//	       → 5000ms 后自动隐藏 → 300ms 后恢复提问
//
// 同一时刻最多只有一个挂起的序列计时器：再次 Reveal 会先取消旧的计时器。
type Sequencer struct {
	scheduler *timer.Scheduler
	rng       Rand
	now       func() time.Time
	responses map[Bucket][]string
	timings   Timings

	counter    Counter
	celebrator Celebrator
	effects    Effects

	state   State
	pending timer.Handle
	reveals int
}

// Option 可选依赖
type Option func(*Sequencer)

// WithCounter 设置点击计数器
func WithCounter(c Counter) Option {
	return func(s *Sequencer) { s.counter = c }
}

// WithCelebrator 设置庆祝动画
func WithCelebrator(c Celebrator) Option {
	return func(s *Sequencer) { s.celebrator = c }
}

// WithEffects 设置视觉效果
func WithEffects(e Effects) Option {
	return func(s *Sequencer) { s.effects = e }
}

// WithClock 设置墙上时钟（用于时段选择）
func WithClock(now func() time.Time) Option {
	return func(s *Sequencer) { s.now = now }
}

// NewSequencer 创建答案序列
//
// 参数：
//   - scheduler: 延迟回调调度器
//   - rng: 随机数来源
//   - responses: 时段名（morning/afternoon/evening/night）到候选答案的映射
//   - timings: 时间参数
func NewSequencer(scheduler *timer.Scheduler, rng Rand, responses map[string][]string, timings Timings, opts ...Option) *Sequencer {
	s := &Sequencer{
		scheduler: scheduler,
		rng:       rng,
		now:       time.Now,
		responses: make(map[Bucket][]string),
		timings:   timings,
		state:     State{PromptVisible: true},
	}

	for _, b := range []Bucket{Night, Morning, Afternoon, Evening} {
		s.responses[b] = responses[b.String()]
	}

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State 返回当前可见状态
func (s *Sequencer) State() State {
	return s.state
}

// Reveals 返回 Reveal 被调用的次数
func (s *Sequencer) Reveals() int {
	return s.reveals
}

// Pending 返回是否有挂起的序列计时器
func (s *Sequencer) Pending() bool {
	return s.pending.Pending()
}

// Reveal 揭示一个新答案
//
// 固定流程：取消挂起计时器 → 选择文字 → 视觉序列 → 粒子 → 更新计数
func (s *Sequencer) Reveal() {
	s.pending.Stop()
	s.reveals++

	text := s.selectText()
	s.runSequence(text)

	if s.effects != nil {
		s.effects.SpawnRevealParticles()
	}

	s.updateCounter()
}

// selectText 按当前时段随机选择答案
func (s *Sequencer) selectText() string {
	candidates := s.responses[BucketAt(s.now())]
	if len(candidates) == 0 {
		return ""
	}
	return candidates[s.rng.Intn(len(candidates))]
}

// runSequence 隐藏旧答案并调度显示新答案
func (s *Sequencer) runSequence(text string) {
	s.state.Visible = false
	s.state.Standing = false
	s.state.PromptVisible = false

	if s.effects != nil {
		s.effects.Pulse()
	}

	s.pending = s.scheduler.After(s.timings.SwapDelay, func() {
		s.state.Text = text
		s.state.Visible = true
		s.pending = s.scheduler.After(s.timings.Visible, s.autoHide)
	})
}

// autoHide 自动隐藏答案，稍后恢复提问
func (s *Sequencer) autoHide() {
	s.state.Visible = false
	s.pending = s.scheduler.After(s.timings.PromptDelay, func() {
		s.state.PromptVisible = true
	})
}

// updateCounter 更新计数，达到阈值时触发庆祝
func (s *Sequencer) updateCounter() {
	if s.counter == nil {
		return
	}

	count, celebrate := s.counter.Increment()
	log.Printf("[Answer] Reveal #%d", count)

	if celebrate && s.celebrator != nil {
		x, y := 0.0, 0.0
		if s.effects != nil {
			x, y = s.effects.CupCenter()
		}
		s.celebrator.Fire(x, y)
	}
}

// Dismiss 立即隐藏答案和提问（长按动画期间使用）
func (s *Sequencer) Dismiss() {
	s.pending.Stop()
	s.state.Visible = false
	s.state.Standing = false
	s.state.PromptVisible = false
}

// RestorePrompt 恢复显示提问
//
// 揭示序列进行中（答案可见或序列计时器挂起）时不做任何事，
// 提问由该序列的自动隐藏负责恢复。
func (s *Sequencer) RestorePrompt() {
	if s.state.Visible || s.pending.Pending() {
		return
	}
	s.state.PromptVisible = true
}

// ShowStanding 显示常驻文字，不会自动隐藏，直到下一次 Reveal
func (s *Sequencer) ShowStanding(text string) {
	s.pending.Stop()
	s.state.Text = text
	s.state.Visible = true
	s.state.Standing = true
	s.state.PromptVisible = false
}

// Reset 重置计数和庆祝标记，不影响当前显示和计时器
func (s *Sequencer) Reset() {
	if s.counter != nil {
		s.counter.Reset()
	}
}
