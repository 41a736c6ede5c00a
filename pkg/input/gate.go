// Package input 把原始指针/键盘事件转换为高层动作
//
// Gate 是一个小状态机（Idle / Holding / Suppressed），决定每个事件触发哪个动作：
// 普通点击揭示答案、长按触发动画、长按动画期间屏蔽点击。
package input

import (
	"log"
	"time"

	"github.com/decker502/coffee-oracle/pkg/timer"
)

// State 门控状态
type State int

const (
	// Idle 空闲，点击可以揭示答案
	Idle State = iota
	// Holding 指针在不透明区域按住，长按计时中
	Holding
	// Suppressed 长按动画播放中及其后的缓冲期，屏蔽点击
	Suppressed
)

// String 返回状态名
func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Holding:
		return "Holding"
	case Suppressed:
		return "Suppressed"
	default:
		return "Unknown"
	}
}

// HitTester 判断屏幕坐标是否落在图片主体上
type HitTester interface {
	IsOpaque(x, y float64) bool
}

// Rand 随机数来源
type Rand interface {
	Intn(n int) int
}

// Actions 门控触发的高层动作
type Actions interface {
	Reveal()
	ResetCounter()
	// ShowHoldProgress 显示或隐藏长按进度
	ShowHoldProgress(visible bool)
	// HideAnswer 长按动画期间隐藏文字
	HideAnswer()
	StartHoldAnimation(anim HoldAnimation, duration time.Duration)
	FinishHoldAnimation()
	EnterUltraMode()
}

// Timings 长按相关的时间参数（都从按下时刻开始计算，Grace 除外）
type Timings struct {
	ProgressDelay time.Duration
	TriggerDelay  time.Duration
	Animation     time.Duration
	Grace         time.Duration // 动画结束后继续屏蔽点击的时间
}

// DefaultTimings 返回默认时间参数
func DefaultTimings() Timings {
	return Timings{
		ProgressDelay: 1000 * time.Millisecond,
		TriggerDelay:  3000 * time.Millisecond,
		Animation:     2000 * time.Millisecond,
		Grace:         100 * time.Millisecond,
	}
}

// Keys 按键绑定（按键名）
type Keys struct {
	Activate string
	Reset    []string
	Konami   []string
}

// HoldState 单次按住手势的状态
type HoldState struct {
	Active    bool
	StartTime time.Duration
	Progress  timer.Handle
	Trigger   timer.Handle
	Triggered bool
}

// Gate 输入门控
type Gate struct {
	scheduler *timer.Scheduler
	tester    HitTester
	actions   Actions
	rng       Rand
	timings   Timings
	keys      Keys

	state         State
	hold          HoldState
	progressShown bool
	animation     HoldAnimation
	finish        timer.Handle
	release       timer.Handle

	// 长按触发后屏蔽点击的截止时间（含边界）
	suppressArmed bool
	suppressUntil time.Duration

	interactive bool
	konami      *KonamiTracker
	ultra       bool
}

// NewGate 创建输入门控
//
// 参数：
//   - scheduler: 延迟回调调度器
//   - tester: 像素透明度检测
//   - actions: 动作接收方
//   - rng: 用于随机选择长按动画
//   - timings: 长按时间参数
//   - keys: 按键绑定
func NewGate(scheduler *timer.Scheduler, tester HitTester, actions Actions, rng Rand, timings Timings, keys Keys) *Gate {
	return &Gate{
		scheduler: scheduler,
		tester:    tester,
		actions:   actions,
		rng:       rng,
		timings:   timings,
		keys:      keys,
		konami:    NewKonamiTracker(keys.Konami),
	}
}

// State 返回当前状态
func (g *Gate) State() State {
	return g.state
}

// Hold 返回当前手势状态
func (g *Gate) Hold() HoldState {
	return g.hold
}

// Animation 返回最近一次触发的长按动画
func (g *Gate) Animation() HoldAnimation {
	return g.animation
}

// Interactive 返回指针当前是否悬停在可交互像素上（仅用于光标提示）
func (g *Gate) Interactive() bool {
	return g.interactive
}

// UltraMode 返回是否已进入秘籍模式
func (g *Gate) UltraMode() bool {
	return g.ultra
}

// HoldProgress 返回长按进度 [0,1]，未显示进度时返回 0
func (g *Gate) HoldProgress() float64 {
	if !g.hold.Active || !g.progressShown {
		return 0
	}
	span := g.timings.TriggerDelay - g.timings.ProgressDelay
	if span <= 0 {
		return 1
	}
	p := float64(g.scheduler.Now()-g.hold.StartTime-g.timings.ProgressDelay) / float64(span)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// PointerMove 更新光标提示，不改变状态
func (g *Gate) PointerMove(x, y float64) bool {
	g.interactive = g.tester.IsOpaque(x, y)
	return g.interactive
}

// PointerDown 在不透明区域按下时开始长按计时
func (g *Gate) PointerDown(x, y float64) {
	if g.state != Idle {
		return
	}
	if !g.tester.IsOpaque(x, y) {
		return
	}

	g.state = Holding
	g.hold = HoldState{
		Active:    true,
		StartTime: g.scheduler.Now(),
	}
	g.hold.Progress = g.scheduler.After(g.timings.ProgressDelay, g.onProgress)
	g.hold.Trigger = g.scheduler.After(g.timings.TriggerDelay, g.onTrigger)
}

// PointerUp 结束按住
func (g *Gate) PointerUp(x, y float64) {
	g.endHold()
}

// PointerLeave 指针离开图片区域
func (g *Gate) PointerLeave() {
	g.interactive = false
	g.endHold()
}

// endHold 取消长按计时；长按已触发时只清理句柄，由动画计时器负责回到 Idle
func (g *Gate) endHold() {
	g.hold.Progress.Stop()
	g.hold.Trigger.Stop()

	if g.state != Holding {
		return
	}

	g.hideProgress()
	g.state = Idle
	g.hold = HoldState{}
}

// Click 在不透明区域且未被屏蔽时揭示答案
//
// 返回：
//   - bool: 是否触发了 Reveal
func (g *Gate) Click(x, y float64) bool {
	if g.suppressed() {
		log.Printf("[InputGate] Click suppressed during hold animation")
		return false
	}
	if !g.tester.IsOpaque(x, y) {
		return false
	}

	g.actions.Reveal()
	return true
}

// suppressed 屏蔽窗口包含结束边界
func (g *Gate) suppressed() bool {
	if g.state == Suppressed {
		return true
	}
	return g.suppressArmed && g.scheduler.Now() <= g.suppressUntil
}

// KeyDown 处理按键
func (g *Gate) KeyDown(key string) {
	if g.konami.Push(key) && !g.ultra {
		g.ultra = true
		log.Printf("[InputGate] Konami sequence matched")
		g.actions.EnterUltraMode()
	}

	if key == g.keys.Activate {
		g.actions.Reveal()
		return
	}
	for _, k := range g.keys.Reset {
		if key == k {
			g.actions.ResetCounter()
			return
		}
	}
}

// onProgress 按住达到进度阈值，开始显示进度
func (g *Gate) onProgress() {
	if g.state != Holding {
		return
	}
	g.progressShown = true
	g.actions.ShowHoldProgress(true)
}

// onTrigger 按住达到触发阈值，播放随机长按动画
func (g *Gate) onTrigger() {
	if g.state != Holding {
		return
	}

	g.state = Suppressed
	g.hold.Triggered = true
	g.hideProgress()

	g.animation = HoldAnimations[g.rng.Intn(len(HoldAnimations))]
	now := g.scheduler.Now()
	g.suppressArmed = true
	g.suppressUntil = now + g.timings.Animation + g.timings.Grace

	log.Printf("[InputGate] Hold triggered: %s", g.animation)
	g.actions.HideAnswer()
	g.actions.StartHoldAnimation(g.animation, g.timings.Animation)

	g.finish = g.scheduler.After(g.timings.Animation, func() {
		g.actions.FinishHoldAnimation()
		g.release = g.scheduler.After(g.timings.Grace, g.onRelease)
	})
}

// onRelease 缓冲期结束，回到 Idle
func (g *Gate) onRelease() {
	g.state = Idle
	g.hold = HoldState{}
}

func (g *Gate) hideProgress() {
	if !g.progressShown {
		return
	}
	g.progressShown = false
	g.actions.ShowHoldProgress(false)
}
