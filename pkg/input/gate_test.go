package input

import (
	"testing"
	"time"

	"github.com/decker502/coffee-oracle/pkg/timer"
)

// stubTester 可控的透明度检测
type stubTester struct {
	opaque bool
}

func (s *stubTester) IsOpaque(x, y float64) bool { return s.opaque }

// recordingActions 记录门控触发的动作
type recordingActions struct {
	reveals   int
	resets    int
	progress  []bool
	hides     int
	started   []HoldAnimation
	durations []time.Duration
	finished  int
	ultra     int
}

func (a *recordingActions) Reveal()                 { a.reveals++ }
func (a *recordingActions) ResetCounter()           { a.resets++ }
func (a *recordingActions) ShowHoldProgress(v bool) { a.progress = append(a.progress, v) }
func (a *recordingActions) HideAnswer()             { a.hides++ }
func (a *recordingActions) FinishHoldAnimation()    { a.finished++ }
func (a *recordingActions) EnterUltraMode()         { a.ultra++ }

func (a *recordingActions) StartHoldAnimation(anim HoldAnimation, d time.Duration) {
	a.started = append(a.started, anim)
	a.durations = append(a.durations, d)
}

type fixedRand int

func (r fixedRand) Intn(n int) int { return int(r) % n }

func testKeys() Keys {
	return Keys{
		Activate: " ",
		Reset:    []string{"r", "R"},
		Konami: []string{
			"ArrowUp", "ArrowUp", "ArrowDown", "ArrowDown",
			"ArrowLeft", "ArrowRight", "ArrowLeft", "ArrowRight",
			"b", "a",
		},
	}
}

func newTestGate(opaque bool) (*Gate, *timer.Scheduler, *stubTester, *recordingActions) {
	sched := timer.NewScheduler()
	tester := &stubTester{opaque: opaque}
	actions := &recordingActions{}
	gate := NewGate(sched, tester, actions, fixedRand(2), DefaultTimings(), testKeys())
	return gate, sched, tester, actions
}

// advanceTo 把调度器推进到绝对时间
func advanceTo(s *timer.Scheduler, at time.Duration) {
	if at > s.Now() {
		s.Advance(at - s.Now())
	}
}

// TestHoldEndToEnd 按住 3200ms 后松开：选中一个动画、屏蔽点击、5100ms 回到 Idle
func TestHoldEndToEnd(t *testing.T) {
	gate, sched, _, actions := newTestGate(true)

	gate.PointerDown(100, 100)
	if gate.State() != Holding {
		t.Fatalf("state = %s, want Holding", gate.State())
	}

	advanceTo(sched, 999*time.Millisecond)
	if len(actions.progress) != 0 {
		t.Fatal("progress shown before 1000ms")
	}
	advanceTo(sched, 1000*time.Millisecond)
	if len(actions.progress) != 1 || !actions.progress[0] {
		t.Fatalf("progress = %v, want [true] at 1000ms", actions.progress)
	}

	advanceTo(sched, 3000*time.Millisecond)
	if gate.State() != Suppressed {
		t.Fatalf("state = %s at 3000ms, want Suppressed", gate.State())
	}
	if len(actions.started) != 1 {
		t.Fatalf("started %d animations, want exactly 1", len(actions.started))
	}
	if actions.started[0] != HoldBounce {
		t.Errorf("animation = %s, want bounce (index 2)", actions.started[0])
	}
	if actions.durations[0] != 2000*time.Millisecond {
		t.Errorf("animation duration = %v, want 2s", actions.durations[0])
	}
	if actions.hides != 1 {
		t.Errorf("text hidden %d times, want 1", actions.hides)
	}

	// 3100ms 的点击（窗口内）被屏蔽
	advanceTo(sched, 3100*time.Millisecond)
	if gate.Click(100, 100) {
		t.Error("click at 3100ms fired")
	}

	advanceTo(sched, 3200*time.Millisecond)
	gate.PointerUp(100, 100)
	if gate.Click(100, 100) {
		t.Error("click at release fired")
	}
	if gate.State() != Suppressed {
		t.Errorf("pointer-up changed state to %s during animation", gate.State())
	}

	advanceTo(sched, 5000*time.Millisecond)
	if actions.finished != 1 {
		t.Errorf("finished = %d at 5000ms, want 1", actions.finished)
	}
	if gate.State() != Suppressed {
		t.Errorf("state = %s during grace, want Suppressed", gate.State())
	}

	advanceTo(sched, 5099*time.Millisecond)
	if gate.State() != Suppressed {
		t.Fatalf("state = %s at 5099ms, want Suppressed", gate.State())
	}
	advanceTo(sched, 5100*time.Millisecond)
	if gate.State() != Idle {
		t.Fatalf("state = %s at 5100ms, want Idle", gate.State())
	}

	// 恰好在边界上的点击按屏蔽处理
	if gate.Click(100, 100) {
		t.Error("click exactly at grace boundary fired")
	}

	advanceTo(sched, 5101*time.Millisecond)
	if !gate.Click(100, 100) {
		t.Error("click after grace did not fire")
	}
	if actions.reveals != 1 {
		t.Errorf("reveals = %d, want 1", actions.reveals)
	}
	if len(actions.started) != 1 {
		t.Errorf("animations = %d, want 1", len(actions.started))
	}
}

// TestHoldReleasedEarly 提前松开时取消两个计时器并回到 Idle
func TestHoldReleasedEarly(t *testing.T) {
	gate, sched, _, actions := newTestGate(true)

	gate.PointerDown(10, 10)
	advanceTo(sched, 1500*time.Millisecond)
	gate.PointerUp(10, 10)

	if gate.State() != Idle {
		t.Fatalf("state = %s, want Idle", gate.State())
	}
	if len(actions.progress) != 2 || actions.progress[1] {
		t.Errorf("progress = %v, want [true false]", actions.progress)
	}

	advanceTo(sched, 10*time.Second)
	if len(actions.started) != 0 {
		t.Error("hold animation fired after release")
	}
	if sched.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", sched.Pending())
	}

	// 普通点击照常生效
	if !gate.Click(10, 10) {
		t.Error("ordinary click after early release did not fire")
	}
}

// TestHoldCancelledByLeave 指针离开区域取消长按
func TestHoldCancelledByLeave(t *testing.T) {
	gate, sched, _, actions := newTestGate(true)

	gate.PointerMove(10, 10)
	if !gate.Interactive() {
		t.Fatal("expected interactive hint over opaque pixel")
	}

	gate.PointerDown(10, 10)
	advanceTo(sched, 500*time.Millisecond)
	gate.PointerLeave()

	if gate.State() != Idle || gate.Interactive() {
		t.Fatalf("after leave: state=%s interactive=%v", gate.State(), gate.Interactive())
	}
	if len(actions.progress) != 0 {
		t.Errorf("progress toggled without being shown: %v", actions.progress)
	}

	advanceTo(sched, 4*time.Second)
	if len(actions.started) != 0 {
		t.Error("hold animation fired after leave")
	}
}

// TestClickDuringHoldIsOrdinary 按住期间（触发前）的点击照常揭示，且不取消长按
func TestClickDuringHoldIsOrdinary(t *testing.T) {
	gate, sched, _, actions := newTestGate(true)

	gate.PointerDown(10, 10)
	advanceTo(sched, 2000*time.Millisecond)
	if !gate.Click(10, 10) {
		t.Fatal("click before trigger did not fire")
	}

	advanceTo(sched, 3000*time.Millisecond)
	if len(actions.started) != 1 {
		t.Error("hold sequence was invalidated by the click")
	}
	if actions.reveals != 1 {
		t.Errorf("reveals = %d, want 1", actions.reveals)
	}
}

// TestTransparentPointer 透明区域不开始长按、不揭示
func TestTransparentPointer(t *testing.T) {
	gate, sched, _, actions := newTestGate(false)

	if gate.PointerMove(1, 1) {
		t.Error("interactive hint over transparent pixel")
	}
	gate.PointerDown(1, 1)
	if gate.State() != Idle {
		t.Errorf("state = %s, want Idle", gate.State())
	}
	advanceTo(sched, 5*time.Second)
	if gate.Click(1, 1) {
		t.Error("click on transparent pixel fired")
	}
	if actions.reveals != 0 || len(actions.started) != 0 {
		t.Errorf("unexpected actions: %+v", actions)
	}
}

// TestActivateKeyBypassesHitTest 激活键不受位置和屏蔽影响
func TestActivateKeyBypassesHitTest(t *testing.T) {
	gate, sched, tester, actions := newTestGate(false)

	gate.KeyDown(" ")
	if actions.reveals != 1 {
		t.Fatalf("reveals = %d, want 1", actions.reveals)
	}

	// 长按动画期间同样生效
	tester.opaque = true
	gate.PointerDown(0, 0)
	advanceTo(sched, 3500*time.Millisecond)
	if gate.State() != Suppressed {
		t.Fatalf("state = %s, want Suppressed", gate.State())
	}
	gate.KeyDown(" ")
	if actions.reveals != 2 {
		t.Errorf("reveals = %d, want 2", actions.reveals)
	}
}

// TestResetKeys 测试 r / R 触发重置
func TestResetKeys(t *testing.T) {
	gate, _, _, actions := newTestGate(true)

	gate.KeyDown("r")
	gate.KeyDown("R")
	gate.KeyDown("x")

	if actions.resets != 2 {
		t.Errorf("resets = %d, want 2", actions.resets)
	}
}

// TestKonamiActivatesUltraMode 完整序列进入秘籍模式，且只进入一次
func TestKonamiActivatesUltraMode(t *testing.T) {
	gate, _, _, actions := newTestGate(true)

	gate.KeyDown("x")
	for _, k := range testKeys().Konami {
		gate.KeyDown(k)
	}

	if !gate.UltraMode() || actions.ultra != 1 {
		t.Fatalf("ultra=%v entered=%d, want true/1", gate.UltraMode(), actions.ultra)
	}

	for _, k := range testKeys().Konami {
		gate.KeyDown(k)
	}
	if actions.ultra != 1 {
		t.Errorf("entered = %d after second sequence, want 1", actions.ultra)
	}
}

// TestKonamiPrefixDoesNotActivate 只输入前 9 个按键不会进入秘籍模式
func TestKonamiPrefixDoesNotActivate(t *testing.T) {
	gate, _, _, actions := newTestGate(true)

	seq := testKeys().Konami
	for _, k := range seq[:9] {
		gate.KeyDown(k)
	}

	if gate.UltraMode() || actions.ultra != 0 {
		t.Error("9-key prefix activated ultra mode")
	}
}

// TestHoldProgress 测试长按进度值
func TestHoldProgress(t *testing.T) {
	gate, sched, _, _ := newTestGate(true)

	gate.PointerDown(0, 0)
	advanceTo(sched, 500*time.Millisecond)
	if p := gate.HoldProgress(); p != 0 {
		t.Errorf("progress at 500ms = %v, want 0", p)
	}
	advanceTo(sched, 2000*time.Millisecond)
	if p := gate.HoldProgress(); p != 0.5 {
		t.Errorf("progress at 2000ms = %v, want 0.5", p)
	}
}

func TestStateString(t *testing.T) {
	if Idle.String() != "Idle" || Holding.String() != "Holding" || Suppressed.String() != "Suppressed" {
		t.Error("unexpected state names")
	}
}
