package timer

import (
	"testing"
	"time"
)

// TestSchedulerFiresInOrder 测试回调按到期时间和调度顺序触发
func TestSchedulerFiresInOrder(t *testing.T) {
	s := NewScheduler()
	var got []string

	s.After(300*time.Millisecond, func() { got = append(got, "b") })
	s.After(100*time.Millisecond, func() { got = append(got, "a") })
	s.After(300*time.Millisecond, func() { got = append(got, "c") })

	s.Advance(1 * time.Second)

	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("fired %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("fired[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

// TestSchedulerBoundary 测试恰好到期的回调会触发，未到期的不会
func TestSchedulerBoundary(t *testing.T) {
	s := NewScheduler()
	fired := false
	s.After(1000*time.Millisecond, func() { fired = true })

	s.Advance(999 * time.Millisecond)
	if fired {
		t.Fatal("callback fired 1ms early")
	}

	s.Advance(1 * time.Millisecond)
	if !fired {
		t.Fatal("callback did not fire at its due time")
	}
}

// TestSchedulerCancelIsIdempotent 测试重复取消、取消已触发句柄和零值句柄均为空操作
func TestSchedulerCancelIsIdempotent(t *testing.T) {
	s := NewScheduler()
	count := 0

	h := s.After(10*time.Millisecond, func() { count++ })
	h.Stop()
	h.Stop()
	s.Cancel(h)

	fired := s.After(10*time.Millisecond, func() { count++ })
	s.Advance(20 * time.Millisecond)
	fired.Stop()

	var zero Handle
	zero.Stop()

	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
	if h.Pending() || fired.Pending() || zero.Pending() {
		t.Error("no handle should be pending")
	}
}

// TestSchedulerNestedScheduling 测试回调内调度的回调使用触发时刻作为时间基准
func TestSchedulerNestedScheduling(t *testing.T) {
	s := NewScheduler()
	var at []time.Duration

	s.After(300*time.Millisecond, func() {
		at = append(at, s.Now())
		s.After(300*time.Millisecond, func() {
			at = append(at, s.Now())
		})
	})

	// 一次推进覆盖两层回调
	s.Advance(1 * time.Second)

	if len(at) != 2 {
		t.Fatalf("fired %d callbacks, want 2", len(at))
	}
	if at[0] != 300*time.Millisecond || at[1] != 600*time.Millisecond {
		t.Errorf("fire times = %v, want [300ms 600ms]", at)
	}
	if s.Now() != time.Second {
		t.Errorf("Now() = %v, want 1s", s.Now())
	}
}

// TestSchedulerCancelFromCallback 测试回调中取消另一个同批到期的回调
func TestSchedulerCancelFromCallback(t *testing.T) {
	s := NewScheduler()
	secondFired := false

	var second Handle
	s.After(100*time.Millisecond, func() { second.Stop() })
	second = s.After(200*time.Millisecond, func() { secondFired = true })

	s.Advance(time.Second)

	if secondFired {
		t.Error("cancelled callback fired")
	}
	if s.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", s.Pending())
	}
}
