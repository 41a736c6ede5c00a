package counter

import (
	"log"
	"strconv"
	"sync"
)

// 持久化键名
const (
	CountKey     = "coffeeCount"
	CelebrateKey = "tenthClickTriggered"
)

// DefaultThreshold 触发庆祝动画的点击次数
const DefaultThreshold = 10

// Tracker 点击计数器
//
// 职责：
//   - 每次成功揭示答案时计数 +1 并立即持久化
//   - 计数首次达到阈值时报告一次庆祝（由持久化标记保证只触发一次）
//   - 重置时同时清除计数和标记
//
// 计数的"读取-修改-写入"在互斥锁内完成，不会与另一次递增交错。
type Tracker struct {
	mu        sync.Mutex
	store     Store
	threshold int
}

// NewTracker 创建计数器
//
// 参数：
//   - store: 持久化存储
//   - threshold: 庆祝阈值，<= 0 时使用 DefaultThreshold
func NewTracker(store Store, threshold int) *Tracker {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Tracker{store: store, threshold: threshold}
}

// Threshold 返回庆祝阈值
func (t *Tracker) Threshold() int {
	return t.threshold
}

// Count 返回当前计数
func (t *Tracker) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.load()
}

// Celebrated 返回庆祝标记是否已设置
func (t *Tracker) Celebrated() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.store.Get(CelebrateKey)
	return ok
}

// Increment 计数 +1 并持久化
//
// 返回：
//   - count: 递增后的计数
//   - celebrate: 本次递增是否达到阈值且此前未庆祝过
func (t *Tracker) Increment() (count int, celebrate bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	count = t.load() + 1
	if err := t.store.Set(CountKey, strconv.Itoa(count)); err != nil {
		log.Printf("[Counter] Warning: %v", err)
	}

	if count < t.threshold {
		return count, false
	}
	if _, done := t.store.Get(CelebrateKey); done {
		return count, false
	}

	if err := t.store.Set(CelebrateKey, "true"); err != nil {
		log.Printf("[Counter] Warning: %v", err)
	}
	log.Printf("[Counter] Threshold %d reached", t.threshold)
	return count, true
}

// Reset 计数归零并清除庆祝标记
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.store.Set(CountKey, "0"); err != nil {
		log.Printf("[Counter] Warning: %v", err)
	}
	if err := t.store.Delete(CelebrateKey); err != nil {
		log.Printf("[Counter] Warning: %v", err)
	}
	log.Printf("[Counter] Reset")
}

// load 读取计数，缺失或损坏的值视为 0（调用方需持有锁）
func (t *Tracker) load() int {
	raw, ok := t.store.Get(CountKey)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
