// Package celebration 播放第十次点击的环绕庆祝动画
package celebration

import (
	"log"
	"math"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/decker502/coffee-oracle/pkg/timer"
)

// Emitter 庆祝期间使用的粒子发射能力
type Emitter interface {
	// Spray 从原点喷出一个装饰粒子
	Spray(x, y float64)
	// Sparkle 在卫星轨迹上留下一颗闪光
	Sparkle(x, y float64)
}

// Rand 随机数来源
type Rand interface {
	Float64() float64
}

// Params 庆祝动画参数
type Params struct {
	Satellites    int
	Duration      time.Duration
	Rotations     float64
	RadiusRatio   float64 // 轨道半径占视口短边的比例
	SprayCount    int
	SprayInterval time.Duration
	TrailChance   float64 // 每帧每个卫星发射闪光的概率
}

// DefaultParams 返回默认参数：5 个卫星、3 秒、2 圈
func DefaultParams() Params {
	return Params{
		Satellites:    5,
		Duration:      3000 * time.Millisecond,
		Rotations:     2,
		RadiusRatio:   0.3,
		SprayCount:    30,
		SprayInterval: 40 * time.Millisecond,
		TrailChance:   0.15,
	}
}

// 卫星从原点展开到轨道所占的进度比例
const expandPhase = 0.3

// 淡入/淡出各占的进度比例
const fadePhase = 0.2

// Satellite 环绕原点的小咖啡杯
type Satellite struct {
	StartAngle float64
	X, Y       float64
	Opacity    float64
	Angle      float64
}

// OrbitSequence 一次庆祝动画中的全部卫星
type OrbitSequence struct {
	OriginX, OriginY float64
	Radius           float64
	Satellites       []Satellite

	tween     *gween.Tween
	rotations float64
	progress  float64
	done      bool
}

// Progress 返回动画进度 [0,1]
func (s *OrbitSequence) Progress() float64 {
	return s.progress
}

// Done 返回动画是否结束
func (s *OrbitSequence) Done() bool {
	return s.done
}

// advance 推进进度并重新计算卫星位置
func (s *OrbitSequence) advance(dt time.Duration) {
	current, finished := s.tween.Update(float32(dt.Seconds()))
	s.progress = clamp01(float64(current))
	if finished {
		s.progress = 1
		s.done = true
	}
	s.layout()
}

// layout 根据进度计算卫星位置和透明度
func (s *OrbitSequence) layout() {
	t := s.progress
	expand := float64(ease.OutCubic(float32(math.Min(t/expandPhase, 1)), 0, 1, 1))
	radius := s.Radius * expand
	opacity := Envelope(t)

	for i := range s.Satellites {
		sat := &s.Satellites[i]
		sat.Angle = sat.StartAngle + t*s.rotations*2*math.Pi
		sat.X = s.OriginX + math.Cos(sat.Angle)*radius
		sat.Y = s.OriginY + math.Sin(sat.Angle)*radius
		sat.Opacity = opacity
	}
}

// Envelope 透明度包络：前 20% 淡入，后 20% 淡出
func Envelope(t float64) float64 {
	switch {
	case t <= 0:
		return 0
	case t < fadePhase:
		return t / fadePhase
	case t > 1-fadePhase:
		return clamp01((1 - t) / fadePhase)
	default:
		return 1
	}
}

// Trigger 庆祝动画触发器
//
// 触发器本身不记录是否已庆祝过，"只触发一次"由持久化的庆祝标记保证。
type Trigger struct {
	scheduler *timer.Scheduler
	emitter   Emitter
	rng       Rand
	params    Params

	viewportW, viewportH float64
	sequences            []*OrbitSequence
}

// NewTrigger 创建庆祝动画触发器
func NewTrigger(scheduler *timer.Scheduler, emitter Emitter, rng Rand, params Params) *Trigger {
	return &Trigger{
		scheduler: scheduler,
		emitter:   emitter,
		rng:       rng,
		params:    params,
	}
}

// SetViewport 更新视口尺寸，轨道半径与视口短边成正比
func (t *Trigger) SetViewport(w, h float64) {
	t.viewportW, t.viewportH = w, h
}

// Active 返回是否有正在播放的庆祝动画
func (t *Trigger) Active() bool {
	return len(t.sequences) > 0
}

// Sequences 返回正在播放的动画（供渲染读取）
func (t *Trigger) Sequences() []*OrbitSequence {
	return t.sequences
}

// Fire 从原点开始一次庆祝动画
func (t *Trigger) Fire(originX, originY float64) {
	seq := &OrbitSequence{
		OriginX:    originX,
		OriginY:    originY,
		Radius:     math.Min(t.viewportW, t.viewportH) * t.params.RadiusRatio,
		Satellites: make([]Satellite, t.params.Satellites),
		tween:      gween.New(0, 1, float32(t.params.Duration.Seconds()), ease.Linear),
		rotations:  t.params.Rotations,
	}
	for i := range seq.Satellites {
		seq.Satellites[i].StartAngle = float64(i) * 2 * math.Pi / float64(t.params.Satellites)
	}
	seq.layout()
	t.sequences = append(t.sequences, seq)

	log.Printf("[Celebration] Fired at (%.0f, %.0f), radius %.0f", originX, originY, seq.Radius)

	if t.emitter == nil {
		return
	}
	for i := 0; i < t.params.SprayCount; i++ {
		t.scheduler.After(time.Duration(i)*t.params.SprayInterval, func() {
			t.emitter.Spray(originX, originY)
		})
	}
}

// Update 每帧推进所有庆祝动画，结束的动画被移除
func (t *Trigger) Update(dt time.Duration) {
	if len(t.sequences) == 0 {
		return
	}

	alive := t.sequences[:0]
	for _, seq := range t.sequences {
		seq.advance(dt)
		if seq.done {
			continue
		}

		if t.emitter != nil {
			for _, sat := range seq.Satellites {
				if t.rng.Float64() < t.params.TrailChance {
					t.emitter.Sparkle(sat.X, sat.Y)
				}
			}
		}
		alive = append(alive, seq)
	}

	for i := len(alive); i < len(t.sequences); i++ {
		t.sequences[i] = nil
	}
	t.sequences = alive
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
