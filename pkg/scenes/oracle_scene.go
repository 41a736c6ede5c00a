package scenes

import (
	"image"
	"image/color"
	"log"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween"

	"github.com/decker502/coffee-oracle/pkg/answer"
	"github.com/decker502/coffee-oracle/pkg/celebration"
	"github.com/decker502/coffee-oracle/pkg/config"
	"github.com/decker502/coffee-oracle/pkg/counter"
	"github.com/decker502/coffee-oracle/pkg/game"
	"github.com/decker502/coffee-oracle/pkg/hittest"
	"github.com/decker502/coffee-oracle/pkg/input"
	"github.com/decker502/coffee-oracle/pkg/parallax"
	"github.com/decker502/coffee-oracle/pkg/particle"
	"github.com/decker502/coffee-oracle/pkg/timer"
)

// 咖啡杯中心在视口中的相对高度（上方留给文字）
const cupCenterRatio = 0.56

// 文字淡入淡出的时长（秒）
const textFadeSeconds = 0.3

// revealBurst 每次揭示答案时喷出的粒子数
const revealBurst = 24

// backgroundLayer 背景中随视差移动的柔和色块
type backgroundLayer struct {
	layer  parallax.Layer
	x, y   float64 // 相对视口的位置 0~1
	radius float64
	color  color.RGBA
}

// OracleScene 咖啡杯神谕主场景
//
// 场景持有全部组件，并把 Ebitengine 的逐帧轮询转换为门控事件：
//
//	轮询输入 → PointerTracker → Gate（HitTester）→ Sequencer / Trigger
//	每帧无条件更新视差和粒子
type OracleScene struct {
	cfg *config.AppConfig
	rng *rand.Rand

	scheduler   *timer.Scheduler
	tracker     *counter.Tracker
	tester      *hittest.Tester
	gate        *input.Gate
	sequencer   *answer.Sequencer
	celebration *celebration.Trigger
	parallax    *parallax.Driver
	particles   *particle.Field
	poller      *input.Poller
	pointer     *input.PointerTracker
	fonts       *game.FontCache
	sounds      SoundPlayer

	// 咖啡杯图片：cupSource 解码完成前为 nil，此时命中检测放行所有坐标
	cupSource image.Image
	cupImage  *ebiten.Image
	cupLoaded chan image.Image
	cupLayer  parallax.Layer

	layers        []backgroundLayer
	width, height float64

	pulse      *gween.Tween
	pulseScale float64

	holdAnim      input.HoldAnimation
	holdAnimating bool
	holdElapsed   time.Duration
	holdDuration  time.Duration
	holdProgress  bool

	answerAlpha  float64
	promptAlpha  float64
	displayCount int
	ultra        bool
	ultraTime    float64
	interactive  bool
}

// NewOracleScene 创建主场景
//
// 参数:
//   - cfg: 应用配置
//   - store: 计数持久化存储
//   - fonts: 字体缓存，可为 nil（不绘制文字）
//   - rng: 随机数来源，为 nil 时使用当前时间作为种子
func NewOracleScene(cfg *config.AppConfig, store counter.Store, fonts *game.FontCache, rng *rand.Rand) *OracleScene {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	s := &OracleScene{
		cfg:        cfg,
		rng:        rng,
		scheduler:  timer.NewScheduler(),
		tracker:    counter.NewTracker(store, cfg.Celebration.Threshold),
		parallax:   parallax.NewDriver(parallaxParams(cfg)),
		poller:     input.NewPoller(),
		pointer:    input.NewPointerTracker(),
		fonts:      fonts,
		cupLoaded:  make(chan image.Image, 1),
		cupLayer:   parallax.Layer{Speed: cfg.Cup.Speed},
		pulseScale: 1,
		width:      float64(cfg.Window.Width),
		height:     float64(cfg.Window.Height),
	}

	s.tester = hittest.NewTester(s.CupRect)
	s.particles = particle.NewField(rng, s.steamSource)
	s.celebration = celebration.NewTrigger(s.scheduler, s.particles, rng, celebrationParams(cfg))

	s.sequencer = answer.NewSequencer(s.scheduler, rng, cfg.Answer.Responses,
		answer.Timings{
			SwapDelay:   config.Ms(cfg.Answer.SwapDelayMs),
			Visible:     config.Ms(cfg.Answer.VisibleMs),
			PromptDelay: config.Ms(cfg.Answer.PromptDelayMs),
		},
		answer.WithCounter(s.tracker),
		answer.WithCelebrator(s.celebration),
		answer.WithEffects(s),
	)

	s.gate = input.NewGate(s.scheduler, s.tester, s, rng,
		input.Timings{
			ProgressDelay: config.Ms(cfg.Hold.ProgressDelayMs),
			TriggerDelay:  config.Ms(cfg.Hold.TriggerDelayMs),
			Animation:     config.Ms(cfg.Hold.AnimationMs),
			Grace:         config.Ms(cfg.Hold.GraceMs),
		},
		input.Keys{
			Activate: cfg.Keys.Activate,
			Reset:    cfg.Keys.Reset,
			Konami:   cfg.Keys.Konami,
		},
	)

	for i, lc := range cfg.Parallax.Layers {
		c, err := config.ParseHexColor(lc.Color)
		if err != nil {
			log.Printf("[OracleScene] Warning: skip parallax layer %d: %v", i, err)
			continue
		}
		s.layers = append(s.layers, backgroundLayer{
			layer:  parallax.Layer{Speed: lc.Speed, ReduceOnMobile: true},
			x:      lc.X,
			y:      lc.Y,
			radius: lc.Radius,
			color:  c,
		})
	}

	s.displayCount = s.tracker.Count()
	s.promptAlpha = 1
	s.Resize(cfg.Window.Width, cfg.Window.Height)

	log.Printf("[OracleScene] Initialized: count=%d, celebrated=%v, layers=%d",
		s.displayCount, s.tracker.Celebrated(), len(s.layers))
	return s
}

func parallaxParams(cfg *config.AppConfig) parallax.Params {
	return parallax.Params{
		Smoothing:    cfg.Parallax.Smoothing,
		Distance:     cfg.Parallax.Distance,
		MobileWidth:  float64(cfg.Parallax.MobileWidth),
		MobileFactor: cfg.Parallax.MobileFactor,
		Mobile:       game.IsMobile(),
	}
}

func celebrationParams(cfg *config.AppConfig) celebration.Params {
	return celebration.Params{
		Satellites:    cfg.Celebration.Satellites,
		Duration:      config.Ms(cfg.Celebration.DurationMs),
		Rotations:     cfg.Celebration.Rotations,
		RadiusRatio:   cfg.Celebration.RadiusRatio,
		SprayCount:    cfg.Celebration.SprayCount,
		SprayInterval: config.Ms(cfg.Celebration.SprayIntervalMs),
		TrailChance:   cfg.Celebration.TrailChance,
	}
}

// LoadCupAsync 在后台加载咖啡杯图片，加载完成后在下一次 Update 中生效
//
// 加载完成之前命中检测放行所有坐标。
func (s *OracleScene) LoadCupAsync(load func() image.Image) {
	go func() {
		s.cupLoaded <- load()
	}()
}

// SetCup 立即替换咖啡杯图片并重建透明度图
func (s *OracleScene) SetCup(img image.Image) {
	if img == nil {
		return
	}
	s.cupSource = img
	s.cupImage = nil
	s.tester.Load(img)

	b := img.Bounds()
	log.Printf("[OracleScene] Cup image ready: %dx%d", b.Dx(), b.Dy())
}

// receiveCup 非阻塞地接收后台加载的图片
func (s *OracleScene) receiveCup() {
	select {
	case img := <-s.cupLoaded:
		s.SetCup(img)
	default:
	}
}

// Resize 实现 game.Resizable
func (s *OracleScene) Resize(width, height int) {
	s.width, s.height = float64(width), float64(height)
	s.parallax.SetViewport(s.width, s.height)
	s.celebration.SetViewport(s.width, s.height)
	s.particles.Resize(s.width, s.height)
}

// CupRect 返回咖啡杯当前的屏幕矩形（每次调用重新计算，包含视差位移和脉冲缩放）
// 图片加载前返回零矩形
func (s *OracleScene) CupRect() hittest.Rect {
	if s.cupSource == nil || s.height <= 0 {
		return hittest.Rect{}
	}

	b := s.cupSource.Bounds()
	if b.Dy() == 0 {
		return hittest.Rect{}
	}

	scale := s.cupScale()
	w, h := float64(b.Dx())*scale, float64(b.Dy())*scale
	cx, cy := s.cupCenter()
	return hittest.Rect{X: cx - w/2, Y: cy - h/2, Width: w, Height: h}
}

// cupScale 图片像素到屏幕像素的缩放（包含脉冲）
func (s *OracleScene) cupScale() float64 {
	h := float64(s.cupSource.Bounds().Dy())
	return s.height * s.cfg.Cup.HeightRatio / h * s.pulseScale
}

// cupCenter 咖啡杯中心（不考虑长按动画的位移）
func (s *OracleScene) cupCenter() (x, y float64) {
	dx, dy := s.parallax.Translate(s.cupLayer)
	return s.width/2 + dx, s.height*cupCenterRatio + dy
}

// insideCup 指针是否位于咖啡杯矩形内；图片加载前整个视口都算在内
func (s *OracleScene) insideCup(x, y float64) bool {
	if s.cupSource == nil {
		return true
	}
	return s.CupRect().Contains(x, y)
}

// steamSource 蒸汽从杯口升起
func (s *OracleScene) steamSource() (x, y, width float64) {
	r := s.CupRect()
	if r.Width <= 0 {
		return s.width / 2, s.height * 0.4, 80
	}
	return r.X + r.Width*0.45, r.Y + r.Height*0.25, r.Width * 0.5
}

// Update 实现 game.Scene
func (s *OracleScene) Update(deltaTime float64) {
	s.receiveCup()

	s.handlePointer(s.poller.Pointer(s.insideCup))
	s.handleKeys(s.poller.Keys())
	s.advance(deltaTime)

	if s.interactive {
		ebiten.SetCursorShape(ebiten.CursorShapePointer)
	} else {
		ebiten.SetCursorShape(ebiten.CursorShapeDefault)
	}
}

// handlePointer 把本帧指针状态分发给视差和门控
func (s *OracleScene) handlePointer(snap input.PointerSnapshot) {
	s.parallax.SetPointer(snap.X, snap.Y)

	for _, ev := range s.pointer.Update(snap) {
		switch ev.Kind {
		case input.EventMove:
			s.interactive = s.gate.PointerMove(ev.X, ev.Y)
		case input.EventLeave:
			s.gate.PointerLeave()
			s.interactive = false
		case input.EventDown:
			s.gate.PointerDown(ev.X, ev.Y)
		case input.EventUp:
			s.gate.PointerUp(ev.X, ev.Y)
		case input.EventClick:
			s.gate.Click(ev.X, ev.Y)
		}
	}
}

func (s *OracleScene) handleKeys(keys []string) {
	for _, k := range keys {
		s.gate.KeyDown(k)
	}
}

// advance 推进时钟并更新所有逐帧动画
func (s *OracleScene) advance(deltaTime float64) {
	dt := time.Duration(deltaTime * float64(time.Second))

	s.scheduler.Advance(dt)
	s.parallax.Update()
	s.celebration.Update(dt)
	s.particles.Update(deltaTime)

	if s.pulse != nil {
		scale, done := s.pulse.Update(float32(deltaTime))
		s.pulseScale = float64(scale)
		if done {
			s.pulse = nil
			s.pulseScale = 1
		}
	}

	if s.holdAnimating {
		s.holdElapsed += dt
	}

	state := s.sequencer.State()
	s.answerAlpha = fadeToward(s.answerAlpha, state.Visible, deltaTime)
	s.promptAlpha = fadeToward(s.promptAlpha, state.PromptVisible, deltaTime)

	if s.ultra {
		s.ultraTime += deltaTime
	}
}

// fadeToward 以固定速度把 alpha 推向 0 或 1
func fadeToward(alpha float64, visible bool, deltaTime float64) float64 {
	step := deltaTime / textFadeSeconds
	if visible {
		alpha += step
		if alpha > 1 {
			alpha = 1
		}
	} else {
		alpha -= step
		if alpha < 0 {
			alpha = 0
		}
	}
	return alpha
}

// Gate 返回输入门控（只读用途）
func (s *OracleScene) Gate() *input.Gate {
	return s.gate
}

// Sequencer 返回答案序列（只读用途）
func (s *OracleScene) Sequencer() *answer.Sequencer {
	return s.sequencer
}

// Celebration 返回庆祝触发器（只读用途）
func (s *OracleScene) Celebration() *celebration.Trigger {
	return s.celebration
}

// Count 返回当前显示的计数
func (s *OracleScene) Count() int {
	return s.displayCount
}
