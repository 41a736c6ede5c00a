package scenes

import (
	"log"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/decker502/coffee-oracle/pkg/config"
	"github.com/decker502/coffee-oracle/pkg/game"
	"github.com/decker502/coffee-oracle/pkg/input"
)

// SoundPlayer 音效播放能力
type SoundPlayer interface {
	PlaySound(id game.SoundID) bool
}

// SetSounds 设置音效播放器，nil 表示静音
func (s *OracleScene) SetSounds(p SoundPlayer) {
	s.sounds = p
}

func (s *OracleScene) playSound(id game.SoundID) {
	if s.sounds != nil {
		s.sounds.PlaySound(id)
	}
}

// 以下方法实现 input.Actions

// Reveal 揭示新答案并刷新计数显示
func (s *OracleScene) Reveal() {
	orbits := len(s.celebration.Sequences())
	s.sequencer.Reveal()
	s.displayCount = s.tracker.Count()

	s.playSound(game.SoundReveal)
	if len(s.celebration.Sequences()) > orbits {
		s.playSound(game.SoundCelebrate)
	}
}

// ResetCounter 重置计数和庆祝标记
func (s *OracleScene) ResetCounter() {
	s.sequencer.Reset()
	s.displayCount = s.tracker.Count()
	log.Printf("[OracleScene] Counter reset")
}

// ShowHoldProgress 显示或隐藏长按进度环
func (s *OracleScene) ShowHoldProgress(visible bool) {
	s.holdProgress = visible
}

// HideAnswer 长按动画期间隐藏所有文字
func (s *OracleScene) HideAnswer() {
	s.sequencer.Dismiss()
}

// StartHoldAnimation 开始播放长按动画
func (s *OracleScene) StartHoldAnimation(anim input.HoldAnimation, duration time.Duration) {
	s.holdAnim = anim
	s.holdAnimating = true
	s.holdElapsed = 0
	s.holdDuration = duration
	s.playSound(game.SoundHold)
}

// FinishHoldAnimation 长按动画结束，恢复文字
func (s *OracleScene) FinishHoldAnimation() {
	s.holdAnimating = false
	s.holdElapsed = 0

	if s.ultra {
		s.sequencer.ShowStanding(s.cfg.Answer.UltraText)
		return
	}
	s.sequencer.RestorePrompt()
}

// EnterUltraMode 进入秘籍模式：常驻文字和彩虹背景
func (s *OracleScene) EnterUltraMode() {
	if s.ultra {
		return
	}
	s.ultra = true
	s.ultraTime = 0
	s.sequencer.ShowStanding(s.cfg.Answer.UltraText)
	s.playSound(game.SoundUltra)
	log.Printf("[OracleScene] Ultra mode activated")
}

// 以下方法实现 answer.Effects

// Pulse 咖啡杯缩小后弹回
func (s *OracleScene) Pulse() {
	if s.cfg.Answer.PulseMs <= 0 {
		return
	}
	duration := float32(config.Ms(s.cfg.Answer.PulseMs).Seconds())
	s.pulse = gween.New(float32(s.cfg.Answer.PulseScale), 1, duration, ease.OutQuad)
	s.pulseScale = s.cfg.Answer.PulseScale
}

// SpawnRevealParticles 在咖啡杯中心喷出粒子
func (s *OracleScene) SpawnRevealParticles() {
	x, y := s.CupCenter()
	s.particles.Burst(x, y, revealBurst)
}

// CupCenter 返回咖啡杯当前的屏幕中心
func (s *OracleScene) CupCenter() (x, y float64) {
	return s.cupCenter()
}
