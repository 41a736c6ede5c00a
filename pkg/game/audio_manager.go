package game

import (
	"encoding/binary"
	"log"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// SampleRate 音频上下文采样率
const SampleRate = 48000

// SoundID 音效标识
type SoundID string

const (
	// SoundReveal 揭示答案
	SoundReveal SoundID = "reveal"
	// SoundHold 长按动画开始
	SoundHold SoundID = "hold"
	// SoundCelebrate 第十次点击庆祝
	SoundCelebrate SoundID = "celebrate"
	// SoundUltra 进入秘籍模式
	SoundUltra SoundID = "ultra"
)

// Tone 一个音符
type Tone struct {
	Freq     float64 // 频率（Hz），0 表示休止
	Duration time.Duration
}

// soundTones 每个音效的音符序列，播放时即时合成，无需音频文件
var soundTones = map[SoundID][]Tone{
	SoundReveal: {
		{Freq: 659.25, Duration: 90 * time.Millisecond},
		{Freq: 987.77, Duration: 160 * time.Millisecond},
	},
	SoundHold: {
		{Freq: 392.00, Duration: 120 * time.Millisecond},
		{Freq: 523.25, Duration: 120 * time.Millisecond},
		{Freq: 659.25, Duration: 200 * time.Millisecond},
	},
	SoundCelebrate: {
		{Freq: 523.25, Duration: 110 * time.Millisecond},
		{Freq: 659.25, Duration: 110 * time.Millisecond},
		{Freq: 783.99, Duration: 110 * time.Millisecond},
		{Freq: 1046.50, Duration: 320 * time.Millisecond},
	},
	SoundUltra: {
		{Freq: 523.25, Duration: 80 * time.Millisecond},
		{Freq: 0, Duration: 40 * time.Millisecond},
		{Freq: 523.25, Duration: 80 * time.Millisecond},
		{Freq: 1046.50, Duration: 400 * time.Millisecond},
	},
}

// AudioManager 音效管理器
// 职责：
//   - 按音效ID合成 PCM 并缓存播放器
//   - 统一应用启用开关和音量
//
// context 为 nil 时（音频不可用或已禁用）所有播放调用都返回 false。
type AudioManager struct {
	context      *audio.Context
	volume       float64
	soundPlayers map[SoundID]*audio.Player // 音效播放器缓存（音效ID -> 播放器）
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - context: 音频上下文，可为 nil（静音模式）
//   - volume: 音量值 (0.0 ~ 1.0)
//
// 返回：
//   - *AudioManager: 音频管理器实例
func NewAudioManager(context *audio.Context, volume float64) *AudioManager {
	return &AudioManager{
		context:      context,
		volume:       clampVolume(volume),
		soundPlayers: make(map[SoundID]*audio.Player),
	}
}

// PlaySound 播放音效（单次播放）
//
// 返回：
//   - bool: 是否成功播放
func (am *AudioManager) PlaySound(id SoundID) bool {
	if am == nil || am.context == nil {
		return false
	}

	player := am.getSoundPlayer(id)
	if player == nil {
		return false
	}

	player.SetVolume(am.volume)
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind sound %s: %v", id, err)
	}
	player.Play()
	return true
}

// SetSoundVolume 设置音效音量
// 此方法会影响后续播放的所有音效
//
// 参数：
//   - volume: 音量值 (0.0 ~ 1.0)
func (am *AudioManager) SetSoundVolume(volume float64) {
	am.volume = clampVolume(volume)
	for _, player := range am.soundPlayers {
		player.SetVolume(am.volume)
	}
}

// GetSoundVolume 获取当前音效音量
func (am *AudioManager) GetSoundVolume() float64 {
	return am.volume
}

// getSoundPlayer 获取或合成音效播放器
func (am *AudioManager) getSoundPlayer(id SoundID) *audio.Player {
	if player, exists := am.soundPlayers[id]; exists {
		return player
	}

	tones, ok := soundTones[id]
	if !ok {
		log.Printf("[AudioManager] Warning: Unknown sound %s", id)
		return nil
	}

	player := am.context.NewPlayerFromBytes(SynthesizeTones(tones, SampleRate))
	am.soundPlayers[id] = player
	return player
}

// SynthesizeTones 把音符序列合成为 16 位小端立体声 PCM
//
// 每个音符带 5ms 起音和 30% 的指数衰减，避免爆音。
func SynthesizeTones(tones []Tone, sampleRate int) []byte {
	total := 0
	for _, t := range tones {
		total += samplesFor(t.Duration, sampleRate)
	}

	buf := make([]byte, 0, total*4)
	attack := samplesFor(5*time.Millisecond, sampleRate)

	for _, t := range tones {
		n := samplesFor(t.Duration, sampleRate)
		for i := 0; i < n; i++ {
			var v float64
			if t.Freq > 0 {
				env := 1.0
				if i < attack {
					env = float64(i) / float64(attack)
				}
				// 尾部线性收到 0
				env *= 1 - float64(i)/float64(n)
				v = math.Sin(2*math.Pi*t.Freq*float64(i)/float64(sampleRate)) * env * 0.3
			}
			s := uint16(int16(v * math.MaxInt16))
			buf = binary.LittleEndian.AppendUint16(buf, s) // 左声道
			buf = binary.LittleEndian.AppendUint16(buf, s) // 右声道
		}
	}
	return buf
}

func samplesFor(d time.Duration, sampleRate int) int {
	return int(d.Seconds() * float64(sampleRate))
}

func clampVolume(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
