package game

import (
	"encoding/binary"
	"testing"
	"time"
)

// TestSynthesizeTones 测试 PCM 长度和起止静音
func TestSynthesizeTones(t *testing.T) {
	tones := []Tone{
		{Freq: 440, Duration: 100 * time.Millisecond},
		{Freq: 0, Duration: 50 * time.Millisecond},
	}

	pcm := SynthesizeTones(tones, SampleRate)

	wantSamples := SampleRate/10 + SampleRate/20
	if len(pcm) != wantSamples*4 {
		t.Fatalf("Expected %d bytes, got %d", wantSamples*4, len(pcm))
	}

	sample := func(i int) int16 {
		return int16(binary.LittleEndian.Uint16(pcm[i*4:]))
	}

	if sample(0) != 0 {
		t.Errorf("Expected silent first sample, got %d", sample(0))
	}

	// 休止部分应全部为 0
	for i := SampleRate / 10; i < wantSamples; i++ {
		if sample(i) != 0 {
			t.Fatalf("Expected silence at sample %d, got %d", i, sample(i))
		}
	}

	// 音符中部应有声音，且左右声道一致
	peak := int16(0)
	for i := 0; i < SampleRate/10; i++ {
		left := sample(i)
		right := int16(binary.LittleEndian.Uint16(pcm[i*4+2:]))
		if left != right {
			t.Fatalf("Expected identical channels at sample %d", i)
		}
		if left > peak {
			peak = left
		}
	}
	if peak == 0 {
		t.Error("Expected audible samples in the tone")
	}
}

// TestSoundTonesDefined 所有音效都有音符
func TestSoundTonesDefined(t *testing.T) {
	for _, id := range []SoundID{SoundReveal, SoundHold, SoundCelebrate, SoundUltra} {
		if len(soundTones[id]) == 0 {
			t.Errorf("Expected tones for sound %s", id)
		}
	}
}

// TestAudioManagerWithoutContext 静音模式下不播放
func TestAudioManagerWithoutContext(t *testing.T) {
	am := NewAudioManager(nil, 1.5)

	if am.GetSoundVolume() != 1 {
		t.Errorf("Expected volume clamped to 1, got %.2f", am.GetSoundVolume())
	}
	if am.PlaySound(SoundReveal) {
		t.Error("Expected PlaySound to fail without audio context")
	}

	am.SetSoundVolume(-1)
	if am.GetSoundVolume() != 0 {
		t.Errorf("Expected volume clamped to 0, got %.2f", am.GetSoundVolume())
	}

	var nilManager *AudioManager
	if nilManager.PlaySound(SoundReveal) {
		t.Error("Expected nil manager to be silent")
	}
}
