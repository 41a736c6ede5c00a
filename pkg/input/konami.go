package input

// KonamiTracker 记录最近按下的按键并与秘籍序列比对
//
// 只保留最近 len(sequence) 个按键，顺序敏感。
type KonamiTracker struct {
	sequence []string
	history  []string
}

// NewKonamiTracker 创建秘籍检测器
func NewKonamiTracker(sequence []string) *KonamiTracker {
	seq := make([]string, len(sequence))
	copy(seq, sequence)
	return &KonamiTracker{
		sequence: seq,
		history:  make([]string, 0, len(seq)),
	}
}

// Push 记录按键，返回最近的按键是否恰好组成秘籍序列
func (k *KonamiTracker) Push(key string) bool {
	if len(k.sequence) == 0 {
		return false
	}

	if len(k.history) == len(k.sequence) {
		copy(k.history, k.history[1:])
		k.history = k.history[:len(k.history)-1]
	}
	k.history = append(k.history, key)

	if len(k.history) != len(k.sequence) {
		return false
	}
	for i := range k.sequence {
		if k.history[i] != k.sequence[i] {
			return false
		}
	}
	return true
}
