// Package answer 管理答案文字的揭示与自动隐藏
package answer

import "time"

// Bucket 粗粒度时段
type Bucket int

const (
	// Night [22, 5)
	Night Bucket = iota
	// Morning [5, 12)
	Morning
	// Afternoon [12, 17)
	Afternoon
	// Evening [17, 22)
	Evening
)

// String 返回配置文件中使用的时段名
func (b Bucket) String() string {
	switch b {
	case Morning:
		return "morning"
	case Afternoon:
		return "afternoon"
	case Evening:
		return "evening"
	default:
		return "night"
	}
}

// BucketAt 根据本地时间的小时数返回时段
func BucketAt(t time.Time) Bucket {
	h := t.Hour()
	switch {
	case h >= 5 && h < 12:
		return Morning
	case h >= 12 && h < 17:
		return Afternoon
	case h >= 17 && h < 22:
		return Evening
	default:
		return Night
	}
}
