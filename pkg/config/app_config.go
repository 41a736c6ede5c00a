package config

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// AppConfig 应用配置
//
// 配置文件位置: data/config.yaml（嵌入到二进制中，可用 -config 覆盖）
// 所有时间字段单位为毫秒。
type AppConfig struct {
	Window      WindowConfig      `yaml:"window"`
	Storage     StorageConfig     `yaml:"storage"`
	Cup         CupConfig         `yaml:"cup"`
	Hold        HoldConfig        `yaml:"hold"`
	Answer      AnswerConfig      `yaml:"answer"`
	Celebration CelebrationConfig `yaml:"celebration"`
	Parallax    ParallaxConfig    `yaml:"parallax"`
	Keys        KeysConfig        `yaml:"keys"`
	Audio       AudioConfig       `yaml:"audio"`
}

// WindowConfig 窗口配置
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// StorageConfig 持久化配置
type StorageConfig struct {
	// AppName gdata 应用名，决定存档目录
	AppName string `yaml:"appName"`
}

// CupConfig 咖啡杯图片配置
type CupConfig struct {
	Image       string  `yaml:"image"`       // 图片路径，为空时使用程序生成的咖啡杯
	HeightRatio float64 `yaml:"heightRatio"` // 显示高度占视口高度的比例
	Speed       float64 `yaml:"speed"`       // 视差速度
}

// HoldConfig 长按配置
type HoldConfig struct {
	ProgressDelayMs int `yaml:"progressDelayMs"` // 按下多久后显示进度
	TriggerDelayMs  int `yaml:"triggerDelayMs"`  // 按下多久后触发长按动画
	AnimationMs     int `yaml:"animationMs"`     // 长按动画时长
	GraceMs         int `yaml:"graceMs"`         // 动画结束后继续屏蔽点击的时间
}

// AnswerConfig 答案显示配置
type AnswerConfig struct {
	Prompt        string              `yaml:"prompt"`
	SwapDelayMs   int                 `yaml:"swapDelayMs"`   // 隐藏旧答案到显示新答案的间隔
	VisibleMs     int                 `yaml:"visibleMs"`     // 答案显示时长
	PromptDelayMs int                 `yaml:"promptDelayMs"` // 答案隐藏后恢复提问的间隔
	PulseMs       int                 `yaml:"pulseMs"`
	PulseScale    float64             `yaml:"pulseScale"`
	UltraText     string              `yaml:"ultraText"`
	Responses     map[string][]string `yaml:"responses"` // 按时段（morning/afternoon/evening/night）分组
}

// CelebrationConfig 第十次点击庆祝配置
type CelebrationConfig struct {
	Threshold       int     `yaml:"threshold"`
	Satellites      int     `yaml:"satellites"`
	DurationMs      int     `yaml:"durationMs"`
	Rotations       float64 `yaml:"rotations"`
	RadiusRatio     float64 `yaml:"radiusRatio"` // 轨道半径占视口短边的比例
	SprayCount      int     `yaml:"sprayCount"`
	SprayIntervalMs int     `yaml:"sprayIntervalMs"`
	TrailChance     float64 `yaml:"trailChance"` // 每帧每个卫星发射粒子的概率
}

// ParallaxConfig 视差配置
type ParallaxConfig struct {
	Smoothing    float64       `yaml:"smoothing"`    // 每帧向目标偏移靠近的比例
	Distance     float64       `yaml:"distance"`     // 速度为 1 时的最大位移（像素）
	MobileWidth  int           `yaml:"mobileWidth"`  // 小于等于该宽度时视为移动端
	MobileFactor float64       `yaml:"mobileFactor"` // 移动端速度系数
	Layers       []LayerConfig `yaml:"layers"`
}

// LayerConfig 背景视差层
type LayerConfig struct {
	Speed  float64 `yaml:"speed"`
	Radius float64 `yaml:"radius"`
	X      float64 `yaml:"x"` // 相对视口宽度的位置 0~1
	Y      float64 `yaml:"y"` // 相对视口高度的位置 0~1
	Color  string  `yaml:"color"`
}

// KeysConfig 按键配置（使用按键名，如 "ArrowUp"、"a"、" "）
type KeysConfig struct {
	Activate string   `yaml:"activate"`
	Reset    []string `yaml:"reset"`
	Konami   []string `yaml:"konami"`
}

// AudioConfig 音效配置
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // 0.0 ~ 1.0
}

// Default 返回默认配置，与 data/config.yaml 保持一致
func Default() *AppConfig {
	return &AppConfig{
		Window:  WindowConfig{Width: 960, Height: 720, Title: "Coffee Oracle"},
		Storage: StorageConfig{AppName: "coffee_oracle"},
		Cup:     CupConfig{HeightRatio: 0.55, Speed: 0.6},
		Hold: HoldConfig{
			ProgressDelayMs: 1000,
			TriggerDelayMs:  3000,
			AnimationMs:     2000,
			GraceMs:         100,
		},
		Answer: AnswerConfig{
			Prompt:        "Should I have another coffee?",
			SwapDelayMs:   300,
			VisibleMs:     5000,
			PromptDelayMs: 300,
			PulseMs:       200,
			PulseScale:    0.95,
			UltraText:     "ULTRA MEGA COFFEE MODE ACTIVATED!",
			Responses: map[string][]string{
				"morning":   {"YES"},
				"afternoon": {"YES"},
				"evening":   {"YES"},
				"night":     {"YES"},
			},
		},
		Celebration: CelebrationConfig{
			Threshold:       10,
			Satellites:      5,
			DurationMs:      3000,
			Rotations:       2,
			RadiusRatio:     0.3,
			SprayCount:      30,
			SprayIntervalMs: 40,
			TrailChance:     0.15,
		},
		Parallax: ParallaxConfig{
			Smoothing:    0.1,
			Distance:     50,
			MobileWidth:  768,
			MobileFactor: 0.3,
			Layers: []LayerConfig{
				{Speed: 0.2, Radius: 260, X: 0.25, Y: 0.3, Color: "#3b2418"},
				{Speed: 0.4, Radius: 180, X: 0.8, Y: 0.25, Color: "#5a3a26"},
				{Speed: 0.8, Radius: 120, X: 0.7, Y: 0.8, Color: "#7a5236"},
			},
		},
		Keys: KeysConfig{
			Activate: " ",
			Reset:    []string{"r", "R"},
			Konami: []string{
				"ArrowUp", "ArrowUp", "ArrowDown", "ArrowDown",
				"ArrowLeft", "ArrowRight", "ArrowLeft", "ArrowRight",
				"b", "a",
			},
		},
		Audio: AudioConfig{Enabled: true, Volume: 0.5},
	}
}

// LoadAppConfig 从文件加载应用配置
//
// 参数:
//   - path: 配置文件路径
//
// 返回:
//   - *AppConfig: 加载成功后的配置（缺省字段使用默认值）
//   - error: 读取、解析或验证失败时返回错误
func LoadAppConfig(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read app config: %w", err)
	}
	return ParseAppConfig(data)
}

// ParseAppConfig 解析 YAML 配置数据
//
// 解析结果覆盖在默认配置之上，未出现的字段保持默认值。
func ParseAppConfig(data []byte) (*AppConfig, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse app config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid app config: %w", err)
	}
	return cfg, nil
}

// Validate 验证配置有效性
func (c *AppConfig) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive: %dx%d", c.Window.Width, c.Window.Height)
	}

	if c.Hold.ProgressDelayMs < 0 || c.Hold.TriggerDelayMs <= 0 || c.Hold.AnimationMs <= 0 || c.Hold.GraceMs < 0 {
		return fmt.Errorf("hold timings must be positive")
	}
	if c.Hold.ProgressDelayMs >= c.Hold.TriggerDelayMs {
		return fmt.Errorf("hold progress delay (%d) must be shorter than trigger delay (%d)",
			c.Hold.ProgressDelayMs, c.Hold.TriggerDelayMs)
	}

	if c.Answer.VisibleMs <= 0 {
		return fmt.Errorf("answer visibleMs must be positive: %d", c.Answer.VisibleMs)
	}
	for _, bucket := range []string{"morning", "afternoon", "evening", "night"} {
		if len(c.Answer.Responses[bucket]) == 0 {
			return fmt.Errorf("no responses for time bucket %q", bucket)
		}
	}

	if c.Celebration.Threshold <= 0 {
		return fmt.Errorf("celebration threshold must be positive: %d", c.Celebration.Threshold)
	}
	if c.Celebration.DurationMs <= 0 || c.Celebration.Satellites < 0 {
		return fmt.Errorf("invalid celebration orbit: %d satellites over %dms",
			c.Celebration.Satellites, c.Celebration.DurationMs)
	}
	if c.Celebration.TrailChance < 0 || c.Celebration.TrailChance > 1 {
		return fmt.Errorf("celebration trailChance must be within [0,1]: %.2f", c.Celebration.TrailChance)
	}

	for i, layer := range c.Parallax.Layers {
		if _, err := ParseHexColor(layer.Color); err != nil {
			return fmt.Errorf("parallax layer %d: %w", i, err)
		}
	}

	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("audio volume must be within [0,1]: %.2f", c.Audio.Volume)
	}

	if len(c.Keys.Konami) == 0 {
		return fmt.Errorf("konami sequence must not be empty")
	}
	return nil
}

// Ms 将毫秒配置值转换为 time.Duration
func Ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

// ParseHexColor 解析 "#rrggbb" 或 "#rrggbbaa" 格式的颜色
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}

	if len(hex) == 6 {
		return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
