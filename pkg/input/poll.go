package input

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Poller 轮询鼠标和触摸输入
//
// 同时支持鼠标和触摸，优先检测触摸。触摸释放的那一帧已经取不到触摸位置，
// 因此保存最后一次触摸位置用于生成 up/click。
type Poller struct {
	lastTouchX, lastTouchY int
	touching               bool
}

// NewPoller 创建输入轮询器
func NewPoller() *Poller {
	return &Poller{}
}

// Pointer 返回本帧指针状态，inside 用于判断坐标是否在图片区域内
func (p *Poller) Pointer(inside func(x, y float64) bool) PointerSnapshot {
	// 首先检查触摸输入（移动设备）
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		p.lastTouchX, p.lastTouchY = ebiten.TouchPosition(touchIDs[0])
		p.touching = true
		return snapshot(true, p.lastTouchX, p.lastTouchY, inside)
	}

	// 触摸刚刚释放
	if p.touching {
		p.touching = false
		return snapshot(false, p.lastTouchX, p.lastTouchY, inside)
	}

	// 其次检查鼠标输入（桌面设备）
	x, y := ebiten.CursorPosition()
	return snapshot(ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft), x, y, inside)
}

func snapshot(pressed bool, x, y int, inside func(x, y float64) bool) PointerSnapshot {
	fx, fy := float64(x), float64(y)
	return PointerSnapshot{
		Pressed: pressed,
		X:       fx,
		Y:       fy,
		Inside:  inside(fx, fy),
	}
}

// Keys 返回本帧刚按下的按键名
func (p *Poller) Keys() []string {
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)

	var names []string
	for _, k := range inpututil.AppendJustPressedKeys(nil) {
		if name := KeyName(k, shift); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// KeyName 把 Ebitengine 按键转换为浏览器风格的按键名
//
// 字母键按 Shift 状态区分大小写，空格键为 " "，方向键为 "ArrowUp" 等。
// 修饰键本身返回空字符串。
func KeyName(k ebiten.Key, shift bool) string {
	switch k {
	case ebiten.KeySpace:
		return " "
	case ebiten.KeyShift, ebiten.KeyShiftLeft, ebiten.KeyShiftRight,
		ebiten.KeyControl, ebiten.KeyControlLeft, ebiten.KeyControlRight,
		ebiten.KeyAlt, ebiten.KeyAltLeft, ebiten.KeyAltRight,
		ebiten.KeyMeta, ebiten.KeyMetaLeft, ebiten.KeyMetaRight:
		return ""
	}

	name := k.String()
	if len(name) == 1 && name[0] >= 'A' && name[0] <= 'Z' {
		if shift {
			return name
		}
		return strings.ToLower(name)
	}
	return name
}
