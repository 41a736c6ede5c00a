package hittest

import (
	"image"
	"math"
)

// Rect 图片在屏幕上的显示区域（与指针事件同一坐标系）
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Contains 判断点是否落在矩形内（左闭右开）
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// GeometryFunc 返回图片当前的屏幕显示区域
// 布局可能在两次事件之间变化，因此每次查询都重新获取，不做缓存
type GeometryFunc func() Rect

// Tester 像素透明度点击检测器
type Tester struct {
	alphaMap *AlphaMap
	geometry GeometryFunc
}

// NewTester 创建检测器
//
// 参数：
//   - geometry: 获取图片当前屏幕区域的函数
func NewTester(geometry GeometryFunc) *Tester {
	return &Tester{geometry: geometry}
}

// Load 在图片解码完成后构建 alpha 快照，重新加载时替换旧快照
func (t *Tester) Load(img image.Image) {
	t.alphaMap = NewAlphaMap(img)
}

// Loaded 返回 alpha 快照是否可用
func (t *Tester) Loaded() bool {
	return t.alphaMap != nil
}

// AlphaMap 返回当前 alpha 快照，未加载时为 nil
func (t *Tester) AlphaMap() *AlphaMap {
	return t.alphaMap
}

// IsOpaque 判断屏幕坐标是否落在图片的不透明像素上
//
// 规则：
//   - 快照未加载：返回 true（加载期间不阻塞交互）
//   - 映射后落在 [0, 像素尺寸) 之外：返回 false
//   - 否则取向下取整后的像素，alpha >= OpaqueAlphaThreshold 为不透明
func (t *Tester) IsOpaque(screenX, screenY float64) bool {
	m := t.alphaMap
	if m == nil {
		return true
	}
	if t.geometry == nil || m.width == 0 || m.height == 0 {
		return false
	}

	rect := t.geometry()
	if rect.Width <= 0 || rect.Height <= 0 {
		return false
	}

	rasterX := (screenX - rect.X) * (float64(m.width) / rect.Width)
	rasterY := (screenY - rect.Y) * (float64(m.height) / rect.Height)

	if rasterX < 0 || rasterX >= float64(m.width) || rasterY < 0 || rasterY >= float64(m.height) {
		return false
	}

	return m.At(int(math.Floor(rasterX)), int(math.Floor(rasterY))) >= OpaqueAlphaThreshold
}
