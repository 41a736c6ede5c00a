// Package hittest 提供基于像素透明度的点击检测
//
// 图片解码完成后构建一次只读的 AlphaMap，之后每次查询都根据当前的屏幕几何
// 把指针坐标映射到像素坐标，再判断该像素是否不透明。
package hittest

import (
	"image"
)

// OpaqueAlphaThreshold 不透明判定阈值（0-255）
// alpha >= 10 视为落在图片主体上
const OpaqueAlphaThreshold = 10

// AlphaMap 图片的 alpha 通道快照
//
// 创建后只读；图片重新加载时整体替换，而不是原地修改。
type AlphaMap struct {
	width  int
	height int
	alpha  []uint8
}

// NewAlphaMap 从已解码的图片构建 alpha 快照
//
// 参数：
//   - img: 已解码的图片，nil 返回 nil
//
// 返回：
//   - *AlphaMap: 与图片同尺寸的 alpha 快照
func NewAlphaMap(img image.Image) *AlphaMap {
	if img == nil {
		return nil
	}

	bounds := img.Bounds()
	m := &AlphaMap{
		width:  bounds.Dx(),
		height: bounds.Dy(),
		alpha:  make([]uint8, bounds.Dx()*bounds.Dy()),
	}

	// NRGBA 是 PNG 解码最常见的格式，直接读取 Pix 避免逐像素颜色转换
	if nrgba, ok := img.(*image.NRGBA); ok {
		for y := 0; y < m.height; y++ {
			row := nrgba.Pix[y*nrgba.Stride:]
			for x := 0; x < m.width; x++ {
				m.alpha[y*m.width+x] = row[x*4+3]
			}
		}
		return m
	}

	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			_, _, _, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			m.alpha[y*m.width+x] = uint8(a >> 8)
		}
	}
	return m
}

// Width 返回像素宽度
func (m *AlphaMap) Width() int { return m.width }

// Height 返回像素高度
func (m *AlphaMap) Height() int { return m.height }

// At 返回像素 alpha 值，越界返回 0
func (m *AlphaMap) At(x, y int) uint8 {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return 0
	}
	return m.alpha[y*m.width+x]
}
