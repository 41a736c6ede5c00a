package game

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// FontStyle 内置字体样式
type FontStyle int

const (
	FontRegular FontStyle = iota
	FontBold
)

// FontCache 缓存内置 Go 字体的字形源和按字号创建的字体
//
// 字体数据来自 golang.org/x/image/font/gofont，无需外部字体文件。
type FontCache struct {
	sources map[FontStyle]*text.GoTextFaceSource
	faces   map[string]*text.GoTextFace
}

// NewFontCache 解析内置字体
//
// 返回:
//   - *FontCache: 字体缓存
//   - error: 字体数据无法解析时返回错误
func NewFontCache() (*FontCache, error) {
	fonts := map[FontStyle][]byte{
		FontRegular: goregular.TTF,
		FontBold:    gobold.TTF,
	}

	c := &FontCache{
		sources: make(map[FontStyle]*text.GoTextFaceSource, len(fonts)),
		faces:   make(map[string]*text.GoTextFace),
	}
	for style, data := range fonts {
		source, err := text.NewGoTextFaceSource(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to create font source %d: %w", style, err)
		}
		c.sources[style] = source
	}
	return c, nil
}

// Face 返回指定样式和字号的字体（同一组合只创建一次）
func (c *FontCache) Face(style FontStyle, size float64) *text.GoTextFace {
	cacheKey := fmt.Sprintf("%d:%.1f", style, size)
	if face, exists := c.faces[cacheKey]; exists {
		return face
	}

	face := &text.GoTextFace{
		Source:    c.sources[style],
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	c.faces[cacheKey] = face
	return face
}
