package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a screen of the application with its own update and
// rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	// screen is the target image where the scene should be drawn.
	Draw(screen *ebiten.Image)
}

// Resizable 是一个可选接口，用于接收视口尺寸变化
//
// 实现此接口的场景会在 Layout 报告新的窗口尺寸时被调用 Resize()，
// 以便重新计算布局和粒子画布大小。
type Resizable interface {
	// Resize 在视口尺寸变化时调用
	// 参数 width/height 为新的逻辑屏幕尺寸（像素）
	Resize(width, height int)
}
