package scenes

import (
	"github.com/decker502/coffee-oracle/pkg/game"
)

// Scene is a type alias for game.Scene.
// All scene implementations should implement the game.Scene interface.
type Scene = game.Scene

// 编译期检查
var (
	_ game.Scene     = (*OracleScene)(nil)
	_ game.Resizable = (*OracleScene)(nil)
)
