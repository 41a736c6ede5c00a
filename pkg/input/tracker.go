package input

// EventKind 指针事件类型
type EventKind int

const (
	EventMove EventKind = iota
	EventLeave
	EventDown
	EventUp
	EventClick
)

// String 返回事件名
func (k EventKind) String() string {
	switch k {
	case EventMove:
		return "move"
	case EventLeave:
		return "leave"
	case EventDown:
		return "down"
	case EventUp:
		return "up"
	case EventClick:
		return "click"
	default:
		return "unknown"
	}
}

// PointerEvent 派生出的指针事件
type PointerEvent struct {
	Kind EventKind
	X, Y float64
}

// PointerSnapshot 单帧轮询到的指针状态
type PointerSnapshot struct {
	Pressed bool
	X, Y    float64

	// Inside 指针是否位于图片的显示区域内
	Inside bool
}

// PointerTracker 把逐帧轮询的指针状态转换为 DOM 风格的事件流
//
// 规则：
//   - 区域内移动产生 move，离开区域产生 leave
//   - 区域内由松开变为按下产生 down
//   - 区域内由按下变为松开产生 up；若按下时也在区域内，再产生 click
type PointerTracker struct {
	seen          bool
	last          PointerSnapshot
	pressedInside bool
}

// NewPointerTracker 创建指针事件派生器
func NewPointerTracker() *PointerTracker {
	return &PointerTracker{}
}

// Update 输入本帧快照，返回派生事件（按 move/leave、down、up、click 顺序）
func (t *PointerTracker) Update(s PointerSnapshot) []PointerEvent {
	var events []PointerEvent

	moved := !t.seen || s.X != t.last.X || s.Y != t.last.Y
	if s.Inside && moved {
		events = append(events, PointerEvent{Kind: EventMove, X: s.X, Y: s.Y})
	}
	if t.seen && t.last.Inside && !s.Inside {
		events = append(events, PointerEvent{Kind: EventLeave, X: s.X, Y: s.Y})
	}

	wasPressed := t.seen && t.last.Pressed
	if s.Pressed && !wasPressed {
		t.pressedInside = s.Inside
		if s.Inside {
			events = append(events, PointerEvent{Kind: EventDown, X: s.X, Y: s.Y})
		}
	}
	if !s.Pressed && wasPressed {
		if s.Inside {
			events = append(events, PointerEvent{Kind: EventUp, X: s.X, Y: s.Y})
			if t.pressedInside {
				events = append(events, PointerEvent{Kind: EventClick, X: s.X, Y: s.Y})
			}
		}
		t.pressedInside = false
	}

	t.seen = true
	t.last = s
	return events
}
