package input

// HoldAnimation 长按触发的动画种类（封闭集合）
type HoldAnimation int

const (
	HoldSpin HoldAnimation = iota
	HoldShake
	HoldBounce
	HoldFlip
)

// HoldAnimations 所有长按动画，随机选择时按下标均匀抽取
var HoldAnimations = []HoldAnimation{HoldSpin, HoldShake, HoldBounce, HoldFlip}

// String 返回动画名
func (a HoldAnimation) String() string {
	switch a {
	case HoldSpin:
		return "spin"
	case HoldShake:
		return "shake"
	case HoldBounce:
		return "bounce"
	case HoldFlip:
		return "flip"
	default:
		return "unknown"
	}
}
