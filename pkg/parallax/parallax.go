// Package parallax 根据指针位置平滑地移动背景层和咖啡杯
package parallax

// PointerOffset 归一化的指针偏移，单一所有者，其他组件只读
//
// 目标偏移范围约为 [-0.5, 0.5]（视口中心为 0），当前偏移每帧向目标靠近。
type PointerOffset struct {
	TargetX, TargetY   float64
	CurrentX, CurrentY float64
}

// Layer 视差层
type Layer struct {
	Speed float64

	// ReduceOnMobile 为 true 时在移动端按 MobileFactor 降低速度（背景层）
	ReduceOnMobile bool
}

// Params 视差参数
type Params struct {
	Smoothing    float64 // 每帧靠近目标的比例
	Distance     float64 // 速度为 1 时的最大位移（像素）
	MobileWidth  float64 // 视口宽度小于等于该值时降低视差
	MobileFactor float64 // 移动端速度系数

	// Mobile 为 true 时无论视口宽度都按移动端降低视差
	Mobile bool
}

// DefaultParams 返回默认参数
func DefaultParams() Params {
	return Params{
		Smoothing:    0.1,
		Distance:     50,
		MobileWidth:  768,
		MobileFactor: 0.3,
	}
}

// Driver 视差驱动器
type Driver struct {
	params    Params
	offset    *PointerOffset
	viewportW float64
	viewportH float64
}

// NewDriver 创建视差驱动器
func NewDriver(params Params) *Driver {
	return &Driver{
		params: params,
		offset: &PointerOffset{},
	}
}

// Offset 返回共享的指针偏移
func (d *Driver) Offset() *PointerOffset {
	return d.offset
}

// SetViewport 更新视口尺寸
func (d *Driver) SetViewport(w, h float64) {
	d.viewportW, d.viewportH = w, h
}

// SetPointer 根据指针屏幕坐标更新目标偏移
func (d *Driver) SetPointer(x, y float64) {
	if d.viewportW <= 0 || d.viewportH <= 0 {
		return
	}
	d.offset.TargetX = (x - d.viewportW/2) / d.viewportW
	d.offset.TargetY = (y - d.viewportH/2) / d.viewportH
}

// Update 每帧调用一次，当前偏移向目标插值
func (d *Driver) Update() {
	d.offset.CurrentX += (d.offset.TargetX - d.offset.CurrentX) * d.params.Smoothing
	d.offset.CurrentY += (d.offset.TargetY - d.offset.CurrentY) * d.params.Smoothing
}

// mobile 返回是否按移动端降低视差
func (d *Driver) mobile() bool {
	return d.params.Mobile || (d.viewportW > 0 && d.viewportW <= d.params.MobileWidth)
}

// Translate 返回给定速度的层本帧的像素位移
func (d *Driver) Translate(l Layer) (dx, dy float64) {
	speed := l.Speed
	if l.ReduceOnMobile && d.mobile() {
		speed *= d.params.MobileFactor
	}
	return d.offset.CurrentX * speed * d.params.Distance, d.offset.CurrentY * speed * d.params.Distance
}
