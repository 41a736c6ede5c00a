// Package particle implements the ambient steam and sparkle field drawn behind
// and around the cup. It is purely visual: nothing reads its state back.
package particle

import (
	"image/color"
	"math"
)

// Kind selects how a particle is drawn.
type Kind int

const (
	// KindBlob is a soft circular blob (steam, spray).
	KindBlob Kind = iota
	// KindStar is a 5-point golden sparkle.
	KindStar
)

// Particle is a single decaying visual element.
type Particle struct {
	Kind     Kind
	X, Y     float64
	VX, VY   float64
	Gravity  float64
	Size     float64
	Growth   float64 // size change per second
	Rotation float64
	Spin     float64 // radians per second
	Color    color.RGBA
	Glow     bool

	Life    float64 // seconds elapsed
	MaxLife float64 // seconds
}

// Alpha returns the remaining opacity, fading linearly over the lifetime.
func (p *Particle) Alpha() float64 {
	if p.MaxLife <= 0 {
		return 0
	}
	a := 1 - p.Life/p.MaxLife
	if a < 0 {
		return 0
	}
	return a
}

// Rand is the entropy source used for emission jitter.
type Rand interface {
	Float64() float64
}

// SourceFunc reports where steam rises from: the top center of the cup and the
// width of the rim.
type SourceFunc func() (x, y, width float64)

var (
	steamColor   = color.RGBA{R: 245, G: 240, B: 235, A: 255}
	sparkleColor = color.RGBA{R: 255, G: 215, B: 0, A: 255}
	sprayColors  = []color.RGBA{
		{R: 255, G: 215, B: 0, A: 255},
		{R: 210, G: 150, B: 90, A: 255},
		{R: 255, G: 245, B: 220, A: 255},
	}
)

// Field owns every live particle and the continuous steam emitter.
type Field struct {
	rng       Rand
	source    SourceFunc
	particles []Particle

	width, height float64

	// SteamRate is the number of steam blobs emitted per second.
	SteamRate float64

	// MaxParticles caps the field; new particles are dropped beyond it.
	MaxParticles int

	steamAccum float64
}

// NewField creates an empty field. source may be nil to disable steam.
func NewField(rng Rand, source SourceFunc) *Field {
	return &Field{
		rng:          rng,
		source:       source,
		SteamRate:    12,
		MaxParticles: 600,
	}
}

// Resize matches the field to the rendering surface and drops particles that
// are no longer on it.
func (f *Field) Resize(w, h float64) {
	f.width, f.height = w, h
	f.cull()
}

// Size returns the current surface size.
func (f *Field) Size() (w, h float64) {
	return f.width, f.height
}

// Particles returns the live particles. The slice is reused between frames.
func (f *Field) Particles() []Particle {
	return f.particles
}

// Len returns the number of live particles.
func (f *Field) Len() int {
	return len(f.particles)
}

// Update advances every particle by dt seconds and emits steam.
func (f *Field) Update(dt float64) {
	f.emitSteam(dt)

	alive := f.particles[:0]
	for _, p := range f.particles {
		p.Life += dt
		if p.Life >= p.MaxLife {
			continue
		}
		p.VY += p.Gravity * dt
		p.X += p.VX * dt
		p.Y += p.VY * dt
		p.Size += p.Growth * dt
		p.Rotation += p.Spin * dt
		if p.Size <= 0 {
			continue
		}
		alive = append(alive, p)
	}
	f.particles = alive
	f.cull()
}

func (f *Field) emitSteam(dt float64) {
	if f.source == nil || f.SteamRate <= 0 {
		return
	}

	f.steamAccum += dt * f.SteamRate
	for f.steamAccum >= 1 {
		f.steamAccum--
		x, y, w := f.source()
		f.add(Particle{
			Kind:    KindBlob,
			X:       x + (f.rng.Float64()-0.5)*w*0.6,
			Y:       y,
			VX:      (f.rng.Float64() - 0.5) * 12,
			VY:      -30 - f.rng.Float64()*25,
			Size:    6 + f.rng.Float64()*6,
			Growth:  10,
			Color:   steamColor,
			MaxLife: 2 + f.rng.Float64()*1.5,
		})
	}
}

// Burst emits n blobs and sparkles radiating from (x, y); used on reveal.
func (f *Field) Burst(x, y float64, n int) {
	for i := 0; i < n; i++ {
		angle := f.rng.Float64() * 2 * math.Pi
		speed := 60 + f.rng.Float64()*120
		kind := KindBlob
		c := sprayColors[i%len(sprayColors)]
		if i%3 == 0 {
			kind = KindStar
			c = sparkleColor
		}
		f.add(Particle{
			Kind:    kind,
			X:       x,
			Y:       y,
			VX:      math.Cos(angle) * speed,
			VY:      math.Sin(angle) * speed,
			Gravity: 90,
			Size:    4 + f.rng.Float64()*5,
			Growth:  -2,
			Spin:    (f.rng.Float64() - 0.5) * 6,
			Color:   c,
			Glow:    kind == KindStar,
			MaxLife: 0.8 + f.rng.Float64()*0.6,
		})
	}
}

// Spray emits one decorative celebration particle from (x, y).
func (f *Field) Spray(x, y float64) {
	angle := f.rng.Float64() * 2 * math.Pi
	speed := 120 + f.rng.Float64()*200
	f.add(Particle{
		Kind:    KindBlob,
		X:       x,
		Y:       y,
		VX:      math.Cos(angle) * speed,
		VY:      math.Sin(angle)*speed - 80,
		Gravity: 160,
		Size:    5 + f.rng.Float64()*6,
		Growth:  -3,
		Color:   sprayColors[int(f.rng.Float64()*float64(len(sprayColors)))%len(sprayColors)],
		MaxLife: 1 + f.rng.Float64()*0.8,
	})
}

// Sparkle leaves a small golden star at (x, y).
func (f *Field) Sparkle(x, y float64) {
	f.add(Particle{
		Kind:     KindStar,
		X:        x,
		Y:        y,
		VX:       (f.rng.Float64() - 0.5) * 20,
		VY:       (f.rng.Float64() - 0.5) * 20,
		Size:     3 + f.rng.Float64()*4,
		Growth:   -2,
		Rotation: f.rng.Float64() * 2 * math.Pi,
		Spin:     2,
		Color:    sparkleColor,
		Glow:     f.rng.Float64() < 0.5,
		MaxLife:  0.6 + f.rng.Float64()*0.4,
	})
}

func (f *Field) add(p Particle) {
	if f.MaxParticles > 0 && len(f.particles) >= f.MaxParticles {
		return
	}
	f.particles = append(f.particles, p)
}

// cull drops particles that left the surface by more than their own size.
func (f *Field) cull() {
	if f.width <= 0 || f.height <= 0 {
		return
	}
	alive := f.particles[:0]
	for _, p := range f.particles {
		if p.X < -p.Size || p.Y < -p.Size || p.X > f.width+p.Size || p.Y > f.height+p.Size {
			continue
		}
		alive = append(alive, p)
	}
	f.particles = alive
}
