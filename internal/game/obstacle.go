package game

import "github.com/vovakirdan/road-rush/internal/core"

// Kind is the archetype of an obstacle.
type Kind int

const (
	KindCar Kind = iota
	KindRock
	KindOil
	KindTruck
	KindBarrier
	kindCount
)

// Pulse animation bounds for oil slicks.
const (
	pulseMin  = 0.8
	pulseMax  = 1.2
	pulseStep = 0.05
)

// Archetype is the fixed per-kind data: size, look, animation and the
// upper bound of its weight band on a [0,1) draw.
type Archetype struct {
	Name   string
	Width  float64
	Height float64
	Color  core.Color
	Glyph  rune

	Spins  bool // Random rotation speed in [-0.05, 0.05)
	Pulses bool // Oscillating scale in [0.8, 1.2]

	upTo float64
}

// archetypes is indexed by Kind. Bands are cumulative and ordered.
var archetypes = [kindCount]Archetype{
	KindCar:     {Name: "car", Width: 50, Height: 80, Color: core.ColorBlue, Glyph: '█', upTo: 0.25},
	KindRock:    {Name: "rock", Width: 40, Height: 40, Color: core.ColorGray, Glyph: '●', Spins: true, upTo: 0.45},
	KindOil:     {Name: "oil", Width: 70, Height: 30, Color: core.ColorDarkGray, Glyph: '≈', Pulses: true, upTo: 0.65},
	KindTruck:   {Name: "truck", Width: 60, Height: 120, Color: core.ColorDarkRed, Glyph: '▓', upTo: 0.85},
	KindBarrier: {Name: "barrier", Width: 100, Height: 30, Color: core.ColorOrange, Glyph: '▚', upTo: 1},
}

// String returns the archetype name.
func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return "unknown"
	}
	return archetypes[k].Name
}

// Archetype returns the fixed data for the kind.
func (k Kind) Archetype() Archetype {
	return archetypes[k]
}

// KindFor maps a uniform draw in [0,1) to an archetype. Draws at or above 1
// fall into the last band.
func KindFor(r float64) Kind {
	for k := KindCar; k < kindCount; k++ {
		if r < archetypes[k].upTo {
			return k
		}
	}
	return KindBarrier
}

// Obstacle is a spawned hazard descending the road.
type Obstacle struct {
	X, Y          float64
	Kind          Kind
	Width, Height float64
	Speed         float64

	Rotation      float64
	RotationSpeed float64
	Pulse         float64 // Scale factor; 0 for kinds that do not pulse
	PulseDir      float64
}

// NewObstacle creates an obstacle at (x, y) with a randomly drawn kind.
// Rocks take a second draw for their rotation speed.
func NewObstacle(x, y, baseSpeed float64, rnd Rand) *Obstacle {
	kind := KindFor(rnd.Float64())
	a := archetypes[kind]

	o := &Obstacle{
		X:        x,
		Y:        y,
		Kind:     kind,
		Width:    a.Width,
		Height:   a.Height,
		Speed:    baseSpeed,
		PulseDir: 1,
	}
	if a.Spins {
		o.RotationSpeed = (rnd.Float64() - 0.5) * 0.1
	}
	if a.Pulses {
		o.Pulse = 1
	}
	return o
}

// Advance moves the obstacle down and steps its animation. Rotation is left
// unbounded; only its sine and cosine are ever consumed.
func (o *Obstacle) Advance(gameSpeed float64) {
	o.Y += o.Speed * gameSpeed

	if o.RotationSpeed != 0 {
		o.Rotation += o.RotationSpeed
	}

	if o.Pulse != 0 {
		o.Pulse += pulseStep * o.PulseDir
		if o.Pulse > pulseMax || o.Pulse < pulseMin {
			o.PulseDir = -o.PulseDir
		}
	}
}

// Center returns the obstacle position as a vector.
func (o *Obstacle) Center() core.Vec2 {
	return core.Vec2{X: o.X, Y: o.Y}
}

// DrawSize returns the cosmetic size including the pulse scale. Collision
// math uses the nominal Width only.
func (o *Obstacle) DrawSize() (w, h float64) {
	if o.Pulse != 0 {
		return o.Width * o.Pulse, o.Height * o.Pulse
	}
	return o.Width, o.Height
}
