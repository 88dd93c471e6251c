package game

import (
	"github.com/vovakirdan/road-rush/internal/config"
	"github.com/vovakirdan/road-rush/internal/core"
)

// Steering key groups. Letters are accepted in both cases.
var (
	leftKeys  = []string{core.KeyArrowLeft, "a", "A"}
	rightKeys = []string{core.KeyArrowRight, "d", "D"}
	upKeys    = []string{core.KeyArrowUp, "w", "W"}
	downKeys  = []string{core.KeyArrowDown, "s", "S"}
)

// Vehicle is the player's car. Position is the center of its body.
type Vehicle struct {
	X, Y          float64
	Width, Height float64
	Speed         float64

	fieldHeight float64
}

// NewVehicle places a vehicle at the bottom center of the field.
func NewVehicle(cfg config.VehicleConfig, field config.FieldConfig) *Vehicle {
	v := &Vehicle{
		Width:       cfg.Width,
		Height:      cfg.Height,
		Speed:       cfg.Speed,
		fieldHeight: field.Height,
	}
	v.Recenter(field, cfg.BottomOffset)
	return v
}

// Recenter moves the vehicle back to its start position for the given field.
func (v *Vehicle) Recenter(field config.FieldConfig, bottomOffset float64) {
	v.X = field.Width / 2
	v.Y = field.Height - bottomOffset
	v.fieldHeight = field.Height
}

// Advance applies one frame of steering. Opposite directions cancel out.
// Vertical movement runs at half speed and keeps the car inside
// [Height, fieldHeight-Height].
func (v *Vehicle) Advance(keys core.KeySet) {
	if keys.Any(leftKeys...) {
		v.X -= v.Speed
	}
	if keys.Any(rightKeys...) {
		v.X += v.Speed
	}
	if keys.Any(upKeys...) {
		v.Y = max(v.Y-v.Speed/2, v.Height)
	}
	if keys.Any(downKeys...) {
		v.Y = min(v.Y+v.Speed/2, v.fieldHeight-v.Height)
	}
}

// ClampTo keeps the whole car body between the road edges.
func (v *Vehicle) ClampTo(r *Road) {
	v.X = core.ClampF(v.X, r.Left+v.Width/2, r.Right-v.Width/2)
}

// Center returns the vehicle position as a vector.
func (v *Vehicle) Center() core.Vec2 {
	return core.Vec2{X: v.X, Y: v.Y}
}
