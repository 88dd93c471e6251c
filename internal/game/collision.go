package game

import "github.com/vovakirdan/road-rush/internal/core"

// Collides reports whether the vehicle touches the obstacle: the distance
// between centers is less than the sum of the half-widths.
func Collides(v *Vehicle, o *Obstacle) bool {
	return core.Distance(v.Center(), o.Center()) < v.Width/2+o.Width/2
}
