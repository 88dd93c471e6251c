package game

import (
	"math"

	"github.com/vovakirdan/road-rush/internal/config"
)

// Road is the static lane geometry plus the scrolling center-line dashes.
type Road struct {
	Width, Height float64
	LaneCount     int
	Left, Right   float64
	LaneWidth     float64

	// Markings holds the top y of every dash; the same offsets repeat on
	// every lane divider.
	Markings      []float64
	MarkingHeight float64
	MarkingGap    float64

	coverage     float64
	scrollFactor float64
}

// NewRoad builds the road for a field of the given size.
func NewRoad(cfg config.RoadConfig, width, height float64) *Road {
	r := &Road{
		LaneCount:     cfg.LaneCount,
		MarkingHeight: cfg.MarkingHeight,
		MarkingGap:    cfg.MarkingGap,
		coverage:      cfg.Coverage,
		scrollFactor:  cfg.ScrollFactor,
	}
	r.Resize(width, height)
	return r
}

// ComputeBoundaries returns the left edge, right edge and lane width of a
// road covering the given fraction of width, centered.
func ComputeBoundaries(width, coverage float64, laneCount int) (left, right, laneWidth float64) {
	roadWidth := width * coverage
	left = (width - roadWidth) / 2
	right = left + roadWidth
	laneWidth = roadWidth / float64(laneCount)
	return left, right, laneWidth
}

// Resize recomputes the boundaries. Markings are rebuilt only when the
// height changes so scrolling stays continuous across width-only resizes.
func (r *Road) Resize(width, height float64) {
	r.Width = width
	r.Left, r.Right, r.LaneWidth = ComputeBoundaries(width, r.coverage, r.LaneCount)

	if height != r.Height || r.Markings == nil {
		r.Height = height
		r.resetMarkings()
	}
}

func (r *Road) resetMarkings() {
	period := r.MarkingHeight + r.MarkingGap
	n := int(math.Ceil(r.Height/period)) + 1
	r.Markings = make([]float64, n)
	for i := range r.Markings {
		r.Markings[i] = float64(i) * period
	}
}

// Advance scrolls every marking down by gameSpeed*scrollFactor, wrapping
// dashes that left the bottom back above the top edge.
func (r *Road) Advance(gameSpeed float64) {
	dy := gameSpeed * r.scrollFactor
	for i := range r.Markings {
		r.Markings[i] += dy
		if r.Markings[i] > r.Height {
			r.Markings[i] = -r.MarkingHeight
		}
	}
}

// RoadWidth returns the distance between the edges.
func (r *Road) RoadWidth() float64 {
	return r.Right - r.Left
}

// LaneCenter returns the x of the middle of lane i.
func (r *Road) LaneCenter(i int) float64 {
	return r.Left + (float64(i)+0.5)*r.LaneWidth
}

// Contains reports whether x lies between the road edges, inclusive.
func (r *Road) Contains(x float64) bool {
	return x >= r.Left && x <= r.Right
}
