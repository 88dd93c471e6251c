package game

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/vovakirdan/road-rush/internal/config"
	"github.com/vovakirdan/road-rush/internal/core"
)

// Visual characters for rendering
const (
	ShoulderChar = '░'
	EdgeChar     = '│'
	MarkingChar  = '╎'
	BodyChar     = '█'
	WindowChar   = '▀'
	WheelChar    = '▌'
)

// rockFrames are picked by rotation quadrant.
var rockFrames = [4]rune{'◐', '◓', '◑', '◒'}

// viewport maps world units onto screen cells.
type viewport struct {
	sx, sy float64
	bounds core.Rect
}

func newViewport(field config.FieldConfig, dst *core.Screen) viewport {
	return viewport{
		sx:     float64(dst.Width()) / field.Width,
		sy:     float64(dst.Height()) / field.Height,
		bounds: core.NewRect(0, 0, dst.Width(), dst.Height()),
	}
}

func (vp viewport) col(x float64) int {
	return int(math.Floor(x * vp.sx))
}

func (vp viewport) row(y float64) int {
	return int(math.Floor(y * vp.sy))
}

// box maps a centered world box to a cell rectangle of at least one cell.
func (vp viewport) box(cx, cy, w, h float64) core.Rect {
	x0 := vp.col(cx - w/2)
	x1 := int(math.Ceil((cx + w/2) * vp.sx))
	y0 := vp.row(cy - h/2)
	y1 := int(math.Ceil((cy + h/2) * vp.sy))
	return core.NewRect(x0, y0, max(x1-x0, 1), max(y1-y0, 1))
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	DrawWorld(dst, g.World())
}

// DrawWorld renders a world snapshot, scaling the logical field to the
// whole screen.
func DrawWorld(dst *core.Screen, w World) {
	dst.Clear()
	if dst.Width() == 0 || dst.Height() == 0 || w.Field.Width <= 0 || w.Field.Height <= 0 {
		return
	}
	vp := newViewport(w.Field, dst)

	drawRoad(dst, vp, &w.Road)
	for i := range w.Obstacles {
		drawObstacle(dst, vp, &w.Obstacles[i])
	}
	drawVehicle(dst, vp, &w.Vehicle)

	switch {
	case w.Phase == PhaseNotStarted:
		drawCenteredMessage(dst, Title, "Enter: start", "Arrows/WASD: steer  P: pause")
	case w.Phase == PhaseGameOver:
		drawCenteredMessage(dst, "GAME OVER",
			fmt.Sprintf("Final Score: %d", w.Score),
			fmt.Sprintf("Level Reached: %d", w.Level),
		)
	case w.Paused:
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
}

func drawRoad(dst *core.Screen, vp viewport, r *Road) {
	left, right := vp.col(r.Left), vp.col(r.Right)

	for y := 0; y < dst.Height(); y++ {
		for x := 0; x < left; x++ {
			dst.SetCell(x, y, ShoulderChar, core.ColorGreen)
		}
		for x := right + 1; x < dst.Width(); x++ {
			dst.SetCell(x, y, ShoulderChar, core.ColorGreen)
		}
	}

	for i := 1; i < r.LaneCount; i++ {
		x := vp.col(r.Left + float64(i)*r.LaneWidth)
		for _, m := range r.Markings {
			top := vp.row(m)
			rows := max(vp.row(m+r.MarkingHeight)-top, 1)
			dst.DrawVLine(x, top, rows, MarkingChar, core.ColorWhite)
		}
	}

	dst.DrawVLine(left, 0, dst.Height(), EdgeChar, core.ColorBrightWhite)
	dst.DrawVLine(right, 0, dst.Height(), EdgeChar, core.ColorBrightWhite)
}

// drawObstacle dispatches on the archetype table; the pulse scale affects
// only the drawn size.
func drawObstacle(dst *core.Screen, vp viewport, o *Obstacle) {
	a := o.Kind.Archetype()
	w, h := o.DrawSize()
	r := vp.box(o.X, o.Y, w, h)
	if !r.Intersects(vp.bounds) {
		return
	}

	switch o.Kind {
	case KindRock:
		dst.DrawRect(r, rockFrames[rotationQuadrant(o.Rotation)], a.Color)
	case KindBarrier:
		for x := r.X; x < r.Right(); x++ {
			glyph := a.Glyph
			if (x-r.X)%2 == 1 {
				glyph = '▞'
			}
			dst.DrawVLine(x, r.Y, r.H, glyph, a.Color)
		}
	case KindCar, KindTruck:
		dst.DrawRect(r, a.Glyph, a.Color)
		drawWindows(dst, r)
	default:
		dst.DrawRect(r, a.Glyph, a.Color)
	}
}

func drawVehicle(dst *core.Screen, vp viewport, v *Vehicle) {
	r := vp.box(v.X, v.Y, v.Width, v.Height)
	dst.DrawRect(r, BodyChar, core.ColorBrightRed)
	drawWindows(dst, r)

	// Headlights on the front corners
	if r.W >= 3 {
		dst.SetCell(r.X, r.Y, WindowChar, core.ColorBrightYellow)
		dst.SetCell(r.Right()-1, r.Y, WindowChar, core.ColorBrightYellow)
	}

	// Wheels just outside the body
	if r.H >= 2 {
		for _, y := range []int{r.Y, r.Bottom() - 1} {
			dst.SetCell(r.X-1, y, WheelChar, core.ColorGray)
			dst.SetCell(r.Right(), y, WheelChar, core.ColorGray)
		}
	}
}

// drawWindows paints the windshield on the second row of tall sprites.
func drawWindows(dst *core.Screen, r core.Rect) {
	if r.H < 3 || r.W < 3 {
		return
	}
	for x := r.X + 1; x < r.Right()-1; x++ {
		dst.SetCell(x, r.Y+1, WindowChar, core.ColorSkyBlue)
	}
}

// rotationQuadrant folds an unbounded angle into one of four frames.
func rotationQuadrant(angle float64) int {
	a := math.Atan2(math.Sin(angle), math.Cos(angle)) + math.Pi // [0, 2π]
	return int(a/(math.Pi/2)) % 4
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title string, lines ...string) {
	width := utf8.RuneCountInString(title)
	for _, l := range lines {
		width = max(width, utf8.RuneCountInString(l))
	}

	boxW := width + 4
	boxH := len(lines) + 4
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2
	box := core.NewRect(boxX, boxY, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorBrightWhite)

	dst.DrawTextColor(boxX+(boxW-utf8.RuneCountInString(title))/2, boxY+1, title, core.ColorBrightYellow)
	for i, l := range lines {
		dst.DrawTextColor(boxX+(boxW-utf8.RuneCountInString(l))/2, boxY+3+i, l, core.ColorWhite)
	}
}
