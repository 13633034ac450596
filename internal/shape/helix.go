package shape

import (
	"math"

	"github.com/annel0/shapebuilder/internal/bounds"
	"github.com/annel0/shapebuilder/internal/vec"
)

// Helix - вертикальная спираль радиуса Radius, поднимающаяся на Height блоков за Turns оборотов.
// Начинается в точке (Center.X+Radius, Center.Y, Center.Z).
type Helix struct {
	Center vec.Vec3
	Radius int
	Height int
	Turns  float64
}

func (Helix) Kind() Kind { return KindHelix }

// helixSteps выбирает число шагов так, чтобы соседние отсчёты были смежны в решётке
func helixSteps(radius, height int, turns float64) int {
	arc := math.Hypot(2*math.Pi*float64(radius)*turns, float64(height))
	return max(2*height, int(math.Round(arc)))
}

func (h Helix) positions(bool) []vec.Vec3 {
	if h.Radius <= 0 || h.Height <= 0 || math.IsNaN(h.Turns) || math.IsInf(h.Turns, 0) {
		return nil
	}
	steps := helixSteps(h.Radius, h.Height, h.Turns)
	r := float64(h.Radius)
	center := h.Center.ToFloat()
	c := newCurve(steps + 1)

	for i := 0; i <= steps; i++ {
		progress := float64(i) / float64(steps)
		theta := 2 * math.Pi * h.Turns * progress
		p := vec.Vec3Float{
			X: center.X + r*math.Cos(theta),
			Y: center.Y + float64(h.Height)*progress,
			Z: center.Z + r*math.Sin(theta),
		}
		c.addPos(bounds.Round(p))
	}
	return c.result()
}
