package shape

import (
	"math"

	"github.com/annel0/shapebuilder/internal/bounds"
	"github.com/annel0/shapebuilder/internal/vec"
)

// collector накапливает координаты сэмплера
type collector struct {
	points []vec.Vec3
	seen   map[vec.Vec3]struct{} // nil для кривых
}

// maxHint ограничивает предварительное выделение памяти коллектора
const maxHint = 1 << 16

func clampHint(hint int) int {
	return min(max(hint, 0), maxHint)
}

// newVolume - коллектор для объёмных фигур: каждая координата не более одного раза
func newVolume(hint int) *collector {
	hint = clampHint(hint)
	return &collector{
		points: make([]vec.Vec3, 0, hint),
		seen:   make(map[vec.Vec3]struct{}, hint),
	}
}

// newCurve - коллектор для кривых: подавляются только соседние повторы
func newCurve(hint int) *collector {
	hint = clampHint(hint)
	return &collector{points: make([]vec.Vec3, 0, hint)}
}

func (c *collector) add(x, y, z int) {
	if !bounds.Validate(x, y, z) {
		return
	}
	p := vec.Vec3{X: x, Y: y, Z: z}
	if c.seen == nil {
		if n := len(c.points); n > 0 && c.points[n-1] == p {
			return
		}
	} else {
		if _, dup := c.seen[p]; dup {
			return
		}
		c.seen[p] = struct{}{}
	}
	c.points = append(c.points, p)
}

func (c *collector) addPos(p vec.Vec3) {
	c.add(p.X, p.Y, p.Z)
}

func (c *collector) result() []vec.Vec3 {
	if len(c.points) == 0 {
		return nil
	}
	return c.points
}

// isqrt возвращает floor(sqrt(n)) для n >= 0, и -1 для n < 0
func isqrt(n int) int {
	if n < 0 {
		return -1
	}
	r := int(math.Sqrt(float64(n)))
	for r*r > n {
		r--
	}
	for (r+1)*(r+1) <= n {
		r++
	}
	return r
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
