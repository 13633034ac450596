package shape

import (
	"github.com/annel0/shapebuilder/internal/vec"
)

// Line - отрезок между двумя координатами
type Line struct {
	From vec.Vec3
	To   vec.Vec3
}

func (Line) Kind() Kind { return KindLine }

func (l Line) positions(bool) []vec.Vec3 {
	d := l.To.Sub(l.From)
	ax, ay, az := absInt(d.X), absInt(d.Y), absInt(d.Z)
	c := newCurve(1 + max(ax, ay, az))

	zeros := 0
	for _, v := range [3]int{ax, ay, az} {
		if v == 0 {
			zeros++
		}
	}

	// Концы совпадают по двум осям: отрезок вырождается в ряд блоков вдоль третьей.
	if zeros >= 2 {
		step := vec.Vec3{X: sign(d.X), Y: sign(d.Y), Z: sign(d.Z)}
		p := l.From
		c.addPos(p)
		for p != l.To {
			p = p.Add(step)
			c.addPos(p)
		}
		return c.result()
	}

	bresenham3D(c, l.From, l.To)
	return c.result()
}

// bresenham3D проводит цифровую прямую: ведущая ось - ось с наибольшим приращением,
// по двум другим накапливается ошибка.
func bresenham3D(c *collector, from, to vec.Vec3) {
	x, y, z := from.X, from.Y, from.Z
	dx, dy, dz := absInt(to.X-x), absInt(to.Y-y), absInt(to.Z-z)
	sx, sy, sz := sign(to.X-x), sign(to.Y-y), sign(to.Z-z)

	c.add(x, y, z)

	switch {
	case dx >= dy && dx >= dz:
		e1, e2 := 2*dy-dx, 2*dz-dx
		for x != to.X {
			x += sx
			if e1 >= 0 {
				y += sy
				e1 -= 2 * dx
			}
			if e2 >= 0 {
				z += sz
				e2 -= 2 * dx
			}
			e1 += 2 * dy
			e2 += 2 * dz
			c.add(x, y, z)
		}
	case dy >= dx && dy >= dz:
		e1, e2 := 2*dx-dy, 2*dz-dy
		for y != to.Y {
			y += sy
			if e1 >= 0 {
				x += sx
				e1 -= 2 * dy
			}
			if e2 >= 0 {
				z += sz
				e2 -= 2 * dy
			}
			e1 += 2 * dx
			e2 += 2 * dz
			c.add(x, y, z)
		}
	default:
		e1, e2 := 2*dy-dz, 2*dx-dz
		for z != to.Z {
			z += sz
			if e1 >= 0 {
				y += sy
				e1 -= 2 * dz
			}
			if e2 >= 0 {
				x += sx
				e2 -= 2 * dz
			}
			e1 += 2 * dy
			e2 += 2 * dx
			c.add(x, y, z)
		}
	}
}
