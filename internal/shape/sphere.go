package shape

import (
	"github.com/annel0/shapebuilder/internal/vec"
)

// Sphere - шар с центром Center и радиусом Radius
type Sphere struct {
	Center vec.Vec3
	Radius int
}

func (Sphere) Kind() Kind { return KindSphere }

func (s Sphere) positions(hollow bool) []vec.Vec3 {
	r := s.Radius
	if r <= 0 {
		return nil
	}
	r2 := r * r
	inner := (r - 1) * (r - 1)
	hint := 4 * r2 * r
	if hollow {
		hint = 13 * r2
	}
	c := newVolume(hint)

	for dx := -r; dx <= r; dx++ {
		yb := isqrt(r2 - dx*dx)
		// слои вне мира по Y не обходим
		yFrom := max(-yb, minY-s.Center.Y)
		yTo := min(yb, maxY-s.Center.Y)
		for dy := yFrom; dy <= yTo; dy++ {
			y := s.Center.Y + dy
			rest := r2 - dx*dx - dy*dy
			zb := isqrt(rest)
			// для оболочки пропускаем |dz| < zi: там d² < (r-1)²
			zi := 0
			if hollow && inner-(dx*dx+dy*dy) > 0 {
				zi = isqrt(inner-(dx*dx+dy*dy)-1) + 1
			}
			for dz := -zb; dz <= zb; dz++ {
				if zi > 0 && dz > -zi && dz < zi {
					dz = zi - 1
					continue
				}
				c.add(s.Center.X+dx, y, s.Center.Z+dz)
			}
		}
	}
	return c.result()
}
