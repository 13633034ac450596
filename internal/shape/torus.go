package shape

import (
	"math"

	"github.com/annel0/shapebuilder/internal/vec"
)

// Torus - горизонтальный тор: MajorRadius от центра до оси трубки, MinorRadius - радиус трубки
type Torus struct {
	Center      vec.Vec3
	MajorRadius int
	MinorRadius int
}

func (Torus) Kind() Kind { return KindTorus }

func (t Torus) positions(hollow bool) []vec.Vec3 {
	big, small := t.MajorRadius, t.MinorRadius
	if big <= 0 || small <= 0 {
		return nil
	}
	r2 := float64(small * small)
	inner2 := float64((small - 1) * (small - 1))
	ext := big + small
	c := newVolume(0)

	for dx := -ext; dx <= ext; dx++ {
		for dz := -ext; dz <= ext; dz++ {
			// Расстояние до окружности оси трубки; один корень на столбец.
			q := math.Sqrt(float64(dx*dx+dz*dz)) - float64(big)
			q2 := q * q
			if q2 > r2 {
				continue
			}
			yb := int(math.Floor(math.Sqrt(r2 - q2)))
			for dy := -yb; dy <= yb; dy++ {
				d2 := q2 + float64(dy*dy)
				if d2 > r2 {
					continue
				}
				if hollow && d2 < inner2 {
					continue
				}
				c.add(t.Center.X+dx, t.Center.Y+dy, t.Center.Z+dz)
			}
		}
	}
	return c.result()
}
