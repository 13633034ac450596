package shape

import (
	"math"

	"github.com/annel0/shapebuilder/internal/vec"
)

// DefaultShellThreshold - нижняя граница нормированного расстояния для оболочки эллипсоида
const DefaultShellThreshold = 0.8

// ValidShellThreshold сообщает, подходит ли порог оболочки: допустим интервал (0, 1)
func ValidShellThreshold(v float64) bool {
	return v > 0 && v < 1
}

// Ellipsoid - эллипсоид с полуосями RadiusX, RadiusY, RadiusZ.
// Оболочка - полоса нормированного расстояния [ShellThreshold, 1].
type Ellipsoid struct {
	Center  vec.Vec3
	RadiusX int
	RadiusY int
	RadiusZ int

	ShellThreshold float64 // вне (0, 1) используется DefaultShellThreshold
}

func (Ellipsoid) Kind() Kind { return KindEllipsoid }

func (e Ellipsoid) positions(hollow bool) []vec.Vec3 {
	rx, ry, rz := e.RadiusX, e.RadiusY, e.RadiusZ
	if rx <= 0 || ry <= 0 || rz <= 0 {
		return nil
	}
	threshold := e.ShellThreshold
	if !ValidShellThreshold(threshold) {
		threshold = DefaultShellThreshold
	}
	fx, fy, fz := float64(rx), float64(ry), float64(rz)
	c := newVolume(0)

	for dx := -rx; dx <= rx; dx++ {
		nx := float64(dx) / fx
		for dy := -ry; dy <= ry; dy++ {
			y := e.Center.Y + dy
			if y < minY || y > maxY {
				continue
			}
			ny := float64(dy) / fy
			for dz := -rz; dz <= rz; dz++ {
				nz := float64(dz) / fz
				n := nx*nx + ny*ny + nz*nz
				if n > 1 {
					continue
				}
				if hollow && math.Sqrt(n) < threshold {
					continue
				}
				c.add(e.Center.X+dx, y, e.Center.Z+dz)
			}
		}
	}
	return c.result()
}
