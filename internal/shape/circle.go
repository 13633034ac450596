package shape

import (
	"errors"
	"fmt"
	"strings"

	"github.com/annel0/shapebuilder/internal/vec"
)

// Axis - нормаль плоскости круга
type Axis byte

const (
	AxisX Axis = 'x' // плоскость YZ
	AxisY Axis = 'y' // плоскость XZ (горизонтальный круг)
	AxisZ Axis = 'z' // плоскость XY
)

// ErrUnknownAxis возвращается ParseAxis
var ErrUnknownAxis = errors.New("unknown axis")

// ParseAxis разбирает "x", "y" или "z". Пустая строка означает AxisY.
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "y":
		return AxisY, nil
	case "x":
		return AxisX, nil
	case "z":
		return AxisZ, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAxis, s)
}

// Circle - круг в плоскости, перпендикулярной Axis
type Circle struct {
	Center vec.Vec3
	Radius int
	Axis   Axis
}

func (Circle) Kind() Kind { return KindCircle }

// plane разбивает центр на координаты внутри плоскости и смещение по нормали
func (c Circle) plane() (u, v, offset int, axis byte) {
	switch c.Axis {
	case AxisX:
		return c.Center.Y, c.Center.Z, c.Center.X, 'x'
	case AxisZ:
		return c.Center.X, c.Center.Y, c.Center.Z, 'z'
	default:
		return c.Center.X, c.Center.Z, c.Center.Y, 'y'
	}
}

func (c Circle) positions(hollow bool) []vec.Vec3 {
	r := c.Radius
	if r <= 0 {
		return nil
	}
	cu, cv, offset, axis := c.plane()
	col := newVolume(8 * r)

	emit := func(du, dv int) {
		col.addPos(vec.Vec2{X: cu + du, Y: cv + dv}.ToVec3(axis, offset))
	}

	if hollow {
		// Алгоритм средней точки: 8-кратная симметрия, только граница.
		x, y, d := 0, r, 1-r
		for x <= y {
			emit(x, y)
			emit(y, x)
			emit(-x, y)
			emit(-y, x)
			emit(x, -y)
			emit(y, -x)
			emit(-x, -y)
			emit(-y, -x)
			x++
			if d < 0 {
				d += 2*x + 1
			} else {
				y--
				d += 2*(x-y) + 1
			}
		}
		return col.result()
	}

	// Граница средней точки лежит внутри u²+v² <= r²+r, поэтому диск берём с тем же допуском.
	limit := r*r + r
	for du := -r; du <= r; du++ {
		for dv := -r; dv <= r; dv++ {
			if du*du+dv*dv <= limit {
				emit(du, dv)
			}
		}
	}
	return col.result()
}
