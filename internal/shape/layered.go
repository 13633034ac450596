package shape

import (
	"math"

	"github.com/annel0/shapebuilder/internal/vec"
)

// layered собирает фигуру вращения из горизонтальных дисков.
// Слой i лежит на высоте base.Y+i, его радиус задаёт radiusAt(i).
// Оболочка слоя: точки не ближе radius-1 к оси (при radius-1 <= 0 - весь слой).
func layered(base vec.Vec3, height int, radiusAt func(layer int) float64, maxRadius float64, hollow bool) []vec.Vec3 {
	if height <= 0 {
		return nil
	}
	c := newVolume(0)

	for layer := 0; layer < height; layer++ {
		y := base.Y + layer
		if y < minY || y > maxY {
			continue
		}
		r := radiusAt(layer)
		if math.IsNaN(r) || r < 0 || r > maxRadius {
			continue
		}
		addDisc(c, base.X, y, base.Z, r, hollow)
	}
	return c.result()
}

// addDisc добавляет диск радиуса r (или его кольцо толщиной 1) в плоскости XZ
func addDisc(c *collector, cx, y, cz int, r float64, hollow bool) {
	r2 := r * r
	inner := r - 1
	inner2 := inner * inner
	ext := int(math.Floor(r))

	for dx := -ext; dx <= ext; dx++ {
		for dz := -ext; dz <= ext; dz++ {
			d2 := float64(dx*dx + dz*dz)
			if d2 > r2 {
				continue
			}
			if hollow && inner > 0 && d2 < inner2 {
				continue
			}
			c.add(cx+dx, y, cz+dz)
		}
	}
}

// Cylinder - вертикальный цилиндр высотой Height слоёв, Center - центр основания
type Cylinder struct {
	Center vec.Vec3
	Radius int
	Height int
}

func (Cylinder) Kind() Kind { return KindCylinder }

func (s Cylinder) positions(hollow bool) []vec.Vec3 {
	if s.Radius <= 0 {
		return nil
	}
	r := float64(s.Radius)
	return layered(s.Center, s.Height, func(int) float64 { return r }, r, hollow)
}

// Cone - конус с основанием радиуса Radius в Center и вершиной на Height слоёв выше
type Cone struct {
	Center vec.Vec3
	Radius int
	Height int
}

func (Cone) Kind() Kind { return KindCone }

func (s Cone) positions(hollow bool) []vec.Vec3 {
	if s.Radius <= 0 || s.Height <= 0 {
		return nil
	}
	r, h := float64(s.Radius), float64(s.Height)
	return layered(s.Center, s.Height, func(layer int) float64 {
		return r * (h - float64(layer)) / h
	}, r, hollow)
}

// Paraboloid - чаша с вершиной в Center, раскрывающаяся до Radius на высоте Height
type Paraboloid struct {
	Center vec.Vec3
	Radius int
	Height int
}

func (Paraboloid) Kind() Kind { return KindParaboloid }

func (s Paraboloid) positions(hollow bool) []vec.Vec3 {
	if s.Radius <= 0 || s.Height <= 0 {
		return nil
	}
	r, h := float64(s.Radius), float64(s.Height)
	focal := r * r / (4 * h)
	return layered(s.Center, s.Height, func(layer int) float64 {
		return math.Sqrt(4 * focal * float64(layer))
	}, r, hollow)
}

// Hyperboloid - однополостный гиперболоид, симметричный относительно середины высоты.
// WaistRadius - радиус горловины, BaseRadius задаёт раскрытие к краям.
type Hyperboloid struct {
	Center      vec.Vec3
	BaseRadius  int
	WaistRadius int
	Height      int
}

func (Hyperboloid) Kind() Kind { return KindHyperboloid }

func (s Hyperboloid) positions(hollow bool) []vec.Vec3 {
	if s.BaseRadius <= 0 || s.WaistRadius <= 0 || s.Height <= 0 {
		return nil
	}
	b, w := float64(s.BaseRadius), float64(s.WaistRadius)
	span := float64(s.Height - 1)
	k := (b - w) / w

	radiusAt := func(layer int) float64 {
		t := 0.0
		if span > 0 {
			t = (2*float64(layer) - span) / span // [-1, 1]
		}
		return w * math.Sqrt(1+(t*k)*(t*k))
	}
	return layered(s.Center, s.Height, radiusAt, math.Inf(1), hollow)
}
