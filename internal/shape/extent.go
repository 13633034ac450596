package shape

import "math"

// Extent возвращает размеры ограничивающего параллелепипеда фигуры до отбора
// по границам мира. Считается в float64, чтобы огромные параметры не переполняли int.
func Extent(spec Spec) (x, y, z float64) {
	diam := func(r int) float64 { return 2*nonNeg(r) + 1 }

	switch s := spec.(type) {
	case Line:
		return span(s.From.X, s.To.X), span(s.From.Y, s.To.Y), span(s.From.Z, s.To.Z)
	case Cuboid:
		return span(s.From.X, s.To.X), span(s.From.Y, s.To.Y), span(s.From.Z, s.To.Z)
	case Circle:
		d := diam(s.Radius)
		switch s.Axis {
		case AxisX:
			return 1, d, d
		case AxisZ:
			return d, d, 1
		default:
			return d, 1, d
		}
	case Sphere:
		d := diam(s.Radius)
		return d, d, d
	case Cylinder:
		d := diam(s.Radius)
		return d, nonNeg(s.Height), d
	case Cone:
		d := diam(s.Radius)
		return d, nonNeg(s.Height), d
	case Paraboloid:
		d := diam(s.Radius)
		return d, nonNeg(s.Height), d
	case Hyperboloid:
		// радиус слоя не превышает base + waist
		d := 2*(nonNeg(s.BaseRadius)+nonNeg(s.WaistRadius)) + 1
		return d, nonNeg(s.Height), d
	case Torus:
		d := 2*(nonNeg(s.MajorRadius)+nonNeg(s.MinorRadius)) + 1
		return d, diam(s.MinorRadius), d
	case Ellipsoid:
		return diam(s.RadiusX), diam(s.RadiusY), diam(s.RadiusZ)
	case Helix:
		d := diam(s.Radius)
		return d, nonNeg(s.Height) + 1, d
	case Bezier:
		if len(s.Points) == 0 {
			return 0, 0, 0
		}
		lo, hi := s.Points[0], s.Points[0]
		for _, p := range s.Points[1:] {
			lo.X, hi.X = math.Min(lo.X, p.X), math.Max(hi.X, p.X)
			lo.Y, hi.Y = math.Min(lo.Y, p.Y), math.Max(hi.Y, p.Y)
			lo.Z, hi.Z = math.Min(lo.Z, p.Z), math.Max(hi.Z, p.Z)
		}
		return hi.X - lo.X + 1, hi.Y - lo.Y + 1, hi.Z - lo.Z + 1
	}
	return 0, 0, 0
}

// BoundingVolume - произведение размеров Extent. NaN в контрольных точках даёт +Inf.
func BoundingVolume(spec Spec) float64 {
	x, y, z := Extent(spec)
	v := x * y * z
	if math.IsNaN(v) {
		return math.Inf(1)
	}
	return v
}

func nonNeg(v int) float64 { return math.Max(float64(v), 0) }

func span(a, b int) float64 { return math.Abs(float64(b)-float64(a)) + 1 }
