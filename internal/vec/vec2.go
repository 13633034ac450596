package vec

// Vec2 представляет 2D координаты внутри плоскости
type Vec2 struct {
	X, Y int
}

// ToVec3 встраивает точку плоскости в пространство.
// axis задаёт нормаль плоскости: 'x' -> плоскость YZ, 'y' -> XZ, 'z' -> XY.
func (v Vec2) ToVec3(axis byte, offset int) Vec3 {
	switch axis {
	case 'x':
		return Vec3{X: offset, Y: v.X, Z: v.Y}
	case 'z':
		return Vec3{X: v.X, Y: v.Y, Z: offset}
	default:
		return Vec3{X: v.X, Y: offset, Z: v.Y}
	}
}

// LengthSq возвращает квадрат длины
func (v Vec2) LengthSq() int {
	return v.X*v.X + v.Y*v.Y
}
