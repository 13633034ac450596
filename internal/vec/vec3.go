package vec

import "fmt"

// Vec3 представляет трехмерный вектор с целочисленными координатами.
// Используется как координата решётки мира.
type Vec3 struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

// Vec3Float представляет трехмерный вектор с плавающими координатами
type Vec3Float struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// ToVec2 проецирует Vec3 на плоскость XZ
func (v Vec3) ToVec2() Vec2 {
	return Vec2{
		X: v.X,
		Y: v.Z,
	}
}

// DistanceSqTo возвращает квадрат расстояния до другого вектора
func (v Vec3) DistanceSqTo(other Vec3) int {
	dx := v.X - other.X
	dy := v.Y - other.Y
	dz := v.Z - other.Z
	return dx*dx + dy*dy + dz*dz
}

// Equals проверяет равенство векторов
func (v Vec3) Equals(other Vec3) bool {
	return v.X == other.X && v.Y == other.Y && v.Z == other.Z
}

// Add складывает два вектора
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{
		X: v.X + other.X,
		Y: v.Y + other.Y,
		Z: v.Z + other.Z,
	}
}

// Sub вычитает другой вектор
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{
		X: v.X - other.X,
		Y: v.Y - other.Y,
		Z: v.Z - other.Z,
	}
}

// Min возвращает покомпонентный минимум
func (v Vec3) Min(other Vec3) Vec3 {
	return Vec3{X: min(v.X, other.X), Y: min(v.Y, other.Y), Z: min(v.Z, other.Z)}
}

// Max возвращает покомпонентный максимум
func (v Vec3) Max(other Vec3) Vec3 {
	return Vec3{X: max(v.X, other.X), Y: max(v.Y, other.Y), Z: max(v.Z, other.Z)}
}

// Less задаёт лексикографический порядок (X, затем Y, затем Z)
func (v Vec3) Less(other Vec3) bool {
	if v.X != other.X {
		return v.X < other.X
	}
	if v.Y != other.Y {
		return v.Y < other.Y
	}
	return v.Z < other.Z
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%d,%d,%d)", v.X, v.Y, v.Z)
}

// ToFloat переводит вектор в плавающие координаты
func (v Vec3) ToFloat() Vec3Float {
	return Vec3Float{X: float64(v.X), Y: float64(v.Y), Z: float64(v.Z)}
}

// Add складывает два вектора
func (v Vec3Float) Add(other Vec3Float) Vec3Float {
	return Vec3Float{X: v.X + other.X, Y: v.Y + other.Y, Z: v.Z + other.Z}
}

// Scale умножает вектор на скаляр
func (v Vec3Float) Scale(k float64) Vec3Float {
	return Vec3Float{X: v.X * k, Y: v.Y * k, Z: v.Z * k}
}
