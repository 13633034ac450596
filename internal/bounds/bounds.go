// Package bounds проверяет целочисленные координаты относительно фиксированных границ мира.
package bounds

import (
	"math"

	"github.com/annel0/shapebuilder/internal/vec"
)

// Границы мира
const (
	MaxHorizontal = 30_000_000 // |x| и |z|
	MinY          = -64
	MaxY          = 320
)

// Normalize округляет значение до ближайшего целого и зажимает его в
// [-MaxHorizontal, MaxHorizontal]. NaN превращается в 0.
func Normalize(v float64) int {
	if math.IsNaN(v) {
		return 0
	}
	r := math.Round(v)
	if r > MaxHorizontal {
		return MaxHorizontal
	}
	if r < -MaxHorizontal {
		return -MaxHorizontal
	}
	return int(r)
}

// Validate возвращает true, если координата лежит внутри мира
func Validate(x, y, z int) bool {
	return x >= -MaxHorizontal && x <= MaxHorizontal &&
		z >= -MaxHorizontal && z <= MaxHorizontal &&
		y >= MinY && y <= MaxY
}

// ValidPos то же, что Validate, для vec.Vec3
func ValidPos(p vec.Vec3) bool {
	return Validate(p.X, p.Y, p.Z)
}

// outside - значение за границей мира, которое Validate гарантированно отвергнет
const outside = MaxHorizontal + 1

// roundOutside округляет без зажима в мир. Значения дальше границы, бесконечности
// и NaN превращаются в outside со своим знаком.
func roundOutside(v float64) int {
	if math.IsNaN(v) {
		return outside
	}
	r := math.Round(v)
	if r > outside {
		return outside
	}
	if r < -outside {
		return -outside
	}
	return int(r)
}

// Round округляет плавающую точку покомпонентно. В отличие от Normalize координаты
// не зажимаются: точка вне мира остаётся вне мира и отбрасывается Validate.
func Round(p vec.Vec3Float) vec.Vec3 {
	return vec.Vec3{X: roundOutside(p.X), Y: roundOutside(p.Y), Z: roundOutside(p.Z)}
}
