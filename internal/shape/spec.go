package shape

import (
	"errors"
	"fmt"
	"strings"

	"github.com/annel0/shapebuilder/internal/vec"
)

// Kind перечисляет семейства фигур
type Kind uint8

const (
	KindLine Kind = iota
	KindCircle
	KindSphere
	KindCuboid
	KindCylinder
	KindCone
	KindTorus
	KindEllipsoid
	KindHelix
	KindParaboloid
	KindHyperboloid
	KindBezier
)

var kindNames = [...]string{
	KindLine:        "line",
	KindCircle:      "circle",
	KindSphere:      "sphere",
	KindCuboid:      "cuboid",
	KindCylinder:    "cylinder",
	KindCone:        "cone",
	KindTorus:       "torus",
	KindEllipsoid:   "ellipsoid",
	KindHelix:       "helix",
	KindParaboloid:  "paraboloid",
	KindHyperboloid: "hyperboloid",
	KindBezier:      "bezier",
}

// ErrUnknownShape возвращается ParseKind для неизвестных имён
var ErrUnknownShape = errors.New("unknown shape")

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// IsCurve возвращает true для фигур-кривых, у которых нет объёма
func (k Kind) IsCurve() bool {
	return k == KindLine || k == KindHelix || k == KindBezier
}

// ParseKind разбирает имя фигуры
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownShape, s)
}

// KindNames возвращает имена всех фигур в порядке Kind
func KindNames() []string {
	return append([]string(nil), kindNames[:]...)
}

// Spec - параметры одной фигуры. Реализации: Line, Circle, Sphere, Cuboid,
// Cylinder, Cone, Torus, Ellipsoid, Helix, Paraboloid, Hyperboloid, Bezier.
type Spec interface {
	Kind() Kind
	positions(hollow bool) []vec.Vec3
}

// Positions возвращает координаты фигуры. hollow выбирает оболочку толщиной в один блок;
// для кривых игнорируется.
func Positions(spec Spec, hollow bool) []vec.Vec3 {
	if spec == nil {
		return nil
	}
	return spec.positions(hollow && !spec.Kind().IsCurve())
}

// Role задаёт, каким блоком заполняется проход
type Role uint8

const (
	RoleMaterial Role = iota // выбранный материал
	RoleClear                // "пустой" блок
)

func (r Role) String() string {
	if r == RoleClear {
		return "clear"
	}
	return "material"
}

// Pass - один набор координат, заполняемый одним блоком
type Pass struct {
	Role   Role
	Coords []vec.Vec3
}

// Sample раскладывает фигуру на проходы согласно политике.
// Solid: один проход объёма. Outline: один проход оболочки.
// Hollow: очистка всего объёма, затем оболочка. Кривые всегда дают один проход.
func Sample(spec Spec, policy Policy) []Pass {
	if spec == nil {
		return nil
	}
	if spec.Kind().IsCurve() {
		return []Pass{{Role: RoleMaterial, Coords: spec.positions(false)}}
	}

	switch policy {
	case PolicyOutline:
		return []Pass{{Role: RoleMaterial, Coords: spec.positions(true)}}
	case PolicyHollow:
		return []Pass{
			{Role: RoleClear, Coords: spec.positions(false)},
			{Role: RoleMaterial, Coords: spec.positions(true)},
		}
	default:
		return []Pass{{Role: RoleMaterial, Coords: spec.positions(false)}}
	}
}
