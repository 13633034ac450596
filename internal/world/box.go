package world

import (
	"fmt"

	"github.com/annel0/shapebuilder/internal/vec"
)

// Box задаёт включительный осевой параллелепипед [Min, Max]
type Box struct {
	Min vec.Vec3 `json:"min"`
	Max vec.Vec3 `json:"max"`
}

// NewBox строит Box по двум противоположным углам в любом порядке
func NewBox(a, b vec.Vec3) Box {
	return Box{Min: a.Min(b), Max: a.Max(b)}
}

// Volume возвращает количество координат внутри Box
func (b Box) Volume() int {
	return (b.Max.X - b.Min.X + 1) * (b.Max.Y - b.Min.Y + 1) * (b.Max.Z - b.Min.Z + 1)
}

// Contains проверяет, принадлежит ли координата Box
func (b Box) Contains(p vec.Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Intersects проверяет пересечение двух Box
func (b Box) Intersects(o Box) bool {
	return b.Min.X <= o.Max.X && o.Min.X <= b.Max.X &&
		b.Min.Y <= o.Max.Y && o.Min.Y <= b.Max.Y &&
		b.Min.Z <= o.Max.Z && o.Min.Z <= b.Max.Z
}

// IsSingle возвращает true для Box из одной координаты
func (b Box) IsSingle() bool {
	return b.Min == b.Max
}

// Each вызывает fn для каждой координаты Box в порядке X, Y, Z
func (b Box) Each(fn func(p vec.Vec3)) {
	for x := b.Min.X; x <= b.Max.X; x++ {
		for y := b.Min.Y; y <= b.Max.Y; y++ {
			for z := b.Min.Z; z <= b.Max.Z; z++ {
				fn(vec.Vec3{X: x, Y: y, Z: z})
			}
		}
	}
}

func (b Box) String() string {
	return fmt.Sprintf("%s..%s", b.Min, b.Max)
}
