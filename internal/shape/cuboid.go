package shape

import (
	"github.com/annel0/shapebuilder/internal/bounds"
	"github.com/annel0/shapebuilder/internal/vec"
)

const (
	minY = bounds.MinY
	maxY = bounds.MaxY
)

// Cuboid - параллелепипед по двум противоположным углам в любом порядке
type Cuboid struct {
	From vec.Vec3
	To   vec.Vec3
}

func (Cuboid) Kind() Kind { return KindCuboid }

func (b Cuboid) positions(hollow bool) []vec.Vec3 {
	lo := b.From.Min(b.To)
	hi := b.From.Max(b.To)
	c := newVolume(0)

	for x := lo.X; x <= hi.X; x++ {
		for y := max(lo.Y, minY); y <= min(hi.Y, maxY); y++ {
			for z := lo.Z; z <= hi.Z; z++ {
				if hollow && x != lo.X && x != hi.X &&
					y != lo.Y && y != hi.Y &&
					z != lo.Z && z != hi.Z {
					continue
				}
				c.add(x, y, z)
			}
		}
	}
	return c.result()
}
