// Package compact сводит набор координат к последовательности заливок
// осевых параллелепипедов одним материалом.
//
// Жадный алгоритм: координаты сканируются в лексикографическом порядке
// (X, Y, Z), от каждой ещё не покрытой координаты бокс растёт сначала по X,
// затем по Y, затем по Z, пока новый срез полностью присутствует во входе.
// Порядок роста фиксирован, поэтому число боксов не минимально, но не больше
// числа координат. Каждый бокс покрывает только входные координаты, и боксы
// попарно не пересекаются.
package compact

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/annel0/shapebuilder/internal/logging"
	"github.com/annel0/shapebuilder/internal/vec"
	"github.com/annel0/shapebuilder/internal/world"
	"github.com/annel0/shapebuilder/internal/world/block"
)

// Stats описывает результат одного вызова Compact
type Stats struct {
	Coordinates int // различных координат во входе
	Boxes       int // всего боксов
	Placed      int // из них одиночных блоков (PlaceBlock)
}

// Add суммирует статистику
func (s Stats) Add(o Stats) Stats {
	return Stats{
		Coordinates: s.Coordinates + o.Coordinates,
		Boxes:       s.Boxes + o.Boxes,
		Placed:      s.Placed + o.Placed,
	}
}

// Compactor отправляет результат сжатия в Mutator
type Compactor struct {
	mutator world.Mutator
}

// New создаёт Compactor поверх Mutator
func New(m world.Mutator) *Compactor {
	return &Compactor{mutator: m}
}

// Compact заливает координаты блоком id минимально-практичным числом вызовов.
// Бокс из одной координаты ставится через PlaceBlock.
func (c *Compactor) Compact(coords []vec.Vec3, id block.BlockID) Stats {
	boxes, distinct := boxes(coords)
	stats := Stats{Coordinates: distinct, Boxes: len(boxes)}

	for _, b := range boxes {
		if b.IsSingle() {
			c.mutator.PlaceBlock(id, b.Min)
			stats.Placed++
			continue
		}
		c.mutator.FillBox(id, b)
	}

	logging.Debug("Compactor: %d координат -> %d боксов (%d одиночных), блок %s",
		stats.Coordinates, stats.Boxes, stats.Placed, id)
	return stats
}

// Boxes возвращает разбиение координат на боксы, не вызывая Mutator
func Boxes(coords []vec.Vec3) []world.Box {
	out, _ := boxes(coords)
	return out
}

// grid - отсортированные различные значения по каждой оси и множество оставшихся координат
type grid struct {
	xs, ys, zs []int
	present    map[vec.Vec3]struct{}
}

func newGrid(coords []vec.Vec3) *grid {
	g := &grid{present: make(map[vec.Vec3]struct{}, len(coords))}
	seenX := make(map[int]struct{})
	seenY := make(map[int]struct{})
	seenZ := make(map[int]struct{})

	for _, p := range coords {
		if _, dup := g.present[p]; dup {
			continue
		}
		g.present[p] = struct{}{}
		if _, ok := seenX[p.X]; !ok {
			seenX[p.X] = struct{}{}
			g.xs = append(g.xs, p.X)
		}
		if _, ok := seenY[p.Y]; !ok {
			seenY[p.Y] = struct{}{}
			g.ys = append(g.ys, p.Y)
		}
		if _, ok := seenZ[p.Z]; !ok {
			seenZ[p.Z] = struct{}{}
			g.zs = append(g.zs, p.Z)
		}
	}
	slices.Sort(g.xs)
	slices.Sort(g.ys)
	slices.Sort(g.zs)
	return g
}

func (g *grid) has(x, y, z int) bool {
	_, ok := g.present[vec.Vec3{X: x, Y: y, Z: z}]
	return ok
}

// next возвращает следующее значение сетки по оси, если оно смежно с v
func next(axis []int, v int) (int, bool) {
	i, found := slices.BinarySearch(axis, v)
	if !found || i+1 >= len(axis) || axis[i+1] != v+1 {
		return 0, false
	}
	return axis[i+1], true
}

// full проверяет, что все координаты диапазона присутствуют
func (g *grid) full(from, to vec.Vec3) bool {
	for x := from.X; x <= to.X; x++ {
		for y := from.Y; y <= to.Y; y++ {
			for z := from.Z; z <= to.Z; z++ {
				if !g.has(x, y, z) {
					return false
				}
			}
		}
	}
	return true
}

// grow растит бокс от start: X, затем Y, затем Z
func (g *grid) grow(start vec.Vec3) world.Box {
	lo, hi := start, start

	for {
		x, ok := next(g.xs, hi.X)
		if !ok || !g.has(x, lo.Y, lo.Z) {
			break
		}
		hi.X = x
	}
	for {
		y, ok := next(g.ys, hi.Y)
		if !ok || !g.full(vec.Vec3{X: lo.X, Y: y, Z: lo.Z}, vec.Vec3{X: hi.X, Y: y, Z: hi.Z}) {
			break
		}
		hi.Y = y
	}
	for {
		z, ok := next(g.zs, hi.Z)
		if !ok || !g.full(vec.Vec3{X: lo.X, Y: lo.Y, Z: z}, vec.Vec3{X: hi.X, Y: hi.Y, Z: z}) {
			break
		}
		hi.Z = z
	}
	return world.Box{Min: lo, Max: hi}
}

// take удаляет координаты бокса из множества. Отсутствующая координата -
// ошибка построения сетки, поэтому паника.
func (g *grid) take(b world.Box) {
	b.Each(func(p vec.Vec3) {
		if _, ok := g.present[p]; !ok {
			panic(fmt.Sprintf("compact: box %v covers coordinate %v absent from input", b, p))
		}
		delete(g.present, p)
	})
}

func boxes(coords []vec.Vec3) ([]world.Box, int) {
	if len(coords) == 0 {
		return nil, 0
	}
	g := newGrid(coords)
	distinct := len(g.present)

	// Лексикографический порядок координат совпадает с порядком обхода ячеек сетки,
	// отсутствующие ячейки всё равно пропускаются.
	order := make([]vec.Vec3, 0, distinct)
	for p := range g.present {
		order = append(order, p)
	}
	slices.SortFunc(order, func(a, b vec.Vec3) int {
		if c := cmp.Compare(a.X, b.X); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Y, b.Y); c != 0 {
			return c
		}
		return cmp.Compare(a.Z, b.Z)
	})

	var out []world.Box
	for _, p := range order {
		if !g.has(p.X, p.Y, p.Z) {
			continue
		}
		b := g.grow(p)
		g.take(b)
		out = append(out, b)
	}
	return out, distinct
}
