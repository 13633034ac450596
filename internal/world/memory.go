package world

import (
	"sync"

	"github.com/annel0/shapebuilder/internal/vec"
	"github.com/annel0/shapebuilder/internal/world/block"
)

// MemoryWorld хранит мир в памяти как набор секций 16x16x16.
// Реализует Mutator.
type MemoryWorld struct {
	sections map[vec.Vec3]*Section
	mu       sync.RWMutex
}

// NewMemoryWorld создаёт пустой мир
func NewMemoryWorld() *MemoryWorld {
	return &MemoryWorld{
		sections: make(map[vec.Vec3]*Section),
	}
}

// section возвращает секцию, создавая её при необходимости
func (w *MemoryWorld) section(coords vec.Vec3) *Section {
	w.mu.RLock()
	s, ok := w.sections[coords]
	w.mu.RUnlock()
	if ok {
		return s
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if s, ok = w.sections[coords]; ok {
		return s
	}
	s = NewSection(coords)
	w.sections[coords] = s
	return s
}

// GetBlock возвращает блок в координате (воздух для незагруженных секций)
func (w *MemoryWorld) GetBlock(pos vec.Vec3) block.BlockID {
	w.mu.RLock()
	s, ok := w.sections[SectionCoords(pos)]
	w.mu.RUnlock()
	if !ok {
		return block.AirBlockID
	}
	return s.GetBlock(LocalInSection(pos))
}

// PlaceBlock реализует Mutator
func (w *MemoryWorld) PlaceBlock(id block.BlockID, pos vec.Vec3) {
	w.section(SectionCoords(pos)).SetBlock(LocalInSection(pos), id)
}

// FillBox реализует Mutator
func (w *MemoryWorld) FillBox(id block.BlockID, box Box) {
	SplitBox(box, func(coords, from, to vec.Vec3) {
		w.section(coords).FillLocal(from, to, id)
	})
}

// SectionCount возвращает количество созданных секций
func (w *MemoryWorld) SectionCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.sections)
}

// Blocks возвращает все не-воздушные блоки мира
func (w *MemoryWorld) Blocks() map[vec.Vec3]block.BlockID {
	w.mu.RLock()
	sections := make([]*Section, 0, len(w.sections))
	for _, s := range w.sections {
		sections = append(sections, s)
	}
	w.mu.RUnlock()

	out := make(map[vec.Vec3]block.BlockID)
	for _, s := range sections {
		origin := s.Origin()
		s.Mu.RLock()
		for x := range s.Blocks {
			for y := range s.Blocks[x] {
				for z := range s.Blocks[x][y] {
					if id := s.Blocks[x][y][z]; id != block.AirBlockID {
						out[origin.Add(vec.Vec3{X: x, Y: y, Z: z})] = id
					}
				}
			}
		}
		s.Mu.RUnlock()
	}
	return out
}
