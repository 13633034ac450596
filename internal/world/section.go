package world

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/annel0/shapebuilder/internal/vec"
	"github.com/annel0/shapebuilder/internal/world/block"
)

// SectionSize - длина ребра секции в блоках
const SectionSize = 16

const sectionVolume = SectionSize * SectionSize * SectionSize

// Section представляет куб мира размером 16x16x16 блоков
type Section struct {
	Coords vec.Vec3 // Координаты секции (глобальные координаты >> 4)

	// Blocks[x][y][z] в локальных координатах
	Blocks [SectionSize][SectionSize][SectionSize]block.BlockID

	ChangeCounter int          // Счетчик изменений
	Mu            sync.RWMutex // Мьютекс для безопасного доступа
}

// NewSection создаёт пустую (заполненную воздухом) секцию
func NewSection(coords vec.Vec3) *Section {
	return &Section{Coords: coords}
}

// SectionCoords возвращает координаты секции, содержащей точку
func SectionCoords(p vec.Vec3) vec.Vec3 {
	return vec.Vec3{X: p.X >> 4, Y: p.Y >> 4, Z: p.Z >> 4}
}

// LocalInSection возвращает локальные координаты внутри секции
func LocalInSection(p vec.Vec3) vec.Vec3 {
	return vec.Vec3{X: p.X & 0xF, Y: p.Y & 0xF, Z: p.Z & 0xF}
}

// Origin возвращает глобальную координату угла секции
func (s *Section) Origin() vec.Vec3 {
	return vec.Vec3{X: s.Coords.X << 4, Y: s.Coords.Y << 4, Z: s.Coords.Z << 4}
}

// GetBlock возвращает блок по локальным координатам
func (s *Section) GetBlock(local vec.Vec3) block.BlockID {
	s.Mu.RLock()
	defer s.Mu.RUnlock()
	return s.Blocks[local.X][local.Y][local.Z]
}

// SetBlock устанавливает блок по локальным координатам
func (s *Section) SetBlock(local vec.Vec3, id block.BlockID) {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	s.Blocks[local.X][local.Y][local.Z] = id
	s.ChangeCounter++
}

// FillLocal заполняет локальный диапазон [from, to] одним блоком
func (s *Section) FillLocal(from, to vec.Vec3, id block.BlockID) {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	for x := from.X; x <= to.X; x++ {
		for y := from.Y; y <= to.Y; y++ {
			for z := from.Z; z <= to.Z; z++ {
				s.Blocks[x][y][z] = id
			}
		}
	}
	s.ChangeCounter++
}

// IsEmpty возвращает true, если в секции только воздух
func (s *Section) IsEmpty() bool {
	s.Mu.RLock()
	defer s.Mu.RUnlock()
	for x := range s.Blocks {
		for y := range s.Blocks[x] {
			for z := range s.Blocks[x][y] {
				if s.Blocks[x][y][z] != block.AirBlockID {
					return false
				}
			}
		}
	}
	return true
}

// MarshalBinary кодирует блоки секции в little-endian массив uint16
func (s *Section) MarshalBinary() ([]byte, error) {
	s.Mu.RLock()
	defer s.Mu.RUnlock()

	buf := make([]byte, 0, sectionVolume*2)
	for x := range s.Blocks {
		for y := range s.Blocks[x] {
			for z := range s.Blocks[x][y] {
				buf = binary.LittleEndian.AppendUint16(buf, uint16(s.Blocks[x][y][z]))
			}
		}
	}
	return buf, nil
}

// UnmarshalBinary восстанавливает блоки из MarshalBinary
func (s *Section) UnmarshalBinary(data []byte) error {
	if len(data) != sectionVolume*2 {
		return fmt.Errorf("section payload: want %d bytes, got %d", sectionVolume*2, len(data))
	}

	s.Mu.Lock()
	defer s.Mu.Unlock()

	i := 0
	for x := range s.Blocks {
		for y := range s.Blocks[x] {
			for z := range s.Blocks[x][y] {
				s.Blocks[x][y][z] = block.BlockID(binary.LittleEndian.Uint16(data[i:]))
				i += 2
			}
		}
	}
	return nil
}

// SplitBox разбивает глобальный Box на части, каждая из которых лежит в одной секции.
// fn получает координаты секции и локальный диапазон внутри неё.
func SplitBox(box Box, fn func(section vec.Vec3, from, to vec.Vec3)) {
	minS := SectionCoords(box.Min)
	maxS := SectionCoords(box.Max)
	for sx := minS.X; sx <= maxS.X; sx++ {
		for sy := minS.Y; sy <= maxS.Y; sy++ {
			for sz := minS.Z; sz <= maxS.Z; sz++ {
				origin := vec.Vec3{X: sx << 4, Y: sy << 4, Z: sz << 4}
				last := origin.Add(vec.Vec3{X: SectionSize - 1, Y: SectionSize - 1, Z: SectionSize - 1})
				from := box.Min.Max(origin).Sub(origin)
				to := box.Max.Min(last).Sub(origin)
				fn(vec.Vec3{X: sx, Y: sy, Z: sz}, from, to)
			}
		}
	}
}
