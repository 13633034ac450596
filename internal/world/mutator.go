package world

import (
	"github.com/annel0/shapebuilder/internal/vec"
	"github.com/annel0/shapebuilder/internal/world/block"
)

// Mutator изменяет блоки мира. Вызовы не возвращают ошибок и считаются
// всегда успешными; вызывающая сторона обращается к Mutator последовательно.
type Mutator interface {
	// PlaceBlock ставит один блок в указанную координату
	PlaceBlock(id block.BlockID, pos vec.Vec3)

	// FillBox заполняет весь Box одним типом блока
	FillBox(id block.BlockID, box Box)
}

// CallKind различает записанные вызовы Mutator
type CallKind uint8

const (
	CallPlace CallKind = iota
	CallFill
)

// Call описывает один вызов Mutator
type Call struct {
	Kind  CallKind
	Block block.BlockID
	Box   Box // для CallPlace Min == Max
}

// Recorder запоминает вызовы Mutator по порядку и при необходимости
// пробрасывает их дальше.
type Recorder struct {
	Calls []Call
	next  Mutator
}

// NewRecorder создаёт Recorder. next может быть nil.
func NewRecorder(next Mutator) *Recorder {
	return &Recorder{next: next}
}

func (r *Recorder) PlaceBlock(id block.BlockID, pos vec.Vec3) {
	r.Calls = append(r.Calls, Call{Kind: CallPlace, Block: id, Box: Box{Min: pos, Max: pos}})
	if r.next != nil {
		r.next.PlaceBlock(id, pos)
	}
}

func (r *Recorder) FillBox(id block.BlockID, box Box) {
	r.Calls = append(r.Calls, Call{Kind: CallFill, Block: id, Box: box})
	if r.next != nil {
		r.next.FillBox(id, box)
	}
}

// Boxes возвращает все записанные области (одиночные блоки как Box из одной точки)
func (r *Recorder) Boxes() []Box {
	boxes := make([]Box, len(r.Calls))
	for i, c := range r.Calls {
		boxes[i] = c.Box
	}
	return boxes
}

// Reset очищает журнал вызовов
func (r *Recorder) Reset() {
	r.Calls = r.Calls[:0]
}
