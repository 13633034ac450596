// Package dispatch режет большие наборы координат на куски и сжимает каждый кусок
// отдельно, сообщая о прогрессе между кусками. Боксы через границы кусков не
// объединяются.
package dispatch

import (
	"fmt"

	"github.com/annel0/shapebuilder/internal/compact"
	"github.com/annel0/shapebuilder/internal/progress"
	"github.com/annel0/shapebuilder/internal/vec"
	"github.com/annel0/shapebuilder/internal/world/block"
)

// DefaultChunkSize - размер куска по умолчанию
const DefaultChunkSize = 4096

// Dispatcher передаёт координаты в Compactor кусками
type Dispatcher struct {
	compactor *compact.Compactor
	reporter  progress.Reporter
	chunkSize int
}

// New создаёт Dispatcher. chunkSize <= 0 означает DefaultChunkSize, reporter nil - progress.Nop.
func New(c *compact.Compactor, reporter progress.Reporter, chunkSize int) *Dispatcher {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if reporter == nil {
		reporter = progress.Nop
	}
	return &Dispatcher{
		compactor: c,
		reporter:  reporter,
		chunkSize: chunkSize,
	}
}

// ChunkSize возвращает размер куска
func (d *Dispatcher) ChunkSize() int { return d.chunkSize }

// Dispatch сжимает координаты кусками и возвращает суммарную статистику.
// Повторы удаляются до разбиения, поэтому координата попадает ровно в один кусок.
func (d *Dispatcher) Dispatch(coords []vec.Vec3, id block.BlockID) compact.Stats {
	unique := Unique(coords)
	total := len(unique)
	if total == 0 {
		return compact.Stats{}
	}

	var stats compact.Stats
	chunks := Chunks(unique, d.chunkSize)
	done := 0
	for i, chunk := range chunks {
		stats = stats.Add(d.compactor.Compact(chunk, id))
		done += len(chunk)
		if len(chunks) > 1 {
			d.reporter.Report(fmt.Sprintf("Кусок %d/%d: %d/%d координат (%d%%), боксов %d",
				i+1, len(chunks), done, total, done*100/total, stats.Boxes))
		}
	}
	d.reporter.Report(fmt.Sprintf("Готово: %d координат, %d боксов, блок %s", total, stats.Boxes, id))
	return stats
}

// Unique удаляет повторы, сохраняя порядок первого появления
func Unique(coords []vec.Vec3) []vec.Vec3 {
	seen := make(map[vec.Vec3]struct{}, len(coords))
	out := make([]vec.Vec3, 0, len(coords))
	for _, p := range coords {
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// Chunks делит срез на последовательные куски не длиннее size
func Chunks(coords []vec.Vec3, size int) [][]vec.Vec3 {
	if size <= 0 {
		size = DefaultChunkSize
	}
	var out [][]vec.Vec3
	for start := 0; start < len(coords); start += size {
		end := min(start+size, len(coords))
		out = append(out, coords[start:end])
	}
	return out
}
