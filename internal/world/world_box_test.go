package world

import (
	"testing"

	"github.com/annel0/shapebuilder/internal/vec"
	"github.com/annel0/shapebuilder/internal/world/block"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBoxNormalizesCorners(t *testing.T) {
	b := NewBox(vec.Vec3{X: 3, Y: -1, Z: 5}, vec.Vec3{X: -2, Y: 4, Z: 5})

	assert.Equal(t, vec.Vec3{X: -2, Y: -1, Z: 5}, b.Min)
	assert.Equal(t, vec.Vec3{X: 3, Y: 4, Z: 5}, b.Max)
	assert.Equal(t, 6*6*1, b.Volume())
	assert.True(t, b.Contains(vec.Vec3{X: 0, Y: 0, Z: 5}))
	assert.False(t, b.Contains(vec.Vec3{X: 0, Y: 0, Z: 6}))
}

func TestBoxIntersects(t *testing.T) {
	a := NewBox(vec.Vec3{}, vec.Vec3{X: 2, Y: 2, Z: 2})
	b := NewBox(vec.Vec3{X: 2, Y: 2, Z: 2}, vec.Vec3{X: 4, Y: 4, Z: 4})
	c := NewBox(vec.Vec3{X: 3}, vec.Vec3{X: 4})

	assert.True(t, a.Intersects(b), "общий угол")
	assert.False(t, a.Intersects(c))
}

func TestBoxEach(t *testing.T) {
	b := NewBox(vec.Vec3{}, vec.Vec3{X: 1, Y: 1, Z: 1})
	var seen []vec.Vec3
	b.Each(func(p vec.Vec3) { seen = append(seen, p) })

	require.Len(t, seen, 8)
	assert.Equal(t, vec.Vec3{}, seen[0])
	assert.Equal(t, vec.Vec3{Z: 1}, seen[1])
	assert.Equal(t, vec.Vec3{X: 1, Y: 1, Z: 1}, seen[7])
}

func TestSectionCoordsNegative(t *testing.T) {
	p := vec.Vec3{X: -1, Y: 17, Z: -16}

	assert.Equal(t, vec.Vec3{X: -1, Y: 1, Z: -1}, SectionCoords(p))
	assert.Equal(t, vec.Vec3{X: 15, Y: 1, Z: 0}, LocalInSection(p))
}

func TestSplitBoxCoversBoxExactly(t *testing.T) {
	box := NewBox(vec.Vec3{X: -3, Y: 10, Z: 14}, vec.Vec3{X: 20, Y: 12, Z: 33})

	total := 0
	SplitBox(box, func(section, from, to vec.Vec3) {
		assert.True(t, from.X >= 0 && to.X < SectionSize)
		assert.True(t, from.Z >= 0 && to.Z < SectionSize)
		total += NewBox(from, to).Volume()
	})
	assert.Equal(t, box.Volume(), total)
}

func TestMemoryWorldFillAndPlace(t *testing.T) {
	w := NewMemoryWorld()
	box := NewBox(vec.Vec3{X: -2, Y: 60, Z: -2}, vec.Vec3{X: 17, Y: 61, Z: 1})

	w.FillBox(block.StoneBlockID, box)
	w.PlaceBlock(block.GlassBlockID, vec.Vec3{X: 0, Y: 60, Z: 0})

	assert.Equal(t, block.GlassBlockID, w.GetBlock(vec.Vec3{X: 0, Y: 60, Z: 0}))
	assert.Equal(t, block.StoneBlockID, w.GetBlock(vec.Vec3{X: 17, Y: 61, Z: -2}))
	assert.Equal(t, block.AirBlockID, w.GetBlock(vec.Vec3{X: 18, Y: 61, Z: -2}))
	assert.Len(t, w.Blocks(), box.Volume())
	assert.Equal(t, 6, w.SectionCount(), "x: -1,0,1 секции; z: -1,0")
}

func TestSectionBinaryRoundTrip(t *testing.T) {
	s := NewSection(vec.Vec3{X: 1})
	s.SetBlock(vec.Vec3{X: 1, Y: 2, Z: 3}, block.BrickBlockID)
	s.SetBlock(vec.Vec3{X: 15, Y: 15, Z: 15}, block.BlockID(65535))

	data, err := s.MarshalBinary()
	require.NoError(t, err)
	assert.Len(t, data, SectionSize*SectionSize*SectionSize*2)

	restored := NewSection(s.Coords)
	require.NoError(t, restored.UnmarshalBinary(data))
	assert.Equal(t, block.BrickBlockID, restored.GetBlock(vec.Vec3{X: 1, Y: 2, Z: 3}))
	assert.Equal(t, block.BlockID(65535), restored.GetBlock(vec.Vec3{X: 15, Y: 15, Z: 15}))
	assert.False(t, restored.IsEmpty())

	assert.Error(t, restored.UnmarshalBinary(data[:10]))
}

func TestRecorderForwardsCalls(t *testing.T) {
	w := NewMemoryWorld()
	r := NewRecorder(w)

	r.PlaceBlock(block.SandBlockID, vec.Vec3{X: 1, Y: 1, Z: 1})
	r.FillBox(block.DirtBlockID, NewBox(vec.Vec3{X: 2}, vec.Vec3{X: 3}))

	require.Len(t, r.Calls, 2)
	assert.Equal(t, CallPlace, r.Calls[0].Kind)
	assert.True(t, r.Calls[0].Box.IsSingle())
	assert.Equal(t, CallFill, r.Calls[1].Kind)
	assert.Equal(t, block.DirtBlockID, w.GetBlock(vec.Vec3{X: 3}))
	assert.Len(t, r.Boxes(), 2)

	r.Reset()
	assert.Empty(t, r.Calls)
}
