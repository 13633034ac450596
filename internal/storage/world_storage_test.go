package storage

import (
	"os"
	"testing"

	"github.com/annel0/shapebuilder/internal/compact"
	"github.com/annel0/shapebuilder/internal/logging"
	"github.com/annel0/shapebuilder/internal/shape"
	"github.com/annel0/shapebuilder/internal/vec"
	"github.com/annel0/shapebuilder/internal/world"
	"github.com/annel0/shapebuilder/internal/world/block"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "shapebuilder-storage-logs")
	if err == nil {
		logging.LogDir = dir
	}
	code := m.Run()
	logging.GetLoggerManager().CloseAll()
	os.RemoveAll(dir)
	os.Exit(code)
}

func setupTestStorage(t *testing.T) (*WorldStorage, string) {
	t.Helper()
	dir := t.TempDir()
	ws, err := NewWorldStorage(dir)
	require.NoError(t, err)
	t.Cleanup(func() { ws.Close() })
	return ws, dir
}

func TestPlaceAndGetBlock(t *testing.T) {
	ws, _ := setupTestStorage(t)

	pos := vec.Vec3{X: -3, Y: 70, Z: 17}
	ws.PlaceBlock(block.WaterBlockID, pos)
	require.NoError(t, ws.Err())

	id, err := ws.GetBlock(pos)
	require.NoError(t, err)
	assert.Equal(t, block.WaterBlockID, id)

	id, err = ws.GetBlock(vec.Vec3{X: -4, Y: 70, Z: 17})
	require.NoError(t, err)
	assert.Equal(t, block.AirBlockID, id)
}

func TestFillBoxAcrossSections(t *testing.T) {
	ws, _ := setupTestStorage(t)

	box := world.NewBox(vec.Vec3{X: -2, Y: 60, Z: 14}, vec.Vec3{X: 18, Y: 66, Z: 17})
	ws.FillBox(block.StoneBlockID, box)
	require.NoError(t, ws.Err())

	count, err := ws.SectionCount()
	require.NoError(t, err)
	// X: секции -1,0,1; Y: 3,4; Z: 0,1
	assert.Equal(t, 3*2*2, count)

	box.Each(func(p vec.Vec3) {
		id, err := ws.GetBlock(p)
		require.NoError(t, err)
		assert.Equal(t, block.StoneBlockID, id)
	})

	id, err := ws.GetBlock(vec.Vec3{X: 19, Y: 66, Z: 17})
	require.NoError(t, err)
	assert.Equal(t, block.AirBlockID, id)
}

func TestClearingRemovesEmptySections(t *testing.T) {
	ws, _ := setupTestStorage(t)

	box := world.NewBox(vec.Vec3{Y: 64}, vec.Vec3{X: 15, Y: 79, Z: 15})
	ws.FillBox(block.SandBlockID, box)
	count, err := ws.SectionCount()
	require.NoError(t, err)
	require.Equal(t, 1, count)

	ws.FillBox(block.AirBlockID, box)
	count, err = ws.SectionCount()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestDataSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ws, err := NewWorldStorage(dir)
	require.NoError(t, err)

	coords := shape.Positions(shape.Sphere{Center: vec.Vec3{Y: 100}, Radius: 4}, true)
	compact.New(ws).Compact(coords, block.GlassBlockID)
	require.NoError(t, ws.Err())
	require.NoError(t, ws.Close())

	ws, err = NewWorldStorage(dir)
	require.NoError(t, err)
	defer ws.Close()

	for _, p := range coords {
		id, err := ws.GetBlock(p)
		require.NoError(t, err)
		assert.Equal(t, block.GlassBlockID, id, "блок %s", p)
	}
	id, err := ws.GetBlock(vec.Vec3{Y: 100})
	require.NoError(t, err)
	assert.Equal(t, block.AirBlockID, id, "центр полого шара пуст")
}

func TestClosedStorage(t *testing.T) {
	ws, _ := setupTestStorage(t)
	require.NoError(t, ws.Close())
	require.NoError(t, ws.Close(), "повторный Close безопасен")

	_, err := ws.GetBlock(vec.Vec3{})
	assert.ErrorIs(t, err, ErrStorageClosed)

	ws.PlaceBlock(block.StoneBlockID, vec.Vec3{Y: 64})
	assert.ErrorIs(t, ws.Err(), ErrStorageClosed)
}
