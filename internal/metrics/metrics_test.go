package metrics

import (
	"testing"
	"time"

	"github.com/annel0/shapebuilder/internal/vec"
	"github.com/annel0/shapebuilder/internal/world"
	"github.com/annel0/shapebuilder/internal/world/block"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveBuild(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveBuild("sphere", "solid", 100, 7, 20*time.Millisecond)
	m.ObserveBuild("sphere", "hollow", 50, 30, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.shapesBuilt.WithLabelValues("sphere", "solid")))
	assert.Equal(t, 150.0, testutil.ToFloat64(m.coordinates.WithLabelValues("sphere")))
	assert.Equal(t, 37.0, testutil.ToFloat64(m.boxes.WithLabelValues("sphere")))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "shapebuilder_build_duration_seconds")
}

func TestMutatorCounts(t *testing.T) {
	m := New(prometheus.NewRegistry())
	w := world.NewMemoryWorld()
	mut := m.Mutator(w)

	mut.PlaceBlock(block.StoneBlockID, vec.Vec3{Y: 64})
	mut.FillBox(block.SandBlockID, world.NewBox(vec.Vec3{X: 1, Y: 64}, vec.Vec3{X: 2, Y: 65, Z: 1}))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.mutatorCalls.WithLabelValues("place")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.mutatorCalls.WithLabelValues("fill")))
	assert.Equal(t, 9.0, testutil.ToFloat64(m.mutatorBlocks))
	assert.Equal(t, block.SandBlockID, w.GetBlock(vec.Vec3{X: 2, Y: 65, Z: 1}))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *BuildMetrics
	w := world.NewMemoryWorld()

	assert.NotPanics(t, func() { m.ObserveBuild("line", "solid", 1, 1, 0) })
	assert.Same(t, w, m.Mutator(w))
}
