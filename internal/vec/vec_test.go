package vec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec3Arithmetic(t *testing.T) {
	a := Vec3{X: 1, Y: 2, Z: 3}
	b := Vec3{X: -4, Y: 5, Z: 0}

	assert.Equal(t, Vec3{X: -3, Y: 7, Z: 3}, a.Add(b))
	assert.Equal(t, Vec3{X: 5, Y: -3, Z: 3}, a.Sub(b))
	assert.Equal(t, Vec3{X: -4, Y: 2, Z: 0}, a.Min(b))
	assert.Equal(t, Vec3{X: 1, Y: 5, Z: 3}, a.Max(b))
	assert.Equal(t, 25+9+9, a.DistanceSqTo(b))
	assert.True(t, a.Equals(Vec3{X: 1, Y: 2, Z: 3}))
}

func TestVec3Less(t *testing.T) {
	assert.True(t, Vec3{X: 0, Y: 9, Z: 9}.Less(Vec3{X: 1}))
	assert.True(t, Vec3{X: 1, Y: 0, Z: 9}.Less(Vec3{X: 1, Y: 1}))
	assert.True(t, Vec3{X: 1, Y: 1, Z: 0}.Less(Vec3{X: 1, Y: 1, Z: 1}))
	assert.False(t, Vec3{X: 1, Y: 1, Z: 1}.Less(Vec3{X: 1, Y: 1, Z: 1}))
}

func TestVec2Embedding(t *testing.T) {
	p := Vec2{X: 2, Y: 3}

	assert.Equal(t, Vec3{X: 7, Y: 2, Z: 3}, p.ToVec3('x', 7))
	assert.Equal(t, Vec3{X: 2, Y: 7, Z: 3}, p.ToVec3('y', 7))
	assert.Equal(t, Vec3{X: 2, Y: 3, Z: 7}, p.ToVec3('z', 7))
	assert.Equal(t, 13, p.LengthSq())
}
