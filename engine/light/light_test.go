package light

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGPULightUniformLayout(t *testing.T) {
	u := GPULightUniform{
		Position: [3]float32{1, 2, 3},
		Color:    [3]float32{0.5, 0.25, 1},
	}

	buf := u.Marshal()
	require.Len(t, buf, 32)
	assert.Equal(t, 32, u.Size())

	assert.Equal(t, float32(1), math.Float32frombits(binary.LittleEndian.Uint32(buf[0:])))
	assert.Equal(t, float32(3), math.Float32frombits(binary.LittleEndian.Uint32(buf[8:])))
	// Color starts at the 16-byte boundary after the vec3 padding.
	assert.Equal(t, float32(0.5), math.Float32frombits(binary.LittleEndian.Uint32(buf[16:])))
	assert.Equal(t, float32(1), math.Float32frombits(binary.LittleEndian.Uint32(buf[24:])))
}

func TestTickOrbitsAroundYAxis(t *testing.T) {
	l := NewLight(
		WithPosition(3, 2, 0),
		WithAngularSpeed(math.Pi/2),
		WithAnimate(true),
	)
	l.ClearDirty()

	// A quarter-second at pi/2 rad/s is an eighth of a turn.
	l.Tick(0.25)

	pos := l.Position()
	assert.True(t, l.Dirty())

	// Height is untouched and the distance to the Y axis is preserved.
	assert.Equal(t, float32(2), pos[1])
	radius := math.Sqrt(float64(pos[0]*pos[0] + pos[2]*pos[2]))
	assert.InDelta(t, 3.0, radius, 1e-5)
	assert.NotEqual(t, float32(3), pos[0])
}

func TestTickDisabledDoesNotMove(t *testing.T) {
	l := NewLight(WithPosition(3, 2, 0), WithAnimate(false))
	l.ClearDirty()

	l.Tick(1.0)

	assert.Equal(t, [3]float32{3, 2, 0}, l.Position())
	assert.False(t, l.Dirty())
}

func TestSettersMarkDirty(t *testing.T) {
	l := NewLight()
	l.ClearDirty()

	l.SetColor(1, 0, 0)
	assert.True(t, l.Dirty())

	l.ClearDirty()
	l.SetPosition(0, 5, 0)
	assert.True(t, l.Dirty())

	u := l.Uniform()
	assert.Equal(t, [3]float32{0, 5, 0}, u.Position)
	assert.Equal(t, [3]float32{1, 0, 0}, u.Color)
}
