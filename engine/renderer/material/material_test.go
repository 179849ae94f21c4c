package material

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGPUMaterialUniformLayout(t *testing.T) {
	u := GPUMaterialUniform{
		BaseColor: [4]float32{0.1, 0.2, 0.3, 0.4},
		Alpha:     0.5,
		Gloss:     64,
	}

	buf := u.Marshal()
	require.Len(t, buf, 32)
	assert.Equal(t, 32, u.Size())

	assert.Equal(t, float32(0.1), math.Float32frombits(binary.LittleEndian.Uint32(buf[0:])))
	assert.Equal(t, float32(0.4), math.Float32frombits(binary.LittleEndian.Uint32(buf[12:])))
	assert.Equal(t, float32(0.5), math.Float32frombits(binary.LittleEndian.Uint32(buf[16:])))
	assert.Equal(t, float32(64), math.Float32frombits(binary.LittleEndian.Uint32(buf[20:])))
}

func TestTransparentThreshold(t *testing.T) {
	opaque := NewMaterial(WithAlpha(1.0))
	assert.False(t, opaque.Transparent())

	translucent := NewMaterial(WithAlpha(0.35))
	assert.True(t, translucent.Transparent())
}

func TestDefaultMaterialIsOpaqueMagenta(t *testing.T) {
	m := NewDefaultMaterial()

	assert.Equal(t, "default", m.Name())
	assert.False(t, m.Transparent())
	c := m.BaseColor()
	assert.Greater(t, c[0], float32(0.9))
	assert.Greater(t, c[2], float32(0.5))

	staging := WhitePixelStaging()
	assert.Equal(t, uint32(1), staging.Width)
	assert.Equal(t, uint32(1), staging.Height)
	assert.Equal(t, []byte{255, 255, 255, 255}, staging.Pixels)
}

func TestGlossOverride(t *testing.T) {
	m := NewMaterial(WithGloss(8))

	assert.Equal(t, float32(8), m.Uniform().Gloss)

	SetGlossOverride(128)
	assert.Equal(t, float32(128), m.Uniform().Gloss)
	// The material's own gloss is untouched.
	assert.Equal(t, float32(8), m.Gloss())

	ClearGlossOverride()
	assert.Equal(t, float32(8), m.Uniform().Gloss)
}
