package depth_overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuadGeometry(t *testing.T) {
	vertices := quadVertexData()
	// 4 vertices, 4 floats each (vec2 position + vec2 uv).
	require.Len(t, vertices, 16)

	indices := quadIndexData()
	require.Len(t, indices, quadIndexCount)
	for _, idx := range indices {
		assert.Less(t, idx, uint32(4))
	}

	// Clip-space corners span the full screen.
	assert.Equal(t, []float32{-1, -1}, vertices[0:2])
	assert.Equal(t, []float32{1, 1}, vertices[8:10])

	// UV origin at the top-left corner of the screen.
	assert.Equal(t, []float32{0, 0}, vertices[14:16])
}

func TestOverlayUninitializedErrors(t *testing.T) {
	o := NewOverlay()

	assert.Nil(t, o.Provider())

	err := o.Resize(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "before init")

	err = o.Draw(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "before init")

	assert.NotPanics(t, o.Release)
}
